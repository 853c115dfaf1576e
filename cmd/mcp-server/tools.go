package main

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/eshaffer321/ynab-mcp-go/internal/report"
	"github.com/eshaffer321/ynab-mcp-go/internal/store"
	"github.com/eshaffer321/ynab-mcp-go/pkg/ynab"
)

// defaultDaysBack bounds the needing-attention window when the caller does
// not give one
const defaultDaysBack = 30

// ynabTools holds the YNAB client and local stores and implements all tool
// handlers
type ynabTools struct {
	client *ynab.Client
	prefs  *store.PreferenceStore
	cache  *store.CategoryCache
}

// textResult wraps a markdown or plain-text payload as a tool result
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

// resolveBudgetID returns the preferred budget id when one is stored,
// otherwise the first budget from the API
func (t *ynabTools) resolveBudgetID(ctx context.Context) (string, error) {
	if id, ok := t.prefs.Get(); ok {
		return id, nil
	}

	budgets, err := t.client.Budgets.List(ctx)
	if err != nil {
		return "", errors.Wrap(err, "failed to fetch budgets")
	}
	if len(budgets) == 0 {
		return "", errors.New("no budgets available")
	}
	return budgets[0].ID, nil
}

// lookupCategoryID resolves a category name to its id, consulting the local
// cache before the API. A nil id with nil error means no match.
func (t *ynabTools) lookupCategoryID(ctx context.Context, budgetID, name string) (*string, error) {
	for _, cached := range t.cache.Get(budgetID) {
		if strings.EqualFold(cached.Name, name) {
			id := cached.ID
			return &id, nil
		}
	}

	groups, err := t.client.Categories.List(ctx, budgetID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch categories")
	}

	for _, group := range groups {
		for _, category := range group.Categories {
			if category.Deleted {
				continue
			}
			if strings.EqualFold(category.Name, name) {
				id := category.ID
				return &id, nil
			}
		}
	}

	return nil, nil
}

// startOfMonth returns the first day of the current month
func startOfMonth() ynab.Date {
	now := time.Now()
	return ynab.NewDate(time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC))
}

// CreateTransaction tool

type CreateTransactionInput struct {
	AccountID    string  `json:"account_id" jsonschema:"Account to create the transaction in"`
	Amount       float64 `json:"amount" jsonschema:"Amount in dollars; negative for outflows"`
	PayeeName    string  `json:"payee_name" jsonschema:"Payee name"`
	CategoryName string  `json:"category_name,omitempty" jsonschema:"Category name to assign (optional)"`
	Memo         string  `json:"memo,omitempty" jsonschema:"Memo (optional)"`
}

type CreateTransactionOutput struct {
	ID       string  `json:"id" jsonschema:"Created transaction id"`
	Date     string  `json:"date" jsonschema:"Transaction date (YYYY-MM-DD)"`
	Amount   float64 `json:"amount" jsonschema:"Amount in dollars"`
	Payee    string  `json:"payee,omitempty" jsonschema:"Payee name"`
	Category string  `json:"category,omitempty" jsonschema:"Category name, if one was resolved"`
	Memo     string  `json:"memo,omitempty" jsonschema:"Memo"`
	Approved bool    `json:"approved" jsonschema:"Whether the transaction is approved"`
}

func (t *ynabTools) CreateTransaction(ctx context.Context, req *mcp.CallToolRequest, input CreateTransactionInput) (*mcp.CallToolResult, CreateTransactionOutput, error) {
	budgetID, err := t.resolveBudgetID(ctx)
	if err != nil {
		return nil, CreateTransactionOutput{}, err
	}

	var categoryID *string
	if input.CategoryName != "" {
		categoryID, err = t.lookupCategoryID(ctx, budgetID, input.CategoryName)
		if err != nil {
			return nil, CreateTransactionOutput{}, err
		}
	}

	created, err := t.client.Transactions.Create(ctx, budgetID, &ynab.NewTransaction{
		AccountID:  input.AccountID,
		Date:       ynab.Today(),
		Amount:     int64(math.Round(input.Amount * 1000)),
		PayeeName:  input.PayeeName,
		CategoryID: categoryID,
		Memo:       input.Memo,
	})
	if err != nil {
		return nil, CreateTransactionOutput{}, errors.Wrap(err, "failed to create transaction")
	}

	output := CreateTransactionOutput{
		ID:       created.ID,
		Date:     created.Date.String(),
		Amount:   report.FromMilliunits(created.Amount),
		Payee:    created.PayeeName,
		Category: created.CategoryName,
		Memo:     created.Memo,
		Approved: created.Approved,
	}

	return nil, output, nil
}

// GetAccountBalance tool

type GetAccountBalanceInput struct {
	AccountID string `json:"account_id" jsonschema:"Account to look up"`
}

type GetAccountBalanceOutput struct {
	Balance float64 `json:"balance" jsonschema:"Current balance in dollars"`
}

func (t *ynabTools) GetAccountBalance(ctx context.Context, req *mcp.CallToolRequest, input GetAccountBalanceInput) (*mcp.CallToolResult, GetAccountBalanceOutput, error) {
	budgetID, err := t.resolveBudgetID(ctx)
	if err != nil {
		return nil, GetAccountBalanceOutput{}, err
	}

	account, err := t.client.Accounts.Get(ctx, budgetID, input.AccountID)
	if err != nil {
		return nil, GetAccountBalanceOutput{}, errors.Wrap(err, "failed to fetch account")
	}

	balance := report.FromMilliunits(account.Balance)
	return textResult(report.FormatAmount(balance)), GetAccountBalanceOutput{Balance: balance}, nil
}

// GetBudgets tool

type GetBudgetsInput struct {
	// No input parameters needed
}

type BudgetEntry struct {
	ID             string `json:"id" jsonschema:"Budget id"`
	Name           string `json:"name" jsonschema:"Budget name"`
	LastModifiedOn string `json:"lastModifiedOn,omitempty" jsonschema:"Last modification timestamp"`
}

type GetBudgetsOutput struct {
	Budgets []BudgetEntry `json:"budgets" jsonschema:"List of budgets"`
	Count   int           `json:"count" jsonschema:"Number of budgets"`
}

func (t *ynabTools) GetBudgets(ctx context.Context, req *mcp.CallToolRequest, input GetBudgetsInput) (*mcp.CallToolResult, GetBudgetsOutput, error) {
	budgets, err := t.client.Budgets.List(ctx)
	if err != nil {
		return nil, GetBudgetsOutput{}, errors.Wrap(err, "failed to fetch budgets")
	}

	var entries []BudgetEntry
	for _, budget := range budgets {
		entry := BudgetEntry{
			ID:   budget.ID,
			Name: budget.Name,
		}
		if budget.LastModifiedOn != nil {
			entry.LastModifiedOn = budget.LastModifiedOn.Format(time.RFC3339)
		}
		entries = append(entries, entry)
	}

	output := GetBudgetsOutput{
		Budgets: entries,
		Count:   len(entries),
	}

	return textResult(budgetsMarkdown(budgets)), output, nil
}

// GetAccounts tool

type GetAccountsInput struct {
	BudgetID string `json:"budget_id" jsonschema:"Budget whose accounts to list"`
}

type GetAccountsOutput struct {
	Summary *report.AccountSummary `json:"summary" jsonschema:"Accounts grouped by type with totals"`
}

func (t *ynabTools) GetAccounts(ctx context.Context, req *mcp.CallToolRequest, input GetAccountsInput) (*mcp.CallToolResult, GetAccountsOutput, error) {
	accounts, err := t.client.Accounts.List(ctx, input.BudgetID)
	if err != nil {
		return nil, GetAccountsOutput{}, errors.Wrap(err, "failed to fetch accounts")
	}

	summary := report.Summarize(accounts)
	markdown, err := accountsMarkdown(summary)
	if err != nil {
		return nil, GetAccountsOutput{}, err
	}

	return textResult(markdown), GetAccountsOutput{Summary: summary}, nil
}

// GetTransactions tool

type GetTransactionsInput struct {
	BudgetID  string `json:"budget_id" jsonschema:"Budget containing the account"`
	AccountID string `json:"account_id" jsonschema:"Account whose transactions to list"`
}

type GetTransactionsOutput struct {
	Count     int    `json:"count" jsonschema:"Number of transactions returned"`
	SinceDate string `json:"sinceDate" jsonschema:"Start of the reporting window (YYYY-MM-DD)"`
}

func (t *ynabTools) GetTransactions(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsInput) (*mcp.CallToolResult, GetTransactionsOutput, error) {
	since := startOfMonth()

	transactions, err := t.client.Transactions.ListByAccount(ctx, input.BudgetID, input.AccountID, &ynab.TransactionFilter{
		SinceDate: &since,
	})
	if err != nil {
		return nil, GetTransactionsOutput{}, errors.Wrap(err, "failed to fetch transactions")
	}

	markdown, err := transactionsMarkdown(transactions)
	if err != nil {
		return nil, GetTransactionsOutput{}, err
	}

	output := GetTransactionsOutput{
		Count:     len(transactions),
		SinceDate: since.String(),
	}

	return textResult(markdown), output, nil
}

// GetTransactionsNeedingAttention tool

type GetTransactionsNeedingAttentionInput struct {
	BudgetID   string `json:"budget_id" jsonschema:"Budget to scan"`
	FilterType string `json:"filter_type" jsonschema:"One of: uncategorized, unapproved, both"`
	DaysBack   int    `json:"days_back,omitempty" jsonschema:"How many days to look back (default 30)"`
}

type GetTransactionsNeedingAttentionOutput struct {
	Count      int    `json:"count" jsonschema:"Number of matching transactions"`
	FilterType string `json:"filterType" jsonschema:"Filter that was applied"`
}

func (t *ynabTools) GetTransactionsNeedingAttention(ctx context.Context, req *mcp.CallToolRequest, input GetTransactionsNeedingAttentionInput) (*mcp.CallToolResult, GetTransactionsNeedingAttentionOutput, error) {
	switch input.FilterType {
	case "uncategorized", "unapproved", "both":
	default:
		// Soft fail: report the bad enum to the caller instead of erroring
		msg := fmt.Sprintf("Invalid filter_type %q: must be one of uncategorized, unapproved, both.", input.FilterType)
		return textResult(msg), GetTransactionsNeedingAttentionOutput{}, nil
	}

	daysBack := input.DaysBack
	if daysBack <= 0 {
		daysBack = defaultDaysBack
	}
	since := ynab.NewDate(time.Now().AddDate(0, 0, -daysBack))

	transactions, err := t.client.Transactions.ListByBudget(ctx, input.BudgetID, &ynab.TransactionFilter{
		SinceDate: &since,
	})
	if err != nil {
		return nil, GetTransactionsNeedingAttentionOutput{}, errors.Wrap(err, "failed to fetch transactions")
	}

	var matched []*ynab.Transaction
	for _, tx := range transactions {
		if tx.Deleted {
			continue
		}
		uncategorized := tx.CategoryID == nil && tx.TransferAccountID == nil
		unapproved := !tx.Approved

		switch input.FilterType {
		case "uncategorized":
			if uncategorized {
				matched = append(matched, tx)
			}
		case "unapproved":
			if unapproved {
				matched = append(matched, tx)
			}
		case "both":
			if uncategorized || unapproved {
				matched = append(matched, tx)
			}
		}
	}

	markdown, err := attentionMarkdown(matched)
	if err != nil {
		return nil, GetTransactionsNeedingAttentionOutput{}, err
	}

	output := GetTransactionsNeedingAttentionOutput{
		Count:      len(matched),
		FilterType: input.FilterType,
	}

	return textResult(markdown), output, nil
}

// CategorizeTransaction tool

type CategorizeTransactionInput struct {
	BudgetID      string `json:"budget_id" jsonschema:"Budget containing the transaction"`
	TransactionID string `json:"transaction_id" jsonschema:"Transaction identifier of the given id_type"`
	CategoryID    string `json:"category_id" jsonschema:"Category to assign"`
	IDType        string `json:"id_type" jsonschema:"One of: id, import_id, transfer_transaction_id, matched_transaction_id"`
}

type CategorizeTransactionOutput struct {
	Status string `json:"status" jsonschema:"Human-readable outcome"`
}

func (t *ynabTools) CategorizeTransaction(ctx context.Context, req *mcp.CallToolRequest, input CategorizeTransactionInput) (*mcp.CallToolResult, CategorizeTransactionOutput, error) {
	transactionID := input.TransactionID

	switch input.IDType {
	case "id":
		// The identifier can be used directly
	case "import_id", "transfer_transaction_id", "matched_transaction_id":
		transactions, err := t.client.Transactions.ListByBudget(ctx, input.BudgetID, nil)
		if err != nil {
			return nil, CategorizeTransactionOutput{}, errors.Wrap(err, "failed to fetch transactions")
		}

		transactionID = ""
		for _, tx := range transactions {
			if alternateID(tx, input.IDType) == input.TransactionID {
				transactionID = tx.ID
				break
			}
		}

		if transactionID == "" {
			// Soft fail, matching the lookup style of the other tools
			msg := fmt.Sprintf("No transaction found with %s %q.", input.IDType, input.TransactionID)
			return textResult(msg), CategorizeTransactionOutput{Status: msg}, nil
		}
	default:
		msg := fmt.Sprintf("Invalid id_type %q: must be one of id, import_id, transfer_transaction_id, matched_transaction_id.", input.IDType)
		return textResult(msg), CategorizeTransactionOutput{Status: msg}, nil
	}

	updated, err := t.client.Transactions.SetCategory(ctx, input.BudgetID, transactionID, input.CategoryID)
	if err != nil {
		return nil, CategorizeTransactionOutput{}, errors.Wrap(err, "failed to categorize transaction")
	}

	category := updated.CategoryName
	if category == "" {
		category = input.CategoryID
	}
	status := fmt.Sprintf("Transaction %s categorized as %s.", updated.ID, category)

	return textResult(status), CategorizeTransactionOutput{Status: status}, nil
}

// alternateID returns the named alternate identifier of a transaction, or
// empty when unset
func alternateID(tx *ynab.Transaction, idType string) string {
	var id *string
	switch idType {
	case "import_id":
		id = tx.ImportID
	case "transfer_transaction_id":
		id = tx.TransferTransactionID
	case "matched_transaction_id":
		id = tx.MatchedTransactionID
	}
	if id == nil {
		return ""
	}
	return *id
}

// GetCategories tool

type GetCategoriesInput struct {
	BudgetID string `json:"budget_id" jsonschema:"Budget whose categories to list"`
}

type GetCategoriesOutput struct {
	Groups int `json:"groups" jsonschema:"Number of category groups"`
	Count  int `json:"count" jsonschema:"Number of categories"`
}

func (t *ynabTools) GetCategories(ctx context.Context, req *mcp.CallToolRequest, input GetCategoriesInput) (*mcp.CallToolResult, GetCategoriesOutput, error) {
	groups, err := t.client.Categories.List(ctx, input.BudgetID)
	if err != nil {
		return nil, GetCategoriesOutput{}, errors.Wrap(err, "failed to fetch categories")
	}

	markdown, count, err := categoriesMarkdown(groups)
	if err != nil {
		return nil, GetCategoriesOutput{}, err
	}

	output := GetCategoriesOutput{
		Groups: len(groups),
		Count:  count,
	}

	return textResult(markdown), output, nil
}

// SetPreferredBudgetID tool

type SetPreferredBudgetIDInput struct {
	BudgetID string `json:"budget_id" jsonschema:"Budget id to use as the default"`
}

type SetPreferredBudgetIDOutput struct {
	Status string `json:"status" jsonschema:"Human-readable outcome"`
}

func (t *ynabTools) SetPreferredBudgetID(ctx context.Context, req *mcp.CallToolRequest, input SetPreferredBudgetIDInput) (*mcp.CallToolResult, SetPreferredBudgetIDOutput, error) {
	// Never persist on behalf of a cancelled call
	if err := ctx.Err(); err != nil {
		return nil, SetPreferredBudgetIDOutput{}, err
	}

	if err := t.prefs.Set(input.BudgetID); err != nil {
		return nil, SetPreferredBudgetIDOutput{}, errors.Wrap(err, "failed to persist preferred budget")
	}

	status := fmt.Sprintf("Preferred budget id set to %s.", input.BudgetID)
	return textResult(status), SetPreferredBudgetIDOutput{Status: status}, nil
}

// CacheCategories tool

type CacheCategoriesInput struct {
	BudgetID string `json:"budget_id" jsonschema:"Budget whose categories to cache"`
}

type CacheCategoriesOutput struct {
	Status string `json:"status" jsonschema:"Human-readable outcome"`
	Count  int    `json:"count" jsonschema:"Number of categories cached"`
}

func (t *ynabTools) CacheCategories(ctx context.Context, req *mcp.CallToolRequest, input CacheCategoriesInput) (*mcp.CallToolResult, CacheCategoriesOutput, error) {
	groups, err := t.client.Categories.List(ctx, input.BudgetID)
	if err != nil {
		return nil, CacheCategoriesOutput{}, errors.Wrap(err, "failed to fetch categories")
	}

	var cached []store.CachedCategory
	for _, group := range groups {
		if group.Deleted || group.Hidden {
			continue
		}
		for _, category := range group.Categories {
			if category.Deleted || category.Hidden {
				continue
			}
			cached = append(cached, store.CachedCategory{
				ID:    category.ID,
				Name:  category.Name,
				Group: group.Name,
			})
		}
	}

	// Never persist on behalf of a cancelled call
	if err := ctx.Err(); err != nil {
		return nil, CacheCategoriesOutput{}, err
	}

	if err := t.cache.Refresh(input.BudgetID, cached); err != nil {
		return nil, CacheCategoriesOutput{}, errors.Wrap(err, "failed to persist category cache")
	}

	status := fmt.Sprintf("Cached %d categories for budget %s.", len(cached), input.BudgetID)
	return textResult(status), CacheCategoriesOutput{Status: status, Count: len(cached)}, nil
}
