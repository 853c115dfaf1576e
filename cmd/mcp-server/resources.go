package main

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/pkg/errors"

	"github.com/eshaffer321/ynab-mcp-go/internal/report"
	"github.com/eshaffer321/ynab-mcp-go/pkg/ynab"
)

const (
	budgetsResourceURI    = "ynab://budgets"
	accountsResourceURI   = "ynab://accounts"
	transactionsTemplate  = "ynab://transactions/{account_id}"
	transactionsURIPrefix = "ynab://transactions/"
)

func registerResources(server *mcp.Server, tools *ynabTools) {
	server.AddResource(&mcp.Resource{
		Name:        "budgets",
		URI:         budgetsResourceURI,
		Description: "All budgets, as JSON.",
		MIMEType:    "application/json",
	}, tools.ReadBudgets)

	server.AddResource(&mcp.Resource{
		Name:        "accounts",
		URI:         accountsResourceURI,
		Description: "Open accounts across all budgets, grouped by type with asset, liability and net worth totals.",
		MIMEType:    "text/markdown",
	}, tools.ReadAccounts)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		Name:        "transactions",
		URITemplate: transactionsTemplate,
		Description: "Recent transactions for one account, since the start of the current month.",
		MIMEType:    "text/markdown",
	}, tools.ReadTransactions)
}

// ReadBudgets serves ynab://budgets
func (t *ynabTools) ReadBudgets(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	budgets, err := t.client.Budgets.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch budgets")
	}

	data, err := json.MarshalIndent(budgets, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize budgets")
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      budgetsResourceURI,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

// ReadAccounts serves ynab://accounts. Accounts are collected across every
// budget; a budget whose accounts cannot be fetched is skipped rather than
// failing the whole read.
func (t *ynabTools) ReadAccounts(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	budgets, err := t.client.Budgets.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch budgets")
	}

	var all []*ynab.Account
	for _, budget := range budgets {
		accounts, err := t.client.Accounts.List(ctx, budget.ID)
		if err != nil {
			continue
		}
		all = append(all, accounts...)
	}

	markdown, err := accountsMarkdown(report.Summarize(all))
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      accountsResourceURI,
			MIMEType: "text/markdown",
			Text:     markdown,
		}},
	}, nil
}

// ReadTransactions serves ynab://transactions/{account_id}. The owning budget
// is not part of the URI, so budgets are probed one at a time until the
// account turns up transactions.
func (t *ynabTools) ReadTransactions(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	accountID := strings.TrimPrefix(req.Params.URI, transactionsURIPrefix)
	if accountID == "" || accountID == req.Params.URI {
		return nil, errors.Errorf("invalid transactions URI: %s", req.Params.URI)
	}

	budgets, err := t.client.Budgets.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch budgets")
	}

	since := startOfMonth()
	var all []*ynab.Transaction
	for _, budget := range budgets {
		transactions, err := t.client.Transactions.ListByAccount(ctx, budget.ID, accountID, &ynab.TransactionFilter{
			SinceDate: &since,
		})
		if err != nil {
			// Account not in this budget, try the next one
			continue
		}
		all = append(all, transactions...)
		if len(all) > 0 {
			break
		}
	}

	markdown, err := transactionsMarkdown(all)
	if err != nil {
		return nil, err
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      req.Params.URI,
			MIMEType: "text/markdown",
			Text:     markdown,
		}},
	}, nil
}
