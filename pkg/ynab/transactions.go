package ynab

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/pkg/errors"
)

// transactionService implements the TransactionService interface
type transactionService struct {
	client *Client
}

// filterQuery translates a TransactionFilter into query parameters
func filterQuery(filter *TransactionFilter) url.Values {
	if filter == nil {
		return nil
	}

	query := url.Values{}
	if filter.SinceDate != nil && !filter.SinceDate.IsZero() {
		query.Set("since_date", filter.SinceDate.String())
	}
	if filter.Type != "" {
		query.Set("type", filter.Type)
	}

	if len(query) == 0 {
		return nil
	}
	return query
}

// ListByBudget retrieves transactions across the whole budget
func (s *transactionService) ListByBudget(ctx context.Context, budgetID string, filter *TransactionFilter) ([]*Transaction, error) {
	var result struct {
		Transactions []*Transaction `json:"transactions"`
	}

	path := fmt.Sprintf("/budgets/%s/transactions", budgetID)
	if err := s.client.do(ctx, http.MethodGet, path, filterQuery(filter), nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get transactions")
	}

	return result.Transactions, nil
}

// ListByAccount retrieves transactions for one account
func (s *transactionService) ListByAccount(ctx context.Context, budgetID, accountID string, filter *TransactionFilter) ([]*Transaction, error) {
	var result struct {
		Transactions []*Transaction `json:"transactions"`
	}

	path := fmt.Sprintf("/budgets/%s/accounts/%s/transactions", budgetID, accountID)
	if err := s.client.do(ctx, http.MethodGet, path, filterQuery(filter), nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get account transactions")
	}

	return result.Transactions, nil
}

// Create creates a new transaction
func (s *transactionService) Create(ctx context.Context, budgetID string, params *NewTransaction) (*Transaction, error) {
	body := map[string]interface{}{
		"transaction": params,
	}

	var result struct {
		Transaction *Transaction `json:"transaction"`
	}

	path := fmt.Sprintf("/budgets/%s/transactions", budgetID)
	if err := s.client.do(ctx, http.MethodPost, path, nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to create transaction")
	}

	if result.Transaction == nil {
		return nil, errors.New("no transaction returned from creation")
	}

	return result.Transaction, nil
}

// SetCategory assigns a category to an existing transaction
func (s *transactionService) SetCategory(ctx context.Context, budgetID, transactionID, categoryID string) (*Transaction, error) {
	body := map[string]interface{}{
		"transaction": map[string]interface{}{
			"category_id": categoryID,
		},
	}

	var result struct {
		Transaction *Transaction `json:"transaction"`
	}

	path := fmt.Sprintf("/budgets/%s/transactions/%s", budgetID, transactionID)
	if err := s.client.do(ctx, http.MethodPut, path, nil, body, &result); err != nil {
		return nil, errors.Wrap(err, "failed to update transaction category")
	}

	if result.Transaction == nil {
		return nil, errors.New("no transaction returned from update")
	}

	return result.Transaction, nil
}
