package ynab

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// accountService implements the AccountService interface
type accountService struct {
	client *Client
}

// List retrieves all accounts in a budget
func (s *accountService) List(ctx context.Context, budgetID string) ([]*Account, error) {
	var result struct {
		Accounts []*Account `json:"accounts"`
	}

	path := fmt.Sprintf("/budgets/%s/accounts", budgetID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get accounts")
	}

	return result.Accounts, nil
}

// Get retrieves a single account by ID
func (s *accountService) Get(ctx context.Context, budgetID, accountID string) (*Account, error) {
	var result struct {
		Account *Account `json:"account"`
	}

	path := fmt.Sprintf("/budgets/%s/accounts/%s", budgetID, accountID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get account")
	}

	if result.Account == nil {
		return nil, ErrNotFound
	}

	return result.Account, nil
}
