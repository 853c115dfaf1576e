package ynab

import (
	"context"
	"net/http"

	"github.com/pkg/errors"
)

// budgetService implements the BudgetService interface
type budgetService struct {
	client *Client
}

// List retrieves all budgets
func (s *budgetService) List(ctx context.Context) ([]*Budget, error) {
	var result struct {
		Budgets []*Budget `json:"budgets"`
	}

	if err := s.client.do(ctx, http.MethodGet, "/budgets", nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get budgets")
	}

	return result.Budgets, nil
}
