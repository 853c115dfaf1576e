package ynab

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// categoryService implements the CategoryService interface
type categoryService struct {
	client *Client
}

// List retrieves all category groups with their categories
func (s *categoryService) List(ctx context.Context, budgetID string) ([]*CategoryGroup, error) {
	var result struct {
		CategoryGroups []*CategoryGroup `json:"category_groups"`
	}

	path := fmt.Sprintf("/budgets/%s/categories", budgetID)
	if err := s.client.do(ctx, http.MethodGet, path, nil, nil, &result); err != nil {
		return nil, errors.Wrap(err, "failed to get categories")
	}

	return result.CategoryGroups, nil
}
