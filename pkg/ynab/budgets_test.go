package ynab

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBudgetService_List(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/budgets", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))

		_, _ = w.Write([]byte(`{
			"data": {
				"budgets": [
					{
						"id": "budget-1",
						"name": "My Budget",
						"first_month": "2024-01-01",
						"last_month": "2025-08-01"
					},
					{
						"id": "budget-2",
						"name": "Side Budget",
						"first_month": "2025-01-01",
						"last_month": "2025-08-01"
					}
				]
			}
		}`))
	})

	budgets, err := client.Budgets.List(context.Background())
	require.NoError(t, err)
	require.Len(t, budgets, 2)

	assert.Equal(t, "budget-1", budgets[0].ID)
	assert.Equal(t, "My Budget", budgets[0].Name)
	assert.Equal(t, "2024-01-01", budgets[0].FirstMonth.String())
	assert.Equal(t, "Side Budget", budgets[1].Name)
}

func TestBudgetService_List_Empty(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"data": {"budgets": []}}`))
	})

	budgets, err := client.Budgets.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, budgets)
}

func TestBudgetService_List_Unauthorized(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":{"id":"401","name":"unauthorized","detail":"Unauthorized"}}`))
	})

	budgets, err := client.Budgets.List(context.Background())
	assert.Nil(t, budgets)
	assert.ErrorIs(t, err, ErrUnauthorized)
}
