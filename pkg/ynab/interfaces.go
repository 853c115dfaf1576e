package ynab

import "context"

// BudgetService handles budget-level operations
type BudgetService interface {
	// List retrieves all budgets
	List(ctx context.Context) ([]*Budget, error)
}

// AccountService handles account operations within a budget
type AccountService interface {
	// List retrieves all accounts in a budget
	List(ctx context.Context, budgetID string) ([]*Account, error)

	// Get retrieves a single account by ID
	Get(ctx context.Context, budgetID, accountID string) (*Account, error)
}

// TransactionService handles transaction operations within a budget
type TransactionService interface {
	// ListByBudget retrieves transactions across the whole budget
	ListByBudget(ctx context.Context, budgetID string, filter *TransactionFilter) ([]*Transaction, error)

	// ListByAccount retrieves transactions for one account
	ListByAccount(ctx context.Context, budgetID, accountID string, filter *TransactionFilter) ([]*Transaction, error)

	// Create creates a new transaction
	Create(ctx context.Context, budgetID string, params *NewTransaction) (*Transaction, error)

	// SetCategory assigns a category to an existing transaction
	SetCategory(ctx context.Context, budgetID, transactionID, categoryID string) (*Transaction, error)
}

// CategoryService handles category operations within a budget
type CategoryService interface {
	// List retrieves all category groups with their categories
	List(ctx context.Context, budgetID string) ([]*CategoryGroup, error)
}
