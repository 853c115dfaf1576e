package ynab

import "time"

// Account types as the API reports them
const (
	AccountTypeChecking       = "checking"
	AccountTypeSavings        = "savings"
	AccountTypeCreditCard     = "creditCard"
	AccountTypeMortgage       = "mortgage"
	AccountTypeAutoLoan       = "autoLoan"
	AccountTypeStudentLoan    = "studentLoan"
	AccountTypeOtherAsset     = "otherAsset"
	AccountTypeOtherLiability = "otherLiability"
)

// Cleared states for transactions
const (
	ClearedUncleared  = "uncleared"
	ClearedCleared    = "cleared"
	ClearedReconciled = "reconciled"
)

// Budget represents a top-level budget container
type Budget struct {
	ID             string     `json:"id"`
	Name           string     `json:"name"`
	LastModifiedOn *time.Time `json:"last_modified_on,omitempty"`
	FirstMonth     Date       `json:"first_month"`
	LastMonth      Date       `json:"last_month"`
}

// Account represents a budget account. All balances are integer milliunits
// (1/1000 of a currency unit).
type Account struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Type             string `json:"type"`
	OnBudget         bool   `json:"on_budget"`
	Closed           bool   `json:"closed"`
	Note             string `json:"note,omitempty"`
	Balance          int64  `json:"balance"`
	ClearedBalance   int64  `json:"cleared_balance"`
	UnclearedBalance int64  `json:"uncleared_balance"`
	TransferPayeeID  string `json:"transfer_payee_id,omitempty"`
	Deleted          bool   `json:"deleted"`
}

// Transaction represents a transaction as returned by the API. Nullable
// identifiers are pointers; a nil CategoryID means uncategorized.
type Transaction struct {
	ID                    string  `json:"id"`
	Date                  Date    `json:"date"`
	Amount                int64   `json:"amount"`
	Memo                  string  `json:"memo,omitempty"`
	Cleared               string  `json:"cleared"`
	Approved              bool    `json:"approved"`
	FlagColor             string  `json:"flag_color,omitempty"`
	AccountID             string  `json:"account_id"`
	AccountName           string  `json:"account_name,omitempty"`
	PayeeID               *string `json:"payee_id,omitempty"`
	PayeeName             string  `json:"payee_name,omitempty"`
	CategoryID            *string `json:"category_id,omitempty"`
	CategoryName          string  `json:"category_name,omitempty"`
	TransferAccountID     *string `json:"transfer_account_id,omitempty"`
	TransferTransactionID *string `json:"transfer_transaction_id,omitempty"`
	MatchedTransactionID  *string `json:"matched_transaction_id,omitempty"`
	ImportID              *string `json:"import_id,omitempty"`
	Deleted               bool    `json:"deleted"`
}

// NewTransaction is the payload for creating a transaction
type NewTransaction struct {
	AccountID  string  `json:"account_id"`
	Date       Date    `json:"date"`
	Amount     int64   `json:"amount"`
	PayeeName  string  `json:"payee_name,omitempty"`
	CategoryID *string `json:"category_id,omitempty"`
	Memo       string  `json:"memo,omitempty"`
	Cleared    string  `json:"cleared,omitempty"`
	Approved   bool    `json:"approved,omitempty"`
}

// TransactionFilter narrows transaction listings. SinceDate maps to the
// since_date query parameter; Type to the API's type parameter
// (uncategorized or unapproved).
type TransactionFilter struct {
	SinceDate *Date
	Type      string
}

// Category represents a spending category. Budgeted/Activity/Balance are
// milliunits for the current month.
type Category struct {
	ID              string `json:"id"`
	CategoryGroupID string `json:"category_group_id"`
	Name            string `json:"name"`
	Hidden          bool   `json:"hidden"`
	Budgeted        int64  `json:"budgeted"`
	Activity        int64  `json:"activity"`
	Balance         int64  `json:"balance"`
	Deleted         bool   `json:"deleted"`
}

// CategoryGroup is a named group of categories
type CategoryGroup struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Hidden     bool        `json:"hidden"`
	Deleted    bool        `json:"deleted"`
	Categories []*Category `json:"categories"`
}
