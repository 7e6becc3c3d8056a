package domain

// AccountType defines the fundamental accounting type of an account.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is one entry of the chart of accounts.
// Balance is kept in integer minor currency units (cents); all balance
// arithmetic in the system is int64, never floating point.
type Account struct {
	AccountID   string      `json:"accountID"`   // Primary Key (UUID)
	Code        string      `json:"code"`        // Unique, sortable account number (e.g. "411000")
	Label       string      `json:"label"`       // Display name
	AccountType AccountType `json:"accountType"`
	AllowEntry  bool        `json:"allowEntry"`  // Only leaf accounts may receive postings
	IsStatic    bool        `json:"isStatic"`    // Balance carries over, not reset at period end
	Active      bool        `json:"active"`      // Deactivation substitute for delete once referenced
	Balance     int64       `json:"balance"`     // Running balance in minor units, updated on posting
	AuditFields
}

// IsDebitNormal reports whether the account type increases on the debit side.
// Assets and expenses are debit-normal; liabilities, equity and revenue are
// credit-normal.
func (t AccountType) IsDebitNormal() bool {
	return t == Asset || t == Expense
}
