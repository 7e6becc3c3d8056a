package models

// AccountType mirrors the domain account type for DB storage.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Account is the persistence shape of a chart-of-accounts row.
type Account struct {
	AccountID   string      `db:"account_id"`
	Code        string      `db:"code"`
	Label       string      `db:"label"`
	AccountType AccountType `db:"account_type"`
	AllowEntry  bool        `db:"allow_entry"`
	IsStatic    bool        `db:"is_static"`
	Active      bool        `db:"active"`
	Balance     int64       `db:"balance"` // minor units
	AuditFields
}
