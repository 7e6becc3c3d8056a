package domain

import "time"

// AccountBalanceRow is the read-only per-account snapshot handed to reporting
// layers: enough to drive balance-sheet and ledger views without exposing
// mutation. CurrentBalance is in minor units.
type AccountBalanceRow struct {
	AccountID      string      `json:"accountID"`
	Code           string      `json:"code"`
	Label          string      `json:"label"`
	AccountType    AccountType `json:"accountType"`
	CurrentBalance int64       `json:"currentBalance"`
}

// TrialBalanceRow aggregates validated debit and credit totals for one account.
type TrialBalanceRow struct {
	AccountID   string      `json:"accountID"`
	Code        string      `json:"code"`
	Label       string      `json:"label"`
	AccountType AccountType `json:"accountType"`
	Debit       int64       `json:"debit"`
	Credit      int64       `json:"credit"`
}

// EntrySnapshotRow is the read-only per-entry view for ledger reports,
// denormalized with journal and period codes.
type EntrySnapshotRow struct {
	EntryID     string      `json:"entryID"`
	Date        time.Time   `json:"date"`
	Label       string      `json:"label"`
	JournalCode string      `json:"journalCode"`
	PeriodCode  string      `json:"periodCode"`
	Validated   bool        `json:"validated"`
	Lines       []EntryLine `json:"lines"`
}
