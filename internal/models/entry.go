package models

import "time"

// Entry is the persistence shape of a ledger entry header row.
type Entry struct {
	EntryID           string    `db:"entry_id"`
	Label             string    `db:"label"`
	EntryDate         time.Time `db:"entry_date"`
	JournalID         string    `db:"journal_id"`
	PeriodID          string    `db:"period_id"`
	Validated         bool      `db:"validated"`
	ExternalReference string    `db:"external_reference"`
	Notes             string    `db:"notes"`
	AuditFields
}

// EntryLine is the persistence shape of a single ledger line row.
type EntryLine struct {
	LineID    string `db:"line_id"`
	EntryID   string `db:"entry_id"`
	AccountID string `db:"account_id"`
	Label     string `db:"label"`
	Debit     int64  `db:"debit"`
	Credit    int64  `db:"credit"`
}
