package domain

import "time"

// EntryLine is a single debit or credit posting to one account within an
// entry. Amounts are integer minor currency units; exactly one of Debit and
// Credit is nonzero on a well-formed line.
type EntryLine struct {
	LineID    string `json:"lineID"`  // Primary Key (UUID)
	EntryID   string `json:"entryID"` // FK -> Entry.EntryID
	AccountID string `json:"accountID"`
	Label     string `json:"label"`
	Debit     int64  `json:"debit"`  // >= 0, minor units
	Credit    int64  `json:"credit"` // >= 0, minor units
}

// Entry is one balanced accounting transaction composed of two or more lines.
// It is created as a draft (Validated false), may be edited or rejected while
// a draft, and becomes permanent once validated. Validated entries and their
// lines are never mutated or deleted.
type Entry struct {
	EntryID           string      `json:"entryID"` // Primary Key (UUID)
	Label             string      `json:"label"`
	Date              time.Time   `json:"date"` // Must fall inside the referenced period
	JournalID         string      `json:"journalID"`
	PeriodID          string      `json:"periodID"`
	Lines             []EntryLine `json:"lines,omitempty"`
	Validated         bool        `json:"validated"`
	ExternalReference string      `json:"externalReference,omitempty"`
	Notes             string      `json:"notes,omitempty"`
	AuditFields
}

// TotalDebit sums the debit side of the entry's lines in minor units.
func (e Entry) TotalDebit() int64 {
	var sum int64
	for _, l := range e.Lines {
		sum += l.Debit
	}
	return sum
}

// TotalCredit sums the credit side of the entry's lines in minor units.
func (e Entry) TotalCredit() int64 {
	var sum int64
	for _, l := range e.Lines {
		sum += l.Credit
	}
	return sum
}

// IsBalanced reports whether debits equal credits and the entry moves money.
func (e Entry) IsBalanced() bool {
	d := e.TotalDebit()
	return d == e.TotalCredit() && d > 0
}
