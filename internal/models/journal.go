package models

// Journal is the persistence shape of a journal registry row.
type Journal struct {
	JournalID string `db:"journal_id"`
	Code      string `db:"code"`
	Label     string `db:"label"`
	Active    bool   `db:"active"`
	AuditFields
}
