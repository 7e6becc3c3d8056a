package domain

// Journal is a categorized transaction log that ledger entries are filed under
// (sales, purchases, treasury, miscellaneous). Entries may only be posted
// against an active journal.
type Journal struct {
	JournalID string `json:"journalID"` // Primary Key (UUID)
	Code      string `json:"code"`      // Unique short code (e.g. "VENTES")
	Label     string `json:"label"`
	Active    bool   `json:"active"`
	AuditFields
}
