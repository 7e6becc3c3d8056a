package repositories

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// JournalReader defines read operations on the journal registry.
type JournalReader interface {
	// FindJournalByID retrieves a journal by its unique identifier.
	FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// FindJournalByCode retrieves a journal by its unique code.
	FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error)

	// ListJournals returns journals ordered by code. With activeOnly set the
	// listing is restricted to active journals.
	ListJournals(ctx context.Context, activeOnly bool) ([]domain.Journal, error)

	// IsJournalReferenced reports whether any entry targets the journal.
	IsJournalReferenced(ctx context.Context, journalID string) (bool, error)
}

// JournalWriter defines write operations on the journal registry.
type JournalWriter interface {
	// SaveJournal inserts a new journal.
	SaveJournal(ctx context.Context, journal domain.Journal) error

	// UpdateJournal persists changes to an existing journal, including the
	// active flag.
	UpdateJournal(ctx context.Context, journal domain.Journal) error

	// DeleteJournal removes a journal row permanently.
	DeleteJournal(ctx context.Context, journalID string) error
}

// JournalRepositoryFacade combines all journal repository interfaces.
type JournalRepositoryFacade interface {
	JournalReader
	JournalWriter
}
