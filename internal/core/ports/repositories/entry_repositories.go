package repositories

import (
	"context"
	"time"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// EntryListFilter narrows an entry listing. All fields are optional; zero
// times mean an open-ended date range.
type EntryListFilter struct {
	JournalID string
	From      time.Time
	To        time.Time
}

// EntryReader defines read operations on ledger entries.
type EntryReader interface {
	// FindEntryByID retrieves an entry header by its unique identifier.
	FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// FindLinesByEntryID retrieves the lines of one entry in a stable order.
	FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error)

	// ListEntries returns a page of entries ordered by (date, created_at,
	// entry_id) ascending, plus a token restarting the listing after the
	// last row.
	ListEntries(ctx context.Context, filter EntryListFilter, limit int, nextToken *string) ([]domain.Entry, *string, error)
}

// EntryWriter defines write operations on ledger entries.
type EntryWriter interface {
	// SaveEntry inserts an entry header and its lines atomically.
	SaveEntry(ctx context.Context, entry domain.Entry) error

	// ReplaceEntry rewrites a draft's header and lines atomically. It fails
	// with ErrAlreadyValidated when the stored entry is validated.
	ReplaceEntry(ctx context.Context, entry domain.Entry) error

	// DeleteEntry removes a draft and its lines atomically. It fails with
	// ErrAlreadyValidated when the stored entry is validated.
	DeleteEntry(ctx context.Context, entryID string) error

	// PostEntry marks the entry validated and applies the minor-unit balance
	// deltas to the affected accounts in one database transaction. The entry
	// row and the account rows are locked for update; either everything
	// applies or nothing does. Posting an already-validated entry returns
	// ErrAlreadyValidated without touching balances. expectedUpdatedAt is the
	// last-updated timestamp the caller derived the deltas from; if the locked
	// row carries a different timestamp the entry changed since that read and
	// posting fails with ErrStaleEntry.
	PostEntry(ctx context.Context, entryID string, expectedUpdatedAt time.Time, balanceChanges map[string]int64, userID string, now time.Time) error
}

// EntryRepositoryFacade combines all entry repository interfaces.
type EntryRepositoryFacade interface {
	EntryReader
	EntryWriter
}
