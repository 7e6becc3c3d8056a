package services

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// PostingSvcFacade is the posting engine: the single consistency boundary for
// ledger entry mutations. Drafts are validated on save, re-validated against
// current registry state on posting, and frozen once validated.
type PostingSvcFacade interface {
	// CreateDraft validates and persists a new draft entry. Malformed drafts
	// (non-postable accounts, mixed lines, unbalanced sums) and drafts that
	// are illegal under current journal/period state are rejected outright.
	CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error)

	// GetEntryByID retrieves an entry with its lines.
	GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error)

	// ListEntries returns a page of entries (headers with lines) matching the
	// filter, ordered by date then creation time.
	ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.Entry, *string, error)

	// UpdateDraft rewrites a draft in full. Fails with ErrAlreadyValidated on
	// a validated entry, or ErrClosedPeriod when the draft sits in a closed
	// period.
	UpdateDraft(ctx context.Context, entryID string, req dto.UpdateEntryRequest, updaterUserID string) (*domain.Entry, error)

	// ValidateEntry re-runs the full legality check against current registry
	// state, then atomically marks the entry validated and applies each
	// line's delta to its account balance. Validating an already-validated
	// entry is a no-op success.
	ValidateEntry(ctx context.Context, entryID string, validatorUserID string) (*domain.Entry, error)

	// RejectEntry deletes a draft. Fails with ErrAlreadyValidated on a
	// validated entry and ErrClosedPeriod on a draft inside a closed period.
	RejectEntry(ctx context.Context, entryID string, rejecterUserID string) error
}
