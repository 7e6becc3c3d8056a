package services

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// JournalSvcFacade exposes journal registry operations.
type JournalSvcFacade interface {
	// CreateJournal adds a journal. New journals start active. Fails with
	// ErrDuplicateCode when the code is taken.
	CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error)

	// GetJournalByID retrieves one journal.
	GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error)

	// UpdateJournal applies a patch to the journal's label.
	UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, updaterUserID string) (*domain.Journal, error)

	// DeactivateJournal takes the journal out of the posting paths.
	DeactivateJournal(ctx context.Context, journalID string, updaterUserID string) error

	// ActivateJournal reverses a deactivation.
	ActivateJournal(ctx context.Context, journalID string, updaterUserID string) error

	// DeleteJournal removes an unreferenced journal. Fails with
	// ErrReferencedEntity when any entry targets it.
	DeleteJournal(ctx context.Context, journalID string, deleterUserID string) error

	// ListJournals returns journals ordered by code; activeOnly restricts the
	// listing to those accepting postings.
	ListJournals(ctx context.Context, activeOnly bool) ([]domain.Journal, error)
}
