package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/gestinov/ledger_backend/internal/core/ports/services"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// journalService implements the JournalSvcFacade interface
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new journal service.
func NewJournalService(repo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: repo}
}

// Ensure journalService implements the JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest, creatorUserID string) (*domain.Journal, error) {
	if _, err := s.journalRepo.FindJournalByCode(ctx, req.Code); err == nil {
		err := fmt.Errorf("%w: journal code %s", apperrors.ErrDuplicateCode, req.Code)
		s.LogError(ctx, err, "Journal code already taken", slog.String("code", req.Code))
		return nil, err
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check journal code uniqueness", slog.String("code", req.Code))
		return nil, err
	}

	now := time.Now()
	journal := domain.Journal{
		JournalID: uuid.NewString(),
		Code:      req.Code,
		Label:     req.Label,
		Active:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journal.JournalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal created successfully",
		slog.String("journal_id", journal.JournalID),
		slog.String("code", journal.Code))
	return &journal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find journal by ID", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

func (s *journalService) UpdateJournal(ctx context.Context, journalID string, req dto.UpdateJournalRequest, updaterUserID string) (*domain.Journal, error) {
	journal, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return nil, err
	}

	if req.Label == nil {
		s.LogDebug(ctx, "No fields provided for journal update", slog.String("journal_id", journalID))
		return journal, nil
	}
	journal.Label = *req.Label

	now := time.Now()
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = updaterUserID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		s.LogError(ctx, err, "Failed to update journal", slog.String("journal_id", journalID))
		return nil, err
	}

	s.LogInfo(ctx, "Journal updated successfully", slog.String("journal_id", journalID))
	return journal, nil
}

func (s *journalService) setActive(ctx context.Context, journalID string, active bool, updaterUserID string) error {
	journal, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return err
	}

	if journal.Active == active {
		// Toggling to the current state is a harmless no-op.
		return nil
	}

	journal.Active = active
	now := time.Now()
	journal.LastUpdatedAt = now
	journal.LastUpdatedBy = updaterUserID

	if err := s.journalRepo.UpdateJournal(ctx, *journal); err != nil {
		s.LogError(ctx, err, "Failed to update journal active flag", slog.String("journal_id", journalID))
		return err
	}

	s.LogInfo(ctx, "Journal active flag updated",
		slog.String("journal_id", journalID),
		slog.Bool("active", active))
	return nil
}

func (s *journalService) DeactivateJournal(ctx context.Context, journalID string, updaterUserID string) error {
	return s.setActive(ctx, journalID, false, updaterUserID)
}

func (s *journalService) ActivateJournal(ctx context.Context, journalID string, updaterUserID string) error {
	return s.setActive(ctx, journalID, true, updaterUserID)
}

func (s *journalService) DeleteJournal(ctx context.Context, journalID string, deleterUserID string) error {
	journal, err := s.GetJournalByID(ctx, journalID)
	if err != nil {
		return err
	}

	referenced, err := s.journalRepo.IsJournalReferenced(ctx, journalID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check journal references", slog.String("journal_id", journalID))
		return err
	}
	if referenced {
		err := fmt.Errorf("%w: journal %s has entries, deactivate it instead", apperrors.ErrReferencedEntity, journal.Code)
		s.LogError(ctx, err, "Refused delete on referenced journal", slog.String("journal_id", journalID))
		return err
	}

	if err := s.journalRepo.DeleteJournal(ctx, journalID); err != nil {
		s.LogError(ctx, err, "Failed to delete journal", slog.String("journal_id", journalID))
		return err
	}

	s.LogInfo(ctx, "Journal deleted successfully",
		slog.String("journal_id", journalID),
		slog.String("deleted_by", deleterUserID))
	return nil
}

func (s *journalService) ListJournals(ctx context.Context, activeOnly bool) ([]domain.Journal, error) {
	journals, err := s.journalRepo.ListJournals(ctx, activeOnly)
	if err != nil {
		s.LogError(ctx, err, "Failed to list journals")
		return nil, err
	}
	if journals == nil {
		journals = []domain.Journal{}
	}
	return journals, nil
}
