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
	"github.com/gestinov/ledger_backend/internal/utils/accounting"
)

// postingService implements the PostingSvcFacade interface. It is the only
// write path for ledger entries: every mutation re-checks entry legality
// against the registries before it touches storage.
type postingService struct {
	BaseService
	entryRepo   portsrepo.EntryRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
	journalRepo portsrepo.JournalRepositoryFacade
	periodRepo  portsrepo.PeriodRepositoryFacade
}

// NewPostingService creates the posting engine service.
func NewPostingService(
	entryRepo portsrepo.EntryRepositoryFacade,
	accountRepo portsrepo.AccountRepositoryFacade,
	journalRepo portsrepo.JournalRepositoryFacade,
	periodRepo portsrepo.PeriodRepositoryFacade,
) portssvc.PostingSvcFacade {
	return &postingService{
		entryRepo:   entryRepo,
		accountRepo: accountRepo,
		journalRepo: journalRepo,
		periodRepo:  periodRepo,
	}
}

// Ensure postingService implements the PostingSvcFacade interface
var _ portssvc.PostingSvcFacade = (*postingService)(nil)

// registryState bundles the context an entry is checked against.
type registryState struct {
	journal  *domain.Journal
	period   *domain.Period
	accounts map[string]domain.Account
}

// fetchRegistryState loads the journal, period and line accounts an entry
// references. A missing journal or period surfaces as ErrNotFound; missing
// accounts are left for the validator, which reports them as non-postable.
func (s *postingService) fetchRegistryState(ctx context.Context, entry domain.Entry) (*registryState, error) {
	journal, err := s.journalRepo.FindJournalByID(ctx, entry.JournalID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: journal %s", apperrors.ErrNotFound, entry.JournalID)
		}
		return nil, err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: period %s", apperrors.ErrNotFound, entry.PeriodID)
		}
		return nil, err
	}

	accountIDs := make([]string, 0, len(entry.Lines))
	seen := make(map[string]bool, len(entry.Lines))
	for _, line := range entry.Lines {
		if !seen[line.AccountID] {
			seen[line.AccountID] = true
			accountIDs = append(accountIDs, line.AccountID)
		}
	}

	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		return nil, err
	}

	return &registryState{journal: journal, period: period, accounts: accounts}, nil
}

// checkEntry runs the full legality check against current registry state.
func (s *postingService) checkEntry(ctx context.Context, entry domain.Entry) (*registryState, error) {
	state, err := s.fetchRegistryState(ctx, entry)
	if err != nil {
		return nil, err
	}
	if err := accounting.ValidateEntry(entry, state.journal, state.period, state.accounts); err != nil {
		return nil, err
	}
	return state, nil
}

// buildEntry converts a request payload into a domain entry with fresh IDs.
func buildEntry(entryID string, req dto.CreateEntryRequest, userID string, now time.Time) (domain.Entry, error) {
	date, err := time.ParseInLocation(dto.DateLayout, req.Date, time.UTC)
	if err != nil {
		return domain.Entry{}, fmt.Errorf("%w: invalid entry date: %v", apperrors.ErrValidation, err)
	}

	lines := make([]domain.EntryLine, len(req.Lines))
	for i, l := range req.Lines {
		lines[i] = domain.EntryLine{
			LineID:    uuid.NewString(),
			EntryID:   entryID,
			AccountID: l.AccountID,
			Label:     l.Label,
			Debit:     l.Debit,
			Credit:    l.Credit,
		}
	}

	return domain.Entry{
		EntryID:           entryID,
		Label:             req.Label,
		Date:              date,
		JournalID:         req.JournalID,
		PeriodID:          req.PeriodID,
		Lines:             lines,
		Validated:         false,
		ExternalReference: req.ExternalReference,
		Notes:             req.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}, nil
}

func (s *postingService) CreateDraft(ctx context.Context, req dto.CreateEntryRequest, creatorUserID string) (*domain.Entry, error) {
	entry, err := buildEntry(uuid.NewString(), req, creatorUserID, time.Now())
	if err != nil {
		return nil, err
	}

	// Drafts go through the same legality check as posting, so an illegal
	// entry never reaches storage even in draft form.
	if _, err := s.checkEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Draft rejected", slog.String("journal_id", entry.JournalID))
		return nil, err
	}

	if err := s.entryRepo.SaveEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to save draft entry", slog.String("entry_id", entry.EntryID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry created",
		slog.String("entry_id", entry.EntryID),
		slog.Int("line_count", len(entry.Lines)))
	return &entry, nil
}

func (s *postingService) GetEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry by ID", slog.String("entry_id", entryID))
		}
		return nil, err
	}

	lines, err := s.entryRepo.FindLinesByEntryID(ctx, entryID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entry lines", slog.String("entry_id", entryID))
		return nil, err
	}
	entry.Lines = lines

	return entry, nil
}

func (s *postingService) ListEntries(ctx context.Context, params dto.ListEntriesParams) ([]domain.Entry, *string, error) {
	filter := portsrepo.EntryListFilter{JournalID: params.JournalID}

	if params.From != "" {
		from, err := time.ParseInLocation(dto.DateLayout, params.From, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid from date: %v", apperrors.ErrValidation, err)
		}
		filter.From = from
	}
	if params.To != "" {
		to, err := time.ParseInLocation(dto.DateLayout, params.To, time.UTC)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: invalid to date: %v", apperrors.ErrValidation, err)
		}
		filter.To = to
	}

	entries, nextToken, err := s.entryRepo.ListEntries(ctx, filter, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list entries")
		return nil, nil, err
	}
	if entries == nil {
		entries = []domain.Entry{}
	}
	return entries, nextToken, nil
}

func (s *postingService) UpdateDraft(ctx context.Context, entryID string, req dto.UpdateEntryRequest, updaterUserID string) (*domain.Entry, error) {
	existing, err := s.GetEntryByID(ctx, entryID)
	if err != nil {
		return nil, err
	}
	if existing.Validated {
		err := fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyValidated, entryID)
		s.LogError(ctx, err, "Update refused on validated entry", slog.String("entry_id", entryID))
		return nil, err
	}

	// A draft stranded in a closed period is frozen too.
	currentPeriod, err := s.periodRepo.FindPeriodByID(ctx, existing.PeriodID)
	if err != nil {
		return nil, err
	}
	if currentPeriod.Closed {
		err := fmt.Errorf("%w: period %s", apperrors.ErrClosedPeriod, currentPeriod.Code)
		s.LogError(ctx, err, "Update refused on draft in closed period", slog.String("entry_id", entryID))
		return nil, err
	}

	entry, err := buildEntry(entryID, req, updaterUserID, time.Now())
	if err != nil {
		return nil, err
	}
	entry.CreatedAt = existing.CreatedAt
	entry.CreatedBy = existing.CreatedBy

	if _, err := s.checkEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Draft update rejected", slog.String("entry_id", entryID))
		return nil, err
	}

	if err := s.entryRepo.ReplaceEntry(ctx, entry); err != nil {
		s.LogError(ctx, err, "Failed to replace draft entry", slog.String("entry_id", entryID))
		return nil, err
	}

	s.LogInfo(ctx, "Draft entry updated", slog.String("entry_id", entryID))
	return &entry, nil
}

// maxPostAttempts bounds how often ValidateEntry re-reads an entry whose
// lines keep changing under concurrent draft updates.
const maxPostAttempts = 3

func (s *postingService) ValidateEntry(ctx context.Context, entryID string, validatorUserID string) (*domain.Entry, error) {
	for attempt := 0; attempt < maxPostAttempts; attempt++ {
		entry, err := s.GetEntryByID(ctx, entryID)
		if err != nil {
			return nil, err
		}
		if entry.Validated {
			// Idempotent: validating a validated entry succeeds without effect.
			s.LogDebug(ctx, "Entry already validated", slog.String("entry_id", entryID))
			return entry, nil
		}

		// Re-run the full check against current registry state: the journal may
		// have been deactivated or the period closed since the draft was created.
		state, err := s.checkEntry(ctx, *entry)
		if err != nil {
			s.LogError(ctx, err, "Entry validation rejected", slog.String("entry_id", entryID))
			return nil, err
		}

		balanceChanges, err := accounting.BalanceChanges(entry.Lines, state.accounts)
		if err != nil {
			s.LogError(ctx, err, "Failed to compute balance changes", slog.String("entry_id", entryID))
			return nil, err
		}

		// The repository only applies these deltas if the entry row still
		// carries the timestamp the lines were read at; a draft update that
		// slipped in between invalidates the deltas and we start over.
		now := time.Now()
		err = s.entryRepo.PostEntry(ctx, entryID, entry.LastUpdatedAt, balanceChanges, validatorUserID, now)
		if err != nil {
			if errors.Is(err, apperrors.ErrAlreadyValidated) {
				// Lost a posting race; the other caller's outcome stands.
				s.LogDebug(ctx, "Entry validated concurrently", slog.String("entry_id", entryID))
				return s.GetEntryByID(ctx, entryID)
			}
			if errors.Is(err, apperrors.ErrStaleEntry) {
				s.LogDebug(ctx, "Entry changed during validation, retrying", slog.String("entry_id", entryID))
				continue
			}
			s.LogError(ctx, err, "Failed to post entry", slog.String("entry_id", entryID))
			return nil, err
		}

		entry.Validated = true
		entry.LastUpdatedAt = now
		entry.LastUpdatedBy = validatorUserID

		s.LogInfo(ctx, "Entry validated and posted",
			slog.String("entry_id", entryID),
			slog.Int64("total_debit", entry.TotalDebit()))
		return entry, nil
	}

	err := fmt.Errorf("%w: entry %s", apperrors.ErrStaleEntry, entryID)
	s.LogError(ctx, err, "Entry kept changing during validation", slog.String("entry_id", entryID))
	return nil, err
}

func (s *postingService) RejectEntry(ctx context.Context, entryID string, rejecterUserID string) error {
	entry, err := s.entryRepo.FindEntryByID(ctx, entryID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find entry for rejection", slog.String("entry_id", entryID))
		}
		return err
	}
	if entry.Validated {
		err := fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyValidated, entryID)
		s.LogError(ctx, err, "Rejection refused on validated entry", slog.String("entry_id", entryID))
		return err
	}

	period, err := s.periodRepo.FindPeriodByID(ctx, entry.PeriodID)
	if err != nil {
		return err
	}
	if period.Closed {
		err := fmt.Errorf("%w: period %s", apperrors.ErrClosedPeriod, period.Code)
		s.LogError(ctx, err, "Rejection refused on draft in closed period", slog.String("entry_id", entryID))
		return err
	}

	if err := s.entryRepo.DeleteEntry(ctx, entryID); err != nil {
		s.LogError(ctx, err, "Failed to delete rejected entry", slog.String("entry_id", entryID))
		return err
	}

	s.LogInfo(ctx, "Draft entry rejected",
		slog.String("entry_id", entryID),
		slog.String("rejected_by", rejecterUserID))
	return nil
}
