package services

import (
	"context"
	"fmt"
	"time"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/gestinov/ledger_backend/internal/core/ports/services"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// reportingService implements the ReportingSvcFacade interface
type reportingService struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
}

// NewReportingService creates a new reporting service.
func NewReportingService(repo portsrepo.ReportingRepository) portssvc.ReportingSvcFacade {
	return &reportingService{reportingRepo: repo}
}

// Ensure reportingService implements the ReportingSvcFacade interface
var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

func (s *reportingService) AccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error) {
	rows, err := s.reportingRepo.GetAccountBalances(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch account balances")
		return nil, err
	}
	return rows, nil
}

func (s *reportingService) TrialBalance(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error) {
	rows, err := s.reportingRepo.GetTrialBalance(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch trial balance")
		return nil, err
	}
	return rows, nil
}

func (s *reportingService) EntrySnapshots(ctx context.Context, params dto.ListEntriesParams) ([]domain.EntrySnapshotRow, error) {
	filter := portsrepo.EntryListFilter{JournalID: params.JournalID}

	if params.From != "" {
		from, err := time.ParseInLocation(dto.DateLayout, params.From, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid from date: %v", apperrors.ErrValidation, err)
		}
		filter.From = from
	}
	if params.To != "" {
		to, err := time.ParseInLocation(dto.DateLayout, params.To, time.UTC)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid to date: %v", apperrors.ErrValidation, err)
		}
		filter.To = to
	}

	rows, err := s.reportingRepo.GetEntrySnapshots(ctx, filter, params.Limit)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch entry snapshots")
		return nil, err
	}
	return rows, nil
}
