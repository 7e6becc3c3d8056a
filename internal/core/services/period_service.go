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

// periodService implements the PeriodSvcFacade interface
type periodService struct {
	BaseService
	periodRepo portsrepo.PeriodRepositoryFacade
}

// NewPeriodService creates a new period service.
func NewPeriodService(repo portsrepo.PeriodRepositoryFacade) portssvc.PeriodSvcFacade {
	return &periodService{periodRepo: repo}
}

// Ensure periodService implements the PeriodSvcFacade interface
var _ portssvc.PeriodSvcFacade = (*periodService)(nil)

func (s *periodService) CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error) {
	startDate, err := time.ParseInLocation(dto.DateLayout, req.StartDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid start date: %v", apperrors.ErrValidation, err)
	}
	endDate, err := time.ParseInLocation(dto.DateLayout, req.EndDate, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid end date: %v", apperrors.ErrValidation, err)
	}

	if startDate.After(endDate) {
		err := fmt.Errorf("%w: %s > %s", apperrors.ErrInvalidRange, req.StartDate, req.EndDate)
		s.LogError(ctx, err, "Period range rejected", slog.String("code", req.Code))
		return nil, err
	}

	overlapping, err := s.periodRepo.FindOverlappingPeriod(ctx, startDate, endDate)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check period overlap", slog.String("code", req.Code))
		return nil, err
	}
	if overlapping != nil {
		err := fmt.Errorf("%w: range intersects period %s", apperrors.ErrOverlappingPeriod, overlapping.Code)
		s.LogError(ctx, err, "Period overlap rejected",
			slog.String("code", req.Code),
			slog.String("conflicting_period", overlapping.Code))
		return nil, err
	}

	now := time.Now()
	period := domain.Period{
		PeriodID:  uuid.NewString(),
		Code:      req.Code,
		StartDate: startDate,
		EndDate:   endDate,
		Closed:    false,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.periodRepo.SavePeriod(ctx, period); err != nil {
		s.LogError(ctx, err, "Failed to save period", slog.String("period_id", period.PeriodID))
		return nil, err
	}

	s.LogInfo(ctx, "Period created successfully",
		slog.String("period_id", period.PeriodID),
		slog.String("code", period.Code))
	return &period, nil
}

func (s *periodService) GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	period, err := s.periodRepo.FindPeriodByID(ctx, periodID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find period by ID", slog.String("period_id", periodID))
		}
		return nil, err
	}
	return period, nil
}

func (s *periodService) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	periods, err := s.periodRepo.ListPeriods(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list periods")
		return nil, err
	}
	if periods == nil {
		periods = []domain.Period{}
	}
	return periods, nil
}

func (s *periodService) ClosePeriod(ctx context.Context, periodID string, updaterUserID string) (*domain.Period, error) {
	period, err := s.GetPeriodByID(ctx, periodID)
	if err != nil {
		return nil, err
	}
	if period.Closed {
		err := fmt.Errorf("%w: period %s", apperrors.ErrAlreadyClosed, period.Code)
		s.LogError(ctx, err, "Close refused on closed period", slog.String("period_id", periodID))
		return nil, err
	}

	now := time.Now()
	if err := s.periodRepo.ClosePeriod(ctx, periodID, updaterUserID, now); err != nil {
		s.LogError(ctx, err, "Failed to close period", slog.String("period_id", periodID))
		return nil, err
	}

	period.Closed = true
	period.LastUpdatedAt = now
	period.LastUpdatedBy = updaterUserID

	s.LogInfo(ctx, "Period closed",
		slog.String("period_id", periodID),
		slog.String("code", period.Code))
	return period, nil
}

func (s *periodService) DeletePeriod(ctx context.Context, periodID string, deleterUserID string) error {
	period, err := s.GetPeriodByID(ctx, periodID)
	if err != nil {
		return err
	}
	if period.Closed {
		err := fmt.Errorf("%w: period %s", apperrors.ErrClosedPeriod, period.Code)
		s.LogError(ctx, err, "Delete refused on closed period", slog.String("period_id", periodID))
		return err
	}

	referenced, err := s.periodRepo.IsPeriodReferenced(ctx, periodID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check period references", slog.String("period_id", periodID))
		return err
	}
	if referenced {
		err := fmt.Errorf("%w: period %s has entries", apperrors.ErrReferencedEntity, period.Code)
		s.LogError(ctx, err, "Refused delete on referenced period", slog.String("period_id", periodID))
		return err
	}

	if err := s.periodRepo.DeletePeriod(ctx, periodID); err != nil {
		s.LogError(ctx, err, "Failed to delete period", slog.String("period_id", periodID))
		return err
	}

	s.LogInfo(ctx, "Period deleted successfully",
		slog.String("period_id", periodID),
		slog.String("deleted_by", deleterUserID))
	return nil
}
