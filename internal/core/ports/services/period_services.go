package services

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// PeriodSvcFacade exposes fiscal period registry operations.
type PeriodSvcFacade interface {
	// CreatePeriod adds an open period. Fails with ErrInvalidRange when
	// startDate > endDate, or ErrOverlappingPeriod when the range intersects
	// an existing period.
	CreatePeriod(ctx context.Context, req dto.CreatePeriodRequest, creatorUserID string) (*domain.Period, error)

	// GetPeriodByID retrieves one period.
	GetPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// ListPeriods returns all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.Period, error)

	// ClosePeriod performs the one-way Open -> Closed transition. Fails with
	// ErrAlreadyClosed on a closed period. There is no reopen.
	ClosePeriod(ctx context.Context, periodID string, updaterUserID string) (*domain.Period, error)

	// DeletePeriod removes an open, unreferenced period. Fails with
	// ErrClosedPeriod or ErrReferencedEntity otherwise.
	DeletePeriod(ctx context.Context, periodID string, deleterUserID string) error
}
