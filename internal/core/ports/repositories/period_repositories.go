package repositories

import (
	"context"
	"time"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// PeriodReader defines read operations on the period registry.
type PeriodReader interface {
	// FindPeriodByID retrieves a period by its unique identifier.
	FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error)

	// FindOverlappingPeriod returns the first period whose range intersects
	// [start, end], or ErrNotFound when none does.
	FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.Period, error)

	// ListPeriods returns all periods ordered by start date.
	ListPeriods(ctx context.Context) ([]domain.Period, error)

	// IsPeriodReferenced reports whether any entry (draft or validated)
	// targets the period.
	IsPeriodReferenced(ctx context.Context, periodID string) (bool, error)
}

// PeriodWriter defines write operations on the period registry.
type PeriodWriter interface {
	// SavePeriod inserts a new period.
	SavePeriod(ctx context.Context, period domain.Period) error

	// ClosePeriod flips the closed flag. The transition is one-way.
	ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error

	// DeletePeriod removes a period row permanently.
	DeletePeriod(ctx context.Context, periodID string) error
}

// PeriodRepositoryFacade combines all period repository interfaces.
type PeriodRepositoryFacade interface {
	PeriodReader
	PeriodWriter
}
