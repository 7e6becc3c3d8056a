package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	"github.com/gestinov/ledger_backend/internal/models"
	"github.com/gestinov/ledger_backend/internal/utils/mapping"
)

const periodColumns = `period_id, code, start_date, end_date, closed, created_at, created_by, last_updated_at, last_updated_by`

type PgxPeriodRepository struct {
	pool *pgxpool.Pool
}

// newPgxPeriodRepository creates a new repository for fiscal period data.
func newPgxPeriodRepository(pool *pgxpool.Pool) portsrepo.PeriodRepositoryFacade {
	return &PgxPeriodRepository{pool: pool}
}

// Ensure PgxPeriodRepository implements portsrepo.PeriodRepositoryFacade
var _ portsrepo.PeriodRepositoryFacade = (*PgxPeriodRepository)(nil)

func scanPeriod(row pgx.Row) (models.Period, error) {
	var m models.Period
	err := row.Scan(
		&m.PeriodID,
		&m.Code,
		&m.StartDate,
		&m.EndDate,
		&m.Closed,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SavePeriod inserts a new period.
func (r *PgxPeriodRepository) SavePeriod(ctx context.Context, period domain.Period) error {
	modelPeriod := mapping.ToModelPeriod(period)

	query := `
		INSERT INTO periods (` + periodColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err := r.pool.Exec(ctx, query,
		modelPeriod.PeriodID,
		modelPeriod.Code,
		modelPeriod.StartDate,
		modelPeriod.EndDate,
		modelPeriod.Closed,
		modelPeriod.CreatedAt,
		modelPeriod.CreatedBy,
		modelPeriod.LastUpdatedAt,
		modelPeriod.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: period code %s is already taken", apperrors.ErrDuplicateCode, modelPeriod.Code)
		}
		return fmt.Errorf("failed to save period %s: %w", modelPeriod.PeriodID, err)
	}
	return nil
}

// FindPeriodByID retrieves a period by its ID.
func (r *PgxPeriodRepository) FindPeriodByID(ctx context.Context, periodID string) (*domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods WHERE period_id = $1;`

	modelPeriod, err := scanPeriod(r.pool.QueryRow(ctx, query, periodID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find period by ID %s: %w", periodID, err)
	}

	domainPeriod := mapping.ToDomainPeriod(modelPeriod)
	return &domainPeriod, nil
}

// FindOverlappingPeriod returns the first period whose range intersects
// [start, end], or ErrNotFound when none does.
func (r *PgxPeriodRepository) FindOverlappingPeriod(ctx context.Context, start, end time.Time) (*domain.Period, error) {
	query := `
		SELECT ` + periodColumns + `
		FROM periods
		WHERE start_date <= $2 AND end_date >= $1
		ORDER BY start_date
		LIMIT 1;
	`

	modelPeriod, err := scanPeriod(r.pool.QueryRow(ctx, query, start, end))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find overlapping period: %w", err)
	}

	domainPeriod := mapping.ToDomainPeriod(modelPeriod)
	return &domainPeriod, nil
}

// ListPeriods retrieves all periods ordered by start date.
func (r *PgxPeriodRepository) ListPeriods(ctx context.Context) ([]domain.Period, error) {
	query := `SELECT ` + periodColumns + ` FROM periods ORDER BY start_date;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query periods: %w", err)
	}
	defer rows.Close()

	periods := []domain.Period{}
	for rows.Next() {
		m, err := scanPeriod(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan period row: %w", err)
		}
		periods = append(periods, mapping.ToDomainPeriod(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating period rows: %w", err)
	}

	return periods, nil
}

// IsPeriodReferenced reports whether any entry targets the period.
func (r *PgxPeriodRepository) IsPeriodReferenced(ctx context.Context, periodID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM entries WHERE period_id = $1);`

	var referenced bool
	if err := r.pool.QueryRow(ctx, query, periodID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check references for period %s: %w", periodID, err)
	}
	return referenced, nil
}

// ClosePeriod flips the closed flag. The WHERE clause makes the transition
// one-way: a second close attempt matches no row.
func (r *PgxPeriodRepository) ClosePeriod(ctx context.Context, periodID string, userID string, now time.Time) error {
	query := `
		UPDATE periods
		SET closed = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE period_id = $1 AND closed = FALSE;
	`

	cmdTag, err := r.pool.Exec(ctx, query, periodID, now, userID)
	if err != nil {
		return fmt.Errorf("failed to close period %s: %w", periodID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Missing period and already-closed period both match no row.
		_, findErr := r.FindPeriodByID(ctx, periodID)
		if errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check period status after close attempt for %s: %w", periodID, findErr)
		}
		return fmt.Errorf("%w: period %s", apperrors.ErrAlreadyClosed, periodID)
	}

	return nil
}

// DeletePeriod removes a period row permanently.
func (r *PgxPeriodRepository) DeletePeriod(ctx context.Context, periodID string) error {
	query := `DELETE FROM periods WHERE period_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, periodID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: period %s is referenced by entries", apperrors.ErrReferencedEntity, periodID)
		}
		return fmt.Errorf("failed to delete period %s: %w", periodID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
