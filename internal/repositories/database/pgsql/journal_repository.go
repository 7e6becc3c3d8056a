package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	"github.com/gestinov/ledger_backend/internal/models"
	"github.com/gestinov/ledger_backend/internal/utils/mapping"
)

const journalColumns = `journal_id, code, label, active, created_at, created_by, last_updated_at, last_updated_by`

type PgxJournalRepository struct {
	pool *pgxpool.Pool
}

// newPgxJournalRepository creates a new repository for journal registry data.
func newPgxJournalRepository(pool *pgxpool.Pool) portsrepo.JournalRepositoryFacade {
	return &PgxJournalRepository{pool: pool}
}

// Ensure PgxJournalRepository implements portsrepo.JournalRepositoryFacade
var _ portsrepo.JournalRepositoryFacade = (*PgxJournalRepository)(nil)

func scanJournal(row pgx.Row) (models.Journal, error) {
	var m models.Journal
	err := row.Scan(
		&m.JournalID,
		&m.Code,
		&m.Label,
		&m.Active,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveJournal inserts a new journal.
func (r *PgxJournalRepository) SaveJournal(ctx context.Context, journal domain.Journal) error {
	modelJournal := mapping.ToModelJournal(journal)

	query := `
		INSERT INTO journals (` + journalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.pool.Exec(ctx, query,
		modelJournal.JournalID,
		modelJournal.Code,
		modelJournal.Label,
		modelJournal.Active,
		modelJournal.CreatedAt,
		modelJournal.CreatedBy,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal code %s is already taken", apperrors.ErrDuplicateCode, modelJournal.Code)
		}
		return fmt.Errorf("failed to save journal %s: %w", modelJournal.JournalID, err)
	}
	return nil
}

// FindJournalByID retrieves a journal by its ID.
func (r *PgxJournalRepository) FindJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE journal_id = $1;`

	modelJournal, err := scanJournal(r.pool.QueryRow(ctx, query, journalID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by ID %s: %w", journalID, err)
	}

	domainJournal := mapping.ToDomainJournal(modelJournal)
	return &domainJournal, nil
}

// FindJournalByCode retrieves a journal by its unique code.
func (r *PgxJournalRepository) FindJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals WHERE code = $1;`

	modelJournal, err := scanJournal(r.pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find journal by code %s: %w", code, err)
	}

	domainJournal := mapping.ToDomainJournal(modelJournal)
	return &domainJournal, nil
}

// ListJournals retrieves journals ordered by code. The registry stays small
// (a handful of journals per ledger) so no pagination is applied.
func (r *PgxJournalRepository) ListJournals(ctx context.Context, activeOnly bool) ([]domain.Journal, error) {
	query := `SELECT ` + journalColumns + ` FROM journals`
	if activeOnly {
		query += ` WHERE active = TRUE`
	}
	query += ` ORDER BY code;`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query journals: %w", err)
	}
	defer rows.Close()

	journals := []domain.Journal{}
	for rows.Next() {
		m, err := scanJournal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan journal row: %w", err)
		}
		journals = append(journals, mapping.ToDomainJournal(m))
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating journal rows: %w", err)
	}

	return journals, nil
}

// IsJournalReferenced reports whether any entry targets the journal.
func (r *PgxJournalRepository) IsJournalReferenced(ctx context.Context, journalID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM entries WHERE journal_id = $1);`

	var referenced bool
	if err := r.pool.QueryRow(ctx, query, journalID).Scan(&referenced); err != nil {
		return false, fmt.Errorf("failed to check references for journal %s: %w", journalID, err)
	}
	return referenced, nil
}

// UpdateJournal updates an existing journal, including its active flag.
func (r *PgxJournalRepository) UpdateJournal(ctx context.Context, journal domain.Journal) error {
	modelJournal := mapping.ToModelJournal(journal)

	query := `
		UPDATE journals
		SET code = $2, label = $3, active = $4, last_updated_at = $5, last_updated_by = $6
		WHERE journal_id = $1;
	`

	cmdTag, err := r.pool.Exec(ctx, query,
		modelJournal.JournalID,
		modelJournal.Code,
		modelJournal.Label,
		modelJournal.Active,
		modelJournal.LastUpdatedAt,
		modelJournal.LastUpdatedBy,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return fmt.Errorf("%w: journal code %s is already taken", apperrors.ErrDuplicateCode, modelJournal.Code)
		}
		return fmt.Errorf("failed to execute update journal %s: %w", modelJournal.JournalID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// DeleteJournal removes a journal row permanently.
func (r *PgxJournalRepository) DeleteJournal(ctx context.Context, journalID string) error {
	query := `DELETE FROM journals WHERE journal_id = $1;`

	cmdTag, err := r.pool.Exec(ctx, query, journalID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return fmt.Errorf("%w: journal %s is referenced by entries", apperrors.ErrReferencedEntity, journalID)
		}
		return fmt.Errorf("failed to delete journal %s: %w", journalID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}
