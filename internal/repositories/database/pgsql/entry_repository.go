package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	"github.com/gestinov/ledger_backend/internal/models"
	"github.com/gestinov/ledger_backend/internal/utils/mapping"
	"github.com/gestinov/ledger_backend/internal/utils/pagination"
)

const entryColumns = `entry_id, label, entry_date, journal_id, period_id, validated, external_reference, notes, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, entry_id, account_id, label, debit, credit`

type PgxEntryRepository struct {
	BaseRepository
	accountRepo portsrepo.AccountRepositoryFacade
}

// newPgxEntryRepository creates a new repository for ledger entry data.
// The account repository dependency is needed by PostEntry, which locks and
// updates account balances in the same transaction as the entry itself.
func newPgxEntryRepository(pool *pgxpool.Pool, accountRepo portsrepo.AccountRepositoryFacade) portsrepo.EntryRepositoryFacade {
	return &PgxEntryRepository{
		BaseRepository: BaseRepository{Pool: pool},
		accountRepo:    accountRepo,
	}
}

// Ensure PgxEntryRepository implements portsrepo.EntryRepositoryFacade
var _ portsrepo.EntryRepositoryFacade = (*PgxEntryRepository)(nil)

func scanEntry(row pgx.Row) (models.Entry, error) {
	var m models.Entry
	err := row.Scan(
		&m.EntryID,
		&m.Label,
		&m.EntryDate,
		&m.JournalID,
		&m.PeriodID,
		&m.Validated,
		&m.ExternalReference,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

func insertLines(ctx context.Context, tx pgx.Tx, entryID string, lines []domain.EntryLine) error {
	query := `
		INSERT INTO entry_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelEntryLine(line)
		batch.Queue(query,
			modelLine.LineID,
			entryID,
			modelLine.AccountID,
			modelLine.Label,
			modelLine.Debit,
			modelLine.Credit,
		)
	}

	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to execute line insert batch for entry %s: %w", entryID, err)
	}
	return nil
}

// SaveEntry inserts an entry header and its lines in one transaction.
func (r *PgxEntryRepository) SaveEntry(ctx context.Context, entry domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once committed

	modelEntry := mapping.ToModelEntry(entry)
	query := `
		INSERT INTO entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.Label,
		modelEntry.EntryDate,
		modelEntry.JournalID,
		modelEntry.PeriodID,
		modelEntry.Validated,
		modelEntry.ExternalReference,
		modelEntry.Notes,
		modelEntry.CreatedAt,
		modelEntry.CreatedBy,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to insert entry %s: %w", modelEntry.EntryID, err)
	}

	if err := insertLines(ctx, tx, modelEntry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// FindEntryByID retrieves an entry header by its ID. Lines are fetched
// separately via FindLinesByEntryID.
func (r *PgxEntryRepository) FindEntryByID(ctx context.Context, entryID string) (*domain.Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM entries WHERE entry_id = $1;`

	modelEntry, err := scanEntry(r.Pool.QueryRow(ctx, query, entryID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find entry by ID %s: %w", entryID, err)
	}

	domainEntry := mapping.ToDomainEntry(modelEntry)
	return &domainEntry, nil
}

// FindLinesByEntryID retrieves the lines of one entry. Line IDs are random
// UUIDs, so the ordering is stable but carries no insertion meaning.
func (r *PgxEntryRepository) FindLinesByEntryID(ctx context.Context, entryID string) ([]domain.EntryLine, error) {
	query := `
		SELECT ` + lineColumns + `
		FROM entry_lines
		WHERE entry_id = $1
		ORDER BY line_id;
	`
	rows, err := r.Pool.Query(ctx, query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for entry %s: %w", entryID, err)
	}
	defer rows.Close()

	lines := []models.EntryLine{}
	for rows.Next() {
		var l models.EntryLine
		err := rows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Label,
			&l.Debit,
			&l.Credit,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for entry %s: %w", entryID, err)
		}
		lines = append(lines, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating line rows for entry %s: %w", entryID, err)
	}

	return mapping.ToDomainEntryLineSlice(lines), nil
}

// ListEntries retrieves a paginated list of entry headers using token-based
// pagination on (entry_date, created_at, entry_id) ascending. The entry ID
// makes the cursor tuple unique, so rows sharing a date and creation time are
// never skipped across a page boundary.
func (r *PgxEntryRepository) ListEntries(ctx context.Context, filter portsrepo.EntryListFilter, limit int, nextToken *string) ([]domain.Entry, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to know whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + entryColumns + ` FROM entries`
	whereClauses := []string{}
	args := []interface{}{}

	if filter.JournalID != "" {
		args = append(args, filter.JournalID)
		whereClauses = append(whereClauses, "journal_id = $"+strconv.Itoa(len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		whereClauses = append(whereClauses, "entry_date >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		whereClauses = append(whereClauses, "entry_date <= $"+strconv.Itoa(len(args)))
	}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, lastEntryID, decodeErr := pagination.DecodeEntryToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		// Tuple comparison keeps the cursor stable across equal dates; the
		// entry ID breaks ties between rows created at the same instant.
		args = append(args, lastDate, lastCreatedAt, lastEntryID)
		whereClauses = append(whereClauses, "(entry_date, created_at, entry_id) > ($"+strconv.Itoa(len(args)-2)+", $"+strconv.Itoa(len(args)-1)+", $"+strconv.Itoa(len(args))+")")
	}

	query := baseQuery
	for i, clause := range whereClauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	args = append(args, fetchLimit)
	query += " ORDER BY entry_date, created_at, entry_id LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query entries: %w", err)
	}
	defer rows.Close()

	modelEntries := make([]models.Entry, 0, fetchLimit)
	for rows.Next() {
		m, err := scanEntry(rows)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to scan entry row: %w", err)
		}
		modelEntries = append(modelEntries, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	var nextTokenVal *string
	results := modelEntries
	if len(modelEntries) > limit {
		lastEntry := modelEntries[limit-1]
		token := pagination.EncodeEntryToken(lastEntry.EntryDate, lastEntry.CreatedAt, lastEntry.EntryID)
		nextTokenVal = &token
		results = modelEntries[:limit]
	}

	domainEntries := make([]domain.Entry, len(results))
	for i, m := range results {
		domainEntries[i] = mapping.ToDomainEntry(m)
	}
	return domainEntries, nextTokenVal, nil
}

// lockEntryForUpdate locks the entry header row and returns its validated
// flag and last-updated timestamp. The timestamp doubles as a row version:
// every draft mutation bumps it, so a caller holding an older value knows its
// read is stale.
func lockEntryForUpdate(ctx context.Context, tx pgx.Tx, entryID string) (bool, time.Time, error) {
	var validated bool
	var lastUpdatedAt time.Time
	err := tx.QueryRow(ctx, `SELECT validated, last_updated_at FROM entries WHERE entry_id = $1 FOR UPDATE;`, entryID).Scan(&validated, &lastUpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, time.Time{}, apperrors.ErrNotFound
		}
		return false, time.Time{}, fmt.Errorf("failed to lock entry %s: %w", entryID, err)
	}
	return validated, lastUpdatedAt, nil
}

// ReplaceEntry rewrites a draft's header and lines in one transaction.
func (r *PgxEntryRepository) ReplaceEntry(ctx context.Context, entry domain.Entry) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	validated, _, err := lockEntryForUpdate(ctx, tx, entry.EntryID)
	if err != nil {
		return err
	}
	if validated {
		return fmt.Errorf("%w: entry %s cannot be modified", apperrors.ErrAlreadyValidated, entry.EntryID)
	}

	modelEntry := mapping.ToModelEntry(entry)
	query := `
		UPDATE entries
		SET label = $2, entry_date = $3, journal_id = $4, period_id = $5, external_reference = $6, notes = $7, last_updated_at = $8, last_updated_by = $9
		WHERE entry_id = $1;
	`
	_, err = tx.Exec(ctx, query,
		modelEntry.EntryID,
		modelEntry.Label,
		modelEntry.EntryDate,
		modelEntry.JournalID,
		modelEntry.PeriodID,
		modelEntry.ExternalReference,
		modelEntry.Notes,
		modelEntry.LastUpdatedAt,
		modelEntry.LastUpdatedBy,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry %s: %w", modelEntry.EntryID, err)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, modelEntry.EntryID); err != nil {
		return fmt.Errorf("failed to delete old lines for entry %s: %w", modelEntry.EntryID, err)
	}

	if err := insertLines(ctx, tx, modelEntry.EntryID, entry.Lines); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// DeleteEntry removes a draft and its lines in one transaction.
func (r *PgxEntryRepository) DeleteEntry(ctx context.Context, entryID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	validated, _, err := lockEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if validated {
		return fmt.Errorf("%w: entry %s cannot be deleted", apperrors.ErrAlreadyValidated, entryID)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM entry_lines WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete lines for entry %s: %w", entryID, err)
	}
	if _, err := tx.Exec(ctx, `DELETE FROM entries WHERE entry_id = $1;`, entryID); err != nil {
		return fmt.Errorf("failed to delete entry %s: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}

// PostEntry marks the entry validated and applies balance deltas to the
// affected accounts in one database transaction. The entry row is locked
// first, then the account rows; either everything applies or nothing does.
// The deltas are only applied if the locked row still carries the timestamp
// the caller read, so deltas derived from lines a concurrent update has since
// replaced can never reach the balances.
func (r *PgxEntryRepository) PostEntry(ctx context.Context, entryID string, expectedUpdatedAt time.Time, balanceChanges map[string]int64, userID string, now time.Time) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	validated, lastUpdatedAt, err := lockEntryForUpdate(ctx, tx, entryID)
	if err != nil {
		return err
	}
	if validated {
		// Concurrent posting race: the second caller finds the flag already
		// set under the lock and must not apply the deltas twice.
		return fmt.Errorf("%w: entry %s", apperrors.ErrAlreadyValidated, entryID)
	}
	if !lastUpdatedAt.Equal(expectedUpdatedAt) {
		return fmt.Errorf("%w: entry %s", apperrors.ErrStaleEntry, entryID)
	}

	accountIDs := make([]string, 0, len(balanceChanges))
	for accID := range balanceChanges {
		accountIDs = append(accountIDs, accID)
	}

	if _, err := r.accountRepo.FindAccountsByIDsForUpdate(ctx, tx, accountIDs); err != nil {
		return fmt.Errorf("failed to lock accounts for posting entry %s: %w", entryID, err)
	}

	if err := r.accountRepo.ApplyBalanceChangesInTx(ctx, tx, balanceChanges, userID, now); err != nil {
		return fmt.Errorf("failed to apply balance changes for entry %s: %w", entryID, err)
	}

	query := `
		UPDATE entries
		SET validated = TRUE, last_updated_at = $2, last_updated_by = $3
		WHERE entry_id = $1;
	`
	if _, err := tx.Exec(ctx, query, entryID, now, userID); err != nil {
		return fmt.Errorf("failed to mark entry %s validated: %w", entryID, err)
	}

	return r.Commit(ctx, tx)
}
