package pgsql

import (
	"context"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository: BaseRepository{Pool: db},
	}
}

// GetAccountBalances returns every account with its current balance, ordered by code.
func (r *reportingRepository) GetAccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error) {
	query := `
		SELECT account_id, code, label, account_type, balance
		FROM accounts
		ORDER BY code;
	`

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying account balances: %w", err)
	}
	defer rows.Close()

	var result []domain.AccountBalanceRow
	for rows.Next() {
		var row domain.AccountBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Label,
			&accountType,
			&row.CurrentBalance,
		); err != nil {
			return nil, fmt.Errorf("error scanning account balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account balance rows: %w", err)
	}

	if result == nil {
		result = []domain.AccountBalanceRow{}
	}
	return result, nil
}

// GetTrialBalance aggregates validated debit and credit totals per account,
// restricted to one period when periodID is non-empty.
func (r *reportingRepository) GetTrialBalance(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.label,
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM entry_lines l
		JOIN accounts a ON l.account_id = a.account_id
		JOIN entries e ON l.entry_id = e.entry_id
		WHERE e.validated = TRUE
	`
	args := []interface{}{}
	if periodID != "" {
		args = append(args, periodID)
		query += " AND e.period_id = $1"
	}
	query += `
		GROUP BY a.account_id, a.code, a.label, a.account_type
		ORDER BY a.code;
	`

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying trial balance data: %w", err)
	}
	defer rows.Close()

	var result []domain.TrialBalanceRow
	for rows.Next() {
		var row domain.TrialBalanceRow
		var accountType string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Label,
			&accountType,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning trial balance row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating trial balance rows: %w", err)
	}

	if result == nil {
		result = []domain.TrialBalanceRow{}
	}
	return result, nil
}

// GetEntrySnapshots returns denormalized entry views matching the filter,
// ordered by (entry_date, created_at), lines included.
func (r *reportingRepository) GetEntrySnapshots(ctx context.Context, filter portsrepo.EntryListFilter, limit int) ([]domain.EntrySnapshotRow, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT e.entry_id, e.entry_date, e.label, j.code AS journal_code, p.code AS period_code, e.validated
		FROM entries e
		JOIN journals j ON e.journal_id = j.journal_id
		JOIN periods p ON e.period_id = p.period_id
	`
	whereClauses := []string{}
	args := []interface{}{}

	if filter.JournalID != "" {
		args = append(args, filter.JournalID)
		whereClauses = append(whereClauses, "e.journal_id = $"+strconv.Itoa(len(args)))
	}
	if !filter.From.IsZero() {
		args = append(args, filter.From)
		whereClauses = append(whereClauses, "e.entry_date >= $"+strconv.Itoa(len(args)))
	}
	if !filter.To.IsZero() {
		args = append(args, filter.To)
		whereClauses = append(whereClauses, "e.entry_date <= $"+strconv.Itoa(len(args)))
	}

	for i, clause := range whereClauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	args = append(args, limit)
	query += " ORDER BY e.entry_date, e.created_at LIMIT $" + strconv.Itoa(len(args)) + ";"

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error querying entry snapshots: %w", err)
	}
	defer rows.Close()

	snapshots := []domain.EntrySnapshotRow{}
	entryIDs := []string{}
	for rows.Next() {
		var row domain.EntrySnapshotRow
		if err := rows.Scan(
			&row.EntryID,
			&row.Date,
			&row.Label,
			&row.JournalCode,
			&row.PeriodCode,
			&row.Validated,
		); err != nil {
			return nil, fmt.Errorf("error scanning entry snapshot row: %w", err)
		}
		snapshots = append(snapshots, row)
		entryIDs = append(entryIDs, row.EntryID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry snapshot rows: %w", err)
	}

	if len(snapshots) == 0 {
		return snapshots, nil
	}

	// Batch-fetch lines for all returned entries in one query.
	lineQuery := `
		SELECT line_id, entry_id, account_id, label, debit, credit
		FROM entry_lines
		WHERE entry_id = ANY($1)
		ORDER BY entry_id, line_id;
	`
	lineRows, err := r.Pool.Query(ctx, lineQuery, entryIDs)
	if err != nil {
		return nil, fmt.Errorf("error querying snapshot lines: %w", err)
	}
	defer lineRows.Close()

	linesByEntry := make(map[string][]domain.EntryLine)
	for lineRows.Next() {
		var l domain.EntryLine
		if err := lineRows.Scan(
			&l.LineID,
			&l.EntryID,
			&l.AccountID,
			&l.Label,
			&l.Debit,
			&l.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning snapshot line row: %w", err)
		}
		linesByEntry[l.EntryID] = append(linesByEntry[l.EntryID], l)
	}
	if err := lineRows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating snapshot line rows: %w", err)
	}

	for i := range snapshots {
		lines := linesByEntry[snapshots[i].EntryID]
		if lines == nil {
			lines = []domain.EntryLine{}
		}
		snapshots[i].Lines = lines
	}

	return snapshots, nil
}
