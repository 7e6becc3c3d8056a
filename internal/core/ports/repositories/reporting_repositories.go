package repositories

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// ReportingRepository defines the read-only snapshot queries that feed
// balance-sheet, ledger and trial-balance reports. Nothing here mutates
// ledger state.
type ReportingRepository interface {
	// GetAccountBalances returns every account with its current balance,
	// ordered by code.
	GetAccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error)

	// GetTrialBalance aggregates validated debit and credit totals per
	// account, restricted to one period when periodID is non-empty.
	GetTrialBalance(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error)

	// GetEntrySnapshots returns denormalized entry views (journal and period
	// codes resolved, lines included) matching the filter.
	GetEntrySnapshots(ctx context.Context, filter EntryListFilter, limit int) ([]domain.EntrySnapshotRow, error)
}
