package services

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// ReportingSvcFacade exposes the read-only snapshot API that drives
// balance-sheet, ledger and trial-balance reports.
type ReportingSvcFacade interface {
	// AccountBalances returns every account with its current balance.
	AccountBalances(ctx context.Context) ([]domain.AccountBalanceRow, error)

	// TrialBalance aggregates validated debit/credit totals per account,
	// optionally restricted to one period.
	TrialBalance(ctx context.Context, periodID string) ([]domain.TrialBalanceRow, error)

	// EntrySnapshots returns denormalized entry views matching the filter.
	EntrySnapshots(ctx context.Context, params dto.ListEntriesParams) ([]domain.EntrySnapshotRow, error)
}
