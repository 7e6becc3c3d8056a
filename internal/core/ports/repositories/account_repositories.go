package repositories

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// AccountListFilter narrows a chart-of-accounts listing. Both filters are
// optional; ClassPrefix matches the leading characters of the account code
// (e.g. "4" for all third-party accounts), LabelContains is a case-insensitive
// substring match on the label.
type AccountListFilter struct {
	ClassPrefix   string
	LabelContains string
}

// AccountReader defines read operations on the chart of accounts.
type AccountReader interface {
	// FindAccountByID retrieves an account by its unique identifier.
	FindAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// FindAccountByCode retrieves an account by its unique code.
	FindAccountByCode(ctx context.Context, code string) (*domain.Account, error)

	// FindAccountsByIDs retrieves several accounts at once, keyed by ID.
	// IDs with no matching account are simply absent from the map.
	FindAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns a page of accounts ordered by code ascending, plus
	// a token that restarts the listing after the last returned code.
	ListAccounts(ctx context.Context, filter AccountListFilter, limit int, nextToken *string) ([]domain.Account, *string, error)

	// IsAccountReferenced reports whether any ledger line (draft or validated)
	// targets the account, and separately whether a validated one does.
	IsAccountReferenced(ctx context.Context, accountID string) (any bool, validated bool, err error)
}

// AccountWriter defines write operations on the chart of accounts.
type AccountWriter interface {
	// SaveAccount inserts a new account.
	SaveAccount(ctx context.Context, account domain.Account) error

	// UpdateAccount persists changes to an existing account.
	UpdateAccount(ctx context.Context, account domain.Account) error

	// DeleteAccount removes an account row permanently.
	DeleteAccount(ctx context.Context, accountID string) error

	// FindAccountsByIDsForUpdate locks the given account rows inside tx and
	// returns their current state. Missing accounts yield ErrNotFound.
	FindAccountsByIDsForUpdate(ctx context.Context, tx pgx.Tx, accountIDs []string) (map[string]domain.Account, error)

	// ApplyBalanceChangesInTx adds the minor-unit deltas to the locked
	// accounts' balances inside tx.
	ApplyBalanceChangesInTx(ctx context.Context, tx pgx.Tx, changes map[string]int64, userID string, now time.Time) error
}

// AccountRepositoryFacade combines all account repository interfaces.
type AccountRepositoryFacade interface {
	AccountReader
	AccountWriter
}
