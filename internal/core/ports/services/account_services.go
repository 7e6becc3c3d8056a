package services

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// AccountSvcFacade exposes chart-of-accounts operations to handlers and to
// the posting engine.
type AccountSvcFacade interface {
	// CreateAccount adds a chart-of-accounts entry. Fails with
	// ErrDuplicateCode when the code is already taken.
	CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error)

	// GetAccountByID retrieves one account.
	GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error)

	// GetAccountsByIDs retrieves several accounts keyed by ID.
	GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error)

	// ListAccounts returns a page of accounts ordered by code ascending.
	ListAccounts(ctx context.Context, filter portsrepo.AccountListFilter, limit int, nextToken *string) ([]domain.Account, *string, error)

	// UpdateAccount applies a patch. Fails with ErrImmutableField when the
	// patch changes the code of an account referenced by a validated entry.
	UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error)

	// DeleteAccount removes an unreferenced account. Fails with
	// ErrReferencedEntity when any ledger line targets it.
	DeleteAccount(ctx context.Context, accountID string, deleterUserID string) error
}
