package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/gestinov/ledger_backend/internal/apperrors"
	"github.com/gestinov/ledger_backend/internal/core/domain"
	portsrepo "github.com/gestinov/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/gestinov/ledger_backend/internal/core/ports/services"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

// Ensure accountService implements the AccountSvcFacade interface
var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest, creatorUserID string) (*domain.Account, error) {
	// Pre-check the code so the common case fails cleanly; the unique index
	// still backstops concurrent creates.
	if _, err := s.accountRepo.FindAccountByCode(ctx, req.Code); err == nil {
		err := fmt.Errorf("%w: account code %s", apperrors.ErrDuplicateCode, req.Code)
		s.LogError(ctx, err, "Account code already taken", slog.String("code", req.Code))
		return nil, err
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to check account code uniqueness", slog.String("code", req.Code))
		return nil, err
	}

	now := time.Now()
	account := domain.Account{
		AccountID:   uuid.NewString(),
		Code:        req.Code,
		Label:       req.Label,
		AccountType: req.AccountType,
		AllowEntry:  req.AllowEntry,
		IsStatic:    req.IsStatic,
		Active:      true,
		Balance:     0,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", account.AccountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account created successfully",
		slog.String("account_id", account.AccountID),
		slog.String("code", account.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find account by ID", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountsByIDs(ctx context.Context, accountIDs []string) (map[string]domain.Account, error) {
	accounts, err := s.accountRepo.FindAccountsByIDs(ctx, accountIDs)
	if err != nil {
		s.LogError(ctx, err, "Failed to find accounts by IDs")
		return nil, err
	}
	return accounts, nil
}

func (s *accountService) ListAccounts(ctx context.Context, filter portsrepo.AccountListFilter, limit int, nextToken *string) ([]domain.Account, *string, error) {
	accounts, newToken, err := s.accountRepo.ListAccounts(ctx, filter, limit, nextToken)
	if err != nil {
		s.LogError(ctx, err, "Failed to list accounts")
		return nil, nil, err
	}
	if accounts == nil {
		accounts = []domain.Account{}
	}
	return accounts, newToken, nil
}

func (s *accountService) UpdateAccount(ctx context.Context, accountID string, req dto.UpdateAccountRequest, updaterUserID string) (*domain.Account, error) {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}

	updated := false
	if req.Code != nil && *req.Code != account.Code {
		// The code freezes once a validated entry references the account.
		_, validated, err := s.accountRepo.IsAccountReferenced(ctx, accountID)
		if err != nil {
			s.LogError(ctx, err, "Failed to check account references", slog.String("account_id", accountID))
			return nil, err
		}
		if validated {
			err := fmt.Errorf("%w: code of account %s is frozen by validated entries", apperrors.ErrImmutableField, account.Code)
			s.LogError(ctx, err, "Refused code change on referenced account", slog.String("account_id", accountID))
			return nil, err
		}
		if _, err := s.accountRepo.FindAccountByCode(ctx, *req.Code); err == nil {
			return nil, fmt.Errorf("%w: account code %s", apperrors.ErrDuplicateCode, *req.Code)
		} else if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		account.Code = *req.Code
		updated = true
	}
	if req.Label != nil {
		account.Label = *req.Label
		updated = true
	}
	if req.AllowEntry != nil {
		account.AllowEntry = *req.AllowEntry
		updated = true
	}
	if req.IsStatic != nil {
		account.IsStatic = *req.IsStatic
		updated = true
	}
	if req.Active != nil {
		account.Active = *req.Active
		updated = true
	}
	if !updated {
		s.LogDebug(ctx, "No fields provided for account update", slog.String("account_id", accountID))
		return account, nil
	}

	now := time.Now()
	account.LastUpdatedAt = now
	account.LastUpdatedBy = updaterUserID

	if err := s.accountRepo.UpdateAccount(ctx, *account); err != nil {
		s.LogError(ctx, err, "Failed to update account", slog.String("account_id", accountID))
		return nil, err
	}

	s.LogInfo(ctx, "Account updated successfully", slog.String("account_id", account.AccountID))
	return account, nil
}

func (s *accountService) DeleteAccount(ctx context.Context, accountID string, deleterUserID string) error {
	account, err := s.GetAccountByID(ctx, accountID)
	if err != nil {
		return err
	}

	anyRef, _, err := s.accountRepo.IsAccountReferenced(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to check account references", slog.String("account_id", accountID))
		return err
	}
	if anyRef {
		err := fmt.Errorf("%w: account %s has ledger lines, deactivate it instead", apperrors.ErrReferencedEntity, account.Code)
		s.LogError(ctx, err, "Refused delete on referenced account", slog.String("account_id", accountID))
		return err
	}

	if err := s.accountRepo.DeleteAccount(ctx, accountID); err != nil {
		s.LogError(ctx, err, "Failed to delete account", slog.String("account_id", accountID))
		return err
	}

	s.LogInfo(ctx, "Account deleted successfully",
		slog.String("account_id", accountID),
		slog.String("deleted_by", deleterUserID))
	return nil
}
