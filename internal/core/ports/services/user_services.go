package services

import (
	"context"

	"github.com/gestinov/ledger_backend/internal/core/domain"
	"github.com/gestinov/ledger_backend/internal/dto"
)

// UserSvcFacade exposes user management and credential checks.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creatorUserID string) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit int, offset int) ([]domain.User, error)
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest, updaterUserID string) (*domain.User, error)
	DeleteUser(ctx context.Context, userID string, deleterUserID string) error

	// AuthenticateUser verifies a username/password pair and returns the user.
	// Fails with ErrForbidden on a bad password and ErrNotFound on an unknown
	// or deleted user.
	AuthenticateUser(ctx context.Context, username string, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves the user for a verified Google identity,
	// provisioning one on first login.
	FindOrCreateGoogleUser(ctx context.Context, email string, name string) (*domain.User, error)
}
