package services

import (
	"context"
	"time"

	"golang.org/x/oauth2"

	"github.com/gestinov/ledger_backend/internal/core/domain"
)

// TokenSvcFacade issues application bearer tokens.
type TokenSvcFacade interface {
	// GenerateToken signs a JWT for the user and returns it with its expiry.
	GenerateToken(user *domain.User) (string, time.Time, error)
}

// GoogleIDTokenClaims is the subset of Google's ID token payload the backend
// needs to provision a user.
type GoogleIDTokenClaims struct {
	Email         string
	EmailVerified bool
	Name          string
	Subject       string
}

// GoogleOAuthSvcFacade wraps the Google OAuth code-exchange login flow.
type GoogleOAuthSvcFacade interface {
	// ExchangeCodeForToken swaps an authorization code for Google tokens.
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)

	// ValidateGoogleIDToken verifies the ID token signature and audience and
	// returns its claims.
	ValidateGoogleIDToken(ctx context.Context, idToken string) (*GoogleIDTokenClaims, error)
}
