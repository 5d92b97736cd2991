package ports

import (
	"context"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

// AuthService verifies credentials and issues bearer tokens.
type AuthService interface {
	// Authenticate verifies a username/password pair. A wrong password and an
	// unknown username both fail with domain.ErrInvalidCredentials.
	Authenticate(ctx context.Context, username, password string) (*domain.AuthenticatedIdentity, error)
	// IssueToken signs a stateless bearer token for an authenticated identity.
	IssueToken(identity *domain.AuthenticatedIdentity) (string, error)
}

// TokenRevoker tracks bearer tokens invalidated before their natural expiry.
type TokenRevoker interface {
	Revoke(ctx context.Context, token string, secondsLeft int64) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
