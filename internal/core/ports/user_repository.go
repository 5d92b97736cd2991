package ports

import (
	"context"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

// UserRepository defines the persistence interface for user accounts.
// Save must be conflict-tolerant: inserting a username that already exists
// returns domain.ErrUserExists rather than a storage error.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	Save(ctx context.Context, user *domain.User) (*domain.User, error)
}

// RoleRepository defines the persistence interface for the role catalog.
type RoleRepository interface {
	FindByName(ctx context.Context, name domain.AppRole) (*domain.Role, error)
	Save(ctx context.Context, role *domain.Role) (*domain.Role, error)
}
