package ports

import (
	"context"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

// OrderRepository defines the persistence interface for orders. Order items
// and payment details travel embedded in the order aggregate.
type OrderRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Order, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Order, error)
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
}

// AddressRepository defines the persistence interface for shipping addresses.
type AddressRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Address, error)
	FindByUsername(ctx context.Context, username string) ([]domain.Address, error)
	Save(ctx context.Context, address *domain.Address) (*domain.Address, error)
}
