package ports

import (
	"context"

	"github.com/ecomstore/commerce-api/internal/core/domain"
)

// CategoryPage is one page of catalog categories plus paging metadata.
type CategoryPage struct {
	Content    []domain.Category `json:"content"`
	PageNumber int               `json:"page_number"`
	PageSize   int               `json:"page_size"`
	TotalItems int64             `json:"total_items"`
	TotalPages int               `json:"total_pages"`
	LastPage   bool              `json:"last_page"`
}

// CategoryService is the service-layer contract for catalog category
// management. Implementations live outside this module.
type CategoryService interface {
	GetAllCategories(ctx context.Context, pageNumber, pageSize int, sortBy, sortOrder string) (*CategoryPage, error)
	CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error)
	UpdateCategory(ctx context.Context, category *domain.Category, categoryID string) (*domain.Category, error)
	DeleteCategory(ctx context.Context, categoryID string) (*domain.Category, error)
}
