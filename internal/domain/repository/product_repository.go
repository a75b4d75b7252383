package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/pkg/pagination"
)

// ProductFilterParams represents filter parameters for product queries
type ProductFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	LowStock   bool
	SortBy     string
	SortOrder  string
}

// ProductRepository defines the interface for product data access.
// The low-stock default threshold comes in from configuration so the
// repository never hard-codes it.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error)
	GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error)
	GetByCode(ctx context.Context, code string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *ProductFilterParams, lowStockDefault float64) ([]entity.Product, int64, error)
	GetLowStock(ctx context.Context, lowStockDefault float64) ([]entity.Product, error)
	All(ctx context.Context) ([]entity.Product, error)
}
