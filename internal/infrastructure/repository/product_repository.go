package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	domainRepo "github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"gorm.io/gorm"
)

// lowStockCond matches products at or below their alert threshold; rows
// without a configured threshold fall back to the application default.
const lowStockCond = "quantity <= (CASE WHEN quantity_alert > 0 THEN quantity_alert ELSE ? END)"

// sortableColumns is the allowlist for user-supplied sort_by values
var sortableColumns = map[string]struct{}{
	"name":          {},
	"code":          {},
	"quantity":      {},
	"buying_price":  {},
	"selling_price": {},
	"created_at":    {},
	"updated_at":    {},
}

type productRepository struct {
	db *gorm.DB
}

// NewProductRepository creates a new product repository
func NewProductRepository(db *gorm.DB) domainRepo.ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

// GetByIDs retrieves multiple products by their IDs in a single query
func (r *productRepository) GetByIDs(ctx context.Context, ids []uuid.UUID) ([]entity.Product, error) {
	if len(ids) == 0 {
		return []entity.Product{}, nil
	}
	var products []entity.Product
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&products).Error
	return products, err
}

func (r *productRepository) GetByCode(ctx context.Context, code string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).First(&product, "code = ?", code).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &product, err
}

func (r *productRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Save(product).Error
}

func (r *productRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Product{}, "id = ?", id).Error
}

func (r *productRepository) List(ctx context.Context, params *domainRepo.ProductFilterParams, lowStockDefault float64) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR code ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.LowStock {
		query = query.Where(lowStockCond, lowStockDefault)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order(productOrderClause(params.SortBy, params.SortOrder)).
		Find(&products).Error

	return products, total, err
}

// productOrderClause builds the ORDER BY from caller input; sort_by only
// passes through when it names a known column.
func productOrderClause(sortBy, sortOrder string) string {
	column := "created_at"
	if _, ok := sortableColumns[sortBy]; ok {
		column = sortBy
	}
	direction := "DESC"
	if sortOrder == "ASC" || sortOrder == "asc" {
		direction = "ASC"
	}
	return column + " " + direction
}

func (r *productRepository) GetLowStock(ctx context.Context, lowStockDefault float64) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).
		Where(lowStockCond, lowStockDefault).
		Order("quantity ASC").
		Find(&products).Error
	return products, err
}

// All returns every product, cheapest export path for small shops
func (r *productRepository) All(ctx context.Context) ([]entity.Product, error) {
	var products []entity.Product
	err := r.db.WithContext(ctx).Order("name ASC").Find(&products).Error
	return products, err
}
