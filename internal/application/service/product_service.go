package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/config"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/pkg/apperror"
	"github.com/zisan5910/zisan-trader-pro/pkg/utils"
)

// ProductService handles inventory operations
type ProductService struct {
	productRepo repository.ProductRepository
	ledgerCfg   *config.LedgerConfig
}

// NewProductService creates a new product service
func NewProductService(productRepo repository.ProductRepository, ledgerCfg *config.LedgerConfig) *ProductService {
	return &ProductService{
		productRepo: productRepo,
		ledgerCfg:   ledgerCfg,
	}
}

// CreateProductInput represents the create product input
type CreateProductInput struct {
	Name          string
	Code          string
	Unit          string
	Quantity      float64
	QuantityAlert float64
	BuyingPrice   float64
	SellingPrice  float64
	Notes         *string
}

// CreateProduct creates a new product
func (s *ProductService) CreateProduct(ctx context.Context, input *CreateProductInput) (*entity.Product, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Product name is required")
	}

	// Auto-generate code if not provided
	code := input.Code
	if code == "" {
		code = utils.GenerateProductCode()
	}

	existingProduct, err := s.productRepo.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existingProduct != nil {
		return nil, apperror.NewConflictError("Product code already exists")
	}

	unit := input.Unit
	if unit == "" {
		unit = "pcs"
	}

	product := &entity.Product{
		Name:          input.Name,
		Code:          code,
		Unit:          unit,
		Quantity:      input.Quantity,
		QuantityAlert: input.QuantityAlert,
		Notes:         input.Notes,
	}
	product.SetBuyingPriceFromDecimal(input.BuyingPrice)
	product.SetSellingPriceFromDecimal(input.SellingPrice)

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// GetProduct retrieves a product by ID
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}
	return product, nil
}

// UpdateProductInput represents the update product input, nil fields are untouched
type UpdateProductInput struct {
	Name          *string
	Code          *string
	Unit          *string
	Quantity      *float64
	QuantityAlert *float64
	BuyingPrice   *float64
	SellingPrice  *float64
	Notes         *string
}

// UpdateProduct updates an existing product
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input *UpdateProductInput) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, apperror.NewNotFoundError("Product")
	}

	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Code != nil && *input.Code != product.Code {
		existing, err := s.productRepo.GetByCode(ctx, *input.Code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, apperror.NewConflictError("Product code already exists")
		}
		product.Code = *input.Code
	}
	if input.Unit != nil {
		product.Unit = *input.Unit
	}
	if input.Quantity != nil {
		product.Quantity = *input.Quantity
	}
	if input.QuantityAlert != nil {
		product.QuantityAlert = *input.QuantityAlert
	}
	if input.BuyingPrice != nil {
		product.SetBuyingPriceFromDecimal(*input.BuyingPrice)
	}
	if input.SellingPrice != nil {
		product.SetSellingPriceFromDecimal(*input.SellingPrice)
	}
	if input.Notes != nil {
		product.Notes = input.Notes
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, err
	}

	return product, nil
}

// DeleteProduct deletes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return apperror.NewNotFoundError("Product")
	}
	return s.productRepo.Delete(ctx, id)
}

// ListProducts retrieves products with filtering and pagination
func (s *ProductService) ListProducts(ctx context.Context, params *repository.ProductFilterParams) ([]entity.Product, int64, error) {
	return s.productRepo.List(ctx, params, s.ledgerCfg.LowStockDefault)
}

// GetLowStockProducts retrieves products at or below their alert threshold
func (s *ProductService) GetLowStockProducts(ctx context.Context) ([]entity.Product, error) {
	return s.productRepo.GetLowStock(ctx, s.ledgerCfg.LowStockDefault)
}

// ProductExportRow is the backup wire format for a product
type ProductExportRow struct {
	Name          string  `json:"name"`
	Code          string  `json:"code"`
	Unit          string  `json:"unit"`
	Quantity      float64 `json:"quantity"`
	QuantityAlert float64 `json:"quantity_alert"`
	BuyingPrice   float64 `json:"buying_price"`
	SellingPrice  float64 `json:"selling_price"`
	Notes         *string `json:"notes,omitempty"`
}

// ExportProducts returns every product in the backup wire format
func (s *ProductService) ExportProducts(ctx context.Context) ([]ProductExportRow, error) {
	products, err := s.productRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]ProductExportRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ProductExportRow{
			Name:          p.Name,
			Code:          p.Code,
			Unit:          p.Unit,
			Quantity:      p.Quantity,
			QuantityAlert: p.QuantityAlert,
			BuyingPrice:   float64(p.BuyingPrice) / 100,
			SellingPrice:  float64(p.SellingPrice) / 100,
			Notes:         p.Notes,
		})
	}
	return rows, nil
}

// ImportResult summarises a backup restore
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ImportProducts restores products from a backup. Rows without a name are
// skipped, not rejected, so one bad row never blocks the rest of the import.
func (s *ProductService) ImportProducts(ctx context.Context, rows []ProductExportRow) (*ImportResult, error) {
	result := &ImportResult{}

	for _, row := range rows {
		if row.Name == "" {
			result.Skipped++
			continue
		}

		code := row.Code
		if code == "" {
			code = utils.GenerateProductCode()
		}
		unit := row.Unit
		if unit == "" {
			unit = "pcs"
		}

		product := &entity.Product{
			Name:          row.Name,
			Code:          code,
			Unit:          unit,
			Quantity:      row.Quantity,
			QuantityAlert: row.QuantityAlert,
			Notes:         row.Notes,
		}
		product.SetBuyingPriceFromDecimal(row.BuyingPrice)
		product.SetSellingPriceFromDecimal(row.SellingPrice)

		// Existing code means the product is already present; update it in place
		existing, err := s.productRepo.GetByCode(ctx, code)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			product.ID = existing.ID
			product.CreatedAt = existing.CreatedAt
			if err := s.productRepo.Update(ctx, product); err != nil {
				result.Skipped++
				continue
			}
		} else {
			if err := s.productRepo.Create(ctx, product); err != nil {
				result.Skipped++
				continue
			}
		}
		result.Imported++
	}

	return result, nil
}
