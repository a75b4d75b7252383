package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"github.com/zisan5910/zisan-trader-pro/pkg/apperror"
	"github.com/zisan5910/zisan-trader-pro/pkg/utils"
)

// SaleService handles point-of-sale operations
type SaleService struct {
	saleRepo     repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
}

// NewSaleService creates a new sale service
func NewSaleService(
	saleRepo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		productRepo:  productRepo,
		customerRepo: customerRepo,
	}
}

// SaleItemInput is one cart line of a sale request
type SaleItemInput struct {
	ProductID uuid.UUID
	Quantity  float64
}

// CreateSaleInput represents the create sale input
type CreateSaleInput struct {
	CustomerID *uuid.UUID
	Items      []SaleItemInput
	Discount   float64
	Paid       float64
}

// saleWriteSet resolves a cart into the sale row, its item snapshots and
// the stock movements it causes. Prices and names are copied from the
// product at this moment; later product edits never change past sales.
func (s *SaleService) saleWriteSet(ctx context.Context, input *CreateSaleInput) (*entity.Sale, map[uuid.UUID]float64, ledger.SaleTotals, error) {
	var zero ledger.SaleTotals

	if len(input.Items) == 0 {
		return nil, nil, zero, apperror.NewBadRequestError("Sale requires at least one item")
	}

	ids := make([]uuid.UUID, 0, len(input.Items))
	for _, item := range input.Items {
		if item.Quantity <= 0 {
			return nil, nil, zero, apperror.NewBadRequestError("Item quantity must be positive")
		}
		ids = append(ids, item.ProductID)
	}

	products, err := s.productRepo.GetByIDs(ctx, ids)
	if err != nil {
		return nil, nil, zero, err
	}
	byID := make(map[uuid.UUID]entity.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	lines := make([]ledger.CartLine, 0, len(input.Items))
	items := make([]entity.SaleItem, 0, len(input.Items))
	deltas := make(map[uuid.UUID]float64, len(input.Items))

	for _, item := range input.Items {
		product, ok := byID[item.ProductID]
		if !ok {
			return nil, nil, zero, apperror.NewNotFoundError("Product")
		}

		line := ledger.CartLine{
			Quantity:  item.Quantity,
			SalePrice: product.SellingPrice,
			CostPrice: product.BuyingPrice,
		}
		lines = append(lines, line)
		items = append(items, entity.SaleItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    item.Quantity,
			SalePrice:   product.SellingPrice,
			CostPrice:   product.BuyingPrice,
			Total:       ledger.LineTotal(line),
		})
		deltas[item.ProductID] -= item.Quantity
	}

	totals := ledger.ComputeSale(lines, ledger.Cents(input.Discount), ledger.Cents(input.Paid))

	customerName := "Cash Sale"
	if input.CustomerID != nil {
		customer, err := s.customerRepo.GetByID(ctx, *input.CustomerID)
		if err != nil {
			return nil, nil, zero, err
		}
		if customer == nil {
			return nil, nil, zero, apperror.NewNotFoundError("Customer")
		}
		customerName = customer.Name
	} else if totals.Due > 0 {
		// A due needs someone to owe it
		return nil, nil, zero, apperror.NewBadRequestError("Due sale requires a customer")
	}

	sale := &entity.Sale{
		CustomerID:   input.CustomerID,
		CustomerName: customerName,
		InvoiceNo:    utils.GenerateInvoiceNo("INV-"),
		SubTotal:     totals.SubTotal,
		Discount:     ledger.Cents(input.Discount),
		Total:        totals.Total,
		Paid:         ledger.Cents(input.Paid),
		Due:          totals.Due,
		Overpayment:  totals.Overpayment,
		Profit:       totals.Profit,
		Items:        items,
	}

	return sale, deltas, totals, nil
}

// CreateSale resolves the cart, computes the totals and commits the whole
// write-set in one transaction.
func (s *SaleService) CreateSale(ctx context.Context, input *CreateSaleInput) (*entity.Sale, error) {
	sale, deltas, totals, err := s.saleWriteSet(ctx, input)
	if err != nil {
		return nil, err
	}
	sale.ID = uuid.New()

	commit := &repository.SaleCommit{
		Sale:        sale,
		StockDeltas: deltas,
	}
	if input.CustomerID != nil {
		commit.DueDeltas = map[uuid.UUID]int64{*input.CustomerID: totals.Due}
	}

	// Money actually retained from the buyer, logged for the audit trail
	received := totals.Total - totals.Due
	if received > 0 {
		commit.Payment = &entity.Payment{
			CustomerID: input.CustomerID,
			SaleID:     &sale.ID,
			Amount:     received,
			Method:     enum.PaymentMethodCash,
		}
	}

	if err := s.saleRepo.Commit(ctx, commit); err != nil {
		return nil, err
	}

	return sale, nil
}

// UpdateSale rewrites an existing sale. The original item snapshots are
// reversed (stock returned, due removed) and the new cart is applied, all
// within the same transaction.
func (s *SaleService) UpdateSale(ctx context.Context, id uuid.UUID, input *CreateSaleInput) (*entity.Sale, error) {
	original, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if original == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}

	sale, deltas, totals, err := s.saleWriteSet(ctx, input)
	if err != nil {
		return nil, err
	}
	sale.InvoiceNo = original.InvoiceNo
	sale.CreatedAt = original.CreatedAt

	// Return the stock the original sale took
	for _, item := range original.Items {
		deltas[item.ProductID] += item.Quantity
	}

	commit := &repository.SaleCommit{
		Sale:        sale,
		StockDeltas: deltas,
		ReplaceID:   &id,
		DueDeltas:   make(map[uuid.UUID]int64),
	}

	// The due moves by the difference between the new and the old sale.
	// When the customer changed, the old customer's due from this sale is
	// lifted and the new customer's accrues, in the same commit.
	if original.CustomerID != nil {
		commit.DueDeltas[*original.CustomerID] -= original.Due
	}
	if input.CustomerID != nil {
		commit.DueDeltas[*input.CustomerID] += totals.Due
	}

	// Keep the payment log reconciled with the sale: a delta in the money
	// retained gets a compensating entry, negative when cash went back.
	received := totals.Total - totals.Due
	originalReceived := original.Total - original.Due
	if delta := received - originalReceived; delta != 0 {
		commit.Payment = &entity.Payment{
			CustomerID: input.CustomerID,
			SaleID:     &id,
			Amount:     delta,
			Method:     enum.PaymentMethodCash,
		}
	}

	if err := s.saleRepo.Commit(ctx, commit); err != nil {
		return nil, err
	}

	return sale, nil
}

// GetSale retrieves a sale by ID
func (s *SaleService) GetSale(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, apperror.NewNotFoundError("Sale")
	}
	return sale, nil
}

// ListSales retrieves sales with filtering and pagination
func (s *SaleService) ListSales(ctx context.Context, params *repository.SaleFilterParams) ([]entity.Sale, int64, error) {
	return s.saleRepo.List(ctx, params)
}

// DeleteSale removes a sale record. Stock and customer dues are left as
// they are; deleting history is bookkeeping cleanup, not a refund.
func (s *SaleService) DeleteSale(ctx context.Context, id uuid.UUID) error {
	sale, err := s.saleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if sale == nil {
		return apperror.NewNotFoundError("Sale")
	}
	return s.saleRepo.Delete(ctx, id)
}

// DeleteSales removes multiple sale records at once
func (s *SaleService) DeleteSales(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return apperror.NewBadRequestError("No sale IDs provided")
	}
	return s.saleRepo.DeleteBatch(ctx, ids)
}
