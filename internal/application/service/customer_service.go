package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"github.com/zisan5910/zisan-trader-pro/pkg/apperror"
)

// CustomerService handles customer and due-ledger operations
type CustomerService struct {
	customerRepo repository.CustomerRepository
	paymentRepo  repository.PaymentRepository
}

// NewCustomerService creates a new customer service
func NewCustomerService(
	customerRepo repository.CustomerRepository,
	paymentRepo repository.PaymentRepository,
) *CustomerService {
	return &CustomerService{
		customerRepo: customerRepo,
		paymentRepo:  paymentRepo,
	}
}

// CreateCustomerInput represents the create customer input
type CreateCustomerInput struct {
	Name    string
	Phone   *string
	Address *string
	Notes   *string
}

// CreateCustomer creates a new customer
func (s *CustomerService) CreateCustomer(ctx context.Context, input *CreateCustomerInput) (*entity.Customer, error) {
	if input.Name == "" {
		return nil, apperror.NewBadRequestError("Customer name is required")
	}

	customer := &entity.Customer{
		Name:    input.Name,
		Phone:   input.Phone,
		Address: input.Address,
		Notes:   input.Notes,
	}

	if err := s.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// GetCustomer retrieves a customer by ID
func (s *CustomerService) GetCustomer(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return customer, nil
}

// UpdateCustomerInput represents the update customer input, nil fields are untouched
type UpdateCustomerInput struct {
	Name    *string
	Phone   *string
	Address *string
	Notes   *string
}

// UpdateCustomer updates an existing customer. The due balance is not
// editable here; it only moves through sales and payments.
func (s *CustomerService) UpdateCustomer(ctx context.Context, id uuid.UUID, input *UpdateCustomerInput) (*entity.Customer, error) {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	if input.Name != nil {
		customer.Name = *input.Name
	}
	if input.Phone != nil {
		customer.Phone = input.Phone
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.Notes != nil {
		customer.Notes = input.Notes
	}

	if err := s.customerRepo.Update(ctx, customer); err != nil {
		return nil, err
	}

	return customer, nil
}

// DeleteCustomer deletes a customer
func (s *CustomerService) DeleteCustomer(ctx context.Context, id uuid.UUID) error {
	customer, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if customer == nil {
		return apperror.NewNotFoundError("Customer")
	}
	return s.customerRepo.Delete(ctx, id)
}

// ListCustomers retrieves customers with filtering and pagination
func (s *CustomerService) ListCustomers(ctx context.Context, params *repository.CustomerFilterParams) ([]entity.Customer, int64, error) {
	return s.customerRepo.List(ctx, params)
}

// ListDueCustomers retrieves customers with an outstanding due balance
func (s *CustomerService) ListDueCustomers(ctx context.Context) ([]entity.Customer, error) {
	return s.customerRepo.ListWithDue(ctx)
}

// CollectPaymentInput represents a due collection
type CollectPaymentInput struct {
	CustomerID uuid.UUID
	Amount     float64
	Method     string
	Note       *string
}

// CollectPayment records a due collection against a customer. The amount
// credited is capped at the outstanding due so the balance never goes
// negative.
func (s *CustomerService) CollectPayment(ctx context.Context, input *CollectPaymentInput) (*entity.Customer, error) {
	if input.Amount <= 0 {
		return nil, apperror.NewBadRequestError("Payment amount must be positive")
	}

	customer, err := s.customerRepo.GetByID(ctx, input.CustomerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}

	method := enum.PaymentMethod(input.Method)
	if input.Method == "" {
		method = enum.PaymentMethodCash
	}
	if !method.IsValid() {
		return nil, apperror.NewBadRequestError("Invalid payment method")
	}

	payment := &entity.Payment{
		CustomerID: &input.CustomerID,
		Amount:     ledger.Cents(input.Amount),
		Method:     method,
		Note:       input.Note,
	}

	return s.customerRepo.ApplyPayment(ctx, payment)
}

// ListPayments retrieves the payment history of a customer
func (s *CustomerService) ListPayments(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	customer, err := s.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, apperror.NewNotFoundError("Customer")
	}
	return s.paymentRepo.ListByCustomer(ctx, customerID)
}

// CustomerExportRow is the backup wire format for a customer
type CustomerExportRow struct {
	Name     string  `json:"name"`
	Phone    *string `json:"phone,omitempty"`
	Address  *string `json:"address,omitempty"`
	TotalDue float64 `json:"total_due"`
	Notes    *string `json:"notes,omitempty"`
}

// ExportCustomers returns every customer in the backup wire format
func (s *CustomerService) ExportCustomers(ctx context.Context) ([]CustomerExportRow, error) {
	customers, err := s.customerRepo.All(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]CustomerExportRow, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, CustomerExportRow{
			Name:     c.Name,
			Phone:    c.Phone,
			Address:  c.Address,
			TotalDue: float64(c.TotalDue) / 100,
			Notes:    c.Notes,
		})
	}
	return rows, nil
}

// ImportCustomers restores customers from a backup, skipping rows without
// a name. Negative due balances in the file are clamped to zero.
func (s *CustomerService) ImportCustomers(ctx context.Context, rows []CustomerExportRow) (*ImportResult, error) {
	result := &ImportResult{}

	for _, row := range rows {
		if row.Name == "" {
			result.Skipped++
			continue
		}

		due := ledger.Cents(row.TotalDue)
		if due < 0 {
			due = 0
		}

		customer := &entity.Customer{
			Name:     row.Name,
			Phone:    row.Phone,
			Address:  row.Address,
			TotalDue: due,
			Notes:    row.Notes,
		}
		if err := s.customerRepo.Create(ctx, customer); err != nil {
			result.Skipped++
			continue
		}
		result.Imported++
	}

	return result, nil
}
