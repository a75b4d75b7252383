package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/pkg/pagination"
)

// CustomerFilterParams holds filtering options for customer queries
type CustomerFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string
	OnlyDue    bool
}

// CustomerRepository defines the interface for customer data access
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context, params *CustomerFilterParams) ([]entity.Customer, int64, error)
	ListWithDue(ctx context.Context) ([]entity.Customer, error)
	All(ctx context.Context) ([]entity.Customer, error)

	// ApplyPayment caps the payment at the outstanding due, persists the new
	// balance and appends the payment audit row in one transaction.
	ApplyPayment(ctx context.Context, payment *entity.Payment) (*entity.Customer, error)
}

// PaymentRepository defines the interface for the append-only payment log
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error)
}
