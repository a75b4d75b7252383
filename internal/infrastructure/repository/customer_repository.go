package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	domainRepo "github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type customerRepository struct {
	db *gorm.DB
}

// NewCustomerRepository creates a new customer repository
func NewCustomerRepository(db *gorm.DB) domainRepo.CustomerRepository {
	return &customerRepository{db: db}
}

func (r *customerRepository) Create(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *customerRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	var customer entity.Customer
	err := r.db.WithContext(ctx).First(&customer, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &customer, err
}

func (r *customerRepository) Update(ctx context.Context, customer *entity.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

func (r *customerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&entity.Customer{}, "id = ?", id).Error
}

func (r *customerRepository) List(ctx context.Context, params *domainRepo.CustomerFilterParams) ([]entity.Customer, int64, error) {
	var customers []entity.Customer
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Customer{})

	if params.Search != "" {
		query = query.Where("name ILIKE ? OR phone ILIKE ?",
			"%"+params.Search+"%", "%"+params.Search+"%")
	}

	if params.OnlyDue {
		query = query.Where("total_due > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Find(&customers).Error

	return customers, total, err
}

func (r *customerRepository) ListWithDue(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).
		Where("total_due > 0").
		Order("total_due DESC").
		Find(&customers).Error
	return customers, err
}

func (r *customerRepository) All(ctx context.Context) ([]entity.Customer, error) {
	var customers []entity.Customer
	err := r.db.WithContext(ctx).Order("name ASC").Find(&customers).Error
	return customers, err
}

// ApplyPayment records a due collection and settles the customer balance
// in one transaction. The amount credited against the balance is capped
// at the outstanding due; the payment row keeps the amount as given.
func (r *customerRepository) ApplyPayment(ctx context.Context, payment *entity.Payment) (*entity.Customer, error) {
	var customer entity.Customer

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if payment.CustomerID == nil {
			return errors.New("payment requires a customer")
		}

		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&customer, "id = ?", *payment.CustomerID).Error; err != nil {
			return err
		}

		credited := payment.Amount
		if credited > customer.TotalDue {
			credited = customer.TotalDue
		}
		customer.TotalDue = ledger.ApplyDue(customer.TotalDue, -credited)

		if err := tx.Model(&entity.Customer{}).
			Where("id = ?", customer.ID).
			Update("total_due", customer.TotalDue).Error; err != nil {
			return err
		}

		return tx.Create(payment).Error
	})
	if err != nil {
		return nil, err
	}

	return &customer, nil
}

type paymentRepository struct {
	db *gorm.DB
}

// NewPaymentRepository creates a new payment repository
func NewPaymentRepository(db *gorm.DB) domainRepo.PaymentRepository {
	return &paymentRepository{db: db}
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.db.WithContext(ctx).Create(payment).Error
}

func (r *paymentRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]entity.Payment, error) {
	var payments []entity.Payment
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at DESC").
		Find(&payments).Error
	return payments, err
}
