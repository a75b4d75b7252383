package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/pkg/pagination"
)

// BankingFilterParams represents filter parameters for banking ledger queries
type BankingFilterParams struct {
	Pagination *pagination.PaginationParams
	Operator   string
	From       *time.Time
	To         *time.Time
}

// BankingRepository defines the interface for the mobile-banking ledger.
// Append assigns the next sequence number and the running balance inside a
// transaction; UpdateAndReflow and DeleteAndReflow rewrite the affected row
// and then refold the running balance over the ordered history.
type BankingRepository interface {
	Append(ctx context.Context, txn *entity.BankingTransaction) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.BankingTransaction, error)
	List(ctx context.Context, params *BankingFilterParams) ([]entity.BankingTransaction, int64, error)
	ListRange(ctx context.Context, from, to time.Time) ([]entity.BankingTransaction, error)
	CurrentBalance(ctx context.Context) (int64, error)
	UpdateAndReflow(ctx context.Context, txn *entity.BankingTransaction) error
	DeleteAndReflow(ctx context.Context, id uuid.UUID) error
}
