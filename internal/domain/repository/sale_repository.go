package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	"github.com/zisan5910/zisan-trader-pro/pkg/pagination"
)

// SaleFilterParams represents filter parameters for sale queries
type SaleFilterParams struct {
	Pagination *pagination.PaginationParams
	CustomerID *uuid.UUID
	From       *time.Time
	To         *time.Time
	OnlyDue    bool
}

// SaleCommit is the full write-set of a sale: the sale row with its item
// snapshots, the stock movements it causes, the customer due delta and the
// optional payment log entry. The repository applies the whole set in one
// transaction so a partial failure can never leave the ledger inconsistent.
type SaleCommit struct {
	Sale        *entity.Sale
	StockDeltas map[uuid.UUID]float64 // negative quantities decrement stock
	DueDeltas   map[uuid.UUID]int64   // cents added to (positive) or removed from each customer due
	Payment     *entity.Payment

	// ReplaceID, when set, makes the commit an edit: the existing sale row is
	// rewritten and its old item snapshots dropped before the new write-set
	// applies.
	ReplaceID *uuid.UUID
}

// SaleRepository defines the interface for sale data access
type SaleRepository interface {
	Commit(ctx context.Context, commit *SaleCommit) error
	GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error)
	List(ctx context.Context, params *SaleFilterParams) ([]entity.Sale, int64, error)
	ListRange(ctx context.Context, from, to time.Time) ([]entity.Sale, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteBatch(ctx context.Context, ids []uuid.UUID) error

	// PurgeOlderThan removes sales (and their item snapshots) created before
	// the cutoff, at most batchSize rows per call. Returns the number of
	// sales removed.
	PurgeOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error)
}
