package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	domainRepo "github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"gorm.io/gorm"
)

type saleRepository struct {
	db *gorm.DB
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *gorm.DB) domainRepo.SaleRepository {
	return &saleRepository{db: db}
}

// Commit applies the full write-set of a sale in one transaction: the sale
// row with its item snapshots, the stock movements, the customer due deltas
// and the optional payment entry. On edit (ReplaceID set) the old row is
// rewritten in place and its previous item snapshots discarded first.
func (r *saleRepository) Commit(ctx context.Context, commit *domainRepo.SaleCommit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		sale := commit.Sale
		items := sale.Items
		sale.Items = nil

		if commit.ReplaceID != nil {
			sale.ID = *commit.ReplaceID
			if err := tx.Unscoped().
				Where("sale_id = ?", *commit.ReplaceID).
				Delete(&entity.SaleItem{}).Error; err != nil {
				return err
			}
			if err := tx.Save(sale).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Create(sale).Error; err != nil {
				return err
			}
		}

		for i := range items {
			items[i].SaleID = sale.ID
		}
		if len(items) > 0 {
			if err := tx.Create(&items).Error; err != nil {
				return err
			}
		}
		sale.Items = items

		// Stock never goes below zero even when the cart oversells
		for productID, delta := range commit.StockDeltas {
			if delta == 0 {
				continue
			}
			if err := tx.Model(&entity.Product{}).
				Where("id = ?", productID).
				Update("quantity", gorm.Expr("GREATEST(quantity + ?, 0)", delta)).Error; err != nil {
				return err
			}
		}

		// A customer-changing edit adjusts two dues here, both inside the
		// same transaction as the sale rewrite.
		for customerID, delta := range commit.DueDeltas {
			if delta == 0 {
				continue
			}
			if err := tx.Model(&entity.Customer{}).
				Where("id = ?", customerID).
				Update("total_due", gorm.Expr("GREATEST(total_due + ?, 0)", delta)).Error; err != nil {
				return err
			}
		}

		if commit.Payment != nil {
			if err := tx.Create(commit.Payment).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *saleRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.Sale, error) {
	var sale entity.Sale
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Customer").
		First(&sale, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &sale, err
}

func (r *saleRepository) List(ctx context.Context, params *domainRepo.SaleFilterParams) ([]entity.Sale, int64, error) {
	var sales []entity.Sale
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Sale{})

	if params.CustomerID != nil {
		query = query.Where("customer_id = ?", *params.CustomerID)
	}
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at < ?", *params.To)
	}
	if params.OnlyDue {
		query = query.Where("due > 0")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("created_at DESC").
		Preload("Items").
		Find(&sales).Error

	return sales, total, err
}

func (r *saleRepository) ListRange(ctx context.Context, from, to time.Time) ([]entity.Sale, error) {
	var sales []entity.Sale
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("created_at ASC").
		Preload("Items").
		Find(&sales).Error
	return sales, err
}

func (r *saleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id = ?", id).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id = ?", id).Error
	})
}

func (r *saleRepository) DeleteBatch(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("sale_id IN ?", ids).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&entity.Sale{}, "id IN ?", ids).Error
	})
}

// PurgeOlderThan hard-deletes sales past the retention window in batches so
// a large backlog never holds one long transaction open.
func (r *saleRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time, batchSize int) (int64, error) {
	var ids []uuid.UUID
	err := r.db.WithContext(ctx).Model(&entity.Sale{}).
		Unscoped().
		Where("created_at < ?", cutoff).
		Order("created_at ASC").
		Limit(batchSize).
		Pluck("id", &ids).Error
	if err != nil {
		return 0, err
	}
	if len(ids) == 0 {
		return 0, nil
	}

	err = r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("sale_id IN ?", ids).Delete(&entity.SaleItem{}).Error; err != nil {
			return err
		}
		return tx.Unscoped().Delete(&entity.Sale{}, "id IN ?", ids).Error
	})
	if err != nil {
		return 0, err
	}

	return int64(len(ids)), nil
}
