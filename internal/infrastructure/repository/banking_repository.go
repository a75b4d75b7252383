package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/entity"
	domainRepo "github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type bankingRepository struct {
	db *gorm.DB
}

// NewBankingRepository creates a new banking repository
func NewBankingRepository(db *gorm.DB) domainRepo.BankingRepository {
	return &bankingRepository{db: db}
}

// Append assigns the next sequence number and the running balance under a
// row lock on the ledger tail. The unique index on sequence backstops a
// concurrent insert that slips past the lock.
func (r *bankingRepository) Append(ctx context.Context, txn *entity.BankingTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var last entity.BankingTransaction
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("sequence DESC").
			First(&last).Error

		var prevSeq, prevBalance int64
		switch {
		case err == nil:
			prevSeq = last.Sequence
			prevBalance = last.BalanceAfter
		case errors.Is(err, gorm.ErrRecordNotFound):
			// empty ledger, opening balance is zero
		default:
			return err
		}

		txn.Sequence = prevSeq + 1
		txn.BalanceAfter = ledger.NextBalance(prevBalance, txn.Type, txn.Amount)

		return tx.Create(txn).Error
	})
}

func (r *bankingRepository) GetByID(ctx context.Context, id uuid.UUID) (*entity.BankingTransaction, error) {
	var txn entity.BankingTransaction
	err := r.db.WithContext(ctx).First(&txn, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &txn, err
}

func (r *bankingRepository) List(ctx context.Context, params *domainRepo.BankingFilterParams) ([]entity.BankingTransaction, int64, error) {
	var txns []entity.BankingTransaction
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.BankingTransaction{})

	if params.Operator != "" {
		query = query.Where("operator = ?", params.Operator)
	}
	if params.From != nil {
		query = query.Where("created_at >= ?", *params.From)
	}
	if params.To != nil {
		query = query.Where("created_at < ?", *params.To)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	params.Pagination.Validate()
	err := query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage).
		Order("sequence DESC").
		Find(&txns).Error

	return txns, total, err
}

func (r *bankingRepository) ListRange(ctx context.Context, from, to time.Time) ([]entity.BankingTransaction, error) {
	var txns []entity.BankingTransaction
	err := r.db.WithContext(ctx).
		Where("created_at >= ? AND created_at < ?", from, to).
		Order("sequence ASC").
		Find(&txns).Error
	return txns, err
}

func (r *bankingRepository) CurrentBalance(ctx context.Context) (int64, error) {
	var last entity.BankingTransaction
	err := r.db.WithContext(ctx).Order("sequence DESC").First(&last).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	return last.BalanceAfter, nil
}

// UpdateAndReflow rewrites an existing transaction and refolds the running
// balance over the whole ordered ledger, since any change upstream shifts
// every balance after it.
func (r *bankingRepository) UpdateAndReflow(ctx context.Context, txn *entity.BankingTransaction) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.BankingTransaction{}).
			Where("id = ?", txn.ID).
			Updates(map[string]interface{}{
				"type":       txn.Type,
				"operator":   txn.Operator,
				"amount":     txn.Amount,
				"commission": txn.Commission,
				"note":       txn.Note,
			}).Error; err != nil {
			return err
		}
		return r.reflow(tx)
	})
}

// DeleteAndReflow removes a transaction and refolds balances over the rows
// that remain. Sequence numbers of later rows are kept, gaps are fine. The
// delete is permanent: a soft-deleted row would keep holding its sequence in
// the unique index and block the next Append from reusing it.
func (r *bankingRepository) DeleteAndReflow(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&entity.BankingTransaction{}, "id = ?", id).Error; err != nil {
			return err
		}
		return r.reflow(tx)
	})
}

func (r *bankingRepository) reflow(tx *gorm.DB) error {
	var txns []entity.BankingTransaction
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		Order("sequence ASC").
		Find(&txns).Error; err != nil {
		return err
	}

	summaries := make([]ledger.TxnSummary, len(txns))
	for i, t := range txns {
		summaries[i] = ledger.TxnSummary{Type: t.Type, Amount: t.Amount, Commission: t.Commission}
	}
	balances := ledger.FoldBalances(0, summaries)

	for i := range txns {
		if txns[i].BalanceAfter == balances[i] {
			continue
		}
		if err := tx.Model(&entity.BankingTransaction{}).
			Where("id = ?", txns[i].ID).
			Update("balance_after", balances[i]).Error; err != nil {
			return err
		}
	}
	return nil
}
