package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
	"gorm.io/gorm"
)

// BankingTransaction is one entry in the mobile-banking agent ledger.
// Sequence is a monotonic ordinal assigned at insert; BalanceAfter is a
// function of the ordered history, recomputed whenever an earlier entry
// changes.
type BankingTransaction struct {
	ID           uuid.UUID            `gorm:"type:uuid;primary_key" json:"id"`
	Type         enum.TransactionType `gorm:"size:20;not null;index" json:"type"`
	Operator     string               `gorm:"size:50;not null;index" json:"operator"`
	Amount       int64                `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Commission   int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	BalanceAfter int64                `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Sequence     int64                `gorm:"uniqueIndex;not null" json:"sequence"`
	Note         *string              `gorm:"type:text" json:"note,omitempty"`
	CreatedAt    time.Time            `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time            `json:"updated_at"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (t BankingTransaction) MarshalJSON() ([]byte, error) {
	type Alias BankingTransaction
	return json.Marshal(&struct {
		Alias
		Amount       float64 `json:"amount"`
		Commission   float64 `json:"commission"`
		BalanceAfter float64 `json:"balance_after"`
	}{
		Alias:        Alias(t),
		Amount:       float64(t.Amount) / 100,
		Commission:   float64(t.Commission) / 100,
		BalanceAfter: float64(t.BalanceAfter) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new transaction
func (t *BankingTransaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the BankingTransaction model
func (BankingTransaction) TableName() string {
	return "banking_transactions"
}
