package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
	"gorm.io/gorm"
)

// Payment is an append-only audit record of money collected from a
// customer, either at sale time or later against an outstanding due.
type Payment struct {
	ID         uuid.UUID          `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID *uuid.UUID         `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	SaleID     *uuid.UUID         `gorm:"type:uuid;index" json:"sale_id,omitempty"`
	Amount     int64              `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Method     enum.PaymentMethod `gorm:"size:30;default:'cash'" json:"method"`
	Note       *string            `gorm:"size:255" json:"note,omitempty"`
	CreatedAt  time.Time          `gorm:"index" json:"created_at"`
	DeletedAt  gorm.DeletedAt     `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Payment) MarshalJSON() ([]byte, error) {
	type Alias Payment
	return json.Marshal(&struct {
		Alias
		Amount float64 `json:"amount"`
	}{
		Alias:  Alias(p),
		Amount: float64(p.Amount) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new payment
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Payment model
func (Payment) TableName() string {
	return "payments"
}
