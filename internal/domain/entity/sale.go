package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Sale represents a completed point-of-sale transaction. Item prices are
// snapshotted at sale time, so later product price edits never change past
// sales.
type Sale struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	CustomerID   *uuid.UUID     `gorm:"type:uuid;index" json:"customer_id,omitempty"`
	CustomerName string         `gorm:"size:255;default:'Cash Sale'" json:"customer_name"`
	InvoiceNo    string         `gorm:"size:100;unique;not null" json:"invoice_no"`
	SubTotal     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Discount     int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Total        int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Paid         int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Due          int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Overpayment  int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	Profit       int64          `gorm:"default:0" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relationships
	Customer *Customer  `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items    []SaleItem `gorm:"foreignKey:SaleID" json:"items,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (s Sale) MarshalJSON() ([]byte, error) {
	type Alias Sale
	return json.Marshal(&struct {
		Alias
		SubTotal    float64 `json:"sub_total"`
		Discount    float64 `json:"discount"`
		Total       float64 `json:"total"`
		Paid        float64 `json:"paid"`
		Due         float64 `json:"due"`
		Overpayment float64 `json:"overpayment"`
		Profit      float64 `json:"profit"`
	}{
		Alias:       Alias(s),
		SubTotal:    float64(s.SubTotal) / 100,
		Discount:    float64(s.Discount) / 100,
		Total:       float64(s.Total) / 100,
		Paid:        float64(s.Paid) / 100,
		Due:         float64(s.Due) / 100,
		Overpayment: float64(s.Overpayment) / 100,
		Profit:      float64(s.Profit) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale
func (s *Sale) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Sale model
func (Sale) TableName() string {
	return "sales"
}

// SaleItem is one line of a sale with prices captured at sale time
type SaleItem struct {
	ID          uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	SaleID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"product_id"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Quantity    float64        `gorm:"not null" json:"quantity"`
	SalePrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CostPrice   int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	Total       int64          `gorm:"not null" json:"-"` // Stored in cents, excluded from JSON
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (si SaleItem) MarshalJSON() ([]byte, error) {
	type Alias SaleItem
	return json.Marshal(&struct {
		Alias
		SalePrice float64 `json:"sale_price"`
		CostPrice float64 `json:"cost_price"`
		Total     float64 `json:"total"`
	}{
		Alias:     Alias(si),
		SalePrice: float64(si.SalePrice) / 100,
		CostPrice: float64(si.CostPrice) / 100,
		Total:     float64(si.Total) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new sale item
func (si *SaleItem) BeforeCreate(tx *gorm.DB) error {
	if si.ID == uuid.Nil {
		si.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the SaleItem model
func (SaleItem) TableName() string {
	return "sale_items"
}
