package entity

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"gorm.io/gorm"
)

// Product represents a product in the shop inventory
type Product struct {
	ID            uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Name          string         `gorm:"size:255;not null" json:"name"`
	Code          string         `gorm:"size:100;index:idx_products_code,unique,where:deleted_at IS NULL" json:"code"`
	Unit          string         `gorm:"size:50;default:'pcs'" json:"unit"`
	Quantity      float64        `gorm:"default:0" json:"quantity"`       // fractional stock (kg, m) is legal
	QuantityAlert float64        `gorm:"default:0" json:"quantity_alert"` // 0 means "use the configured default"
	BuyingPrice   int64          `gorm:"default:0" json:"-"`              // Stored in cents, excluded from JSON
	SellingPrice  int64          `gorm:"default:0" json:"-"`              // Stored in cents, excluded from JSON
	Notes         *string        `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (p Product) MarshalJSON() ([]byte, error) {
	type Alias Product
	return json.Marshal(&struct {
		Alias
		BuyingPrice  float64 `json:"buying_price"`
		SellingPrice float64 `json:"selling_price"`
	}{
		Alias:        Alias(p),
		BuyingPrice:  float64(p.BuyingPrice) / 100,
		SellingPrice: float64(p.SellingPrice) / 100,
	})
}

// BeforeCreate generates a UUID before creating a new product
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the Product model
func (Product) TableName() string {
	return "products"
}

// SetBuyingPriceFromDecimal sets the buying price from a decimal value
func (p *Product) SetBuyingPriceFromDecimal(price float64) {
	p.BuyingPrice = ledger.Cents(price)
}

// SetSellingPriceFromDecimal sets the selling price from a decimal value
func (p *Product) SetSellingPriceFromDecimal(price float64) {
	p.SellingPrice = ledger.Cents(price)
}
