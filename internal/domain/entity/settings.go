package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"gorm.io/gorm"
)

// RateTableJSON stores a ledger.RateTable as a JSONB column
type RateTableJSON ledger.RateTable

// Value implements driver.Valuer for JSONB storage
func (r RateTableJSON) Value() (driver.Value, error) {
	return json.Marshal(r)
}

// Scan implements sql.Scanner for JSONB storage
func (r *RateTableJSON) Scan(value interface{}) error {
	if value == nil {
		*r = RateTableJSON{}
		return nil
	}
	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("unsupported type for rate table column")
	}
	return json.Unmarshal(raw, r)
}

// Table converts the stored column back to the ledger's rate table type
func (r RateTableJSON) Table() ledger.RateTable {
	return ledger.RateTable(r)
}

// CommissionSettings is the single settings document holding the
// operator commission rate table. Read at startup, upsertable in full.
type CommissionSettings struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	Rates     RateTableJSON  `gorm:"type:jsonb" json:"rates"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate generates a UUID before creating settings
func (s *CommissionSettings) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// TableName returns the table name for the CommissionSettings model
func (CommissionSettings) TableName() string {
	return "commission_settings"
}
