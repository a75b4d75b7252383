package request

import "github.com/google/uuid"

// SaleItemRequest is one cart line of a sale request
type SaleItemRequest struct {
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Quantity  float64   `json:"quantity" binding:"required,gt=0"`
}

// CreateSaleRequest represents a sale creation request
type CreateSaleRequest struct {
	CustomerID *uuid.UUID        `json:"customer_id"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
	Discount   float64           `json:"discount" binding:"min=0"`
	Paid       float64           `json:"paid" binding:"min=0"`
}

// BulkDeleteSalesRequest represents a bulk sale deletion request
type BulkDeleteSalesRequest struct {
	IDs []uuid.UUID `json:"ids" binding:"required,min=1"`
}

// SaleFilterRequest represents sale filter parameters
type SaleFilterRequest struct {
	CustomerID string `form:"customer_id"`
	From       string `form:"from"`
	To         string `form:"to"`
	OnlyDue    bool   `form:"only_due"`
	Page       int    `form:"page"`
	PerPage    int    `form:"per_page"`
}
