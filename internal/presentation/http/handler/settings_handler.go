package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/zisan5910/zisan-trader-pro/internal/application/service"
	"github.com/zisan5910/zisan-trader-pro/internal/ledger"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/dto/request"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/dto/response"
)

// SettingsHandler handles commission rate table HTTP requests
type SettingsHandler struct {
	settingsService *service.SettingsService
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

// GetRates handles retrieving the active commission rate table
func (h *SettingsHandler) GetRates(c *gin.Context) {
	table, err := h.settingsService.GetRateTable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rates retrieved successfully", table)
}

// UpdateRates handles replacing the commission rate table
func (h *SettingsHandler) UpdateRates(c *gin.Context) {
	var req request.UpdateRatesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	table := make(ledger.RateTable, len(req.Rates))
	for operator, rates := range req.Rates {
		table[operator] = ledger.OperatorRates{
			CashIn:   decimal.NewFromFloat(rates.CashIn),
			CashOut:  decimal.NewFromFloat(rates.CashOut),
			Recharge: decimal.NewFromFloat(rates.Recharge),
		}
	}

	updated, err := h.settingsService.UpdateRateTable(c.Request.Context(), table)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rates updated successfully", updated)
}

// ResetRates handles restoring the stock default commission rates
func (h *SettingsHandler) ResetRates(c *gin.Context) {
	table, err := h.settingsService.ResetRateTable(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Commission rates reset successfully", table)
}
