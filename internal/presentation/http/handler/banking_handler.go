package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/zisan5910/zisan-trader-pro/internal/application/service"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/repository"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/dto/request"
	"github.com/zisan5910/zisan-trader-pro/internal/presentation/http/dto/response"
	"github.com/zisan5910/zisan-trader-pro/pkg/pagination"
)

// BankingHandler handles mobile-banking ledger HTTP requests
type BankingHandler struct {
	bankingService *service.BankingService
}

// NewBankingHandler creates a new banking handler
func NewBankingHandler(bankingService *service.BankingService) *BankingHandler {
	return &BankingHandler{bankingService: bankingService}
}

// Create handles appending a ledger entry
func (h *BankingHandler) Create(c *gin.Context) {
	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	txn, err := h.bankingService.CreateTransaction(c.Request.Context(), &service.CreateTransactionInput{
		Type:     req.Type,
		Operator: req.Operator,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Transaction created successfully", txn)
}

// Update handles rewriting a ledger entry
func (h *BankingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	var req request.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	txn, err := h.bankingService.UpdateTransaction(c.Request.Context(), id, &service.CreateTransactionInput{
		Type:     req.Type,
		Operator: req.Operator,
		Amount:   req.Amount,
		Note:     req.Note,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction updated successfully", txn)
}

// Delete handles removing a ledger entry
func (h *BankingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	if err := h.bankingService.DeleteTransaction(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction deleted successfully", nil)
}

// Get handles retrieving a single ledger entry
func (h *BankingHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid transaction ID")
		return
	}

	txn, err := h.bankingService.GetTransaction(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Transaction retrieved successfully", txn)
}

// List handles listing ledger entries
func (h *BankingHandler) List(c *gin.Context) {
	var filter request.BankingFilterRequest
	if err := c.ShouldBindQuery(&filter); err != nil {
		response.BadRequest(c, "Invalid filter parameters")
		return
	}

	params := &repository.BankingFilterParams{
		Pagination: &pagination.PaginationParams{Page: filter.Page, PerPage: filter.PerPage},
		Operator:   filter.Operator,
	}

	if filter.From != "" {
		from, err := parseDate(filter.From, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid from date, expected YYYY-MM-DD")
			return
		}
		params.From = &from
	}
	if filter.To != "" {
		to, err := parseDate(filter.To, time.Local)
		if err != nil {
			response.BadRequest(c, "Invalid to date, expected YYYY-MM-DD")
			return
		}
		end := to.AddDate(0, 0, 1)
		params.To = &end
	}

	txns, total, err := h.bankingService.ListTransactions(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(txns,
		pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total))
	response.SuccessWithPagination(c, 200, "Transactions retrieved successfully", result)
}

// Summary handles the today-view of the ledger
func (h *BankingHandler) Summary(c *gin.Context) {
	now := time.Now()
	from := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	summary, err := h.bankingService.Summarize(c.Request.Context(), from, from.AddDate(0, 0, 1))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Banking summary retrieved successfully", summary)
}
