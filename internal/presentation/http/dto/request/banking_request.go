package request

// CreateTransactionRequest represents a mobile-banking ledger entry request
type CreateTransactionRequest struct {
	Type     string  `json:"type" binding:"required,oneof=cash_in cash_out recharge"`
	Operator string  `json:"operator" binding:"required,min=1,max=50"`
	Amount   float64 `json:"amount" binding:"required,gt=0"`
	Note     *string `json:"note"`
}

// BankingFilterRequest represents banking ledger filter parameters
type BankingFilterRequest struct {
	Operator string `form:"operator"`
	From     string `form:"from"`
	To       string `form:"to"`
	Page     int    `form:"page"`
	PerPage  int    `form:"per_page"`
}
