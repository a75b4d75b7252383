package request

// OperatorRatesRequest holds the three per-type commission rates of one operator
type OperatorRatesRequest struct {
	CashIn   float64 `json:"cash_in" binding:"min=0,max=1"`
	CashOut  float64 `json:"cash_out" binding:"min=0,max=1"`
	Recharge float64 `json:"recharge" binding:"min=0,max=1"`
}

// UpdateRatesRequest replaces the whole commission rate table
type UpdateRatesRequest struct {
	Rates map[string]OperatorRatesRequest `json:"rates" binding:"required,min=1"`
}
