// Package ledger holds the shop arithmetic shared by the sale, customer-due
// and mobile-banking flows: totals, running balances, commissions and report
// aggregation. Everything here is a pure function over in-memory values;
// persistence and queries live in the repositories.
package ledger

import (
	"math"

	"github.com/shopspring/decimal"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
)

// CartLine is one sale line at the prices captured when the sale is rung up.
// Quantity is a real number because goods move in fractional units (kg,
// metres) as well as pieces. Prices are in cents.
type CartLine struct {
	Quantity  float64
	SalePrice int64
	CostPrice int64
}

// LineTotal returns the line amount in cents, rounded half-up.
// Zero and negative quantities contribute nothing.
func LineTotal(l CartLine) int64 {
	if l.Quantity <= 0 {
		return 0
	}
	return roundCents(float64(l.SalePrice) * l.Quantity)
}

func lineMargin(l CartLine) int64 {
	if l.Quantity <= 0 {
		return 0
	}
	return roundCents(float64(l.SalePrice-l.CostPrice) * l.Quantity)
}

// SaleTotals is the computed money breakdown of a sale, all in cents.
type SaleTotals struct {
	SubTotal    int64
	Total       int64
	Due         int64
	Overpayment int64
	Profit      int64
}

// ComputeSale derives the totals for a cart, a discount and an amount paid.
// A discount comes straight out of margin, and anything paid beyond the
// total is kept as extra margin (a cash-drawer overage, not a prepayment).
// Negative discount or paid values are clamped to zero; an empty cart
// yields all-zero totals.
func ComputeSale(lines []CartLine, discount, paid int64) SaleTotals {
	var t SaleTotals
	if len(lines) == 0 {
		return t
	}
	if discount < 0 {
		discount = 0
	}
	if paid < 0 {
		paid = 0
	}

	var margin int64
	for _, l := range lines {
		t.SubTotal += LineTotal(l)
		margin += lineMargin(l)
	}

	t.Total = maxCents(0, t.SubTotal-discount)
	t.Due = maxCents(0, t.Total-paid)
	t.Overpayment = maxCents(0, paid-t.Total)
	t.Profit = margin - discount + t.Overpayment
	return t
}

// ApplyDue moves a customer's outstanding balance by delta cents: positive
// for a new unpaid amount, negative for a collected payment. The result is
// never negative; a payment larger than the due zeroes it, the excess is
// not tracked as credit.
func ApplyDue(currentDue, delta int64) int64 {
	return maxCents(0, currentDue+delta)
}

// OperatorRates holds the fractional commission multipliers for one
// mobile-banking operator, e.g. 0.0185 for 1.85%.
type OperatorRates struct {
	CashIn   decimal.Decimal `json:"cash_in"`
	CashOut  decimal.Decimal `json:"cash_out"`
	Recharge decimal.Decimal `json:"recharge"`
}

// RateTable maps an operator identifier to its commission rates.
type RateTable map[string]OperatorRates

// Rate returns the commission rate for an operator and transaction type.
// An unknown operator or type yields zero: a configuration gap, not an
// error.
func (t RateTable) Rate(operator string, typ enum.TransactionType) decimal.Decimal {
	rates, ok := t[operator]
	if !ok {
		return decimal.Zero
	}
	switch typ {
	case enum.TransactionCashIn:
		return rates.CashIn
	case enum.TransactionCashOut:
		return rates.CashOut
	case enum.TransactionRecharge:
		return rates.Recharge
	}
	return decimal.Zero
}

// Commission computes amount×rate rounded half-up to the cent. Amount is in
// cents; the decimal arithmetic keeps small fractional rates exact.
func Commission(amount int64, rate decimal.Decimal) int64 {
	if amount <= 0 || rate.IsZero() {
		return 0
	}
	return decimal.New(amount, -2).Mul(rate).Round(2).Shift(2).IntPart()
}

// NextBalance applies one transaction to the previous cash-on-hand balance:
// cash_in adds, cash_out and recharge subtract. Commission is tracked as
// separate income and never moves the cash balance.
func NextBalance(prev int64, typ enum.TransactionType, amount int64) int64 {
	if typ == enum.TransactionCashIn {
		return prev + amount
	}
	return prev - amount
}

// TxnSummary is the slice of a banking transaction the ledger arithmetic
// needs.
type TxnSummary struct {
	Type       enum.TransactionType
	Amount     int64
	Commission int64
}

// FoldBalances recomputes the running balance for an ordered transaction
// history starting from an opening balance. The stored balance column stays
// an idempotent function of history, so an edit or delete in the middle of
// the ledger reflows everything after it.
func FoldBalances(opening int64, txns []TxnSummary) []int64 {
	balances := make([]int64, len(txns))
	bal := opening
	for i, tx := range txns {
		bal = NextBalance(bal, tx.Type, tx.Amount)
		balances[i] = bal
	}
	return balances
}

// SaleSummary is the slice of a sale the report aggregation needs.
type SaleSummary struct {
	Total  int64
	Profit int64
	Due    int64
}

// Totals is the aggregate of a time window of sales and banking
// transactions. All money is in cents.
type Totals struct {
	SalesAmount int64 `json:"sales_amount"`
	Profit      int64 `json:"profit"`
	DueAccrued  int64 `json:"due_accrued"`
	Commission  int64 `json:"commission"`
	CashIn      int64 `json:"cash_in"`
	CashOut     int64 `json:"cash_out"`
	Recharge    int64 `json:"recharge"`
	SaleCount   int   `json:"sale_count"`
	TxnCount    int   `json:"txn_count"`
}

// TotalIncome is profit from sales plus commission earned on banking
// transactions.
func (t Totals) TotalIncome() int64 {
	return t.Profit + t.Commission
}

// Aggregate folds a window of records into report totals. A plain sum over
// one implicit currency: no weighting, no conversion. Aggregating two
// disjoint windows and adding the results equals aggregating their union.
func Aggregate(sales []SaleSummary, txns []TxnSummary) Totals {
	var t Totals
	for _, s := range sales {
		t.SalesAmount += s.Total
		t.Profit += s.Profit
		t.DueAccrued += s.Due
	}
	t.SaleCount = len(sales)

	for _, tx := range txns {
		t.Commission += tx.Commission
		switch tx.Type {
		case enum.TransactionCashIn:
			t.CashIn += tx.Amount
		case enum.TransactionCashOut:
			t.CashOut += tx.Amount
		case enum.TransactionRecharge:
			t.Recharge += tx.Amount
		}
	}
	t.TxnCount = len(txns)
	return t
}

// IsLowStock reports whether a product needs reordering. The threshold is
// inclusive; products with no configured alert level fall back to the
// application-wide default.
func IsLowStock(stock, alert, defaultAlert float64) bool {
	if alert <= 0 {
		alert = defaultAlert
	}
	return stock <= alert
}

// Cents converts a currency amount expressed as a float into cents, rounding
// half away from zero. All request payloads carry amounts as floats; they are
// converted exactly once, at the boundary, through this function.
func Cents(amount float64) int64 {
	return roundCents(amount * 100)
}

// roundCents rounds half away from zero, the documented rounding mode for
// all cent arithmetic in this package.
func roundCents(x float64) int64 {
	return int64(math.Round(x))
}

func maxCents(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
