package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/zisan5910/zisan-trader-pro/internal/domain/enum"
)

func TestComputeSaleScenarios(t *testing.T) {
	cart := []CartLine{{Quantity: 2, SalePrice: 10000, CostPrice: 6000}}

	tests := []struct {
		name     string
		lines    []CartLine
		discount int64
		paid     int64
		want     SaleTotals
	}{
		{
			name:     "exact payment after discount",
			lines:    cart,
			discount: 2000,
			paid:     15000,
			want:     SaleTotals{SubTotal: 20000, Total: 18000, Due: 3000, Overpayment: 0, Profit: 6000},
		},
		{
			name:     "partial payment leaves due",
			lines:    cart,
			discount: 2000,
			paid:     10000,
			want:     SaleTotals{SubTotal: 20000, Total: 18000, Due: 8000, Overpayment: 0, Profit: 6000},
		},
		{
			name:     "overpayment becomes extra profit",
			lines:    cart,
			discount: 2000,
			paid:     20000,
			want:     SaleTotals{SubTotal: 20000, Total: 18000, Due: 0, Overpayment: 2000, Profit: 8000},
		},
		{
			name:  "empty cart yields all zeros",
			lines: nil,
			paid:  5000,
			want:  SaleTotals{},
		},
		{
			name:     "discount larger than subtotal clamps total",
			lines:    []CartLine{{Quantity: 1, SalePrice: 5000, CostPrice: 3000}},
			discount: 8000,
			paid:     0,
			want:     SaleTotals{SubTotal: 5000, Total: 0, Due: 0, Overpayment: 0, Profit: -6000},
		},
		{
			name:     "negative discount and paid clamp to zero",
			lines:    cart,
			discount: -500,
			paid:     -500,
			want:     SaleTotals{SubTotal: 20000, Total: 20000, Due: 20000, Overpayment: 0, Profit: 8000},
		},
		{
			name:  "fractional quantity rounds to the cent",
			lines: []CartLine{{Quantity: 1.5, SalePrice: 333, CostPrice: 100}},
			want:  SaleTotals{SubTotal: 500, Total: 500, Due: 500, Overpayment: 0, Profit: 350},
		},
		{
			name:  "zero quantity line contributes nothing",
			lines: []CartLine{{Quantity: 0, SalePrice: 10000, CostPrice: 5000}, {Quantity: 1, SalePrice: 2000, CostPrice: 1000}},
			want:  SaleTotals{SubTotal: 2000, Total: 2000, Due: 2000, Overpayment: 0, Profit: 1000},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ComputeSale(tt.lines, tt.discount, tt.paid)
			if got != tt.want {
				t.Errorf("ComputeSale() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// The total always splits cleanly between what was paid and what remains
// due, and overpayment only appears once paid exceeds the total.
func TestComputeSaleConservation(t *testing.T) {
	cart := []CartLine{
		{Quantity: 3, SalePrice: 4500, CostPrice: 3000},
		{Quantity: 0.25, SalePrice: 12000, CostPrice: 9000},
	}

	for _, paid := range []int64{0, 1000, 9500, 16500, 25000, 100000} {
		got := ComputeSale(cart, 1000, paid)

		settled := paid
		if settled > got.Total {
			settled = got.Total
		}
		if got.Due+settled != got.Total {
			t.Errorf("paid=%d: due %d + settled %d != total %d", paid, got.Due, settled, got.Total)
		}

		wantOver := int64(0)
		if paid > got.Total {
			wantOver = paid - got.Total
		}
		if got.Overpayment != wantOver {
			t.Errorf("paid=%d: overpayment = %d, want %d", paid, got.Overpayment, wantOver)
		}
	}
}

func TestApplyDue(t *testing.T) {
	tests := []struct {
		name    string
		current int64
		delta   int64
		want    int64
	}{
		{"new due from unpaid sale", 10000, 5000, 15000},
		{"payment reduces due", 10000, -4000, 6000},
		{"overpayment clamps at zero", 50000, -70000, 0},
		{"zero delta is idempotent", 12345, 0, 12345},
		{"payment against empty ledger", 0, -5000, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ApplyDue(tt.current, tt.delta); got != tt.want {
				t.Errorf("ApplyDue(%d, %d) = %d, want %d", tt.current, tt.delta, got, tt.want)
			}
		})
	}
}

func TestApplyDueNeverNegative(t *testing.T) {
	for _, due := range []int64{0, 1, 499, 100000} {
		for _, delta := range []int64{-1 << 40, -100001, -1, 0, 1, 100000} {
			if got := ApplyDue(due, delta); got < 0 {
				t.Fatalf("ApplyDue(%d, %d) = %d, negative balance", due, delta, got)
			}
		}
	}
}

func TestCommission(t *testing.T) {
	rate := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }

	tests := []struct {
		name   string
		amount int64
		rate   decimal.Decimal
		want   int64
	}{
		{"1000 taka at 1.85 percent", 100000, rate("0.0185"), 1850},
		{"rounds half-up to the cent", 2700, rate("0.0185"), 50}, // 0.4995 -> 0.50
		{"zero rate", 100000, decimal.Zero, 0},
		{"zero amount", 0, rate("0.02"), 0},
		{"recharge at 2 percent", 5000, rate("0.02"), 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Commission(tt.amount, tt.rate); got != tt.want {
				t.Errorf("Commission(%d, %s) = %d, want %d", tt.amount, tt.rate, got, tt.want)
			}
		})
	}
}

func TestRateTableLookup(t *testing.T) {
	table := RateTable{
		"bkash": {
			CashIn:   decimal.RequireFromString("0.01"),
			CashOut:  decimal.RequireFromString("0.0185"),
			Recharge: decimal.RequireFromString("0.02"),
		},
	}

	if got := table.Rate("bkash", enum.TransactionCashOut); !got.Equal(decimal.RequireFromString("0.0185")) {
		t.Errorf("known operator rate = %s", got)
	}
	if got := table.Rate("unknown", enum.TransactionCashIn); !got.IsZero() {
		t.Errorf("unknown operator rate = %s, want 0", got)
	}
	if got := (RateTable{}).Rate("bkash", enum.TransactionRecharge); !got.IsZero() {
		t.Errorf("empty table rate = %s, want 0", got)
	}
	if got := Commission(100000, RateTable{}.Rate("anyone", enum.TransactionCashIn)); got != 0 {
		t.Errorf("empty table commission = %d, want 0", got)
	}
}

func TestNextBalance(t *testing.T) {
	if got := NextBalance(500000, enum.TransactionCashIn, 100000); got != 600000 {
		t.Errorf("cash_in: got %d, want 600000", got)
	}
	if got := NextBalance(500000, enum.TransactionCashOut, 100000); got != 400000 {
		t.Errorf("cash_out: got %d, want 400000", got)
	}
	if got := NextBalance(500000, enum.TransactionRecharge, 100000); got != 400000 {
		t.Errorf("recharge: got %d, want 400000", got)
	}
	// A cash_out of 1000 from 5000 lands on 4000 no matter the commission.
	if got := NextBalance(500000, enum.TransactionCashOut, 100000); got != 400000 {
		t.Errorf("balance moved by commission: got %d", got)
	}
}

func TestFoldBalances(t *testing.T) {
	txns := []TxnSummary{
		{Type: enum.TransactionCashIn, Amount: 100000},
		{Type: enum.TransactionCashOut, Amount: 30000},
		{Type: enum.TransactionRecharge, Amount: 5000},
		{Type: enum.TransactionCashIn, Amount: 20000},
	}

	got := FoldBalances(0, txns)
	want := []int64{100000, 70000, 65000, 85000}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("balance[%d] = %d, want %d", i, got[i], want[i])
		}
	}

	// Folding the same history twice yields the same balances.
	again := FoldBalances(0, txns)
	for i := range got {
		if got[i] != again[i] {
			t.Fatalf("fold is not idempotent at %d: %d vs %d", i, got[i], again[i])
		}
	}

	if out := FoldBalances(12345, nil); len(out) != 0 {
		t.Fatalf("empty history produced %d balances", len(out))
	}
}

func TestAggregateEmpty(t *testing.T) {
	got := Aggregate(nil, nil)
	if got != (Totals{}) {
		t.Errorf("Aggregate(nil, nil) = %+v, want zero totals", got)
	}
	if got.TotalIncome() != 0 {
		t.Errorf("empty TotalIncome = %d", got.TotalIncome())
	}
}

func TestAggregateAdditivity(t *testing.T) {
	salesA := []SaleSummary{{Total: 18000, Profit: 6000, Due: 8000}}
	salesB := []SaleSummary{{Total: 5000, Profit: 1500, Due: 0}, {Total: 700, Profit: 200, Due: 700}}
	txnsA := []TxnSummary{{Type: enum.TransactionCashIn, Amount: 100000, Commission: 1000}}
	txnsB := []TxnSummary{{Type: enum.TransactionCashOut, Amount: 40000, Commission: 740}}

	union := Aggregate(append(append([]SaleSummary{}, salesA...), salesB...),
		append(append([]TxnSummary{}, txnsA...), txnsB...))
	a := Aggregate(salesA, txnsA)
	b := Aggregate(salesB, txnsB)

	sum := Totals{
		SalesAmount: a.SalesAmount + b.SalesAmount,
		Profit:      a.Profit + b.Profit,
		DueAccrued:  a.DueAccrued + b.DueAccrued,
		Commission:  a.Commission + b.Commission,
		CashIn:      a.CashIn + b.CashIn,
		CashOut:     a.CashOut + b.CashOut,
		Recharge:    a.Recharge + b.Recharge,
		SaleCount:   a.SaleCount + b.SaleCount,
		TxnCount:    a.TxnCount + b.TxnCount,
	}
	if union != sum {
		t.Errorf("Aggregate(A∪B) = %+v, want %+v", union, sum)
	}
	if union.TotalIncome() != union.Profit+union.Commission {
		t.Errorf("TotalIncome = %d, want profit+commission", union.TotalIncome())
	}
}

func TestIsLowStock(t *testing.T) {
	tests := []struct {
		name         string
		stock, alert float64
		want         bool
	}{
		{"at threshold is low", 5, 5, true},
		{"below threshold", 2, 5, true},
		{"above threshold", 6, 5, false},
		{"unset alert falls back to default", 5, 0, true},
		{"unset alert above default", 5.5, 0, false},
		{"fractional stock", 4.75, 5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsLowStock(tt.stock, tt.alert, 5); got != tt.want {
				t.Errorf("IsLowStock(%v, %v, 5) = %v, want %v", tt.stock, tt.alert, got, tt.want)
			}
		})
	}
}
