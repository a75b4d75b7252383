package enum

// TransactionType classifies a mobile-banking agent transaction
type TransactionType string

const (
	TransactionCashIn   TransactionType = "cash_in"
	TransactionCashOut  TransactionType = "cash_out"
	TransactionRecharge TransactionType = "recharge"
)

// IsValid checks if the transaction type is one of the known values
func (t TransactionType) IsValid() bool {
	switch t {
	case TransactionCashIn, TransactionCashOut, TransactionRecharge:
		return true
	}
	return false
}

// String returns the string representation of the transaction type
func (t TransactionType) String() string {
	return string(t)
}
