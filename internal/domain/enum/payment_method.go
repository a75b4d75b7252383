package enum

// PaymentMethod is how a customer settled a due or a sale
type PaymentMethod string

const (
	PaymentMethodCash          PaymentMethod = "cash"
	PaymentMethodMobileBanking PaymentMethod = "mobile_banking"
	PaymentMethodBank          PaymentMethod = "bank"
)

// IsValid checks if the payment method is one of the known values
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodMobileBanking, PaymentMethodBank:
		return true
	}
	return false
}
