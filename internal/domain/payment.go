package domain

// PaymentMethod is a descriptive label only; nothing here talks to a gateway.
type PaymentMethod string

const (
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentSyriatelCash   PaymentMethod = "syriatel_cash"
	PaymentBankAlBaraka   PaymentMethod = "bank_al_baraka"
)

var paymentMethods = map[PaymentMethod]bool{
	PaymentCashOnDelivery: true,
	PaymentSyriatelCash:   true,
	PaymentBankAlBaraka:   true,
}

// Valid reports whether m is one of the accepted literals. Matching is case-sensitive.
func (m PaymentMethod) Valid() bool { return paymentMethods[m] }

func PaymentMethods() []PaymentMethod {
	return []PaymentMethod{PaymentCashOnDelivery, PaymentSyriatelCash, PaymentBankAlBaraka}
}

// ValidatePaymentMethod is shared by orders and appointments.
func ValidatePaymentMethod(m PaymentMethod) error {
	if !m.Valid() {
		return InvalidInput("Invalid payment method")
	}
	return nil
}
