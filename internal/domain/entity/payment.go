package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de pago aceptados en caja.
const (
	PaymentMethodCash       = "cash"
	PaymentMethodCreditCard = "credit_card"
	PaymentMethodDebitCard  = "debit_card"
	PaymentMethodPix        = "pix"
	PaymentMethodBoleto     = "boleto"
	PaymentMethodOther      = "other"
)

// Payment es un abono registrado contra una venta.
type Payment struct {
	ID     string
	SaleID string
	Amount decimal.Decimal
	Method string
	UserID string
	PaidAt time.Time
}

// ValidPaymentMethod indica si m es un medio de pago conocido.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodPix, PaymentMethodBoleto, PaymentMethodOther:
		return true
	}
	return false
}
