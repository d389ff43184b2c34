package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de la venta (máquina de cumplimiento).
const (
	SaleStatusDraft      = "draft"
	SaleStatusConfirmed  = "confirmed"
	SaleStatusProcessing = "processing"
	SaleStatusCompleted  = "completed"
	SaleStatusCancelled  = "cancelled"
)

// Estados de pago (máquina independiente del cumplimiento).
const (
	PaymentStatusPending   = "pending"
	PaymentStatusPartial   = "partial"
	PaymentStatusPaid      = "paid"
	PaymentStatusCancelled = "cancelled"
)

// Tipos de venta. TSO es el ticket de pedido de armação/lentes al laboratorio.
const (
	SaleKindStandard = "standard"
	SaleKindTSO      = "tso"
)

// Sale es la cabecera de una venta con sus líneas.
type Sale struct {
	ID             string
	SaleNumber     string
	Kind           string
	ClientID       string
	UserID         string
	PrescriptionID string // opcional
	Location       string // local del que se descuenta el stock al confirmar
	Status         string
	PaymentStatus  string
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	PaidAmount     decimal.Decimal
	PaymentMethod  string
	Notes          string
	ConfirmedAt    *time.Time
	CancelledAt    *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Items          []SaleItem
}

// SaleItem es una línea de la venta. Pertenece a una sola venta y queda congelada al confirmar.
type SaleItem struct {
	ID             string
	SaleID         string
	ProductID      string
	Quantity       decimal.Decimal
	UnitPrice      decimal.Decimal
	DiscountAmount decimal.Decimal
	Subtotal       decimal.Decimal // Quantity*UnitPrice - DiscountAmount
}
