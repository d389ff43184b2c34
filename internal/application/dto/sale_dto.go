package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta en la entrada. UnitPrice vacío = precio del catálogo.
type SaleItemRequest struct {
	ProductID string           `json:"productId" validate:"required"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
}

// CreateSaleRequest body para POST /api/sales.
type CreateSaleRequest struct {
	ClientID       string            `json:"clientId" validate:"required"`
	Kind           string            `json:"kind,omitempty" validate:"omitempty,oneof=standard tso"`
	Location       string            `json:"location,omitempty" validate:"max=100"`
	PrescriptionID string            `json:"prescriptionId,omitempty"`
	Items          []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	Discount       decimal.Decimal   `json:"discount"`
	Tax            decimal.Decimal   `json:"tax"`
	PaymentMethod  string            `json:"paymentMethod,omitempty" validate:"omitempty,oneof=cash credit_card debit_card pix boleto other"`
	Notes          string            `json:"notes,omitempty" validate:"max=1000"`
}

// ReplaceItemsRequest body para PUT /api/sales/:id/items.
type ReplaceItemsRequest struct {
	Items []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
}

// AdvanceStatusRequest body para POST /api/sales/:id/status.
type AdvanceStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing completed"`
}

// RegisterPaymentRequest body para POST /api/sales/:id/payments.
type RegisterPaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method" validate:"required,oneof=cash credit_card debit_card pix boleto other"`
}

// SaleQuery filtros de GET /api/sales.
type SaleQuery struct {
	Status   string `query:"status" validate:"omitempty,oneof=draft confirmed processing completed cancelled"`
	ClientID string `query:"clientId"`
	PageRequest
}

// SaleItemResponse línea de venta en la salida.
type SaleItemResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"productId"`
	Quantity       decimal.Decimal `json:"quantity"`
	UnitPrice      decimal.Decimal `json:"unitPrice"`
	DiscountAmount decimal.Decimal `json:"discountAmount"`
	Subtotal       decimal.Decimal `json:"subtotal"`
}

// SaleResponse salida de una venta.
type SaleResponse struct {
	ID             string             `json:"id"`
	SaleNumber     string             `json:"saleNumber"`
	Kind           string             `json:"kind"`
	ClientID       string             `json:"clientId"`
	UserID         string             `json:"userId"`
	PrescriptionID string             `json:"prescriptionId,omitempty"`
	Location       string             `json:"location"`
	Status         string             `json:"status"`
	PaymentStatus  string             `json:"paymentStatus"`
	Subtotal       decimal.Decimal    `json:"subtotal"`
	Discount       decimal.Decimal    `json:"discount"`
	Tax            decimal.Decimal    `json:"tax"`
	Total          decimal.Decimal    `json:"total"`
	PaidAmount     decimal.Decimal    `json:"paidAmount"`
	PaymentMethod  string             `json:"paymentMethod,omitempty"`
	Notes          string             `json:"notes,omitempty"`
	ConfirmedAt    *time.Time         `json:"confirmedAt,omitempty"`
	CancelledAt    *time.Time         `json:"cancelledAt,omitempty"`
	CreatedAt      time.Time          `json:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt"`
	Items          []SaleItemResponse `json:"items,omitempty"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// PaymentResponse salida de un abono.
type PaymentResponse struct {
	ID     string          `json:"id"`
	SaleID string          `json:"saleId"`
	Amount decimal.Decimal `json:"amount"`
	Method string          `json:"method"`
	UserID string          `json:"userId,omitempty"`
	PaidAt time.Time       `json:"paidAt"`
}
