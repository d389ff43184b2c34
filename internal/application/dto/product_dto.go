package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	Description string          `json:"description"`
	Category    string          `json:"category" validate:"required,oneof=frame lens contact_lens sunglasses accessory service"`
	Brand       string          `json:"brand" validate:"max=100"`
	Price       decimal.Decimal `json:"price"`
	Active      *bool           `json:"active"`
}

// UpdateProductRequest entrada para actualizar un producto (sin stock ni costos).
type UpdateProductRequest struct {
	SKU         *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string          `json:"description"`
	Category    *string          `json:"category" validate:"omitempty,oneof=frame lens contact_lens sunglasses accessory service"`
	Brand       *string          `json:"brand"`
	Price       *decimal.Decimal `json:"price"`
	Active      *bool            `json:"active"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Category    string          `json:"category"`
	Brand       string          `json:"brand,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductQuery filtros de GET /api/products. Active acepta "true" o "false".
type ProductQuery struct {
	Category string `query:"category" validate:"omitempty,oneof=frame lens contact_lens sunglasses accessory service"`
	Active   string `query:"active" validate:"omitempty,oneof=true false"`
	PageRequest
}
