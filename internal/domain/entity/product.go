package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de producto de la óptica.
const (
	CategoryFrame       = "frame"        // armação
	CategoryLens        = "lens"         // lente oftálmica
	CategoryContactLens = "contact_lens" // lente de contato
	CategorySunglasses  = "sunglasses"
	CategoryAccessory   = "accessory"
	CategoryService     = "service" // montagem, ajuste, exame
)

// Product representa un ítem del catálogo. El stock y el costo promedio viven en
// InventoryRecord (por producto y local), no aquí.
type Product struct {
	ID          string
	SKU         string // único
	Name        string
	Description string
	Category    string
	Brand       string
	Price       decimal.Decimal // precio de venta sugerido
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ValidCategory indica si c es una de las categorías conocidas.
func ValidCategory(c string) bool {
	switch c {
	case CategoryFrame, CategoryLens, CategoryContactLens, CategorySunglasses, CategoryAccessory, CategoryService:
		return true
	}
	return false
}
