package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento del libro de inventario.
const (
	MovementTypeIn         = "in"
	MovementTypeOut        = "out"
	MovementTypeAdjustment = "adjustment"
	MovementTypeTransfer   = "transfer"
	MovementTypeReturn     = "return"
)

// Referencias conocidas de movimientos.
const (
	ReferenceSale     = "sale"
	ReferenceManual   = "manual"
	ReferenceTransfer = "transfer"
)

// InventoryMovement es una entrada inmutable del libro de movimientos.
// Invariante: NewStock - PreviousStock == Quantity.
type InventoryMovement struct {
	ID            string
	TransactionID string // agrupa los tramos de una misma operación (traslado, venta)
	ProductID     string
	InventoryID   string
	Location      string
	Type          string
	Quantity      decimal.Decimal // positivo in/return, negativo out, ajuste con signo
	PreviousStock decimal.Decimal
	NewStock      decimal.Decimal
	UnitCost      decimal.Decimal
	TotalCost     decimal.Decimal
	Reason        string
	Reference     string
	ReferenceID   string
	UserID        string
	MovementDate  time.Time
	CreatedAt     time.Time
}

// ValidMovementType indica si t es un tipo de movimiento conocido.
func ValidMovementType(t string) bool {
	switch t {
	case MovementTypeIn, MovementTypeOut, MovementTypeAdjustment, MovementTypeTransfer, MovementTypeReturn:
		return true
	}
	return false
}
