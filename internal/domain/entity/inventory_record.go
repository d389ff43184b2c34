package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryRecord es el stock de un producto en un local (loja, depósito, laboratorio).
// Se crea de forma perezosa en el primer movimiento y nunca se borra.
type InventoryRecord struct {
	ID            string
	ProductID     string
	Location      string
	CurrentStock  decimal.Decimal // nunca negativo
	ReservedStock decimal.Decimal
	MinStock      decimal.Decimal
	MaxStock      *decimal.Decimal // nil = sin máximo
	CostPrice     decimal.Decimal  // último costo de entrada
	AverageCost   decimal.Decimal  // costo promedio ponderado
	LastUpdated   time.Time
}

// Available es la cantidad usable para chequeos de disponibilidad.
func (r *InventoryRecord) Available() decimal.Decimal {
	return r.CurrentStock.Sub(r.ReservedStock)
}

// BelowMinimum indica si el stock actual quedó por debajo del mínimo configurado.
func (r *InventoryRecord) BelowMinimum() bool {
	return r.MinStock.GreaterThan(decimal.Zero) && r.CurrentStock.LessThan(r.MinStock)
}
