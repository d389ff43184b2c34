package inventory

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// Adjustment resume el efecto de Adjust sobre un registro.
type Adjustment struct {
	Previous decimal.Decimal
	New      decimal.Decimal
	Applied  decimal.Decimal // delta efectivamente aplicado (puede diferir del pedido por el piso en 0)
}

// Adjust aplica un delta con signo al stock del registro. Un delta de salida que dejaría el stock
// negativo se recorta a 0; no devuelve error por sobreventa, el chequeo es del llamador.
func Adjust(rec *entity.InventoryRecord, delta decimal.Decimal, now time.Time) Adjustment {
	prev := rec.CurrentStock
	next := prev.Add(delta)
	if next.IsNegative() {
		next = decimal.Zero
	}
	rec.CurrentStock = next
	rec.LastUpdated = now
	return Adjustment{Previous: prev, New: next, Applied: next.Sub(prev)}
}

// ApplyEntry registra una entrada valorizada: actualiza el promedio ponderado, el último costo y suma el stock.
func ApplyEntry(rec *entity.InventoryRecord, qty, unitCost decimal.Decimal, now time.Time) Adjustment {
	rec.AverageCost = WeightedAverageCost(rec.CurrentStock, rec.AverageCost, qty, unitCost)
	rec.CostPrice = unitCost
	return Adjust(rec, qty, now)
}

// HasAvailable indica si el disponible (actual - reservado) cubre qty.
func HasAvailable(rec *entity.InventoryRecord, qty decimal.Decimal) bool {
	return rec.Available().GreaterThanOrEqual(qty)
}
