// Package sale contiene las reglas puras del agregado Venta: transiciones de estado y totales.
package sale

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// CanEditItems solo los borradores admiten reemplazo de líneas.
func CanEditItems(status string) bool {
	return status == entity.SaleStatusDraft
}

// CanConfirm solo un borrador se confirma, y una única vez.
func CanConfirm(status string) bool {
	return status == entity.SaleStatusDraft
}

// CanCancel draft, confirmed y processing pueden cancelarse.
func CanCancel(status string) bool {
	switch status {
	case entity.SaleStatusDraft, entity.SaleStatusConfirmed, entity.SaleStatusProcessing:
		return true
	}
	return false
}

// ConsumedStock indica si la venta ya descontó inventario (se confirmó y no se canceló).
func ConsumedStock(status string) bool {
	switch status {
	case entity.SaleStatusConfirmed, entity.SaleStatusProcessing, entity.SaleStatusCompleted:
		return true
	}
	return false
}

// CanAdvance valida la progresión de cumplimiento:
// confirmed -> processing -> completed, y confirmed -> completed.
func CanAdvance(from, to string) bool {
	switch from {
	case entity.SaleStatusConfirmed:
		return to == entity.SaleStatusProcessing || to == entity.SaleStatusCompleted
	case entity.SaleStatusProcessing:
		return to == entity.SaleStatusCompleted
	}
	return false
}

// PaymentStatusFor deriva el estado de pago a partir de lo abonado y el total.
func PaymentStatusFor(paid, total decimal.Decimal) string {
	switch {
	case paid.LessThanOrEqual(decimal.Zero):
		return entity.PaymentStatusPending
	case paid.GreaterThanOrEqual(total):
		return entity.PaymentStatusPaid
	default:
		return entity.PaymentStatusPartial
	}
}
