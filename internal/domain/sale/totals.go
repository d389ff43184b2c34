package sale

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/optica-erp/internal/domain"
	"github.com/jhoicas/optica-erp/internal/domain/entity"
)

// MoneyScale decimales con que se guardan los importes de venta.
const MoneyScale = 2

// ItemSubtotal calcula cantidad*precio - descuento validando los rangos de la línea.
// El bruto se redondea a centavos: cantidades fraccionarias (líquidos, lentes a granel) no dejan
// fracciones de centavo que la base no podría guardar.
func ItemSubtotal(it *entity.SaleItem) (decimal.Decimal, error) {
	if !it.Quantity.IsPositive() {
		return decimal.Zero, domain.Validation("producto %s: la cantidad debe ser mayor a 0", it.ProductID)
	}
	if it.UnitPrice.IsNegative() {
		return decimal.Zero, domain.Validation("producto %s: precio unitario negativo", it.ProductID)
	}
	gross := it.Quantity.Mul(it.UnitPrice).Round(MoneyScale)
	if it.DiscountAmount.IsNegative() || it.DiscountAmount.GreaterThan(gross) {
		return decimal.Zero, domain.Validation("producto %s: descuento fuera de rango", it.ProductID)
	}
	return gross.Sub(it.DiscountAmount), nil
}

// Recalculate recalcula los subtotales de las líneas y los totales de la cabecera.
// total = Σ subtotal - descuento + impuesto, y nunca negativo.
func Recalculate(s *entity.Sale) error {
	if len(s.Items) == 0 {
		return domain.Validation("la venta debe tener al menos una línea")
	}
	if s.Discount.IsNegative() || s.Tax.IsNegative() {
		return domain.Validation("descuento e impuesto no pueden ser negativos")
	}
	subtotal := decimal.Zero
	for i := range s.Items {
		st, err := ItemSubtotal(&s.Items[i])
		if err != nil {
			return err
		}
		s.Items[i].Subtotal = st
		subtotal = subtotal.Add(st)
	}
	total := subtotal.Sub(s.Discount).Add(s.Tax)
	if total.IsNegative() {
		return domain.Validation("el descuento supera el subtotal de la venta")
	}
	s.Subtotal = subtotal
	s.Total = total
	return nil
}

// Demand es la cantidad total pedida de un producto en una venta.
type Demand struct {
	ProductID string
	Quantity  decimal.Decimal
}

// AggregateDemand suma las cantidades por producto (un producto puede repetirse en varias líneas)
// y devuelve el resultado ordenado por ProductID, que es el orden de bloqueo de las filas.
func AggregateDemand(items []entity.SaleItem) []Demand {
	byProduct := make(map[string]decimal.Decimal, len(items))
	for _, it := range items {
		byProduct[it.ProductID] = byProduct[it.ProductID].Add(it.Quantity)
	}
	out := make([]Demand, 0, len(byProduct))
	for id, q := range byProduct {
		out = append(out, Demand{ProductID: id, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ProductID < out[j].ProductID })
	return out
}
