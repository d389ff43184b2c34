package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost implementa el costo promedio ponderado de una entrada.
// Nuevo = ((StockActual * PromedioActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock resultante <= 0 el promedio vuelve a cero.
func WeightedAverageCost(currentStock, currentAvg, inQty, inCost decimal.Decimal) decimal.Decimal {
	sum := currentStock.Add(inQty)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := currentStock.Mul(currentAvg).Add(inQty.Mul(inCost))
	return num.Div(sum).Round(4)
}
