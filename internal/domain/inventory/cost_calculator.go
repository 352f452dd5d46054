// Package inventory contiene los servicios de dominio del motor de stock.
package inventory

import "github.com/shopspring/decimal"

// WeightedAverageCost calcula el nuevo precio de compra promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Un stock actual negativo o nulo no aporta al promedio: el resultado es el costo de la entrada.
func WeightedAverageCost(currentStock int64, currentCost decimal.Decimal, qtyIn int64, unitCost decimal.Decimal) decimal.Decimal {
	if qtyIn <= 0 {
		return currentCost
	}
	if currentStock <= 0 {
		return unitCost
	}
	stock := decimal.NewFromInt(currentStock)
	in := decimal.NewFromInt(qtyIn)
	num := stock.Mul(currentCost).Add(in.Mul(unitCost))
	return num.DivRound(stock.Add(in), 4)
}

// ApplyDelta aplica un delta de stock; false si el resultado sería negativo.
func ApplyDelta(stock, delta int64) (int64, bool) {
	next := stock + delta
	if next < 0 {
		return stock, false
	}
	return next, true
}
