package inventory

import "github.com/shopspring/decimal"

// WeightedCost implementa el costo promedio ponderado tras una entrada.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Un stock actual negativo o cero no aporta al promedio.
func WeightedCost(stockActual int, costoActual decimal.Decimal, cantEntrada int, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual < 0 {
		stockActual = 0
	}
	sum := stockActual + cantEntrada
	if sum <= 0 {
		return decimal.Zero
	}
	num := decimal.NewFromInt(int64(stockActual)).Mul(costoActual).
		Add(decimal.NewFromInt(int64(cantEntrada)).Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(int64(sum))).Round(2)
}
