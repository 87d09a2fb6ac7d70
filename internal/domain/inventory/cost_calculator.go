package inventory

import "github.com/shopspring/decimal"

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func CostCalculator(stockActual int64, costoActual decimal.Decimal, cantEntrada int64, costoEntrada decimal.Decimal) decimal.Decimal {
	sum := stockActual + cantEntrada
	if sum <= 0 {
		return decimal.Zero
	}
	stock := decimal.NewFromInt(stockActual)
	entrada := decimal.NewFromInt(cantEntrada)
	num := stock.Mul(costoActual).Add(entrada.Mul(costoEntrada))
	return num.Div(decimal.NewFromInt(sum)).Round(4)
}

// LineTotal calcula cantidad * precio unitario.
func LineTotal(quantity int64, unitPrice decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(quantity).Mul(unitPrice)
}
