package inventory

import "github.com/shopspring/decimal"

// DefaultMarkup margen aplicado al costo para sugerir el precio de venta de un producto nuevo (50%).
var DefaultMarkup = decimal.RequireFromString("1.5")

// DefaultMinStock stock mínimo asignado a los productos creados por importación.
var DefaultMinStock = decimal.NewFromInt(5)

// SalePriceFor calcula el precio de venta sugerido: costo * DefaultMarkup.
func SalePriceFor(unitCost decimal.Decimal) decimal.Decimal {
	return unitCost.Mul(DefaultMarkup)
}
