package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de producto.
const (
	ProductStatusActive   = "ATIVO"
	ProductStatusInactive = "INATIVO"
)

// Unidades de medida aceptadas.
const (
	UnitUN = "UN"
	UnitKG = "KG"
	UnitLT = "LT"
	UnitMT = "MT"
)

// DefaultCategory se asigna a los productos creados por importación.
const DefaultCategory = "Geral"

// Product representa un producto del catálogo de un tenant.
// Stock es decimal con signo: las ventas pueden dejarlo negativo.
type Product struct {
	ID          string
	TenantID    string
	Code        string // único por tenant
	Barcode     string
	Name        string
	Description string
	Category    string
	Unit        string
	CostPrice   decimal.Decimal
	SalePrice   decimal.Decimal
	Stock       decimal.Decimal
	MinStock    decimal.Decimal
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsLowStock indica si el producto activo está en o por debajo del stock mínimo.
func (p *Product) IsLowStock() bool {
	return p.Status == ProductStatusActive && p.Stock.LessThanOrEqual(p.MinStock)
}
