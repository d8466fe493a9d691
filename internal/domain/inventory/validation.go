package inventory

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// NormalizeUnit devuelve la unidad si es una de las aceptadas (UN, KG, LT, MT); si no, UN.
func NormalizeUnit(unit string) string {
	u := strings.ToUpper(strings.TrimSpace(unit))
	switch u {
	case entity.UnitUN, entity.UnitKG, entity.UnitLT, entity.UnitMT:
		return u
	}
	return entity.UnitUN
}

// ValidateImport rechaza la nota completa antes de aplicar cualquier línea:
// proveedor sin documento, línea sin nombre, cantidad <= 0 o precio unitario negativo.
// Precio cero se acepta (bonificación).
func ValidateImport(in *entity.InvoiceImport) error {
	if in == nil {
		return fmt.Errorf("%w: nota vacía", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(in.Supplier.Document) == "" {
		return fmt.Errorf("%w: documento del proveedor requerido", domain.ErrInvalidInput)
	}
	if len(in.Items) == 0 {
		return fmt.Errorf("%w: la nota no tiene ítems", domain.ErrInvalidInput)
	}
	for i, item := range in.Items {
		if strings.TrimSpace(item.Name) == "" {
			return fmt.Errorf("%w: ítem %d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return fmt.Errorf("%w: ítem %d con cantidad %s", domain.ErrInvalidInput, i+1, item.Quantity)
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return fmt.Errorf("%w: ítem %d con precio unitario negativo", domain.ErrInvalidInput, i+1)
		}
	}
	return nil
}
