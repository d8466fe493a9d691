package repository

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// FindImportCandidates devuelve los productos del tenant cuyo nombre coincide sin distinguir
	// mayúsculas o cuyo código coincide exactamente (solo si code != ""). Dentro de una
	// transacción las filas quedan bloqueadas para update.
	FindImportCandidates(ctx context.Context, tenantID, name, code string) ([]*entity.Product, error)
	// ApplyPurchase suma quantity al stock y reemplaza el costo en una sola sentencia.
	ApplyPurchase(ctx context.Context, productID string, quantity, unitCost decimal.Decimal) (*entity.Product, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error)
	ListLowStock(ctx context.Context, tenantID string) ([]*entity.Product, error)
}
