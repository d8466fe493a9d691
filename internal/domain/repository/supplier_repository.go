package repository

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// SupplierRepository define el puerto de persistencia para Supplier (DIP).
type SupplierRepository interface {
	GetByDocument(ctx context.Context, tenantID, document string) (*entity.Supplier, error)
	// CreateIfAbsent inserta el proveedor salvo que ya exista uno con el mismo documento en el tenant.
	// Devuelve created=false y el registro existente en ese caso.
	CreateIfAbsent(ctx context.Context, supplier *entity.Supplier) (stored *entity.Supplier, created bool, err error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Supplier, error)
}
