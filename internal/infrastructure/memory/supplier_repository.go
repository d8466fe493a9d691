package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

// SupplierRepo implementación en memoria de SupplierRepository.
type SupplierRepo struct {
	s *Store
}

// GetByDocument busca un proveedor del tenant por documento exacto.
func (r *SupplierRepo) GetByDocument(_ context.Context, tenantID, document string) (*entity.Supplier, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if sp := r.byDocument(tenantID, document); sp != nil {
		c := *sp
		return &c, nil
	}
	return nil, nil
}

// CreateIfAbsent inserta el proveedor salvo que el documento ya exista en el tenant.
func (r *SupplierRepo) CreateIfAbsent(_ context.Context, supplier *entity.Supplier) (*entity.Supplier, bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sp := r.byDocument(supplier.TenantID, supplier.Document); sp != nil {
		c := *sp
		return &c, false, nil
	}
	c := *supplier
	r.s.suppliers[supplier.ID] = &c
	out := c
	return &out, true, nil
}

func (r *SupplierRepo) byDocument(tenantID, document string) *entity.Supplier {
	for _, sp := range r.s.suppliers {
		if sp.TenantID == tenantID && sp.Document == document {
			return sp
		}
	}
	return nil
}

// ListByTenant lista los proveedores del tenant.
func (r *SupplierRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Supplier, error) {
	r.s.mu.RLock()
	var list []*entity.Supplier
	for _, sp := range r.s.suppliers {
		if sp.TenantID == tenantID {
			c := *sp
			list = append(list, &c)
		}
	}
	r.s.mu.RUnlock()
	newestFirst(list, func(s *entity.Supplier) time.Time { return s.CreatedAt }, func(s *entity.Supplier) string { return s.ID })
	return list, nil
}
