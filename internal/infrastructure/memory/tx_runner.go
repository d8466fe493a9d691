package memory

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ purchasing.ImportTxRunner = (*TxRunner)(nil)

// TxRunner serializa las importaciones de un tenant y deshace sus cambios si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

// RunImport toma el mutex del tenant, guarda una copia de sus productos y proveedores,
// ejecuta fn y restaura la copia si fn devuelve error.
func (r *TxRunner) RunImport(ctx context.Context, tenantID string, fn func(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	lock := r.s.tenantLock(tenantID)
	lock.Lock()
	defer lock.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	products, suppliers := r.snapshot(tenantID)
	if err := fn(r.s.Products(), r.s.Suppliers()); err != nil {
		r.restore(tenantID, products, suppliers)
		return err
	}
	return nil
}

func (r *TxRunner) snapshot(tenantID string) (map[string]entity.Product, map[string]entity.Supplier) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	products := make(map[string]entity.Product)
	for id, p := range r.s.products {
		if p.TenantID == tenantID {
			products[id] = *p
		}
	}
	suppliers := make(map[string]entity.Supplier)
	for id, sp := range r.s.suppliers {
		if sp.TenantID == tenantID {
			suppliers[id] = *sp
		}
	}
	return products, suppliers
}

func (r *TxRunner) restore(tenantID string, products map[string]entity.Product, suppliers map[string]entity.Supplier) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, p := range r.s.products {
		if p.TenantID == tenantID {
			delete(r.s.products, id)
		}
	}
	for id, p := range products {
		c := p
		r.s.products[id] = &c
	}
	for id, sp := range r.s.suppliers {
		if sp.TenantID == tenantID {
			delete(r.s.suppliers, id)
		}
	}
	for id, sp := range suppliers {
		c := sp
		r.s.suppliers[id] = &c
	}
}
