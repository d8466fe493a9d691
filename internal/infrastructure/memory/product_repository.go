package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/inventory"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct {
	s *Store
}

// Create persiste un producto. El código es único por tenant.
func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.products {
		if p.ID == product.ID || (p.TenantID == product.TenantID && p.Code == product.Code) {
			return domain.ErrDuplicate
		}
	}
	c := *product
	r.s.products[product.ID] = &c
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	c := *p
	return &c, nil
}

// FindImportCandidates devuelve los productos del tenant con el mismo nombre (sin distinguir
// mayúsculas) o el mismo código, del más antiguo al más nuevo.
func (r *ProductRepo) FindImportCandidates(_ context.Context, tenantID, name, code string) ([]*entity.Product, error) {
	r.s.mu.RLock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID != tenantID {
			continue
		}
		if inventory.SameName(p.Name, name) || (code != "" && p.Code == code) {
			c := *p
			list = append(list, &c)
		}
	}
	r.s.mu.RUnlock()
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
	return list, nil
}

// ApplyPurchase suma la cantidad al stock y reemplaza el costo.
func (r *ProductRepo) ApplyPurchase(_ context.Context, productID string, quantity, unitCost decimal.Decimal) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	p.Stock = p.Stock.Add(quantity)
	p.CostPrice = unitCost
	p.UpdatedAt = time.Now()
	c := *p
	return &c, nil
}

// ListByTenant lista productos del tenant (más recientes primero) con paginación.
func (r *ProductRepo) ListByTenant(_ context.Context, tenantID string, limit, offset int) ([]*entity.Product, error) {
	list := r.filter(tenantID, func(*entity.Product) bool { return true })
	newestFirst(list, func(p *entity.Product) time.Time { return p.CreatedAt }, func(p *entity.Product) string { return p.ID })
	return page(list, limit, offset), nil
}

// ListLowStock lista los productos activos con stock <= mínimo, del menor stock al mayor.
func (r *ProductRepo) ListLowStock(_ context.Context, tenantID string) ([]*entity.Product, error) {
	list := r.filter(tenantID, (*entity.Product).IsLowStock)
	sort.SliceStable(list, func(i, j int) bool { return list[i].Stock.LessThan(list[j].Stock) })
	return list, nil
}

func (r *ProductRepo) filter(tenantID string, keep func(*entity.Product) bool) []*entity.Product {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var list []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID && keep(p) {
			c := *p
			list = append(list, &c)
		}
	}
	return list
}
