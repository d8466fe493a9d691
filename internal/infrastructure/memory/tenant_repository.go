package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación en memoria de TenantRepository.
type TenantRepo struct {
	s *Store
}

// Create persiste un tenant nuevo. Email y documento son únicos.
func (r *TenantRepo) Create(_ context.Context, tenant *entity.Tenant) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, t := range r.s.tenants {
		if t.Email == tenant.Email {
			return domain.ErrEmailAlreadyExists
		}
		if t.Document == tenant.Document || t.ID == tenant.ID {
			return domain.ErrDuplicate
		}
	}
	c := *tenant
	r.s.tenants[tenant.ID] = &c
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	c := *t
	return &c, nil
}

// GetByEmail obtiene un tenant por email exacto.
func (r *TenantRepo) GetByEmail(_ context.Context, email string) (*entity.Tenant, error) {
	return r.find(func(t *entity.Tenant) bool { return t.Email == email }), nil
}

// GetByDocument obtiene un tenant por documento (CNPJ).
func (r *TenantRepo) GetByDocument(_ context.Context, document string) (*entity.Tenant, error) {
	return r.find(func(t *entity.Tenant) bool { return t.Document == document }), nil
}

func (r *TenantRepo) find(match func(*entity.Tenant) bool) *entity.Tenant {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, t := range r.s.tenants {
		if match(t) {
			c := *t
			return &c
		}
	}
	return nil
}

// List lista tenants (más recientes primero) con paginación.
func (r *TenantRepo) List(_ context.Context, limit, offset int) ([]*entity.Tenant, error) {
	r.s.mu.RLock()
	list := make([]*entity.Tenant, 0, len(r.s.tenants))
	for _, t := range r.s.tenants {
		c := *t
		list = append(list, &c)
	}
	r.s.mu.RUnlock()
	newestFirst(list, func(t *entity.Tenant) time.Time { return t.CreatedAt }, func(t *entity.Tenant) string { return t.ID })
	return page(list, limit, offset), nil
}

// UpdateStatus cambia el estado de la suscripción.
func (r *TenantRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.update(id, func(t *entity.Tenant) { t.Status = status })
}

// UpdatePassword reemplaza el hash y el flag de cambio obligatorio.
func (r *TenantRepo) UpdatePassword(_ context.Context, id, passwordHash string, mustChange bool) error {
	return r.update(id, func(t *entity.Tenant) {
		t.PasswordHash = passwordHash
		t.MustChangePassword = mustChange
	})
}

func (r *TenantRepo) update(id string, fn func(*entity.Tenant)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t, ok := r.s.tenants[id]
	if !ok {
		return domain.ErrNotFound
	}
	fn(t)
	t.UpdatedAt = time.Now()
	return nil
}

// Delete elimina el tenant y, en cascada, sus empleados, productos y proveedores.
func (r *TenantRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.tenants[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.tenants, id)
	for k, e := range r.s.employees {
		if e.TenantID == id {
			delete(r.s.employees, k)
		}
	}
	for k, p := range r.s.products {
		if p.TenantID == id {
			delete(r.s.products, k)
		}
	}
	for k, sp := range r.s.suppliers {
		if sp.TenantID == id {
			delete(r.s.suppliers, k)
		}
	}
	return nil
}
