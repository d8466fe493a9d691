package memory

import (
	"context"
	"time"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.EmployeeRepository = (*EmployeeRepo)(nil)

// EmployeeRepo implementación en memoria de EmployeeRepository.
type EmployeeRepo struct {
	s *Store
}

// Create persiste un empleado. El email es único entre empleados.
func (r *EmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, e := range r.s.employees {
		if e.Email == employee.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	c := *employee
	r.s.employees[employee.ID] = &c
	return nil
}

// GetByID obtiene un empleado por ID.
func (r *EmployeeRepo) GetByID(_ context.Context, id string) (*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.employees[id]
	if !ok {
		return nil, nil
	}
	c := *e
	return &c, nil
}

// GetByEmail obtiene un empleado por email exacto (cualquier tenant).
func (r *EmployeeRepo) GetByEmail(_ context.Context, email string) (*entity.Employee, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, e := range r.s.employees {
		if e.Email == email {
			c := *e
			return &c, nil
		}
	}
	return nil, nil
}

// ListByTenant lista los empleados del tenant.
func (r *EmployeeRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.Employee, error) {
	r.s.mu.RLock()
	var list []*entity.Employee
	for _, e := range r.s.employees {
		if e.TenantID == tenantID {
			c := *e
			list = append(list, &c)
		}
	}
	r.s.mu.RUnlock()
	newestFirst(list, func(e *entity.Employee) time.Time { return e.CreatedAt }, func(e *entity.Employee) string { return e.ID })
	return list, nil
}

// Delete elimina un empleado del tenant.
func (r *EmployeeRepo) Delete(_ context.Context, tenantID, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.employees[id]
	if !ok || e.TenantID != tenantID {
		return domain.ErrNotFound
	}
	delete(r.s.employees, id)
	return nil
}
