package repository

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// EmployeeRepository define el puerto de persistencia para Employee (DIP).
type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	GetByID(ctx context.Context, id string) (*entity.Employee, error)
	// GetByEmail busca en todos los tenants (el email es único entre empleados).
	GetByEmail(ctx context.Context, email string) (*entity.Employee, error)
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.Employee, error)
	Delete(ctx context.Context, tenantID, id string) error
}
