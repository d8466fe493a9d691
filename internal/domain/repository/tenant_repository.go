package repository

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// TenantRepository define el puerto de persistencia para Tenant (DIP).
// Las búsquedas devuelven (nil, nil) cuando no hay fila.
type TenantRepository interface {
	Create(ctx context.Context, tenant *entity.Tenant) error
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	GetByEmail(ctx context.Context, email string) (*entity.Tenant, error)
	GetByDocument(ctx context.Context, document string) (*entity.Tenant, error)
	List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// UpdatePassword persiste el nuevo hash y el flag de cambio obligatorio en una sola escritura.
	// Devuelve domain.ErrNotFound si el tenant no existe.
	UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error
	Delete(ctx context.Context, id string) error
}
