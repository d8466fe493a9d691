package usecase

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Varejo-api/internal/application/auth"
	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

// EmployeeUseCase gestión del equipo (operadores) de un tenant.
type EmployeeUseCase struct {
	repo   repository.EmployeeRepository
	hasher auth.PasswordHasher
	log    zerolog.Logger
}

// NewEmployeeUseCase construye el caso de uso.
func NewEmployeeUseCase(repo repository.EmployeeRepository, hasher auth.PasswordHasher, log zerolog.Logger) *EmployeeUseCase {
	return &EmployeeUseCase{repo: repo, hasher: hasher, log: log}
}

// Create crea un operador activo en el tenant. La contraseña se guarda hasheada.
func (uc *EmployeeUseCase) Create(ctx context.Context, tenantID string, in dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	if utf8.RuneCountInString(in.Password) < auth.MinPasswordLength {
		return nil, domain.ErrWeakPassword
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	employee := &entity.Employee{
		ID:           uuid.New().String(),
		TenantID:     tenantID,
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hash,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, employee); err != nil {
		return nil, domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("employee_id", employee.ID).Msg("empleado creado")
	return toEmployeeResponse(employee), nil
}

// List lista los operadores del tenant.
func (uc *EmployeeUseCase) List(ctx context.Context, tenantID string) ([]dto.EmployeeResponse, error) {
	list, err := uc.repo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	out := make([]dto.EmployeeResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEmployeeResponse(e))
	}
	return out, nil
}

// Delete elimina un operador del tenant. domain.ErrNotFound si no pertenece al tenant.
func (uc *EmployeeUseCase) Delete(ctx context.Context, tenantID, id string) error {
	if err := uc.repo.Delete(ctx, tenantID, id); err != nil {
		return domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", tenantID).Str("employee_id", id).Msg("empleado eliminado")
	return nil
}

func toEmployeeResponse(e *entity.Employee) *dto.EmployeeResponse {
	return &dto.EmployeeResponse{
		ID:        e.ID,
		TenantID:  e.TenantID,
		Name:      e.Name,
		Email:     e.Email,
		Role:      entity.RoleOperator,
		Active:    e.Active,
		CreatedAt: e.CreatedAt,
	}
}
