package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Varejo-api/internal/application/auth"
	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

// billingCycle intervalo entre joinedAt y el primer cobro.
const billingCycle = 30 * 24 * time.Hour

// TenantUseCase administración de empresas suscriptoras (solo master).
type TenantUseCase struct {
	repo   repository.TenantRepository
	hasher auth.PasswordHasher
	log    zerolog.Logger
}

// NewTenantUseCase construye el caso de uso.
func NewTenantUseCase(repo repository.TenantRepository, hasher auth.PasswordHasher, log zerolog.Logger) *TenantUseCase {
	return &TenantUseCase{repo: repo, hasher: hasher, log: log}
}

// Create da de alta un tenant con contraseña temporal y cambio obligatorio en el primer login.
// Devuelve domain.ErrEmailAlreadyExists o domain.ErrDuplicate (documento) si ya existen.
func (uc *TenantUseCase) Create(ctx context.Context, in dto.CreateTenantRequest) (*dto.CreateTenantResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.TenantStatusActive
	}
	if !entity.ValidTenantStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}
	existing, err = uc.repo.GetByDocument(ctx, in.Document)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	temp, err := auth.GenerateTempPassword()
	if err != nil {
		return nil, err
	}
	hash, err := uc.hasher.Hash(temp)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	tenant := &entity.Tenant{
		ID:                 uuid.New().String(),
		CompanyName:        in.CompanyName,
		OwnerName:          in.OwnerName,
		Email:              in.Email,
		PasswordHash:       hash,
		Document:           in.Document,
		PlanID:             in.PlanID,
		Status:             status,
		MonthlyFee:         in.MonthlyFee,
		NextBilling:        now.Add(billingCycle),
		JoinedAt:           now,
		MustChangePassword: true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, tenant); err != nil {
		return nil, domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", tenant.ID).Str("plan_id", tenant.PlanID).Msg("tenant creado")
	return &dto.CreateTenantResponse{
		Tenant:            *toTenantResponse(tenant),
		TemporaryPassword: temp,
	}, nil
}

// GetByID obtiene un tenant. Devuelve domain.ErrNotFound si no existe.
func (uc *TenantUseCase) GetByID(ctx context.Context, id string) (*dto.TenantResponse, error) {
	tenant, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	if tenant == nil {
		return nil, domain.ErrNotFound
	}
	return toTenantResponse(tenant), nil
}

// List lista tenants con paginación.
func (uc *TenantUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.TenantListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	items := make([]dto.TenantResponse, 0, len(list))
	for _, t := range list {
		items = append(items, *toTenantResponse(t))
	}
	return &dto.TenantListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// UpdateStatus cambia el estado de la suscripción (Active, Blocked, Pending).
func (uc *TenantUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.TenantResponse, error) {
	if !entity.ValidTenantStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.repo.UpdateStatus(ctx, id, status); err != nil {
		return nil, domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", id).Str("status", status).Msg("estado de tenant actualizado")
	return uc.GetByID(ctx, id)
}

// Delete elimina el tenant y todos sus registros.
func (uc *TenantUseCase) Delete(ctx context.Context, id string) error {
	if err := uc.repo.Delete(ctx, id); err != nil {
		return domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", id).Msg("tenant eliminado")
	return nil
}

func toTenantResponse(t *entity.Tenant) *dto.TenantResponse {
	return &dto.TenantResponse{
		ID:                 t.ID,
		CompanyName:        t.CompanyName,
		OwnerName:          t.OwnerName,
		Email:              t.Email,
		Document:           t.Document,
		PlanID:             t.PlanID,
		Status:             t.Status,
		MonthlyFee:         t.MonthlyFee,
		NextBilling:        t.NextBilling,
		JoinedAt:           t.JoinedAt,
		MustChangePassword: t.MustChangePassword,
	}
}
