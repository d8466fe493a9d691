package auth

import (
	"context"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
	"github.com/jhoicas/Varejo-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase resuelve identidades (master, tenant, empleado) y gestiona el ciclo de vida
// de la contraseña del dueño del tenant.
type AuthUseCase struct {
	tenantRepo   repository.TenantRepository
	employeeRepo repository.EmployeeRepository
	hasher       PasswordHasher
	jwtCfg       JWTConfig
	log          zerolog.Logger

	// dummyHash se compara cuando el email no existe para que el tiempo de respuesta
	// no delate la etapa que falló.
	dummyHash string
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	tenantRepo repository.TenantRepository,
	employeeRepo repository.EmployeeRepository,
	hasher PasswordHasher,
	jwtCfg JWTConfig,
	log zerolog.Logger,
) *AuthUseCase {
	dummy, _ := hasher.Hash("varejo-dummy-password")
	return &AuthUseCase{
		tenantRepo:   tenantRepo,
		employeeRepo: employeeRepo,
		hasher:       hasher,
		jwtCfg:       jwtCfg,
		log:          log,
		dummyHash:    dummy,
	}
}

// Authenticate resuelve la identidad en orden fijo: master, tenant (dueño), empleado.
// Gana la primera etapa cuyas credenciales verifican. Cualquier fallo devuelve
// domain.ErrInvalidCredentials, sin indicar la etapa.
func (uc *AuthUseCase) Authenticate(ctx context.Context, email, password string) (entity.Identity, error) {
	if email == entity.MasterEmail && password == entity.MasterPassword {
		return entity.MasterIdentity(), nil
	}

	tenant, err := uc.tenantRepo.GetByEmail(ctx, email)
	if err != nil {
		return entity.Identity{}, domain.AsStoreError(err)
	}
	if tenant != nil {
		if uc.hasher.Verify(password, tenant.PasswordHash) {
			return entity.Identity{
				UserID:             tenant.ID,
				Name:               tenant.OwnerName,
				Email:              tenant.Email,
				Role:               entity.RoleManager,
				TenantID:           tenant.ID,
				MustChangePassword: tenant.MustChangePassword,
			}, nil
		}
	} else {
		uc.hasher.Verify(password, uc.dummyHash)
	}

	employee, err := uc.employeeRepo.GetByEmail(ctx, email)
	if err != nil {
		return entity.Identity{}, domain.AsStoreError(err)
	}
	if employee == nil {
		uc.hasher.Verify(password, uc.dummyHash)
		return entity.Identity{}, domain.ErrInvalidCredentials
	}
	if !uc.hasher.Verify(password, employee.PasswordHash) || !employee.Active {
		return entity.Identity{}, domain.ErrInvalidCredentials
	}
	return entity.Identity{
		UserID:   employee.ID,
		Name:     employee.Name,
		Email:    employee.Email,
		Role:     entity.RoleOperator,
		TenantID: employee.TenantID,
	}, nil
}

// Login autentica y emite el JWT de sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	identity, err := uc.Authenticate(ctx, in.Email, in.Password)
	if err != nil {
		uc.log.Debug().Err(err).Msg("login rechazado")
		return nil, err
	}
	token, err := uc.issueToken(identity)
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("user_id", identity.UserID).
		Str("tenant_id", identity.TenantID).
		Str("role", identity.Role).
		Bool("must_change_password", identity.MustChangePassword).
		Msg("login ok")
	return &dto.LoginResponse{
		Token: token,
		User:  ToIdentityResponse(identity),
	}, nil
}

// ChangePassword cambia la contraseña del dueño del tenant y limpia el flag de cambio obligatorio.
// Orden de validación: longitud mínima, rol, existencia del tenant, contraseña actual.
// Si ya estaba en estado normal, la transición es un no-op sobre el flag.
func (uc *AuthUseCase) ChangePassword(ctx context.Context, identity entity.Identity, currentPassword, newPassword string) error {
	if utf8.RuneCountInString(newPassword) < MinPasswordLength {
		return domain.ErrWeakPassword
	}
	if !identity.IsTenantOwner() {
		return domain.ErrForbidden
	}
	tenant, err := uc.tenantRepo.GetByID(ctx, identity.TenantID)
	if err != nil {
		return domain.AsStoreError(err)
	}
	if tenant == nil {
		return domain.ErrNotFound
	}
	if !uc.hasher.Verify(currentPassword, tenant.PasswordHash) {
		return domain.ErrInvalidCredentials
	}
	hash, err := uc.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	if err := uc.tenantRepo.UpdatePassword(ctx, tenant.ID, hash, false); err != nil {
		return domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", tenant.ID).Msg("contraseña actualizada")
	return nil
}

// ChangePasswordAndReissue cambia la contraseña y emite un token nuevo sin el flag de cambio obligatorio.
func (uc *AuthUseCase) ChangePasswordAndReissue(ctx context.Context, identity entity.Identity, in dto.ChangePasswordRequest) (*dto.ChangePasswordResponse, error) {
	if err := uc.ChangePassword(ctx, identity, in.CurrentPassword, in.NewPassword); err != nil {
		return nil, err
	}
	identity.MustChangePassword = false
	token, err := uc.issueToken(identity)
	if err != nil {
		return nil, err
	}
	return &dto.ChangePasswordResponse{Token: token}, nil
}

// ResetPassword genera una contraseña temporal para el tenant, persiste su hash y marca
// el cambio obligatorio. La contraseña en texto plano solo se devuelve aquí.
func (uc *AuthUseCase) ResetPassword(ctx context.Context, tenantID string) (string, error) {
	temp, err := GenerateTempPassword()
	if err != nil {
		return "", err
	}
	hash, err := uc.hasher.Hash(temp)
	if err != nil {
		return "", err
	}
	if err := uc.tenantRepo.UpdatePassword(ctx, tenantID, hash, true); err != nil {
		return "", domain.AsStoreError(err)
	}
	uc.log.Info().Str("tenant_id", tenantID).Msg("contraseña reseteada")
	return temp, nil
}

func (uc *AuthUseCase) issueToken(identity entity.Identity) (string, error) {
	return jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.Subject{
		UserID:             identity.UserID,
		TenantID:           identity.TenantID,
		Role:               identity.Role,
		MustChangePassword: identity.MustChangePassword,
	})
}

// ToIdentityResponse mapea la identidad al DTO de salida.
func ToIdentityResponse(i entity.Identity) dto.IdentityResponse {
	return dto.IdentityResponse{
		ID:                 i.UserID,
		Name:               i.Name,
		Email:              i.Email,
		Role:               i.Role,
		TenantID:           i.TenantID,
		MustChangePassword: i.MustChangePassword,
	}
}
