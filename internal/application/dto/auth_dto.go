package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// IdentityResponse identidad resuelta (sin credenciales).
type IdentityResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	TenantID           string `json:"tenant_id,omitempty"`
	MustChangePassword bool   `json:"must_change_password"`
}

// LoginResponse salida con token JWT e identidad.
type LoginResponse struct {
	Token string           `json:"token"`
	User  IdentityResponse `json:"user"`
}

// ChangePasswordRequest entrada para cambio de contraseña del dueño del tenant.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=6"`
}

// ChangePasswordResponse devuelve un token nuevo sin el flag de cambio obligatorio.
type ChangePasswordResponse struct {
	Token string `json:"token"`
}

// TemporaryPasswordResponse contraseña temporal; solo se muestra una vez.
type TemporaryPasswordResponse struct {
	TenantID          string `json:"tenant_id"`
	TemporaryPassword string `json:"temporary_password"`
}
