package entity

// Roles resueltos por el login.
const (
	RoleMaster   = "Master"
	RoleManager  = "Gerente"
	RoleOperator = "Operador"
)

// Credenciales fijas del administrador master (nunca persistidas).
const (
	MasterID       = "master"
	MasterName     = "Master Admin"
	MasterEmail    = "master@varejo.com"
	MasterPassword = "123456"
)

// Identity es el resultado de un login exitoso. Para Master TenantID queda vacío.
type Identity struct {
	UserID             string
	Name               string
	Email              string
	Role               string
	TenantID           string
	MustChangePassword bool
}

// MasterIdentity devuelve la identidad fija del administrador master.
func MasterIdentity() Identity {
	return Identity{
		UserID: MasterID,
		Name:   MasterName,
		Email:  MasterEmail,
		Role:   RoleMaster,
	}
}

// IsTenantOwner indica si la identidad corresponde a un dueño de tenant (único rol con cambio de password).
func (i Identity) IsTenantOwner() bool {
	return i.Role == RoleManager && i.TenantID != ""
}
