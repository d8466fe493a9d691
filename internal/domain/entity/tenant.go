package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de un Tenant (suscripción SaaS).
const (
	TenantStatusActive  = "Active"
	TenantStatusBlocked = "Blocked"
	TenantStatusPending = "Pending"
)

// Tenant representa una empresa suscriptora (dueño/gerente). Su ID es la clave foránea
// de todos los registros de negocio (productos, proveedores, empleados).
type Tenant struct {
	ID                 string
	CompanyName        string
	OwnerName          string
	Email              string // único entre tenants; se usa como login
	PasswordHash       string // bcrypt
	Document           string // CNPJ, único
	PlanID             string
	Status             string // Active, Blocked, Pending
	MonthlyFee         decimal.Decimal
	NextBilling        time.Time
	JoinedAt           time.Time
	MustChangePassword bool
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// ValidTenantStatus indica si s es un estado permitido.
func ValidTenantStatus(s string) bool {
	switch s {
	case TenantStatusActive, TenantStatusBlocked, TenantStatusPending:
		return true
	}
	return false
}
