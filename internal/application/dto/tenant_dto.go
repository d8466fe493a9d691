package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateTenantRequest entrada para dar de alta una empresa (solo master).
type CreateTenantRequest struct {
	CompanyName string          `json:"company_name" validate:"required,max=200"`
	OwnerName   string          `json:"owner_name" validate:"required,max=200"`
	Email       string          `json:"email" validate:"required,email"`
	Document    string          `json:"document" validate:"required"`
	PlanID      string          `json:"plan_id" validate:"required"`
	Status      string          `json:"status" validate:"omitempty,oneof=Active Blocked Pending"`
	MonthlyFee  decimal.Decimal `json:"monthly_fee"`
}

// UpdateTenantStatusRequest cambio de estado de la suscripción.
type UpdateTenantStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Active Blocked Pending"`
}

// TenantResponse salida de un tenant (sin hash).
type TenantResponse struct {
	ID                 string          `json:"id"`
	CompanyName        string          `json:"company_name"`
	OwnerName          string          `json:"owner_name"`
	Email              string          `json:"email"`
	Document           string          `json:"document"`
	PlanID             string          `json:"plan_id"`
	Status             string          `json:"status"`
	MonthlyFee         decimal.Decimal `json:"monthly_fee"`
	NextBilling        time.Time       `json:"next_billing"`
	JoinedAt           time.Time       `json:"joined_at"`
	MustChangePassword bool            `json:"must_change_password"`
}

// CreateTenantResponse tenant creado + contraseña temporal (visible una sola vez).
type CreateTenantResponse struct {
	Tenant            TenantResponse `json:"tenant"`
	TemporaryPassword string         `json:"temporary_password"`
}

// TenantListResponse lista paginada de tenants.
type TenantListResponse struct {
	Items []TenantResponse `json:"items"`
	Page  PageResponse     `json:"page"`
}
