package entity

import "time"

// Employee es un operador (cajero) creado por el gerente de un tenant.
type Employee struct {
	ID           string
	TenantID     string
	Name         string
	Email        string // único entre empleados
	PasswordHash string // bcrypt, igual que los tenants
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
