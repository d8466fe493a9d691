package entity

import "time"

// Supplier proveedor de un tenant. Document (CNPJ) es la clave natural de deduplicación.
type Supplier struct {
	ID          string
	TenantID    string
	Name        string
	Document    string
	Email       string
	Phone       string
	ContactName string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
