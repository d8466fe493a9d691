package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

const supplierColumns = `id, tenant_id, name, document, email, phone, contact_name, created_at, updated_at`

// SupplierRepo implementación del puerto SupplierRepository sobre PostgreSQL.
type SupplierRepo struct {
	q Querier
}

// NewSupplierRepository construye el adaptador de persistencia para proveedores.
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{q: q}
}

// GetByDocument busca un proveedor del tenant por documento.
func (r *SupplierRepo) GetByDocument(ctx context.Context, tenantID, document string) (*entity.Supplier, error) {
	s, err := scanSupplier(r.q.QueryRow(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE tenant_id = $1 AND document = $2`,
		tenantID, document))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	return s, nil
}

// CreateIfAbsent inserta con ON CONFLICT (tenant_id, document) DO NOTHING; si la fila ya existía
// la devuelve con created=false.
func (r *SupplierRepo) CreateIfAbsent(ctx context.Context, s *entity.Supplier) (*entity.Supplier, bool, error) {
	query := `INSERT INTO suppliers (` + supplierColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (tenant_id, document) DO NOTHING
		RETURNING ` + supplierColumns
	stored, err := scanSupplier(r.q.QueryRow(ctx, query,
		s.ID, s.TenantID, s.Name, s.Document, s.Email, s.Phone, s.ContactName, s.CreatedAt, s.UpdatedAt,
	))
	if err == nil {
		return stored, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return nil, false, fmt.Errorf("insert supplier: %w", err)
	}
	existing, err := r.GetByDocument(ctx, s.TenantID, s.Document)
	if err != nil {
		return nil, false, err
	}
	if existing == nil {
		return nil, false, fmt.Errorf("insert supplier: conflicto sin fila para documento %s", s.Document)
	}
	return existing, false, nil
}

// ListByTenant lista los proveedores del tenant.
func (r *SupplierRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.Supplier, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+supplierColumns+` FROM suppliers WHERE tenant_id = $1 ORDER BY created_at DESC, id`,
		tenantID)
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()

	var list []*entity.Supplier
	for rows.Next() {
		s, err := scanSupplier(rows)
		if err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSupplier(row pgx.Row) (*entity.Supplier, error) {
	var s entity.Supplier
	if err := row.Scan(&s.ID, &s.TenantID, &s.Name, &s.Document, &s.Email, &s.Phone, &s.ContactName, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
