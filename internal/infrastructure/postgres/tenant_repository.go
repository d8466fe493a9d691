package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

const tenantColumns = `id, company_name, owner_name, email, password_hash, document, plan_id, status,
	monthly_fee, next_billing, joined_at, must_change_password, created_at, updated_at`

// TenantRepo implementación del puerto TenantRepository sobre PostgreSQL.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador de persistencia para tenants. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// Create persiste un nuevo tenant. Email y documento son únicos.
func (r *TenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	query := `INSERT INTO tenants (` + tenantColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.CompanyName, t.OwnerName, t.Email, t.PasswordHash, t.Document, t.PlanID, t.Status,
		t.MonthlyFee, t.NextBilling, t.JoinedAt, t.MustChangePassword, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			if constraintName(err) == "tenants_email_key" {
				return domain.ErrEmailAlreadyExists
			}
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// GetByID obtiene un tenant por ID.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE id = $1`, id)
}

// GetByEmail obtiene un tenant por email exacto.
func (r *TenantRepo) GetByEmail(ctx context.Context, email string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE email = $1`, email)
}

// GetByDocument obtiene un tenant por documento (CNPJ).
func (r *TenantRepo) GetByDocument(ctx context.Context, document string) (*entity.Tenant, error) {
	return r.getOne(ctx, `SELECT `+tenantColumns+` FROM tenants WHERE document = $1`, document)
}

func (r *TenantRepo) getOne(ctx context.Context, query string, arg any) (*entity.Tenant, error) {
	t, err := scanTenant(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return t, nil
}

// List lista tenants (más recientes primero) con paginación.
func (r *TenantRepo) List(ctx context.Context, limit, offset int) ([]*entity.Tenant, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+tenantColumns+` FROM tenants ORDER BY created_at DESC, id LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}
	defer rows.Close()

	var list []*entity.Tenant
	for rows.Next() {
		t, err := scanTenant(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tenant: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

// UpdateStatus cambia el estado de la suscripción.
func (r *TenantRepo) UpdateStatus(ctx context.Context, id, status string) error {
	return r.execOne(ctx, `UPDATE tenants SET status = $2, updated_at = now() WHERE id = $1`, id, status)
}

// UpdatePassword reemplaza hash y flag en una sola sentencia.
func (r *TenantRepo) UpdatePassword(ctx context.Context, id, passwordHash string, mustChange bool) error {
	return r.execOne(ctx,
		`UPDATE tenants SET password_hash = $2, must_change_password = $3, updated_at = now() WHERE id = $1`,
		id, passwordHash, mustChange)
}

// Delete elimina el tenant; empleados, productos y proveedores caen por ON DELETE CASCADE.
func (r *TenantRepo) Delete(ctx context.Context, id string) error {
	return r.execOne(ctx, `DELETE FROM tenants WHERE id = $1`, id)
}

func (r *TenantRepo) execOne(ctx context.Context, query string, args ...any) error {
	cmd, err := r.q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("tenant write: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanTenant(row pgx.Row) (*entity.Tenant, error) {
	var t entity.Tenant
	err := row.Scan(
		&t.ID, &t.CompanyName, &t.OwnerName, &t.Email, &t.PasswordHash, &t.Document, &t.PlanID, &t.Status,
		&t.MonthlyFee, &t.NextBilling, &t.JoinedAt, &t.MustChangePassword, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
