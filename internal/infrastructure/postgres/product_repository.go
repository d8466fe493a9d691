package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/inventory"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, tenant_id, code, barcode, name, description, category, unit,
	cost_price, sale_price, stock, min_stock, status, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. (tenant_id, code) es único.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `INSERT INTO products (` + productColumns + `, name_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, p.Code, p.Barcode, p.Name, p.Description, p.Category, p.Unit,
		p.CostPrice, p.SalePrice, p.Stock, p.MinStock, p.Status, p.CreatedAt, p.UpdatedAt,
		inventory.NameKey(p.Name),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// FindImportCandidates devuelve un superconjunto de los candidatos (name_key plegado,
// lower(btrim(name)) o código) y bloquea esas filas. inventory.MatchProduct decide.
// Fuera de una transacción el FOR UPDATE no tiene efecto práctico.
func (r *ProductRepo) FindImportCandidates(ctx context.Context, tenantID, name, code string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1
		  AND (name_key = $2 OR lower(btrim(name)) = lower(btrim($3)) OR ($4 <> '' AND code = $4))
		ORDER BY created_at, id
		FOR UPDATE`
	return r.list(ctx, query, tenantID, inventory.NameKey(name), name, code)
}

// ApplyPurchase suma la cantidad al stock y reemplaza el costo; nunca reescribe otras columnas.
func (r *ProductRepo) ApplyPurchase(ctx context.Context, productID string, quantity, unitCost decimal.Decimal) (*entity.Product, error) {
	query := `UPDATE products SET stock = stock + $2, cost_price = $3, updated_at = now()
		WHERE id = $1 RETURNING ` + productColumns
	p, err := scanProduct(r.q.QueryRow(ctx, query, productID, quantity, unitCost))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("apply purchase: %w", err)
	}
	return p, nil
}

// ListByTenant lista productos del tenant con paginación.
func (r *ProductRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	return r.list(ctx, query, tenantID, limit, offset)
}

// ListLowStock lista los productos activos con stock <= stock mínimo, del menor stock al mayor.
func (r *ProductRepo) ListLowStock(ctx context.Context, tenantID string) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products
		WHERE tenant_id = $1 AND status = $2 AND stock <= min_stock
		ORDER BY stock, id`
	return r.list(ctx, query, tenantID, entity.ProductStatusActive)
}

func (r *ProductRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.Code, &p.Barcode, &p.Name, &p.Description, &p.Category, &p.Unit,
		&p.CostPrice, &p.SalePrice, &p.Stock, &p.MinStock, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
