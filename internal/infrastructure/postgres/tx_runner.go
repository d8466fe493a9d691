package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

var _ purchasing.ImportTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunImport abre una transacción, toma el advisory lock del tenant (se libera en commit/rollback),
// ejecuta fn con repos atados a la tx y hace Commit o Rollback.
func (r *TxRunner) RunImport(ctx context.Context, tenantID string, fn func(
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, "import:"+tenantID); err != nil {
		return fmt.Errorf("lock tenant import: %w", err)
	}

	if err := fn(NewProductRepository(tx), NewSupplierRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
