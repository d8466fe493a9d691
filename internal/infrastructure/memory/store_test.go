package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
	"github.com/jhoicas/Varejo-api/internal/infrastructure/memory"
)

func TestTxRunner_RestauraSoloElTenantQueFalla(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", TenantID: "t1", Code: "A", Name: "Arroz", Stock: decimal.NewFromInt(10)}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p2", TenantID: "t2", Code: "A", Name: "Arroz", Stock: decimal.NewFromInt(10)}))

	runner := memory.NewTxRunner(store)
	boom := errors.New("boom")
	err := runner.RunImport(ctx, "t1", func(products repository.ProductRepository, suppliers repository.SupplierRepository) error {
		if _, err := products.ApplyPurchase(ctx, "p1", decimal.NewFromInt(5), decimal.NewFromInt(1)); err != nil {
			return err
		}
		if err := products.Create(ctx, &entity.Product{ID: "p3", TenantID: "t1", Code: "B", Name: "Novo"}); err != nil {
			return err
		}
		if _, _, err := suppliers.CreateIfAbsent(ctx, &entity.Supplier{ID: "s1", TenantID: "t1", Document: "1"}); err != nil {
			return err
		}
		// cambio concurrente de otro tenant, fuera de la importación
		_, err := store.Products().ApplyPurchase(ctx, "p2", decimal.NewFromInt(1), decimal.NewFromInt(1))
		require.NoError(t, err)
		return boom
	})
	require.ErrorIs(t, err, boom)

	p1, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(10).Equal(p1.Stock))
	p3, err := store.Products().GetByID(ctx, "p3")
	require.NoError(t, err)
	assert.Nil(t, p3)
	sp, err := store.Suppliers().GetByDocument(ctx, "t1", "1")
	require.NoError(t, err)
	assert.Nil(t, sp)

	p2, err := store.Products().GetByID(ctx, "p2")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(11).Equal(p2.Stock))
}

func TestTxRunner_ContextoCancelado(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	called := false
	err := memory.NewTxRunner(memory.NewStore()).RunImport(ctx, "t1", func(repository.ProductRepository, repository.SupplierRepository) error {
		called = true
		return nil
	})
	assert.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestProductRepo_CodigoUnicoPorTenant(t *testing.T) {
	products := memory.NewStore().Products()
	ctx := context.Background()
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "p1", TenantID: "t1", Code: "A"}))
	assert.ErrorIs(t, products.Create(ctx, &entity.Product{ID: "p2", TenantID: "t1", Code: "A"}), domain.ErrDuplicate)
	assert.NoError(t, products.Create(ctx, &entity.Product{ID: "p3", TenantID: "t2", Code: "A"}))
}

func TestProductRepo_ListLowStock(t *testing.T) {
	products := memory.NewStore().Products()
	ctx := context.Background()
	five := decimal.NewFromInt(5)
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "a", TenantID: "t1", Code: "A", Stock: decimal.NewFromInt(5), MinStock: five, Status: entity.ProductStatusActive}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "b", TenantID: "t1", Code: "B", Stock: decimal.NewFromInt(-2), MinStock: five, Status: entity.ProductStatusActive}))
	require.NoError(t, products.Create(ctx, &entity.Product{ID: "c", TenantID: "t1", Code: "C", Stock: decimal.NewFromInt(6), MinStock: five, Status: entity.ProductStatusActive}))

	low, err := products.ListLowStock(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "b", low[0].ID)
	assert.Equal(t, "a", low[1].ID)
}

func TestTenantRepo_DeleteEnCascada(t *testing.T) {
	store := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, store.Tenants().Create(ctx, &entity.Tenant{ID: "t1", Email: "a@a.com", Document: "1", CreatedAt: time.Now()}))
	require.NoError(t, store.Employees().Create(ctx, &entity.Employee{ID: "e1", TenantID: "t1", Email: "e@a.com"}))
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", TenantID: "t1", Code: "A"}))

	require.NoError(t, store.Tenants().Delete(ctx, "t1"))

	e, err := store.Employees().GetByEmail(ctx, "e@a.com")
	require.NoError(t, err)
	assert.Nil(t, e)
	p, err := store.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Nil(t, p)
}
