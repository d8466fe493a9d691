package inventory_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/inventory"
)

func TestSameName(t *testing.T) {
	assert.True(t, inventory.SameName("Arroz 5kg", "ARROZ 5KG"))
	assert.True(t, inventory.SameName("AÇÚCAR", "açúcar"))
	assert.True(t, inventory.SameName("  Leite ", "leite"))
	assert.False(t, inventory.SameName("Acucar", "Açúcar"))
	assert.False(t, inventory.SameName("Leite", "Leite Integral"))
	assert.True(t, inventory.SameName("STRASSE", "Straße"))
	assert.True(t, inventory.SameName("Leite ", "Leite"))
}

func TestNameKey(t *testing.T) {
	assert.Equal(t, "leite", inventory.NameKey("  LEITE "))
	assert.Equal(t, "strasse", inventory.NameKey("Straße"))
	assert.Equal(t, inventory.NameKey("AÇÚCAR"), inventory.NameKey("açúcar"))
}

func TestMatchProduct(t *testing.T) {
	porCodigo := &entity.Product{ID: "1", Code: "C1", Name: "Outro"}
	porNombre := &entity.Product{ID: "2", Code: "C2", Name: "Leite"}
	duplicado := &entity.Product{ID: "3", Code: "C3", Name: "LEITE"}
	candidates := []*entity.Product{porCodigo, porNombre, duplicado}

	assert.Same(t, porNombre, inventory.MatchProduct(candidates, "leite", "C1"), "el nombre gana sobre el código")
	assert.Same(t, porCodigo, inventory.MatchProduct(candidates, "Nada", "C1"))
	assert.Nil(t, inventory.MatchProduct(candidates, "Nada", ""))
	assert.Nil(t, inventory.MatchProduct(candidates, "Nada", "C9"))
	assert.Nil(t, inventory.MatchProduct(nil, "Leite", "C2"))
}

func TestMatchProduct_CodigoVacioNoCoincideConProductoSinCodigo(t *testing.T) {
	sinCodigo := &entity.Product{ID: "1", Code: "", Name: "Outro"}
	assert.Nil(t, inventory.MatchProduct([]*entity.Product{sinCodigo}, "Leite", ""))
}

func TestSalePriceFor(t *testing.T) {
	tests := []struct {
		cost string
		want string
	}{
		{"10", "15"},
		{"7.20", "10.8"},
		{"0.01", "0.015"},
		{"0", "0"},
	}
	for _, tt := range tests {
		got := inventory.SalePriceFor(decimal.RequireFromString(tt.cost))
		assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "costo %s: got %s", tt.cost, got)
	}
}

func TestNormalizeUnit(t *testing.T) {
	assert.Equal(t, entity.UnitKG, inventory.NormalizeUnit("kg"))
	assert.Equal(t, entity.UnitLT, inventory.NormalizeUnit(" LT "))
	assert.Equal(t, entity.UnitMT, inventory.NormalizeUnit("mt"))
	assert.Equal(t, entity.UnitUN, inventory.NormalizeUnit("CX"))
	assert.Equal(t, entity.UnitUN, inventory.NormalizeUnit(""))
}

func TestValidateImport(t *testing.T) {
	ok := entity.InvoiceItem{Name: "Arroz", Quantity: decimal.NewFromInt(1), UnitPrice: decimal.NewFromInt(2)}
	valid := &entity.InvoiceImport{
		Supplier: entity.InvoiceSupplier{Name: "Sul", Document: "123"},
		Items:    []entity.InvoiceItem{ok},
	}
	require.NoError(t, inventory.ValidateImport(valid))

	withItem := func(mut func(*entity.InvoiceItem)) *entity.InvoiceImport {
		item := ok
		mut(&item)
		return &entity.InvoiceImport{Supplier: valid.Supplier, Items: []entity.InvoiceItem{ok, item}}
	}
	invalid := map[string]*entity.InvoiceImport{
		"nil":               nil,
		"sin documento":     {Supplier: entity.InvoiceSupplier{Name: "Sul", Document: " "}, Items: valid.Items},
		"sin ítems":         {Supplier: valid.Supplier},
		"nombre vacío":      withItem(func(i *entity.InvoiceItem) { i.Name = "" }),
		"cantidad cero":     withItem(func(i *entity.InvoiceItem) { i.Quantity = decimal.Zero }),
		"cantidad negativa": withItem(func(i *entity.InvoiceItem) { i.Quantity = decimal.NewFromInt(-3) }),
		"precio negativo":   withItem(func(i *entity.InvoiceItem) { i.UnitPrice = decimal.RequireFromString("-0.01") }),
	}
	for name, in := range invalid {
		t.Run(name, func(t *testing.T) {
			assert.ErrorIs(t, inventory.ValidateImport(in), domain.ErrInvalidInput)
		})
	}

	zero := withItem(func(i *entity.InvoiceItem) { i.UnitPrice = decimal.Zero })
	assert.NoError(t, inventory.ValidateImport(zero))
}
