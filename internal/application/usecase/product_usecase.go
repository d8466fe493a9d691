package usecase

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

// CatalogUseCase consultas del catálogo del tenant. El stock y el costo solo cambian
// por importación de notas (y ventas, fuera de este servicio).
type CatalogUseCase struct {
	products  repository.ProductRepository
	suppliers repository.SupplierRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(products repository.ProductRepository, suppliers repository.SupplierRepository) *CatalogUseCase {
	return &CatalogUseCase{products: products, suppliers: suppliers}
}

// ListProducts lista productos del tenant con paginación.
func (uc *CatalogUseCase) ListProducts(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.products.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	return &dto.ProductListResponse{
		Items: toProductResponses(list),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// GetProduct obtiene un producto del tenant. domain.ErrNotFound si no existe o es de otro tenant.
func (uc *CatalogUseCase) GetProduct(ctx context.Context, tenantID, id string) (*dto.ProductResponse, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	if p == nil || p.TenantID != tenantID {
		return nil, domain.ErrNotFound
	}
	out := toProductResponse(p)
	return &out, nil
}

// ListLowStock lista productos activos en o por debajo del stock mínimo.
func (uc *CatalogUseCase) ListLowStock(ctx context.Context, tenantID string) ([]dto.ProductResponse, error) {
	list, err := uc.products.ListLowStock(ctx, tenantID)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	return toProductResponses(list), nil
}

// ListSuppliers lista los proveedores del tenant.
func (uc *CatalogUseCase) ListSuppliers(ctx context.Context, tenantID string) ([]dto.SupplierResponse, error) {
	list, err := uc.suppliers.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, domain.AsStoreError(err)
	}
	out := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.SupplierResponse{
			ID:          s.ID,
			Name:        s.Name,
			Document:    s.Document,
			Email:       s.Email,
			Phone:       s.Phone,
			ContactName: s.ContactName,
			CreatedAt:   s.CreatedAt,
		})
	}
	return out, nil
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toProductResponse(p))
	}
	return out
}

func toProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:          p.ID,
		TenantID:    p.TenantID,
		Code:        p.Code,
		Barcode:     p.Barcode,
		Name:        p.Name,
		Description: p.Description,
		Category:    p.Category,
		Unit:        p.Unit,
		CostPrice:   p.CostPrice,
		SalePrice:   p.SalePrice,
		Stock:       p.Stock,
		MinStock:    p.MinStock,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
