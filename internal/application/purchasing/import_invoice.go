package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Varejo-api/internal/application/dto"
	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
	"github.com/jhoicas/Varejo-api/internal/domain/inventory"
	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

// ImportLine resultado de conciliar una línea de la nota.
type ImportLine struct {
	Name      string
	ProductID string
	Code      string
	Created   bool
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Stock     decimal.Decimal // stock resultante
}

// ImportResult resumen de una importación aplicada.
type ImportResult struct {
	TenantID        string
	SupplierID      string
	SupplierName    string
	SupplierDoc     string
	SupplierCreated bool
	Lines           []ImportLine
	ImportedAt      time.Time
}

// Total suma cantidad * precio unitario de todas las líneas.
func (r *ImportResult) Total() decimal.Decimal {
	total := decimal.Zero
	for _, l := range r.Lines {
		total = total.Add(l.Quantity.Mul(l.UnitPrice))
	}
	return total
}

// ImportInvoiceUseCase concilia una NF-e contra el catálogo del tenant.
type ImportInvoiceUseCase struct {
	txRunner ImportTxRunner
	log      zerolog.Logger
}

// NewImportInvoiceUseCase construye el caso de uso.
func NewImportInvoiceUseCase(txRunner ImportTxRunner, log zerolog.Logger) *ImportInvoiceUseCase {
	return &ImportInvoiceUseCase{txRunner: txRunner, log: log}
}

// ProcessInvoiceImport valida la nota completa y la aplica en una sola transacción:
//  1. proveedor: busca por documento en el tenant; si no existe lo crea.
//  2. por línea: busca producto por nombre (sin distinguir mayúsculas) o código.
//     Encontrado: stock += cantidad y costo = precio unitario (último precio gana).
//     No encontrado: crea producto con precio de venta = costo * 1.5 y stock mínimo 5.
//
// Si algo falla, no queda aplicado nada.
func (uc *ImportInvoiceUseCase) ProcessInvoiceImport(ctx context.Context, tenantID string, in *entity.InvoiceImport) (*ImportResult, error) {
	if tenantID == "" {
		return nil, domain.ErrForbidden
	}
	if err := inventory.ValidateImport(in); err != nil {
		return nil, err
	}

	now := time.Now()
	result := &ImportResult{
		TenantID:   tenantID,
		ImportedAt: now,
		Lines:      make([]ImportLine, 0, len(in.Items)),
	}

	err := uc.txRunner.RunImport(ctx, tenantID, func(
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
	) error {
		result.Lines = result.Lines[:0]
		supplier, created, err := upsertSupplier(ctx, supplierRepo, tenantID, in.Supplier, now)
		if err != nil {
			return err
		}
		result.SupplierID = supplier.ID
		result.SupplierName = supplier.Name
		result.SupplierDoc = supplier.Document
		result.SupplierCreated = created

		for _, item := range in.Items {
			line, err := applyItem(ctx, productRepo, tenantID, item, now)
			if err != nil {
				return err
			}
			result.Lines = append(result.Lines, line)
		}
		return nil
	})
	if err != nil {
		return nil, domain.AsStoreError(err)
	}

	createdCount := 0
	for _, l := range result.Lines {
		if l.Created {
			createdCount++
		}
	}
	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("supplier_id", result.SupplierID).
		Bool("supplier_created", result.SupplierCreated).
		Int("items", len(result.Lines)).
		Int("products_created", createdCount).
		Str("total", result.Total().StringFixed(2)).
		Msg("nota importada")
	return result, nil
}

func upsertSupplier(ctx context.Context, repo repository.SupplierRepository, tenantID string, in entity.InvoiceSupplier, now time.Time) (*entity.Supplier, bool, error) {
	existing, err := repo.GetByDocument(ctx, tenantID, in.Document)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}
	return repo.CreateIfAbsent(ctx, &entity.Supplier{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      in.Name,
		Document:  in.Document,
		CreatedAt: now,
		UpdatedAt: now,
	})
}

func applyItem(ctx context.Context, repo repository.ProductRepository, tenantID string, item entity.InvoiceItem, now time.Time) (ImportLine, error) {
	name := strings.TrimSpace(item.Name)
	line := ImportLine{
		Name:      name,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice,
	}
	code := strings.TrimSpace(item.Code)
	candidates, err := repo.FindImportCandidates(ctx, tenantID, name, code)
	if err != nil {
		return line, err
	}
	if match := inventory.MatchProduct(candidates, name, code); match != nil {
		updated, err := repo.ApplyPurchase(ctx, match.ID, item.Quantity, item.UnitPrice)
		if err != nil {
			return line, err
		}
		line.ProductID = updated.ID
		line.Code = updated.Code
		line.Stock = updated.Stock
		return line, nil
	}

	if code == "" {
		code = fallbackCode()
	}
	product := &entity.Product{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		Code:        code,
		Barcode:     item.Barcode,
		Name:        name,
		Description: "Importado de NFe",
		Category:    entity.DefaultCategory,
		Unit:        inventory.NormalizeUnit(item.Unit),
		CostPrice:   item.UnitPrice,
		SalePrice:   inventory.SalePriceFor(item.UnitPrice),
		Stock:       item.Quantity,
		MinStock:    inventory.DefaultMinStock,
		Status:      entity.ProductStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := repo.Create(ctx, product); err != nil {
		return line, fmt.Errorf("crear producto %q: %w", name, err)
	}
	line.ProductID = product.ID
	line.Code = product.Code
	line.Stock = product.Stock
	line.Created = true
	return line, nil
}

// fallbackCode código para líneas sin cProd: "PROD" + 8 caracteres hex del UUID.
func fallbackCode() string {
	return "PROD" + strings.ToUpper(uuid.New().String()[:8])
}

// FromRequest adapta el payload JSON al payload de dominio.
func FromRequest(in dto.InvoiceImportRequest) *entity.InvoiceImport {
	out := &entity.InvoiceImport{
		Supplier: entity.InvoiceSupplier{
			Name:     strings.TrimSpace(in.Supplier.Name),
			Document: strings.TrimSpace(in.Supplier.Document),
		},
		Items: make([]entity.InvoiceItem, 0, len(in.Items)),
	}
	for _, it := range in.Items {
		out.Items = append(out.Items, entity.InvoiceItem{
			Code:      it.Code,
			Barcode:   it.Barcode,
			Name:      strings.TrimSpace(it.Name),
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Unit:      it.Unit,
		})
	}
	return out
}

// ToImportResponse mapea el resultado al DTO de salida.
func ToImportResponse(r *ImportResult) *dto.ImportResponse {
	out := &dto.ImportResponse{
		SupplierID:      r.SupplierID,
		SupplierName:    r.SupplierName,
		SupplierCreated: r.SupplierCreated,
		Lines:           make([]dto.ImportLineResponse, 0, len(r.Lines)),
		Total:           r.Total(),
	}
	for _, l := range r.Lines {
		action := "updated"
		if l.Created {
			action = "created"
		}
		out.Lines = append(out.Lines, dto.ImportLineResponse{
			Name:      l.Name,
			ProductID: l.ProductID,
			Code:      l.Code,
			Action:    action,
			Quantity:  l.Quantity,
			UnitPrice: l.UnitPrice,
			Stock:     l.Stock,
		})
	}
	return out
}
