package purchasing

import (
	"context"

	"github.com/jhoicas/Varejo-api/internal/domain/repository"
)

// ImportTxRunner ejecuta fn en una transacción, con repositorios atados a ella.
// Las importaciones de un mismo tenant quedan serializadas: la búsqueda-o-creación de
// proveedor y producto y el incremento de stock no sufren actualizaciones perdidas.
type ImportTxRunner interface {
	RunImport(ctx context.Context, tenantID string, fn func(
		productRepo repository.ProductRepository,
		supplierRepo repository.SupplierRepository,
	) error) error
}

// ReceiptGenerator produce el comprobante de entrada (PDF) de una importación aplicada.
type ReceiptGenerator interface {
	GenerateImportReceipt(ctx context.Context, result *ImportResult) ([]byte, error)
}
