package entity

import "github.com/shopspring/decimal"

// InvoiceImport es el payload transitorio de una nota fiscal (NF-e) ya parseada.
// No se persiste: se consume una vez por la conciliación de stock.
type InvoiceImport struct {
	Supplier InvoiceSupplier
	Items    []InvoiceItem
}

// InvoiceSupplier datos del emisor de la nota.
type InvoiceSupplier struct {
	Name     string
	Document string
}

// InvoiceItem línea de la nota (det/prod).
type InvoiceItem struct {
	Code      string
	Barcode   string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	Unit      string
}
