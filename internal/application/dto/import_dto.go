package dto

import "github.com/shopspring/decimal"

// InvoiceImportRequest payload JSON alternativo al XML de la NF-e.
type InvoiceImportRequest struct {
	Supplier struct {
		Name     string `json:"name"`
		Document string `json:"document"`
	} `json:"supplier"`
	Items []InvoiceImportItem `json:"items"`
}

// InvoiceImportItem línea del payload JSON.
type InvoiceImportItem struct {
	Code      string          `json:"code"`
	Barcode   string          `json:"barcode"`
	Name      string          `json:"name"`
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Unit      string          `json:"unit"`
}

// ImportLineResponse resultado de conciliar una línea.
type ImportLineResponse struct {
	Name      string          `json:"name"`
	ProductID string          `json:"product_id"`
	Code      string          `json:"code"`
	Action    string          `json:"action"` // "updated" | "created"
	Quantity  decimal.Decimal `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Stock     decimal.Decimal `json:"stock"`
}

// ImportResponse resumen de la importación.
type ImportResponse struct {
	SupplierID      string               `json:"supplier_id"`
	SupplierName    string               `json:"supplier_name"`
	SupplierCreated bool                 `json:"supplier_created"`
	Lines           []ImportLineResponse `json:"lines"`
	Total           decimal.Decimal      `json:"total"`
}
