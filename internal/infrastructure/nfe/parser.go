// Package nfe lee el XML de una Nota Fiscal Eletrônica (layout 4.00) y extrae el
// emisor y las líneas de producto para la conciliación de stock.
package nfe

import (
	"fmt"
	"io"
	"strings"

	"github.com/beevik/etree"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"

	"github.com/jhoicas/Varejo-api/internal/domain"
	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// UnknownSupplierName nombre usado cuando el emisor no trae xNome.
const UnknownSupplierName = "Desconhecido"

// sinGTIN valor de cEAN que las NF-e usan para "sin código de barras".
const sinGTIN = "SEM GTIN"

// Parse lee la NF-e (nfeProc o NFe) y devuelve el payload de importación.
// Campos numéricos ausentes valen 0; unidad ausente vale "UN".
func Parse(r io.Reader) (*entity.InvoiceImport, error) {
	doc := etree.NewDocument()
	doc.ReadSettings.CharsetReader = charsetReader
	if _, err := doc.ReadFrom(r); err != nil {
		return nil, fmt.Errorf("%w: XML inválido: %v", domain.ErrInvalidInput, err)
	}

	emit := doc.FindElement("//emit")
	if emit == nil {
		return nil, fmt.Errorf("%w: emitente no encontrado en la NF-e", domain.ErrInvalidInput)
	}
	out := &entity.InvoiceImport{
		Supplier: entity.InvoiceSupplier{
			Name:     textOr(emit, ".//xNome", UnknownSupplierName),
			Document: textOr(emit, "./CNPJ", textOr(emit, "./CPF", "")),
		},
	}

	for i, det := range doc.FindElements("//det") {
		prod := det.FindElement("./prod")
		if prod == nil {
			continue
		}
		qty, err := decimalOf(prod, "./qCom")
		if err != nil {
			return nil, fmt.Errorf("%w: det %d qCom: %v", domain.ErrInvalidInput, i+1, err)
		}
		price, err := decimalOf(prod, "./vUnCom")
		if err != nil {
			return nil, fmt.Errorf("%w: det %d vUnCom: %v", domain.ErrInvalidInput, i+1, err)
		}
		barcode := textOr(prod, "./cEAN", "")
		if strings.EqualFold(barcode, sinGTIN) {
			barcode = ""
		}
		out.Items = append(out.Items, entity.InvoiceItem{
			Code:      textOr(prod, "./cProd", ""),
			Barcode:   barcode,
			Name:      textOr(prod, "./xProd", ""),
			Quantity:  qty,
			UnitPrice: price,
			Unit:      textOr(prod, "./uCom", entity.UnitUN),
		})
	}
	return out, nil
}

func textOr(el *etree.Element, path, def string) string {
	found := el.FindElement(path)
	if found == nil {
		return def
	}
	if t := strings.TrimSpace(found.Text()); t != "" {
		return t
	}
	return def
}

func decimalOf(el *etree.Element, path string) (decimal.Decimal, error) {
	raw := textOr(el, path, "")
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}

// charsetReader decodifica NF-e emitidas en ISO-8859-1 / Windows-1252 (emisores antiguos).
func charsetReader(label string, input io.Reader) (io.Reader, error) {
	switch strings.ToLower(label) {
	case "iso-8859-1", "iso8859-1", "latin1", "latin-1":
		return charmap.ISO8859_1.NewDecoder().Reader(input), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewDecoder().Reader(input), nil
	case "utf-8", "utf8", "":
		return input, nil
	}
	return nil, fmt.Errorf("charset no soportado: %s", label)
}
