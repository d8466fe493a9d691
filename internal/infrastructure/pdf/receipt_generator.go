// Package pdf genera el comprobante de entrada de mercadería de una NF-e importada.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Proveedor + CNPJ     │  COMPROVANTE + Fecha         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Cant. | Custo | Estoque | Ação  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: ítems / productos nuevos / TOTAL DA NOTA           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Varejo-api/internal/application/purchasing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 98, Blue: 65}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa purchasing.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

var _ purchasing.ReceiptGenerator = (*ReceiptGenerator)(nil)

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateImportReceipt genera el PDF y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateImportReceipt(_ context.Context, result *purchasing.ImportResult) ([]byte, error) {
	if result == nil {
		return nil, fmt.Errorf("pdf: resultado de importación nulo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprovante de entrada", true).
		WithAuthor(result.SupplierName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(result))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(result.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(result))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(r *purchasing.ImportResult) core.Row {
	supplierTag := "Fornecedor existente"
	if r.SupplierCreated {
		supplierTag = "Fornecedor cadastrado nesta entrada"
	}
	return row.New(20).Add(
		col.New(7).Add(
			text.New(r.SupplierName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("CNPJ/CPF: "+r.SupplierDoc, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
			text.New(supplierTag, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("COMPROVANTE DE ENTRADA", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Data: "+r.ImportedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary,
			Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Código", 2, align.Left),
		h("Produto", 4, align.Left),
		h("Qtd.", 1, align.Right),
		h("Custo unit.", 2, align.Right),
		h("Estoque", 2, align.Right),
		h("Ação", 1, align.Center),
	)
}

func tableRows(lines []purchasing.ImportLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		action := "Atual."
		if l.Created {
			action = "Novo"
		}
		rows = append(rows, row.New(7).Add(
			col.New(2).Add(text.New(l.Code, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(l.Name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(trimQty(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(l.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(trimQty(l.Stock), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(action, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return rows
}

func totalsRow(r *purchasing.ImportResult) core.Row {
	created := 0
	for _, l := range r.Lines {
		if l.Created {
			created++
		}
	}
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Itens:"),
			label("Produtos novos:"),
			text.New("TOTAL DA NOTA:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 10,
			}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(r.Lines))),
			text.New(fmt.Sprintf("%d", created), props.Text{Size: 9, Align: align.Right, Right: 1, Top: 5}),
			text.New(formatMoney(r.Total()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: 10,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney formatea en reales: 1234.5 → "R$ 1.234,50".
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	intPart, frac, _ := strings.Cut(s, ".")

	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	out := "R$ " + string(buf) + "," + frac
	if neg {
		out = "-" + out
	}
	return out
}

// trimQty muestra cantidades sin ceros decimales sobrantes.
func trimQty(d decimal.Decimal) string {
	return d.String()
}
