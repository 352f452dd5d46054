// Package pdf implementa los informes PDF de la farmacia con Maroto v2.
//
// Layout de la página A4 del informe de stock:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Farmacia + ICE      │  INFORME DE STOCK + Fecha    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Producto | Código | Stock | Umbral | Valor compra    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos / Alertas / Valor compra / Valor venta   │
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

	"github.com/jhoicas/seraphine/internal/application/report"
	"github.com/jhoicas/seraphine/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa report.StockReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

var _ report.StockReportGenerator = (*MarotoReportGenerator)(nil)

// GenerateStockReportPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReportPDF(_ context.Context, r *report.StockReport) ([]byte, error) {
	if r == nil || r.Organization == nil {
		return nil, fmt.Errorf("pdf: informe sin organización")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Informe de stock", true).
		WithAuthor(r.Organization.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(productRows(r.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(r))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: farmacia + ICE (izq) y título + fecha (der).
func headerRow(r *report.StockReport) core.Row {
	org := r.Organization
	return row.New(18).Add(
		col.New(7).Add(
			text.New(org.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("ICE: %s   |   Tel: %s", nonEmpty(org.ICE, "-"), nonEmpty(org.Phone, "-")), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("INFORME DE STOCK", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Producto", 4, align.Left),
		h("Código", 2, align.Left),
		h("Stock", 1, align.Center),
		h("Umbral", 1, align.Center),
		h("Valor compra", 2, align.Right),
		h("Valor venta", 2, align.Right),
	)
}

// productRows: una fila por producto; los que están en alerta van en rojo.
func productRows(products []*entity.Product) []core.Row {
	rows := make([]core.Row, 0, len(products))
	for _, p := range products {
		cost, sale := p.StockValue()
		style := props.Text{Size: 8, Top: 1}
		name := p.Name
		if p.IsLowStock() {
			style.Color = colorAlert
			name = "! " + name
		}
		cell := func(s string, a align.Type) core.Component {
			t := style
			t.Align = a
			t.Left, t.Right = 1, 1
			return text.New(s, t)
		}
		rows = append(rows, row.New(6).Add(
			col.New(4).Add(cell(name, align.Left)),
			col.New(2).Add(cell(nonEmpty(p.Barcode, "-"), align.Left)),
			col.New(1).Add(cell(fmt.Sprintf("%d", p.Stock), align.Center)),
			col.New(1).Add(cell(fmt.Sprintf("%d", p.Threshold), align.Center)),
			col.New(2).Add(cell(formatMoney(cost), align.Right)),
			col.New(2).Add(cell(formatMoney(sale), align.Right)),
		))
	}
	return rows
}

// totalsRow: bloque de totales alineado a la derecha.
func totalsRow(r *report.StockReport) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	return row.New(24).Add(
		col.New(6),
		col.New(3).Add(
			label("Productos:"),
			text.New("En alerta:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 5}),
			text.New("Valor a compra:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 10}),
			text.New("Valor a venta:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 15, Color: colorPrimary}),
		),
		col.New(3).Add(
			value(fmt.Sprintf("%d", len(r.Products)), 0),
			value(fmt.Sprintf("%d", r.LowStockCount), 5),
			value(formatMoney(r.StockValueCost), 10),
			text.New(formatMoney(r.StockValueSale), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 1, Top: 15, Color: colorPrimary}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney formatea un importe en dirhams con separador de miles.
// Ej: 1234567.5 → "1 234 567,50 DH"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ' ')
		}
		buf = append(buf, c)
	}
	return sign + string(buf) + "," + frac + " DH"
}
