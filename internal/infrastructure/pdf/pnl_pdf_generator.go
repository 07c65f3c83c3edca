// Package pdf genera la versión PDF del reporte de pérdidas y ganancias (laporan laba rugi).
//
// Layout de la página A4 horizontal:
//
//	┌──────────────────────────────────────────────────────────────────────┐
//	│  HEADER: título + tienda          │  período + fecha de generación  │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  RESUMEN: pedidos | ingreso | costo | utilidad bruta/neta | márgenes │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  TABLA: N° pedido | estado | fecha | ingreso | costo | ... | items   │
//	│  ──────────────────────────────────────────────────────────────────  │
//	│  FOOTER: pedidos sin HPP                                             │
//	└──────────────────────────────────────────────────────────────────────┘
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
	"github.com/johnfercher/maroto/v2/pkg/consts/orientation"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/hpp-api/internal/application/report"
	"github.com/jhoicas/hpp-api/internal/domain/profit"
	"github.com/jhoicas/hpp-api/internal/infrastructure/export"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 238, Green: 77, Blue: 45}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorRed     = &props.Color{Red: 200, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPnLGenerator implementa report.PnLPDFGenerator usando Maroto v2.
type MarotoPnLGenerator struct{}

var _ report.PnLPDFGenerator = (*MarotoPnLGenerator)(nil)

// NewMarotoPnLGenerator construye el generador.
func NewMarotoPnLGenerator() *MarotoPnLGenerator { return &MarotoPnLGenerator{} }

// GeneratePnLPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPnLGenerator) GeneratePnLPDF(_ context.Context, rep *report.PnLReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithOrientation(orientation.Horizontal).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle("Laporan Laba Rugi", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(rep))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(summaryRow(rep.Summary))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableOrderRows(rep) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(rep.Summary))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + tienda (izq) y período + fecha de generación (der).
func headerRow(rep *report.PnLReport) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New("LAPORAN LABA RUGI", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Toko: "+nonEmpty(rep.ShopID, "-"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Periode: "+period(rep), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Status: "+nonEmpty(rep.Filter.Status, "all"), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Dibuat: "+rep.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// summaryRow: totales en una banda de seis columnas.
func summaryRow(s profit.PnLSummary) core.Row {
	cell := func(label, value string) core.Col {
		return col.New(2).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1, Align: align.Center}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 10, Top: 5, Align: align.Center}),
		)
	}
	return row.New(14).Add(
		cell("Total Pesanan", fmt.Sprintf("%d", s.TotalOrders)),
		cell("Pendapatan", rupiah(s.TotalRevenue)),
		cell("Biaya Produk", rupiah(s.TotalCost)),
		cell("Laba Kotor", rupiah(s.TotalGrossProfit)),
		cell("Laba Bersih", rupiah(s.TotalNetProfit)),
		cell("Margin Kotor / Bersih", percentOrDash(s.OverallGrossMargin)+" / "+percentOrDash(s.OverallNetMargin)),
	)
}

// tableHeaderRow: cabecera de la tabla de pedidos.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("No. Pesanan", 2, align.Left),
		h("Status", 1, align.Left),
		h("Tanggal", 1, align.Center),
		h("Pendapatan", 1, align.Right),
		h("Biaya", 1, align.Right),
		h("Laba Kotor", 1, align.Right),
		h("Total Fee", 1, align.Right),
		h("Laba Bersih", 1, align.Right),
		h("Margin K.", 1, align.Right),
		h("Margin B.", 1, align.Right),
		h("Item", 1, align.Center),
	)
}

// tableOrderRows: una fila por pedido. Sin HPP completo, costo y utilidades van como "-".
func tableOrderRows(rep *report.PnLReport) []core.Row {
	result := make([]core.Row, 0, len(rep.Orders))
	for _, o := range rep.Orders {
		missing := props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1}
		if !o.HasAllHPP {
			missing.Color = colorRed
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(o.Order.OrderSn, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(o.Order.Status, props.Text{Size: 7, Top: 1, Left: 1})),
			col.New(1).Add(text.New(nonEmpty(export.Date(o.Order.OrderDate, rep.Location), "-"),
				props.Text{Size: 7, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(rupiah(o.TotalRevenue), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nullRupiah(o.TotalProductCost), missing)),
			col.New(1).Add(text.New(nullRupiah(o.GrossProfit), missing)),
			col.New(1).Add(text.New(rupiah(o.TotalFees), props.Text{Size: 7, Align: align.Right, Top: 1, Right: 1})),
			col.New(1).Add(text.New(nullRupiah(o.NetProfit), missing)),
			col.New(1).Add(text.New(percentOrDash(o.GrossMargin), missing)),
			col.New(1).Add(text.New(percentOrDash(o.NetMargin), missing)),
			col.New(1).Add(text.New(fmt.Sprintf("%d", len(o.Items)), props.Text{Size: 7, Align: align.Center, Top: 1})),
		))
	}
	return result
}

// footerRow: aviso de pedidos excluidos de costo y utilidad.
func footerRow(s profit.PnLSummary) core.Row {
	msg := "Semua pesanan memiliki HPP lengkap."
	if s.OrdersWithoutHPP > 0 {
		msg = fmt.Sprintf("%d pesanan tanpa HPP lengkap tidak termasuk dalam biaya dan laba.", s.OrdersWithoutHPP)
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(msg, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func period(rep *report.PnLReport) string {
	from, to := "-", "-"
	if rep.Filter.Start != nil {
		from = export.Date(*rep.Filter.Start, rep.Location)
	}
	if rep.Filter.End != nil {
		to = export.Date(*rep.Filter.End, rep.Location)
	}
	if from == "-" && to == "-" {
		return "semua"
	}
	return from + " - " + to
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func rupiah(d decimal.Decimal) string {
	return "Rp" + formatMoney(d.Round(0).StringFixed(0))
}

func nullRupiah(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return rupiah(d.Decimal)
}

func percentOrDash(d decimal.NullDecimal) string {
	if !d.Valid {
		return "-"
	}
	return profit.FormatPercent(d) + "%"
}

// formatMoney inserta puntos de miles en un string numérico sin decimales.
// Ej: "25000" → "25.000", "-1000000" → "-1.000.000"
func formatMoney(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
