// Package pdf genera el PDF del resumen financiero del vendedor.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Resumo financeiro  │  Tenant + fecha de generación  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENTANA: últimos N días                                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Indicador | Valor                                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: cómo se cuentan las cuentas abiertas                │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 238, Green: 77, Blue: 45}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorHeader  = &props.Color{Red: 60, Green: 60, Blue: 60}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator genera documentos PDF usando Maroto v2.
type MarotoPDFGenerator struct {
	appName string
}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator(appName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{appName: appName}
}

// GenerateSummaryPDF genera el PDF de GET /analytics/resumo-financeiro/pdf y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateSummaryPDF(
	_ context.Context,
	summary *dto.FinancialSummaryDTO,
	meta dto.SummaryExportMeta,
) ([]byte, error) {
	if summary == nil {
		return nil, fmt.Errorf("pdf: resumen vacío")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle("Resumo financeiro", true).
		WithAuthor(g.appName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.appName, meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(windowRow(meta))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range indicatorRows(summary, meta) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(meta))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y tenant + fecha de generación (der).
func headerRow(appName string, meta dto.SummaryExportMeta) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New("Resumo financeiro", props.Text{
				Style: fontstyle.Bold, Size: 15, Color: colorPrimary, Top: 1,
			}),
			text.New(titleCase(appName), props.Text{
				Size: 9, Top: 10, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Loja: "+nonEmpty(meta.TenantID, "-"), props.Text{
				Size: 7, Align: align.Right, Top: 2, Color: colorGray,
			}),
			text.New("Gerado em "+formatDateTime(meta.GeneratedAt), props.Text{
				Size: 8, Align: align.Right, Top: 10, Color: colorGray,
			}),
		),
	)
}

// windowRow: rango cubierto por las cifras "_30d".
func windowRow(meta dto.SummaryExportMeta) core.Row {
	start := meta.GeneratedAt.AddDate(0, 0, -meta.WindowDays)
	return row.New(10).Add(
		col.New(12).Add(
			text.New(fmt.Sprintf("Janela: últimos %d dias (%s a %s)",
				meta.WindowDays, formatDate(start), formatDate(meta.GeneratedAt),
			), props.Text{Size: 9, Top: 3}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de indicadores.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: a,
			Color: colorWhite, Top: 2, Left: 2, Right: 2,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorHeader}).Add(
		h("Indicador", 8, align.Left),
		h("Valor", 4, align.Right),
	)
}

// indicatorRows: una fila por cifra del resumen.
func indicatorRows(s *dto.FinancialSummaryDTO, meta dto.SummaryExportMeta) []core.Row {
	open := func(a dto.Amount) string {
		if meta.OpenMode == "count" {
			return formatCount(a.Decimal())
		}
		return formatBRL(a.Decimal())
	}
	items := []struct {
		label string
		value string
	}{
		{"Faturamento", formatBRL(s.Faturamento30d.Decimal())},
		{"Lucro estimado", formatBRL(s.LucroEstimado30d.Decimal())},
		{"Ticket médio", formatBRL(s.TicketMedio30d.Decimal())},
		{"Saldo de repasses", formatBRL(s.SaldoRepasses30d.Decimal())},
		{"Contas a pagar em aberto", open(s.ContasPagarAbertas)},
		{"Contas a receber em aberto", open(s.ContasReceberAbertas)},
	}

	rows := make([]core.Row, 0, len(items))
	for _, it := range items {
		rows = append(rows, row.New(8).Add(
			col.New(8).Add(text.New(it.label, props.Text{Size: 9, Top: 2, Left: 2})),
			col.New(4).Add(text.New(it.value, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2, Right: 2,
			})),
		))
	}
	return rows
}

// footerRow: nota sobre la cuantificación de cuentas abiertas.
func footerRow(meta dto.SummaryExportMeta) core.Row {
	note := "Contas em aberto: soma dos valores previstos com status pendente ou vencido."
	if meta.OpenMode == "count" {
		note = "Contas em aberto: quantidade de títulos com status pendente ou vencido."
	}
	return row.New(8).Add(col.New(12).Add(
		text.New(note, props.Text{Size: 7, Color: colorGray, Top: 2}),
	))
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
