// Package xlsx exporta los reportes de analítica a planillas Excel.
package xlsx

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

// formato numérico "#,##0.00" (id 4 de la tabla de formatos incorporados)
const numFmtMoney = 4

type cellKind int

const (
	kindText cellKind = iota
	kindMoney
	kindNumber
)

type column struct {
	header string
	width  float64
	kind   cellKind
}

// Exporter genera planillas de una hoja por reporte.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter {
	return &Exporter{}
}

// ChannelMargin planilla de margem-por-canal.
func (e *Exporter) ChannelMargin(r *dto.ChannelMarginReportDTO) ([]byte, error) {
	cols := []column{
		{"Canal", 22, kindText},
		{"Receita líquida", 18, kindMoney},
		{"Custo total", 18, kindMoney},
		{"Margem (R$)", 18, kindMoney},
		{"Margem (%)", 14, kindMoney},
	}
	rows := make([][]any, 0, len(r.Itens))
	for _, it := range r.Itens {
		rows = append(rows, []any{
			it.Canal, money(it.ReceitaLiquida), money(it.CustoTotal),
			money(it.MargemValor), money(it.MargemPercentual),
		})
	}
	return writeSheet("Margem por canal", cols, rows)
}

// ABCCurve planilla de curva-abc.
func (e *Exporter) ABCCurve(r *dto.ABCReportDTO) ([]byte, error) {
	cols := []column{
		{"SKU", 16, kindText},
		{"Nome", 40, kindText},
		{"Receita", 18, kindMoney},
		{"% acumulado", 14, kindMoney},
		{"Classe", 8, kindText},
	}
	rows := make([][]any, 0, len(r.Itens))
	for _, it := range r.Itens {
		rows = append(rows, []any{
			it.SKU, it.Nome, money(it.Receita), money(it.PercentualAcumulado), it.Classe,
		})
	}
	return writeSheet("Curva ABC", cols, rows)
}

// ProductMargin planilla de margem-por-produto.
func (e *Exporter) ProductMargin(r *dto.ProductMarginReportDTO) ([]byte, error) {
	cols := []column{
		{"SKU", 16, kindText},
		{"Nome", 40, kindText},
		{"Vendas (qtd)", 12, kindNumber},
		{"Receita líquida", 18, kindMoney},
		{"Custo total", 18, kindMoney},
		{"Margem (R$)", 18, kindMoney},
		{"Margem (%)", 14, kindMoney},
	}
	rows := make([][]any, 0, len(r.Itens))
	for _, it := range r.Itens {
		qty, err := it.VendasQtd.Float64()
		if err != nil {
			return nil, fmt.Errorf("xlsx: vendas_qtd de %s: %w", it.SKU, err)
		}
		rows = append(rows, []any{
			it.SKU, it.Nome, qty, money(it.ReceitaLiquida), money(it.CustoTotal),
			money(it.MargemValor), money(it.MargemPercentual),
		})
	}
	return writeSheet("Margem por produto", cols, rows)
}

// Pricing planilla de precificacao-sugerida: una columna por margen objetivo.
func (e *Exporter) Pricing(r *dto.PricingReportDTO) ([]byte, error) {
	cols := []column{
		{"SKU", 16, kindText},
		{"Nome", 40, kindText},
		{"Custo atual", 16, kindMoney},
		{"Preço atual", 16, kindMoney},
		{"Subprecificado", 14, kindText},
	}
	// Todas las filas comparten los mismos objetivos.
	if len(r.Itens) > 0 {
		for _, s := range r.Itens[0].Sugestoes {
			cols = append(cols, column{header: "Preço p/ margem " + s.Margem.String(), width: 20, kind: kindMoney})
		}
	}
	rows := make([][]any, 0, len(r.Itens))
	for _, it := range r.Itens {
		under := "não"
		if it.Subprecificado {
			under = "sim"
		}
		values := []any{it.SKU, it.Nome, money(it.CustoAtual), money(it.PrecoAtual), under}
		for _, s := range it.Sugestoes {
			values = append(values, money(s.Preco))
		}
		rows = append(rows, values)
	}
	return writeSheet("Precificação", cols, rows)
}

// ── Helpers ───────────────────────────────────────────────────────────────────

// money redondea a 2 decimales antes de pasar a float: es lo que muestra la celda.
func money(a dto.Amount) float64 {
	return a.Decimal().Round(2).InexactFloat64()
}

func writeSheet(name string, cols []column, rows [][]any) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", name); err != nil {
		return nil, fmt.Errorf("xlsx: renombrar hoja: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"3C3C3C"}},
	})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}
	moneyStyle, err := f.NewStyle(&excelize.Style{NumFmt: numFmtMoney})
	if err != nil {
		return nil, fmt.Errorf("xlsx: estilo numérico: %w", err)
	}

	header := make([]any, 0, len(cols))
	for i, c := range cols {
		header = append(header, c.header)
		colName, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(name, colName, colName, c.width); err != nil {
			return nil, fmt.Errorf("xlsx: ancho de columna: %w", err)
		}
	}
	if err := f.SetSheetRow(name, "A1", &header); err != nil {
		return nil, fmt.Errorf("xlsx: cabecera: %w", err)
	}
	last, _ := excelize.CoordinatesToCellName(len(cols), 1)
	if err := f.SetCellStyle(name, "A1", last, headerStyle); err != nil {
		return nil, fmt.Errorf("xlsx: estilo de cabecera: %w", err)
	}

	for i, values := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(name, cell, &values); err != nil {
			return nil, fmt.Errorf("xlsx: fila %d: %w", i+2, err)
		}
	}
	if len(rows) > 0 {
		for i, c := range cols {
			if c.kind != kindMoney {
				continue
			}
			top, _ := excelize.CoordinatesToCellName(i+1, 2)
			bottom, _ := excelize.CoordinatesToCellName(i+1, len(rows)+1)
			if err := f.SetCellStyle(name, top, bottom, moneyStyle); err != nil {
				return nil, fmt.Errorf("xlsx: formato numérico: %w", err)
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx: serializar: %w", err)
	}
	return buf.Bytes(), nil
}
