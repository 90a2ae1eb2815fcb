package xlsx_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/xlsx"
)

func amt(s string) dto.Amount { return dto.NewAmount(decimal.RequireFromString(s)) }

func readRows(t *testing.T, data []byte, sheet string) [][]string {
	t.Helper()
	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	return rows
}

func TestExporter_ABCCurve(t *testing.T) {
	data, err := xlsx.NewExporter().ABCCurve(&dto.ABCReportDTO{Itens: []dto.ABCItemDTO{
		{SKU: "SKU-1", Nome: "Fone", Receita: amt("600"), PercentualAcumulado: amt("60"), Classe: "A"},
		{SKU: "SKU-2", Nome: "Capa", Receita: amt("400"), PercentualAcumulado: amt("100"), Classe: "C"},
	}})
	require.NoError(t, err)

	rows := readRows(t, data, "Curva ABC")
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"SKU", "Nome", "Receita", "% acumulado", "Classe"}, rows[0])
	assert.Equal(t, "SKU-1", rows[1][0])
	assert.Equal(t, "A", rows[1][4])
	assert.Equal(t, "C", rows[2][4])
}

func TestExporter_ChannelMarginVacio(t *testing.T) {
	data, err := xlsx.NewExporter().ChannelMargin(&dto.ChannelMarginReportDTO{Itens: []dto.ChannelMarginItemDTO{}})
	require.NoError(t, err)

	rows := readRows(t, data, "Margem por canal")
	require.Len(t, rows, 1)
	assert.Equal(t, "Canal", rows[0][0])
}

func TestExporter_ProductMargin(t *testing.T) {
	data, err := xlsx.NewExporter().ProductMargin(&dto.ProductMarginReportDTO{Itens: []dto.ProductMarginItemDTO{
		{SKU: "SKU-1", Nome: "Fone", VendasQtd: json.Number("3"), ReceitaLiquida: amt("300"),
			CustoTotal: amt("120"), MargemValor: amt("180"), MargemPercentual: amt("60")},
	}})
	require.NoError(t, err)

	rows := readRows(t, data, "Margem por produto")
	require.Len(t, rows, 2)
	assert.Equal(t, "3", rows[1][2])
}

func TestExporter_PricingColumnasPorMargen(t *testing.T) {
	data, err := xlsx.NewExporter().Pricing(&dto.PricingReportDTO{Itens: []dto.PricingItemDTO{
		{SKU: "SKU-1", Nome: "Fone", CustoAtual: amt("10"), PrecoAtual: amt("11"), Subprecificado: true,
			Sugestoes: []dto.PriceSuggestionDTO{
				{Margem: json.Number("0.2"), Preco: amt("12.5")},
				{Margem: json.Number("0.3"), Preco: amt("14.29")},
			}},
	}})
	require.NoError(t, err)

	rows := readRows(t, data, "Precificação")
	require.Len(t, rows, 2)
	assert.Equal(t, "Preço p/ margem 0.2", rows[0][5])
	assert.Equal(t, "Preço p/ margem 0.3", rows[0][6])
	assert.Equal(t, "sim", rows[1][4])
}
