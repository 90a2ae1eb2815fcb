package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

func TestFormatBRL(t *testing.T) {
	assert.Equal(t, "R$ 12.000,50", formatBRL(decimal.RequireFromString("12000.5")))
	assert.Equal(t, "R$ 0,00", formatBRL(decimal.Zero))
	assert.Equal(t, "R$ 14,29", formatBRL(decimal.RequireFromString("14.2857")))
}

func TestFormatCount(t *testing.T) {
	assert.Equal(t, "1.234", formatCount(decimal.NewFromInt(1234)))
}

func TestGenerateSummaryPDF(t *testing.T) {
	summary := &dto.FinancialSummaryDTO{
		Faturamento30d:       dto.NewAmount(decimal.NewFromInt(12000)),
		LucroEstimado30d:     dto.NewAmount(decimal.NewFromInt(4000)),
		ContasPagarAbertas:   dto.NewAmount(decimal.RequireFromString("750.50")),
		ContasReceberAbertas: dto.NewAmount(decimal.NewFromInt(1200)),
		SaldoRepasses30d:     dto.NewAmount(decimal.NewFromInt(1000)),
		TicketMedio30d:       dto.NewAmount(decimal.NewFromInt(3000)),
	}
	meta := dto.SummaryExportMeta{
		TenantID:    "9f1c6c1e-3a57-4a57-9c55-3f0a3c1d2b10",
		GeneratedAt: time.Date(2026, time.June, 30, 18, 0, 0, 0, time.UTC),
		WindowDays:  30,
		OpenMode:    "sum",
	}

	out, err := NewMarotoPDFGenerator("seller analytics").GenerateSummaryPDF(context.Background(), summary, meta)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateSummaryPDF_Nil(t *testing.T) {
	_, err := NewMarotoPDFGenerator("x").GenerateSummaryPDF(context.Background(), nil, dto.SummaryExportMeta{})
	assert.Error(t, err)
}
