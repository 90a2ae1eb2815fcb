package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
)

func TestAmount_RedondeaSoloAlSerializar(t *testing.T) {
	cases := map[string]string{
		"14.285714285714": "14.29",
		"12.5":            "12.50",
		"300":             "300.00",
		"0":               "0.00",
		"2.345":           "2.35",
		"-5.555":          "-5.56",
	}
	for in, want := range cases {
		a := dto.NewAmount(decimal.RequireFromString(in))
		b, err := json.Marshal(a)
		require.NoError(t, err)
		assert.Equal(t, want, string(b), in)
		assert.Equal(t, in, a.Decimal().String(), "la precisión interna no cambia")
	}
}

func TestAmount_ValorCeroSinInicializar(t *testing.T) {
	var row dto.ChannelMarginItemDTO
	b, err := json.Marshal(row)
	require.NoError(t, err)
	assert.JSONEq(t, `{"canal":"","receita_liquida":0.00,"custo_total":0.00,"margem_valor":0.00,"margem_percentual":0.00}`, string(b))
}

func TestAmount_UnmarshalNumeroYString(t *testing.T) {
	var a, b dto.Amount
	require.NoError(t, json.Unmarshal([]byte(`12.50`), &a))
	require.NoError(t, json.Unmarshal([]byte(`"7.1"`), &b))
	assert.True(t, a.Decimal().Equal(decimal.RequireFromString("12.5")))
	assert.True(t, b.Decimal().Equal(decimal.RequireFromString("7.1")))
}

func TestPricingItem_SugeridosSiempreEmitidos(t *testing.T) {
	item := dto.PricingItemDTO{SKU: "X", Sugestoes: []dto.PriceSuggestionDTO{}}
	b, err := json.Marshal(item)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"preco_sugerido_20":0.00`)
	assert.Contains(t, string(b), `"preco_sugerido_30":0.00`)
	assert.Contains(t, string(b), `"sugestoes":[]`)
}
