package dto

import (
	"encoding/json"

	"github.com/shopspring/decimal"
)

// ── Montos ────────────────────────────────────────────────────────────────────

// Amount valor monetario o porcentual que se redondea a 2 decimales solo al serializar.
// Se emite como número JSON sin comillas (ej. 300.00). Todo el cálculo previo usa precisión completa.
type Amount decimal.Decimal

// NewAmount envuelve un decimal sin redondearlo.
func NewAmount(v decimal.Decimal) Amount { return Amount(v) }

// Decimal devuelve el valor con su precisión original.
func (a Amount) Decimal() decimal.Decimal { return decimal.Decimal(a) }

// MarshalJSON redondea half-up a 2 decimales.
func (a Amount) MarshalJSON() ([]byte, error) {
	return []byte(decimal.Decimal(a).StringFixed(2)), nil
}

// UnmarshalJSON acepta número o string (lo usa la caché de reportes).
func (a *Amount) UnmarshalJSON(b []byte) error {
	var v decimal.Decimal
	if err := v.UnmarshalJSON(b); err != nil {
		return err
	}
	*a = Amount(v)
	return nil
}

// ── Query parameters ──────────────────────────────────────────────────────────

// PeriodRequest rango opcional de días inclusivos (YYYY-MM-DD).
// Sin ambos límites se usa la ventana por defecto del reporte; con uno solo, el otro lado queda abierto.
type PeriodRequest struct {
	DataIni string `query:"data_ini"`
	DataFim string `query:"data_fim"`
}

// PricingRequest márgenes objetivo opcionales, ej. margens=0.2,0.35.
type PricingRequest struct {
	Margens string `query:"margens"`
}

// ── Margen por canal ──────────────────────────────────────────────────────────

// ChannelMarginItemDTO fila de GET /analytics/margem-por-canal.
type ChannelMarginItemDTO struct {
	Canal            string `json:"canal"`
	ReceitaLiquida   Amount `json:"receita_liquida"`
	CustoTotal       Amount `json:"custo_total"`
	MargemValor      Amount `json:"margem_valor"`
	MargemPercentual Amount `json:"margem_percentual"`
}

// ChannelMarginReportDTO respuesta de GET /analytics/margem-por-canal.
type ChannelMarginReportDTO struct {
	Itens []ChannelMarginItemDTO `json:"itens"`
}

// ── Curva ABC ─────────────────────────────────────────────────────────────────

// ABCItemDTO fila de GET /analytics/curva-abc.
type ABCItemDTO struct {
	SKU                 string `json:"sku"`
	Nome                string `json:"nome"`
	Receita             Amount `json:"receita"`
	PercentualAcumulado Amount `json:"percentual_acumulado"`
	Classe              string `json:"classe"` // A | B | C
}

// ABCReportDTO respuesta de GET /analytics/curva-abc.
type ABCReportDTO struct {
	Itens []ABCItemDTO `json:"itens"`
}

// ── Precificación sugerida ────────────────────────────────────────────────────

// PriceSuggestionDTO precio sugerido para un margen objetivo.
type PriceSuggestionDTO struct {
	Margem json.Number `json:"margem"` // fracción tal como se configuró, ej. 0.2
	Preco  Amount      `json:"preco"`
}

// PricingItemDTO fila de GET /analytics/precificacao-sugerida.
// PrecoSugerido20/30 se calculan siempre sobre custo_atual, sin depender de los márgenes pedidos.
type PricingItemDTO struct {
	SKU             string               `json:"sku"`
	Nome            string               `json:"nome"`
	CustoAtual      Amount               `json:"custo_atual"`
	PrecoAtual      Amount               `json:"preco_atual"`
	PrecoSugerido20 Amount               `json:"preco_sugerido_20"`
	PrecoSugerido30 Amount               `json:"preco_sugerido_30"`
	Subprecificado  bool                 `json:"subprecificado"`
	Sugestoes       []PriceSuggestionDTO `json:"sugestoes"`
}

// PricingReportDTO respuesta de GET /analytics/precificacao-sugerida.
type PricingReportDTO struct {
	Itens []PricingItemDTO `json:"itens"`
}

// ── Margen por producto ───────────────────────────────────────────────────────

// ProductMarginItemDTO fila de GET /analytics/margem-por-produto.
type ProductMarginItemDTO struct {
	SKU              string      `json:"sku"`
	Nome             string      `json:"nome"`
	VendasQtd        json.Number `json:"vendas_qtd"`
	ReceitaLiquida   Amount      `json:"receita_liquida"`
	CustoTotal       Amount      `json:"custo_total"`
	MargemValor      Amount      `json:"margem_valor"`
	MargemPercentual Amount      `json:"margem_percentual"`
}

// ProductMarginReportDTO respuesta de GET /analytics/margem-por-produto.
type ProductMarginReportDTO struct {
	Itens []ProductMarginItemDTO `json:"itens"`
}
