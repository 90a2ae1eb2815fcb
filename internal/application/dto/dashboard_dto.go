package dto

import "time"

// FinancialSummaryDTO respuesta de GET /analytics/resumo-financeiro.
// Las cifras "_30d" cubren la ventana configurada (30 días por defecto) que termina ahora.
type FinancialSummaryDTO struct {
	Faturamento30d       Amount `json:"faturamento_30d"`
	LucroEstimado30d     Amount `json:"lucro_estimado_30d"`
	ContasPagarAbertas   Amount `json:"contas_pagar_abertas"`   // suma o cantidad según configuración
	ContasReceberAbertas Amount `json:"contas_receber_abertas"` // idem
	SaldoRepasses30d     Amount `json:"saldo_repasses_30d"`
	TicketMedio30d       Amount `json:"ticket_medio_30d"`
}

// MonthlyPnLRequest parámetros de GET /analytics/dre-mensal.
type MonthlyPnLRequest struct {
	Ano int `query:"ano"` // por defecto el año en curso
}

// PnLMonthDTO una línea mensual de la DRE.
type PnLMonthDTO struct {
	Mes              int    `json:"mes"`
	Ano              int    `json:"ano"`
	ReceitasBrutas   Amount `json:"receitas_brutas"`
	DescontosTaxas   Amount `json:"descontos_taxas"`
	CustosProduto    Amount `json:"custos_produto"`
	Despesas         Amount `json:"despesas"`
	ResultadoLiquido Amount `json:"resultado_liquido"`
}

// MonthlyPnLDTO respuesta de GET /analytics/dre-mensal: siempre 12 meses.
type MonthlyPnLDTO struct {
	Ano   int           `json:"ano"`
	Meses []PnLMonthDTO `json:"meses"`
}

// SummaryExportMeta datos de cabecera del PDF del resumen.
type SummaryExportMeta struct {
	TenantID    string
	GeneratedAt time.Time
	WindowDays  int
	OpenMode    string // sum | count
}
