package entity

// LedgerSnapshot datos de ventas normalizados para un tenant y rango: pedidos, líneas, costos y canales.
// Es inmutable durante el cálculo de un reporte.
type LedgerSnapshot struct {
	Orders   []Order
	Items    []OrderLineItem
	Costs    []CostEntry
	Channels []Channel
}

// FinanceSnapshot cuentas por pagar/cobrar y repasses de un tenant.
type FinanceSnapshot struct {
	Payables    []Payable
	Receivables []Receivable
	Payouts     []Payout
}
