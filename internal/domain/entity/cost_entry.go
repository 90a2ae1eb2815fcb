package entity

import "github.com/shopspring/decimal"

// CostKind tipo de costo atribuible a un pedido o línea.
type CostKind string

const (
	CostKindCOGS      CostKind = "cogs"
	CostKindFee       CostKind = "fee"
	CostKindShipping  CostKind = "shipping"
	CostKindMarketing CostKind = "marketing"
	CostKindTax       CostKind = "tax"
)

// CostKinds lista en orden estable de los tipos soportados.
var CostKinds = []CostKind{CostKindCOGS, CostKindFee, CostKindShipping, CostKindMarketing, CostKindTax}

// Valid reporta si el tipo es uno de los soportados.
func (k CostKind) Valid() bool {
	switch k {
	case CostKindCOGS, CostKindFee, CostKindShipping, CostKindMarketing, CostKindTax:
		return true
	}
	return false
}

// CostEntry costo crudo. La atribución es aditiva: varias entradas por pedido.
// LineItemID vacío = costo a nivel de pedido.
type CostEntry struct {
	OrderID    string
	LineItemID string
	Kind       CostKind
	Amount     decimal.Decimal
}
