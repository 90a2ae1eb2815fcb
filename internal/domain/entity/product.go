package entity

import "github.com/shopspring/decimal"

// Product SKU del catálogo actual. CurrentCost viene sincronizado del ERP (fuente de verdad del costo).
type Product struct {
	SKU          string
	Name         string
	CurrentCost  decimal.Decimal
	CurrentPrice decimal.Decimal // precio de venta vigente en el canal
	Active       bool
}
