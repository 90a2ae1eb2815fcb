package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus estado del pedido tal como llega del canal.
type OrderStatus string

const (
	OrderStatusOpen      OrderStatus = "open"
	OrderStatusInvoiced  OrderStatus = "invoiced"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Order pedido normalizado (snapshot de solo lectura).
// NetTotal ya descuenta descuentos, devoluciones y cancelaciones; debe cumplir NetTotal <= GrossTotal.
type Order struct {
	ID           string
	ExternalCode string // código del pedido en el marketplace/ERP
	ChannelID    string // vacío si el pedido no tiene canal
	Status       OrderStatus
	OrderDate    time.Time
	GrossTotal   decimal.Decimal
	NetTotal     decimal.Decimal
}

// IsCancelled indica si el pedido no genera ingreso.
func (o Order) IsCancelled() bool {
	return o.Status == OrderStatusCancelled
}

// OrderLineItem línea de un pedido. Pertenece a exactamente un Order.
type OrderLineItem struct {
	ID        string
	OrderID   string
	SKU       string
	Name      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	UnitCost  decimal.Decimal // costo unitario conocido al momento de la venta (0 = desconocido)
}

// Revenue ingreso de la línea: cantidad × precio unitario.
func (l OrderLineItem) Revenue() decimal.Decimal {
	return l.Quantity.Mul(l.UnitPrice)
}
