package entity

// ChannelType tipo de canal de venta.
type ChannelType string

const (
	ChannelTypeMarketplace ChannelType = "marketplace"
	ChannelTypeERP         ChannelType = "erp"
	ChannelTypeOther       ChannelType = "other"
)

// Channel canal de venta o fulfillment (Shopee, Mercado Livre, Tiny ERP, ...).
type Channel struct {
	ID   string
	Name string
	Type ChannelType
}
