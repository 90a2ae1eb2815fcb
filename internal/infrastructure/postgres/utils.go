package postgres

import (
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// nullableTime convierte un límite cero ("sin límite") en NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// Los importadores guardan el estado tal como llega del canal o del ERP (inglés o portugués).
var (
	obligationStatusAliases = map[string]entity.ObligationStatus{
		"pending":   entity.ObligationPending,
		"pendente":  entity.ObligationPending,
		"paid":      entity.ObligationPaid,
		"pago":      entity.ObligationPaid,
		"overdue":   entity.ObligationOverdue,
		"vencido":   entity.ObligationOverdue,
		"atrasado":  entity.ObligationOverdue,
		"cancelled": entity.ObligationCancelled,
		"canceled":  entity.ObligationCancelled,
		"cancelado": entity.ObligationCancelled,
	}
	orderStatusAliases = map[string]entity.OrderStatus{
		"open":      entity.OrderStatusOpen,
		"aberto":    entity.OrderStatusOpen,
		"unpaid":    entity.OrderStatusOpen,
		"invoiced":  entity.OrderStatusInvoiced,
		"faturado":  entity.OrderStatusInvoiced,
		"shipped":   entity.OrderStatusShipped,
		"enviado":   entity.OrderStatusShipped,
		"delivered": entity.OrderStatusDelivered,
		"entregue":  entity.OrderStatusDelivered,
		"completed": entity.OrderStatusDelivered,
		"cancelled": entity.OrderStatusCancelled,
		"canceled":  entity.OrderStatusCancelled,
		"cancelado": entity.OrderStatusCancelled,
	}
)

// normalizeObligationStatus traduce el estado crudo; lo desconocido se trata como pendiente.
func normalizeObligationStatus(raw string) entity.ObligationStatus {
	if s, ok := obligationStatusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return entity.ObligationPending
}

// normalizeOrderStatus traduce el estado crudo; lo desconocido se trata como abierto.
func normalizeOrderStatus(raw string) entity.OrderStatus {
	if s, ok := orderStatusAliases[strings.ToLower(strings.TrimSpace(raw))]; ok {
		return s
	}
	return entity.OrderStatusOpen
}

// rawObligationStatuses devuelve todos los alias crudos de los estados pedidos (para ANY($n)).
func rawObligationStatuses(statuses ...entity.ObligationStatus) []string {
	var out []string
	for alias, s := range obligationStatusAliases {
		for _, want := range statuses {
			if s == want {
				out = append(out, alias)
			}
		}
	}
	sort.Strings(out)
	return out
}

// normalizeChannelType traduce tipo_canal del cadastro de lojas.
func normalizeChannelType(raw string) entity.ChannelType {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "marketplace", "shopee", "mercado_livre", "mercadolivre":
		return entity.ChannelTypeMarketplace
	case "erp", "tiny":
		return entity.ChannelTypeERP
	default:
		return entity.ChannelTypeOther
	}
}
