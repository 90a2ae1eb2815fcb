package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

func TestNormalizeObligationStatus(t *testing.T) {
	cases := map[string]entity.ObligationStatus{
		"pendente":   entity.ObligationPending,
		" PAGO ":     entity.ObligationPaid,
		"vencido":    entity.ObligationOverdue,
		"overdue":    entity.ObligationOverdue,
		"Cancelado":  entity.ObligationCancelled,
		"desconhido": entity.ObligationPending,
	}
	for raw, want := range cases {
		assert.Equal(t, want, normalizeObligationStatus(raw), raw)
	}
}

func TestNormalizeOrderStatus(t *testing.T) {
	assert.Equal(t, entity.OrderStatusCancelled, normalizeOrderStatus("CANCELLED"))
	assert.Equal(t, entity.OrderStatusDelivered, normalizeOrderStatus("entregue"))
	assert.Equal(t, entity.OrderStatusOpen, normalizeOrderStatus(""))
}

func TestRawObligationStatuses_OrdenadoYCompleto(t *testing.T) {
	assert.Equal(t, []string{"atrasado", "overdue", "pendente", "pending", "vencido"},
		rawObligationStatuses(entity.ObligationPending, entity.ObligationOverdue))
}

func TestNullableTime(t *testing.T) {
	assert.Nil(t, nullableTime(time.Time{}))
	now := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, now, *nullableTime(now))
}
