package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

var _ repository.LedgerReader = (*LedgerRepo)(nil)

// LedgerRepo lee pedidos, líneas, costos y canales de un tenant (solo lectura).
type LedgerRepo struct {
	pool *pgxpool.Pool
}

// NewLedgerRepository construye el adaptador.
func NewLedgerRepository(pool *pgxpool.Pool) *LedgerRepo {
	return &LedgerRepo{pool: pool}
}

// Filtro de pedidos del rango: $1 tenant, $2 desde (inclusivo o NULL), $3 hasta (exclusivo o NULL).
const orderRangeFilter = `
	o.tenant_id = $1
	AND ($2::timestamptz IS NULL OR o.order_date >= $2)
	AND ($3::timestamptz IS NULL OR o.order_date <  $3)`

// ReadLedger devuelve el snapshot del rango en una única transacción de lectura.
// Los estados se normalizan; los cancelados se devuelven y el dominio los ignora.
func (r *LedgerRepo) ReadLedger(
	ctx context.Context,
	tenantID string,
	from, to time.Time,
) (*entity.LedgerSnapshot, error) {
	snap := &entity.LedgerSnapshot{}
	args := []any{tenantID, nullableTime(from), nullableTime(to)}

	err := snapshotTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		if snap.Orders, err = r.orders(ctx, tx, args); err != nil {
			return err
		}
		if snap.Items, err = r.items(ctx, tx, args); err != nil {
			return err
		}
		if snap.Costs, err = r.costs(ctx, tx, args); err != nil {
			return err
		}
		snap.Channels, err = r.channels(ctx, tx, tenantID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *LedgerRepo) orders(ctx context.Context, tx pgx.Tx, args []any) ([]entity.Order, error) {
	query := `
	SELECT
	    o.id,
	    COALESCE(o.external_code, ''),
	    COALESCE(o.channel_id, ''),
	    COALESCE(o.status, ''),
	    o.order_date,
	    COALESCE(o.gross_total, 0),
	    COALESCE(o.net_total, 0)
	FROM orders o
	WHERE` + orderRangeFilter + `
	ORDER BY o.order_date, o.id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.orders: %w", err)
	}
	defer rows.Close()

	var out []entity.Order
	for rows.Next() {
		var o entity.Order
		var status string
		if err := rows.Scan(&o.ID, &o.ExternalCode, &o.ChannelID, &status, &o.OrderDate, &o.GrossTotal, &o.NetTotal); err != nil {
			return nil, fmt.Errorf("ledger.orders scan: %w", err)
		}
		o.Status = normalizeOrderStatus(status)
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *LedgerRepo) items(ctx context.Context, tx pgx.Tx, args []any) ([]entity.OrderLineItem, error) {
	query := `
	SELECT
	    i.id,
	    i.order_id,
	    i.sku,
	    COALESCE(i.name, ''),
	    i.quantity,
	    i.unit_price,
	    COALESCE(i.unit_cost, 0)
	FROM order_items i
	JOIN orders o ON o.id = i.order_id AND o.tenant_id = i.tenant_id
	WHERE` + orderRangeFilter + `
	ORDER BY o.order_date, o.id, i.id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.items: %w", err)
	}
	defer rows.Close()

	var out []entity.OrderLineItem
	for rows.Next() {
		var it entity.OrderLineItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.SKU, &it.Name, &it.Quantity, &it.UnitPrice, &it.UnitCost); err != nil {
			return nil, fmt.Errorf("ledger.items scan: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *LedgerRepo) costs(ctx context.Context, tx pgx.Tx, args []any) ([]entity.CostEntry, error) {
	query := `
	SELECT
	    c.order_id,
	    COALESCE(c.line_item_id, ''),
	    c.kind,
	    c.amount
	FROM order_costs c
	JOIN orders o ON o.id = c.order_id AND o.tenant_id = c.tenant_id
	WHERE` + orderRangeFilter + `
	ORDER BY o.order_date, o.id, c.id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ledger.costs: %w", err)
	}
	defer rows.Close()

	var out []entity.CostEntry
	for rows.Next() {
		var c entity.CostEntry
		var kind string
		if err := rows.Scan(&c.OrderID, &c.LineItemID, &kind, &c.Amount); err != nil {
			return nil, fmt.Errorf("ledger.costs scan: %w", err)
		}
		c.Kind = entity.CostKind(kind)
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *LedgerRepo) channels(ctx context.Context, tx pgx.Tx, tenantID string) ([]entity.Channel, error) {
	const query = `
	SELECT id, name, COALESCE(channel_type, '')
	FROM sales_channels
	WHERE tenant_id = $1
	ORDER BY name, id`

	rows, err := tx.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("ledger.channels: %w", err)
	}
	defer rows.Close()

	var out []entity.Channel
	for rows.Next() {
		var ch entity.Channel
		var kind string
		if err := rows.Scan(&ch.ID, &ch.Name, &kind); err != nil {
			return nil, fmt.Errorf("ledger.channels scan: %w", err)
		}
		ch.Type = normalizeChannelType(kind)
		out = append(out, ch)
	}
	return out, rows.Err()
}
