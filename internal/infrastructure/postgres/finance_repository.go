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

var _ repository.FinanceReader = (*FinanceRepo)(nil)

// FinanceRepo lee cuentas por pagar/cobrar y repasses de un tenant.
type FinanceRepo struct {
	pool *pgxpool.Pool
}

// NewFinanceRepository construye el adaptador.
func NewFinanceRepository(pool *pgxpool.Pool) *FinanceRepo {
	return &FinanceRepo{pool: pool}
}

// ReadFinance devuelve las cuentas abiertas (sin filtro de vencimiento), las pagadas que
// vencen en [from, to) y los repasses acreditados en [from, to).
func (r *FinanceRepo) ReadFinance(
	ctx context.Context,
	tenantID string,
	from, to time.Time,
) (*entity.FinanceSnapshot, error) {
	snap := &entity.FinanceSnapshot{}
	open := rawObligationStatuses(entity.ObligationPending, entity.ObligationOverdue)
	paid := rawObligationStatuses(entity.ObligationPaid)
	args := []any{tenantID, nullableTime(from), nullableTime(to), open, paid}

	err := snapshotTx(ctx, r.pool, func(tx pgx.Tx) error {
		var err error
		if snap.Payables, err = r.payables(ctx, tx, args); err != nil {
			return err
		}
		if snap.Receivables, err = r.receivables(ctx, tx, args); err != nil {
			return err
		}
		snap.Payouts, err = r.payouts(ctx, tx, args[:3])
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (r *FinanceRepo) payables(ctx context.Context, tx pgx.Tx, args []any) ([]entity.Payable, error) {
	const query = `
	SELECT id, supplier, COALESCE(category, ''), amount_expected, due_date, status
	FROM payables
	WHERE tenant_id = $1
	  AND (
	        lower(status) = ANY($4)
	     OR (lower(status) = ANY($5)
	         AND ($2::timestamptz IS NULL OR due_date >= $2)
	         AND ($3::timestamptz IS NULL OR due_date <  $3))
	  )
	ORDER BY due_date, id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finance.payables: %w", err)
	}
	defer rows.Close()

	var out []entity.Payable
	for rows.Next() {
		var p entity.Payable
		var status string
		if err := rows.Scan(&p.ID, &p.Supplier, &p.Category, &p.AmountExpected, &p.DueDate, &status); err != nil {
			return nil, fmt.Errorf("finance.payables scan: %w", err)
		}
		p.Status = normalizeObligationStatus(status)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *FinanceRepo) receivables(ctx context.Context, tx pgx.Tx, args []any) ([]entity.Receivable, error) {
	const query = `
	SELECT id, reference, amount_expected, forecast_date, status
	FROM receivables
	WHERE tenant_id = $1
	  AND (
	        lower(status) = ANY($4)
	     OR (lower(status) = ANY($5)
	         AND ($2::timestamptz IS NULL OR forecast_date >= $2)
	         AND ($3::timestamptz IS NULL OR forecast_date <  $3))
	  )
	ORDER BY forecast_date NULLS LAST, id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finance.receivables: %w", err)
	}
	defer rows.Close()

	var out []entity.Receivable
	for rows.Next() {
		var rc entity.Receivable
		var status string
		var forecast *time.Time
		if err := rows.Scan(&rc.ID, &rc.Reference, &rc.AmountExpected, &forecast, &status); err != nil {
			return nil, fmt.Errorf("finance.receivables scan: %w", err)
		}
		if forecast != nil {
			rc.ForecastDate = *forecast
		}
		rc.Status = normalizeObligationStatus(status)
		out = append(out, rc)
	}
	return out, rows.Err()
}

func (r *FinanceRepo) payouts(ctx context.Context, tx pgx.Tx, args []any) ([]entity.Payout, error) {
	const query = `
	SELECT id, period_reference, settled_on, COALESCE(gross_amount, 0), COALESCE(net_amount, 0)
	FROM payouts
	WHERE tenant_id = $1
	  AND settled_on IS NOT NULL
	  AND ($2::timestamptz IS NULL OR settled_on >= $2)
	  AND ($3::timestamptz IS NULL OR settled_on <  $3)
	ORDER BY settled_on, id`

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("finance.payouts: %w", err)
	}
	defer rows.Close()

	var out []entity.Payout
	for rows.Next() {
		var p entity.Payout
		if err := rows.Scan(&p.ID, &p.PeriodReference, &p.SettledOn, &p.GrossAmount, &p.NetAmount); err != nil {
			return nil, fmt.Errorf("finance.payouts scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}
