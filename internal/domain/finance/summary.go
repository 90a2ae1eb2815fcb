package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// DefaultSummaryWindowDays ventana del resumen financiero.
const DefaultSummaryWindowDays = 30

// OpenObligationsMode cómo se cuantifican las cuentas abiertas.
type OpenObligationsMode string

const (
	OpenObligationsSum   OpenObligationsMode = "sum"   // suma de amount_expected
	OpenObligationsCount OpenObligationsMode = "count" // cantidad de cuentas
)

// SummaryParams parámetros explícitos del resumen. Now lo provee el llamador.
type SummaryParams struct {
	Now        time.Time
	WindowDays int
	OpenMode   OpenObligationsMode
}

// FinancialSummary cifras de cabecera de la ventana móvil.
type FinancialSummary struct {
	WindowStart     time.Time
	WindowEnd       time.Time
	Revenue         decimal.Decimal
	EstimatedProfit decimal.Decimal
	OpenPayables    decimal.Decimal
	OpenReceivables decimal.Decimal
	PayoutBalance   decimal.Decimal
	AverageTicket   decimal.Decimal
	OrderCount      int
}

// SummarizeFinancials calcula el resumen sobre [Now - WindowDays, Now].
// Las cuentas abiertas (pending/overdue) se cuentan sin filtrar por vencimiento.
func SummarizeFinancials(a *CostAttributor, fin *entity.FinanceSnapshot, p SummaryParams) (FinancialSummary, error) {
	if p.WindowDays <= 0 {
		return FinancialSummary{}, fmt.Errorf("%w: ventana de %d días", domain.ErrInvalidInput, p.WindowDays)
	}
	if p.Now.IsZero() {
		return FinancialSummary{}, fmt.Errorf("%w: instante de referencia vacío", domain.ErrInvalidInput)
	}
	mode := p.OpenMode
	if mode == "" {
		mode = OpenObligationsSum
	}
	if mode != OpenObligationsSum && mode != OpenObligationsCount {
		return FinancialSummary{}, fmt.Errorf("%w: modo %q", domain.ErrInvalidInput, mode)
	}

	s := FinancialSummary{WindowStart: p.Now.AddDate(0, 0, -p.WindowDays), WindowEnd: p.Now}
	inWindow := func(t time.Time) bool {
		return !t.Before(s.WindowStart) && !t.After(s.WindowEnd)
	}

	cost := decimal.Zero
	for _, o := range a.Orders() {
		if o.CostMissing || !inWindow(o.Order.OrderDate) {
			continue
		}
		s.Revenue = s.Revenue.Add(o.Order.NetTotal)
		cost = cost.Add(o.Cost.Total)
		s.OrderCount++
	}
	s.EstimatedProfit = s.Revenue.Sub(cost)
	if s.OrderCount > 0 {
		s.AverageTicket = s.Revenue.Div(decimal.NewFromInt(int64(s.OrderCount)))
	}

	if fin != nil {
		var payables, receivables openTally
		for _, pb := range fin.Payables {
			if pb.Status.IsOpen() {
				payables.add(pb.AmountExpected)
			}
		}
		for _, rc := range fin.Receivables {
			if rc.Status.IsOpen() {
				receivables.add(rc.AmountExpected)
			}
		}
		s.OpenPayables = payables.value(mode)
		s.OpenReceivables = receivables.value(mode)

		for _, po := range fin.Payouts {
			if inWindow(po.SettledOn) {
				s.PayoutBalance = s.PayoutBalance.Add(po.NetAmount)
			}
		}
	}
	return s, nil
}

type openTally struct {
	sum   decimal.Decimal
	count int64
}

func (t *openTally) add(amount decimal.Decimal) {
	t.sum = t.sum.Add(amount)
	t.count++
}

func (t openTally) value(mode OpenObligationsMode) decimal.Decimal {
	if mode == OpenObligationsCount {
		return decimal.NewFromInt(t.count)
	}
	return t.sum
}
