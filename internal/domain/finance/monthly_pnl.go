package finance

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// PnLMonth línea de la DRE (demonstração de resultado) de un mes.
//
//	Result = GrossRevenue - Deductions - ProductCosts - Expenses
//
// Deductions = (bruto - líquido) + fee + shipping; ProductCosts = cogs + marketing + tax.
type PnLMonth struct {
	Year         int
	Month        int
	GrossRevenue decimal.Decimal
	Deductions   decimal.Decimal
	ProductCosts decimal.Decimal
	Expenses     decimal.Decimal // cuentas por pagar pagadas con vencimiento en el mes
	Result       decimal.Decimal
}

// YearRange rango que cubre el año calendario completo en loc.
func YearRange(year int, loc *time.Location) DateRange {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	return DateRange{Start: start, End: start.AddDate(1, 0, 0)}
}

// ValidateYear acepta años de cuatro dígitos desde 2000.
func ValidateYear(year int) error {
	if year < 2000 || year > 9999 {
		return fmt.Errorf("%w: año %d", domain.ErrInvalidInput, year)
	}
	return nil
}

// MonthlyPnL arma los 12 meses del año. Los pedidos sin costo atribuido se omiten.
func MonthlyPnL(a *CostAttributor, fin *entity.FinanceSnapshot, year int, loc *time.Location) ([]PnLMonth, error) {
	if err := ValidateYear(year); err != nil {
		return nil, err
	}
	if loc == nil {
		loc = time.UTC
	}

	months := make([]PnLMonth, 12)
	for i := range months {
		months[i] = PnLMonth{Year: year, Month: i + 1}
	}
	slot := func(t time.Time) *PnLMonth {
		t = t.In(loc)
		if t.Year() != year {
			return nil
		}
		return &months[int(t.Month())-1]
	}

	for _, o := range a.Orders() {
		if o.CostMissing {
			continue
		}
		m := slot(o.Order.OrderDate)
		if m == nil {
			continue
		}
		m.GrossRevenue = m.GrossRevenue.Add(o.Order.GrossTotal)
		m.Deductions = m.Deductions.
			Add(o.Order.GrossTotal.Sub(o.Order.NetTotal)).
			Add(o.Cost.Of(entity.CostKindFee)).
			Add(o.Cost.Of(entity.CostKindShipping))
		m.ProductCosts = m.ProductCosts.
			Add(o.Cost.Of(entity.CostKindCOGS)).
			Add(o.Cost.Of(entity.CostKindMarketing)).
			Add(o.Cost.Of(entity.CostKindTax))
	}

	if fin != nil {
		for _, p := range fin.Payables {
			if p.Status != entity.ObligationPaid {
				continue
			}
			if m := slot(p.DueDate); m != nil {
				m.Expenses = m.Expenses.Add(p.AmountExpected)
			}
		}
	}

	for i := range months {
		m := &months[i]
		m.Result = m.GrossRevenue.Sub(m.Deductions).Sub(m.ProductCosts).Sub(m.Expenses)
	}
	return months, nil
}
