package finance

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// DefaultMarginTargets márgenes objetivo por defecto (20% conservador, 30% agresivo).
var DefaultMarginTargets = []decimal.Decimal{
	decimal.RequireFromString("0.20"),
	decimal.RequireFromString("0.30"),
}

// MarginTargets márgenes objetivo validados, sin duplicados y en orden ascendente.
type MarginTargets []decimal.Decimal

// NewMarginTargets valida que cada objetivo esté en (0, 1).
func NewMarginTargets(raw []decimal.Decimal) (MarginTargets, error) {
	if len(raw) == 0 {
		return nil, fmt.Errorf("%w: se requiere al menos un margen", domain.ErrInvalidMarginTarget)
	}
	out := make(MarginTargets, 0, len(raw))
	for _, t := range raw {
		if !t.IsPositive() || t.GreaterThanOrEqual(decimal.NewFromInt(1)) {
			return nil, fmt.Errorf("%w: %s fuera de (0, 1)", domain.ErrInvalidMarginTarget, t.String())
		}
		dup := false
		for _, seen := range out {
			if seen.Equal(t) {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, t)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].LessThan(out[j]) })
	return out, nil
}

// Lowest margen más bajo (el umbral de subprecificación).
func (m MarginTargets) Lowest() decimal.Decimal {
	return m[0]
}

// SuggestPrice precio que deja el margen objetivo sobre el costo: costo / (1 - objetivo).
func SuggestPrice(cost, target decimal.Decimal) decimal.Decimal {
	return cost.Div(decimal.NewFromInt(1).Sub(target))
}

// PriceSuggestion precio sugerido para un margen objetivo.
type PriceSuggestion struct {
	Target decimal.Decimal
	Price  decimal.Decimal
}

// PricingRow sugerencias de precio de un SKU del catálogo.
type PricingRow struct {
	SKU          string
	Name         string
	CurrentCost  decimal.Decimal
	CurrentPrice decimal.Decimal
	Suggestions  []PriceSuggestion // mismo orden que MarginTargets
	Underpriced  bool              // precio actual < precio sugerido del margen más bajo
}

// SuggestedFor devuelve el precio sugerido para un objetivo, si fue calculado.
func (r PricingRow) SuggestedFor(target decimal.Decimal) (decimal.Decimal, bool) {
	for _, s := range r.Suggestions {
		if s.Target.Equal(target) {
			return s.Price, true
		}
	}
	return decimal.Zero, false
}

// SuggestPricing calcula los precios sugeridos del catálogo vigente (sin filtro de fechas).
// Productos inactivos se omiten; costo o precio negativos se excluyen y se registran.
// Orden: SKU ascendente.
func SuggestPricing(products []entity.Product, targets MarginTargets) ([]PricingRow, []Exclusion, error) {
	targets, err := NewMarginTargets(targets)
	if err != nil {
		return nil, nil, err
	}

	var excluded []Exclusion
	rows := make([]PricingRow, 0, len(products))
	for _, p := range products {
		if !p.Active {
			continue
		}
		if p.CurrentCost.IsNegative() || p.CurrentPrice.IsNegative() {
			excluded = append(excluded, Exclusion{RecordID: p.SKU, Reason: ReasonInvalidProduct})
			continue
		}
		row := PricingRow{
			SKU:          p.SKU,
			Name:         p.Name,
			CurrentCost:  p.CurrentCost,
			CurrentPrice: p.CurrentPrice,
			Suggestions:  make([]PriceSuggestion, 0, len(targets)),
		}
		for _, t := range targets {
			row.Suggestions = append(row.Suggestions, PriceSuggestion{Target: t, Price: SuggestPrice(p.CurrentCost, t)})
		}
		row.Underpriced = p.CurrentPrice.LessThan(row.Suggestions[0].Price)
		rows = append(rows, row)
	}
	sort.SliceStable(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })
	return rows, excluded, nil
}
