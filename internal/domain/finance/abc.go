package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ABCClass clase de la curva ABC.
type ABCClass string

const (
	ClassA ABCClass = "A"
	ClassB ABCClass = "B"
	ClassC ABCClass = "C"
)

// Umbrales inclusivos sobre el porcentaje acumulado.
var (
	abcThresholdA = decimal.NewFromInt(80)
	abcThresholdB = decimal.NewFromInt(95)
)

// AbcRow SKU clasificado por contribución acumulada al ingreso.
type AbcRow struct {
	SKU           string
	Name          string
	Revenue       decimal.Decimal
	CumulativePct decimal.Decimal
	Class         ABCClass
}

// ClassifyCumulative aplica los umbrales: A hasta 80 (inclusive), B hasta 95, luego C.
func ClassifyCumulative(cumulativePct decimal.Decimal) ABCClass {
	switch {
	case cumulativePct.LessThanOrEqual(abcThresholdA):
		return ClassA
	case cumulativePct.LessThanOrEqual(abcThresholdB):
		return ClassB
	default:
		return ClassC
	}
}

// ClassifyABC ordena los SKUs por ingreso (desc, empate por SKU asc) y los clasifica por
// porcentaje acumulado. La última fila siempre acumula exactamente 100.
// Ingreso total cero devuelve una secuencia vacía, no un error.
func ClassifyABC(a *CostAttributor, r DateRange) ([]AbcRow, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	bySKU := make(map[string]*AbcRow)
	for _, o := range a.Orders() {
		if !r.Contains(o.Order.OrderDate) {
			continue
		}
		for _, l := range o.Lines {
			row, ok := bySKU[l.Item.SKU]
			if !ok {
				row = &AbcRow{SKU: l.Item.SKU, Name: l.Item.Name}
				bySKU[l.Item.SKU] = row
			}
			row.Revenue = row.Revenue.Add(l.Item.Revenue())
		}
	}

	rows := make([]AbcRow, 0, len(bySKU))
	total := decimal.Zero
	for _, row := range bySKU {
		if row.Revenue.IsZero() {
			continue
		}
		rows = append(rows, *row)
		total = total.Add(row.Revenue)
	}
	if total.IsZero() {
		return []AbcRow{}, nil
	}

	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].Revenue.Equal(rows[j].Revenue) {
			return rows[i].Revenue.GreaterThan(rows[j].Revenue)
		}
		return rows[i].SKU < rows[j].SKU
	})

	running := decimal.Zero
	for i := range rows {
		running = running.Add(rows[i].Revenue)
		if i == len(rows)-1 {
			// running == total: evita residuos de la división
			rows[i].CumulativePct = hundred
		} else {
			rows[i].CumulativePct = running.Div(total).Mul(hundred)
		}
		rows[i].Class = ClassifyCumulative(rows[i].CumulativePct)
	}
	return rows, nil
}
