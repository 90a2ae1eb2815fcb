package finance

import (
	"sort"

	"github.com/shopspring/decimal"
)

// ProductMarginRow margen por SKU. Usa solo el costo atribuido a las líneas:
// los costos a nivel de pedido (fee, frete del pedido) no se prorratean entre SKUs.
type ProductMarginRow struct {
	SKU         string
	Name        string
	UnitsSold   decimal.Decimal
	NetRevenue  decimal.Decimal
	TotalCost   decimal.Decimal
	MarginValue decimal.Decimal
	MarginPct   decimal.Decimal
}

// ProductMargins agrega ingreso y costo por SKU para los pedidos del rango con costo atribuido.
// Orden: SKU ascendente.
func ProductMargins(a *CostAttributor, r DateRange) ([]ProductMarginRow, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	bySKU := make(map[string]*ProductMarginRow)
	for _, o := range a.Orders() {
		if o.CostMissing || !r.Contains(o.Order.OrderDate) {
			continue
		}
		for _, l := range o.Lines {
			row, ok := bySKU[l.Item.SKU]
			if !ok {
				row = &ProductMarginRow{SKU: l.Item.SKU, Name: l.Item.Name}
				bySKU[l.Item.SKU] = row
			}
			row.UnitsSold = row.UnitsSold.Add(l.Item.Quantity)
			row.NetRevenue = row.NetRevenue.Add(l.Item.Revenue())
			row.TotalCost = row.TotalCost.Add(l.Cost)
		}
	}

	rows := make([]ProductMarginRow, 0, len(bySKU))
	for _, row := range bySKU {
		row.MarginValue = row.NetRevenue.Sub(row.TotalCost)
		row.MarginPct = MarginPct(row.MarginValue, row.NetRevenue)
		rows = append(rows, *row)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].SKU < rows[j].SKU })
	return rows, nil
}
