package finance

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
)

// UnassignedChannelName nombre del grupo de pedidos sin canal.
const UnassignedChannelName = "N/A"

var hundred = decimal.NewFromInt(100)

// MarginRow margen de un canal. Derivado, no persistido.
type MarginRow struct {
	ChannelID   string
	Channel     string
	NetRevenue  decimal.Decimal
	TotalCost   decimal.Decimal
	MarginValue decimal.Decimal // NetRevenue - TotalCost
	MarginPct   decimal.Decimal // MarginValue / NetRevenue * 100; 0 si NetRevenue = 0
}

// MarginPct margen porcentual protegido contra división por cero.
func MarginPct(margin, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return margin.Div(revenue).Mul(hundred)
}

// ChannelMargins agrupa por canal los pedidos del rango con costo atribuido.
// Canales sin pedidos no aparecen. Orden: nombre del canal ascendente, luego id.
func ChannelMargins(a *CostAttributor, channels []entity.Channel, r DateRange) ([]MarginRow, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	names := make(map[string]string, len(channels))
	for _, ch := range channels {
		names[ch.ID] = ch.Name
	}

	groups := make(map[string]*MarginRow)
	for _, o := range a.Orders() {
		if o.CostMissing || !r.Contains(o.Order.OrderDate) {
			continue
		}
		g, ok := groups[o.Order.ChannelID]
		if !ok {
			g = &MarginRow{ChannelID: o.Order.ChannelID, Channel: channelName(names, o.Order.ChannelID)}
			groups[o.Order.ChannelID] = g
		}
		g.NetRevenue = g.NetRevenue.Add(o.Order.NetTotal)
		g.TotalCost = g.TotalCost.Add(o.Cost.Total)
	}

	rows := make([]MarginRow, 0, len(groups))
	for _, g := range groups {
		g.MarginValue = g.NetRevenue.Sub(g.TotalCost)
		g.MarginPct = MarginPct(g.MarginValue, g.NetRevenue)
		rows = append(rows, *g)
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Channel != rows[j].Channel {
			return rows[i].Channel < rows[j].Channel
		}
		return rows[i].ChannelID < rows[j].ChannelID
	})
	return rows, nil
}

func channelName(names map[string]string, id string) string {
	if id == "" {
		return UnassignedChannelName
	}
	if n, ok := names[id]; ok && n != "" {
		return n
	}
	return id
}
