package finance_test

import (
	"fmt"
	"reflect"
	"testing"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/finance"
)

// randomLedger genera un snapshot reproducible a partir de la semilla.
func randomLedger(seed uint64) *entity.LedgerSnapshot {
	f := gofakeit.New(seed)
	channels := []entity.Channel{
		{ID: "shopee", Name: "Shopee", Type: entity.ChannelTypeMarketplace},
		{ID: "ml", Name: "Mercado Livre", Type: entity.ChannelTypeMarketplace},
		{ID: "tiny", Name: "Tiny", Type: entity.ChannelTypeERP},
	}
	skus := []string{"SKU-001", "SKU-002", "SKU-003", "SKU-004", "SKU-005", "SKU-006"}
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, time.December, 31, 0, 0, 0, 0, time.UTC)

	snap := &entity.LedgerSnapshot{Channels: channels}
	orders := f.IntRange(1, 40)
	for i := 0; i < orders; i++ {
		id := fmt.Sprintf("o-%d", i)
		gross := decimal.Zero
		lines := f.IntRange(1, 4)
		for j := 0; j < lines; j++ {
			it := entity.OrderLineItem{
				ID:        fmt.Sprintf("%s-l%d", id, j),
				OrderID:   id,
				SKU:       f.RandomString(skus),
				Name:      f.ProductName(),
				Quantity:  decimal.NewFromInt(int64(f.IntRange(1, 5))),
				UnitPrice: decimal.NewFromFloat(f.Price(1, 500)).Round(2),
				UnitCost:  decimal.NewFromFloat(f.Price(0.5, 250)).Round(2),
			}
			gross = gross.Add(it.Revenue())
			snap.Items = append(snap.Items, it)
		}
		discount := gross.Mul(decimal.NewFromFloat(f.Float64Range(0, 0.2))).Round(2)
		snap.Orders = append(snap.Orders, entity.Order{
			ID:         id,
			ChannelID:  channels[f.IntRange(0, len(channels)-1)].ID,
			Status:     entity.OrderStatusDelivered,
			OrderDate:  f.DateRange(from, to),
			GrossTotal: gross,
			NetTotal:   gross.Sub(discount),
		})
		snap.Costs = append(snap.Costs,
			entity.CostEntry{OrderID: id, Kind: entity.CostKindFee, Amount: decimal.NewFromFloat(f.Price(0, 30)).Round(2)},
			entity.CostEntry{OrderID: id, Kind: entity.CostKindShipping, Amount: decimal.NewFromFloat(f.Price(0, 20)).Round(2)},
		)
	}
	return snap
}

func TestProperties_MargenIgualReceitaMenosCusto(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		snap := randomLedger(seed)
		rows, err := finance.ChannelMargins(finance.NewCostAttributor(snap), snap.Channels, finance.DateRange{})
		require.NoError(t, err)
		for _, r := range rows {
			assert.True(t, r.MarginValue.Equal(r.NetRevenue.Sub(r.TotalCost)), "seed %d canal %s", seed, r.Channel)
			if r.NetRevenue.IsZero() {
				assert.True(t, r.MarginPct.IsZero())
			}
		}
	}
}

func TestProperties_ABCMonotonoYCierraEnCien(t *testing.T) {
	for seed := uint64(1); seed <= 25; seed++ {
		snap := randomLedger(seed)
		rows, err := finance.ClassifyABC(finance.NewCostAttributor(snap), finance.DateRange{})
		require.NoError(t, err)
		if len(rows) == 0 {
			continue
		}
		prev := decimal.Zero
		for i, r := range rows {
			assert.True(t, r.CumulativePct.GreaterThanOrEqual(prev), "seed %d fila %d", seed, i)
			assert.Equal(t, finance.ClassifyCumulative(r.CumulativePct), r.Class)
			if i > 0 && rows[i-1].Revenue.Equal(r.Revenue) {
				assert.Less(t, rows[i-1].SKU, r.SKU, "empates por SKU ascendente")
			}
			prev = r.CumulativePct
		}
		last := rows[len(rows)-1].CumulativePct
		assert.True(t, last.Sub(decimal.NewFromInt(100)).Abs().LessThan(decimal.RequireFromString("0.000001")))
	}
}

func TestProperties_PrecioSugerido(t *testing.T) {
	targets, err := finance.NewMarginTargets(finance.DefaultMarginTargets)
	require.NoError(t, err)
	f := gofakeit.New(7)
	for i := 0; i < 50; i++ {
		c := decimal.NewFromFloat(f.Price(0.01, 1000)).Round(2)
		p20 := finance.SuggestPrice(c, targets[0])
		p30 := finance.SuggestPrice(c, targets[1])
		assert.True(t, p20.Equal(c.Div(decimal.RequireFromString("0.8"))))
		assert.True(t, p30.Equal(c.Div(decimal.RequireFromString("0.7"))))
		assert.True(t, p30.GreaterThan(p20), "costo %s", c)
	}
}

func TestProperties_Idempotencia(t *testing.T) {
	snap := randomLedger(42)
	now := time.Date(2026, time.July, 1, 12, 0, 0, 0, time.UTC)

	run := func() []interface{} {
		a := finance.NewCostAttributor(snap)
		margins, _ := finance.ChannelMargins(a, snap.Channels, finance.DateRange{})
		abc, _ := finance.ClassifyABC(a, finance.DateRange{})
		products, _ := finance.ProductMargins(a, finance.DateRange{})
		summary, _ := finance.SummarizeFinancials(a, nil, finance.SummaryParams{Now: now, WindowDays: 30})
		pnl, _ := finance.MonthlyPnL(a, nil, 2026, time.UTC)
		return []interface{}{margins, abc, products, summary, pnl}
	}

	first, second := run(), run()
	for i := range first {
		assert.True(t, reflect.DeepEqual(first[i], second[i]), "resultado %d difiere entre ejecuciones", i)
	}
}
