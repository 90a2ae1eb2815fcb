package analytics_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/application/report"
	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/finance"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

const tenant = "9f1c6c1e-3a57-4a57-9c55-3f0a3c1d2b10"

type MockLedgerReader struct {
	mock.Mock
}

func (m *MockLedgerReader) ReadLedger(ctx context.Context, tenantID string, from, to time.Time) (*entity.LedgerSnapshot, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.LedgerSnapshot), args.Error(1)
}

type MockFinanceReader struct {
	mock.Mock
}

func (m *MockFinanceReader) ReadFinance(ctx context.Context, tenantID string, from, to time.Time) (*entity.FinanceSnapshot, error) {
	args := m.Called(ctx, tenantID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.FinanceSnapshot), args.Error(1)
}

var now = time.Date(2026, time.June, 30, 18, 0, 0, 0, time.UTC)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newUseCase(ledger *MockLedgerReader, fin *MockFinanceReader, mode finance.OpenObligationsMode) *analytics.SummaryUseCase {
	return analytics.NewSummaryUseCase(ledger, fin, report.NewRunner(nil, nil, logger.Nop(), 0), analytics.SummarySettings{
		WindowDays: 30,
		OpenMode:   mode,
		Location:   time.UTC,
		Clock:      func() time.Time { return now },
	})
}

func summaryLedger() *entity.LedgerSnapshot {
	orders := make([]entity.Order, 0, 4)
	costs := make([]entity.CostEntry, 0, 4)
	for i, id := range []string{"o1", "o2", "o3", "o4"} {
		orders = append(orders, entity.Order{
			ID: id, ChannelID: "ml", Status: entity.OrderStatusDelivered,
			OrderDate:  now.AddDate(0, 0, -(i*5 + 1)),
			GrossTotal: d("3000"), NetTotal: d("3000"),
		})
		costs = append(costs, entity.CostEntry{OrderID: id, Kind: entity.CostKindCOGS, Amount: d("2000")})
	}
	// Fuera de la ventana: no cuenta.
	orders = append(orders, entity.Order{
		ID: "viejo", ChannelID: "ml", Status: entity.OrderStatusDelivered,
		OrderDate: now.AddDate(0, 0, -45), GrossTotal: d("999"), NetTotal: d("999"),
	})
	costs = append(costs, entity.CostEntry{OrderID: "viejo", Kind: entity.CostKindCOGS, Amount: d("1")})
	return &entity.LedgerSnapshot{Orders: orders, Costs: costs}
}

func summaryFinance() *entity.FinanceSnapshot {
	return &entity.FinanceSnapshot{
		Payables: []entity.Payable{
			{ID: "p1", AmountExpected: d("500"), DueDate: now.AddDate(0, 2, 0), Status: entity.ObligationPending},
			{ID: "p2", AmountExpected: d("250.50"), DueDate: now.AddDate(0, -2, 0), Status: entity.ObligationOverdue},
			{ID: "p3", AmountExpected: d("9999"), DueDate: now, Status: entity.ObligationPaid},
		},
		Receivables: []entity.Receivable{
			{ID: "r1", AmountExpected: d("1200"), ForecastDate: now.AddDate(0, 0, 10), Status: entity.ObligationPending},
			{ID: "r2", AmountExpected: d("80"), ForecastDate: now, Status: entity.ObligationCancelled},
		},
		Payouts: []entity.Payout{
			{ID: "po1", SettledOn: now.AddDate(0, 0, -3), GrossAmount: d("1100"), NetAmount: d("1000")},
			{ID: "po2", SettledOn: now.AddDate(0, 0, -60), GrossAmount: d("700"), NetAmount: d("650")},
		},
	}
}

func TestGetSummary_Escenario(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)
	ledger.On("ReadLedger", mock.Anything, tenant, mock.Anything, mock.Anything).Return(summaryLedger(), nil)
	fin.On("ReadFinance", mock.Anything, tenant, mock.Anything, mock.Anything).Return(summaryFinance(), nil)

	out, err := newUseCase(ledger, fin, finance.OpenObligationsSum).GetSummary(context.Background(), tenant)
	require.NoError(t, err)

	body, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"faturamento_30d":12000.00,
		"lucro_estimado_30d":4000.00,
		"contas_pagar_abertas":750.50,
		"contas_receber_abertas":1200.00,
		"saldo_repasses_30d":1000.00,
		"ticket_medio_30d":3000.00
	}`, string(body))
}

func TestGetSummary_ModoConteo(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)
	ledger.On("ReadLedger", mock.Anything, tenant, mock.Anything, mock.Anything).Return(&entity.LedgerSnapshot{}, nil)
	fin.On("ReadFinance", mock.Anything, tenant, mock.Anything, mock.Anything).Return(summaryFinance(), nil)

	out, err := newUseCase(ledger, fin, finance.OpenObligationsCount).GetSummary(context.Background(), tenant)
	require.NoError(t, err)
	assert.True(t, out.ContasPagarAbertas.Decimal().Equal(d("2")))
	assert.True(t, out.ContasReceberAbertas.Decimal().Equal(d("1")))
	assert.True(t, out.TicketMedio30d.Decimal().IsZero())
}

func TestGetSummary_FalloDeFinanzasEsUpstream(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)
	ledger.On("ReadLedger", mock.Anything, tenant, mock.Anything, mock.Anything).Return(&entity.LedgerSnapshot{}, nil)
	fin.On("ReadFinance", mock.Anything, tenant, mock.Anything, mock.Anything).Return(nil, errors.New("503 do ERP"))

	_, err := newUseCase(ledger, fin, finance.OpenObligationsSum).GetSummary(context.Background(), tenant)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
}

// La cabecera del PDF usa el mismo instante que el resumen aunque el reloj avance entre llamadas.
func TestSummaryForExport_UnaSolaLecturaDelReloj(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)
	ledger.On("ReadLedger", mock.Anything, tenant, mock.Anything, mock.Anything).Return(summaryLedger(), nil)
	fin.On("ReadFinance", mock.Anything, tenant, mock.Anything, mock.Anything).Return(summaryFinance(), nil)

	ticks := []time.Time{now.Add(30 * time.Second), now.Add(2 * time.Minute)}
	calls := 0
	uc := analytics.NewSummaryUseCase(ledger, fin, report.NewRunner(nil, nil, logger.Nop(), 0), analytics.SummarySettings{
		WindowDays: 30,
		OpenMode:   finance.OpenObligationsSum,
		Location:   time.UTC,
		Clock: func() time.Time {
			tick := ticks[calls%len(ticks)]
			calls++
			return tick
		},
	})

	out, meta, err := uc.SummaryForExport(context.Background(), tenant)
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.True(t, meta.GeneratedAt.Equal(now), meta.GeneratedAt.String())
	assert.Equal(t, tenant, meta.TenantID)
	assert.Equal(t, 30, meta.WindowDays)
	assert.Equal(t, "sum", meta.OpenMode)
	assert.True(t, out.Faturamento30d.Decimal().Equal(d("12000")))
}

func TestSummaryForExport_ErrorNoArmaCabecera(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)
	ledger.On("ReadLedger", mock.Anything, tenant, mock.Anything, mock.Anything).Return(nil, errors.New("timeout"))
	fin.On("ReadFinance", mock.Anything, tenant, mock.Anything, mock.Anything).Return(summaryFinance(), nil)

	out, meta, err := newUseCase(ledger, fin, finance.OpenObligationsSum).SummaryForExport(context.Background(), tenant)
	assert.ErrorIs(t, err, domain.ErrUpstreamUnavailable)
	assert.Nil(t, out)
	assert.True(t, meta.GeneratedAt.IsZero())
}

func TestGetMonthlyPnL_AnoPorDefectoYDozeMeses(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)
	from := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	ledger.On("ReadLedger", mock.Anything, tenant, from, to).Return(summaryLedger(), nil).Once()
	fin.On("ReadFinance", mock.Anything, tenant, from, to).Return(summaryFinance(), nil).Once()

	out, err := newUseCase(ledger, fin, finance.OpenObligationsSum).GetMonthlyPnL(context.Background(), tenant, dto.MonthlyPnLRequest{})
	require.NoError(t, err)

	assert.Equal(t, 2026, out.Ano)
	require.Len(t, out.Meses, 12)
	june := out.Meses[5]
	assert.Equal(t, 6, june.Mes)
	// Pedidos de junio: o1 (29/06), o2 (24/06), o3 (19/06), o4 (14/06); p3 pagada vence el 30/06.
	assert.True(t, june.ReceitasBrutas.Decimal().Equal(d("12000")), june.ReceitasBrutas.Decimal().String())
	assert.True(t, june.CustosProduto.Decimal().Equal(d("8000")))
	assert.True(t, june.Despesas.Decimal().Equal(d("9999")))
	assert.True(t, june.ResultadoLiquido.Decimal().Equal(d("-5999")))
	ledger.AssertExpectations(t)
	fin.AssertExpectations(t)
}

func TestGetMonthlyPnL_AnoInvalidoNoLee(t *testing.T) {
	ledger, fin := new(MockLedgerReader), new(MockFinanceReader)

	_, err := newUseCase(ledger, fin, finance.OpenObligationsSum).GetMonthlyPnL(context.Background(), tenant, dto.MonthlyPnLRequest{Ano: 1999})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	ledger.AssertNotCalled(t, "ReadLedger", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	fin.AssertNotCalled(t, "ReadFinance", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
