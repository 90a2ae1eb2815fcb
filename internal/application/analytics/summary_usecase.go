// Package analytics contiene los casos de uso del resumen financiero del
// dashboard y de la DRE mensual.
package analytics

import (
	"context"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/application/report"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/finance"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

// SummarySettings parámetros del resumen financiero.
type SummarySettings struct {
	WindowDays int
	OpenMode   finance.OpenObligationsMode
	Location   *time.Location
	Clock      func() time.Time // nil = time.Now
}

// SummaryUseCase genera el resumen de los últimos N días y la DRE mensual.
//
// Fuente de datos: LedgerReader (pedidos y costos) y FinanceReader (cuentas y repasses),
// leídos en paralelo para el tenant indicado.
type SummaryUseCase struct {
	ledger  repository.LedgerReader
	finance repository.FinanceReader
	runner  *report.Runner
	cfg     SummarySettings
}

// NewSummaryUseCase construye el caso de uso.
func NewSummaryUseCase(
	ledger repository.LedgerReader,
	fin repository.FinanceReader,
	runner *report.Runner,
	cfg SummarySettings,
) *SummaryUseCase {
	if cfg.WindowDays <= 0 {
		cfg.WindowDays = finance.DefaultSummaryWindowDays
	}
	if cfg.OpenMode == "" {
		cfg.OpenMode = finance.OpenObligationsSum
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &SummaryUseCase{ledger: ledger, finance: fin, runner: runner, cfg: cfg}
}

// GetSummary construye GET /analytics/resumo-financeiro sobre [ahora - WindowDays, ahora].
func (uc *SummaryUseCase) GetSummary(ctx context.Context, tenantID string) (*dto.FinancialSummaryDTO, error) {
	return uc.summaryAt(ctx, tenantID, uc.cfg.Clock().In(uc.cfg.Location))
}

// SummaryForExport devuelve el resumen y la cabecera del PDF a partir de una sola lectura del reloj.
// GeneratedAt es el minuto de la clave de caché: el mismo instante que describe el resumen servido.
func (uc *SummaryUseCase) SummaryForExport(
	ctx context.Context,
	tenantID string,
) (*dto.FinancialSummaryDTO, dto.SummaryExportMeta, error) {
	now := uc.cfg.Clock().In(uc.cfg.Location)
	s, err := uc.summaryAt(ctx, tenantID, now)
	if err != nil {
		return nil, dto.SummaryExportMeta{}, err
	}
	return s, dto.SummaryExportMeta{
		TenantID:    tenantID,
		GeneratedAt: now.Truncate(time.Minute),
		WindowDays:  uc.cfg.WindowDays,
		OpenMode:    string(uc.cfg.OpenMode),
	}, nil
}

func (uc *SummaryUseCase) summaryAt(ctx context.Context, tenantID string, now time.Time) (*dto.FinancialSummaryDTO, error) {
	// Se lee por días completos; el dominio recorta la ventana exacta.
	fetch := finance.TrailingDays(now, uc.cfg.WindowDays+1)
	key := report.Key(tenantID, report.Summary,
		now.Truncate(time.Minute).Format(time.RFC3339), strconv.Itoa(uc.cfg.WindowDays), string(uc.cfg.OpenMode))

	return report.Load(ctx, uc.runner, report.Summary, key, func(ctx context.Context) (*dto.FinancialSummaryDTO, error) {
		ledger, fin, err := uc.readBoth(ctx, tenantID, fetch)
		if err != nil {
			return nil, err
		}
		attributor := finance.NewCostAttributor(ledger)
		s, err := finance.SummarizeFinancials(attributor, fin, finance.SummaryParams{
			Now:        now,
			WindowDays: uc.cfg.WindowDays,
			OpenMode:   uc.cfg.OpenMode,
		})
		if err != nil {
			return nil, err
		}
		uc.runner.Excluded(tenantID, report.Summary, attributor.Exclusions(true))

		return &dto.FinancialSummaryDTO{
			Faturamento30d:       dto.NewAmount(s.Revenue),
			LucroEstimado30d:     dto.NewAmount(s.EstimatedProfit),
			ContasPagarAbertas:   dto.NewAmount(s.OpenPayables),
			ContasReceberAbertas: dto.NewAmount(s.OpenReceivables),
			SaldoRepasses30d:     dto.NewAmount(s.PayoutBalance),
			TicketMedio30d:       dto.NewAmount(s.AverageTicket),
		}, nil
	})
}

// GetMonthlyPnL construye GET /analytics/dre-mensal. Ano 0 = año en curso.
func (uc *SummaryUseCase) GetMonthlyPnL(
	ctx context.Context,
	tenantID string,
	req dto.MonthlyPnLRequest,
) (*dto.MonthlyPnLDTO, error) {
	year := req.Ano
	if year == 0 {
		year = uc.cfg.Clock().In(uc.cfg.Location).Year()
	}
	// Validar antes de leer: un año inválido no debe tocar el proveedor.
	if err := finance.ValidateYear(year); err != nil {
		return nil, err
	}
	period := finance.YearRange(year, uc.cfg.Location)
	key := report.Key(tenantID, report.MonthlyPnL, strconv.Itoa(year))

	return report.Load(ctx, uc.runner, report.MonthlyPnL, key, func(ctx context.Context) (*dto.MonthlyPnLDTO, error) {
		ledger, fin, err := uc.readBoth(ctx, tenantID, period)
		if err != nil {
			return nil, err
		}
		attributor := finance.NewCostAttributor(ledger)
		months, err := finance.MonthlyPnL(attributor, fin, year, uc.cfg.Location)
		if err != nil {
			return nil, err
		}
		uc.runner.Excluded(tenantID, report.MonthlyPnL, attributor.Exclusions(true))

		out := &dto.MonthlyPnLDTO{Ano: year, Meses: make([]dto.PnLMonthDTO, 0, len(months))}
		for _, m := range months {
			out.Meses = append(out.Meses, dto.PnLMonthDTO{
				Mes:              m.Month,
				Ano:              m.Year,
				ReceitasBrutas:   dto.NewAmount(m.GrossRevenue),
				DescontosTaxas:   dto.NewAmount(m.Deductions),
				CustosProduto:    dto.NewAmount(m.ProductCosts),
				Despesas:         dto.NewAmount(m.Expenses),
				ResultadoLiquido: dto.NewAmount(m.Result),
			})
		}
		return out, nil
	})
}

// readBoth lee ledger y finanzas en paralelo; el primer error cancela la otra lectura.
func (uc *SummaryUseCase) readBoth(
	ctx context.Context,
	tenantID string,
	period finance.DateRange,
) (*entity.LedgerSnapshot, *entity.FinanceSnapshot, error) {
	var (
		ledger *entity.LedgerSnapshot
		fin    *entity.FinanceSnapshot
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		snap, err := uc.ledger.ReadLedger(gctx, tenantID, period.Start, period.End)
		if err != nil {
			return report.Upstream("resumen: ledger", err)
		}
		ledger = snap
		return nil
	})
	g.Go(func() error {
		snap, err := uc.finance.ReadFinance(gctx, tenantID, period.Start, period.End)
		if err != nil {
			return report.Upstream("resumen: finanzas", err)
		}
		fin = snap
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if ledger == nil {
		ledger = &entity.LedgerSnapshot{}
	}
	if fin == nil {
		fin = &entity.FinanceSnapshot{}
	}
	return ledger, fin, nil
}
