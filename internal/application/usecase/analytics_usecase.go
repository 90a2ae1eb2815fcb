package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/application/report"
	"github.com/jhoicas/seller-analytics/internal/domain/entity"
	"github.com/jhoicas/seller-analytics/internal/domain/finance"
	"github.com/jhoicas/seller-analytics/internal/domain/repository"
)

var (
	target20 = decimal.RequireFromString("0.20")
	target30 = decimal.RequireFromString("0.30")
)

// AnalyticsSettings parámetros de configuración de los reportes por rango.
type AnalyticsSettings struct {
	Location          *time.Location
	MarginTargets     finance.MarginTargets // objetivos por defecto de la precificación
	MarginDefaultDays int                   // ventana cuando no llegan data_ini ni data_fim
	ABCDefaultDays    int
	Clock             func() time.Time // nil = time.Now
}

// AnalyticsUseCase orquesta los reportes de rentabilidad:
//   - Margen por canal y por producto.
//   - Curva ABC de SKUs por ingreso.
//   - Precificación sugerida sobre el catálogo vigente.
//
// Los cálculos viven en domain/finance; aquí se parsean parámetros, se lee el
// snapshot del tenant y se arma la respuesta.
type AnalyticsUseCase struct {
	ledger  repository.LedgerReader
	catalog repository.CatalogReader
	runner  *report.Runner
	cfg     AnalyticsSettings
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(
	ledger repository.LedgerReader,
	catalog repository.CatalogReader,
	runner *report.Runner,
	cfg AnalyticsSettings,
) *AnalyticsUseCase {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if len(cfg.MarginTargets) == 0 {
		cfg.MarginTargets = finance.DefaultMarginTargets
	}
	if cfg.MarginDefaultDays <= 0 {
		cfg.MarginDefaultDays = 30
	}
	if cfg.ABCDefaultDays <= 0 {
		cfg.ABCDefaultDays = 90
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}
	return &AnalyticsUseCase{ledger: ledger, catalog: catalog, runner: runner, cfg: cfg}
}

// GetChannelMargin genera GET /analytics/margem-por-canal.
func (uc *AnalyticsUseCase) GetChannelMargin(
	ctx context.Context,
	tenantID string,
	req dto.PeriodRequest,
) (*dto.ChannelMarginReportDTO, error) {
	period, err := report.ParsePeriod(req.DataIni, req.DataFim, uc.cfg.Location, uc.cfg.Clock(), uc.cfg.MarginDefaultDays)
	if err != nil {
		return nil, err
	}
	key := report.Key(tenantID, report.ChannelMargin, report.RangeKey(period))

	return report.Load(ctx, uc.runner, report.ChannelMargin, key, func(ctx context.Context) (*dto.ChannelMarginReportDTO, error) {
		attributor, snap, err := uc.readLedger(ctx, tenantID, period)
		if err != nil {
			return nil, err
		}
		rows, err := finance.ChannelMargins(attributor, snap.Channels, period)
		if err != nil {
			return nil, err
		}
		uc.runner.Excluded(tenantID, report.ChannelMargin, attributor.Exclusions(true))
		return buildChannelMarginReport(rows), nil
	})
}

// GetABCCurve genera GET /analytics/curva-abc.
func (uc *AnalyticsUseCase) GetABCCurve(
	ctx context.Context,
	tenantID string,
	req dto.PeriodRequest,
) (*dto.ABCReportDTO, error) {
	period, err := report.ParsePeriod(req.DataIni, req.DataFim, uc.cfg.Location, uc.cfg.Clock(), uc.cfg.ABCDefaultDays)
	if err != nil {
		return nil, err
	}
	key := report.Key(tenantID, report.ABCCurve, report.RangeKey(period))

	return report.Load(ctx, uc.runner, report.ABCCurve, key, func(ctx context.Context) (*dto.ABCReportDTO, error) {
		attributor, _, err := uc.readLedger(ctx, tenantID, period)
		if err != nil {
			return nil, err
		}
		rows, err := finance.ClassifyABC(attributor, period)
		if err != nil {
			return nil, err
		}
		// La curva solo usa ingresos: los pedidos sin costo atribuido siguen contando.
		uc.runner.Excluded(tenantID, report.ABCCurve, attributor.Exclusions(false))
		return buildABCReport(rows), nil
	})
}

// GetSuggestedPricing genera GET /analytics/precificacao-sugerida.
// margens vacío usa los objetivos configurados.
func (uc *AnalyticsUseCase) GetSuggestedPricing(
	ctx context.Context,
	tenantID string,
	req dto.PricingRequest,
) (*dto.PricingReportDTO, error) {
	targets := uc.cfg.MarginTargets
	if strings.TrimSpace(req.Margens) != "" {
		parsed, err := report.ParseMarginTargets(req.Margens)
		if err != nil {
			return nil, err
		}
		targets = parsed
	}
	targets, err := finance.NewMarginTargets(targets)
	if err != nil {
		return nil, err
	}
	key := report.Key(tenantID, report.Pricing, targetsKey(targets))

	return report.Load(ctx, uc.runner, report.Pricing, key, func(ctx context.Context) (*dto.PricingReportDTO, error) {
		products, err := uc.catalog.ListProducts(ctx, tenantID)
		if err != nil {
			return nil, report.Upstream("analytics: catálogo", err)
		}
		rows, excluded, err := finance.SuggestPricing(products, targets)
		if err != nil {
			return nil, err
		}
		uc.runner.Excluded(tenantID, report.Pricing, excluded)
		return buildPricingReport(rows), nil
	})
}

// GetProductMargin genera GET /analytics/margem-por-produto.
func (uc *AnalyticsUseCase) GetProductMargin(
	ctx context.Context,
	tenantID string,
	req dto.PeriodRequest,
) (*dto.ProductMarginReportDTO, error) {
	period, err := report.ParsePeriod(req.DataIni, req.DataFim, uc.cfg.Location, uc.cfg.Clock(), uc.cfg.MarginDefaultDays)
	if err != nil {
		return nil, err
	}
	key := report.Key(tenantID, report.ProductMargin, report.RangeKey(period))

	return report.Load(ctx, uc.runner, report.ProductMargin, key, func(ctx context.Context) (*dto.ProductMarginReportDTO, error) {
		attributor, _, err := uc.readLedger(ctx, tenantID, period)
		if err != nil {
			return nil, err
		}
		rows, err := finance.ProductMargins(attributor, period)
		if err != nil {
			return nil, err
		}
		uc.runner.Excluded(tenantID, report.ProductMargin, attributor.Exclusions(true))
		return buildProductMarginReport(rows), nil
	})
}

// readLedger lee el snapshot del rango y lo pasa por el atribuidor de costos.
func (uc *AnalyticsUseCase) readLedger(
	ctx context.Context,
	tenantID string,
	period finance.DateRange,
) (*finance.CostAttributor, *entity.LedgerSnapshot, error) {
	snap, err := uc.ledger.ReadLedger(ctx, tenantID, period.Start, period.End)
	if err != nil {
		return nil, nil, report.Upstream("analytics: ledger", err)
	}
	if snap == nil {
		snap = &entity.LedgerSnapshot{}
	}
	return finance.NewCostAttributor(snap), snap, nil
}

// ── Ensamblado de respuestas ──────────────────────────────────────────────────

func buildChannelMarginReport(rows []finance.MarginRow) *dto.ChannelMarginReportDTO {
	items := make([]dto.ChannelMarginItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ChannelMarginItemDTO{
			Canal:            r.Channel,
			ReceitaLiquida:   dto.NewAmount(r.NetRevenue),
			CustoTotal:       dto.NewAmount(r.TotalCost),
			MargemValor:      dto.NewAmount(r.MarginValue),
			MargemPercentual: dto.NewAmount(r.MarginPct),
		})
	}
	return &dto.ChannelMarginReportDTO{Itens: items}
}

func buildABCReport(rows []finance.AbcRow) *dto.ABCReportDTO {
	items := make([]dto.ABCItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ABCItemDTO{
			SKU:                 r.SKU,
			Nome:                r.Name,
			Receita:             dto.NewAmount(r.Revenue),
			PercentualAcumulado: dto.NewAmount(r.CumulativePct),
			Classe:              string(r.Class),
		})
	}
	return &dto.ABCReportDTO{Itens: items}
}

func buildPricingReport(rows []finance.PricingRow) *dto.PricingReportDTO {
	items := make([]dto.PricingItemDTO, 0, len(rows))
	for _, r := range rows {
		item := dto.PricingItemDTO{
			SKU:             r.SKU,
			Nome:            r.Name,
			CustoAtual:      dto.NewAmount(r.CurrentCost),
			PrecoAtual:      dto.NewAmount(r.CurrentPrice),
			PrecoSugerido20: dto.NewAmount(finance.SuggestPrice(r.CurrentCost, target20)),
			PrecoSugerido30: dto.NewAmount(finance.SuggestPrice(r.CurrentCost, target30)),
			Subprecificado:  r.Underpriced,
			Sugestoes:       make([]dto.PriceSuggestionDTO, 0, len(r.Suggestions)),
		}
		for _, s := range r.Suggestions {
			item.Sugestoes = append(item.Sugestoes, dto.PriceSuggestionDTO{
				Margem: json.Number(s.Target.String()),
				Preco:  dto.NewAmount(s.Price),
			})
		}
		items = append(items, item)
	}
	return &dto.PricingReportDTO{Itens: items}
}

func buildProductMarginReport(rows []finance.ProductMarginRow) *dto.ProductMarginReportDTO {
	items := make([]dto.ProductMarginItemDTO, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ProductMarginItemDTO{
			SKU:              r.SKU,
			Nome:             r.Name,
			VendasQtd:        json.Number(r.UnitsSold.String()),
			ReceitaLiquida:   dto.NewAmount(r.NetRevenue),
			CustoTotal:       dto.NewAmount(r.TotalCost),
			MargemValor:      dto.NewAmount(r.MarginValue),
			MargemPercentual: dto.NewAmount(r.MarginPct),
		})
	}
	return &dto.ProductMarginReportDTO{Itens: items}
}

func targetsKey(targets finance.MarginTargets) string {
	parts := make([]string, 0, len(targets))
	for _, t := range targets {
		parts = append(parts, t.String())
	}
	return fmt.Sprintf("m=%s", strings.Join(parts, ","))
}
