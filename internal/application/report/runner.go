// Package report reúne lo que comparten los casos de uso de analítica:
// parseo de períodos, traducción de errores del proveedor de datos,
// caché de respuestas y telemetría de registros excluidos.
package report

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/internal/domain"
	"github.com/jhoicas/seller-analytics/internal/domain/finance"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// Nombres de reporte: etiquetas de métricas, logs y claves de caché.
const (
	ChannelMargin = "margem_por_canal"
	ABCCurve      = "curva_abc"
	Pricing       = "precificacao_sugerida"
	Summary       = "resumo_financeiro"
	ProductMargin = "margem_por_produto"
	MonthlyPnL    = "dre_mensal"
)

// Runner envuelve el armado de un reporte con caché, métricas y logging.
type Runner struct {
	cache    ports.ReportCache
	observer ports.ReportObserver
	log      *logger.Logger
	ttl      time.Duration
}

// NewRunner construye el runner. cache y observer nil se reemplazan por no-ops; ttl <= 0 desactiva la caché.
func NewRunner(cache ports.ReportCache, observer ports.ReportObserver, log *logger.Logger, ttl time.Duration) *Runner {
	if cache == nil || ttl <= 0 {
		cache = ports.NopCache{}
	}
	if observer == nil {
		observer = ports.NopObserver{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Runner{cache: cache, observer: observer, log: log, ttl: ttl}
}

// Key arma la clave de caché (tenant, reporte, parámetros).
func Key(tenantID, report string, parts ...string) string {
	return "analytics:" + tenantID + ":" + report + ":" + strings.Join(parts, ":")
}

// Load devuelve el reporte cacheado bajo key o lo construye con build y lo guarda.
// Los errores de la caché se registran y no interrumpen el cálculo.
func Load[T any](ctx context.Context, r *Runner, name, key string, build func(context.Context) (*T, error)) (*T, error) {
	var cached T
	hit, err := r.cache.Get(ctx, key, &cached)
	if err != nil {
		r.log.Warn().Err(err).Str("report", name).Msg("caché de reportes no disponible")
	}
	r.observer.CacheLookup(name, hit)
	if hit {
		return &cached, nil
	}

	start := time.Now()
	out, err := build(ctx)
	if err != nil {
		return nil, err
	}
	r.observer.ReportDuration(name, time.Since(start))

	if err := r.cache.Set(ctx, key, out, r.ttl); err != nil {
		r.log.Warn().Err(err).Str("report", name).Msg("no se pudo guardar el reporte en caché")
	}
	return out, nil
}

// Excluded registra cada registro omitido (warn) y alimenta el contador por motivo.
func (r *Runner) Excluded(tenantID, name string, exclusions []finance.Exclusion) {
	if len(exclusions) == 0 {
		return
	}
	byReason := make(map[finance.ExclusionReason]int)
	for _, ex := range exclusions {
		byReason[ex.Reason]++
		r.log.Warn().
			Str("tenant_id", tenantID).
			Str("report", name).
			Str("record_id", ex.RecordID).
			Str("reason", string(ex.Reason)).
			Msg("registro excluido del reporte")
	}
	for reason, n := range byReason {
		r.observer.RecordsExcluded(name, string(reason), n)
	}
}

// ── Parámetros ────────────────────────────────────────────────────────────────

// ParsePeriod interpreta data_ini/data_fim (YYYY-MM-DD, inclusivos) en loc.
// Sin ambos límites devuelve los últimos defaultDays días terminando hoy.
func ParsePeriod(dataIni, dataFim string, loc *time.Location, now time.Time, defaultDays int) (finance.DateRange, error) {
	if loc == nil {
		loc = time.UTC
	}
	dataIni, dataFim = strings.TrimSpace(dataIni), strings.TrimSpace(dataFim)
	if dataIni == "" && dataFim == "" {
		return finance.TrailingDays(now.In(loc), defaultDays), nil
	}

	var first, last time.Time
	var err error
	if dataIni != "" {
		if first, err = time.ParseInLocation(time.DateOnly, dataIni, loc); err != nil {
			return finance.DateRange{}, fmt.Errorf("%w: data_ini debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	if dataFim != "" {
		if last, err = time.ParseInLocation(time.DateOnly, dataFim, loc); err != nil {
			return finance.DateRange{}, fmt.Errorf("%w: data_fim debe tener formato YYYY-MM-DD", domain.ErrInvalidInput)
		}
	}
	return finance.NewDateRange(first, last)
}

// RangeKey representación estable de un rango para claves de caché.
func RangeKey(r finance.DateRange) string {
	format := func(t time.Time) string {
		if t.IsZero() {
			return "-"
		}
		return t.Format(time.RFC3339)
	}
	return format(r.Start) + "_" + format(r.End)
}

// ParseMarginTargets interpreta "0.2,0.35" y valida cada margen en (0, 1).
func ParseMarginTargets(raw string) (finance.MarginTargets, error) {
	fields := strings.Split(raw, ",")
	values := make([]decimal.Decimal, 0, len(fields))
	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		v, err := decimal.NewFromString(f)
		if err != nil {
			return nil, fmt.Errorf("%w: %q no es un número", domain.ErrInvalidMarginTarget, f)
		}
		values = append(values, v)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: lista de márgenes vacía", domain.ErrInvalidMarginTarget)
	}
	return finance.NewMarginTargets(values)
}

// ── Errores ───────────────────────────────────────────────────────────────────

// Upstream traduce un fallo del proveedor de datos a ErrUpstreamUnavailable.
// La cancelación del llamador se propaga tal cual.
func Upstream(source string, err error) error {
	if errors.Is(err, context.Canceled) {
		return fmt.Errorf("%s: %w", source, err)
	}
	return fmt.Errorf("%s: %w: %w", source, domain.ErrUpstreamUnavailable, err)
}
