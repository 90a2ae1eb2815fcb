// Package metrics expone la telemetría del servicio en formato Prometheus.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/seller-analytics/internal/application/ports"
)

// Nombres de métricas.
const (
	MetricRecordsExcludedTotal   = "analytics_records_excluded_total"
	MetricReportDurationSeconds  = "analytics_report_duration_seconds"
	MetricCacheLookupsTotal      = "analytics_cache_lookups_total"
	MetricHTTPRequestsTotal      = "http_requests_total"
	MetricHTTPRequestDurationSec = "http_request_duration_seconds"
)

var _ ports.ReportObserver = (*Prometheus)(nil)

// Prometheus implementa ports.ReportObserver sobre un registry propio.
// Seguro para uso concurrente (los vectores de client_golang lo son).
type Prometheus struct {
	registry *prometheus.Registry

	recordsExcluded *prometheus.CounterVec
	reportDuration  *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	httpRequests    *prometheus.CounterVec
	httpDuration    *prometheus.HistogramVec
}

// NewPrometheus registra las métricas en un registry nuevo (más las de proceso y runtime de Go).
func NewPrometheus() *Prometheus {
	registry := prometheus.NewRegistry()
	p := &Prometheus{
		registry: registry,
		recordsExcluded: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricRecordsExcludedTotal,
			Help: "Registros malformados o sin costo omitidos por reporte y motivo.",
		}, []string{"report", "reason"}),
		reportDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricReportDurationSeconds,
			Help:    "Tiempo de lectura y cálculo de cada reporte (sin aciertos de caché).",
			Buckets: prometheus.DefBuckets,
		}, []string{"report"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricCacheLookupsTotal,
			Help: "Consultas a la caché de reportes por resultado.",
		}, []string{"report", "result"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: MetricHTTPRequestsTotal,
			Help: "Peticiones HTTP por ruta, método y código.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    MetricHTTPRequestDurationSec,
			Help:    "Latencia de las peticiones HTTP.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
	}
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		p.recordsExcluded,
		p.reportDuration,
		p.cacheLookups,
		p.httpRequests,
		p.httpDuration,
	)
	return p
}

// RecordsExcluded suma n exclusiones.
func (p *Prometheus) RecordsExcluded(report, reason string, n int) {
	p.recordsExcluded.WithLabelValues(report, reason).Add(float64(n))
}

// ReportDuration observa el tiempo de armado de un reporte.
func (p *Prometheus) ReportDuration(report string, d time.Duration) {
	p.reportDuration.WithLabelValues(report).Observe(d.Seconds())
}

// CacheLookup cuenta aciertos y fallos de caché.
func (p *Prometheus) CacheLookup(report string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	p.cacheLookups.WithLabelValues(report, result).Inc()
}

// HTTPRequest registra una petición atendida. route es el patrón (ej. /api/analytics/curva-abc).
func (p *Prometheus) HTTPRequest(method, route string, status int, d time.Duration) {
	p.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	p.httpDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// Handler sirve /metrics para este registry.
func (p *Prometheus) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{Registry: p.registry})
}

// Registry expone el registry (tests y colectores adicionales).
func (p *Prometheus) Registry() *prometheus.Registry {
	return p.registry
}
