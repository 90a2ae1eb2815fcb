package ports

import (
	"context"
	"time"
)

// ReportCache puerto de salida para cachear reportes ya armados.
// Un error de la caché nunca debe impedir calcular el reporte: el llamador lo registra y sigue.
type ReportCache interface {
	// Get decodifica en dst el valor guardado bajo key. Devuelve false si no existe.
	Get(ctx context.Context, key string, dst interface{}) (bool, error)
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
}

// ReportObserver recibe la telemetría de cada reporte (adaptador Prometheus o no-op).
type ReportObserver interface {
	RecordsExcluded(report, reason string, n int)
	ReportDuration(report string, d time.Duration)
	CacheLookup(report string, hit bool)
}

// NopCache caché deshabilitada.
type NopCache struct{}

func (NopCache) Get(context.Context, string, interface{}) (bool, error)        { return false, nil }
func (NopCache) Set(context.Context, string, interface{}, time.Duration) error { return nil }

// NopObserver descarta la telemetría.
type NopObserver struct{}

func (NopObserver) RecordsExcluded(string, string, int)  {}
func (NopObserver) ReportDuration(string, time.Duration) {}
func (NopObserver) CacheLookup(string, bool)             {}
