package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")

	// ErrInvalidDateRange: data_ini posterior a data_fim.
	ErrInvalidDateRange = errors.New("rango de fechas inválido")
	// ErrInvalidMarginTarget: margen objetivo fuera de (0, 1).
	ErrInvalidMarginTarget = errors.New("margen objetivo inválido")
	// ErrUpstreamUnavailable: el proveedor de datos (ledger, finanzas, catálogo) falló.
	ErrUpstreamUnavailable = errors.New("proveedor de datos no disponible")
)
