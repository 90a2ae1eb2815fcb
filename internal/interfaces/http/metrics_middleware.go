package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// requestRecorder es el contrato mínimo que necesita el middleware para registrar peticiones.
// Lo implementa *metrics.Prometheus; el uso de interfaz evita acoplar el transporte a Prometheus.
type requestRecorder interface {
	HTTPRequest(method, route string, status int, d time.Duration)
}

// RequestMetrics registra método, ruta, status y duración de cada petición.
// La ruta es el patrón registrado (ej. /analytics/curva-abc), no la URL cruda.
func RequestMetrics(rec requestRecorder) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := c.Route().Path
		if route == "" || route == "/" {
			route = "unmatched"
		}
		rec.HTTPRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
