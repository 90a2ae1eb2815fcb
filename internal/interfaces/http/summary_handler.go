package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// SummaryHandler maneja el resumen financiero y la DRE mensual.
type SummaryHandler struct {
	uc  *appanalytics.SummaryUseCase
	log *logger.Logger
}

// NewSummaryHandler construye el handler.
func NewSummaryHandler(uc *appanalytics.SummaryUseCase, log *logger.Logger) *SummaryHandler {
	return &SummaryHandler{uc: uc, log: log}
}

// GetSummary devuelve el resumen de los últimos 30 días (ventana configurable).
// GET /analytics/resumo-financeiro
//
// No requiere parámetros; la ventana se calcula en el servidor.
func (h *SummaryHandler) GetSummary(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	summary, err := h.uc.GetSummary(c.Context(), tenantID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(summary)
}

// GetMonthlyPnL devuelve la DRE mensual del año.
// GET /analytics/dre-mensal?ano=YYYY
func (h *SummaryHandler) GetMonthlyPnL(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	var req dto.MonthlyPnLRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetMonthlyPnL(c.Context(), tenantID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
