package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/application/usecase"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// AnalyticsHandler maneja los endpoints de rentabilidad por rango de fechas.
type AnalyticsHandler struct {
	uc  *usecase.AnalyticsUseCase
	log *logger.Logger
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *usecase.AnalyticsUseCase, log *logger.Logger) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, log: log}
}

// GetChannelMargin godoc
// @Summary      Margen por canal de venta
// @Description  Receita líquida, custo total y margen por canal en el período. Sin fechas: últimos 30 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        data_ini  query  string  false  "Inicio inclusivo (YYYY-MM-DD)"
// @Param        data_fim  query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.ChannelMarginReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /analytics/margem-por-canal [get]
func (h *AnalyticsHandler) GetChannelMargin(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	var req dto.PeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetChannelMargin(c.Context(), tenantID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetABCCurve godoc
// @Summary      Curva ABC de SKUs por ingreso
// @Description  Clases A (hasta 80%), B (hasta 95%) y C sobre el ingreso acumulado. Sin fechas: últimos 90 días.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        data_ini  query  string  false  "Inicio inclusivo (YYYY-MM-DD)"
// @Param        data_fim  query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.ABCReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /analytics/curva-abc [get]
func (h *AnalyticsHandler) GetABCCurve(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	var req dto.PeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetABCCurve(c.Context(), tenantID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetSuggestedPricing godoc
// @Summary      Precificación sugerida por margen objetivo
// @Description  precio = custo / (1 - margen) para cada margen objetivo; subprecificado si el precio actual no alcanza el menor.
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        margens  query  string  false  "Márgenes objetivo separados por coma, ej. 0.2,0.35"
// @Success      200  {object}  dto.PricingReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /analytics/precificacao-sugerida [get]
func (h *AnalyticsHandler) GetSuggestedPricing(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	var req dto.PricingRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetSuggestedPricing(c.Context(), tenantID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// GetProductMargin godoc
// @Summary      Margen por producto (SKU)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        data_ini  query  string  false  "Inicio inclusivo (YYYY-MM-DD)"
// @Param        data_fim  query  string  false  "Fin inclusivo (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProductMarginReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      503  {object}  dto.ErrorResponse
// @Router       /analytics/margem-por-produto [get]
func (h *AnalyticsHandler) GetProductMargin(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	var req dto.PeriodRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	out, err := h.uc.GetProductMargin(c.Context(), tenantID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}
