package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

const (
	mimeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	mimePDF  = "application/pdf"
)

// ExportHandler sirve los reportes como archivos descargables (XLSX y PDF).
type ExportHandler struct {
	uc  *appanalytics.ExportUseCase
	log *logger.Logger
}

// NewExportHandler construye el handler.
func NewExportHandler(uc *appanalytics.ExportUseCase, log *logger.Logger) *ExportHandler {
	return &ExportHandler{uc: uc, log: log}
}

type periodExport func(ctx context.Context, tenantID string, req dto.PeriodRequest) ([]byte, error)

// periodXLSX arma un handler para los reportes con data_ini/data_fim.
func (h *ExportHandler) periodXLSX(filename string, export periodExport) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tenantID := GetTenantID(c)
		if tenantID == "" {
			return missingTenant(c)
		}
		var req dto.PeriodRequest
		if err := c.QueryParser(&req); err != nil {
			return invalidParams(c)
		}
		data, err := export(c.Context(), tenantID, req)
		if err != nil {
			return writeError(c, h.log, err)
		}
		return sendFile(c, filename, mimeXLSX, data)
	}
}

// ChannelMarginXLSX GET /analytics/margem-por-canal/xlsx
func (h *ExportHandler) ChannelMarginXLSX() fiber.Handler {
	return h.periodXLSX("margem-por-canal.xlsx", h.uc.ChannelMarginXLSX)
}

// ABCCurveXLSX GET /analytics/curva-abc/xlsx
func (h *ExportHandler) ABCCurveXLSX() fiber.Handler {
	return h.periodXLSX("curva-abc.xlsx", h.uc.ABCCurveXLSX)
}

// ProductMarginXLSX GET /analytics/margem-por-produto/xlsx
func (h *ExportHandler) ProductMarginXLSX() fiber.Handler {
	return h.periodXLSX("margem-por-produto.xlsx", h.uc.ProductMarginXLSX)
}

// PricingXLSX GET /analytics/precificacao-sugerida/xlsx
func (h *ExportHandler) PricingXLSX(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	var req dto.PricingRequest
	if err := c.QueryParser(&req); err != nil {
		return invalidParams(c)
	}
	data, err := h.uc.PricingXLSX(c.Context(), tenantID, req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, "precificacao-sugerida.xlsx", mimeXLSX, data)
}

// SummaryPDF GET /analytics/resumo-financeiro/pdf
func (h *ExportHandler) SummaryPDF(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return missingTenant(c)
	}
	data, err := h.uc.SummaryPDF(c.Context(), tenantID)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return sendFile(c, "resumo-financeiro.pdf", mimePDF, data)
}

func sendFile(c *fiber.Ctx, filename, mime string, data []byte) error {
	c.Attachment(filename)
	c.Set(fiber.HeaderContentType, mime)
	return c.Send(data)
}
