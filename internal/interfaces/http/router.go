package http

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	appanalytics "github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/dto"
	"github.com/jhoicas/seller-analytics/internal/application/usecase"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	AnalyticsUC *usecase.AnalyticsUseCase
	SummaryUC   *appanalytics.SummaryUseCase
	ExportUC    *appanalytics.ExportUseCase
	JWTSecret   string
	JWTIssuer   string
	Metrics     http.Handler // nil = sin /metrics
	Log         *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Log
	if log == nil {
		log = logger.Nop()
	}

	// Público
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(dto.HealthResponse{Status: "ok", Service: deps.AppName})
	})
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics))
	}

	// Analítica (requiere Bearer Token con tenant_id)
	analytics := app.Group("/analytics", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer))

	analyticsHandler := NewAnalyticsHandler(deps.AnalyticsUC, log)
	analytics.Get("/margem-por-canal", analyticsHandler.GetChannelMargin)
	analytics.Get("/curva-abc", analyticsHandler.GetABCCurve)
	analytics.Get("/precificacao-sugerida", analyticsHandler.GetSuggestedPricing)
	analytics.Get("/margem-por-produto", analyticsHandler.GetProductMargin)

	summaryHandler := NewSummaryHandler(deps.SummaryUC, log)
	analytics.Get("/resumo-financeiro", summaryHandler.GetSummary)
	analytics.Get("/dre-mensal", summaryHandler.GetMonthlyPnL)

	// Exportaciones
	if deps.ExportUC != nil {
		exportHandler := NewExportHandler(deps.ExportUC, log)
		analytics.Get("/margem-por-canal/xlsx", exportHandler.ChannelMarginXLSX())
		analytics.Get("/curva-abc/xlsx", exportHandler.ABCCurveXLSX())
		analytics.Get("/margem-por-produto/xlsx", exportHandler.ProductMarginXLSX())
		analytics.Get("/precificacao-sugerida/xlsx", exportHandler.PricingXLSX)
		analytics.Get("/resumo-financeiro/pdf", exportHandler.SummaryPDF)
	}
}
