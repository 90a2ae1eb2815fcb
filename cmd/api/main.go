package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appanalytics "github.com/jhoicas/seller-analytics/internal/application/analytics"
	"github.com/jhoicas/seller-analytics/internal/application/ports"
	"github.com/jhoicas/seller-analytics/internal/application/report"
	"github.com/jhoicas/seller-analytics/internal/application/usecase"
	"github.com/jhoicas/seller-analytics/internal/domain/finance"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/cache"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/seller-analytics/internal/infrastructure/pdf"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/postgres"
	"github.com/jhoicas/seller-analytics/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/seller-analytics/internal/interfaces/http"
	"github.com/jhoicas/seller-analytics/pkg/config"
	"github.com/jhoicas/seller-analytics/pkg/logger"
)

// entradas máximas de la caché en memoria cuando no hay Redis
const memoryCacheEntries = 1000

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	loc, err := cfg.Analytics.LoadLocation()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria de análisis")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", loc.String()).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	ledgerRepo := postgres.NewLedgerRepository(pool)
	financeRepo := postgres.NewFinanceRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	// Caché de reportes: Redis si está configurado, si no en memoria del proceso.
	var reportCache ports.ReportCache
	if cfg.Analytics.CacheTTL > 0 {
		if cfg.Redis.Enabled() {
			redisCache, err := cache.NewRedisReportCache(ctx, cfg.Redis)
			if err != nil {
				log.Fatal().Err(err).Str("addr", cfg.Redis.Addr).Msg("conexión a Redis")
			}
			defer redisCache.Close()
			reportCache = redisCache
			log.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", cfg.Analytics.CacheTTL).Msg("caché de reportes en Redis")
		} else {
			reportCache = cache.NewMemoryReportCache(memoryCacheEntries)
			log.Info().Dur("ttl", cfg.Analytics.CacheTTL).Msg("caché de reportes en memoria")
		}
	}

	prom := metrics.NewPrometheus()
	runner := report.NewRunner(reportCache, prom, log.Component("analytics"), cfg.Analytics.CacheTTL)

	targets, err := report.ParseMarginTargets(cfg.Analytics.MarginTargets)
	if err != nil {
		log.Fatal().Err(err).Str("margin_targets", cfg.Analytics.MarginTargets).Msg("ANALYTICS_MARGIN_TARGETS inválido")
	}

	analyticsUC := usecase.NewAnalyticsUseCase(ledgerRepo, catalogRepo, runner, usecase.AnalyticsSettings{
		Location:          loc,
		MarginTargets:     targets,
		MarginDefaultDays: cfg.Analytics.MarginDefaultDays,
		ABCDefaultDays:    cfg.Analytics.ABCDefaultDays,
	})
	summaryUC := appanalytics.NewSummaryUseCase(ledgerRepo, financeRepo, runner, appanalytics.SummarySettings{
		WindowDays: cfg.Analytics.WindowDays,
		OpenMode:   finance.OpenObligationsMode(cfg.Analytics.OpenObligationsMode),
		Location:   loc,
	})
	exportUC := appanalytics.NewExportUseCase(
		analyticsUC, summaryUC, xlsx.NewExporter(), infrapdf.NewMarotoPDFGenerator(cfg.App.Name),
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	if cfg.Metrics.Enabled {
		app.Use(httpRouter.RequestMetrics(prom))
	}

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Seller Analytics API",
	}))

	deps := httpRouter.RouterDeps{
		AppName:     cfg.App.Name,
		AnalyticsUC: analyticsUC,
		SummaryUC:   summaryUC,
		ExportUC:    exportUC,
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
		Log:         log.Component("http"),
	}
	if cfg.Metrics.Enabled {
		deps.Metrics = prom.Handler()
	}
	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
