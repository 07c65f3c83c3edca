package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appcost "github.com/jhoicas/hpp-api/internal/application/costbasis"
	"github.com/jhoicas/hpp-api/internal/application/report"
	"github.com/jhoicas/hpp-api/internal/infrastructure/export"
	infrapdf "github.com/jhoicas/hpp-api/internal/infrastructure/pdf"
	"github.com/jhoicas/hpp-api/internal/infrastructure/spreadsheet"
	"github.com/jhoicas/hpp-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/hpp-api/internal/interfaces/http"
	"github.com/jhoicas/hpp-api/pkg/config"
	"github.com/jhoicas/hpp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")
	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET requerido")
	}

	ctx := context.Background()
	stores, err := store.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("almacén externo")
	}
	defer stores.Close()

	submitUC := appcost.NewSubmitUseCase(stores.CostBasis, log)
	ingestionUC := appcost.NewIngestionUseCase(
		stores.Catalog, stores.Invalidator,
		spreadsheet.NewDecoder(), spreadsheet.NewTemplateWriter(),
		submitUC, log,
	)
	reportUC := report.NewReportUseCase(
		stores.Orders, stores.Catalog,
		export.NewReportCSV(), infrapdf.NewMarotoPnLGenerator(),
		report.Options{
			Location:     cfg.Report.Location(),
			TrendBuckets: cfg.Report.TrendBuckets,
		},
		log,
	)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 30,
		WriteTimeout: time.Second * 60,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    cfg.HTTP.UploadMaxBytes + 1<<20,
		ErrorHandler: httpRouter.ErrorHandler,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log))

	httpRouter.Router(app, httpRouter.RouterDeps{
		IngestionUC:    ingestionUC,
		ReportUC:       reportUC,
		JWTSecret:      cfg.JWT.Secret,
		JWTIssuer:      cfg.JWT.Issuer,
		UploadMaxBytes: cfg.HTTP.UploadMaxBytes,
	})

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
