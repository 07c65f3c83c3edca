package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/hpp-api/internal/application/costbasis"
	"github.com/jhoicas/hpp-api/internal/application/report"
)

var (
	_ HPPService    = (*costbasis.IngestionUseCase)(nil)
	_ ReportService = (*report.ReportUseCase)(nil)
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	IngestionUC    HPPService
	ReportUC       ReportService
	JWTSecret      string
	JWTIssuer      string
	UploadMaxBytes int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.JWTIssuer), RequireShop())

	// Catálogo y carga de HPP
	hppHandler := NewHPPHandler(deps.IngestionUC, deps.UploadMaxBytes)
	items := api.Group("/order-items")
	items.Get("/skus", hppHandler.ListSkus)
	items.Get("/hpp/template", hppHandler.Template)
	items.Post("/hpp/upload", hppHandler.Upload)
	items.Post("/hpp/bulk-update", hppHandler.BulkUpdate)

	// Reportes
	reportHandler := NewReportHandler(deps.ReportUC)
	rep := api.Group("/reports")
	rep.Get("/products", reportHandler.Products)
	rep.Get("/pnl", reportHandler.PnL)
	rep.Get("/order/:orderSn/costs", reportHandler.OrderCosts)
}
