package http

import (
	"github.com/gofiber/fiber/v2"

	apptax "github.com/jhoicas/Inmuebles-api/internal/application/tax"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TaxUC *apptax.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Impuesto de transferencia (público, sin estado)
	taxGroup := api.Group("/tax")
	taxHandler := NewTaxHandler(deps.TaxUC)
	taxGroup.Post("/transfer", taxHandler.Calculate)
	taxGroup.Get("/transfer", taxHandler.CalculateQuery)
	taxGroup.Post("/transfer/pdf", taxHandler.LiquidationPDF)
	taxGroup.Get("/brackets", taxHandler.Brackets)
	taxGroup.Get("/brackets/:bracket", taxHandler.Describe)
	taxGroup.Get("/table", taxHandler.Table)
}
