package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	apptax "github.com/jhoicas/Inmuebles-api/internal/application/tax"
	"github.com/jhoicas/Inmuebles-api/internal/domain/tax"
	infrapdf "github.com/jhoicas/Inmuebles-api/internal/infrastructure/pdf"
	httpRouter "github.com/jhoicas/Inmuebles-api/internal/interfaces/http"
	"github.com/jhoicas/Inmuebles-api/pkg/config"
	"github.com/jhoicas/Inmuebles-api/pkg/logger"
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

	table := cfg.Tax.Table()
	engine, err := tax.NewEngine(table)
	if err != nil {
		log.Fatal().Err(err).Msg("tabla del impuesto")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Int("tax_year", table.Year).
		Float64("uvt", table.UnitValue).
		Msg("iniciando aplicación")

	// PDF: liquidación impresa del impuesto
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	taxUC := apptax.NewUseCase(engine, pdfGenerator, log)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Inmuebles API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "tax_year": table.Year})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		TaxUC: taxUC,
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
