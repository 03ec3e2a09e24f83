package http

import (
	"github.com/gofiber/fiber/v2"

	appstock "github.com/jhoicas/grocy-stock/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName   string
	Refresher *appstock.RefreshUseCase
	Mutations *appstock.MutationCoordinator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": deps.AppName})
	})

	api := app.Group("/api")

	stock := api.Group("/stock")
	stockHandler := NewStockHandler(deps.Refresher, deps.Mutations)
	stock.Get("/", stockHandler.Get)
	stock.Post("/refresh", stockHandler.Refresh)
	stock.Post("/products/:id/consume", stockHandler.Consume)
	stock.Post("/products/:id/add", stockHandler.Add)
}
