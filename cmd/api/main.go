package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	appstock "github.com/jhoicas/grocy-stock/internal/application/stock"
	"github.com/jhoicas/grocy-stock/internal/infrastructure/grocy"
	httpRouter "github.com/jhoicas/grocy-stock/internal/interfaces/http"
	"github.com/jhoicas/grocy-stock/pkg/config"
	"github.com/jhoicas/grocy-stock/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
		Debug: cfg.Stock.Debug,
	})
	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("configuración inválida")
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("grocy_url", cfg.Grocy.URL).
		Str("grouping_mode", string(cfg.Stock.GroupingMode)).
		Msg("iniciando aplicación")

	client, err := grocy.NewClient(grocy.Config{
		BaseURL:  cfg.Grocy.URL,
		APIKey:   cfg.Grocy.APIKey,
		Timeout:  cfg.Grocy.Timeout(),
		Defaults: cfg.Grocy.WriteDefaults(),
	}, log.Zerolog())
	if err != nil {
		log.Fatal().Err(err).Msg("cliente Grocy")
	}

	refresher := appstock.NewRefreshUseCase(client, appstock.NewViewState(), appstock.Options{
		Mode:             cfg.Stock.GroupingMode,
		CategoryFilter:   cfg.Stock.CategoryFilter,
		LocationFilter:   cfg.Stock.LocationFilter,
		ShowLocationName: cfg.Stock.ShowLocationName,
	}, log.Zerolog())
	mutations := appstock.NewMutationCoordinator(client, refresher, log.Zerolog())

	// Primer refresco al arrancar, como hace la tarjeta al recibir su configuración.
	startCtx, cancelStart := context.WithTimeout(context.Background(), cfg.Grocy.Timeout())
	if snap, err := refresher.Refresh(startCtx); err != nil {
		log.Warn().Err(err).Msg("refresco inicial")
	} else {
		log.Info().Str("strategy", snap.Strategy.String()).Int("total", snap.View.Len()).Msg("stock cargado")
	}
	cancelStart()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpRouter.Router(app, httpRouter.RouterDeps{
		AppName:   cfg.App.Name,
		Refresher: refresher,
		Mutations: mutations,
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
