package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/vhenriksson/wind-monitor/internal/api/http"
	"github.com/vhenriksson/wind-monitor/internal/config"
	"github.com/vhenriksson/wind-monitor/internal/logger"
	"github.com/vhenriksson/wind-monitor/internal/scheduler"
	"github.com/vhenriksson/wind-monitor/internal/store"
	"github.com/vhenriksson/wind-monitor/internal/wind"
	"github.com/vhenriksson/wind-monitor/internal/wind/providers"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("failed to load config: %v", err)
	}
	if err := cfg.ResolveCoordinates(); err != nil {
		logger.Fatalf("failed to resolve coordinates: %v", err)
	}

	// Provider selected by configuration; the set is closed.
	provider, err := providers.New(cfg.Provider, providers.Options{UserAgent: cfg.UserAgent})
	if err != nil {
		logger.Fatalf("failed to configure provider: %v", err)
	}

	// Shared HTTP client for outbound provider calls. Its Timeout is the
	// hard ceiling on one request.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// In-memory store holding only the latest outcome.
	latest := store.NewLatestStore()

	// Core service orchestrating fetch, parse and store.
	fetcher := wind.NewFetcher(httpClient, provider.Name())
	service := wind.NewService(provider, fetcher, latest, cfg.Location())

	// Scheduler that periodically acquires and retries failures.
	sched := scheduler.New(service, cfg.UpdateInterval, cfg.RetryDelay, cfg.MaxRetries)
	if err := sched.Start(); err != nil {
		logger.Fatalf("failed to start scheduler: %v", err)
	}
	defer sched.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "wind-monitor",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Centralized error response
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error":   true,
				"message": err.Error(),
			})
		},
	})

	// Global middleware
	app.Use(fiberlogger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "wind-monitor",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, latest, sched)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			logger.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("error during shutdown: %v", err)
	}
}
