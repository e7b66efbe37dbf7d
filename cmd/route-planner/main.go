package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/shinuoyan888/HuXuYan/internal/api/http"
	"github.com/shinuoyan888/HuXuYan/internal/config"
	"github.com/shinuoyan888/HuXuYan/internal/planner"
	"github.com/shinuoyan888/HuXuYan/internal/planner/backend"
	"github.com/shinuoyan888/HuXuYan/internal/scheduler"
	"github.com/shinuoyan888/HuXuYan/internal/session"
)

func main() {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Shared HTTP client for outbound backend calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	// Route-search client against the road-condition backend.
	searchClient := backend.NewClient(httpClient, cfg.BackendBaseURL)

	// In-memory session store with configured retention.
	sessionStore := session.NewMemoryStore(cfg.SessionTTL)

	// Core service binding sessions to the backend.
	service := planner.NewService(sessionStore, searchClient)

	// Janitor that periodically sweeps expired sessions.
	janitor := scheduler.New(sessionStore, cfg.SweepInterval)
	if err := janitor.Start(); err != nil {
		log.Fatalf("failed to start session janitor: %v", err)
	}
	defer janitor.Stop()

	// Basic app configuration
	app := fiber.New(fiber.Config{
		AppName:               "route-planner",
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
	app.Use(logger.New())
	app.Use(recover.New())

	// Basic health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "route-planner",
		})
	})

	// API routes.
	httpapi.RegisterRoutes(app, service)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Printf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Printf("error during shutdown: %v", err)
	}
}
