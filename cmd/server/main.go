package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	log "github.com/charmbracelet/log"
	"github.com/piolcm/piol/infra/initializer"
	"github.com/piolcm/piol/pkg/app"
	"github.com/piolcm/piol/pkg/config"
	"github.com/piolcm/piol/webapi"
)

// @title Piol API
// @version 1.0
// @description Rental marketplace API: listings, property verification and escrowed mobile money payments.
// @host localhost:3000
// @BasePath /
//
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT token.
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load(".env")
	if err != nil {
		return fmt.Errorf("failed to load application configuration: %w", err)
	}
	if cfg.Auth == nil || cfg.Auth.Jwt == nil {
		return fmt.Errorf("AUTH_JWT_SECRET is required to serve the API")
	}

	deps, closer, err := initializer.InitializeDependencies(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}
	defer closer.Close() //nolint:errcheck
	logger := deps.Logger

	fiberApp := webapi.SetupApp(app.New(*deps, cfg))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := fiberApp.ShutdownWithContext(shutdownCtx); err != nil {
			logger.Error("Server shutdown failed", "error", err)
		}
	}()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("Starting server",
		"env", cfg.Env,
		"address", addr,
		"scheme", cfg.Server.Scheme,
		"eventBus", cfg.EventBus.Driver,
	)
	slog.SetDefault(logger)
	return fiberApp.Listen(addr)
}
