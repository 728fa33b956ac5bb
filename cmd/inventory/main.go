// Package main runs the interactive inventory tracker.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/internal/bootstrap"
	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/transport/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("Application error: %v", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.Load(os.Getenv("APP_ENV"))
	if err != nil {
		return fmt.Errorf("error loading configuration: %w", err)
	}

	// Set up structured logging, kept off stdout where the menu is drawn
	logger := bootstrap.NewLogger(cfg.Log.Level, os.Stderr)
	slog.SetDefault(logger)
	logger.Info("Initializing Inventory Management System...", "profile", cfg.Env)
	logger.Debug("Configuration loaded", "config", cfg.String())

	deps, err := app.SetupDependencies(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("error setting up application: %w", err)
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("Failed to close store", "error", err)
		}
	}()
	logger.Info("System ready.")

	menu := cli.NewMenu(deps.Inventory, os.Stdin, os.Stdout, logger, cli.Options{ClearScreen: cfg.CLI.ClearScreen})
	return menu.Run(ctx)
}
