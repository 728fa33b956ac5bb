// Package app wires the inventory application together from its configuration.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/abgdnv/inventory/internal/bootstrap"
	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/inventory"
	"github.com/abgdnv/inventory/internal/store"
)

// Dependencies holds the wired application components and the resources to release on Close.
type Dependencies struct {
	Inventory *inventory.Inventory
	Store     store.Store
	Logger    *slog.Logger

	closers []func() error
}

// SetupDependencies opens the store named by cfg.Store.URL, initializes SQL
// databases, and performs the initial inventory load.
// A failing initialization or initial load is logged and startup continues with
// whatever the store returned; an unreachable or misconfigured store is an error.
func SetupDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: logger}

	s, err := deps.openStore(ctx, cfg)
	if err != nil {
		_ = deps.Close()
		return nil, err
	}
	deps.Store = s
	deps.Inventory = inventory.New(s, logger)

	report, err := deps.Inventory.LoadFromStore(ctx)
	if err != nil {
		logger.WarnContext(ctx, "Initial load failed, starting with an empty inventory", "error", err)
	} else {
		logger.InfoContext(ctx, "Inventory ready", "products", report.Loaded, "skipped", len(report.Skipped))
	}
	return deps, nil
}

func (d *Dependencies) openStore(ctx context.Context, cfg *config.Config) (store.Store, error) {
	driver, err := cfg.Store.Driver()
	if err != nil {
		return nil, err
	}
	log := d.Logger.With("component", "store", "driver", string(driver))

	switch driver {
	case config.DriverPostgres:
		d.initialize(ctx, cfg.Store.URL, log)
		dbPool, err := bootstrap.NewDbPool(ctx, cfg.Store.URL, cfg.Store.Timeout)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, func() error { dbPool.Close(); return nil })
		log.InfoContext(ctx, "Successfully connected to the database!")
		return store.NewPgStore(dbPool), nil

	case config.DriverSQLite:
		d.initialize(ctx, cfg.Store.URL, log)
		openCtx, cancel := context.WithTimeout(ctx, cfg.Store.Timeout)
		defer cancel()
		s, err := store.OpenSQLite(openCtx, cfg.Store.URL)
		if err != nil {
			return nil, err
		}
		d.closers = append(d.closers, s.Close)
		log.InfoContext(ctx, "Opened database file")
		return s, nil

	case config.DriverMemory:
		log.InfoContext(ctx, "Using in-memory store with seed data")
		return store.NewInMemoryStore(store.SeedRecords()...), nil

	case config.DriverCatalog:
		log.InfoContext(ctx, "Using remote product catalog", "endpoint", cfg.Store.URL)
		return store.NewCatalogStore(cfg.Store.URL, cfg.Catalog.Timeout), nil

	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}
}

// initialize creates and seeds the products table if needed. Failures are logged only.
func (d *Dependencies) initialize(ctx context.Context, url string, log *slog.Logger) {
	result, err := store.Migrate(url, log)
	if err != nil {
		log.ErrorContext(ctx, "An error occurred during database initialization", "error", err)
		return
	}
	log.DebugContext(ctx, "Database initialization finished", "result", result.String())
}

// Close releases the store's resources.
func (d *Dependencies) Close() error {
	var errs []error
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	d.closers = nil
	return errors.Join(errs...)
}
