package store

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"log/slog"
	nurl "net/url"
	"strings"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// seedVersion is the last migration, the one that inserts the initial catalog.
const seedVersion = 2

// MigrateResult tells whether Migrate changed the database.
type MigrateResult int

const (
	// Initialized means the products table was created and/or seeded.
	Initialized MigrateResult = iota + 1
	// AlreadyInitialized means every migration had already been applied.
	AlreadyInitialized
)

func (r MigrateResult) String() string {
	switch r {
	case Initialized:
		return "initialized"
	case AlreadyInitialized:
		return "already initialized"
	default:
		return "unknown"
	}
}

// Migrate creates the products table and seeds the initial catalog on the
// database named by url (postgres:// or sqlite://). Running it again is a no-op.
// A products table that exists without migration history is adopted as is:
// the migrations are marked applied and nothing is seeded.
func Migrate(url string, logger *slog.Logger) (MigrateResult, error) {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return 0, fmt.Errorf("failed to open embedded migrations: %w", err)
	}
	m, err := migrate.NewWithSourceInstance("iofs", src, url)
	if err != nil {
		return 0, fmt.Errorf("failed to create migrate instance: %w", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			logger.Warn("failed to close migrate instance", "source_error", srcErr, "database_error", dbErr)
		}
	}()

	if _, _, err := m.Version(); errors.Is(err, migrate.ErrNilVersion) {
		exists, err := productsTableExists(url)
		if err != nil {
			return 0, fmt.Errorf("failed to check for products table: %w", err)
		}
		if exists {
			if err := m.Force(seedVersion); err != nil {
				return 0, fmt.Errorf("failed to record existing products table: %w", err)
			}
			logger.Info("Database already initialized", "existing_table", true)
			return AlreadyInitialized, nil
		}
	}

	err = m.Up()
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("Database already initialized")
		return AlreadyInitialized, nil
	}
	if err != nil {
		return 0, fmt.Errorf("failed to apply migrations: %w", err)
	}
	version, _, _ := m.Version()
	logger.Info("Database initialized and seeded", "schema_version", version)
	return Initialized, nil
}

// productsTableExists reports whether the products table is present on the database named by url.
func productsTableExists(url string) (bool, error) {
	driver, dsn, query := "postgres", url, "SELECT to_regclass('products') IS NOT NULL"
	if strings.HasPrefix(url, SQLiteScheme) {
		driver, dsn = "sqlite", strings.TrimPrefix(url, SQLiteScheme)
		query = "SELECT count(*) > 0 FROM sqlite_master WHERE type = 'table' AND name = 'products'"
	} else if u, err := nurl.Parse(url); err == nil {
		// x-* parameters are meant for the migrate driver only
		dsn = migrate.FilterCustomQuery(u).String()
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return false, err
	}
	defer func() { _ = db.Close() }()

	var exists bool
	if err := db.QueryRow(query).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}
