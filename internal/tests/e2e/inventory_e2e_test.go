// Package e2e runs whole menu sessions against the wired application.
//
// Each session is built the way cmd/inventory builds one: app.SetupDependencies
// opens and initializes the store from configuration, then the CLI menu reads
// scripted input. The SQLite flow runs against a temporary database file; the
// PostgreSQL flow uses testcontainers-go and can be skipped with
// INVENTORY_SKIP_E2E_TESTS=1.
package e2e

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abgdnv/inventory/internal/app"
	"github.com/abgdnv/inventory/internal/config"
	"github.com/abgdnv/inventory/internal/store"
	"github.com/abgdnv/inventory/internal/transport/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipE2ETests is the environment variable that can be set to skip the container based tests.
const skipE2ETests = "INVENTORY_SKIP_E2E_TESTS"

func testConfig(url string) *config.Config {
	return &config.Config{
		Env:     config.Development,
		Store:   config.StoreConfig{URL: url, Timeout: 30 * time.Second},
		Catalog: config.CatalogConfig{Timeout: 5 * time.Second},
		Log:     config.LogConfig{Level: "debug"},
	}
}

// session starts the application on url, feeds input to the menu and returns what it printed.
func session(t *testing.T, url, input string) string {
	t.Helper()
	ctx := context.Background()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	deps, err := app.SetupDependencies(ctx, testConfig(url), logger)
	require.NoError(t, err)
	defer func() { require.NoError(t, deps.Close()) }()

	var out bytes.Buffer
	menu := cli.NewMenu(deps.Inventory, strings.NewReader(input), &out, logger, cli.Options{})
	require.NoError(t, menu.Run(ctx))
	return out.String()
}

// stockFlow exercises add, reject and restart against one persistent store.
func stockFlow(t *testing.T, url string) {
	// first session: seeded catalog, replenish the laptop
	out := session(t, url, "2\n101\n5\n3\n")
	assert.Contains(t, out, "101   Laptop               $1200.50   15")
	assert.Contains(t, out, "Added 5 to product 101.")
	assert.Contains(t, out, "101   Laptop               $1200.50   20")

	// second session: the change survived, an overdraw and an unknown id change nothing
	out = session(t, url, "2\n101\n-30\n2\n404\n1\n3\n")
	assert.Contains(t, out, "101   Laptop               $1200.50   20")
	assert.Contains(t, out, "Error: stock cannot go below zero")
	assert.Contains(t, out, "Product with ID '404' not found.")
	assert.NotContains(t, out, "$1200.50   -10")

	// third session: deplete to zero
	out = session(t, url, "2\n101\n-20\n3\n")
	assert.Contains(t, out, "Added -20 to product 101.")
	assert.Contains(t, out, "101   Laptop               $1200.50   0")
	assert.Equal(t, 5, strings.Count(out[strings.LastIndex(out, "Inventory Report"):], "$"))
}

func TestInventoryE2E_SQLite(t *testing.T) {
	url := store.SQLiteScheme + filepath.Join(t.TempDir(), "inventory_e2e.db")
	stockFlow(t, url)
}

func TestInventoryE2E_Memory(t *testing.T) {
	// every start reseeds the in-memory store
	out := session(t, "memory://", "2\n205\n10\n3\n")
	assert.Contains(t, out, "205   Webcam               $50.25     60")

	out = session(t, "memory://", "3\n")
	assert.Contains(t, out, "205   Webcam               $50.25     50")
}

// PostgresE2ESuite runs the stock flow against a real PostgreSQL instance.
type PostgresE2ESuite struct {
	suite.Suite                             // Embedding testify's suite for structured testing
	pgContainer *postgres.PostgresContainer // PostgreSQL container for E2E tests
	connStr     string                      // Connection string of the container database
	ctx         context.Context             // Context for the test suite
}

// SetupSuite starts a PostgreSQL container. The application creates the schema itself.
func (s *PostgresE2ESuite) SetupSuite() {
	s.ctx = context.Background()
	var err error

	s.pgContainer, err = postgres.Run(s.ctx,
		"postgres:17.5-alpine",
		postgres.WithDatabase("inventory"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(5*time.Minute),
		),
	)
	require.NoError(s.T(), err, "Failed to run PostgreSQL container")

	s.connStr, err = s.pgContainer.ConnectionString(s.ctx, "sslmode=disable")
	require.NoError(s.T(), err, "Failed to get connection string from container")
}

// TearDownSuite terminates the container.
func (s *PostgresE2ESuite) TearDownSuite() {
	if s.pgContainer != nil {
		if err := s.pgContainer.Terminate(s.ctx); err != nil {
			s.T().Logf("failed to terminate PostgreSQL container: %v", err)
		}
	}
}

func (s *PostgresE2ESuite) TestStockFlow() {
	stockFlow(s.T(), s.connStr)
}

// TestPostgresE2E runs the PostgreSQL end-to-end suite.
func TestPostgresE2E(t *testing.T) {
	if os.Getenv(skipE2ETests) == "1" {
		t.Skip("Skipping E2E tests based on " + skipE2ETests + " env var")
	}
	suite.Run(t, new(PostgresE2ESuite))
}
