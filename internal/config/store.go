package config

import (
	"fmt"
	"strings"
	"time"
)

// Driver identifies a store implementation.
type Driver string

const (
	DriverPostgres Driver = "postgres"
	DriverSQLite   Driver = "sqlite"
	DriverMemory   Driver = "memory"
	DriverCatalog  Driver = "catalog"
)

// StoreConfig selects and tunes the product store. The driver follows from
// the URL scheme: postgres://, postgresql://, sqlite://, memory://, http(s)://.
type StoreConfig struct {
	URL     string        `koanf:"url"`
	Timeout time.Duration `koanf:"timeout"`
}

// Driver returns the store implementation named by the URL scheme.
func (c *StoreConfig) Driver() (Driver, error) {
	switch {
	case strings.HasPrefix(c.URL, "postgres://"), strings.HasPrefix(c.URL, "postgresql://"):
		return DriverPostgres, nil
	case strings.HasPrefix(c.URL, "sqlite://"):
		return DriverSQLite, nil
	case strings.HasPrefix(c.URL, "memory://"):
		return DriverMemory, nil
	case strings.HasPrefix(c.URL, "http://"), strings.HasPrefix(c.URL, "https://"):
		return DriverCatalog, nil
	default:
		return "", fmt.Errorf("unsupported store URL scheme: %s", maskURL(c.URL))
	}
}

// String returns a string representation of the store configuration.
func (c *StoreConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Store ---\n")
	b.WriteString(fmt.Sprintf("  url: %s\n", maskURL(c.URL)))
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *StoreConfig) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("store URL is not configured")
	}
	if _, err := c.Driver(); err != nil {
		return err
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("store timeout must be greater than 0")
	}
	return nil
}

func maskURL(url string) string {
	if url == "" {
		return "<not configured>"
	}
	// Mask the URL by replacing the username and password with "****"
	scheme, rest, found := strings.Cut(url, "://")
	if !found {
		return "****"
	}
	parts := strings.Split(rest, "@")
	if len(parts) == 2 {
		return scheme + "://****@" + parts[1]
	}
	return url
}
