package config

import (
	"fmt"
	"strings"
	"time"
)

// CatalogConfig tunes the HTTP product catalog client.
type CatalogConfig struct {
	Timeout time.Duration `koanf:"timeout"`
}

// String returns a string representation of the catalog configuration.
func (c *CatalogConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Catalog ---\n")
	b.WriteString(fmt.Sprintf("  timeout: %s\n", c.Timeout))
	return b.String()
}

func (c *CatalogConfig) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("catalog timeout must be greater than 0")
	}
	return nil
}
