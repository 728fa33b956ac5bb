package config

import (
	"fmt"
	"strings"
)

type CLIConfig struct {
	ClearScreen bool `koanf:"clearscreen"`
}

// String returns a string representation of the CLI configuration.
func (c *CLIConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- CLI ---\n")
	b.WriteString(fmt.Sprintf("  clearscreen: %t\n", c.ClearScreen))
	return b.String()
}
