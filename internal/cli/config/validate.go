package config

import (
	"fmt"
	"os"
	"strings"
)

var outputModes = []string{"auto", "text", "markdown", "json"}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.DatasetsDir == "" {
		return fmt.Errorf("datasets_dir is required")
	}

	valid := false
	for _, m := range outputModes {
		if c.OutputFormat == m {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid output mode %q\nHint: use one of %s", c.OutputFormat, strings.Join(outputModes, ", "))
	}

	for name := range c.Connections {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("connections: empty connection name")
		}
	}
	return nil
}

// ValidateDirectories checks if required directories exist.
func (c *Config) ValidateDirectories() error {
	if _, err := os.Stat(c.DatasetsDir); os.IsNotExist(err) {
		return fmt.Errorf("datasets directory does not exist: %s\nHint: Create the directory or use --datasets-dir to specify a different path", c.DatasetsDir)
	}
	return nil
}
