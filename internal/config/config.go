// Package config defines the engine configuration model and its HCL loader.
// The configuration file is optional; every field has a default so the
// engine runs unconfigured. Only ambient concerns live here (the extension
// allow-list, the voice table, logging options); per-character data belongs
// in each character's metadata record.
package config

import "fmt"

// Config holds the engine-wide settings.
type Config struct {
	// Extensions is the allow-list of image file extensions admitted into
	// the asset tree, including the leading dot.
	Extensions []string

	// Voices extends or overrides the built-in voice table.
	Voices map[string]string

	LogLevel  string
	LogFormat string
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Extensions: []string{".png", ".jpg", ".jpeg", ".webp"},
		Voices:     map[string]string{},
		LogLevel:   "info",
		LogFormat:  "text",
	}
}

// validate checks the closed-choice fields.
func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q: must be 'debug', 'info', 'warn', or 'error'", c.LogLevel)
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q: must be 'text' or 'json'", c.LogFormat)
	}
	if len(c.Extensions) == 0 {
		return fmt.Errorf("extension allow-list must not be empty")
	}
	return nil
}
