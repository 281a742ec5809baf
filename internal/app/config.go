package app

import "errors"

// Config holds everything an App instance needs to run.
type Config struct {
	// AssetRoot is the directory holding one sub-directory per character.
	AssetRoot string
	// ConfigPath optionally names an engine configuration file (HCL).
	ConfigPath string

	// Resolve-mode state. When Character is empty the app prints the
	// inventory of everything it loaded instead.
	Character   string
	Pose        string
	Expression  string
	Outfit      string
	Accessories []string
	Blush       bool
	Strict      bool

	// Logging overrides; when empty the engine configuration applies.
	LogLevel  string
	LogFormat string
}

// NewConfig validates a Config.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.AssetRoot == "" {
		return nil, errors.New("AssetRoot is a required configuration field and cannot be empty")
	}
	return &cfg, nil
}
