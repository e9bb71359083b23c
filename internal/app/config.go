package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/modlink/internal/container"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	Paths   []string // declaration files or directories
	Exclude []string // glob patterns of files to skip

	// RootName names the root container. Declarations may name it
	// explicitly; any other name is an error.
	RootName string

	AllowCycles  bool // isolate cycles in a conflict group instead of failing
	StrictErrors bool // abort assembly on the first failing module
	FailOnUnused bool // treat unused exports as an error

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if len(cfg.Paths) == 0 {
		return nil, errors.New("at least one declaration path is required")
	}
	if cfg.RootName == "" {
		cfg.RootName = container.DefaultRootName
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level '%s': must be 'debug', 'info', 'warn', or 'error'", cfg.LogLevel)
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "json"
	case "json", "console", "text":
	default:
		return nil, fmt.Errorf("invalid log format '%s': must be 'json' or 'console'", cfg.LogFormat)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}

	return &cfg, nil
}
