package app

import (
	"errors"
	"fmt"
	"time"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	FleetPath string // .hcl file or directory

	LogFormat       string
	LogLevel        string
	HealthcheckPort int

	// TickPeriod overrides the fleet file when positive.
	TickPeriod time.Duration
	// MaxTicks stops the simulation after that many ticks. Zero runs until cancelled.
	MaxTicks uint64
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.FleetPath == "" {
		return nil, errors.New("FleetPath is a required configuration field and cannot be empty")
	}

	switch cfg.LogFormat {
	case "":
		cfg.LogFormat = "json"
	case "text", "json":
	default:
		return nil, fmt.Errorf("invalid log format %q: must be text or json", cfg.LogFormat)
	}

	switch cfg.LogLevel {
	case "":
		cfg.LogLevel = "info"
	case "debug", "info", "warn", "error":
	default:
		return nil, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", cfg.LogLevel)
	}

	if cfg.HealthcheckPort < 0 || cfg.HealthcheckPort > 65535 {
		return nil, fmt.Errorf("invalid healthcheck port %d", cfg.HealthcheckPort)
	}
	if cfg.TickPeriod < 0 {
		return nil, fmt.Errorf("tick period must not be negative, got %s", cfg.TickPeriod)
	}

	return &cfg, nil
}
