package app

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/depviz/internal/nodeid"
	"github.com/specialistvlad/depviz/internal/render"
)

// Config holds the run options given on the command line.
type Config struct {
	ConfigPath string // .hcl, .toml, .json or .yaml file

	LogFormat   string
	LogLevel    string
	Format      render.Format
	Reverse     string // name@version, empty for a graph listing
	Workers     int
	MetricsPort int // served until Run returns
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.ConfigPath == "" {
		return nil, errors.New("ConfigPath is a required configuration field and cannot be empty")
	}
	if cfg.Format == "" {
		cfg.Format = render.FormatText
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.MetricsPort < 0 {
		return nil, fmt.Errorf("metrics port must not be negative, got %d", cfg.MetricsPort)
	}
	if cfg.Reverse != "" {
		if _, err := nodeid.Parse(cfg.Reverse); err != nil {
			return nil, fmt.Errorf("reverse target: %w", err)
		}
	}
	return &cfg, nil
}
