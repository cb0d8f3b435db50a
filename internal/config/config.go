// Package config loads runtime settings from the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Config holds payroll tool settings. Command-line flags override these.
type Config struct {
	InputPath   string `env:"PAYROLL_INPUT"        envDefault:"employee.txt"`
	OutputPath  string `env:"PAYROLL_OUTPUT"       envDefault:"fortnightlypayroll.txt"`
	LogLevel    string `env:"LOG_LEVEL"            envDefault:"info"`
	MetricsFile string `env:"PAYROLL_METRICS_FILE"`
	PayslipDir  string `env:"PAYROLL_PAYSLIP_DIR"`
}

// Load parses the environment into a Config.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks that the settings are usable.
func (c Config) Validate() error {
	if strings.TrimSpace(c.InputPath) == "" {
		return fmt.Errorf("PAYROLL_INPUT must not be empty")
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return fmt.Errorf("PAYROLL_OUTPUT must not be empty")
	}
	if c.InputPath == c.OutputPath {
		return fmt.Errorf("PAYROLL_OUTPUT must differ from PAYROLL_INPUT")
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error")
	}
	return nil
}
