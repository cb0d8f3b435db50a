package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PAYROLL_INPUT", "")
	t.Setenv("PAYROLL_OUTPUT", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("PAYROLL_METRICS_FILE", "")
	t.Setenv("PAYROLL_PAYSLIP_DIR", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "employee.txt", cfg.InputPath)
	assert.Equal(t, "fortnightlypayroll.txt", cfg.OutputPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Empty(t, cfg.MetricsFile)
	assert.Empty(t, cfg.PayslipDir)
	assert.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PAYROLL_INPUT", "/data/staff.txt")
	t.Setenv("PAYROLL_OUTPUT", "/data/out.txt")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("PAYROLL_METRICS_FILE", "/var/lib/node_exporter/payroll.prom")
	t.Setenv("PAYROLL_PAYSLIP_DIR", "/data/payslips")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, Config{
		InputPath:   "/data/staff.txt",
		OutputPath:  "/data/out.txt",
		LogLevel:    "debug",
		MetricsFile: "/var/lib/node_exporter/payroll.prom",
		PayslipDir:  "/data/payslips",
	}, cfg)
}

func TestValidate(t *testing.T) {
	valid := Config{InputPath: "in.txt", OutputPath: "out.txt", LogLevel: "warn"}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "upper-case level", mutate: func(c *Config) { c.LogLevel = "ERROR" }},
		{name: "empty input", mutate: func(c *Config) { c.InputPath = " " }, wantErr: true},
		{name: "empty output", mutate: func(c *Config) { c.OutputPath = "" }, wantErr: true},
		{name: "output overwrites input", mutate: func(c *Config) { c.OutputPath = c.InputPath }, wantErr: true},
		{name: "unknown level", mutate: func(c *Config) { c.LogLevel = "trace" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
