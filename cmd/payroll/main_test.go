package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/payroll/internal/config"
	"github.com/mmynk/payroll/internal/report"
)

const employeeFile = `5, Aroha, Ngata, 100000, 3%
2, Ben, Smith, 15600, 3%
5, Cara, Jones, 60000, 4%
`

// useConfig points the global configuration at a temp workspace.
func useConfig(t *testing.T, input string) string {
	t.Helper()
	dir := t.TempDir()
	inputPath := filepath.Join(dir, "employee.txt")
	require.NoError(t, os.WriteFile(inputPath, []byte(input), 0644))

	prev := cfg
	cfg = config.Config{
		InputPath:  inputPath,
		OutputPath: filepath.Join(dir, "fortnightlypayroll.txt"),
		LogLevel:   "error",
	}
	t.Cleanup(func() { cfg = prev })
	return dir
}

func testCommand(stdin string) (*cobra.Command, *bytes.Buffer) {
	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetContext(context.Background())
	cmd.SetOut(&out)
	cmd.SetIn(strings.NewReader(stdin))
	return cmd, &out
}

func TestRunBatch(t *testing.T) {
	useConfig(t, employeeFile)
	sortOutput = true
	defer func() { sortOutput = false }()

	cmd, out := testCommand("")
	require.NoError(t, runBatch(cmd, nil))

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, report.Header(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "2 "))
	assert.Contains(t, lines[2], "Aroha")
	assert.Contains(t, lines[3], "Cara")

	assert.True(t, strings.HasPrefix(out.String(), string(data)), "stdout shows the saved table")
	assert.Contains(t, out.String(), "Data saved to "+cfg.OutputPath)
}

func TestRunBatchWithPayslipsAndMetrics(t *testing.T) {
	dir := useConfig(t, employeeFile)
	cfg.PayslipDir = filepath.Join(dir, "payslips")
	cfg.MetricsFile = filepath.Join(dir, "payroll.prom")

	cmd, _ := testCommand("")
	require.NoError(t, runBatch(cmd, nil))

	entries, err := os.ReadDir(cfg.PayslipDir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)

	metrics, err := os.ReadFile(cfg.MetricsFile)
	require.NoError(t, err)
	assert.Contains(t, string(metrics), "payroll_calculation_runs_total 1")
	assert.Contains(t, string(metrics), `payroll_saves_total{result="ok"} 1`)
}

func TestRunBatchLoadFailure(t *testing.T) {
	useConfig(t, "1, A, B, not-a-number, 3%\n")

	cmd, _ := testCommand("")
	err := runBatch(cmd, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "annual income")
	assert.NoFileExists(t, cfg.OutputPath)
}

func TestRunBatchMissingInput(t *testing.T) {
	useConfig(t, employeeFile)
	cfg.InputPath = filepath.Join(t.TempDir(), "missing.txt")

	cmd, _ := testCommand("")
	assert.ErrorIs(t, runBatch(cmd, nil), os.ErrNotExist)
}

func TestRunSearch(t *testing.T) {
	useConfig(t, employeeFile)

	cmd, out := testCommand("")
	require.NoError(t, runSearch(cmd, []string{"5"}))
	assert.Contains(t, out.String(), "Aroha")
	assert.NotContains(t, out.String(), "Cara")

	cmd, _ = testCommand("")
	assert.EqualError(t, runSearch(cmd, []string{"42"}), "employee 42 not found")

	cmd, _ = testCommand("")
	assert.Error(t, runSearch(cmd, []string{"abc"}))
}

func TestRunInteractive(t *testing.T) {
	useConfig(t, employeeFile)

	cmd, out := testCommand("\n1\n4\n0\n")
	require.NoError(t, runInteractive(cmd, nil))

	assert.Contains(t, out.String(), "Data saved to "+cfg.OutputPath)
	assert.FileExists(t, cfg.OutputPath)
}

func TestRunVerify(t *testing.T) {
	useConfig(t, employeeFile)
	cmd, _ := testCommand("")
	require.NoError(t, runBatch(cmd, nil))

	cmd, out := testCommand("")
	require.NoError(t, runVerify(cmd, nil))
	assert.Contains(t, out.String(), "3 rows verified")
}

func TestRunVerifyDetectsTampering(t *testing.T) {
	useConfig(t, employeeFile)
	cmd, _ := testCommand("")
	require.NoError(t, runBatch(cmd, nil))

	data, err := os.ReadFile(cfg.OutputPath)
	require.NoError(t, err)
	tampered := filepath.Join(t.TempDir(), "tampered.txt")
	require.NoError(t, os.WriteFile(tampered, []byte(strings.Replace(string(data), "519.00", "619.00", 1)), 0644))

	cmd, out := testCommand("")
	err = runVerify(cmd, []string{tampered})
	require.EqualError(t, err, "1 of 3 rows differ")
	assert.Contains(t, out.String(), "FortnightlyPayroll saved 619.00, recalculated 519.00")
}
