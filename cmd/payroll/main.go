package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/mmynk/payroll/internal/config"
	"github.com/mmynk/payroll/internal/menu"
	"github.com/mmynk/payroll/internal/metrics"
	"github.com/mmynk/payroll/internal/session"
	"github.com/mmynk/payroll/internal/storage/flatfile"
	"github.com/mmynk/payroll/pkg/logging"
)

var (
	// Global flags
	inputPath   string
	outputPath  string
	logLevel    string
	metricsFile string
	payslipDir  string

	// Effective settings: environment overridden by flags
	cfg config.Config
)

// rootCmd runs the interactive menu
var rootCmd = &cobra.Command{
	Use:   "payroll",
	Short: "Fortnightly payroll for a small employee roster",
	Long: `Computes fortnightly payroll from an employee file: progressive income tax,
KiwiSaver deduction, net fortnightly pay and hourly wage.

Run without a subcommand to start the interactive menu. The employee file is
loaded at startup; each line is "id, first name, last name, annual income, rate%".`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runInteractive,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&inputPath, "input", "i", "", "employee file (env PAYROLL_INPUT, default employee.txt)")
	flags.StringVarP(&outputPath, "output", "o", "", "payroll output file (env PAYROLL_OUTPUT, default fortnightlypayroll.txt)")
	flags.StringVar(&logLevel, "log-level", "", "debug, info, warn or error (env LOG_LEVEL)")
	flags.StringVar(&metricsFile, "metrics-file", "", "write Prometheus textfile metrics here on exit (env PAYROLL_METRICS_FILE)")
	flags.StringVar(&payslipDir, "payslip-dir", "", "write PDF payslips here when saving (env PAYROLL_PAYSLIP_DIR)")

	runCmd.Flags().BoolVar(&sortOutput, "sort", false, "sort employees by ID before saving")
	rootCmd.AddCommand(runCmd, searchCmd, verifyCmd)
}

// setup loads configuration and configures logging before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("input") {
		loaded.InputPath = inputPath
	}
	if flags.Changed("output") {
		loaded.OutputPath = outputPath
	}
	if flags.Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if flags.Changed("metrics-file") {
		loaded.MetricsFile = metricsFile
	}
	if flags.Changed("payslip-dir") {
		loaded.PayslipDir = payslipDir
	}
	if err := loaded.Validate(); err != nil {
		return err
	}
	cfg = loaded

	logging.SetupWithLevel(logging.ParseLevel(cfg.LogLevel))
	slog.Debug("Configuration loaded",
		"input", cfg.InputPath,
		"output", cfg.OutputPath,
		"metrics_file", cfg.MetricsFile,
		"payslip_dir", cfg.PayslipDir,
	)
	return nil
}

// newSession builds a session over the configured files and loads the
// roster. A load failure is fatal for every command.
func newSession(ctx context.Context) (*session.Session, *metrics.Collector, error) {
	collector := metrics.New()
	opts := []session.Option{session.WithMetrics(collector)}
	if cfg.PayslipDir != "" {
		opts = append(opts, session.WithPayslipDir(cfg.PayslipDir))
	}
	sess := session.New(
		flatfile.NewEmployeeFile(cfg.InputPath),
		flatfile.NewPayrollFile(cfg.OutputPath),
		opts...,
	)
	if err := sess.Load(ctx); err != nil {
		slog.Error("Failed to load employees", "input", cfg.InputPath, "error", err)
		return nil, nil, err
	}
	return sess, collector, nil
}

// flushMetrics writes the metrics textfile if one is configured.
func flushMetrics(collector *metrics.Collector) {
	if cfg.MetricsFile == "" || collector == nil {
		return
	}
	if err := collector.WriteTextfile(cfg.MetricsFile); err != nil {
		slog.Warn("Failed to write metrics", "path", cfg.MetricsFile, "error", err)
	}
}

func runInteractive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, collector, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer flushMetrics(collector)

	opts := []menu.Option{menu.WithSaveDestination(cfg.OutputPath)}
	if cfg.PayslipDir != "" {
		opts = append(opts, menu.WithPayslips())
	}
	return menu.New(sess, cmd.InOrStdin(), cmd.OutOrStdout(), opts...).Run(ctx)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
