package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/mmynk/payroll/internal/models"
	"github.com/mmynk/payroll/internal/report"
	"github.com/mmynk/payroll/internal/roster"
)

var sortOutput bool

// runCmd calculates and saves payroll without the menu
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Calculate payroll and save it without the interactive menu",
	Long: `Loads the employee file, calculates payroll for every employee, optionally
sorts the roster by ID, writes the payroll file and prints the table.

Example:
  payroll run --sort --output /tmp/fortnightlypayroll.txt`,
	Args: cobra.NoArgs,
	RunE: runBatch,
}

// searchCmd prints one employee's calculated payroll
var searchCmd = &cobra.Command{
	Use:   "search [id]",
	Short: "Calculate payroll and print the first employee with the given ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, collector, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer flushMetrics(collector)

	if err := sess.Calculate(ctx, nil); err != nil {
		return err
	}
	employees := sess.Employees()
	if sortOutput {
		if employees, err = sess.SortByID(); err != nil {
			return err
		}
	}
	if err := sess.Save(ctx); err != nil {
		return err
	}
	if cfg.PayslipDir != "" {
		if _, err := sess.WritePayslips(); err != nil {
			return err
		}
	}

	if err := report.WriteTable(cmd.OutOrStdout(), employees); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "\nData saved to %s\n", cfg.OutputPath)
	return nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	id, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("employee ID must be a number: %q", args[0])
	}

	ctx := cmd.Context()
	sess, collector, err := newSession(ctx)
	if err != nil {
		return err
	}
	defer flushMetrics(collector)

	if err := sess.Calculate(ctx, nil); err != nil {
		return err
	}
	emp, err := sess.FindByID(id)
	if errors.Is(err, roster.ErrNotFound) {
		return fmt.Errorf("employee %d not found", id)
	}
	if err != nil {
		return err
	}
	return report.WriteTable(cmd.OutOrStdout(), []models.Employee{emp})
}
