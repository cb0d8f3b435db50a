// Package flatfile implements the storage interfaces over plain text files:
// a comma-separated employee file in and a fixed-width payroll table out.
package flatfile

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/mmynk/payroll/internal/models"
	"github.com/mmynk/payroll/internal/report"
	"github.com/mmynk/payroll/internal/roster"
	"github.com/mmynk/payroll/internal/storage"
)

const (
	// DefaultInputPath is the employee file read when none is configured.
	DefaultInputPath = "employee.txt"

	// DefaultOutputPath is the payroll file written when none is configured.
	DefaultOutputPath = "fortnightlypayroll.txt"
)

// Ensure the file types implement the storage interfaces.
var (
	_ storage.Source = (*EmployeeFile)(nil)
	_ storage.Sink   = (*PayrollFile)(nil)
)

// FormatError reports a line that does not split into the expected fields.
type FormatError struct {
	Path string
	Line int
	Want int
	Got  int
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("%s:%d: expected %d fields, got %d", e.Path, e.Line, e.Want, e.Got)
	if e.Want == roster.FieldCount && e.Got == 1 {
		msg += " (employee lines are comma-separated; the one-field-per-line format is not supported)"
	}
	return msg
}

// EmployeeFile reads "id, first, last, income, rate%" lines.
type EmployeeFile struct {
	Path string
}

// NewEmployeeFile returns an EmployeeFile for path, or DefaultInputPath if
// path is empty.
func NewEmployeeFile(path string) *EmployeeFile {
	if path == "" {
		path = DefaultInputPath
	}
	return &EmployeeFile{Path: path}
}

// ReadRows reads every non-blank line of the file as one row.
func (f *EmployeeFile) ReadRows(ctx context.Context) ([]roster.Row, error) {
	file, err := os.Open(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open employee file: %w", err)
	}
	defer file.Close()

	return parseRows(ctx, f.Path, file)
}

func parseRows(ctx context.Context, path string, r io.Reader) ([]roster.Row, error) {
	var rows []roster.Row
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			continue
		}
		fields := strings.Split(text, ",")
		if len(fields) != roster.FieldCount {
			return nil, &FormatError{Path: path, Line: line, Want: roster.FieldCount, Got: len(fields)}
		}
		var row roster.Row
		for i, field := range fields {
			row[i] = strings.TrimSpace(field)
		}
		rows = append(rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employee file: %w", err)
	}
	return rows, nil
}

// PayrollFile writes the payroll table, replacing any existing file.
type PayrollFile struct {
	Path string
}

// NewPayrollFile returns a PayrollFile for path, or DefaultOutputPath if
// path is empty.
func NewPayrollFile(path string) *PayrollFile {
	if path == "" {
		path = DefaultOutputPath
	}
	return &PayrollFile{Path: path}
}

// WriteResults writes the header and one row per employee.
func (f *PayrollFile) WriteResults(ctx context.Context, employees []models.Employee) (err error) {
	if err := ctx.Err(); err != nil {
		return err
	}
	if dir := filepath.Dir(f.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(f.Path)
	if err != nil {
		return fmt.Errorf("failed to create payroll file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close payroll file: %w", cerr)
		}
	}()

	if err := report.WriteTable(file, employees); err != nil {
		return fmt.Errorf("failed to write payroll file: %w", err)
	}
	return nil
}

// ExportedRow is one data row read back from a payroll file.
type ExportedRow struct {
	Row            roster.Row
	HourlyWage     string
	FortnightlyPay string
}

// ErrNoHeader is returned by ReadExport when the file does not start with the
// payroll table header.
var ErrNoHeader = errors.New("missing payroll table header")

// ReadExport reads the data rows of a payroll file written by WriteResults.
// Columns are split on whitespace, so names containing spaces cannot be read
// back.
func ReadExport(ctx context.Context, path string) ([]ExportedRow, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open payroll file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	if !scanner.Scan() || strings.TrimSpace(scanner.Text()) != strings.TrimSpace(report.Header()) {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("failed to read payroll file: %w", err)
		}
		return nil, ErrNoHeader
	}

	var rows []ExportedRow
	line := 1
	for scanner.Scan() {
		line++
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) != len(report.Columns) {
			return nil, &FormatError{Path: path, Line: line, Want: len(report.Columns), Got: len(fields)}
		}
		rows = append(rows, ExportedRow{
			Row:            roster.Row{fields[0], fields[1], fields[2], fields[3], fields[4] + "%"},
			HourlyWage:     fields[5],
			FortnightlyPay: fields[6],
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payroll file: %w", err)
	}
	return rows, nil
}
