// Package payslip renders per-employee PDF payslips for a calculation pass.
package payslip

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jung-kurt/gofpdf"

	"github.com/mmynk/payroll/internal/calculator"
	"github.com/mmynk/payroll/internal/models"
)

// FileName returns the payslip file name for e. Employees sharing an ID are
// told apart by their roster position.
func FileName(e models.Employee, position int) string {
	return fmt.Sprintf("payslip-%d-%03d.pdf", e.ID, position+1)
}

// Render writes a single-page payslip for e to w.
// runID identifies the calculation pass that produced the figures.
func Render(w io.Writer, e models.Employee, runID string) error {
	if !e.Calculated {
		return fmt.Errorf("employee %d has no calculated payroll", e.ID)
	}

	grossFortnight := e.AnnualIncome / calculator.FortnightsPerYear
	taxFortnight := e.Tax / calculator.FortnightsPerYear
	kiwiSaverFortnight := e.KiwiSaver / calculator.FortnightsPerYear

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(40, 10, "Fortnightly Payslip")
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 12)
	pdf.Cell(0, 8, fmt.Sprintf("Employee: %s", e.FullName()))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Employee ID: %d", e.ID))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Annual income: %.2f NZD", e.AnnualIncome))
	pdf.Ln(7)
	pdf.Cell(0, 8, fmt.Sprintf("Hourly wage: %.2f NZD", e.HourlyWage))
	pdf.Ln(10)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "This fortnight", "B", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, "NZD", "B", 1, "R", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	lines := []struct {
		label  string
		amount float64
	}{
		{"Gross pay", grossFortnight},
		{"PAYE income tax", -taxFortnight},
		{fmt.Sprintf("KiwiSaver (%.0f%%)", e.KiwiSaverPercent()), -kiwiSaverFortnight},
	}
	for _, l := range lines {
		pdf.CellFormat(80, 7, l.label, "", 0, "L", false, 0, "")
		pdf.CellFormat(40, 7, fmt.Sprintf("%.2f", l.amount), "", 1, "R", false, 0, "")
	}
	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(80, 8, "Net pay", "T", 0, "L", false, 0, "")
	pdf.CellFormat(40, 8, fmt.Sprintf("%.2f", e.FortnightlyPay), "T", 1, "R", false, 0, "")

	pdf.Ln(10)
	pdf.SetFont("Helvetica", "I", 8)
	pdf.Cell(0, 6, fmt.Sprintf("Payroll run %s", runID))

	return pdf.Output(w)
}

// WriteAll writes one payslip per employee into dir and returns the paths
// written, in roster order.
func WriteAll(dir string, employees []models.Employee, runID string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create payslip directory: %w", err)
	}

	paths := make([]string, 0, len(employees))
	for i, e := range employees {
		path := filepath.Join(dir, FileName(e, i))
		if err := writeFile(path, e, runID); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func writeFile(path string, e models.Employee, runID string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create payslip: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close payslip: %w", cerr)
		}
	}()

	if err := Render(f, e, runID); err != nil {
		return fmt.Errorf("failed to render payslip for employee %d: %w", e.ID, err)
	}
	return nil
}
