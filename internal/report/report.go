// Package report formats employees as the fixed-width payroll table used on
// the console and in the output file.
package report

import (
	"bufio"
	"fmt"
	"io"

	"github.com/mmynk/payroll/internal/models"
)

const (
	headerFormat = "%-5s %-10s %-10s %10s %10s %12s %18s"
	rowFormat    = "%-5d %-10s %-10s %10.2f %10.0f %12.2f %18.2f"
)

// Column titles, in output order.
var Columns = []string{"ID", "FirstName", "LastName", "Income", "KiwiSaver%", "HourlyWage", "FortnightlyPayroll"}

// Header returns the table header line.
func Header() string {
	return fmt.Sprintf(headerFormat,
		Columns[0], Columns[1], Columns[2], Columns[3], Columns[4], Columns[5], Columns[6])
}

// Row returns one table line for e. Derived columns print as zero until a
// calculation pass has run.
func Row(e models.Employee) string {
	return fmt.Sprintf(rowFormat,
		e.ID, e.FirstName, e.LastName, e.AnnualIncome, e.KiwiSaverPercent(), e.HourlyWage, e.FortnightlyPay)
}

// WriteTable writes the header followed by one row per employee.
func WriteTable(w io.Writer, employees []models.Employee) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, Header()); err != nil {
		return err
	}
	for _, e := range employees {
		if _, err := fmt.Fprintln(bw, Row(e)); err != nil {
			return err
		}
	}
	return bw.Flush()
}
