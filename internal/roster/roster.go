// Package roster holds the in-memory employee roster and its queries.
package roster

import (
	"cmp"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/mmynk/payroll/internal/calculator"
	"github.com/mmynk/payroll/internal/models"
)

// FieldCount is the number of fields in one input row.
const FieldCount = 5

// Row is one unparsed input record: id, first name, last name, annual income
// and KiwiSaver percentage (e.g. "3%").
type Row [FieldCount]string

// Engine computes payroll for one employee. calculator.ComputePayroll
// satisfies it.
type Engine func(annualIncome, contributionRate float64) calculator.Payroll

// Roster is the ordered employee list. Order is insertion order until
// SortByID reorders it.
type Roster []models.Employee

// Load parses rows into a new Roster.
// Any ParseError or ValidationError aborts the load and no roster is returned.
func Load(rows []Row) (Roster, error) {
	r := make(Roster, 0, len(rows))
	for i, row := range rows {
		emp, err := parseRow(i+1, row)
		if err != nil {
			return nil, err
		}
		r = append(r, emp)
	}
	return r, nil
}

func parseRow(line int, row Row) (models.Employee, error) {
	idText := strings.TrimSpace(row[0])
	id, err := strconv.Atoi(idText)
	if err != nil {
		return models.Employee{}, &ParseError{Line: line, Field: "id", Value: idText, Err: err}
	}
	if id <= 0 {
		return models.Employee{}, &ValidationError{Line: line, Field: "id", Value: float64(id), Reason: "must be positive"}
	}

	incomeText := strings.TrimSpace(row[3])
	income, err := strconv.ParseFloat(incomeText, 64)
	if err != nil {
		return models.Employee{}, &ParseError{Line: line, Field: "annual income", Value: incomeText, Err: err}
	}
	if income < 0 || math.IsNaN(income) || math.IsInf(income, 0) {
		return models.Employee{}, &ValidationError{Line: line, Field: "annual income", Value: income, Reason: "must be a non-negative amount"}
	}

	rate, err := ParsePercent(row[4])
	if err != nil {
		return models.Employee{}, &ParseError{Line: line, Field: "kiwisaver rate", Value: strings.TrimSpace(row[4]), Err: err}
	}
	if rate < 0 || rate > 1 || math.IsNaN(rate) {
		return models.Employee{}, &ValidationError{Line: line, Field: "kiwisaver rate", Value: rate, Reason: "must be between 0% and 100%"}
	}

	return models.Employee{
		ID:            id,
		FirstName:     strings.TrimSpace(row[1]),
		LastName:      strings.TrimSpace(row[2]),
		AnnualIncome:  income,
		KiwiSaverRate: rate,
	}, nil
}

// ParsePercent parses a percentage such as "3%" or " 4.5 % " into a fraction.
// The trailing percent sign is required.
func ParsePercent(s string) (float64, error) {
	s = strings.TrimSpace(s)
	body, ok := strings.CutSuffix(s, "%")
	if !ok {
		return 0, errMissingPercent
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(body), 64)
	if err != nil {
		return 0, err
	}
	return v / 100, nil
}

// ApplyPayroll runs engine over every employee in current order, overwriting
// the derived fields in place. Running it again recomputes from the same
// inputs and overwrites the previous results. visit, if non-nil, is called
// with each employee after its fields are updated.
func (r Roster) ApplyPayroll(engine Engine, visit func(models.Employee)) {
	for i := range r {
		emp := &r[i]
		p := engine(emp.AnnualIncome, emp.KiwiSaverRate)
		emp.Tax = p.Tax
		emp.KiwiSaver = p.KiwiSaver
		emp.FortnightlyPay = p.FortnightlyPay
		emp.HourlyWage = p.HourlyWage
		emp.Calculated = true
		if visit != nil {
			visit(*emp)
		}
	}
}

// SortByID sorts the roster by ascending ID in place.
// Employees sharing an ID keep their relative order.
func (r Roster) SortByID() {
	slices.SortStableFunc(r, func(a, b models.Employee) int {
		return cmp.Compare(a.ID, b.ID)
	})
}

// FindByID returns the first employee with the given ID in current order.
func (r Roster) FindByID(id int) (models.Employee, error) {
	for _, emp := range r {
		if emp.ID == id {
			return emp, nil
		}
	}
	return models.Employee{}, ErrNotFound
}
