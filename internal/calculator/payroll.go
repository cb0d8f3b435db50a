package calculator

import "math"

const (
	// FortnightsPerYear is the number of pay periods used for net pay.
	FortnightsPerYear = 26

	// HoursPerYear is the working year used for the hourly wage: 52 weeks of 40 hours.
	HoursPerYear = 52 * 40
)

// Bracket is one band of the progressive income tax scale.
// Income up to and including UpperBound is taxed at Rate; the last bracket
// has an infinite UpperBound.
type Bracket struct {
	UpperBound float64
	Rate       float64
}

// Brackets is the NZ annual income tax scale, lowest band first.
var Brackets = []Bracket{
	{UpperBound: 15600, Rate: 0.105},
	{UpperBound: 53500, Rate: 0.175},
	{UpperBound: 78100, Rate: 0.30},
	{UpperBound: 180000, Rate: 0.33},
	{UpperBound: math.Inf(1), Rate: 0.39},
}

// Payroll is the result of one payroll computation for a single employee.
// All amounts except FortnightlyPay and HourlyWage are annual.
type Payroll struct {
	Tax            float64
	KiwiSaver      float64
	FortnightlyPay float64
	HourlyWage     float64
}

// Tax computes annual income tax over Brackets.
// Each completed band contributes its full width at its own rate and the band
// containing income contributes only the remainder. A value exactly on a
// threshold belongs to the lower band.
func Tax(income float64) float64 {
	tax := 0.0
	lower := 0.0
	for _, b := range Brackets {
		if income <= b.UpperBound {
			return tax + (income-lower)*b.Rate
		}
		tax += (b.UpperBound - lower) * b.Rate
		lower = b.UpperBound
	}
	return tax
}

// ComputePayroll derives tax, KiwiSaver, net fortnightly pay and hourly wage
// from an annual income and a KiwiSaver contribution rate in [0, 1].
//
// Inputs are not validated: negative income or an out-of-range rate produce
// meaningless results. Callers reject such values when loading the roster.
func ComputePayroll(annualIncome, contributionRate float64) Payroll {
	tax := Tax(annualIncome)
	kiwiSaver := annualIncome * contributionRate
	return Payroll{
		Tax:            tax,
		KiwiSaver:      kiwiSaver,
		FortnightlyPay: (annualIncome - tax - kiwiSaver) / FortnightsPerYear,
		HourlyWage:     annualIncome / HoursPerYear,
	}
}
