package models

// Employee represents one roster entry and its calculated fortnightly pay.
type Employee struct {
	// ID is the employee identifier from the input file (positive, not unique).
	ID int

	// FirstName and LastName are taken verbatim from the input file.
	FirstName string
	LastName  string

	// AnnualIncome is the gross yearly income in NZD.
	AnnualIncome float64

	// KiwiSaverRate is the contribution rate as a fraction in [0, 1].
	// The input file carries it as a percentage (e.g. "3%").
	KiwiSaverRate float64

	// Derived fields. Meaningless until Calculated is true.

	// Tax is the annual income tax from the progressive brackets.
	Tax float64

	// KiwiSaver is the annual KiwiSaver deduction (AnnualIncome × KiwiSaverRate).
	KiwiSaver float64

	// FortnightlyPay is the net pay per fortnight after tax and KiwiSaver.
	FortnightlyPay float64

	// HourlyWage is AnnualIncome spread over 52 weeks of 40 hours.
	HourlyWage float64

	// Calculated reports whether a calculation pass has populated the
	// derived fields.
	Calculated bool
}

// FullName returns the first and last name separated by a space.
func (e Employee) FullName() string {
	switch {
	case e.FirstName == "":
		return e.LastName
	case e.LastName == "":
		return e.FirstName
	}
	return e.FirstName + " " + e.LastName
}

// KiwiSaverPercent returns the contribution rate as a percentage.
func (e Employee) KiwiSaverPercent() float64 {
	return e.KiwiSaverRate * 100
}
