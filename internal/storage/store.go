// Package storage provides abstractions for reading the roster and persisting
// payroll results.
package storage

import (
	"context"

	"github.com/mmynk/payroll/internal/models"
	"github.com/mmynk/payroll/internal/roster"
)

// Source supplies raw employee rows.
// This abstraction keeps the session independent of the file format.
type Source interface {
	// ReadRows returns every employee row in file order.
	// Returns an error if the source cannot be opened or is malformed.
	ReadRows(ctx context.Context) ([]roster.Row, error)
}

// Sink persists calculated payroll results.
type Sink interface {
	// WriteResults replaces any previous results with employees, in the
	// given order.
	WriteResults(ctx context.Context, employees []models.Employee) error
}
