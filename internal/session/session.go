// Package session owns the roster for one run of the payroll tool and
// enforces the order in which operations may be invoked.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/mmynk/payroll/internal/calculator"
	"github.com/mmynk/payroll/internal/metrics"
	"github.com/mmynk/payroll/internal/models"
	"github.com/mmynk/payroll/internal/payslip"
	"github.com/mmynk/payroll/internal/roster"
	"github.com/mmynk/payroll/internal/storage"
)

// State is the lifecycle stage of a Session.
type State int

const (
	Uninitialized State = iota
	Loaded
	Calculated
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case Loaded:
		return "loaded"
	case Calculated:
		return "calculated"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// Operation names used in SequencingError.
const (
	OpCalculate = "calculate payroll"
	OpSort      = "sort employees"
	OpSearch    = "search employees"
	OpSave      = "save payroll"
	OpPayslips  = "write payslips"
)

// SequencingError is returned when an operation is invoked before the
// session has reached the state it requires. The session is left unchanged.
type SequencingError struct {
	Op       string
	Required State
	Current  State
}

func (e *SequencingError) Error() string {
	return fmt.Sprintf("cannot %s: roster is %s, must be %s", e.Op, e.Current, e.Required)
}

// ErrNoPayslipDir is returned by WritePayslips when no directory is configured.
var ErrNoPayslipDir = errors.New("no payslip directory configured")

// Session holds the roster and its state. It is not safe for concurrent use.
type Session struct {
	source     storage.Source
	sink       storage.Sink
	engine     roster.Engine
	metrics    *metrics.Collector
	payslipDir string
	now        func() time.Time

	state  State
	roster roster.Roster
	runID  string
}

// Option configures a Session.
type Option func(*Session)

// WithMetrics records load, calculation and save statistics on c.
func WithMetrics(c *metrics.Collector) Option {
	return func(s *Session) { s.metrics = c }
}

// WithPayslipDir enables WritePayslips into dir.
func WithPayslipDir(dir string) Option {
	return func(s *Session) { s.payslipDir = dir }
}

// WithEngine replaces calculator.ComputePayroll.
func WithEngine(e roster.Engine) Option {
	return func(s *Session) { s.engine = e }
}

// WithClock replaces time.Now for run timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// New creates an Uninitialized session reading from source and saving to sink.
func New(source storage.Source, sink storage.Sink, opts ...Option) *Session {
	s := &Session{
		source: source,
		sink:   sink,
		engine: calculator.ComputePayroll,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns the current state.
func (s *Session) State() State {
	return s.state
}

// RunID returns the ID of the last calculation pass, or "" if none has run
// since the last load.
func (s *Session) RunID() string {
	return s.runID
}

// Employees returns a copy of the roster in current order.
func (s *Session) Employees() []models.Employee {
	return slices.Clone(s.roster)
}

// Require returns a SequencingError naming op if the session has not reached
// the required state.
func (s *Session) Require(op string, required State) error {
	if s.state < required {
		return &SequencingError{Op: op, Required: required, Current: s.state}
	}
	return nil
}

// Load reads and parses the whole roster, replacing any previous one and
// discarding its calculated results. On failure the session is unchanged.
func (s *Session) Load(ctx context.Context) error {
	rows, err := s.source.ReadRows(ctx)
	if err != nil {
		return err
	}
	r, err := roster.Load(rows)
	if err != nil {
		return fmt.Errorf("failed to load roster: %w", err)
	}

	s.roster = r
	s.state = Loaded
	s.runID = ""
	if s.metrics != nil {
		s.metrics.RecordLoad(len(r))
	}
	slog.Info("Roster loaded", "employees", len(r))
	return nil
}

// Calculate runs the payroll engine over the roster, overwriting derived
// fields. It may be called again to recompute. visit, if non-nil, receives
// each employee in roster order as it is calculated.
func (s *Session) Calculate(ctx context.Context, visit func(models.Employee)) error {
	if err := s.Require(OpCalculate, Loaded); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	runID := uuid.New().String()
	var run metrics.Run
	s.roster.ApplyPayroll(s.engine, func(e models.Employee) {
		run.Employees++
		run.FortnightlyTotal += e.FortnightlyPay
		run.TaxTotal += e.Tax
		run.KiwiSaverTotal += e.KiwiSaver
		if s.metrics != nil {
			s.metrics.ObservePay(e.FortnightlyPay)
		}
		slog.Debug("Employee calculated",
			"run_id", runID,
			"employee_id", e.ID,
			"tax", e.Tax,
			"fortnightly_pay", e.FortnightlyPay,
		)
		if visit != nil {
			visit(e)
		}
	})
	run.UnixTime = float64(s.now().Unix())

	s.state = Calculated
	s.runID = runID
	if s.metrics != nil {
		s.metrics.RecordRun(run)
	}
	slog.Info("Payroll calculated",
		"run_id", runID,
		"employees", run.Employees,
		"fortnightly_total", run.FortnightlyTotal,
	)
	return nil
}

// SortByID stably sorts the roster by ID and returns a copy in the new order.
func (s *Session) SortByID() ([]models.Employee, error) {
	if err := s.Require(OpSort, Loaded); err != nil {
		return nil, err
	}
	s.roster.SortByID()
	return s.Employees(), nil
}

// FindByID returns the first employee with id in current roster order.
func (s *Session) FindByID(id int) (models.Employee, error) {
	if err := s.Require(OpSearch, Loaded); err != nil {
		return models.Employee{}, err
	}
	return s.roster.FindByID(id)
}

// Save writes the calculated roster, in current order, to the sink.
func (s *Session) Save(ctx context.Context) error {
	if err := s.Require(OpSave, Calculated); err != nil {
		return err
	}
	err := s.sink.WriteResults(ctx, s.roster)
	if s.metrics != nil {
		s.metrics.RecordSave(err)
	}
	if err != nil {
		return err
	}
	slog.Info("Payroll saved", "run_id", s.runID, "employees", len(s.roster))
	return nil
}

// WritePayslips renders one PDF payslip per employee into the configured
// directory and returns the files written.
func (s *Session) WritePayslips() ([]string, error) {
	if err := s.Require(OpPayslips, Calculated); err != nil {
		return nil, err
	}
	if s.payslipDir == "" {
		return nil, ErrNoPayslipDir
	}
	paths, err := payslip.WriteAll(s.payslipDir, s.roster, s.runID)
	if err != nil {
		return paths, err
	}
	slog.Info("Payslips written", "run_id", s.runID, "dir", s.payslipDir, "count", len(paths))
	return paths, nil
}
