// Package menu runs the interactive payroll menu over a text stream.
package menu

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mmynk/payroll/internal/models"
	"github.com/mmynk/payroll/internal/report"
	"github.com/mmynk/payroll/internal/roster"
	"github.com/mmynk/payroll/internal/session"
)

// Command is one menu option. The set is closed: every Command has an entry
// in the handler table built by New.
type Command int

const (
	Exit           Command = 0
	Calculate      Command = 1
	SortAndDisplay Command = 2
	Search         Command = 3
	Save           Command = 4
)

// Commands lists the menu options in display order.
var Commands = []Command{Calculate, SortAndDisplay, Search, Save, Exit}

func (c Command) String() string {
	switch c {
	case Exit:
		return "Exit"
	case Calculate:
		return "Calculate Fortnightly Payroll"
	case SortAndDisplay:
		return "Sort and Display Employees"
	case Search:
		return "Search Employee by ID"
	case Save:
		return "Save to File"
	default:
		return fmt.Sprintf("Command(%d)", int(c))
	}
}

// Messages printed to the operator.
const (
	msgWelcome       = "Welcome to Kiwi Garage. Press Enter to Continue to the Main Menu"
	msgTitle         = "--- NewKiwi Garage Payroll Menu ---"
	msgPrompt        = "Enter your option: "
	msgSearchPrompt  = "Enter employee ID to search: "
	msgNotNumber     = "Please enter a number."
	msgInvalidOption = "Invalid option."
	msgNotFound      = "Employee not found."
	msgNeedLoad      = "Please load employee data first."
	msgNeedCalculate = "Please calculate payroll first."
	msgGoodbye       = "Goodbye!"
)

type handler func(ctx context.Context) error

// Menu reads operator choices from in and writes results to out.
type Menu struct {
	sess     *session.Session
	in       *bufio.Scanner
	out      io.Writer
	saveDest string
	payslips bool
	handlers map[Command]handler
}

// Option configures a Menu.
type Option func(*Menu)

// WithSaveDestination names the output file in the save confirmation.
func WithSaveDestination(path string) Option {
	return func(m *Menu) { m.saveDest = path }
}

// WithPayslips also writes PDF payslips after each successful save.
func WithPayslips() Option {
	return func(m *Menu) { m.payslips = true }
}

// New creates a Menu driving sess.
func New(sess *session.Session, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		sess: sess,
		in:   bufio.NewScanner(in),
		out:  out,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.handlers = map[Command]handler{
		Calculate:      m.calculate,
		SortAndDisplay: m.sortAndDisplay,
		Search:         m.search,
		Save:           m.save,
		Exit:           m.exit,
	}
	return m
}

// Run shows the welcome banner and then loops over the menu until the
// operator chooses Exit or input ends. Operator mistakes and recoverable
// errors are reported and the menu is shown again.
func (m *Menu) Run(ctx context.Context) error {
	m.println(msgWelcome)
	if _, ok := m.readLine(); !ok {
		return m.in.Err()
	}

	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		m.showMenu()
		line, ok := m.readLine()
		if !ok {
			if err := m.in.Err(); err != nil {
				return fmt.Errorf("failed to read menu option: %w", err)
			}
			m.println(msgGoodbye)
			return nil
		}

		n, err := strconv.Atoi(line)
		if err != nil {
			m.println(msgNotNumber)
			continue
		}
		cmd := Command(n)
		h, ok := m.handlers[cmd]
		if !ok {
			m.println(msgInvalidOption)
			continue
		}
		slog.Debug("Menu command", "command", cmd.String())
		if err := h(ctx); err != nil {
			m.reportError(err)
		}
		if cmd == Exit {
			return nil
		}
	}
}

func (m *Menu) showMenu() {
	m.println("")
	m.println(msgTitle)
	for _, c := range Commands {
		m.println(fmt.Sprintf("%d. %s", int(c), c))
	}
	fmt.Fprint(m.out, msgPrompt)
}

func (m *Menu) readLine() (string, bool) {
	if !m.in.Scan() {
		return "", false
	}
	return strings.TrimSpace(m.in.Text()), true
}

func (m *Menu) println(s string) {
	fmt.Fprintln(m.out, s)
}

func (m *Menu) reportError(err error) {
	var seqErr *session.SequencingError
	switch {
	case errors.As(err, &seqErr):
		if seqErr.Required == session.Calculated {
			m.println(msgNeedCalculate)
		} else {
			m.println(msgNeedLoad)
		}
	case errors.Is(err, roster.ErrNotFound):
		m.println(msgNotFound)
	default:
		slog.Error("Menu command failed", "error", err)
		m.println(fmt.Sprintf("Error: %v", err))
	}
}

func (m *Menu) calculate(ctx context.Context) error {
	var rows bytes.Buffer
	err := m.sess.Calculate(ctx, func(e models.Employee) {
		fmt.Fprintln(&rows, report.Row(e))
	})
	if err != nil {
		return err
	}
	m.println("\nCalculating Fortnightly Payroll...\n")
	m.println(report.Header())
	m.out.Write(rows.Bytes())
	m.println("\nFortnightly Payroll Calculated")
	return nil
}

func (m *Menu) sortAndDisplay(ctx context.Context) error {
	employees, err := m.sess.SortByID()
	if err != nil {
		return err
	}
	m.println("\nEmployee records sorted by ID:\n")
	return report.WriteTable(m.out, employees)
}

func (m *Menu) search(ctx context.Context) error {
	if err := m.sess.Require(session.OpSearch, session.Loaded); err != nil {
		return err
	}
	fmt.Fprint(m.out, msgSearchPrompt)
	line, ok := m.readLine()
	if !ok {
		return m.in.Err()
	}
	id, err := strconv.Atoi(line)
	if err != nil {
		m.println(msgNotNumber)
		return nil
	}

	emp, err := m.sess.FindByID(id)
	if err != nil {
		return err
	}
	return report.WriteTable(m.out, []models.Employee{emp})
}

func (m *Menu) save(ctx context.Context) error {
	if err := m.sess.Save(ctx); err != nil {
		return err
	}
	if m.saveDest != "" {
		m.println(fmt.Sprintf("Data saved to %s", m.saveDest))
	} else {
		m.println("Data saved")
	}

	if !m.payslips {
		return nil
	}
	paths, err := m.sess.WritePayslips()
	if err != nil {
		return err
	}
	m.println(fmt.Sprintf("%d payslips written", len(paths)))
	return nil
}

func (m *Menu) exit(ctx context.Context) error {
	m.println(msgGoodbye)
	return nil
}
