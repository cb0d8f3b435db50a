// Package metrics records payroll run statistics with Prometheus collectors.
//
// The tool is a short-lived process, so metrics are written to a file in the
// node-exporter textfile format instead of being served over HTTP.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Collector holds the payroll collectors on a private registry.
type Collector struct {
	registry *prometheus.Registry

	runs               prometheus.Counter
	employees          prometheus.Counter
	saves              *prometheus.CounterVec
	rosterSize         prometheus.Gauge
	lastRun            prometheus.Gauge
	fortnightlyTotal   prometheus.Gauge
	taxTotal           prometheus.Gauge
	kiwiSaverTotal     prometheus.Gauge
	fortnightlyPayDist prometheus.Histogram
}

// New creates a Collector with all collectors registered.
func New() *Collector {
	c := &Collector{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payroll_calculation_runs_total",
			Help: "Number of payroll calculation passes.",
		}),
		employees: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "payroll_employees_processed_total",
			Help: "Number of employee records processed across all passes.",
		}),
		saves: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "payroll_saves_total",
			Help: "Number of attempts to write the payroll file, by result.",
		}, []string{"result"}),
		rosterSize: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_roster_size",
			Help: "Number of employees in the loaded roster.",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_last_run_timestamp_seconds",
			Help: "Unix time of the last payroll calculation pass.",
		}),
		fortnightlyTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_fortnightly_pay_total_nzd",
			Help: "Sum of net fortnightly pay in the last pass.",
		}),
		taxTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_annual_tax_total_nzd",
			Help: "Sum of annual income tax in the last pass.",
		}),
		kiwiSaverTotal: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "payroll_annual_kiwisaver_total_nzd",
			Help: "Sum of annual KiwiSaver deductions in the last pass.",
		}),
		fortnightlyPayDist: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "payroll_fortnightly_pay_nzd",
			Help:    "Distribution of net fortnightly pay per employee.",
			Buckets: []float64{500, 1000, 1500, 2000, 3000, 4000, 6000},
		}),
	}
	c.registry.MustRegister(
		c.runs,
		c.employees,
		c.saves,
		c.rosterSize,
		c.lastRun,
		c.fortnightlyTotal,
		c.taxTotal,
		c.kiwiSaverTotal,
		c.fortnightlyPayDist,
	)
	return c
}

// Registry returns the registry the collectors are registered on.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}

// Run describes one completed calculation pass.
type Run struct {
	Employees        int
	FortnightlyTotal float64
	TaxTotal         float64
	KiwiSaverTotal   float64
	UnixTime         float64
}

// RecordLoad records the size of a freshly loaded roster.
func (c *Collector) RecordLoad(size int) {
	c.rosterSize.Set(float64(size))
}

// ObservePay records one employee's net fortnightly pay.
func (c *Collector) ObservePay(fortnightly float64) {
	c.fortnightlyPayDist.Observe(fortnightly)
}

// RecordRun records the totals of a completed calculation pass.
func (c *Collector) RecordRun(r Run) {
	c.runs.Inc()
	c.employees.Add(float64(r.Employees))
	c.fortnightlyTotal.Set(r.FortnightlyTotal)
	c.taxTotal.Set(r.TaxTotal)
	c.kiwiSaverTotal.Set(r.KiwiSaverTotal)
	c.lastRun.Set(r.UnixTime)
}

// RecordSave records the outcome of writing the payroll file.
func (c *Collector) RecordSave(err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.saves.WithLabelValues(result).Inc()
}

// WriteTextfile writes the current values to path in the text exposition
// format, replacing the file atomically.
func (c *Collector) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, c.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
