// Package metrics exposes Prometheus instrumentation for visit workflows.
// All methods are safe to call on a nil *Metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	Transitions       *prometheus.CounterVec
	ConcurrentRetries prometheus.Counter
	SweepRuns         *prometheus.CounterVec
	SweepAppended     prometheus.Counter
	SweepClosed       prometheus.Counter
	SweepDuration     prometheus.Histogram
	ReportCache       *prometheus.CounterVec
	ReportDuration    prometheus.Histogram
}

// New registers every collector on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Transitions: f.NewCounterVec(prometheus.CounterOpts{
			Name: "homecare_visit_transitions_total",
			Help: "Visit and day transitions by action and outcome",
		}, []string{"action", "result"}),
		ConcurrentRetries: f.NewCounter(prometheus.CounterOpts{
			Name: "homecare_visit_version_conflicts_total",
			Help: "Saves retried because the visit version moved underneath",
		}),
		SweepRuns: f.NewCounterVec(prometheus.CounterOpts{
			Name: "homecare_sweep_runs_total",
			Help: "Reconciliation sweep runs by outcome",
		}, []string{"result"}),
		SweepAppended: f.NewCounter(prometheus.CounterOpts{
			Name: "homecare_sweep_days_appended_total",
			Help: "Day records appended by the sweep",
		}),
		SweepClosed: f.NewCounter(prometheus.CounterOpts{
			Name: "homecare_sweep_visits_closed_total",
			Help: "Visits force-closed by the sweep",
		}),
		SweepDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "homecare_sweep_duration_seconds",
			Help:    "Duration of a full reconciliation sweep",
			Buckets: []float64{0.05, 0.1, 0.5, 1, 2, 5, 10, 30, 60},
		}),
		ReportCache: f.NewCounterVec(prometheus.CounterOpts{
			Name: "homecare_attendance_report_cache_total",
			Help: "Attendance report cache lookups by result",
		}, []string{"result"}),
		ReportDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "homecare_attendance_report_duration_seconds",
			Help:    "Duration of building an attendance report from storage",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

func (m *Metrics) Transition(action string, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "rejected"
	}
	m.Transitions.WithLabelValues(action, result).Inc()
}

func (m *Metrics) VersionConflict() {
	if m == nil {
		return
	}
	m.ConcurrentRetries.Inc()
}

func (m *Metrics) ObserveSweep(start time.Time, appended, closed int, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.SweepRuns.WithLabelValues(result).Inc()
	m.SweepAppended.Add(float64(appended))
	m.SweepClosed.Add(float64(closed))
	m.SweepDuration.Observe(time.Since(start).Seconds())
}

func (m *Metrics) ReportCacheHit() {
	if m == nil {
		return
	}
	m.ReportCache.WithLabelValues("hit").Inc()
}

func (m *Metrics) ReportCacheMiss() {
	if m == nil {
		return
	}
	m.ReportCache.WithLabelValues("miss").Inc()
}

func (m *Metrics) ObserveReport(start time.Time) {
	if m == nil {
		return
	}
	m.ReportDuration.Observe(time.Since(start).Seconds())
}
