// Package iometrics exposes counters of a conversion run in the
// Prometheus text format, suitable for the node_exporter textfile
// collector.
package iometrics

import (
	"github.com/gnames/esdveg/pkg/esdveg"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics of one conversion run. Each instance has its own registry.
type Metrics struct {
	reg        *prometheus.Registry
	sites      prometheus.Counter
	skipped    *prometheus.CounterVec
	entries    *prometheus.CounterVec
	ambiguous  prometheus.Counter
	dropped    prometheus.Counter
	suggestion prometheus.Counter
	exported   prometheus.Counter
	duration   prometheus.Gauge
}

// New creates Metrics with a private registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		reg: reg,
		sites: f.NewCounter(prometheus.CounterOpts{
			Name: "esdveg_sites_total",
			Help: "Number of ecological sites converted",
		}),
		skipped: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esdveg_rows_skipped_total",
			Help: "Number of input rows skipped",
		}, []string{"reason"}),
		entries: f.NewCounterVec(prometheus.CounterOpts{
			Name: "esdveg_entries_total",
			Help: "Number of species entries by substitution result",
		}, []string{"result"}),
		ambiguous: f.NewCounter(prometheus.CounterOpts{
			Name: "esdveg_ambiguous_names_total",
			Help: "Number of scientific names with more than one code",
		}),
		dropped: f.NewCounter(prometheus.CounterOpts{
			Name: "esdveg_dropped_strata_total",
			Help: "Number of strata beyond the third one",
		}),
		suggestion: f.NewCounter(prometheus.CounterOpts{
			Name: "esdveg_audit_suggestions_total",
			Help: "Number of unmatched names with a suggested code",
		}),
		exported: f.NewCounter(prometheus.CounterOpts{
			Name: "esdveg_exported_rows_total",
			Help: "Number of rows exported to PostgreSQL",
		}),
		duration: f.NewGauge(prometheus.GaugeOpts{
			Name: "esdveg_run_duration_seconds",
			Help: "Duration of the conversion run",
		}),
	}
}

// Registry returns the registry of the metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.reg
}

// Observe records a summary of a finished run.
func (m *Metrics) Observe(s *esdveg.Summary) {
	m.sites.Add(float64(s.Sites))
	m.skipped.WithLabelValues("invalid").Add(float64(s.SkippedRows))
	m.skipped.WithLabelValues("duplicate").Add(float64(s.DuplicateRows))
	m.entries.WithLabelValues("matched").Add(float64(s.Matched))
	m.entries.WithLabelValues("unmatched").Add(float64(s.Unmatched))
	m.ambiguous.Add(float64(s.AmbiguousNames))
	m.dropped.Add(float64(s.DroppedStrata))
	m.suggestion.Add(float64(s.Suggestions))
	m.exported.Add(float64(s.Exported))
	m.duration.Set(s.Duration.Seconds())
}

// WriteFile saves all gathered metrics to path atomically.
func (m *Metrics) WriteFile(path string) error {
	err := prometheus.WriteToTextfile(path, m.reg)
	if err != nil {
		return MetricsWriteError(path, err)
	}
	return nil
}
