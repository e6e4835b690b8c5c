package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/arossel/planboard/core/metrics"
)

// PromSink records pipeline events in Prometheus metrics.
type PromSink struct {
	runs     *prometheus.CounterVec
	duration *prometheus.HistogramVec
	entries  *prometheus.GaugeVec
	goals    prometheus.Gauge
	openings prometheus.Gauge
}

// NewPromSink registers pipeline metrics on the provided Prometheus
// registerer. If reg is nil, the default registerer is used. If the
// collectors are already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "planboard_pipeline_runs_total",
		Help: "Total number of normalization runs per table",
	}, []string{"table"})
	duration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "planboard_pipeline_duration_seconds",
		Help:    "Duration of one normalization run",
		Buckets: prometheus.DefBuckets,
	}, []string{"table"})
	entries := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "planboard_timeline_entries",
		Help: "Normalized entries in the current model, per table",
	}, []string{"table"})
	goals := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planboard_timeline_goals",
		Help: "Distinct goals in the current model",
	})
	openings := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "planboard_openings_ranked",
		Help: "Opening records returned by the last predictor run",
	})

	if err := reg.Register(runs); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			runs = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(duration); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			duration = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(entries); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			entries = are.ExistingCollector.(*prometheus.GaugeVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(goals); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			goals = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(openings); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			openings = are.ExistingCollector.(prometheus.Gauge)
		} else {
			return nil, err
		}
	}

	return &PromSink{runs: runs, duration: duration, entries: entries, goals: goals, openings: openings}, nil
}

// RecordPipelineRun updates the run counter, duration histogram and gauges.
func (s *PromSink) RecordPipelineRun(ev coremetrics.PipelineRunEvent) error {
	s.runs.WithLabelValues(ev.Table).Inc()
	s.duration.WithLabelValues(ev.Table).Observe(ev.Duration.Seconds())
	s.entries.WithLabelValues(ev.Table).Set(float64(ev.Entries))
	if ev.Table == "schedule" {
		s.goals.Set(float64(ev.Goals))
	}
	return nil
}

// RecordOpenings updates the openings gauge.
func (s *PromSink) RecordOpenings(ev coremetrics.OpeningsEvent) error {
	s.openings.Set(float64(ev.Returned))
	return nil
}
