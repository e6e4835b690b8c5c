package metrics

import (
	"errors"

	coremetrics "github.com/arossel/planboard/core/metrics"
)

// MultiSink fans events out to several sinks, collecting every error.
type MultiSink struct {
	sinks []coremetrics.MetricsSink
}

// NewMultiSink combines the given sinks into one.
func NewMultiSink(sinks ...coremetrics.MetricsSink) *MultiSink {
	return &MultiSink{sinks: sinks}
}

func (m *MultiSink) RecordPipelineRun(ev coremetrics.PipelineRunEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordPipelineRun(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m *MultiSink) RecordOpenings(ev coremetrics.OpeningsEvent) error {
	var errs []error
	for _, s := range m.sinks {
		if err := s.RecordOpenings(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
