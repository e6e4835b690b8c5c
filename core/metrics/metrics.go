// Package metrics defines the events the pipeline emits for observability
// and the sink interface that records them. Sinks like PromSink and
// InfluxSink live under infra/metrics and can be combined with NewMultiSink.
package metrics

import "time"

// PipelineRunEvent captures one normalization run over an uploaded table.
type PipelineRunEvent struct {
	Snapshot string // dataset snapshot ID
	Table    string // "schedule" or "ticket"
	RawRows  int
	Entries  int
	Goals    int
	Duration time.Duration
	Time     time.Time
}

// OpeningsEvent captures one opening-predictor run.
type OpeningsEvent struct {
	Snapshot   string
	Candidates int // goals with a computable opening
	Returned   int // records after exclusion and ranking
	Time       time.Time
}

// MetricsSink records pipeline events for observability purposes.
type MetricsSink interface {
	RecordPipelineRun(ev PipelineRunEvent) error
	RecordOpenings(ev OpeningsEvent) error
}

// NopSink discards all events.
type NopSink struct{}

func (NopSink) RecordPipelineRun(PipelineRunEvent) error { return nil }
func (NopSink) RecordOpenings(OpeningsEvent) error       { return nil }
