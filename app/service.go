// Package app wires the pipeline, the API surface and the observability
// sinks into one service. The service owns the only mutable state in the
// program: the last accepted uploads and the dashboard UI state.
package app

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/arossel/planboard/api"
	"github.com/arossel/planboard/config"
	coremetrics "github.com/arossel/planboard/core/metrics"
	"github.com/arossel/planboard/core/model"
	"github.com/arossel/planboard/core/normalize"
	"github.com/arossel/planboard/core/openings"
	"github.com/arossel/planboard/core/timeline"
	"github.com/arossel/planboard/core/uistate"
	"github.com/arossel/planboard/infra/logger"
	"github.com/arossel/planboard/infra/metrics"
	"github.com/arossel/planboard/infra/mqtt"
	"github.com/arossel/planboard/internal/eventbus"
	"github.com/arossel/planboard/pkg/tabular"
)

// Event is published on the internal bus after every successful recompute.
type Event struct {
	Snapshot string
	Openings openings.Result
}

// Service holds the current dataset and serves the API. A rejected upload
// never touches the stored dataset; a successful one replaces it wholesale
// and recomputes all derived state.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.MetricsSink
	bus  *eventbus.Bus[Event]
	pub  mqtt.Publisher

	mu        sync.RWMutex
	snapshot  string
	schedules *tabular.Table
	entries   []model.ScheduleEntry
	tickets   []model.Ticket
	ui        uistate.State
	openings  *openings.Result
}

// New creates a Service from the configuration, assembling the metrics sinks
// and the optional MQTT notifier.
func New(cfg *config.Config) (*Service, error) {
	var sinks []coremetrics.MetricsSink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.InfluxEnabled {
		sinks = append(sinks, metrics.NewInfluxSinkWithFallback(cfg.Metrics))
	}
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = metrics.NewMultiSink(sinks...)
	}

	var pub mqtt.Publisher
	if cfg.MQTT.Enabled {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		pub = client
	}
	return newService(cfg, sink, pub), nil
}

func newService(cfg *config.Config, sink coremetrics.MetricsSink, pub mqtt.Publisher) *Service {
	return &Service{
		cfg:  cfg,
		log:  logger.New("service"),
		sink: sink,
		bus:  eventbus.New[Event](),
		pub:  pub,
	}
}

// LoadSchedules ingests a schedule-phase CSV. On success the dataset is
// replaced, openings are recomputed, the UI collapses to the goals with the
// nearest openings, and a recompute event is published.
func (s *Service) LoadSchedules(r io.Reader) (api.Summary, error) {
	tbl, err := tabular.Read(r)
	if err != nil {
		return api.Summary{}, err
	}
	start := time.Now()
	entries, err := normalize.Schedules(tbl, nil, s.cfg.Pipeline)
	if err != nil {
		return api.Summary{}, err
	}
	elapsed := time.Since(start)

	goals := timeline.GoalNames(entries)
	res := openings.Predict(entries, s.cfg.Openings)
	keep := make([]string, 0, len(res.Records))
	for _, rec := range res.Records {
		keep = append(keep, rec.Goal)
	}
	candidates := countCandidates(entries)

	s.mu.Lock()
	s.snapshot = uuid.NewString()
	s.schedules = tbl
	s.entries = entries
	s.openings = &res
	s.ui = uistate.Reduce(uistate.NewState(goals), goals, uistate.CollapseExcept{Keep: keep})
	snapshot := s.snapshot
	s.mu.Unlock()

	if err := s.sink.RecordPipelineRun(coremetrics.PipelineRunEvent{
		Snapshot: snapshot,
		Table:    "schedule",
		RawRows:  tbl.Len(),
		Entries:  len(entries),
		Goals:    len(goals),
		Duration: elapsed,
		Time:     time.Now(),
	}); err != nil {
		s.log.Warnf("record pipeline run: %v", err)
	}
	if err := s.sink.RecordOpenings(coremetrics.OpeningsEvent{
		Snapshot:   snapshot,
		Candidates: candidates,
		Returned:   len(res.Records),
		Time:       time.Now(),
	}); err != nil {
		s.log.Warnf("record openings: %v", err)
	}
	s.bus.Publish(Event{Snapshot: snapshot, Openings: res})
	s.log.Infof("loaded %d schedule rows: %d entries, %d goals", tbl.Len(), len(entries), len(goals))

	return api.Summary{Snapshot: snapshot, Rows: tbl.Len(), Entries: len(entries), Goals: len(goals)}, nil
}

// LoadTickets ingests a ticket CSV.
func (s *Service) LoadTickets(r io.Reader) (api.Summary, error) {
	tbl, err := tabular.Read(r)
	if err != nil {
		return api.Summary{}, err
	}
	start := time.Now()
	tickets, err := normalize.Tickets(tbl)
	if err != nil {
		return api.Summary{}, err
	}
	elapsed := time.Since(start)

	s.mu.Lock()
	s.tickets = tickets
	snapshot := s.snapshot
	s.mu.Unlock()

	if err := s.sink.RecordPipelineRun(coremetrics.PipelineRunEvent{
		Snapshot: snapshot,
		Table:    "ticket",
		RawRows:  tbl.Len(),
		Entries:  len(tickets),
		Duration: elapsed,
		Time:     time.Now(),
	}); err != nil {
		s.log.Warnf("record pipeline run: %v", err)
	}
	s.log.Infof("loaded %d ticket rows: %d kept", tbl.Len(), len(tickets))

	return api.Summary{Snapshot: snapshot, Rows: tbl.Len(), Entries: len(tickets)}, nil
}

// Timeline builds the model for the current dataset. goal restricts the
// model to one goal when non-empty ("All" means no restriction); cutoff
// bounds the timeline end inclusively.
func (s *Service) Timeline(goal string, cutoff *time.Time) timeline.Model {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entries := s.entriesLocked(cutoff)
	if goal != "" && goal != "All" {
		var filtered []model.ScheduleEntry
		for _, e := range entries {
			if e.Goal == goal {
				filtered = append(filtered, e)
			}
		}
		entries = filtered
	}
	return timeline.Build(entries, s.tickets, s.ui.Visible, s.ui.Expanded, s.cfg.Timeline)
}

// Stats computes the aggregate reduction over the current dataset.
func (s *Service) Stats(cutoff *time.Time) timeline.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return timeline.Summarize(s.entriesLocked(cutoff))
}

// Goals lists the goals of the current dataset for filter controls.
func (s *Service) Goals() []api.GoalOption {
	s.mu.RLock()
	defer s.mu.RUnlock()
	names := timeline.GoalNames(s.entries)
	opts := make([]api.GoalOption, len(names))
	for i, g := range names {
		opts[i] = api.GoalOption{Goal: g, Display: s.cfg.Timeline.Display(g)}
	}
	return opts
}

// Openings returns the last computed advisory, or nil when no schedule data
// has been accepted yet.
func (s *Service) Openings() *openings.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.openings == nil {
		return nil
	}
	res := *s.openings
	return &res
}

// Apply runs one UI state transition.
func (s *Service) Apply(a uistate.Action) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ui = uistate.Reduce(s.ui, timeline.GoalNames(s.entries), a)
}

// entriesLocked returns the normalized entries, re-running the normalizer
// when a cutoff is requested. The stored table passed schema and date
// validation at upload, so the error cannot recur.
func (s *Service) entriesLocked(cutoff *time.Time) []model.ScheduleEntry {
	if cutoff == nil || s.schedules == nil {
		return s.entries
	}
	entries, err := normalize.Schedules(s.schedules, cutoff, s.cfg.Pipeline)
	if err != nil {
		s.log.Errorf("renormalize with cutoff: %v", err)
		return s.entries
	}
	return entries
}

func countCandidates(entries []model.ScheduleEntry) int {
	seen := make(map[string]bool)
	for _, e := range entries {
		if !e.IsTimeOff {
			seen[e.Goal] = true
		}
	}
	return len(seen)
}

// Close releases the notifier connection and the event bus.
func (s *Service) Close() error {
	s.bus.Close()
	if s.pub != nil {
		s.pub.Disconnect()
	}
	return nil
}
