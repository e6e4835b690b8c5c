package timeline

import (
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/arossel/planboard/core/model"
)

// Stats is the aggregate reduction over normalized schedule entries shown in
// the dashboard summary strip.
type Stats struct {
	Entries          int       `json:"entries"`
	Goals            int       `json:"goals"`
	EarliestStart    time.Time `json:"earliest_start"`
	LatestEnd        time.Time `json:"latest_end"`
	SpanDays         int       `json:"span_days"`
	MeanDurationDays float64   `json:"mean_duration_days"`
}

// Summarize computes the reduction. An empty input yields the zero Stats.
func Summarize(entries []model.ScheduleEntry) Stats {
	if len(entries) == 0 {
		return Stats{}
	}
	s := Stats{
		Entries:       len(entries),
		Goals:         len(GoalNames(entries)),
		EarliestStart: entries[0].Start,
		LatestEnd:     entries[0].End,
	}
	durations := make([]float64, len(entries))
	for i, e := range entries {
		if e.Start.Before(s.EarliestStart) {
			s.EarliestStart = e.Start
		}
		if e.End.After(s.LatestEnd) {
			s.LatestEnd = e.End
		}
		durations[i] = float64(e.DurationDays)
	}
	s.SpanDays = model.DaysBetween(s.EarliestStart, s.LatestEnd)
	s.MeanDurationDays = stat.Mean(durations, nil)
	return s
}
