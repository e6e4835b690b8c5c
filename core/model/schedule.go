package model

import "time"

// RawSchedulePhase is one row of the release-phase export, as parsed.
// It is the source of truth for the pipeline and never mutated.
type RawSchedulePhase struct {
	Goal       string    // goal identifier, e.g. "I-AN"
	Schedule   string    // schedule name, e.g. "Sprint 12" or "FTO & Workload"
	Phase      string    // schedule phase name
	PhaseStart time.Time // inclusive
	PhaseEnd   time.Time // inclusive
}

// ScheduleEntry is a normalized timeline bar for a goal.
//
// Non-time-off entries merge every phase of a (goal, schedule) pair into a
// single bar spanning the earliest start and latest end. Time-off entries are
// one bar per phase and carry the phase name as their label.
type ScheduleEntry struct {
	Goal         string    `json:"goal"`
	Schedule     string    `json:"schedule"` // display label: schedule name, or phase name for time-off
	Start        time.Time `json:"start"`
	End          time.Time `json:"end"`
	DurationDays int       `json:"duration_days"`
	IsTimeOff    bool      `json:"is_time_off"`
}

// Overlaps reports whether the given date falls within the entry span,
// boundaries included.
func (e ScheduleEntry) Overlaps(d time.Time) bool {
	return !d.Before(e.Start) && !d.After(e.End)
}

// OpeningRecord is a ranked availability advisory for one goal.
type OpeningRecord struct {
	Goal          string    `json:"goal"`
	NextAvailable time.Time `json:"next_available"`
}

// Midnight truncates t to 00:00:00 UTC. All pipeline dates are whole
// calendar days; time-of-day from source data is discarded.
func Midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the number of whole days from start to end.
func DaysBetween(start, end time.Time) int {
	return int(Midnight(end).Sub(Midnight(start)).Hours() / 24)
}
