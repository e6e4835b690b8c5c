// Package openings computes the "next available opening" advisory: for each
// goal, the earliest date its owner is projected free for new work, adjusted
// to skip long time-off spans.
package openings

import (
	"sort"
	"strings"
	"time"

	"github.com/arossel/planboard/core/model"
)

// Config carries the planning parameters and the fixed exclusion list.
type Config struct {
	// LookaheadDays is added to the last committed work date to form the
	// candidate opening.
	LookaheadDays int `json:"lookahead_days"`
	// LongTimeOffDays is the threshold above which a time-off span pushes
	// a candidate past its end. Spans of this length or shorter are ignored.
	LongTimeOffDays int `json:"long_time_off_days"`
	// TopN bounds the ranked result.
	TopN int `json:"top_n"`
	// ExcludedGoals lists stripped goal identifiers never surfaced in the
	// advisory, e.g. leads who are not in the release rotation.
	ExcludedGoals []string `json:"excluded_goals"`
	// GoalPrefix is stripped before the exclusion check.
	GoalPrefix string `json:"goal_prefix"`
}

// SetDefaults applies the repository-fixed defaults.
func (c *Config) SetDefaults() {
	if c.LookaheadDays == 0 {
		c.LookaheadDays = 2
	}
	if c.LongTimeOffDays == 0 {
		c.LongTimeOffDays = 3
	}
	if c.TopN == 0 {
		c.TopN = 3
	}
	if c.ExcludedGoals == nil {
		c.ExcludedGoals = []string{"AR", "SD", "RR", "BW"}
	}
	if c.GoalPrefix == "" {
		c.GoalPrefix = "I-"
	}
}

// Result is a computed advisory. A Result with no records means the
// computation ran and found no eligible goal; callers that have never run the
// predictor hold a nil *Result instead, keeping the two states distinct.
type Result struct {
	Records []model.OpeningRecord `json:"records"`
}

// Empty reports whether the computation found no eligible goals.
func (r Result) Empty() bool { return len(r.Records) == 0 }

// Predict derives the ranked opening list from normalized schedule entries.
//
// The last committed work date per goal is the maximum end date over
// non-time-off entries; goals with none are not candidates. The candidate
// opening is that date plus the lookahead. Each of the goal's time-off spans
// is then examined once, in start-date order: if the current candidate falls
// inside a span strictly longer than the threshold, the candidate moves to
// the day after the span. The scan does not restart after an adjustment.
//
// Candidates are ranked by date (ties by goal identifier), goals on the
// exclusion list are removed, and the first TopN remain. Predict is a pure
// function and never fails; an input without eligible goals yields an empty
// Result.
func Predict(entries []model.ScheduleEntry, cfg Config) Result {
	lastWork := make(map[string]time.Time)
	timeOff := make(map[string][]model.ScheduleEntry)
	for _, e := range entries {
		if e.IsTimeOff {
			timeOff[e.Goal] = append(timeOff[e.Goal], e)
			continue
		}
		if last, ok := lastWork[e.Goal]; !ok || e.End.After(last) {
			lastWork[e.Goal] = e.End
		}
	}
	for _, spans := range timeOff {
		sort.SliceStable(spans, func(i, j int) bool { return spans[i].Start.Before(spans[j].Start) })
	}

	records := make([]model.OpeningRecord, 0, len(lastWork))
	for goal, last := range lastWork {
		candidate := last.AddDate(0, 0, cfg.LookaheadDays)
		for _, span := range timeOff[goal] {
			if span.Overlaps(candidate) && span.DurationDays > cfg.LongTimeOffDays {
				candidate = span.End.AddDate(0, 0, 1)
			}
		}
		records = append(records, model.OpeningRecord{Goal: goal, NextAvailable: candidate})
	}

	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].NextAvailable.Equal(records[j].NextAvailable) {
			return records[i].NextAvailable.Before(records[j].NextAvailable)
		}
		return records[i].Goal < records[j].Goal
	})

	excluded := make(map[string]bool, len(cfg.ExcludedGoals))
	for _, g := range cfg.ExcludedGoals {
		excluded[g] = true
	}
	var ranked []model.OpeningRecord
	for _, r := range records {
		if excluded[strings.TrimPrefix(r.Goal, cfg.GoalPrefix)] {
			continue
		}
		ranked = append(ranked, r)
		if cfg.TopN > 0 && len(ranked) == cfg.TopN {
			break
		}
	}
	return Result{Records: ranked}
}
