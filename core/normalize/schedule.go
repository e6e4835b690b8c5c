// Package normalize converts raw CSV tables into the canonical timeline
// entries consumed by the timeline builder and the opening predictor.
package normalize

import (
	"sort"
	"strings"
	"time"

	"github.com/arossel/planboard/core/model"
	"github.com/arossel/planboard/pkg/tabular"
)

// Schedule table column names, as exported.
const (
	ColGoalName   = "Goal name"
	ColSchedule   = "Schedule name"
	ColPhaseName  = "Schedule phase name"
	ColPhaseStart = "Schedule phase start"
	ColPhaseEnd   = "Schedule phase end"
)

var scheduleColumns = []string{ColGoalName, ColSchedule, ColPhaseName, ColPhaseStart, ColPhaseEnd}

// phaseKey identifies one time-off bar; exact duplicates collapse to one entry.
type phaseKey struct {
	goal  string
	phase string
	start time.Time
	end   time.Time
}

// groupKey identifies one merged bar for ordinary schedules.
type groupKey struct {
	goal     string
	schedule string
}

// Schedules normalizes raw phase rows into timeline entries.
//
// Holiday rows and phases ending before the configured epoch are discarded;
// when cutoff is non-nil, rows starting after it are discarded too (the
// cutoff is inclusive). Time-off-category rows become one entry per distinct
// phase; all other rows merge per (goal, schedule) spanning the earliest
// start to the latest end. Output is sorted by goal, then start date.
//
// A missing required column returns a SchemaError; a malformed date cell
// fails the whole call with a DateError. Empty input yields an empty slice.
func Schedules(tbl *tabular.Table, cutoff *time.Time, cfg Config) ([]model.ScheduleEntry, error) {
	if missing := tbl.Missing(scheduleColumns...); len(missing) > 0 {
		return nil, &SchemaError{Table: "schedule", Missing: missing}
	}

	phases, err := parsePhases(tbl)
	if err != nil {
		return nil, err
	}

	epoch := cfg.Epoch()
	var kept []model.RawSchedulePhase
	for _, p := range phases {
		if p.Schedule == cfg.HolidaySchedule {
			continue
		}
		if p.PhaseEnd.Before(epoch) {
			continue
		}
		if cutoff != nil && p.PhaseStart.After(*cutoff) {
			continue
		}
		kept = append(kept, p)
	}

	var entries []model.ScheduleEntry

	// Time-off schedules keep one bar per phase, labelled by phase name.
	seen := make(map[phaseKey]bool)
	for _, p := range kept {
		if !strings.Contains(p.Schedule, cfg.TimeOffMarker) {
			continue
		}
		k := phaseKey{goal: p.Goal, phase: p.Phase, start: p.PhaseStart, end: p.PhaseEnd}
		if seen[k] {
			continue
		}
		seen[k] = true
		entries = append(entries, model.ScheduleEntry{
			Goal:      p.Goal,
			Schedule:  p.Phase,
			Start:     p.PhaseStart,
			End:       p.PhaseEnd,
			IsTimeOff: true,
		})
	}

	// Everything else merges per (goal, schedule) across its phases.
	groups := make(map[groupKey]*model.ScheduleEntry)
	var order []groupKey
	for _, p := range kept {
		if strings.Contains(p.Schedule, cfg.TimeOffMarker) {
			continue
		}
		k := groupKey{goal: p.Goal, schedule: p.Schedule}
		g, ok := groups[k]
		if !ok {
			groups[k] = &model.ScheduleEntry{
				Goal:     p.Goal,
				Schedule: p.Schedule,
				Start:    p.PhaseStart,
				End:      p.PhaseEnd,
			}
			order = append(order, k)
			continue
		}
		if p.PhaseStart.Before(g.Start) {
			g.Start = p.PhaseStart
		}
		if p.PhaseEnd.After(g.End) {
			g.End = p.PhaseEnd
		}
	}
	for _, k := range order {
		entries = append(entries, *groups[k])
	}

	for i := range entries {
		entries[i].DurationDays = model.DaysBetween(entries[i].Start, entries[i].End)
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].Goal != entries[j].Goal {
			return entries[i].Goal < entries[j].Goal
		}
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries, nil
}

func parsePhases(tbl *tabular.Table) ([]model.RawSchedulePhase, error) {
	phases := make([]model.RawSchedulePhase, 0, tbl.Len())
	for i := 0; i < tbl.Len(); i++ {
		start, err := tabular.ParseDate(tbl.Get(i, ColPhaseStart))
		if err != nil {
			return nil, &DateError{Table: "schedule", Column: ColPhaseStart, Row: i, Value: tbl.Get(i, ColPhaseStart), Err: err}
		}
		end, err := tabular.ParseDate(tbl.Get(i, ColPhaseEnd))
		if err != nil {
			return nil, &DateError{Table: "schedule", Column: ColPhaseEnd, Row: i, Value: tbl.Get(i, ColPhaseEnd), Err: err}
		}
		phases = append(phases, model.RawSchedulePhase{
			Goal:       tbl.Get(i, ColGoalName),
			Schedule:   tbl.Get(i, ColSchedule),
			Phase:      tbl.Get(i, ColPhaseName),
			PhaseStart: start,
			PhaseEnd:   end,
		})
	}
	return phases, nil
}
