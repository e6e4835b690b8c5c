// Package timeline merges normalized schedules and tickets into the
// hierarchical goal-to-entries model handed to the renderer.
package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/arossel/planboard/core/model"
)

// Config carries the goal identifier convention.
type Config struct {
	// GoalPrefix is stripped from goal identifiers to obtain the display
	// name and the initials used for ticket matching ("I-AN" -> "AN").
	GoalPrefix string `json:"goal_prefix"`
}

// SetDefaults applies the repository-fixed default.
func (c *Config) SetDefaults() {
	if c.GoalPrefix == "" {
		c.GoalPrefix = "I-"
	}
}

// Display returns the goal identifier with the prefix stripped.
func (c Config) Display(goal string) string {
	return strings.TrimPrefix(goal, c.GoalPrefix)
}

// GoalTimeline is one goal with its ordered child entries: time-off bars
// first by start date, then work bars by start date, then matched tickets in
// input order. Collapsed goals keep their children in the model; only the
// flattened row view omits them.
type GoalTimeline struct {
	Goal      string                `json:"goal"`
	Display   string                `json:"display"`
	Expanded  bool                  `json:"expanded"`
	Schedules []model.ScheduleEntry `json:"schedules"`
	Tickets   []model.Ticket        `json:"tickets"`
}

// Model is the full hierarchical timeline, goals sorted by identifier.
type Model struct {
	Goals []GoalTimeline `json:"goals"`
}

// RowKind discriminates flattened rows.
type RowKind string

const (
	RowHeader   RowKind = "header"
	RowSchedule RowKind = "schedule"
	RowTicket   RowKind = "ticket"
)

// Row is one line of the flattened render view.
type Row struct {
	Kind         RowKind            `json:"kind"`
	Goal         string             `json:"goal"`
	Label        string             `json:"label"`
	Start        time.Time          `json:"start"`
	End          time.Time          `json:"end"`
	DurationDays int                `json:"duration_days"`
	IsTimeOff    bool               `json:"is_time_off,omitempty"`
	Status       model.TicketStatus `json:"status,omitempty"`
}

// Build assembles the model from normalized inputs. Goals absent from the
// visibility set are omitted entirely; a nil set means all goals are visible.
// Expansion state defaults to expanded for goals missing from the map.
// Validity filtering happened upstream; Build only groups and orders.
func Build(entries []model.ScheduleEntry, tickets []model.Ticket, visible map[string]bool, expanded map[string]bool, cfg Config) Model {
	byGoal := make(map[string][]model.ScheduleEntry)
	var goals []string
	for _, e := range entries {
		if _, ok := byGoal[e.Goal]; !ok {
			goals = append(goals, e.Goal)
		}
		byGoal[e.Goal] = append(byGoal[e.Goal], e)
	}
	sort.Strings(goals)

	var m Model
	for _, goal := range goals {
		if visible != nil && !visible[goal] {
			continue
		}
		children := byGoal[goal]
		sort.SliceStable(children, func(i, j int) bool {
			if children[i].IsTimeOff != children[j].IsTimeOff {
				return children[i].IsTimeOff
			}
			return children[i].Start.Before(children[j].Start)
		})

		display := cfg.Display(goal)
		gt := GoalTimeline{
			Goal:      goal,
			Display:   display,
			Expanded:  isExpanded(expanded, goal),
			Schedules: children,
		}
		for _, t := range tickets {
			if t.Initials == display {
				gt.Tickets = append(gt.Tickets, t)
			}
		}
		m.Goals = append(m.Goals, gt)
	}
	return m
}

func isExpanded(expanded map[string]bool, goal string) bool {
	if expanded == nil {
		return true
	}
	v, ok := expanded[goal]
	if !ok {
		return true
	}
	return v
}

// Rows flattens the model for rendering: one header row per goal, followed by
// the goal's children unless it is collapsed.
func (m Model) Rows() []Row {
	var rows []Row
	for _, g := range m.Goals {
		rows = append(rows, Row{Kind: RowHeader, Goal: g.Goal, Label: g.Display})
		if !g.Expanded {
			continue
		}
		for _, e := range g.Schedules {
			rows = append(rows, Row{
				Kind:         RowSchedule,
				Goal:         g.Goal,
				Label:        e.Schedule,
				Start:        e.Start,
				End:          e.End,
				DurationDays: e.DurationDays,
				IsTimeOff:    e.IsTimeOff,
			})
		}
		for _, t := range g.Tickets {
			rows = append(rows, Row{
				Kind:   RowTicket,
				Goal:   g.Goal,
				Label:  "#" + t.ID + " " + t.Title,
				Start:  t.Requested,
				End:    t.Due,
				Status: t.Status,
			})
		}
	}
	return rows
}

// GoalNames returns the sorted goal identifiers present in the entries,
// regardless of visibility. Used to populate filter controls.
func GoalNames(entries []model.ScheduleEntry) []string {
	seen := make(map[string]bool)
	var goals []string
	for _, e := range entries {
		if !seen[e.Goal] {
			seen[e.Goal] = true
			goals = append(goals, e.Goal)
		}
	}
	sort.Strings(goals)
	return goals
}
