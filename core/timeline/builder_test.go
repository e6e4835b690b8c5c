package timeline

import (
	"reflect"
	"testing"
	"time"

	"github.com/arossel/planboard/core/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func entry(goal, schedule string, start, end time.Time, timeOff bool) model.ScheduleEntry {
	return model.ScheduleEntry{
		Goal:         goal,
		Schedule:     schedule,
		Start:        start,
		End:          end,
		DurationDays: model.DaysBetween(start, end),
		IsTimeOff:    timeOff,
	}
}

func testCfg() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

func TestBuildGroupsAndOrders(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry("I-BN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
		entry("I-AN", "Beta", day(2025, 8, 5), day(2025, 8, 12), false),
		entry("I-AN", "FTO", day(2025, 8, 20), day(2025, 8, 25), true),
		entry("I-AN", "Release", day(2025, 8, 1), day(2025, 8, 4), false),
	}
	m := Build(entries, nil, nil, nil, testCfg())
	if len(m.Goals) != 2 {
		t.Fatalf("expected 2 goals got %d", len(m.Goals))
	}
	if m.Goals[0].Goal != "I-AN" || m.Goals[1].Goal != "I-BN" {
		t.Fatalf("goals not sorted: %q %q", m.Goals[0].Goal, m.Goals[1].Goal)
	}
	if m.Goals[0].Display != "AN" {
		t.Fatalf("prefix not stripped: %q", m.Goals[0].Display)
	}
	// Time-off first, then work bars by start date.
	got := make([]string, 0, 3)
	for _, e := range m.Goals[0].Schedules {
		got = append(got, e.Schedule)
	}
	want := []string{"FTO", "Release", "Beta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("child order: got %v want %v", got, want)
	}
}

func TestBuildVisibility(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry("I-AN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
		entry("I-BN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
	}
	m := Build(entries, nil, map[string]bool{"I-BN": true}, nil, testCfg())
	if len(m.Goals) != 1 || m.Goals[0].Goal != "I-BN" {
		t.Fatalf("visibility filter not applied: %+v", m.Goals)
	}

	// A nil set shows everything.
	m = Build(entries, nil, nil, nil, testCfg())
	if len(m.Goals) != 2 {
		t.Fatalf("nil visibility must show all goals, got %d", len(m.Goals))
	}
}

func TestBuildTicketMatching(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry("I-AN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
	}
	tickets := []model.Ticket{
		{Assignee: "Amy Níelsen", Initials: "AN", ID: "41", Title: "later", Requested: day(2025, 8, 3), Due: day(2025, 8, 9), Status: model.StatusOpen},
		{Assignee: "Bob North", Initials: "BN", ID: "42", Title: "other", Requested: day(2025, 8, 3), Due: day(2025, 8, 9), Status: model.StatusOpen},
		{Assignee: "Amy Níelsen", Initials: "AN", ID: "40", Title: "first", Requested: day(2025, 8, 1), Due: day(2025, 8, 5), Status: model.StatusPending},
	}
	m := Build(entries, tickets, nil, nil, testCfg())
	got := m.Goals[0].Tickets
	if len(got) != 2 {
		t.Fatalf("expected 2 matched tickets got %d", len(got))
	}
	// Input order is preserved, not re-sorted.
	if got[0].ID != "41" || got[1].ID != "40" {
		t.Fatalf("ticket order: %q %q", got[0].ID, got[1].ID)
	}
}

func TestRowsFlattening(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry("I-AN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
		entry("I-BN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
	}
	tickets := []model.Ticket{
		{Initials: "AN", ID: "40", Title: "triage", Requested: day(2025, 8, 1), Due: day(2025, 8, 5), Status: model.StatusOpen},
	}
	expanded := map[string]bool{"I-BN": false}
	m := Build(entries, tickets, nil, expanded, testCfg())
	rows := m.Rows()

	kinds := make([]RowKind, 0, len(rows))
	for _, r := range rows {
		kinds = append(kinds, r.Kind)
	}
	// I-AN expanded (header, schedule, ticket); I-BN collapsed (header only).
	want := []RowKind{RowHeader, RowSchedule, RowTicket, RowHeader}
	if !reflect.DeepEqual(kinds, want) {
		t.Fatalf("row kinds: got %v want %v", kinds, want)
	}
	if rows[2].Label != "#40 triage" {
		t.Fatalf("ticket label: %q", rows[2].Label)
	}
	if rows[3].Goal != "I-BN" {
		t.Fatalf("collapsed header: %+v", rows[3])
	}
}

func TestGoalNames(t *testing.T) {
	entries := []model.ScheduleEntry{
		entry("I-BN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
		entry("I-AN", "Release", day(2025, 8, 1), day(2025, 8, 10), false),
		entry("I-BN", "FTO", day(2025, 8, 1), day(2025, 8, 2), true),
	}
	got := GoalNames(entries)
	want := []string{"I-AN", "I-BN"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}
	if GoalNames(nil) != nil {
		t.Fatalf("expected nil for empty input")
	}
}
