package app

import (
	"strings"
	"testing"
	"time"

	"github.com/arossel/planboard/config"
	coremetrics "github.com/arossel/planboard/core/metrics"
	"github.com/arossel/planboard/core/timeline"
	"github.com/arossel/planboard/core/uistate"
)

const scheduleCSV = `Goal name,Schedule name,Schedule phase name,Schedule phase start,Schedule phase end
I-AN,Release 42,Build,2025-08-01,2025-08-20
I-AN,Release 42,Validate,2025-08-21,2025-09-10
I-AN,FTO & Workload,Vacation,2025-09-11,2025-09-20
I-BN,Release 42,Build,2025-08-01,2025-10-05
I-CC,Release 42,Build,2025-08-01,2025-09-25
I-DD,Release 42,Build,2025-08-01,2025-10-20
I-AR,Release 42,Build,2025-08-01,2025-08-05
I-ZZ,Company Holidays,Labor Day,2025-09-01,2025-09-01
`

const ticketCSV = `ID,Subject,Assignee,Status,Due date
101,Fix flaky gate,Amy North,Open,2025-09-05
102,Update runbook,Zed Zero,Pending,2025-09-08
`

func newTestService(t *testing.T) *Service {
	t.Helper()
	svc := newService(config.Default(), coremetrics.NopSink{}, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func TestLoadSchedulesEndToEnd(t *testing.T) {
	svc := newTestService(t)
	sum, err := svc.LoadSchedules(strings.NewReader(scheduleCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if sum.Snapshot == "" {
		t.Fatalf("missing snapshot id")
	}
	if sum.Rows != 8 {
		t.Fatalf("raw rows: %d", sum.Rows)
	}
	// The holiday row is dropped; the two I-AN release phases merge into one
	// entry, leaving one release bar per goal plus the time-off bar.
	if sum.Entries != 6 {
		t.Fatalf("entries: %d", sum.Entries)
	}
	if sum.Goals != 5 {
		t.Fatalf("goals: %d", sum.Goals)
	}

	res := svc.Openings()
	if res == nil || len(res.Records) != 3 {
		t.Fatalf("openings: %+v", res)
	}
	// I-AN ends 09-10, candidate 09-12 lands in a 9-day time-off span and
	// moves to 09-21. I-AR would rank first but is excluded.
	if res.Records[0].Goal != "I-AN" {
		t.Fatalf("first opening: %+v", res.Records[0])
	}
	want := time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC)
	if !res.Records[0].NextAvailable.Equal(want) {
		t.Fatalf("next available: %v", res.Records[0].NextAvailable)
	}
	if res.Records[1].Goal != "I-CC" || res.Records[2].Goal != "I-BN" {
		t.Fatalf("ranking: %+v", res.Records)
	}
}

func TestLoadSchedulesCollapsesToTopOpenings(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.LoadSchedules(strings.NewReader(scheduleCSV)); err != nil {
		t.Fatalf("load: %v", err)
	}
	m := svc.Timeline("", nil)
	expanded := make(map[string]bool)
	for _, g := range m.Goals {
		expanded[g.Goal] = g.Expanded
	}
	for _, g := range []string{"I-AN", "I-BN", "I-CC"} {
		if !expanded[g] {
			t.Fatalf("goal %s should start expanded", g)
		}
	}
	for _, g := range []string{"I-AR", "I-DD"} {
		if expanded[g] {
			t.Fatalf("goal %s should start collapsed", g)
		}
	}
}

func TestRejectedUploadKeepsDataset(t *testing.T) {
	svc := newTestService(t)
	sum, err := svc.LoadSchedules(strings.NewReader(scheduleCSV))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := svc.LoadSchedules(strings.NewReader("Wrong,Header\n1,2\n")); err == nil {
		t.Fatalf("expected schema error")
	}
	bad := strings.Replace(scheduleCSV, "2025-08-01", "yesterday", 1)
	if _, err := svc.LoadSchedules(strings.NewReader(bad)); err == nil {
		t.Fatalf("expected date error")
	}

	res := svc.Openings()
	if res == nil || len(res.Records) != 3 {
		t.Fatalf("dataset lost after rejected upload: %+v", res)
	}
	if got := svc.Stats(nil); got.Entries != sum.Entries {
		t.Fatalf("stats changed after rejected upload: %+v", got)
	}
}

func TestLoadTicketsAndTimeline(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.LoadSchedules(strings.NewReader(scheduleCSV)); err != nil {
		t.Fatalf("schedules: %v", err)
	}
	sum, err := svc.LoadTickets(strings.NewReader(ticketCSV))
	if err != nil {
		t.Fatalf("tickets: %v", err)
	}
	if sum.Entries != 2 {
		t.Fatalf("tickets kept: %d", sum.Entries)
	}

	m := svc.Timeline("I-AN", nil)
	if len(m.Goals) != 1 || m.Goals[0].Goal != "I-AN" {
		t.Fatalf("goal filter: %+v", m.Goals)
	}
	// Amy North -> AN matches the goal; the other ticket does not.
	if len(m.Goals[0].Tickets) != 1 || m.Goals[0].Tickets[0].ID != "101" {
		t.Fatalf("ticket match: %+v", m.Goals[0].Tickets)
	}

	// "All" behaves like no restriction.
	if all := svc.Timeline("All", nil); len(all.Goals) != 5 {
		t.Fatalf("All filter: %d goals", len(all.Goals))
	}
}

func TestTimelineCutoff(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.LoadSchedules(strings.NewReader(scheduleCSV)); err != nil {
		t.Fatalf("load: %v", err)
	}
	cutoff := time.Date(2025, 9, 30, 0, 0, 0, 0, time.UTC)
	stats := svc.Stats(&cutoff)
	// I-DD (ends 10-20) and I-BN (ends 10-05) start before the cutoff and are
	// kept; only bars starting after it would drop. Nothing does here, so the
	// count matches, but the latest end is clamped by nothing. Use a tighter
	// cutoff to see filtering.
	if stats.Entries == 0 {
		t.Fatalf("cutoff wiped dataset")
	}

	tight := time.Date(2025, 7, 31, 0, 0, 0, 0, time.UTC)
	if got := svc.Stats(&tight); got.Entries != 0 {
		t.Fatalf("expected empty stats before first phase, got %+v", got)
	}
}

func TestApplyAction(t *testing.T) {
	svc := newTestService(t)
	if _, err := svc.LoadSchedules(strings.NewReader(scheduleCSV)); err != nil {
		t.Fatalf("load: %v", err)
	}
	svc.Apply(uistate.SetVisible{Goal: "I-AN", Visible: false})
	m := svc.Timeline("", nil)
	for _, g := range m.Goals {
		if g.Goal == "I-AN" {
			t.Fatalf("hidden goal still present")
		}
	}
	svc.Apply(uistate.ExpandAll{})
	m = svc.Timeline("", nil)
	for _, g := range m.Goals {
		if !g.Expanded {
			t.Fatalf("goal %s still collapsed", g.Goal)
		}
	}
}

func TestOpeningsBeforeFirstLoad(t *testing.T) {
	svc := newTestService(t)
	if svc.Openings() != nil {
		t.Fatalf("expected nil before first load")
	}
	if got := svc.Stats(nil); got != (timeline.Stats{}) {
		t.Fatalf("expected zero stats, got %+v", got)
	}
}

func TestRecomputePublishesEvent(t *testing.T) {
	svc := newTestService(t)
	ch := svc.bus.Subscribe()
	if _, err := svc.LoadSchedules(strings.NewReader(scheduleCSV)); err != nil {
		t.Fatalf("load: %v", err)
	}
	select {
	case ev := <-ch:
		if ev.Snapshot == "" || len(ev.Openings.Records) != 3 {
			t.Fatalf("unexpected event %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatalf("no event published")
	}
}
