package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"testing"
	"time"

	"github.com/arossel/planboard/core/model"
	"github.com/arossel/planboard/core/timeline"
)

func sampleRows() []timeline.Row {
	return []timeline.Row{
		{Kind: timeline.RowHeader, Goal: "I-AN", Label: "AN"},
		{
			Kind:         timeline.RowSchedule,
			Goal:         "I-AN",
			Label:        "Release 42",
			Start:        time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
			End:          time.Date(2025, 9, 10, 0, 0, 0, 0, time.UTC),
			DurationDays: 40,
		},
	}
}

func TestWriteTimelineCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTimelineCSV(&buf, sampleRows()); err != nil {
		t.Fatalf("write: %v", err)
	}
	recs, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(recs) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(recs))
	}
	if recs[0][0] != "kind" {
		t.Fatalf("header: %v", recs[0])
	}
	// Header rows carry no dates; zero times render as empty cells.
	if recs[1][3] != "" || recs[1][4] != "" {
		t.Fatalf("header row dates: %v", recs[1])
	}
	if recs[2][3] != "2025-08-01" || recs[2][4] != "2025-09-10" || recs[2][5] != "40" {
		t.Fatalf("schedule row: %v", recs[2])
	}
}

func TestWriteTimelineJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteTimelineJSON(&buf, sampleRows()); err != nil {
		t.Fatalf("write: %v", err)
	}
	var out []timeline.Row
	if err := json.Unmarshal(buf.Bytes(), &out); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(out) != 2 || out[1].Label != "Release 42" {
		t.Fatalf("round trip: %+v", out)
	}
}

func TestWriteOpeningsCSV(t *testing.T) {
	recs := []model.OpeningRecord{
		{Goal: "I-AN", NextAvailable: time.Date(2025, 9, 21, 0, 0, 0, 0, time.UTC)},
		{Goal: "I-CC", NextAvailable: time.Date(2025, 9, 27, 0, 0, 0, 0, time.UTC)},
	}
	var buf bytes.Buffer
	if err := WriteOpeningsCSV(&buf, recs); err != nil {
		t.Fatalf("write: %v", err)
	}
	rows, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[1][0] != "1" || rows[1][1] != "I-AN" || rows[1][2] != "2025-09-21" {
		t.Fatalf("first record: %v", rows[1])
	}
	if rows[2][0] != "2" {
		t.Fatalf("rank column: %v", rows[2])
	}
}

func TestWriteOpeningsJSONEmpty(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteOpeningsJSON(&buf, nil); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got := buf.String(); got != "null\n" {
		t.Fatalf("empty encoding: %q", got)
	}
}
