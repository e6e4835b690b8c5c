// Package export writes timeline rows and opening records in CSV or JSON
// form, for the analyze CLI and for download endpoints.
package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
	"time"

	"github.com/arossel/planboard/core/model"
	"github.com/arossel/planboard/core/timeline"
)

const dateFormat = "2006-01-02"

// WriteTimelineJSON writes the flattened timeline rows to w in JSON format.
func WriteTimelineJSON(w io.Writer, rows []timeline.Row) error {
	enc := json.NewEncoder(w)
	return enc.Encode(rows)
}

// WriteTimelineCSV writes the flattened timeline rows to w in CSV format.
func WriteTimelineCSV(w io.Writer, rows []timeline.Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"kind", "goal", "label", "start", "end", "duration_days", "is_time_off", "status"}); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			string(r.Kind),
			r.Goal,
			r.Label,
			formatDate(r.Start),
			formatDate(r.End),
			strconv.Itoa(r.DurationDays),
			strconv.FormatBool(r.IsTimeOff),
			string(r.Status),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteOpeningsJSON writes the ranked opening records to w in JSON format.
func WriteOpeningsJSON(w io.Writer, recs []model.OpeningRecord) error {
	enc := json.NewEncoder(w)
	return enc.Encode(recs)
}

// WriteOpeningsCSV writes the ranked opening records to w in CSV format.
func WriteOpeningsCSV(w io.Writer, recs []model.OpeningRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"rank", "goal", "next_available"}); err != nil {
		return err
	}
	for i, r := range recs {
		rec := []string{
			strconv.Itoa(i + 1),
			r.Goal,
			r.NextAvailable.Format(dateFormat),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(dateFormat)
}
