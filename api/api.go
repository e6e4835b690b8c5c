// Package api exposes the pipeline to the renderer over JSON: CSV uploads in,
// timeline model, openings and statistics out. Chart construction itself is
// the client's concern.
package api

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/arossel/planboard/core/openings"
	"github.com/arossel/planboard/core/timeline"
	"github.com/arossel/planboard/core/uistate"
)

// Summary describes one accepted upload.
type Summary struct {
	Snapshot string `json:"snapshot"`
	Rows     int    `json:"rows"`
	Entries  int    `json:"entries"`
	Goals    int    `json:"goals"`
}

// GoalOption is one entry of the goal filter dropdown.
type GoalOption struct {
	Goal    string `json:"goal"`
	Display string `json:"display"`
}

// Planner is the service surface the handlers need. Implemented by
// app.Service.
type Planner interface {
	LoadSchedules(r io.Reader) (Summary, error)
	LoadTickets(r io.Reader) (Summary, error)
	Timeline(goal string, cutoff *time.Time) timeline.Model
	Stats(cutoff *time.Time) timeline.Stats
	Goals() []GoalOption
	Openings() *openings.Result
	Apply(a uistate.Action)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

type errorBody struct {
	Error   string   `json:"error"`
	Missing []string `json:"missing,omitempty"`
}
