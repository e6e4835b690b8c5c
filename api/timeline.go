package api

import (
	"net/http"
	"time"

	"github.com/arossel/planboard/core/timeline"
	"github.com/arossel/planboard/pkg/tabular"
)

// timelineResponse pairs the hierarchical model with its flattened row view.
type timelineResponse struct {
	Goals []timeline.GoalTimeline `json:"goals"`
	Rows  []timeline.Row          `json:"rows"`
}

// NewTimelineHandler serves GET /api/timeline. Optional query parameters:
// goal restricts to one goal, cutoff (inclusive date) bounds the timeline end.
func NewTimelineHandler(svc Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cutoff, ok := cutoffParam(w, r)
		if !ok {
			return
		}
		m := svc.Timeline(r.URL.Query().Get("goal"), cutoff)
		writeJSON(w, http.StatusOK, timelineResponse{Goals: m.Goals, Rows: m.Rows()})
	})
}

// NewStatsHandler serves GET /api/stats, the aggregate reduction over the
// current model.
func NewStatsHandler(svc Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cutoff, ok := cutoffParam(w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, svc.Stats(cutoff))
	})
}

// NewGoalsHandler serves GET /api/goals for filter controls.
func NewGoalsHandler(svc Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, svc.Goals())
	})
}

func cutoffParam(w http.ResponseWriter, r *http.Request) (*time.Time, bool) {
	raw := r.URL.Query().Get("cutoff")
	if raw == "" {
		return nil, true
	}
	t, err := tabular.ParseDate(raw)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "cutoff: " + err.Error()})
		return nil, false
	}
	return &t, true
}
