package api

import "net/http"

// NewRouter assembles the API surface on a fresh ServeMux.
func NewRouter(svc Planner) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("POST /api/schedules", NewScheduleUploadHandler(svc))
	mux.Handle("POST /api/tickets", NewTicketUploadHandler(svc))
	mux.Handle("GET /api/timeline", NewTimelineHandler(svc))
	mux.Handle("GET /api/stats", NewStatsHandler(svc))
	mux.Handle("GET /api/goals", NewGoalsHandler(svc))
	mux.Handle("GET /api/openings", NewOpeningsHandler(svc))
	mux.Handle("POST /api/state", NewStateHandler(svc))
	return mux
}
