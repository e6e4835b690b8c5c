package api

import (
	"net/http"

	"github.com/arossel/planboard/core/model"
)

// openingsResponse distinguishes three renderer states: no dataset loaded
// yet, computed with no eligible goals, and a ranked list.
type openingsResponse struct {
	Status  string                `json:"status"` // "no_data", "empty" or "ok"
	Records []model.OpeningRecord `json:"records"`
}

// NewOpeningsHandler serves GET /api/openings, the advisory panel data.
func NewOpeningsHandler(svc Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res := svc.Openings()
		switch {
		case res == nil:
			writeJSON(w, http.StatusOK, openingsResponse{Status: "no_data", Records: []model.OpeningRecord{}})
		case res.Empty():
			writeJSON(w, http.StatusOK, openingsResponse{Status: "empty", Records: []model.OpeningRecord{}})
		default:
			writeJSON(w, http.StatusOK, openingsResponse{Status: "ok", Records: res.Records})
		}
	})
}
