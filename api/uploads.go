package api

import (
	"errors"
	"io"
	"net/http"

	"github.com/arossel/planboard/core/normalize"
)

// NewScheduleUploadHandler accepts a schedule-phase CSV body via
// POST /api/schedules. A rejected upload leaves the previously loaded
// dataset untouched.
func NewScheduleUploadHandler(svc Planner) http.Handler {
	return uploadHandler(svc.LoadSchedules)
}

// NewTicketUploadHandler accepts a ticket CSV body via POST /api/tickets.
func NewTicketUploadHandler(svc Planner) http.Handler {
	return uploadHandler(svc.LoadTickets)
}

func uploadHandler(load func(r io.Reader) (Summary, error)) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		sum, err := load(r.Body)
		if err != nil {
			var schemaErr *normalize.SchemaError
			if errors.As(err, &schemaErr) {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: schemaErr.Error(), Missing: schemaErr.Missing})
				return
			}
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, sum)
	})
}
