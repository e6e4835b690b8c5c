package api

import (
	"encoding/json"
	"net/http"

	"github.com/arossel/planboard/core/uistate"
)

// stateRequest is the typed action payload for POST /api/state. The goal
// identifier travels in the payload; nothing is parsed out of opaque event
// structures.
type stateRequest struct {
	Action  string   `json:"action"` // toggle, set_visible, expand_all, collapse_all, collapse_except
	Goal    string   `json:"goal,omitempty"`
	Visible *bool    `json:"visible,omitempty"`
	Keep    []string `json:"keep,omitempty"`
}

// NewStateHandler applies dashboard state transitions.
func NewStateHandler(svc Planner) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer r.Body.Close()
		var req stateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: "decode: " + err.Error()})
			return
		}
		action, err := req.toAction()
		if err != "" {
			writeJSON(w, http.StatusBadRequest, errorBody{Error: err})
			return
		}
		svc.Apply(action)
		w.WriteHeader(http.StatusNoContent)
	})
}

func (r stateRequest) toAction() (uistate.Action, string) {
	switch r.Action {
	case "toggle":
		if r.Goal == "" {
			return nil, "toggle requires a goal"
		}
		return uistate.ToggleExpand{Goal: r.Goal}, ""
	case "set_visible":
		if r.Goal == "" || r.Visible == nil {
			return nil, "set_visible requires goal and visible"
		}
		return uistate.SetVisible{Goal: r.Goal, Visible: *r.Visible}, ""
	case "expand_all":
		return uistate.ExpandAll{}, ""
	case "collapse_all":
		return uistate.CollapseAll{}, ""
	case "collapse_except":
		return uistate.CollapseExcept{Keep: r.Keep}, ""
	default:
		return nil, "unknown action " + r.Action
	}
}
