// Package uistate models the dashboard's interaction state as explicit state
// transitions: the service owns a single State value and every user action
// produces the next value through Reduce. Actions carry the goal identifier
// directly; there is no parsing of event structures.
package uistate

// State holds goal visibility and expansion. Missing keys default to visible
// and expanded. Values are never mutated in place; Reduce returns a copy.
type State struct {
	Visible  map[string]bool `json:"visible"`
	Expanded map[string]bool `json:"expanded"`
}

// NewState returns the state after a data load: every goal visible and
// expanded.
func NewState(goals []string) State {
	s := State{Visible: make(map[string]bool, len(goals)), Expanded: make(map[string]bool, len(goals))}
	for _, g := range goals {
		s.Visible[g] = true
		s.Expanded[g] = true
	}
	return s
}

// IsVisible reports goal visibility, defaulting to visible.
func (s State) IsVisible(goal string) bool {
	if s.Visible == nil {
		return true
	}
	v, ok := s.Visible[goal]
	return !ok || v
}

// IsExpanded reports goal expansion, defaulting to expanded.
func (s State) IsExpanded(goal string) bool {
	if s.Expanded == nil {
		return true
	}
	v, ok := s.Expanded[goal]
	return !ok || v
}

func (s State) clone() State {
	next := State{Visible: make(map[string]bool, len(s.Visible)), Expanded: make(map[string]bool, len(s.Expanded))}
	for k, v := range s.Visible {
		next.Visible[k] = v
	}
	for k, v := range s.Expanded {
		next.Expanded[k] = v
	}
	return next
}

// Action is a user interaction with the dashboard controls.
type Action interface{ isAction() }

// ToggleExpand flips the expansion of one goal.
type ToggleExpand struct{ Goal string }

// SetVisible shows or hides one goal.
type SetVisible struct {
	Goal    string
	Visible bool
}

// ExpandAll expands every known goal.
type ExpandAll struct{}

// CollapseAll collapses every known goal.
type CollapseAll struct{}

// CollapseExcept collapses every known goal except the listed ones; used to
// focus the chart on the goals with the nearest openings after a data load.
type CollapseExcept struct{ Keep []string }

func (ToggleExpand) isAction()   {}
func (SetVisible) isAction()     {}
func (ExpandAll) isAction()      {}
func (CollapseAll) isAction()    {}
func (CollapseExcept) isAction() {}

// Reduce computes the next state. goals is the full goal list of the current
// dataset, needed by the whole-set actions.
func Reduce(s State, goals []string, a Action) State {
	next := s.clone()
	switch act := a.(type) {
	case ToggleExpand:
		next.Expanded[act.Goal] = !s.IsExpanded(act.Goal)
	case SetVisible:
		next.Visible[act.Goal] = act.Visible
	case ExpandAll:
		for _, g := range goals {
			next.Expanded[g] = true
		}
	case CollapseAll:
		for _, g := range goals {
			next.Expanded[g] = false
		}
	case CollapseExcept:
		keep := make(map[string]bool, len(act.Keep))
		for _, g := range act.Keep {
			keep[g] = true
		}
		for _, g := range goals {
			next.Expanded[g] = keep[g]
		}
	}
	return next
}
