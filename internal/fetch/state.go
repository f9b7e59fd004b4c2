package fetch

import (
	"fmt"
	"slices"

	"github.com/five82/filmcard/internal/film"
)

// Phase identifies which member of State is active.
type Phase int

const (
	Pending Phase = iota
	Ready
	Failed
)

// String returns the string representation of the phase.
func (p Phase) String() string {
	switch p {
	case Pending:
		return "Pending"
	case Ready:
		return "Ready"
	case Failed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// State is the outcome of an activation. View is set only when Ready and
// Message only when Failed. Generation identifies the activation that
// produced the state; zero means nothing has been activated yet.
type State struct {
	Phase      Phase
	View       film.ViewModel
	Message    string
	Generation uint64
}

// PendingState returns the state an activation starts in.
func PendingState(generation uint64) State {
	return State{Phase: Pending, Generation: generation}
}

// ReadyState returns a successful terminal state.
func ReadyState(generation uint64, view film.ViewModel) State {
	return State{Phase: Ready, View: view, Generation: generation}
}

// FailedState returns a failed terminal state.
func FailedState(generation uint64, message string) State {
	return State{Phase: Failed, Message: message, Generation: generation}
}

// IsTerminal reports whether no further transition can happen until the
// next activation.
func (s State) IsTerminal() bool {
	return s.Phase == Ready || s.Phase == Failed
}

// clone copies the view's slices so callers cannot reach the stored state.
func (s State) clone() State {
	s.View.Genres = slices.Clone(s.View.Genres)
	s.View.Aspects = slices.Clone(s.View.Aspects)
	return s
}

func (s State) String() string {
	switch s.Phase {
	case Ready:
		return fmt.Sprintf("Ready(#%d %q)", s.Generation, s.View.Name)
	case Failed:
		return fmt.Sprintf("Failed(#%d %s)", s.Generation, s.Message)
	default:
		return fmt.Sprintf("%s(#%d)", s.Phase, s.Generation)
	}
}
