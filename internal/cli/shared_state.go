package cli

import (
	"github.com/alexanderramin/pinlog/internal/globe"
	"github.com/alexanderramin/pinlog/internal/session"
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	App *App

	Session   *session.Controller
	Map       *globe.TerminalMap
	Presenter *tuiPresenter
	Scheduler *teaScheduler

	// Status line content; Alert marks it as an error.
	Status      string
	StatusAlert bool

	// Terminal dimensions
	Width  int
	Height int
}

func newSharedState(app *App) *SharedState {
	state := &SharedState{
		App:       app,
		Map:       globe.NewTerminalMap(),
		Presenter: &tuiPresenter{},
		Scheduler: newTeaScheduler(),
	}
	state.Session = session.NewController(session.Deps{
		Workouts:  app.Workouts,
		Locator:   app.locator(),
		Map:       state.Map,
		Presenter: state.Presenter,
		Scheduler: state.Scheduler,
		Logger:    app.Logger,
	}, app.sessionOptions())
	return state
}

// SetStatus shows an informational message in the status line.
func (s *SharedState) SetStatus(msg string) {
	s.Status = msg
	s.StatusAlert = false
}

// SetAlert shows an error message in the status line.
func (s *SharedState) SetAlert(msg string) {
	s.Status = msg
	s.StatusAlert = true
}

// ContentHeight returns the available height for view content,
// accounting for header (2 lines: title + separator) and the status bar
// (3 lines: separator + status + hints).
func (s *SharedState) ContentHeight() int {
	h := s.Height - 5
	if h < 8 {
		return 8
	}
	return h
}
