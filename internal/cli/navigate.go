package cli

import (
	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation and session messages. The appModel handles these in its
// Update method.

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// refreshViewMsg asks every view on the stack to reload its data.
type refreshViewMsg struct{}

// locationMsg carries the result of the startup position lookup.
type locationMsg struct {
	pos domain.Coords
	err error
}

// formSubmittedMsg carries a completed workout form to the controller.
type formSubmittedMsg struct {
	input  session.FormInput
	values formValues
}

// toggleTypeMsg reports that the workout type changed in the form.
type toggleTypeMsg struct{}

// deferredFireMsg fires a scheduled session action by timer id.
type deferredFireMsg struct {
	id int
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}
