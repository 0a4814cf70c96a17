package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/pinlog/internal/cli/formatter"
	"github.com/alexanderramin/pinlog/internal/globe"
	"github.com/alexanderramin/pinlog/internal/session"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// appModel is the root bubbletea Model for the TUI.
// It manages a view stack over the home view and applies what the session
// asked the presenter to do after every event.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(app *App) appModel {
	state := newSharedState(app)
	state.SetStatus("Locating…")

	m := appModel{state: state}
	m.viewStack = []View{newHomeView(state)}
	return m
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

func (m *appModel) formView() (*workoutFormView, bool) {
	fv, ok := m.activeView().(*workoutFormView)
	return fv, ok
}

// locateCmd looks up the position off the event loop.
func locateCmd(locator globe.Locator) tea.Cmd {
	return func() tea.Msg {
		pos, err := locator.CurrentPosition(context.Background())
		return locationMsg{pos: pos, err: err}
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	var cmds []tea.Cmd
	if v := m.activeView(); v != nil {
		cmds = append(cmds, v.Init())
	}
	cmds = append(cmds, locateCmd(m.state.App.locator()))
	return tea.Batch(cmds...)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	cmd := m.update(msg)
	effects := m.applyEffects()
	return m, tea.Batch(append([]tea.Cmd{cmd}, effects...)...)
}

func (m *appModel) update(msg tea.Msg) tea.Cmd {
	ctx := context.Background()

	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case locationMsg:
		if err := m.state.Session.LocationResolved(ctx, msg.pos, msg.err); err == nil {
			m.state.SetStatus("Move the crosshair and press enter to log a workout")
		}
		return m.broadcast(refreshViewMsg{})

	case deferredFireMsg:
		m.state.Scheduler.fire(msg.id)
		return nil

	case toggleTypeMsg:
		m.state.Session.OnToggleActivityType()
		return nil

	case formSubmittedMsg:
		err := m.state.Session.OnFormSubmitted(ctx, msg.input)
		if err == nil || errors.Is(err, session.ErrNoPendingLocation) {
			return nil
		}
		// The session keeps the form open on rejection; rebuild it with the
		// entered values since the huh form has already completed.
		if _, ok := m.formView(); ok {
			fv := newWorkoutFormView(m.state, msg.values)
			m.setActiveView(fv)
			return fv.Init()
		}
		return nil

	// Navigation messages from views
	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return nil

	case refreshViewMsg:
		return m.broadcast(msg)
	}

	// Forward to active view
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return cmd
	}
	return nil
}

// broadcast sends msg to every view on the stack.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m *appModel) handleKey(msg tea.KeyMsg) tea.Cmd {
	// Global quit
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return tea.Quit
	}

	// The form receives every key, including q.
	if _, ok := m.formView(); ok {
		updated, cmd := m.activeView().Update(msg)
		m.setActiveView(updated.(View))
		return cmd
	}

	if msg.String() == "q" {
		m.quitting = true
		return tea.Quit
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return cmd
	}
	return nil
}

// applyEffects turns the presenter calls made during the last event into
// view changes and returns the commands they need, along with any timers
// the session scheduled.
func (m *appModel) applyEffects() []tea.Cmd {
	e := m.state.Presenter.take()
	var cmds []tea.Cmd

	if n := len(e.rendered); n > 0 {
		w := e.rendered[n-1]
		m.state.SetStatus("Logged " + session.PopupText(w))
		cmds = append(cmds, m.broadcast(refreshViewMsg{}))
	}
	if e.hideForm {
		if _, ok := m.formView(); ok {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
	}
	if e.showForm {
		if _, ok := m.formView(); !ok {
			fv := newWorkoutFormView(m.state, formValues{})
			m.viewStack = append(m.viewStack, fv)
			cmds = append(cmds, fv.Init())
			if at, ok := m.state.Session.Pending(); ok {
				m.state.SetStatus("New workout at " + at.String())
			}
		}
	}
	if fv, ok := m.formView(); ok {
		for i := 0; i < e.toggles; i++ {
			fv.toggleFields()
		}
	}
	if n := len(e.alerts); n > 0 {
		m.state.SetAlert(e.alerts[n-1])
	}

	return append(cmds, m.state.Scheduler.drain()...)
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	var sections []string
	sections = append(sections, m.renderHeader())

	home, _ := m.viewStack[0].(*homeView)
	switch {
	case home == nil:
		sections = append(sections, m.activeView().View())
	case len(m.viewStack) > 1:
		sections = append(sections, home.render(m.activeView().View(), true))
	default:
		sections = append(sections, home.View())
	}

	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}

	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("pinlog")

	// Breadcrumb from view stack
	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	header := title
	if len(crumbs) > 0 {
		header += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	if n, err := m.state.App.Workouts.Count(context.Background()); err == nil {
		header += "  " + formatter.Dim(fmt.Sprintf("[%d logged]", n))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return header + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	status := formatter.StyleGreen.Render(m.state.Status)
	if m.state.StatusAlert {
		status = formatter.StyleRed.Render("✖ " + m.state.Status)
	}

	var hints []string
	if v := m.activeView(); v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if _, ok := m.formView(); !ok {
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	sep := sepStyle.Render(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + status + "\n" + strings.Join(hints, "  ")
}
