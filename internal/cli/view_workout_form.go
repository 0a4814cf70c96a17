package cli

import (
	"github.com/alexanderramin/pinlog/internal/cli/formatter"
	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
)

// workoutFormView wraps the workout huh.Form as a View on the navigation
// stack. Completing the form sends the values to the session; a change of
// workout type is reported so the session can toggle the type fields.
type workoutFormView struct {
	state  *SharedState
	form   *huh.Form
	values *formValues

	// fields is the kind whose specific field is visible. It is flipped
	// only through the presenter.
	fields   domain.Kind
	lastKind string
	sent     bool
}

func newWorkoutFormView(state *SharedState, values formValues) *workoutFormView {
	if values.kind == "" {
		values.kind = string(domain.KindRunning)
	}
	v := &workoutFormView{
		state:    state,
		values:   &values,
		fields:   domain.Kind(values.kind),
		lastKind: values.kind,
	}
	v.form = buildWorkoutForm(v.values, func() domain.Kind { return v.fields })
	return v
}

// toggleFields swaps the visible type-specific field.
func (v *workoutFormView) toggleFields() {
	if v.fields == domain.KindRunning {
		v.fields = domain.KindCycling
	} else {
		v.fields = domain.KindRunning
	}
}

func (v *workoutFormView) Init() tea.Cmd {
	return v.form.Init()
}

func (v *workoutFormView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Escape closes the form; the pending location is kept.
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyEsc {
		v.state.SetStatus("Form closed. Press enter on the map to reopen it.")
		return v, popView()
	}

	form, cmd := v.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		v.form = f
	}

	var cmds []tea.Cmd
	cmds = append(cmds, cmd)
	if v.values.kind != v.lastKind {
		v.lastKind = v.values.kind
		cmds = append(cmds, func() tea.Msg { return toggleTypeMsg{} })
	}

	if v.form.State == huh.StateCompleted && !v.sent {
		v.sent = true
		values := *v.values
		cmds = append(cmds, func() tea.Msg {
			return formSubmittedMsg{input: values.input(), values: values}
		})
	}

	return v, tea.Batch(cmds...)
}

func (v *workoutFormView) View() string {
	title := formatter.StyleHeader.Render("NEW WORKOUT")
	if at, ok := v.state.Session.Pending(); ok {
		title += " " + formatter.Dim("at "+at.String())
	}
	return title + "\n\n" + v.form.View()
}

func (v *workoutFormView) ID() ViewID    { return ViewWorkoutForm }
func (v *workoutFormView) Title() string { return "New Workout" }
func (v *workoutFormView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "next")),
		key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "back")),
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "close")),
	}
}
