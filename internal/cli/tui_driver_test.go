package cli

import (
	"context"
	"regexp"
	"testing"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/teatest"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// TestDriver wraps teatest.Driver with pinlog-specific inspection methods.
// It provides access to appModel internals (view stack, shared state,
// session) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver creates a TestDriver from a test App.
// It constructs the appModel, sets terminal size, and drains Init()
// (which resolves the position synchronously from the static locator).
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// SubmitRunning fills the open workout form with a running workout.
func (d *TestDriver) SubmitRunning(distance, duration, cadence string) {
	d.T.Helper()
	d.PressEnter() // keep "Running"
	d.Type(distance)
	d.PressEnter()
	d.Type(duration)
	d.PressEnter()
	d.Type(cadence)
	d.PressEnter()
}

// SubmitCycling switches the open form to cycling and fills it in.
func (d *TestDriver) SubmitCycling(distance, duration, elevation string) {
	d.T.Helper()
	d.PressDown()
	d.PressEnter()
	d.Type(distance)
	d.PressEnter()
	d.Type(duration)
	d.PressEnter()
	d.Type(elevation)
	d.PressEnter()
}

// FireTimers delivers the tick messages of every pending session timer,
// standing in for the delay elapsing.
func (d *TestDriver) FireTimers() {
	d.T.Helper()
	s := d.State().Scheduler
	for id := 1; id <= s.nextID; id++ {
		d.Send(deferredFireMsg{id: id})
	}
}

// ── pinlog-specific inspection ───────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// State returns the shared state for inspection.
func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// Home returns the home view at the bottom of the stack.
func (d *TestDriver) Home() *homeView {
	return d.appModel().viewStack[0].(*homeView)
}

// Workouts lists the stored workouts.
func (d *TestDriver) Workouts() []*domain.Workout {
	d.T.Helper()
	list, err := d.State().App.Workouts.List(context.Background())
	if err != nil {
		d.T.Fatalf("listing workouts: %v", err)
	}
	return list
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

// PlainView returns the rendered screen without ANSI escapes.
func (d *TestDriver) PlainView() string {
	return stripANSI(d.View())
}
