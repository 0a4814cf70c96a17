package replay

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/globe"
	"github.com/alexanderramin/pinlog/internal/service"
	"github.com/alexanderramin/pinlog/internal/session"
)

// Deps wires a replay run.
type Deps struct {
	Workouts service.WorkoutService
	Options  session.Options
	Logger   *slog.Logger
}

// Result is the outcome of a run.
type Result struct {
	// Transcript lists, in order, each event and what the session showed.
	Transcript []string
	Workouts   []*domain.Workout
	Map        *globe.TerminalMap
	State      session.State
}

// transcriptPresenter records presenter calls as transcript lines.
type transcriptPresenter struct {
	lines *[]string
}

func (p transcriptPresenter) add(format string, args ...any) {
	*p.lines = append(*p.lines, "  "+fmt.Sprintf(format, args...))
}

func (p transcriptPresenter) ShowForm()         { p.add("form shown") }
func (p transcriptPresenter) HideForm()         { p.add("form hidden") }
func (p transcriptPresenter) ToggleTypeFields() { p.add("form fields toggled") }
func (p transcriptPresenter) Alert(msg string)  { p.add("alert: %s", msg) }

func (p transcriptPresenter) RenderWorkout(w *domain.Workout) {
	p.add("logged %s", session.PopupText(w))
}

// Run plays the script against a fresh session. Errors the session reports
// to the user are recorded in the transcript; Run fails only when the
// script itself cannot be followed.
func Run(ctx context.Context, script *Script, deps Deps) (*Result, error) {
	res := &Result{Map: globe.NewTerminalMap()}

	locator := globe.StaticLocator{}
	if script.Home != nil {
		locator = globe.StaticLocator{Home: *script.Home, HasHome: true}
	}
	opts := deps.Options
	if script.ZoomPolicy != "" {
		opts.ZoomPolicy = domain.ZoomPolicy(script.ZoomPolicy)
	}
	scheduler := session.NewManualScheduler()
	ctrl := session.NewController(session.Deps{
		Workouts:  deps.Workouts,
		Locator:   locator,
		Map:       res.Map,
		Presenter: transcriptPresenter{lines: &res.Transcript},
		Scheduler: scheduler,
		Logger:    deps.Logger,
	}, opts)

	for i, e := range script.Events {
		res.Transcript = append(res.Transcript, fmt.Sprintf("%d. %s", i+1, describe(e)))
		if err := step(ctx, ctrl, res.Map, scheduler, deps.Workouts, e); err != nil {
			if isScriptError(err) {
				return nil, fmt.Errorf("event %d (%s): %w", i+1, e.Action, err)
			}
			res.Transcript = append(res.Transcript, "  error: "+err.Error())
		}
	}

	workouts, err := deps.Workouts.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	res.Workouts = workouts
	res.State = ctrl.State()
	return res, nil
}

type scriptError struct{ msg string }

func (e *scriptError) Error() string { return e.msg }

func isScriptError(err error) bool {
	var se *scriptError
	return errors.As(err, &se)
}

func step(ctx context.Context, ctrl *session.Controller, m *globe.TerminalMap, scheduler *session.ManualScheduler, workouts service.WorkoutService, e Event) error {
	switch e.Action {
	case ActionLocate:
		return ctrl.AcquireLocation(ctx)
	case ActionClick:
		return m.ClickAt(domain.Coords{Lat: e.Lat, Lng: e.Lng})
	case ActionToggle:
		ctrl.OnToggleActivityType()
		return nil
	case ActionSubmit:
		kind, err := domain.ParseKind(e.Type)
		if err != nil {
			return &scriptError{msg: err.Error()}
		}
		return ctrl.OnFormSubmitted(ctx, session.FormInput{
			Kind:      kind,
			Distance:  e.Distance,
			Duration:  e.Duration,
			Cadence:   e.Cadence,
			Elevation: e.Elevation,
		})
	case ActionSelect:
		id := e.ID
		if id == "" {
			list, err := workouts.List(ctx)
			if err != nil {
				return err
			}
			if e.Index > len(list) {
				return &scriptError{msg: fmt.Sprintf("no workout at position %d (have %d)", e.Index, len(list))}
			}
			id = list[e.Index-1].ID
		}
		return ctrl.OnWorkoutSelected(ctx, id)
	case ActionWait:
		d, err := e.wait()
		if err != nil {
			return &scriptError{msg: err.Error()}
		}
		scheduler.Advance(d)
		return nil
	}
	return &scriptError{msg: fmt.Sprintf("unknown action %q", e.Action)}
}

func describe(e Event) string {
	switch e.Action {
	case ActionClick:
		return fmt.Sprintf("click %s", domain.Coords{Lat: e.Lat, Lng: e.Lng})
	case ActionSubmit:
		return fmt.Sprintf("submit %s %g km %g min", e.Type, e.Distance, e.Duration)
	case ActionSelect:
		if e.ID != "" {
			return "select " + e.ID
		}
		return fmt.Sprintf("select #%d", e.Index)
	case ActionWait:
		return "wait " + e.After
	}
	return e.Action
}
