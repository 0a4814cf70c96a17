// Package session drives one logging session: it acquires the position,
// turns map clicks and form submissions into workouts, and pans the map to
// workouts selected from the list.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/globe"
	"github.com/alexanderramin/pinlog/internal/repository"
	"github.com/alexanderramin/pinlog/internal/service"
)

// Presenter is the presentation surface the controller drives.
type Presenter interface {
	ShowForm()
	HideForm()
	ToggleTypeFields()
	RenderWorkout(w *domain.Workout)
	Alert(msg string)
}

// Options holds the map behavior settings.
type Options struct {
	DefaultZoom   int
	SelectZoom    int
	ZoomDelay     time.Duration
	ZoomAnimation time.Duration
	TileURL       string
	Attribution   string
	PopupMaxWidth int
	ZoomPolicy    domain.ZoomPolicy
}

// FormInput is one submission of the workout form. Only the metric that
// matches Kind is read.
type FormInput struct {
	Kind      domain.Kind
	Distance  float64
	Duration  float64
	Cadence   float64
	Elevation float64
}

type Deps struct {
	Workouts  service.WorkoutService
	Locator   globe.Locator
	Map       globe.Map
	Presenter Presenter
	Scheduler Scheduler
	Logger    *slog.Logger
}

type Controller struct {
	workouts  service.WorkoutService
	locator   globe.Locator
	m         globe.Map
	presenter Presenter
	scheduler Scheduler
	logger    *slog.Logger
	opts      Options

	st sessionState
}

func NewController(deps Deps, opts Options) *Controller {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.ZoomPolicy == "" {
		opts.ZoomPolicy = domain.ZoomStack
	}
	return &Controller{
		workouts:  deps.Workouts,
		locator:   deps.Locator,
		m:         deps.Map,
		presenter: deps.Presenter,
		scheduler: deps.Scheduler,
		logger:    logger,
		opts:      opts,
	}
}

func (c *Controller) State() State { return c.st.state }

// Pending returns the cached click coordinate, if any.
func (c *Controller) Pending() (domain.Coords, bool) {
	if c.st.pending == nil {
		return domain.Coords{}, false
	}
	return *c.st.pending, true
}

// AcquireLocation asks the locator for the position and applies the result.
// It may be called once per session.
func (c *Controller) AcquireLocation(ctx context.Context) error {
	if c.st.resolved {
		return ErrAlreadyLocated
	}
	pos, err := c.locator.CurrentPosition(ctx)
	return c.LocationResolved(ctx, pos, err)
}

// LocationResolved applies a position lookup that was run elsewhere, such
// as in a background command. Only the first result is applied.
func (c *Controller) LocationResolved(ctx context.Context, pos domain.Coords, lookupErr error) error {
	if c.st.resolved {
		return ErrAlreadyLocated
	}
	c.st.resolved = true

	if lookupErr != nil {
		c.logger.WarnContext(ctx, "position lookup failed", "error", lookupErr)
		c.presenter.Alert(AlertNoPosition)
		if errors.Is(lookupErr, globe.ErrLocationUnavailable) {
			return lookupErr
		}
		return fmt.Errorf("%w: %w", globe.ErrLocationUnavailable, lookupErr)
	}

	c.m.Initialize(pos, c.opts.DefaultZoom)
	c.m.AddTileLayer(c.opts.TileURL, c.opts.Attribution)
	c.m.OnClick(func(at domain.Coords) {
		_ = c.OnMapClicked(at)
	})
	c.st.state = StateMapReady
	c.logger.InfoContext(ctx, "map ready", "center", pos.String(), "zoom", c.opts.DefaultZoom)

	existing, err := c.workouts.List(ctx)
	if err != nil {
		c.logger.WarnContext(ctx, "listing workouts for markers failed", "error", err)
		return nil
	}
	for _, w := range existing {
		c.placeMarker(w)
	}
	return nil
}

// OnMapClicked caches at as the pending location and reveals the form.
func (c *Controller) OnMapClicked(at domain.Coords) error {
	if c.st.state == StateIdle {
		return ErrMapNotReady
	}
	c.st.pending = &at
	c.st.state = StateAwaitingFormInput
	c.presenter.ShowForm()
	return nil
}

// OnFormSubmitted logs a workout at the pending location. On a validation
// failure the form stays open and the pending location is kept.
func (c *Controller) OnFormSubmitted(ctx context.Context, in FormInput) error {
	if c.st.pending == nil {
		c.presenter.Alert(AlertNoLocation)
		return ErrNoPendingLocation
	}

	w, err := c.workouts.LogWorkout(ctx, service.LogWorkoutInput{
		Kind:           in.Kind,
		Coords:         *c.st.pending,
		DistanceKm:     in.Distance,
		DurationMin:    in.Duration,
		CadenceSpm:     in.Cadence,
		ElevationGainM: in.Elevation,
	})
	if err != nil {
		var verr *domain.ValidationError
		if errors.As(err, &verr) {
			c.presenter.Alert(AlertInvalidInputs)
		} else {
			c.logger.ErrorContext(ctx, "saving workout failed", "error", err)
			c.presenter.Alert(AlertSaveFailed)
		}
		return err
	}

	c.presenter.RenderWorkout(w)
	c.placeMarker(w)
	c.st.pending = nil
	c.st.state = StateMapReady
	c.presenter.HideForm()
	return nil
}

// OnToggleActivityType swaps the visible type-specific form field.
func (c *Controller) OnToggleActivityType() {
	c.presenter.ToggleTypeFields()
}

// OnWorkoutSelected pans to the workout, schedules the zoom-in and records
// the visit. Unknown ids are ignored.
func (c *Controller) OnWorkoutSelected(ctx context.Context, id string) error {
	if c.st.state == StateIdle {
		return ErrMapNotReady
	}
	w, err := c.workouts.Get(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		c.logger.DebugContext(ctx, "selected workout not found", "workout_id", id)
		return nil
	}
	if err != nil {
		return err
	}

	c.m.PanTo(w.Coords)
	c.scheduleZoom()

	if _, err := c.workouts.Select(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}
	return nil
}

func (c *Controller) scheduleZoom() {
	if c.opts.ZoomPolicy == domain.ZoomLatest && c.st.lastZoom != nil {
		c.st.lastZoom.Stop()
	}
	level, animation := c.opts.SelectZoom, c.opts.ZoomAnimation
	c.st.lastZoom = c.scheduler.AfterFunc(c.opts.ZoomDelay, func() {
		c.m.SetZoom(level, animation)
	})
}

func (c *Controller) placeMarker(w *domain.Workout) {
	c.m.AddMarker(w.Coords).
		BindPopup(PopupText(w), c.opts.PopupMaxWidth).
		OpenPopup()
}

// PopupText is the marker popup for w: the kind icon and the description.
func PopupText(w *domain.Workout) string {
	return w.Kind.Icon() + " " + w.Description
}
