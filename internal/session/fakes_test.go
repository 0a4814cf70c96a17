package session

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/globe"
	"github.com/alexanderramin/pinlog/internal/repository"
	"github.com/alexanderramin/pinlog/internal/service"
	"github.com/alexanderramin/pinlog/internal/testutil"
)

type fakeLocator struct {
	pos   domain.Coords
	err   error
	calls int
}

func (l *fakeLocator) CurrentPosition(context.Context) (domain.Coords, error) {
	l.calls++
	return l.pos, l.err
}

type fakeMarker struct {
	at    domain.Coords
	popup string
	width int
	open  bool
}

func (m *fakeMarker) BindPopup(text string, maxWidth int) globe.MarkerHandle {
	m.popup = text
	m.width = maxWidth
	return m
}

func (m *fakeMarker) OpenPopup() { m.open = true }

type fakeMap struct {
	calls   []string
	markers []*fakeMarker
	onClick globe.ClickHandler
}

func (m *fakeMap) Initialize(center domain.Coords, zoom int) {
	m.calls = append(m.calls, fmt.Sprintf("init %s z%d", center, zoom))
}

func (m *fakeMap) AddTileLayer(url, attribution string) {
	m.calls = append(m.calls, "tiles "+url)
}

func (m *fakeMap) AddMarker(at domain.Coords) globe.MarkerHandle {
	m.calls = append(m.calls, "marker "+at.String())
	mk := &fakeMarker{at: at}
	m.markers = append(m.markers, mk)
	return mk
}

func (m *fakeMap) PanTo(at domain.Coords) {
	m.calls = append(m.calls, "pan "+at.String())
}

func (m *fakeMap) SetZoom(level int, animation time.Duration) {
	m.calls = append(m.calls, fmt.Sprintf("zoom %d %s", level, animation))
}

func (m *fakeMap) OnClick(handler globe.ClickHandler) {
	m.calls = append(m.calls, "onclick")
	m.onClick = handler
}

type fakePresenter struct {
	events   []string
	alerts   []string
	rendered []*domain.Workout
}

func (p *fakePresenter) ShowForm()         { p.events = append(p.events, "show-form") }
func (p *fakePresenter) HideForm()         { p.events = append(p.events, "hide-form") }
func (p *fakePresenter) ToggleTypeFields() { p.events = append(p.events, "toggle") }

func (p *fakePresenter) RenderWorkout(w *domain.Workout) {
	p.events = append(p.events, "render "+w.ID)
	p.rendered = append(p.rendered, w)
}

func (p *fakePresenter) Alert(msg string) {
	p.events = append(p.events, "alert")
	p.alerts = append(p.alerts, msg)
}

type harness struct {
	ctrl      *Controller
	svc       service.WorkoutService
	locator   *fakeLocator
	m         *fakeMap
	presenter *fakePresenter
	scheduler *ManualScheduler
}

var home = domain.Coords{Lat: 10, Lng: 20}

func testOptions() Options {
	return Options{
		DefaultZoom:   8,
		SelectZoom:    15,
		ZoomDelay:     3500 * time.Millisecond,
		ZoomAnimation: 2000 * time.Millisecond,
		TileURL:       "http://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png",
		Attribution:   "© OpenStreetMap contributors",
		PopupMaxWidth: 150,
	}
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{
		svc: service.NewWorkoutService(service.WorkoutServiceDeps{
			Workouts: repository.NewMemoryWorkoutRepo(),
			IDs:      &testutil.SequentialIDs{},
			Now:      testutil.Clock(testutil.FixedNow),
		}),
		locator:   &fakeLocator{pos: home},
		m:         &fakeMap{},
		presenter: &fakePresenter{},
		scheduler: NewManualScheduler(),
	}
	h.ctrl = NewController(Deps{
		Workouts:  h.svc,
		Locator:   h.locator,
		Map:       h.m,
		Presenter: h.presenter,
		Scheduler: h.scheduler,
	}, opts)
	return h
}

func (h *harness) count(t *testing.T) int {
	t.Helper()
	n, err := h.svc.Count(context.Background())
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func serviceInput(at domain.Coords) service.LogWorkoutInput {
	return service.LogWorkoutInput{
		Kind: domain.KindRunning, Coords: at,
		DistanceKm: 5, DurationMin: 25, CadenceSpm: 170,
	}
}
