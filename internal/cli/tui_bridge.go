package cli

import (
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// teaScheduler runs session timers on the Bubble Tea event loop: each
// AfterFunc queues a tea.Tick whose deferredFireMsg runs the action from
// Update, never from the tick goroutine.
type teaScheduler struct {
	nextID int
	timers map[int]func()
	queued []tea.Cmd
}

func newTeaScheduler() *teaScheduler {
	return &teaScheduler{timers: make(map[int]func())}
}

type teaTimer struct {
	s  *teaScheduler
	id int
}

func (s *teaScheduler) AfterFunc(d time.Duration, fn func()) session.Timer {
	s.nextID++
	id := s.nextID
	s.timers[id] = fn
	s.queued = append(s.queued, tea.Tick(d, func(time.Time) tea.Msg {
		return deferredFireMsg{id: id}
	}))
	return &teaTimer{s: s, id: id}
}

func (t *teaTimer) Stop() bool {
	if _, ok := t.s.timers[t.id]; !ok {
		return false
	}
	delete(t.s.timers, t.id)
	return true
}

// fire runs the action for id unless it was stopped or already ran.
func (s *teaScheduler) fire(id int) bool {
	fn, ok := s.timers[id]
	if !ok {
		return false
	}
	delete(s.timers, id)
	fn()
	return true
}

// pending returns the number of timers that have neither fired nor stopped.
func (s *teaScheduler) pending() int {
	return len(s.timers)
}

func (s *teaScheduler) drain() []tea.Cmd {
	cmds := s.queued
	s.queued = nil
	return cmds
}

// tuiPresenter records what the controller asked the UI to do during one
// event. The appModel applies the effects after the event is handled.
type tuiPresenter struct {
	effects presenterEffects
}

type presenterEffects struct {
	showForm bool
	hideForm bool
	toggles  int
	alerts   []string
	rendered []*domain.Workout
}

func (p *tuiPresenter) ShowForm()                       { p.effects.showForm = true }
func (p *tuiPresenter) HideForm()                       { p.effects.hideForm = true }
func (p *tuiPresenter) ToggleTypeFields()               { p.effects.toggles++ }
func (p *tuiPresenter) Alert(msg string)                { p.effects.alerts = append(p.effects.alerts, msg) }
func (p *tuiPresenter) RenderWorkout(w *domain.Workout) { p.effects.rendered = append(p.effects.rendered, w) }

func (p *tuiPresenter) take() presenterEffects {
	e := p.effects
	p.effects = presenterEffects{}
	return e
}
