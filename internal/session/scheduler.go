package session

import (
	"sort"
	"time"
)

// Timer is a scheduled action. Stop reports whether it prevented the action
// from running.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d. Implementations must run fn on the same
// logical thread as the controller's event handlers.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// ManualScheduler is a Scheduler driven by explicit Advance calls. Due
// actions run inside Advance, in due-time order, ties in scheduling order.
type ManualScheduler struct {
	now     time.Duration
	seq     int
	pending []*manualTimer
}

type manualTimer struct {
	s   *ManualScheduler
	at  time.Duration
	seq int
	fn  func()
}

func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

func (s *ManualScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	if d < 0 {
		d = 0
	}
	s.seq++
	t := &manualTimer{s: s, at: s.now + d, seq: s.seq, fn: fn}
	s.pending = append(s.pending, t)
	return t
}

// Advance moves the clock forward by d, running every action that comes due.
// Actions scheduled by a running action fire in the same call if they are
// due by the end of the window.
func (s *ManualScheduler) Advance(d time.Duration) {
	target := s.now + d
	for {
		next := s.nextDue(target)
		if next == nil {
			break
		}
		s.remove(next)
		s.now = next.at
		next.fn()
	}
	s.now = target
}

// Elapsed returns the total time advanced so far.
func (s *ManualScheduler) Elapsed() time.Duration { return s.now }

// Pending returns the number of actions not yet run or stopped.
func (s *ManualScheduler) Pending() int { return len(s.pending) }

func (s *ManualScheduler) nextDue(target time.Duration) *manualTimer {
	due := make([]*manualTimer, 0, len(s.pending))
	for _, t := range s.pending {
		if t.at <= target {
			due = append(due, t)
		}
	}
	if len(due) == 0 {
		return nil
	}
	sort.Slice(due, func(i, j int) bool {
		if due[i].at != due[j].at {
			return due[i].at < due[j].at
		}
		return due[i].seq < due[j].seq
	})
	return due[0]
}

func (s *ManualScheduler) remove(t *manualTimer) bool {
	for i, p := range s.pending {
		if p == t {
			s.pending = append(s.pending[:i], s.pending[i+1:]...)
			return true
		}
	}
	return false
}

func (t *manualTimer) Stop() bool {
	return t.s.remove(t)
}
