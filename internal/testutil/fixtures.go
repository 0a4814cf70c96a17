package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/google/uuid"
)

// FixedNow is the creation time used by fixtures unless overridden.
var FixedNow = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// Workout options
type WorkoutOption func(*workoutSpec)

type workoutSpec struct {
	id        string
	createdAt time.Time
	coords    domain.Coords
}

func WithID(id string) WorkoutOption {
	return func(s *workoutSpec) {
		s.id = id
	}
}

func WithCreatedAt(t time.Time) WorkoutOption {
	return func(s *workoutSpec) {
		s.createdAt = t
	}
}

func WithCoords(lat, lng float64) WorkoutOption {
	return func(s *workoutSpec) {
		s.coords = domain.Coords{Lat: lat, Lng: lng}
	}
}

func newSpec(opts []WorkoutOption) workoutSpec {
	s := workoutSpec{
		id:        uuid.New().String(),
		createdAt: FixedNow,
		coords:    domain.Coords{Lat: 10, Lng: 20},
	}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

// NewTestRunning builds a valid running workout; it panics on invalid input
// so fixtures fail loudly.
func NewTestRunning(distanceKm, durationMin, cadenceSpm float64, opts ...WorkoutOption) *domain.Workout {
	s := newSpec(opts)
	w, err := domain.NewRunning(s.id, s.createdAt, s.coords, distanceKm, durationMin, cadenceSpm)
	if err != nil {
		panic(fmt.Sprintf("invalid running fixture: %v", err))
	}
	return w
}

// NewTestCycling builds a valid cycling workout.
func NewTestCycling(distanceKm, durationMin, elevationGainM float64, opts ...WorkoutOption) *domain.Workout {
	s := newSpec(opts)
	w, err := domain.NewCycling(s.id, s.createdAt, s.coords, distanceKm, durationMin, elevationGainM)
	if err != nil {
		panic(fmt.Sprintf("invalid cycling fixture: %v", err))
	}
	return w
}

// SequentialIDs hands out "w-1", "w-2", ... so tests can predict ids.
type SequentialIDs struct {
	n atomic.Int64
}

func (s *SequentialIDs) NewID() string {
	return fmt.Sprintf("w-%d", s.n.Add(1))
}

// Clock returns a time source pinned to t.
func Clock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
