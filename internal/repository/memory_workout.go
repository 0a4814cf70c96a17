package repository

import (
	"context"
	"fmt"

	"github.com/alexanderramin/pinlog/internal/domain"
)

// MemoryWorkoutRepo keeps workouts in an ordered slice. Lookups are a linear
// scan; a session holds tens of entries. It is not safe for concurrent use:
// the session controller is its only writer and runs on one event loop.
type MemoryWorkoutRepo struct {
	workouts []*domain.Workout
}

func NewMemoryWorkoutRepo() *MemoryWorkoutRepo {
	return &MemoryWorkoutRepo{}
}

func (r *MemoryWorkoutRepo) Add(_ context.Context, w *domain.Workout) error {
	if r.indexOf(w.ID) >= 0 {
		return fmt.Errorf("workout %s: %w", w.ID, ErrDuplicateID)
	}
	r.workouts = append(r.workouts, w.Clone())
	return nil
}

func (r *MemoryWorkoutRepo) FindByID(_ context.Context, id string) (*domain.Workout, error) {
	i := r.indexOf(id)
	if i < 0 {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return r.workouts[i].Clone(), nil
}

func (r *MemoryWorkoutRepo) RecordVisit(_ context.Context, id string) error {
	i := r.indexOf(id)
	if i < 0 {
		return fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	r.workouts[i].Visit()
	return nil
}

func (r *MemoryWorkoutRepo) AllInOrder(_ context.Context) ([]*domain.Workout, error) {
	out := make([]*domain.Workout, len(r.workouts))
	for i, w := range r.workouts {
		out[i] = w.Clone()
	}
	return out, nil
}

func (r *MemoryWorkoutRepo) Count(_ context.Context) (int, error) {
	return len(r.workouts), nil
}

func (r *MemoryWorkoutRepo) indexOf(id string) int {
	for i, w := range r.workouts {
		if w.ID == id {
			return i
		}
	}
	return -1
}
