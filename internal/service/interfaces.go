package service

import (
	"context"

	"github.com/alexanderramin/pinlog/internal/domain"
)

// LogWorkoutInput carries the form values for a new workout. Only the
// metric matching Kind is read.
type LogWorkoutInput struct {
	Kind           domain.Kind
	Coords         domain.Coords
	DistanceKm     float64
	DurationMin    float64
	CadenceSpm     float64
	ElevationGainM float64
}

type WorkoutService interface {
	LogWorkout(ctx context.Context, in LogWorkoutInput) (*domain.Workout, error)
	Get(ctx context.Context, id string) (*domain.Workout, error)
	// Select records a visit and returns the workout with the new count.
	Select(ctx context.Context, id string) (*domain.Workout, error)
	List(ctx context.Context) ([]*domain.Workout, error)
	Count(ctx context.Context) (int, error)
}
