package repository

import (
	"context"

	"github.com/alexanderramin/pinlog/internal/domain"
)

// WorkoutRepo is the ordered, append-only workout collection for a session.
// Insertion order is display order. Records handed out are copies: mutating
// them does not touch the store, and they do not track later changes.
type WorkoutRepo interface {
	Add(ctx context.Context, w *domain.Workout) error
	FindByID(ctx context.Context, id string) (*domain.Workout, error)
	RecordVisit(ctx context.Context, id string) error
	AllInOrder(ctx context.Context) ([]*domain.Workout, error)
	Count(ctx context.Context) (int, error)
}
