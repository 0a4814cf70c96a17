package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/pinlog/internal/db"
	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/repository"
)

// WorkoutServiceDeps wires a WorkoutService. IDs and Now default to
// time-ordered UUIDs and time.Now. When UoW is set, Select runs its
// visit-then-read inside one transaction on TxWorkouts(tx).
type WorkoutServiceDeps struct {
	Workouts   repository.WorkoutRepo
	IDs        domain.IDGenerator
	Now        func() time.Time
	UoW        db.UnitOfWork
	TxWorkouts func(tx db.DBTX) repository.WorkoutRepo
}

type workoutService struct {
	workouts   repository.WorkoutRepo
	ids        domain.IDGenerator
	now        func() time.Time
	uow        db.UnitOfWork
	txWorkouts func(tx db.DBTX) repository.WorkoutRepo
	observer   UseCaseObserver
}

func NewWorkoutService(deps WorkoutServiceDeps, observers ...UseCaseObserver) WorkoutService {
	s := &workoutService{
		workouts:   deps.Workouts,
		ids:        deps.IDs,
		now:        deps.Now,
		uow:        deps.UoW,
		txWorkouts: deps.TxWorkouts,
		observer:   useCaseObserverOrNoop(observers),
	}
	if s.ids == nil {
		s.ids = domain.TimeOrderedIDs{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.txWorkouts == nil {
		s.uow = nil
	}
	return s
}

func (s *workoutService) LogWorkout(ctx context.Context, in LogWorkoutInput) (w *domain.Workout, err error) {
	startedAt := time.Now()
	fields := map[string]any{"kind": string(in.Kind)}
	defer func() {
		if w != nil {
			fields["workout_id"] = w.ID
		}
		s.observe(ctx, "log-workout", startedAt, err, fields)
	}()

	id := s.ids.NewID()
	createdAt := s.now()

	switch in.Kind {
	case domain.KindRunning:
		w, err = domain.NewRunning(id, createdAt, in.Coords, in.DistanceKm, in.DurationMin, in.CadenceSpm)
	case domain.KindCycling:
		w, err = domain.NewCycling(id, createdAt, in.Coords, in.DistanceKm, in.DurationMin, in.ElevationGainM)
	default:
		err = fmt.Errorf("unknown workout type %q", in.Kind)
	}
	if err != nil {
		return nil, err
	}

	if err = s.workouts.Add(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workoutService) Get(ctx context.Context, id string) (*domain.Workout, error) {
	return s.workouts.FindByID(ctx, id)
}

func (s *workoutService) Select(ctx context.Context, id string) (w *domain.Workout, err error) {
	startedAt := time.Now()
	defer func() {
		fields := map[string]any{"workout_id": id}
		if w != nil {
			fields["visits"] = w.VisitCount
		}
		s.observe(ctx, "select-workout", startedAt, err, fields)
	}()

	if s.uow == nil {
		return visitAndRead(ctx, s.workouts, id)
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		var txErr error
		w, txErr = visitAndRead(ctx, s.txWorkouts(tx), id)
		return txErr
	})
	if err != nil {
		return nil, err
	}
	return w, nil
}

func (s *workoutService) List(ctx context.Context) ([]*domain.Workout, error) {
	return s.workouts.AllInOrder(ctx)
}

func (s *workoutService) Count(ctx context.Context) (int, error) {
	return s.workouts.Count(ctx)
}

func (s *workoutService) observe(ctx context.Context, name string, startedAt time.Time, err error, fields map[string]any) {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   err == nil,
		Err:       err,
		Fields:    fields,
	})
}

func visitAndRead(ctx context.Context, repo repository.WorkoutRepo, id string) (*domain.Workout, error) {
	if err := repo.RecordVisit(ctx, id); err != nil {
		return nil, err
	}
	return repo.FindByID(ctx, id)
}
