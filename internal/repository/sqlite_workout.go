package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/pinlog/internal/db"
	"github.com/alexanderramin/pinlog/internal/domain"
)

const workoutColumns = `id, kind, created_at, lat, lng, distance_km, duration_min, visit_count, description,
	cadence_spm, pace_min_per_km, elevation_gain_m, speed_kmh`

// SQLiteWorkoutRepo implements WorkoutRepo on the session database.
// Insertion order is the autoincrement seq column.
type SQLiteWorkoutRepo struct {
	db db.DBTX
}

// NewSQLiteWorkoutRepo accepts a *sql.DB or a *sql.Tx.
func NewSQLiteWorkoutRepo(conn db.DBTX) *SQLiteWorkoutRepo {
	return &SQLiteWorkoutRepo{db: conn}
}

func (r *SQLiteWorkoutRepo) Add(ctx context.Context, w *domain.Workout) error {
	var cadence, pace, elevation, speed *float64
	switch w.Kind {
	case domain.KindRunning:
		cadence, pace = &w.Running.CadenceSpm, &w.Running.PaceMinPerKm
	case domain.KindCycling:
		elevation, speed = &w.Cycling.ElevationGainM, &w.Cycling.SpeedKmh
	default:
		return fmt.Errorf("inserting workout: unknown kind %q", w.Kind)
	}

	query := `INSERT INTO workouts (` + workoutColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		string(w.Kind),
		w.CreatedAt.Format(time.RFC3339Nano),
		w.Coords.Lat,
		w.Coords.Lng,
		w.DistanceKm,
		w.DurationMin,
		w.VisitCount,
		w.Description,
		nullableFloat(cadence),
		nullableFloat(pace),
		nullableFloat(elevation),
		nullableFloat(speed),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("workout %s: %w", w.ID, ErrDuplicateID)
	}
	if err != nil {
		return fmt.Errorf("inserting workout: %w", err)
	}
	return nil
}

func (r *SQLiteWorkoutRepo) FindByID(ctx context.Context, id string) (*domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)

	w, err := scanWorkout(row)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("scanning workout: %w", err)
	}
	return w, nil
}

func (r *SQLiteWorkoutRepo) RecordVisit(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE workouts SET visit_count = visit_count + 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording visit: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("workout %s: %w", id, ErrNotFound)
	}
	return nil
}

func (r *SQLiteWorkoutRepo) AllInOrder(ctx context.Context) ([]*domain.Workout, error) {
	query := `SELECT ` + workoutColumns + ` FROM workouts ORDER BY seq`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing workouts: %w", err)
	}
	defer rows.Close()

	var workouts []*domain.Workout
	for rows.Next() {
		w, err := scanWorkout(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning workout row: %w", err)
		}
		workouts = append(workouts, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating workouts: %w", err)
	}
	return workouts, nil
}

func (r *SQLiteWorkoutRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM workouts`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting workouts: %w", err)
	}
	return n, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanWorkout(s rowScanner) (*domain.Workout, error) {
	var w domain.Workout
	var kind, createdAtStr string
	var cadence, pace, elevation, speed sql.NullFloat64

	err := s.Scan(
		&w.ID, &kind, &createdAtStr, &w.Coords.Lat, &w.Coords.Lng,
		&w.DistanceKm, &w.DurationMin, &w.VisitCount, &w.Description,
		&cadence, &pace, &elevation, &speed,
	)
	if err != nil {
		return nil, err
	}

	w.Kind = domain.Kind(kind)
	w.CreatedAt, err = time.Parse(time.RFC3339Nano, createdAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing created_at: %w", err)
	}

	switch w.Kind {
	case domain.KindRunning:
		w.Running = &domain.RunningStats{CadenceSpm: floatOrZero(cadence), PaceMinPerKm: floatOrZero(pace)}
	case domain.KindCycling:
		w.Cycling = &domain.CyclingStats{ElevationGainM: floatOrZero(elevation), SpeedKmh: floatOrZero(speed)}
	default:
		return nil, fmt.Errorf("unknown workout kind %q", kind)
	}
	return &w, nil
}
