package repository

import (
	"context"
	"testing"

	"github.com/alexanderramin/pinlog/internal/db"
	"github.com/alexanderramin/pinlog/internal/domain"
	"github.com/alexanderramin/pinlog/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// repoFactories runs every contract test against both store backends.
var repoFactories = map[string]func(t *testing.T) WorkoutRepo{
	"memory": func(t *testing.T) WorkoutRepo { return NewMemoryWorkoutRepo() },
	"sqlite": func(t *testing.T) WorkoutRepo { return NewSQLiteWorkoutRepo(testutil.NewTestDB(t)) },
}

func forEachRepo(t *testing.T, fn func(t *testing.T, repo WorkoutRepo)) {
	for name, factory := range repoFactories {
		t.Run(name, func(t *testing.T) {
			fn(t, factory(t))
		})
	}
}

func TestWorkoutRepo_AddAndFindByID(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		w := testutil.NewTestRunning(5, 25, 178, testutil.WithID("r1"))
		require.NoError(t, repo.Add(ctx, w))

		got, err := repo.FindByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, w.ID, got.ID)
		assert.Equal(t, domain.KindRunning, got.Kind)
		assert.Equal(t, w.Coords, got.Coords)
		assert.Equal(t, w.Description, got.Description)
		require.NotNil(t, got.Running)
		assert.InDelta(t, 5.0, got.Running.PaceMinPerKm, 1e-9)
		assert.Equal(t, 178.0, got.Running.CadenceSpm)
		assert.Nil(t, got.Cycling)
		assert.True(t, w.CreatedAt.Equal(got.CreatedAt))
	})
}

func TestWorkoutRepo_CyclingRoundTrip(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		w := testutil.NewTestCycling(20, 60, -35, testutil.WithID("c1"), testutil.WithCoords(-33.9, 151.2))
		require.NoError(t, repo.Add(ctx, w))

		got, err := repo.FindByID(ctx, "c1")
		require.NoError(t, err)
		require.NotNil(t, got.Cycling)
		assert.Nil(t, got.Running)
		assert.InDelta(t, 20.0, got.Cycling.SpeedKmh, 1e-9)
		assert.Equal(t, -35.0, got.Cycling.ElevationGainM)
		assert.Equal(t, domain.Coords{Lat: -33.9, Lng: 151.2}, got.Coords)
	})
}

func TestWorkoutRepo_FindByID_NotFound(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		_, err := repo.FindByID(context.Background(), "nonexistent")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWorkoutRepo_RecordVisit_NotFound(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		err := repo.RecordVisit(context.Background(), "nonexistent")
		assert.ErrorIs(t, err, ErrNotFound)
	})
}

func TestWorkoutRepo_RecordVisit_CountsEachCall(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		require.NoError(t, repo.Add(ctx, testutil.NewTestRunning(5, 25, 178, testutil.WithID("r1"))))

		const n = 7
		for i := 0; i < n; i++ {
			require.NoError(t, repo.RecordVisit(ctx, "r1"))
		}

		got, err := repo.FindByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, n, got.VisitCount)
	})
}

func TestWorkoutRepo_AllInOrder_PreservesInsertionOrderAcrossKinds(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		ids := []string{"zz", "aa", "mm", "bb"}
		for i, id := range ids {
			var w *domain.Workout
			if i%2 == 0 {
				w = testutil.NewTestCycling(10, 30, 100, testutil.WithID(id))
			} else {
				w = testutil.NewTestRunning(5, 25, 178, testutil.WithID(id))
			}
			require.NoError(t, repo.Add(ctx, w))
		}

		list, err := repo.AllInOrder(ctx)
		require.NoError(t, err)
		require.Len(t, list, len(ids))
		for i, w := range list {
			assert.Equal(t, ids[i], w.ID)
		}

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, len(ids), n)
	})
}

func TestWorkoutRepo_AllInOrder_IsSnapshot(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		require.NoError(t, repo.Add(ctx, testutil.NewTestRunning(5, 25, 178, testutil.WithID("r1"))))

		snap, err := repo.AllInOrder(ctx)
		require.NoError(t, err)

		require.NoError(t, repo.RecordVisit(ctx, "r1"))
		require.NoError(t, repo.Add(ctx, testutil.NewTestRunning(5, 25, 178, testutil.WithID("r2"))))

		assert.Len(t, snap, 1)
		assert.Equal(t, 0, snap[0].VisitCount)

		// Mutating the snapshot must not reach the store.
		snap[0].Visit()
		got, err := repo.FindByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 1, got.VisitCount)
	})
}

func TestWorkoutRepo_Add_DuplicateID(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		require.NoError(t, repo.Add(ctx, testutil.NewTestRunning(5, 25, 178, testutil.WithID("dup"))))

		err := repo.Add(ctx, testutil.NewTestCycling(20, 60, 10, testutil.WithID("dup")))
		assert.ErrorIs(t, err, ErrDuplicateID)

		n, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestWorkoutRepo_AddCopiesInput(t *testing.T) {
	forEachRepo(t, func(t *testing.T, repo WorkoutRepo) {
		ctx := context.Background()
		w := testutil.NewTestRunning(5, 25, 178, testutil.WithID("r1"))
		require.NoError(t, repo.Add(ctx, w))

		w.Visit()
		got, err := repo.FindByID(ctx, "r1")
		require.NoError(t, err)
		assert.Equal(t, 0, got.VisitCount)
	})
}

func TestSQLiteWorkoutRepo_WithinTransaction(t *testing.T) {
	database := testutil.NewTestDB(t)
	uow := testutil.NewTestUoW(database)
	ctx := context.Background()

	err := uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		repo := NewSQLiteWorkoutRepo(tx)
		if err := repo.Add(ctx, testutil.NewTestRunning(5, 25, 178, testutil.WithID("r1"))); err != nil {
			return err
		}
		return repo.RecordVisit(ctx, "r1")
	})
	require.NoError(t, err)

	got, err := NewSQLiteWorkoutRepo(database).FindByID(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.VisitCount)
}
