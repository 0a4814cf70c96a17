package cli

import (
	"fmt"

	"github.com/alexanderramin/pinlog/internal/config"
	"github.com/alexanderramin/pinlog/internal/db"
	"github.com/alexanderramin/pinlog/internal/repository"
	"github.com/alexanderramin/pinlog/internal/service"
)

// WireStores builds the logger and the workout service for the configured
// store. The SQLite store lives in memory and ends with the process.
func WireStores(app *App) error {
	logger, closeLog, err := app.Config.NewLogger()
	if err != nil {
		return err
	}
	app.OnClose(closeLog)
	app.Logger = logger

	deps := service.WorkoutServiceDeps{}
	switch app.Config.Store {
	case config.StoreSQLite:
		database, err := db.OpenDB(db.MemoryPath)
		if err != nil {
			return fmt.Errorf("opening database: %w", err)
		}
		app.OnClose(database.Close)
		deps.Workouts = repository.NewSQLiteWorkoutRepo(database)
		deps.UoW = db.NewSQLiteUnitOfWork(database)
		deps.TxWorkouts = func(tx db.DBTX) repository.WorkoutRepo {
			return repository.NewSQLiteWorkoutRepo(tx)
		}
	default:
		deps.Workouts = repository.NewMemoryWorkoutRepo()
	}

	app.Workouts = service.NewWorkoutService(deps, service.NewLogUseCaseObserver(logger))
	logger.Debug("stores wired", "store", app.Config.Store, "zoom_policy", string(app.Config.ZoomPolicy))
	return nil
}
