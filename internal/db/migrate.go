package db

import (
	"database/sql"
	"fmt"
)

// Migrate creates the session schema. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS workouts (
		seq              INTEGER PRIMARY KEY AUTOINCREMENT,
		id               TEXT NOT NULL UNIQUE,
		kind             TEXT NOT NULL CHECK(kind IN ('running','cycling')),
		created_at       TEXT NOT NULL,
		lat              REAL NOT NULL CHECK(lat BETWEEN -90 AND 90),
		lng              REAL NOT NULL CHECK(lng BETWEEN -180 AND 180),
		distance_km      REAL NOT NULL CHECK(distance_km > 0),
		duration_min     REAL NOT NULL CHECK(duration_min > 0),
		visit_count      INTEGER NOT NULL DEFAULT 0 CHECK(visit_count >= 0),
		description      TEXT NOT NULL,
		cadence_spm      REAL,
		pace_min_per_km  REAL,
		elevation_gain_m REAL,
		speed_kmh        REAL,
		CHECK(
			(kind = 'running' AND cadence_spm IS NOT NULL AND pace_min_per_km IS NOT NULL
				AND elevation_gain_m IS NULL AND speed_kmh IS NULL)
			OR
			(kind = 'cycling' AND elevation_gain_m IS NOT NULL AND speed_kmh IS NOT NULL
				AND cadence_spm IS NULL AND pace_min_per_km IS NULL)
		)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_workouts_kind ON workouts(kind)`,
}
