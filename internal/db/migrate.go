package db

import (
	"database/sql"
	"fmt"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS activities (
		id                   TEXT PRIMARY KEY,
		name                 TEXT NOT NULL,
		description          TEXT NOT NULL DEFAULT '',
		source               TEXT NOT NULL DEFAULT '',
		age_min              INTEGER NOT NULL,
		age_max              INTEGER NOT NULL,
		format               TEXT NOT NULL,
		bloom_level          TEXT NOT NULL,
		duration_min_minutes INTEGER NOT NULL,
		duration_max_minutes INTEGER,
		topics               TEXT NOT NULL DEFAULT '[]',
		resources_needed     TEXT NOT NULL DEFAULT '[]',
		mental_load          TEXT NOT NULL DEFAULT ''
		                     CHECK(mental_load IN ('','low','medium','high')),
		physical_energy      TEXT NOT NULL DEFAULT ''
		                     CHECK(physical_energy IN ('','low','medium','high')),
		prep_time_minutes    INTEGER,
		cleanup_time_minutes INTEGER,
		created_at           TEXT NOT NULL,
		updated_at           TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_activities_name ON activities(name)`,
	`CREATE INDEX IF NOT EXISTS idx_activities_ages ON activities(age_min, age_max)`,

	`CREATE TABLE IF NOT EXISTS recommendation_runs (
		id         TEXT PRIMARY KEY,
		created_at TEXT NOT NULL,
		criteria   TEXT NOT NULL,
		response   TEXT NOT NULL,
		total      INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_runs_created ON recommendation_runs(created_at)`,
}
