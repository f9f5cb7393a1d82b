package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

// Initialize the Postgres schema.
func InitSchema(db *sql.DB) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	createStationsQuery := `
	CREATE TABLE IF NOT EXISTS fuel_stations (
		station_id TEXT PRIMARY KEY,
		name TEXT,
		address TEXT,
		city TEXT NOT NULL,
		state TEXT NOT NULL,
		rack_id TEXT,
		price_per_gallon DOUBLE PRECISION NOT NULL,
		lat DOUBLE PRECISION,
		lon DOUBLE PRECISION
	);
	`

	createIndexQuery := `
	CREATE INDEX IF NOT EXISTS idx_fuel_stations_lat_lon
	ON fuel_stations(lat, lon);
	`

	statements := []string{
		createStationsQuery,
		createIndexQuery,
	}

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
