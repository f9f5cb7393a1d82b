package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
)

// Postgres-backed implementation of the StationRepository port.
type PostgresStationRepository struct{ DB *sql.DB }

func NewPostgresStationRepository(db *sql.DB) *PostgresStationRepository {
	return &PostgresStationRepository{DB: db}
}

// Return all stations with geocoded coordinates. Records that were never
// geocoded are excluded here so partial entries never reach the catalog.
func (s *PostgresStationRepository) ListStations(ctx context.Context) (_ []domain.FuelStation, err error) {
	defer obs.Time(ctx, "stations.repo.ListStations")(&err)

	if s.DB == nil {
		return nil, errors.New("station repository: DB is nil")
	}

	query := `
	SELECT
		station_id,
		COALESCE(name, ''),
		COALESCE(address, ''),
		city,
		state,
		COALESCE(rack_id, ''),
		price_per_gallon,
		lat,
		lon
	FROM fuel_stations
	WHERE lat IS NOT NULL AND lon IS NOT NULL
	ORDER BY station_id;
	`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list stations: query fuel_stations table: %w", err)
	}
	defer rows.Close()

	stations := make([]domain.FuelStation, 0, 1024)
	for rows.Next() {
		var st domain.FuelStation
		err := rows.Scan(
			&st.StationID,
			&st.Name,
			&st.Address,
			&st.City,
			&st.State,
			&st.RackID,
			&st.PricePerGallon,
			&st.Latitude,
			&st.Longitude,
		)
		if err != nil {
			return nil, fmt.Errorf("list stations: scan row: %w", err)
		}
		stations = append(stations, st)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list stations: row iteration: %w", err)
	}

	return stations, nil
}
