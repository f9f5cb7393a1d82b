package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// Port: a boundary for retrieving fuel station records from a data source.
type StationRepository interface {
	// Retrieve all stations with valid geocoded coordinates.
	ListStations(ctx context.Context) ([]domain.FuelStation, error)
}
