package routing

import (
	"context"
	"fmt"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// MockGeocoder resolves location names from a fixed table.
type MockGeocoder struct {
	Locations map[string]domain.Coordinates
}

func (m *MockGeocoder) Geocode(ctx context.Context, location string) (domain.Coordinates, error) {
	c, ok := m.Locations[location]
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", location, ports.ErrNotFound)
	}
	return c, nil
}

// MockRouter returns a fixed route for any coordinate pair.
type MockRouter struct {
	Route ports.Route
	Err   error
}

func (m *MockRouter) GetRoute(ctx context.Context, start, end domain.Coordinates) (ports.Route, error) {
	if m.Err != nil {
		return ports.Route{}, m.Err
	}
	return m.Route, nil
}
