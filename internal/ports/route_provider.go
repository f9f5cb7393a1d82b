package ports

import (
	"context"

	"fuel-route-service/internal/domain"
)

// A driving route resolved by an external routing provider.
type Route struct {
	// Ordered polyline from origin to destination.
	Geometry []domain.Coordinates

	DistanceMiles   float64
	DurationSeconds int
}

// Contract for retrieving a driving route between two coordinates.
type RouteProvider interface {
	GetRoute(ctx context.Context, start, end domain.Coordinates) (Route, error)
}
