package ports

import (
	"context"
	"errors"

	"fuel-route-service/internal/domain"
)

// Returned by providers when the external service has no result for the
// given input, as opposed to the call itself failing.
var ErrNotFound = errors.New("not found")

// Contract for resolving a location name to coordinates.
type GeocodeProvider interface {
	// Return coordinates for a location name such as "Denver, CO".
	Geocode(ctx context.Context, location string) (domain.Coordinates, error)
}
