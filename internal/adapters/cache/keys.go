package cache

import (
	"crypto/sha256"
	"fmt"
	"strings"
	"time"

	"fuel-route-service/internal/domain"
)

// TTL classes. Geocoded locations rarely move, so they keep a long TTL;
// routed paths come from provider data that should not be hoarded; the raw
// station catalog refreshes a few times a day.
const (
	GeocodeTTL = 30 * 24 * time.Hour
	RouteTTL   = 24 * time.Hour
	CatalogTTL = 6 * time.Hour
)

// GeocodeKey builds a cache key from a normalized location name.
func GeocodeKey(location string) string {
	norm := strings.ToLower(strings.Join(strings.Fields(location), " "))
	return "geocode:" + norm
}

// RouteKey builds a deterministic cache key for a routed path between two
// coordinate pairs in a given travel mode.
func RouteKey(start, end domain.Coordinates, mode string) string {
	data := fmt.Sprintf("%.6f,%.6f,%.6f,%.6f", start.Lat, start.Lon, end.Lat, end.Lon)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("route:%x:%s", hash[:8], mode)
}
