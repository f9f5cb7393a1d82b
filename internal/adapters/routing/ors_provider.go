package routing

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"fuel-route-service/internal/ports"
)

// ORSProvider implements GeocodeProvider and RouteProvider using
// OpenRouteService.
//
// It coordinates:
//   - Location name normalization
//   - TTL-bound caching of geocode and directions results
//   - External API calls with retry/backoff
//
// The provider is safe for concurrent use.
type ORSProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	cache   ports.LookupCache
}

// NewORSProvider builds a provider for the driving-car profile. cache may
// be nil, in which case every call reaches the external API.
func NewORSProvider(apiKey string, cache ports.LookupCache) (*ORSProvider, error) {
	if apiKey == "" {
		return nil, errors.New("ORS api key is empty")
	}

	return &ORSProvider{
		session: &http.Client{Timeout: 15 * time.Second},
		apiKey:  apiKey,
		baseURL: "https://api.openrouteservice.org",
		profile: "driving-car",
		cache:   cache,
	}, nil
}

// normalize ensures consistent cache keys and queries by collapsing whitespace.
func (o *ORSProvider) normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
