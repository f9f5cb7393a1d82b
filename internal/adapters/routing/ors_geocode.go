package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

type geocodeResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates []float64 `json:"coordinates"`
		} `json:"geometry"`
	} `json:"features"`
}

// Geocode resolves a location name such as "Denver, CO" to coordinates
// using OpenRouteService (/geocode/search). Results are cached with the
// long geocode TTL; location names rarely move.
func (o *ORSProvider) Geocode(ctx context.Context, location string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "ors.Geocode")(&err)

	norm := o.normalize(location)
	if norm == "" {
		return domain.Coordinates{}, fmt.Errorf("geocode: location must be non-empty")
	}

	key := cache.GeocodeKey(norm)
	if o.cache != nil {
		raw, ok, cacheErr := o.cache.Get(ctx, key)
		if cacheErr != nil {
			log.Printf("geocode cache read failed: %v", cacheErr)
		} else if ok {
			var c domain.Coordinates
			if err := json.Unmarshal(raw, &c); err == nil {
				return c, nil
			}
		}
	}

	endpoint := o.baseURL + "/geocode/search"
	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := o.newRequest(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("text", norm)
		q.Set("boundary.country", "US")
		q.Set("size", "1")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, err)
	}
	defer resp.Body.Close()

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: decode response: %w", norm, err)
	}

	if len(decoded.Features) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", norm, ports.ErrNotFound)
	}

	coords := decoded.Features[0].Geometry.Coordinates
	if len(coords) != 2 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: invalid coordinate format", norm)
	}

	// ORS returns [lon, lat].
	result := domain.Coordinates{Lat: coords[1], Lon: coords[0]}

	if o.cache != nil {
		if raw, err := json.Marshal(result); err == nil {
			if err := o.cache.Set(ctx, key, raw, cache.GeocodeTTL); err != nil {
				log.Printf("geocode cache write failed: %v", err)
			}
		}
	}

	return result, nil
}
