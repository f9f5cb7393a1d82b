package routing

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"

	"fuel-route-service/internal/adapters/cache"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/platform/obs"
	"fuel-route-service/internal/ports"
)

type directionsRequest struct {
	Coordinates  [][]float64 `json:"coordinates"`
	Units        string      `json:"units"`
	Instructions bool        `json:"instructions"`
}

type directionsResponse struct {
	Features []struct {
		Geometry struct {
			Coordinates [][]float64 `json:"coordinates"`
		} `json:"geometry"`
		Properties struct {
			Summary struct {
				Distance float64 `json:"distance"`
				Duration float64 `json:"duration"`
			} `json:"summary"`
		} `json:"properties"`
	} `json:"features"`
}

// GetRoute fetches a driving route between two coordinates using the
// OpenRouteService directions endpoint (GeoJSON flavor, distances in
// miles). Routed paths are cached with the shorter route TTL.
func (o *ORSProvider) GetRoute(ctx context.Context, start, end domain.Coordinates) (_ ports.Route, err error) {
	defer obs.Time(ctx, "ors.GetRoute")(&err)

	key := cache.RouteKey(start, end, o.profile)
	if o.cache != nil {
		raw, ok, cacheErr := o.cache.Get(ctx, key)
		if cacheErr != nil {
			log.Printf("route cache read failed: %v", cacheErr)
		} else if ok {
			var cached ports.Route
			if err := json.Unmarshal(raw, &cached); err == nil {
				return cached, nil
			}
		}
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s/geojson", o.baseURL, o.profile)

	payload, err := json.Marshal(directionsRequest{
		// ORS expects [lon, lat] pairs.
		Coordinates:  [][]float64{start.CoordsToList(), end.CoordsToList()},
		Units:        "mi",
		Instructions: false,
	})
	if err != nil {
		return ports.Route{}, fmt.Errorf("get route: marshal request: %w", err)
	}

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return ports.Route{}, fmt.Errorf("get route: %w", err)
	}
	defer resp.Body.Close()

	var decoded directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.Route{}, fmt.Errorf("get route: decode response: %w", err)
	}

	if len(decoded.Features) == 0 {
		return ports.Route{}, fmt.Errorf("get route: %w", ports.ErrNotFound)
	}

	feature := decoded.Features[0]
	geometry := make([]domain.Coordinates, 0, len(feature.Geometry.Coordinates))
	for _, c := range feature.Geometry.Coordinates {
		if len(c) < 2 {
			return ports.Route{}, fmt.Errorf("get route: invalid geometry point")
		}
		geometry = append(geometry, domain.Coordinates{Lat: c[1], Lon: c[0]})
	}
	if len(geometry) == 0 {
		return ports.Route{}, fmt.Errorf("get route: empty geometry")
	}

	route := ports.Route{
		Geometry:        geometry,
		DistanceMiles:   feature.Properties.Summary.Distance,
		DurationSeconds: int(math.Round(feature.Properties.Summary.Duration)),
	}

	if o.cache != nil {
		if raw, err := json.Marshal(route); err == nil {
			if err := o.cache.Set(ctx, key, raw, cache.RouteTTL); err != nil {
				log.Printf("route cache write failed: %v", err)
			}
		}
	}

	return route, nil
}
