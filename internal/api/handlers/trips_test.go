package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"fuel-route-service/internal/adapters/routing"
	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/catalog"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
)

// Test geometry runs due north along a meridian so route miles map linearly
// onto latitude degrees.
const (
	tripBaseLat = 35.0
	tripBaseLon = -101.0

	tripMilesPerDegreeLat = 3958.8 * math.Pi / 180
)

func tripPointAtMile(m float64) domain.Coordinates {
	return domain.Coordinates{Lat: tripBaseLat + m/tripMilesPerDegreeLat, Lon: tripBaseLon}
}

func tripRoute(totalMiles, stepMiles float64) []domain.Coordinates {
	var route []domain.Coordinates
	for m := 0.0; m <= totalMiles; m += stepMiles {
		route = append(route, tripPointAtMile(m))
	}
	return route
}

func tripStation(id string, mile, offMiles, price float64) domain.FuelStation {
	p := tripPointAtMile(mile)
	lonOffset := 0.0
	if offMiles != 0 {
		lonOffset = offMiles / (tripMilesPerDegreeLat * math.Cos(p.Lat*math.Pi/180))
	}
	return domain.FuelStation{
		StationID:      id,
		Name:           "Truckstop " + id,
		City:           "Amarillo",
		State:          "TX",
		PricePerGallon: price,
		Latitude:       p.Lat,
		Longitude:      p.Lon + lonOffset,
	}
}

type stubCatalogSource struct {
	cat *catalog.Catalog
	err error
}

func (s *stubCatalogSource) Snapshot(ctx context.Context) (*catalog.Catalog, error) {
	return s.cat, s.err
}

func (s *stubCatalogSource) Refresh(ctx context.Context) (*catalog.Catalog, error) {
	return s.cat, s.err
}

func newTripHandler(stations []domain.FuelStation, route ports.Route) *TripHandler {
	return &TripHandler{
		Geocoder: &routing.MockGeocoder{Locations: map[string]domain.Coordinates{
			"Amarillo, TX": route.Geometry[0],
			"Denver, CO":   route.Geometry[len(route.Geometry)-1],
		}},
		Router:         &routing.MockRouter{Route: route},
		Catalog:        &stubCatalogSource{cat: catalog.New(stations)},
		DefaultProfile: domain.VehicleProfile{RangeMiles: 500, MilesPerGallon: 10, BufferMiles: 50},
	}
}

func planRequest(t *testing.T, h *TripHandler, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/route-and-fuel", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Plan(rec, req)
	return rec
}

func TestPlanTripSuccess(t *testing.T) {
	geometry := tripRoute(880, 10)
	route := ports.Route{
		Geometry:        geometry,
		DistanceMiles:   880,
		DurationSeconds: 880 * 3600 / 60, // 60 mph
	}
	stations := []domain.FuelStation{
		tripStation("pricey", 100, 0, 3.9),
		tripStation("cheap", 400, 0, 3.1),
	}

	rec := planRequest(t, newTripHandler(stations, route),
		`{"start_location": "Amarillo, TX", "end_location": "Denver, CO"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var res dto.TripResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &res); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if res.TotalDistanceMiles != 880 {
		t.Errorf("total distance = %g, want 880", res.TotalDistanceMiles)
	}
	if len(res.RouteGeometry) != len(geometry) {
		t.Errorf("geometry points = %d, want %d", len(res.RouteGeometry), len(geometry))
	}
	if len(res.OptimalFuelStops) != 1 {
		t.Fatalf("stops = %d, want 1", len(res.OptimalFuelStops))
	}

	stop := res.OptimalFuelStops[0]
	if stop.FuelPricePerGallon != 3.1 {
		t.Errorf("chosen stop price = %g, want the cheaper station at 3.1", stop.FuelPricePerGallon)
	}
	if stop.Location != "Truckstop cheap (Amarillo, TX)" {
		t.Errorf("stop location = %q", stop.Location)
	}
	if stop.FuelAddedGallons <= 0 {
		t.Errorf("fuel added = %g, want > 0", stop.FuelAddedGallons)
	}

	// Initial fill is 50 gallons at the mean price (3.5); the refill only
	// adds to it.
	if res.TotalFuelCostUSD <= 50*3.5 {
		t.Errorf("total cost = %g, want > %g", res.TotalFuelCostUSD, 50*3.5)
	}
	if res.EstimatedTotalTripDurationMinutes <= 0 {
		t.Errorf("trip duration minutes = %d, want > 0", res.EstimatedTotalTripDurationMinutes)
	}

	wantStart := geometry[0].LatLonList()
	if len(res.StartCoords) != 2 || res.StartCoords[0] != wantStart[0] || res.StartCoords[1] != wantStart[1] {
		t.Errorf("start coords = %v, want %v", res.StartCoords, wantStart)
	}
}

func TestPlanTripUnknownLocation(t *testing.T) {
	geometry := tripRoute(300, 10)
	h := newTripHandler(nil, ports.Route{Geometry: geometry, DistanceMiles: 300})

	rec := planRequest(t, h,
		`{"start_location": "Nowhere, ZZ", "end_location": "Denver, CO"}`)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Nowhere, ZZ") {
		t.Errorf("error should name the failing location, got %s", rec.Body.String())
	}
}

func TestPlanTripUnreachable(t *testing.T) {
	geometry := tripRoute(880, 10)
	route := ports.Route{Geometry: geometry, DistanceMiles: 880}
	// The only station sits 200 miles off the corridor, outside the search
	// radius of every route point.
	stations := []domain.FuelStation{tripStation("remote", 400, 200, 2.9)}

	rec := planRequest(t, newTripHandler(stations, route),
		`{"start_location": "Amarillo, TX", "end_location": "Denver, CO"}`)

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestPlanTripEmptyCatalog(t *testing.T) {
	geometry := tripRoute(880, 10)
	h := newTripHandler(nil, ports.Route{Geometry: geometry, DistanceMiles: 880})

	rec := planRequest(t, h,
		`{"start_location": "Amarillo, TX", "end_location": "Denver, CO"}`)

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
}

func TestPlanTripValidation(t *testing.T) {
	geometry := tripRoute(300, 10)
	h := newTripHandler(nil, ports.Route{Geometry: geometry, DistanceMiles: 300})

	cases := []struct {
		name string
		body string
	}{
		{"missing end", `{"start_location": "Amarillo, TX"}`},
		{"blank start", `{"start_location": "   ", "end_location": "Denver, CO"}`},
		{"unknown field", `{"start_location": "Amarillo, TX", "end_location": "Denver, CO", "fuel": 1}`},
		{"two objects", `{"start_location": "Amarillo, TX", "end_location": "Denver, CO"}{}`},
		{"bad vehicle override", `{"start_location": "Amarillo, TX", "end_location": "Denver, CO", "vehicle_mpg": -1}`},
		{"buffer exceeds range", `{"start_location": "Amarillo, TX", "end_location": "Denver, CO", "vehicle_buffer_miles": 600}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := planRequest(t, h, tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestPlanTripMethodNotAllowed(t *testing.T) {
	geometry := tripRoute(300, 10)
	h := newTripHandler(nil, ports.Route{Geometry: geometry, DistanceMiles: 300})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/route-and-fuel", bytes.NewReader(nil))
	rec := httptest.NewRecorder()
	h.Plan(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Fatalf("status = %d, want 405", rec.Code)
	}
	if got := rec.Header().Get("Allow"); got != http.MethodPost {
		t.Errorf("Allow = %q, want POST", got)
	}
}
