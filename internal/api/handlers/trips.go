package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"fuel-route-service/internal/api/dto"
	"fuel-route-service/internal/catalog"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/ports"
	"fuel-route-service/internal/services"
)

// CatalogSource supplies catalog snapshots to handlers. Satisfied by
// *catalog.Loader.
type CatalogSource interface {
	Snapshot(ctx context.Context) (*catalog.Catalog, error)
	Refresh(ctx context.Context) (*catalog.Catalog, error)
}

type TripHandler struct {
	Geocoder       ports.GeocodeProvider
	Router         ports.RouteProvider
	Catalog        CatalogSource
	DefaultProfile domain.VehicleProfile
}

// Plan resolves start/end locations, fetches the driving route, and runs
// the fuel stop planner against the current catalog snapshot. Each failure
// kind maps to its own status so callers can tell bad input from an
// infeasible plan or an unavailable collaborator.
func (h *TripHandler) Plan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req dto.TripRequest

	dec := json.NewDecoder(r.Body)
	defer r.Body.Close()
	dec.DisallowUnknownFields()

	if err := dec.Decode(&req); err != nil {
		writeError(w, r, http.StatusBadRequest, "invalid json body")
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
		return
	}

	start := strings.TrimSpace(req.StartLocation)
	end := strings.TrimSpace(req.EndLocation)
	if start == "" || end == "" {
		writeError(w, r, http.StatusBadRequest, "start_location and end_location are required")
		return
	}

	profile := h.DefaultProfile
	if req.VehicleRangeMiles != nil {
		profile.RangeMiles = *req.VehicleRangeMiles
	}
	if req.VehicleMPG != nil {
		profile.MilesPerGallon = *req.VehicleMPG
	}
	if req.VehicleBufferMiles != nil {
		profile.BufferMiles = *req.VehicleBufferMiles
	}
	if err := profile.Validate(); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	ctx := r.Context()

	startCoords, err := h.Geocoder.Geocode(ctx, start)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("could not find coordinates for start location: %s", start))
			return
		}
		log.Printf("geocode start failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "geocoding provider unavailable")
		return
	}

	endCoords, err := h.Geocoder.Geocode(ctx, end)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest,
				fmt.Sprintf("could not find coordinates for end location: %s", end))
			return
		}
		log.Printf("geocode end failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "geocoding provider unavailable")
		return
	}

	route, err := h.Router.GetRoute(ctx, startCoords, endCoords)
	if err != nil {
		if errors.Is(err, ports.ErrNotFound) {
			writeError(w, r, http.StatusBadRequest, "no drivable route between the given locations")
			return
		}
		log.Printf("get route failed: %v", err)
		writeError(w, r, http.StatusBadGateway, "routing provider unavailable")
		return
	}

	cat, err := h.Catalog.Snapshot(ctx)
	if err != nil {
		log.Printf("catalog snapshot failed: %v", err)
		writeError(w, r, http.StatusServiceUnavailable, "fuel station data unavailable")
		return
	}

	plan, err := services.PlanFuelStops(
		route.Geometry, route.DistanceMiles, startCoords, endCoords, profile, cat,
	)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnreachable):
			writeError(w, r, http.StatusUnprocessableEntity,
				"no viable fueling plan: no reachable station on some leg of the route")
		case errors.Is(err, domain.ErrDataUnavailable):
			writeError(w, r, http.StatusServiceUnavailable, "fuel station data unavailable")
		case errors.Is(err, domain.ErrConfiguration):
			writeError(w, r, http.StatusBadRequest, err.Error())
		case errors.Is(err, domain.ErrInvalidRoute):
			log.Printf("routing provider returned unusable route: %v", err)
			writeError(w, r, http.StatusBadGateway, "routing provider returned an unusable route")
		default:
			log.Printf("plan fuel stops failed: %v", err)
			writeError(w, r, http.StatusInternalServerError, "internal server error")
		}
		return
	}

	writeJSON(w, r, http.StatusOK, buildTripResponse(route, startCoords, endCoords, plan))
}

func buildTripResponse(
	route ports.Route,
	start, end domain.Coordinates,
	plan *domain.FuelPlan,
) dto.TripResponse {
	geometry := make([][]float64, 0, len(route.Geometry))
	for _, p := range route.Geometry {
		geometry = append(geometry, p.LatLonList())
	}

	stops := make([]dto.FuelStopResponse, 0, len(plan.Stops))
	for _, s := range plan.Stops {
		stops = append(stops, dto.FuelStopResponse{
			Location:               s.Station.Label(),
			Latitude:               s.Station.Latitude,
			Longitude:              s.Station.Longitude,
			FuelPricePerGallon:     s.Station.PricePerGallon,
			DistanceFromStartMiles: round2(s.DistanceFromStartMiles),
			FuelAddedGallons:       round2(s.FuelAddedGallons),
			CostAtThisStop:         round2(s.CostUSD),
			DetourMiles:            round2(s.DetourMiles),
			DetourSeconds:          s.DetourSeconds,
		})
	}

	return dto.TripResponse{
		RouteGeometry:                     geometry,
		TotalDistanceMiles:                route.DistanceMiles,
		OptimalFuelStops:                  stops,
		TotalFuelCostUSD:                  round2(plan.TotalFuelCostUSD),
		TotalDetourSeconds:                plan.TotalDetourSeconds,
		StartCoords:                       start.LatLonList(),
		EndCoords:                         end.LatLonList(),
		EstimatedTotalTripDurationMinutes: (route.DurationSeconds + plan.TotalDetourSeconds) / 60,
	}
}
