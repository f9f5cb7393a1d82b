package services

import (
	"fmt"
	"math"

	"fuel-route-service/internal/catalog"
	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

const (
	// How far off the route a station may sit and still count as "on route".
	stationSearchRadiusMiles = 50.0

	// Assumed average speed while detouring to a station and back.
	detourSpeedMPH = 40.0
)

type stopCandidate struct {
	stationIdx int
	rejoinIdx  int
	detour     float64
	price      float64
}

// betterThan orders candidates by price ascending, then rejoin index
// descending (go as far forward as possible among equally priced options,
// which reduces stop count at equal cost), then station index for a fully
// deterministic plan.
func (c stopCandidate) betterThan(o stopCandidate) bool {
	if c.price != o.price {
		return c.price < o.price
	}
	if c.rejoinIdx != o.rejoinIdx {
		return c.rejoinIdx > o.rejoinIdx
	}
	return c.stationIdx < o.stationIdx
}

// PlanFuelStops walks the route geometry with a greedy simulation and
// selects stations to refuel at, minimizing price at each stop.
//
// The algorithm minimizes the immediate fill-up price at each step. It does
// not attempt a globally optimal fueling schedule; the design prioritizes
// determinism and simplicity over optimality. The route geometry and total
// distance are trusted as resolved by the routing provider and are not
// re-validated here beyond basic shape checks.
//
// The simulation is pure computation: it performs no I/O, never blocks, and
// multiple plans may run in parallel against the same catalog snapshot.
func PlanFuelStops(
	route []domain.Coordinates,
	totalDistanceMiles float64,
	start domain.Coordinates,
	end domain.Coordinates,
	profile domain.VehicleProfile,
	cat *catalog.Catalog,
) (*domain.FuelPlan, error) {
	if err := profile.Validate(); err != nil {
		return nil, fmt.Errorf("plan fuel stops: %w", err)
	}
	if len(route) == 0 {
		return nil, fmt.Errorf("plan fuel stops: %w: route has no points", domain.ErrInvalidRoute)
	}
	if totalDistanceMiles < 0 {
		return nil, fmt.Errorf("plan fuel stops: %w: negative total distance %g",
			domain.ErrInvalidRoute, totalDistanceMiles)
	}
	if cat == nil || cat.Len() == 0 {
		return nil, fmt.Errorf("plan fuel stops: %w: catalog holds no stations", domain.ErrDataUnavailable)
	}

	// The trip starts on a full tank charged at the catalog mean price. This
	// models the cost of the fuel already in the tank and is included even
	// when the trip needs no stops.
	totalCost := profile.TankGallons() * cat.MeanPrice()

	currentRange := profile.RangeMiles
	currentLoc := start
	idx, _ := geo.NearestPointIndex(route, start)
	detourSeconds := 0.0
	stops := []domain.FuelStop{}

	for {
		// Terminal check ignores the buffer: if the tank covers the rest of
		// the route outright, the trip finishes with no further stop.
		remaining := geo.PathDistance(route, idx, len(route)-1)
		if currentRange >= remaining {
			break
		}

		effectiveRange := currentRange - profile.BufferMiles

		// Lookahead window: route points reachable before the buffer forces
		// a stop.
		lookEnd := idx
		acc := 0.0
		for i := idx + 1; i < len(route); i++ {
			acc += geo.Haversine(route[i-1], route[i])
			lookEnd = i
			if acc > effectiveRange {
				break
			}
		}

		// Union of stations near any window point, duplicate-free.
		seen := make(map[int]struct{})
		candidates := make([]int, 0, 16)
		for i := idx; i <= lookEnd; i++ {
			for _, si := range cat.Nearby(route[i], stationSearchRadiusMiles) {
				if _, ok := seen[si]; ok {
					continue
				}
				seen[si] = struct{}{}
				candidates = append(candidates, si)
			}
		}

		var best *stopCandidate
		for _, si := range candidates {
			st := cat.Station(si)
			stLoc := st.Coordinates()

			// Reachable on current fuel?
			dist := geo.Haversine(currentLoc, stLoc)
			if dist > currentRange {
				continue
			}

			// The station must rejoin the route strictly ahead of the
			// current position; anything at or behind it cannot advance the
			// trip and would stall the simulation.
			rejoinIdx, offRoute := geo.NearestPointIndex(route, stLoc)
			if rejoinIdx <= idx {
				continue
			}
			if offRoute > stationSearchRadiusMiles {
				continue
			}

			// The full detour (out to the station, then back onto the
			// route) must also fit in the tank.
			detour := dist + offRoute
			if detour > currentRange {
				continue
			}

			cand := stopCandidate{
				stationIdx: si,
				rejoinIdx:  rejoinIdx,
				detour:     detour,
				price:      st.PricePerGallon,
			}
			if best == nil || cand.betterThan(*best) {
				c := cand
				best = &c
			}
		}

		if best == nil {
			return nil, fmt.Errorf(
				"plan fuel stops: %w within %.0f miles of the next leg (route index %d, %.0f miles remaining)",
				domain.ErrUnreachable, stationSearchRadiusMiles, idx, remaining,
			)
		}

		chosen := cat.Station(best.stationIdx)
		traveled := geo.CumulativeDistance(route, idx)

		// Burn the detour, then refill to a full tank at the chosen station.
		currentRange -= best.detour
		if currentRange < 0 {
			currentRange = 0
		}
		fuelAdded := (profile.RangeMiles - currentRange) / profile.MilesPerGallon
		cost := fuelAdded * chosen.PricePerGallon
		totalCost += cost
		currentRange = profile.RangeMiles

		stopDetourSeconds := best.detour / detourSpeedMPH * 3600
		detourSeconds += stopDetourSeconds

		// Resume simulation at the station's rejoin point. Cumulative route
		// distance is recomputed from the geometry on the next pass.
		idx = best.rejoinIdx
		currentLoc = chosen.Coordinates()

		stops = append(stops, domain.FuelStop{
			Station:                chosen,
			DistanceFromStartMiles: traveled + best.detour,
			FuelAddedGallons:       fuelAdded,
			CostUSD:                cost,
			DetourMiles:            best.detour,
			DetourSeconds:          int(math.Round(stopDetourSeconds)),
		})
	}

	return &domain.FuelPlan{
		Stops:              stops,
		TotalFuelCostUSD:   totalCost,
		TotalDetourSeconds: int(math.Round(detourSeconds)),
	}, nil
}
