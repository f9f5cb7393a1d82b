package dto

type TripRequest struct {
	StartLocation string `json:"start_location"`
	EndLocation   string `json:"end_location"`

	// Optional vehicle overrides; defaults come from server configuration.
	VehicleRangeMiles   *float64 `json:"vehicle_range_miles,omitempty"`
	VehicleMPG          *float64 `json:"vehicle_mpg,omitempty"`
	VehicleBufferMiles  *float64 `json:"vehicle_buffer_miles,omitempty"`
}

type FuelStopResponse struct {
	Location               string  `json:"location"`
	Latitude               float64 `json:"latitude"`
	Longitude              float64 `json:"longitude"`
	FuelPricePerGallon     float64 `json:"fuel_price_per_gallon"`
	DistanceFromStartMiles float64 `json:"distance_from_start_miles"`
	FuelAddedGallons       float64 `json:"fuel_added_gallons"`
	CostAtThisStop         float64 `json:"cost_at_this_stop"`
	DetourMiles            float64 `json:"detour_miles"`
	DetourSeconds          int     `json:"detour_seconds"`
}

type TripResponse struct {
	RouteGeometry                     [][]float64        `json:"route_geometry"`
	TotalDistanceMiles                float64            `json:"total_distance_miles"`
	OptimalFuelStops                  []FuelStopResponse `json:"optimal_fuel_stops"`
	TotalFuelCostUSD                  float64            `json:"total_fuel_cost_usd"`
	TotalDetourSeconds                int                `json:"total_detour_seconds"`
	StartCoords                       []float64          `json:"start_coords"`
	EndCoords                         []float64          `json:"end_coords"`
	EstimatedTotalTripDurationMinutes int                `json:"estimated_total_trip_duration_minutes"`
}
