package domain

// Represents a single refueling stop in a fuel plan.
// A FuelStop records the chosen station together with the cost of the
// fill-up and the detour taken to reach it. It is immutable once appended
// to a plan.
type FuelStop struct {
	Station                FuelStation
	DistanceFromStartMiles float64
	FuelAddedGallons       float64
	CostUSD                float64
	DetourMiles            float64
	DetourSeconds          int
}

// Represents the planned refueling schedule for one trip.
// A FuelPlan is the output of the greedy planner and describes the ordered
// sequence of stops along with aggregate cost and detour time. TotalFuelCostUSD
// always includes the cost of the initial full tank, so it is non-zero even
// when no stops are needed.
type FuelPlan struct {
	Stops              []FuelStop
	TotalFuelCostUSD   float64
	TotalDetourSeconds int
}
