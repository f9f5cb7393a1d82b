package handlers

import "math"

// round2 rounds monetary and mileage figures to two decimals for responses.
func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
