// Package geo provides great-circle distance math over WGS84 coordinates.
package geo

import (
	"math"

	"fuel-route-service/internal/domain"
)

// Mean Earth radius in statute miles.
const EarthRadiusMiles = 3958.8

// Approximate ground distance of one degree of latitude. Used only to size
// spatial-index bounding boxes; exact membership is decided by Haversine.
const MilesPerDegree = 69.0

func degreesToRadians(d float64) float64 {
	return d * math.Pi / 180.0
}

// Haversine returns the great-circle distance between two points in miles.
func Haversine(a, b domain.Coordinates) float64 {
	lat1 := degreesToRadians(a.Lat)
	lon1 := degreesToRadians(a.Lon)
	lat2 := degreesToRadians(b.Lat)
	lon2 := degreesToRadians(b.Lon)

	dLat := lat2 - lat1
	dLon := lon2 - lon1

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return EarthRadiusMiles * c
}

// NearestPointIndex returns the index of the route point closest to p and
// the distance to it in miles. Returns (-1, +Inf) for an empty route.
func NearestPointIndex(route []domain.Coordinates, p domain.Coordinates) (int, float64) {
	best := -1
	bestDist := math.Inf(1)
	for i, rp := range route {
		if d := Haversine(rp, p); d < bestDist {
			best = i
			bestDist = d
		}
	}
	return best, bestDist
}

// PathDistance sums consecutive segment distances of route[from..to].
// Indices outside the route are clamped; a reversed or degenerate span
// yields zero.
func PathDistance(route []domain.Coordinates, from, to int) float64 {
	if from < 0 {
		from = 0
	}
	if to > len(route)-1 {
		to = len(route) - 1
	}
	total := 0.0
	for i := from; i < to; i++ {
		total += Haversine(route[i], route[i+1])
	}
	return total
}

// CumulativeDistance returns the path distance from the start of the route
// up to the point at idx.
func CumulativeDistance(route []domain.Coordinates, idx int) float64 {
	return PathDistance(route, 0, idx)
}
