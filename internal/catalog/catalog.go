// Package catalog holds the immutable station catalog and its spatial index.
package catalog

import (
	"math"
	"sort"

	"github.com/dhconnelly/rtreego"

	"fuel-route-service/internal/domain"
	"fuel-route-service/internal/geo"
)

// Used for the initial tank fill when no station carries a valid price.
const fallbackPricePerGallon = 3.50

// Stations are indexed as near-degenerate rectangles of this extent.
const pointExtent = 1e-6

type stationEntry struct {
	loc rtreego.Point
	idx int
}

func (e *stationEntry) Bounds() rtreego.Rect {
	return e.loc.ToRect(pointExtent)
}

// Catalog is a versioned, immutable snapshot of fuel stations plus an
// R-tree over their coordinates. It is never mutated after construction;
// a refresh builds a whole new snapshot.
type Catalog struct {
	stations  []domain.FuelStation
	tree      *rtreego.Rtree
	version   uint64
	meanPrice float64
}

// New builds a catalog snapshot, including the spatial index, from already
// validated station records. The index is always constructed here and never
// deserialized: cached raw records go through New again on every load.
func New(stations []domain.FuelStation) *Catalog {
	c := &Catalog{
		stations: stations,
		tree:     rtreego.NewTree(2, 25, 50),
	}

	sum := 0.0
	priced := 0
	for i, s := range stations {
		c.tree.Insert(&stationEntry{
			loc: rtreego.Point{s.Latitude, s.Longitude},
			idx: i,
		})
		if s.PricePerGallon > 0 {
			sum += s.PricePerGallon
			priced++
		}
	}

	if priced > 0 {
		c.meanPrice = sum / float64(priced)
	} else {
		c.meanPrice = fallbackPricePerGallon
	}

	return c
}

func (c *Catalog) Len() int { return len(c.stations) }

func (c *Catalog) Version() uint64 { return c.version }

// Station returns the record at index i; indices come from Nearby.
func (c *Catalog) Station(i int) domain.FuelStation { return c.stations[i] }

// Stations returns a copy of the ordered station records.
func (c *Catalog) Stations() []domain.FuelStation {
	out := make([]domain.FuelStation, len(c.stations))
	copy(out, c.stations)
	return out
}

// MeanPrice is the mean of all valid station prices, with a fixed fallback
// when no station carries one.
func (c *Catalog) MeanPrice() float64 { return c.meanPrice }

// Nearby returns the indices of all stations within radiusMiles of p,
// in ascending index order and free of duplicates.
//
// The R-tree prefilter uses a bounding box sized with the flat
// miles-per-degree approximation (longitude widened by 1/cos(lat) so the
// box never undershoots); exact membership is then decided by great-circle
// distance, so a returned station is never farther than the radius.
func (c *Catalog) Nearby(p domain.Coordinates, radiusMiles float64) []int {
	if c.tree == nil || len(c.stations) == 0 || radiusMiles <= 0 {
		return nil
	}

	dLat := radiusMiles / geo.MilesPerDegree
	cosLat := math.Cos(p.Lat * math.Pi / 180)
	if cosLat < 0.1 {
		cosLat = 0.1
	}
	dLon := dLat / cosLat

	bb, err := rtreego.NewRect(
		rtreego.Point{p.Lat - dLat, p.Lon - dLon},
		[]float64{2 * dLat, 2 * dLon},
	)
	if err != nil {
		return nil
	}

	matches := c.tree.SearchIntersect(bb)
	out := make([]int, 0, len(matches))
	for _, m := range matches {
		e := m.(*stationEntry)
		if geo.Haversine(p, c.stations[e.idx].Coordinates()) <= radiusMiles {
			out = append(out, e.idx)
		}
	}
	sort.Ints(out)
	return out
}
