package domain

// Immutable geographic coordinates (WGS84 decimal degrees).
type Coordinates struct {
	Lat float64
	Lon float64
}

// Return coordinates as [lon, lat] for external routing API compatibility.
func (c Coordinates) CoordsToList() []float64 { return []float64{c.Lon, c.Lat} }

// Return coordinates as [lat, lon], the order used in API responses.
func (c Coordinates) LatLonList() []float64 { return []float64{c.Lat, c.Lon} }
