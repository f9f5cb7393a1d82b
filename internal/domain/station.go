package domain

import "fmt"

// Represents a single truck stop selling fuel.
// A FuelStation is identified by its stable external (OPIS) id and is
// immutable once loaded into a catalog snapshot. Records without geocoded
// coordinates never reach the domain layer; the repository filters them out.
type FuelStation struct {
	StationID      string
	Name           string
	Address        string
	City           string
	State          string
	RackID         string
	PricePerGallon float64
	Latitude       float64
	Longitude      float64
}

func (s FuelStation) Coordinates() Coordinates {
	return Coordinates{Lat: s.Latitude, Lon: s.Longitude}
}

// Human-readable station label used in plan output.
func (s FuelStation) Label() string {
	return fmt.Sprintf("%s (%s, %s)", s.Name, s.City, s.State)
}
