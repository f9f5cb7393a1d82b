package domain

import "fmt"

// VehicleProfile configures the simulated vehicle for a single plan run.
// All values are in miles or miles-per-gallon. BufferMiles is the reserve
// the vehicle keeps in the tank before a stop becomes mandatory.
type VehicleProfile struct {
	RangeMiles     float64
	MilesPerGallon float64
	BufferMiles    float64
}

// Long-haul defaults matching the reference vehicle.
func DefaultVehicleProfile() VehicleProfile {
	return VehicleProfile{
		RangeMiles:     500,
		MilesPerGallon: 10,
		BufferMiles:    50,
	}
}

// Validate checks the profile invariants: all values positive and the
// buffer strictly smaller than the full-tank range.
func (p VehicleProfile) Validate() error {
	if p.RangeMiles <= 0 {
		return fmt.Errorf("%w: range_miles must be positive, got %g", ErrConfiguration, p.RangeMiles)
	}
	if p.MilesPerGallon <= 0 {
		return fmt.Errorf("%w: miles_per_gallon must be positive, got %g", ErrConfiguration, p.MilesPerGallon)
	}
	if p.BufferMiles <= 0 {
		return fmt.Errorf("%w: buffer_miles must be positive, got %g", ErrConfiguration, p.BufferMiles)
	}
	if p.BufferMiles >= p.RangeMiles {
		return fmt.Errorf("%w: buffer_miles (%g) must be smaller than range_miles (%g)",
			ErrConfiguration, p.BufferMiles, p.RangeMiles)
	}
	return nil
}

// Tank capacity in gallons implied by range and fuel economy.
func (p VehicleProfile) TankGallons() float64 {
	return p.RangeMiles / p.MilesPerGallon
}
