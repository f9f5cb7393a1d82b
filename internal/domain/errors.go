package domain

import "errors"

// Terminal failure kinds for a single plan request. Callers distinguish
// them with errors.Is to produce accurate user-facing messages; none are
// retried internally.
var (
	// Empty or malformed route geometry, rejected before simulation begins.
	ErrInvalidRoute = errors.New("invalid route geometry")

	// The station catalog failed to load or holds zero stations.
	ErrDataUnavailable = errors.New("station data unavailable")

	// The simulation could not find a feasible next stop. Distinct from a
	// trip that needs no stop at all.
	ErrUnreachable = errors.New("no reachable fuel station")

	// Vehicle profile values violate their invariants.
	ErrConfiguration = errors.New("invalid vehicle configuration")
)
