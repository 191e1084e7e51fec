package gear

import "errors"

// ErrSourceUnavailable wraps failures to reach the activity source. Operations
// that hit it abort before touching any stored state.
var ErrSourceUnavailable = errors.New("activity source unavailable")

// ErrPersistence wraps record store write failures.
var ErrPersistence = errors.New("record store write failed")

// Validation failures. All are checked before any mutation happens.
var (
	ErrInvalidIntervalType  = errors.New(`interval type must be "time" or "distance"`)
	ErrInvalidIntervalValue = errors.New("interval value must be positive")
	ErrInvalidStatus        = errors.New("component status must be active, in_inventory or retired")
	ErrNoMaintenanceHistory = errors.New("no maintenance history for item")
	ErrComponentRetired     = errors.New("component is retired")
	ErrNotInInventory       = errors.New("component is not in inventory")
	ErrNotInstalled         = errors.New("component is not installed")
	ErrInvalidSwapAction    = errors.New(`swap action must be "remove" or "retire"`)
	ErrGearMismatch         = errors.New("component is not installed on this gear")
)
