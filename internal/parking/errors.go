package parking

import "errors"

// Operation errors. All are recoverable; a failed operation leaves the
// inventory and ticket registry untouched.
var (
	ErrNoSlotAvailable  = errors.New("no suitable slot available")
	ErrDuplicateVehicle = errors.New("vehicle already has an active ticket")
	ErrInvalidTicket    = errors.New("unknown or already released ticket")
	ErrSlotConflict     = errors.New("slot state changed concurrently")
	ErrInvalidRequest   = errors.New("invalid request")
)
