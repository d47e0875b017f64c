package domain

import (
	"errors"
	"fmt"
)

// Typed errors crossing the service boundary. Callers branch with
// errors.Is / errors.As; nothing here is wrapped into a generic
// exception-like value.
var (
	ErrNotFound        = errors.New("not found")
	ErrUnavailable     = errors.New("no unit available for the requested dates")
	ErrConflict        = errors.New("operation conflicts with current state")
	ErrInvalidRange    = errors.New("end date must not be before start date")
	ErrDuplicateSerial = errors.New("serial number already registered for this branch and category")
)

// InvalidTransitionError rejects a booking status transition outside the
// allowed table, naming both ends.
type InvalidTransitionError struct {
	From BookingStatus
	To   BookingStatus
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid booking transition from %q to %q", e.From, e.To)
}
