package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCanTransition(t *testing.T) {
	allowed := []struct{ from, to BookingStatus }{
		{BookingStatusPending, BookingStatusConfirmed},
		{BookingStatusPending, BookingStatusCancelled},
		{BookingStatusConfirmed, BookingStatusActive},
		{BookingStatusConfirmed, BookingStatusCancelled},
		{BookingStatusActive, BookingStatusReturned},
	}
	for _, tr := range allowed {
		assert.True(t, CanTransition(tr.from, tr.to), "%s -> %s should be allowed", tr.from, tr.to)
	}

	// Everything outside the explicit table is rejected, including
	// self-transitions and anything out of the terminal states.
	all := []BookingStatus{BookingStatusPending, BookingStatusConfirmed, BookingStatusActive, BookingStatusReturned, BookingStatusCancelled}
	isAllowed := func(from, to BookingStatus) bool {
		for _, tr := range allowed {
			if tr.from == from && tr.to == to {
				return true
			}
		}
		return false
	}
	for _, from := range all {
		for _, to := range all {
			if isAllowed(from, to) {
				continue
			}
			assert.False(t, CanTransition(from, to), "%s -> %s should be rejected", from, to)
		}
	}
}

func TestValidBookingStatus(t *testing.T) {
	assert.True(t, ValidBookingStatus(BookingStatusPending))
	assert.True(t, ValidBookingStatus(BookingStatusReturned))
	assert.False(t, ValidBookingStatus("shipped"))
	assert.False(t, ValidBookingStatus(""))
}

func TestBookingBlocks(t *testing.T) {
	b := &Booking{Status: BookingStatusPending}
	assert.False(t, b.Blocks())

	b.Status = BookingStatusConfirmed
	assert.True(t, b.Blocks())

	b.Status = BookingStatusActive
	assert.True(t, b.Blocks())

	b.Status = BookingStatusReturned
	assert.False(t, b.Blocks())

	b.Status = BookingStatusCancelled
	assert.False(t, b.Blocks())
}

func TestBookingOverdue(t *testing.T) {
	now := time.Date(2026, time.March, 20, 0, 0, 0, 0, time.UTC)

	b := &Booking{Status: BookingStatusActive, EndDate: now.AddDate(0, 0, -1)}
	assert.True(t, b.Overdue(now))

	// Ending today is not overdue yet.
	b.EndDate = now
	assert.False(t, b.Overdue(now))

	// Only active bookings can be overdue.
	b.EndDate = now.AddDate(0, 0, -5)
	b.Status = BookingStatusReturned
	assert.False(t, b.Overdue(now))
}

func TestInvalidTransitionError(t *testing.T) {
	err := &InvalidTransitionError{From: BookingStatusReturned, To: BookingStatusActive}
	assert.Contains(t, err.Error(), "returned")
	assert.Contains(t, err.Error(), "active")

	var target *InvalidTransitionError
	assert.True(t, errors.As(error(err), &target))
}
