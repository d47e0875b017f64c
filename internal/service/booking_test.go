package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
)

func TestBookingService_CreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("LocalAssignment", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(1, 7)
		booking, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, booking.Status)
		assert.Equal(t, item.ID, booking.ItemID)
		assert.Equal(t, testBranchA, booking.Branch)
		assert.Equal(t, testBranchA, booking.RequestedBranch)
		assert.False(t, booking.CrossBranch)
		assert.Equal(t, int64(17500+1500), booking.TotalCostCents)
		assert.Equal(t, int64(1500), booking.DeliveryFeeCents)

		// The registry flipped in the same commit.
		got, err := f.inventory.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ItemStatusBooked, got.Status)
		if assert.NotNil(t, got.CurrentBooking) {
			assert.Equal(t, booking.ID, got.CurrentBooking.BookingID)
			assert.Equal(t, "Dana Reeves", got.CurrentBooking.CustomerName)
		}
	})

	t.Run("CrossBranchAssignment", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		local := f.seedItem(t, testBranchA, "RH-001")
		remote := f.seedItem(t, testBranchB, "RH-101")
		err := f.repos.InventoryRepository.SetStatus(ctx, local.ID, domain.ItemStatusBooked, nil)
		assert.NoError(t, err)

		start, end := futureRange(1, 7)
		booking, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.NoError(t, err)
		assert.True(t, booking.CrossBranch)
		assert.Equal(t, remote.ID, booking.ItemID)
		assert.Equal(t, testBranchB, booking.Branch)
		assert.Equal(t, testBranchA, booking.RequestedBranch)
		assert.Equal(t, int64(4000), booking.DeliveryFeeCents)
		assert.Equal(t, int64(17500+4000), booking.TotalCostCents)
	})

	t.Run("NothingFree", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)

		start, end := futureRange(1, 3)
		_, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("InvalidRange", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(5, 1)
		_, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.ErrorIs(t, err, domain.ErrInvalidRange)
	})

	t.Run("SendsConfirmationMail", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		f.seedItem(t, testBranchA, "RH-001")
		f.email.On("SendBookingCreated", mock.Anything, mock.AnythingOfType("*domain.Booking"), "Rotary Hammer").Return(nil)

		start, end := futureRange(1, 3)
		_, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:    "rotary-hammer",
			Branch:        testBranchA,
			StartDate:     start,
			EndDate:       end,
			CustomerName:  "Dana Reeves",
			CustomerEmail: "dana@example.com",
		})
		assert.NoError(t, err)
		f.email.AssertExpectations(t)
	})
}

func TestBookingService_CreateBooking_Concurrent(t *testing.T) {
	f := newFixture(t)
	f.seedCategory(t)
	f.seedItem(t, testBranchA, "RH-001")
	ctx := context.Background()

	start, end := futureRange(1, 3)
	const attempts = 8

	var wg sync.WaitGroup
	var mu sync.Mutex
	successes := 0
	unavailable := 0

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
				CategoryID:   "rotary-hammer",
				Branch:       testBranchA,
				StartDate:    start,
				EndDate:      end,
				CustomerName: "Dana Reeves",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case errors.Is(err, domain.ErrUnavailable):
				unavailable++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	// One physical unit, one winner.
	assert.Equal(t, 1, successes)
	assert.Equal(t, attempts-1, unavailable)
}

func TestBookingService_UpdateBookingStatus(t *testing.T) {
	ctx := context.Background()

	createBooking := func(t *testing.T, f *fixture) *domain.Booking {
		t.Helper()
		start, end := futureRange(0, 3)
		b, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		if err != nil {
			t.Fatalf("creating booking: %v", err)
		}
		return b
	}

	t.Run("FullLifecycle", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")
		b := createBooking(t, f)

		for _, next := range []domain.BookingStatus{
			domain.BookingStatusConfirmed,
			domain.BookingStatusActive,
			domain.BookingStatusReturned,
		} {
			assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, next))
		}

		got, err := f.booking.GetBooking(ctx, b.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusReturned, got.Status)

		// The unit is back on the shelf.
		it, err := f.inventory.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ItemStatusAvailable, it.Status)
		assert.Nil(t, it.CurrentBooking)
	})

	t.Run("RejectsInvalidTransitions", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		f.seedItem(t, testBranchA, "RH-001")
		b := createBooking(t, f)

		// Straight from pending to active skips confirmation.
		err := f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusActive)
		var invalid *domain.InvalidTransitionError
		assert.ErrorAs(t, err, &invalid)
		assert.Equal(t, domain.BookingStatusPending, invalid.From)
		assert.Equal(t, domain.BookingStatusActive, invalid.To)

		// Terminal states stay terminal.
		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusCancelled))
		err = f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusConfirmed)
		assert.ErrorAs(t, err, &invalid)

		// Unknown status strings are rejected too.
		err = f.booking.UpdateBookingStatus(ctx, b.ID, "shipped")
		assert.ErrorAs(t, err, &invalid)
	})

	t.Run("CancelReleasesUnit", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")
		b := createBooking(t, f)

		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusCancelled))

		it, err := f.inventory.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ItemStatusAvailable, it.Status)
	})

	t.Run("ReturnKeepsUnitBookedForFollowOn", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")
		b := createBooking(t, f)
		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusConfirmed))
		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusActive))

		// A follow-on reservation already holds the same unit.
		followStart, followEnd := futureRange(4, 8)
		follow := &domain.Booking{
			CategoryID:   "rotary-hammer",
			ItemID:       item.ID,
			Branch:       testBranchA,
			CustomerName: "Miguel Ortiz",
			StartDate:    followStart,
			EndDate:      followEnd,
			Status:       domain.BookingStatusConfirmed,
		}
		assert.NoError(t, f.repos.BookingRepository.Create(ctx, follow))

		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusReturned))

		it, err := f.inventory.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ItemStatusBooked, it.Status)
		if assert.NotNil(t, it.CurrentBooking) {
			assert.Equal(t, follow.ID, it.CurrentBooking.BookingID)
		}
	})

	t.Run("ConfirmRejectedWhenMaintenanceCoversDates", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")
		b := createBooking(t, f)

		// A hold lands on the ledger while the booking is still pending.
		assert.NoError(t, f.repos.MaintenanceRepository.Create(ctx, &domain.MaintenanceBlock{
			ItemID:    item.ID,
			StartDate: b.StartDate,
			EndDate:   b.EndDate,
			Reason:    "annual service",
		}))

		err := f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, domain.ErrConflict)

		// The booking never started blocking, so the ledger holds no
		// overlapping confirmed booking alongside the maintenance block.
		got, err := f.booking.GetBooking(ctx, b.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, got.Status)
		conflicts, err := f.repos.BookingRepository.FindConflicts(ctx, item.ID, b.StartDate, b.EndDate)
		assert.NoError(t, err)
		assert.Empty(t, conflicts)

		// Cancelling is still open.
		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusCancelled))
	})

	t.Run("NotFound", func(t *testing.T) {
		f := newFixture(t)
		err := f.booking.UpdateBookingStatus(ctx, 404, domain.BookingStatusConfirmed)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestBookingService_MaintenanceBlocks(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateAndRemove", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(0, 2)
		mb, err := f.booking.CreateMaintenanceBlock(ctx, item.ID, start, end, "annual service", "admin")
		assert.NoError(t, err)
		assert.NotZero(t, mb.ID)

		it, err := f.inventory.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ItemStatusMaintenance, it.Status)

		assert.NoError(t, f.booking.RemoveMaintenanceBlock(ctx, mb.ID))

		it, err = f.inventory.GetItem(ctx, item.ID)
		assert.NoError(t, err)
		assert.Equal(t, domain.ItemStatusAvailable, it.Status)
	})

	t.Run("ConflictsWithConfirmedBooking", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(1, 5)
		b, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.NoError(t, err)
		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusConfirmed))

		_, err = f.booking.CreateMaintenanceBlock(ctx, item.ID, start, end, "overlap", "admin")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("ConflictsWithPendingBooking", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(1, 5)
		b, err := f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.NoError(t, err)
		assert.Equal(t, domain.BookingStatusPending, b.Status)

		_, err = f.booking.CreateMaintenanceBlock(ctx, item.ID, start, end, "overlap", "admin")
		assert.ErrorIs(t, err, domain.ErrConflict)

		// Confirming the booking afterwards still works.
		assert.NoError(t, f.booking.UpdateBookingStatus(ctx, b.ID, domain.BookingStatusConfirmed))
	})

	t.Run("ConflictsWithExistingBlock", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(1, 5)
		_, err := f.booking.CreateMaintenanceBlock(ctx, item.ID, start, end, "first", "admin")
		assert.NoError(t, err)

		overlapStart, overlapEnd := futureRange(5, 8)
		_, err = f.booking.CreateMaintenanceBlock(ctx, item.ID, overlapStart, overlapEnd, "second", "admin")
		assert.ErrorIs(t, err, domain.ErrConflict)
	})

	t.Run("BlocksBookingOverSameDates", func(t *testing.T) {
		f := newFixture(t)
		f.seedCategory(t)
		item := f.seedItem(t, testBranchA, "RH-001")

		start, end := futureRange(3, 5)
		_, err := f.booking.CreateMaintenanceBlock(ctx, item.ID, start, end, "service", "admin")
		assert.NoError(t, err)

		_, err = f.booking.CreateBooking(ctx, &CreateBookingRequest{
			CategoryID:   "rotary-hammer",
			Branch:       testBranchA,
			StartDate:    start,
			EndDate:      end,
			CustomerName: "Dana Reeves",
		})
		assert.ErrorIs(t, err, domain.ErrUnavailable)
	})

	t.Run("UnknownItem", func(t *testing.T) {
		f := newFixture(t)
		start, end := futureRange(1, 2)
		_, err := f.booking.CreateMaintenanceBlock(ctx, 404, start, end, "ghost", "admin")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}
