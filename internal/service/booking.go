package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/utils"
)

type bookingService struct {
	invRepo      repository.InventoryRepository
	bookRepo     repository.BookingRepository
	maintRepo    repository.MaintenanceRepository
	catRepo      repository.CategoryRepository
	availability AvailabilityService
	pricing      PricingService
	emailSvc     EmailService
	notifier     Notifier
	locks        *itemLocks
}

func NewBookingService(
	invRepo repository.InventoryRepository,
	bookRepo repository.BookingRepository,
	maintRepo repository.MaintenanceRepository,
	catRepo repository.CategoryRepository,
	availability AvailabilityService,
	pricing PricingService,
	emailSvc EmailService,
	notifier Notifier,
) BookingService {
	return &bookingService{
		invRepo:      invRepo,
		bookRepo:     bookRepo,
		maintRepo:    maintRepo,
		catRepo:      catRepo,
		availability: availability,
		pricing:      pricing,
		emailSvc:     emailSvc,
		notifier:     notifier,
		locks:        newItemLocks(),
	}
}

// CreateBooking resolves availability, prices the stay, and commits the
// unit assignment. The ledger append and the registry status flip happen
// under the item's lock; a failed second write rolls the first back, so
// readers never observe a half-committed booking.
func (s *bookingService) CreateBooking(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error) {
	if req.EndDate.Before(req.StartDate) {
		return nil, domain.ErrInvalidRange
	}

	res, err := s.availability.CheckAvailability(ctx, req.CategoryID, req.Branch, req.StartDate, req.EndDate, 1)
	if err != nil {
		return nil, err
	}
	if !res.Available {
		return nil, domain.ErrUnavailable
	}

	candidates := res.Candidates
	servingBranch := req.Branch
	crossBranch := false
	if len(candidates) == 0 && res.Alternative != nil {
		candidates = res.Alternative.Candidates
		servingBranch = res.Alternative.Branch
		crossBranch = true
	}

	quote, err := s.pricing.Quote(ctx, req.CategoryID, req.StartDate, req.EndDate, crossBranch)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		booking, err := s.commitAssignment(ctx, req, &candidates[i], servingBranch, crossBranch, quote)
		if err != nil {
			return nil, err
		}
		if booking == nil {
			// Lost the race for this unit; try the next candidate.
			continue
		}

		s.notifier.Publish(Event{Type: EventBookingChanged, Entity: strconv.FormatInt(booking.ID, 10)})
		s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(booking.ItemID, 10)})
		s.sendBookingMail(ctx, booking, func(name string) error {
			return s.emailSvc.SendBookingCreated(ctx, booking, name)
		})
		return booking, nil
	}

	// Every candidate was taken between the check and the commit.
	return nil, domain.ErrUnavailable
}

// commitAssignment tries to promise one candidate unit. It returns
// (nil, nil) when the unit was no longer free under the lock.
func (s *bookingService) commitAssignment(ctx context.Context, req *CreateBookingRequest, item *domain.InventoryItem, servingBranch string, crossBranch bool, quote *domain.CostQuote) (*domain.Booking, error) {
	unlock := s.locks.lock(item.ID)
	defer unlock()

	// Re-validate under the lock: status and ledger may have moved since
	// the availability snapshot.
	current, err := s.invRepo.GetByID(ctx, item.ID)
	if err != nil {
		return nil, err
	}
	if current.Status != domain.ItemStatusAvailable {
		return nil, nil
	}
	free, err := s.ledgerFree(ctx, item.ID, req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if !free {
		return nil, nil
	}

	booking := &domain.Booking{
		CategoryID:       req.CategoryID,
		ItemID:           item.ID,
		Branch:           servingBranch,
		RequestedBranch:  req.Branch,
		CustomerName:     req.CustomerName,
		CustomerEmail:    req.CustomerEmail,
		CustomerPhone:    req.CustomerPhone,
		StartDate:        utils.DateOnly(req.StartDate),
		EndDate:          utils.DateOnly(req.EndDate),
		Status:           domain.BookingStatusPending,
		CrossBranch:      crossBranch,
		DeliveryFeeCents: quote.DeliveryFeeCents,
		TotalCostCents:   quote.TotalCents,
		DepositCents:     quote.DepositCents,
		CreatedBy:        req.CreatedBy,
		CreatedAt:        time.Now(),
		Notes:            req.Notes,
	}

	if err := s.bookRepo.Create(ctx, booking); err != nil {
		return nil, fmt.Errorf("appending booking: %w", err)
	}

	ref := &domain.BookingRef{
		BookingID:    booking.ID,
		CustomerName: booking.CustomerName,
		EndDate:      booking.EndDate,
	}
	if err := s.invRepo.SetStatus(ctx, item.ID, domain.ItemStatusBooked, ref); err != nil {
		// Roll the ledger append back so neither write applies.
		if delErr := s.bookRepo.Delete(ctx, booking.ID); delErr != nil {
			logger.Error("Failed to roll back booking after status write failure", "booking_id", booking.ID, "error", delErr)
		}
		return nil, fmt.Errorf("assigning unit %d: %w", item.ID, err)
	}

	return booking, nil
}

func (s *bookingService) ledgerFree(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
	bookings, err := s.bookRepo.FindConflicts(ctx, itemID, start, end)
	if err != nil {
		return false, err
	}
	if len(bookings) > 0 {
		return false, nil
	}
	blocks, err := s.maintRepo.FindConflicts(ctx, itemID, start, end)
	if err != nil {
		return false, err
	}
	return len(blocks) == 0, nil
}

func (s *bookingService) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	return s.bookRepo.GetByID(ctx, id)
}

func (s *bookingService) ListBookings(ctx context.Context, status, branch string) ([]domain.Booking, error) {
	return s.bookRepo.List(ctx, status, branch)
}

// UpdateBookingStatus drives the booking state machine. Transitions to
// returned/cancelled release the unit, but the new registry status is
// recomputed from the ledger rather than forced to available: a
// back-to-back booking or maintenance block may still cover the unit.
func (s *bookingService) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	booking, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if !domain.ValidBookingStatus(status) || !domain.CanTransition(booking.Status, status) {
		return &domain.InvalidTransitionError{From: booking.Status, To: status}
	}

	unlock := s.locks.lock(booking.ItemID)
	defer unlock()

	// A pending booking does not block the ledger, so the ledger may
	// have moved under it. Re-validate before it starts blocking.
	if status == domain.BookingStatusConfirmed {
		if err := s.ensureConfirmable(ctx, booking); err != nil {
			return err
		}
	}

	if err := s.bookRepo.UpdateStatus(ctx, id, status); err != nil {
		return err
	}
	booking.Status = status

	if status == domain.BookingStatusReturned || status == domain.BookingStatusCancelled {
		if err := s.recomputeItemStatus(ctx, booking.ItemID); err != nil {
			return err
		}
	}

	s.notifier.Publish(Event{Type: EventBookingChanged, Entity: strconv.FormatInt(id, 10)})
	s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(booking.ItemID, 10)})
	s.sendBookingMail(ctx, booking, func(name string) error {
		return s.emailSvc.SendBookingStatusUpdate(ctx, booking, name)
	})
	return nil
}

// ensureConfirmable rejects the pending -> confirmed transition when a
// blocking booking or maintenance block now covers the unit's dates.
func (s *bookingService) ensureConfirmable(ctx context.Context, booking *domain.Booking) error {
	conflicts, err := s.bookRepo.FindConflicts(ctx, booking.ItemID, booking.StartDate, booking.EndDate)
	if err != nil {
		return err
	}
	for i := range conflicts {
		if conflicts[i].ID != booking.ID {
			return fmt.Errorf("booking %d can no longer be confirmed, unit %d is booked over its dates: %w", booking.ID, booking.ItemID, domain.ErrConflict)
		}
	}

	blocks, err := s.maintRepo.FindConflicts(ctx, booking.ItemID, booking.StartDate, booking.EndDate)
	if err != nil {
		return err
	}
	if len(blocks) > 0 {
		return fmt.Errorf("booking %d can no longer be confirmed, unit %d is under maintenance over its dates: %w", booking.ID, booking.ItemID, domain.ErrConflict)
	}
	return nil
}

// recomputeItemStatus derives the registry status for a unit from the
// ledger: a confirmed/active booking covering today or later wins, then
// an open maintenance block, otherwise the unit is available.
func (s *bookingService) recomputeItemStatus(ctx context.Context, itemID int64) error {
	today := utils.Today()

	blocking, err := s.bookRepo.ListBlockingForItem(ctx, itemID)
	if err != nil {
		return err
	}
	for i := range blocking {
		if !blocking[i].EndDate.Before(today) {
			ref := &domain.BookingRef{
				BookingID:    blocking[i].ID,
				CustomerName: blocking[i].CustomerName,
				EndDate:      blocking[i].EndDate,
			}
			return s.invRepo.SetStatus(ctx, itemID, domain.ItemStatusBooked, ref)
		}
	}

	blocks, err := s.maintRepo.ListForItem(ctx, itemID)
	if err != nil {
		return err
	}
	for i := range blocks {
		if !blocks[i].EndDate.Before(today) {
			return s.invRepo.SetStatus(ctx, itemID, domain.ItemStatusMaintenance, nil)
		}
	}

	return s.invRepo.SetStatus(ctx, itemID, domain.ItemStatusAvailable, nil)
}

// CreateMaintenanceBlock places an administrative hold on a unit. It
// conflicts with confirmed/active bookings and with other maintenance
// blocks over the same dates.
func (s *bookingService) CreateMaintenanceBlock(ctx context.Context, itemID int64, start, end time.Time, reason, createdBy string) (*domain.MaintenanceBlock, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}
	if _, err := s.invRepo.GetByID(ctx, itemID); err != nil {
		return nil, err
	}

	unlock := s.locks.lock(itemID)
	defer unlock()

	bookings, err := s.bookRepo.FindConflicts(ctx, itemID, start, end)
	if err != nil {
		return nil, err
	}
	if len(bookings) > 0 {
		return nil, fmt.Errorf("item %d has %d overlapping booking(s): %w", itemID, len(bookings), domain.ErrConflict)
	}
	// Pending bookings sit outside the blocking set but would become
	// unconfirmable under the hold, so they conflict too.
	pending, err := s.pendingConflicts(ctx, itemID, start, end)
	if err != nil {
		return nil, err
	}
	if len(pending) > 0 {
		return nil, fmt.Errorf("item %d has %d overlapping pending booking(s): %w", itemID, len(pending), domain.ErrConflict)
	}
	blocks, err := s.maintRepo.FindConflicts(ctx, itemID, start, end)
	if err != nil {
		return nil, err
	}
	if len(blocks) > 0 {
		return nil, fmt.Errorf("item %d already has an overlapping maintenance block: %w", itemID, domain.ErrConflict)
	}

	mb := &domain.MaintenanceBlock{
		ItemID:    itemID,
		StartDate: utils.DateOnly(start),
		EndDate:   utils.DateOnly(end),
		Reason:    reason,
		CreatedBy: createdBy,
		CreatedAt: time.Now(),
	}
	if err := s.maintRepo.Create(ctx, mb); err != nil {
		return nil, err
	}
	if err := s.recomputeItemStatus(ctx, itemID); err != nil {
		return nil, err
	}

	s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(itemID, 10)})
	return mb, nil
}

// pendingConflicts lists pending bookings for the unit whose closed
// interval intersects [start, end].
func (s *bookingService) pendingConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.Booking, error) {
	pending, err := s.bookRepo.List(ctx, string(domain.BookingStatusPending), "")
	if err != nil {
		return nil, err
	}
	var out []domain.Booking
	for i := range pending {
		if pending[i].ItemID == itemID && utils.Overlaps(pending[i].StartDate, pending[i].EndDate, start, end) {
			out = append(out, pending[i])
		}
	}
	return out, nil
}

// RemoveMaintenanceBlock lifts a hold. The unit goes back to available
// only if nothing else in the ledger still covers it.
func (s *bookingService) RemoveMaintenanceBlock(ctx context.Context, id int64) error {
	mb, err := s.maintRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	unlock := s.locks.lock(mb.ItemID)
	defer unlock()

	if err := s.maintRepo.Delete(ctx, id); err != nil {
		return err
	}
	if err := s.recomputeItemStatus(ctx, mb.ItemID); err != nil {
		return err
	}

	s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(mb.ItemID, 10)})
	return nil
}

// sendBookingMail delivers a customer mail best-effort; a mail failure
// never fails the committed operation.
func (s *bookingService) sendBookingMail(ctx context.Context, booking *domain.Booking, send func(categoryName string) error) {
	if booking.CustomerEmail == "" {
		return
	}
	name := booking.CategoryID
	if cat, err := s.catRepo.GetByID(ctx, booking.CategoryID); err == nil {
		name = cat.Name
	}
	if err := send(name); err != nil {
		logger.Warn("Failed to send booking email", "booking_id", booking.ID, "error", err)
	}
}
