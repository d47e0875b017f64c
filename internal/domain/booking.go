package domain

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusActive    BookingStatus = "active"
	BookingStatusReturned  BookingStatus = "returned"
	BookingStatusCancelled BookingStatus = "cancelled"
)

// bookingTransitions is the validated transition table. Anything not
// listed is rejected with InvalidTransitionError.
var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingStatusPending:   {BookingStatusConfirmed, BookingStatusCancelled},
	BookingStatusConfirmed: {BookingStatusActive, BookingStatusCancelled},
	BookingStatusActive:    {BookingStatusReturned},
	BookingStatusReturned:  {},
	BookingStatusCancelled: {},
}

// CanTransition reports whether from -> to is an allowed booking
// status transition.
func CanTransition(from, to BookingStatus) bool {
	for _, allowed := range bookingTransitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidBookingStatus reports whether s is a known stored status.
func ValidBookingStatus(s BookingStatus) bool {
	_, ok := bookingTransitions[s]
	return ok
}

// Booking reserves one physical unit for a customer over a closed date
// interval. Branch is the serving branch, which differs from
// RequestedBranch when CrossBranch is set.
type Booking struct {
	ID              int64         `json:"id"`
	CategoryID      string        `json:"category_id"`
	ItemID          int64         `json:"item_id"`
	Branch          string        `json:"branch"`
	RequestedBranch string        `json:"requested_branch"`
	CustomerName    string        `json:"customer_name"`
	CustomerEmail   string        `json:"customer_email"`
	CustomerPhone   string        `json:"customer_phone"`
	StartDate       time.Time     `json:"start_date"`
	EndDate         time.Time     `json:"end_date"` // inclusive, start <= end
	Status          BookingStatus `json:"status"`
	CrossBranch     bool          `json:"cross_branch"`

	DeliveryFeeCents int64 `json:"delivery_fee_cents"`
	TotalCostCents   int64 `json:"total_cost_cents"`
	DepositCents     int64 `json:"deposit_cents"`

	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	Notes     string    `json:"notes,omitempty"`
}

// Blocks reports whether the booking counts for interval-conflict
// purposes (confirmed or active).
func (b *Booking) Blocks() bool {
	return b.Status == BookingStatusConfirmed || b.Status == BookingStatusActive
}

// Overdue reports whether the booking is past its end date while still
// active. Overdue is derived for display, never stored.
func (b *Booking) Overdue(now time.Time) bool {
	return b.Status == BookingStatusActive && b.EndDate.Before(now)
}
