package domain

import "time"

type ItemStatus string

const (
	ItemStatusAvailable   ItemStatus = "available"
	ItemStatusBooked      ItemStatus = "booked"
	ItemStatusMaintenance ItemStatus = "maintenance"
	ItemStatusTransfer    ItemStatus = "transfer"
)

type ItemCondition string

const (
	ItemConditionExcellent   ItemCondition = "excellent"
	ItemConditionGood        ItemCondition = "good"
	ItemConditionFair        ItemCondition = "fair"
	ItemConditionNeedsRepair ItemCondition = "needs-repair"
)

// InventoryItem is a serialized physical unit held at one of the two
// branches. Status is mutated only by the booking orchestrator and the
// maintenance operations; the registry itself holds no interval logic.
type InventoryItem struct {
	ID           int64         `json:"id"`
	CategoryID   string        `json:"category_id"`
	Branch       string        `json:"branch"`
	SerialNumber string        `json:"serial_number"` // unique per branch+category
	Condition    ItemCondition `json:"condition"`
	Status       ItemStatus    `json:"status"`
	LastChecked  time.Time     `json:"last_checked"`
	Notes        string        `json:"notes,omitempty"`
	// CurrentBooking is a weak display reference; invariant checks always
	// go through the ledger, never through this field.
	CurrentBooking *BookingRef `json:"current_booking,omitempty"`
	CreatedOn      time.Time   `json:"created_on"`
}

// BookingRef is the display back-reference stored on a booked item.
type BookingRef struct {
	BookingID    int64     `json:"booking_id"`
	CustomerName string    `json:"customer_name"`
	EndDate      time.Time `json:"end_date"`
}

// AvailabilityResult is the resolver's answer for a category/branch/date
// request. Candidates is populated for local hits; Alternative describes
// a sibling-branch fallback with its delivery surcharge.
type AvailabilityResult struct {
	Available   bool               `json:"available"`
	Message     string             `json:"message"`
	Candidates  []InventoryItem    `json:"candidates"`
	CrossBranch bool               `json:"cross_branch"`
	Alternative *BranchAlternative `json:"alternative,omitempty"`
}

// BranchAlternative describes availability at the sibling branch.
type BranchAlternative struct {
	Branch           string          `json:"branch"`
	Candidates       []InventoryItem `json:"candidates"`
	DeliveryFeeCents int64           `json:"delivery_fee_cents"`
}
