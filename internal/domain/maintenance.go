package domain

import "time"

// MaintenanceBlock is an administrative hold on a unit. It behaves
// exactly like a booking for overlap purposes but carries no customer
// or pricing data.
type MaintenanceBlock struct {
	ID        int64     `json:"id"`
	ItemID    int64     `json:"item_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"` // inclusive
	Reason    string    `json:"reason"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}
