package service

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
)

type PricingService interface {
	// Quote prices a category over a closed date interval using tiered
	// rate optimization; crossBranch selects the delivery surcharge.
	Quote(ctx context.Context, categoryID string, start, end time.Time, crossBranch bool) (*domain.CostQuote, error)
	GetCategory(ctx context.Context, id string) (*domain.EquipmentCategory, error)
	ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error)
	CreateCategory(ctx context.Context, cat *domain.EquipmentCategory) error
	UpdateRateCard(ctx context.Context, categoryID string, card domain.RateCard) error
}

type AvailabilityService interface {
	// CheckAvailability resolves whether quantity units of the category are
	// free at the branch over [start, end], falling back to the sibling
	// branch with a delivery surcharge.
	CheckAvailability(ctx context.Context, categoryID, branch string, start, end time.Time, quantity int) (*domain.AvailabilityResult, error)
}

type InventoryService interface {
	AddItem(ctx context.Context, item *domain.InventoryItem) error
	GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, branch, categoryID string) ([]domain.InventoryItem, error)
	UpdateItem(ctx context.Context, item *domain.InventoryItem) error
	DeleteItem(ctx context.Context, id int64) error
}

type BookingService interface {
	CreateBooking(ctx context.Context, req *CreateBookingRequest) (*domain.Booking, error)
	GetBooking(ctx context.Context, id int64) (*domain.Booking, error)
	ListBookings(ctx context.Context, status, branch string) ([]domain.Booking, error)
	UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	CreateMaintenanceBlock(ctx context.Context, itemID int64, start, end time.Time, reason, createdBy string) (*domain.MaintenanceBlock, error)
	RemoveMaintenanceBlock(ctx context.Context, id int64) error
}

type EmailService interface {
	SendBookingCreated(ctx context.Context, b *domain.Booking, categoryName string) error
	SendBookingStatusUpdate(ctx context.Context, b *domain.Booking, categoryName string) error
	SendReturnReminder(ctx context.Context, b *domain.Booking) error
}

// CreateBookingRequest carries everything the orchestrator needs to
// promise a unit. Branch is the branch the customer asked for; the
// serving branch may end up being the sibling.
type CreateBookingRequest struct {
	CategoryID    string
	Branch        string
	StartDate     time.Time
	EndDate       time.Time
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Notes         string
	CreatedBy     string
}
