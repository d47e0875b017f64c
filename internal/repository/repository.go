package repository

import (
	"context"
	"time"

	"equiprent-backend/internal/domain"
)

type CategoryRepository interface {
	Create(ctx context.Context, cat *domain.EquipmentCategory) error
	GetByID(ctx context.Context, id string) (*domain.EquipmentCategory, error)
	List(ctx context.Context) ([]domain.EquipmentCategory, error)
	Update(ctx context.Context, cat *domain.EquipmentCategory) error
}

type InventoryRepository interface {
	// Create returns domain.ErrDuplicateSerial when the serial number is
	// already registered for the same branch and category.
	Create(ctx context.Context, item *domain.InventoryItem) error
	GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error)
	// List filters by branch and/or category; empty string means no filter.
	// Results are ordered by id, which fixes the allocation tie-break.
	List(ctx context.Context, branch, categoryID string) ([]domain.InventoryItem, error)
	Update(ctx context.Context, item *domain.InventoryItem) error
	// SetStatus updates the lifecycle status and the display back-reference
	// (ref may be nil to clear it).
	SetStatus(ctx context.Context, id int64, status domain.ItemStatus, ref *domain.BookingRef) error
	Delete(ctx context.Context, id int64) error
}

type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	// Delete exists for compensating rollback of a failed commit only.
	Delete(ctx context.Context, id int64) error
	// List filters by status and/or serving branch; empty string means no filter.
	List(ctx context.Context, status, branch string) ([]domain.Booking, error)
	// FindConflicts returns confirmed/active bookings for the item whose
	// closed interval intersects [start, end].
	FindConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.Booking, error)
	// ListBlockingForItem returns all confirmed/active bookings assigned to
	// the item regardless of dates.
	ListBlockingForItem(ctx context.Context, itemID int64) ([]domain.Booking, error)
	// ListActiveEndedBefore returns active bookings whose end date is
	// strictly before the given day (the derived-overdue set).
	ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error)
}

type MaintenanceRepository interface {
	Create(ctx context.Context, mb *domain.MaintenanceBlock) error
	GetByID(ctx context.Context, id int64) (*domain.MaintenanceBlock, error)
	Delete(ctx context.Context, id int64) error
	// FindConflicts returns maintenance blocks for the item whose closed
	// interval intersects [start, end].
	FindConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.MaintenanceBlock, error)
	ListForItem(ctx context.Context, itemID int64) ([]domain.MaintenanceBlock, error)
	// ListEndedBefore returns blocks whose end date is strictly before the
	// given day.
	ListEndedBefore(ctx context.Context, day time.Time) ([]domain.MaintenanceBlock, error)
}
