package memory

import (
	"context"
	"sort"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

// Repositories exposes the store through the repository contracts,
// mirroring the postgres Store shape so main can swap backends.
type Repositories struct {
	repository.CategoryRepository
	repository.InventoryRepository
	repository.BookingRepository
	repository.MaintenanceRepository
}

func NewRepositories(s *Store) *Repositories {
	return &Repositories{
		CategoryRepository:    &categoryRepo{s},
		InventoryRepository:   &inventoryRepo{s},
		BookingRepository:     &bookingRepo{s},
		MaintenanceRepository: &maintenanceRepo{s},
	}
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, c *domain.EquipmentCategory) error {
	return r.s.CreateCategory(ctx, c)
}
func (r *categoryRepo) GetByID(ctx context.Context, id string) (*domain.EquipmentCategory, error) {
	return r.s.GetCategory(ctx, id)
}
func (r *categoryRepo) List(ctx context.Context) ([]domain.EquipmentCategory, error) {
	return r.s.ListCategories(ctx)
}
func (r *categoryRepo) Update(ctx context.Context, c *domain.EquipmentCategory) error {
	return r.s.UpdateCategory(ctx, c)
}

type inventoryRepo struct{ s *Store }

func (r *inventoryRepo) Create(ctx context.Context, it *domain.InventoryItem) error {
	return r.s.CreateItem(ctx, it)
}
func (r *inventoryRepo) GetByID(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	return r.s.GetItem(ctx, id)
}
func (r *inventoryRepo) List(ctx context.Context, branch, categoryID string) ([]domain.InventoryItem, error) {
	return r.s.ListItems(ctx, branch, categoryID)
}
func (r *inventoryRepo) Update(ctx context.Context, it *domain.InventoryItem) error {
	return r.s.UpdateItem(ctx, it)
}
func (r *inventoryRepo) SetStatus(ctx context.Context, id int64, status domain.ItemStatus, ref *domain.BookingRef) error {
	return r.s.SetItemStatus(ctx, id, status, ref)
}
func (r *inventoryRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteItem(ctx, id)
}

type bookingRepo struct{ s *Store }

func (r *bookingRepo) Create(ctx context.Context, b *domain.Booking) error {
	return r.s.CreateBooking(ctx, b)
}
func (r *bookingRepo) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	return r.s.GetBooking(ctx, id)
}
func (r *bookingRepo) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	return r.s.UpdateBookingStatus(ctx, id, status)
}
func (r *bookingRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteBooking(ctx, id)
}
func (r *bookingRepo) List(ctx context.Context, status, branch string) ([]domain.Booking, error) {
	return r.s.ListBookings(ctx, status, branch)
}
func (r *bookingRepo) FindConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.Booking, error) {
	return r.s.FindBookingConflicts(ctx, itemID, start, end)
}
func (r *bookingRepo) ListBlockingForItem(ctx context.Context, itemID int64) ([]domain.Booking, error) {
	return r.s.ListBlockingForItem(ctx, itemID)
}
func (r *bookingRepo) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	return r.s.ListActiveEndedBefore(ctx, day)
}

type maintenanceRepo struct{ s *Store }

func (r *maintenanceRepo) Create(ctx context.Context, mb *domain.MaintenanceBlock) error {
	return r.s.CreateMaintenance(ctx, mb)
}
func (r *maintenanceRepo) GetByID(ctx context.Context, id int64) (*domain.MaintenanceBlock, error) {
	return r.s.GetMaintenance(ctx, id)
}
func (r *maintenanceRepo) Delete(ctx context.Context, id int64) error {
	return r.s.DeleteMaintenance(ctx, id)
}
func (r *maintenanceRepo) FindConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.MaintenanceBlock, error) {
	return r.s.FindMaintenanceConflicts(ctx, itemID, start, end)
}
func (r *maintenanceRepo) ListForItem(ctx context.Context, itemID int64) ([]domain.MaintenanceBlock, error) {
	return r.s.ListMaintenanceForItem(ctx, itemID)
}
func (r *maintenanceRepo) ListEndedBefore(ctx context.Context, day time.Time) ([]domain.MaintenanceBlock, error) {
	return r.s.ListMaintenanceEndedBefore(ctx, day)
}

func sortCategories(cats []domain.EquipmentCategory) {
	sort.Slice(cats, func(i, j int) bool { return cats[i].ID < cats[j].ID })
}

func sortItemsByID(items []domain.InventoryItem) {
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
}

func sortBookingsByID(bookings []domain.Booking) {
	sort.Slice(bookings, func(i, j int) bool { return bookings[i].ID < bookings[j].ID })
}

func sortMaintenanceByID(blocks []domain.MaintenanceBlock) {
	sort.Slice(blocks, func(i, j int) bool { return blocks[i].ID < blocks[j].ID })
}
