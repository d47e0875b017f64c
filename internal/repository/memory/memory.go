// Package memory provides an in-memory implementation of the repository
// contracts. It backs the "memory" store type and the service tests.
// Readers get copies, so a snapshot handed out is never mutated by a
// later commit.
package memory

import (
	"context"
	"sync"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/utils"
)

type Store struct {
	mu sync.RWMutex

	categories  map[string]*domain.EquipmentCategory
	items       map[int64]*domain.InventoryItem
	bookings    map[int64]*domain.Booking
	maintenance map[int64]*domain.MaintenanceBlock

	nextItemID        int64
	nextBookingID     int64
	nextMaintenanceID int64
}

func NewStore() *Store {
	return &Store{
		categories:  make(map[string]*domain.EquipmentCategory),
		items:       make(map[int64]*domain.InventoryItem),
		bookings:    make(map[int64]*domain.Booking),
		maintenance: make(map[int64]*domain.MaintenanceBlock),
	}
}

func copyItem(it *domain.InventoryItem) *domain.InventoryItem {
	out := *it
	if it.CurrentBooking != nil {
		ref := *it.CurrentBooking
		out.CurrentBooking = &ref
	}
	return &out
}

// --- CategoryRepository ---

func (s *Store) CreateCategory(ctx context.Context, c *domain.EquipmentCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; ok {
		return domain.ErrConflict
	}
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

func (s *Store) GetCategory(ctx context.Context, id string) (*domain.EquipmentCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (s *Store) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.EquipmentCategory
	for _, c := range s.categories {
		out = append(out, *c)
	}
	sortCategories(out)
	return out, nil
}

func (s *Store) UpdateCategory(ctx context.Context, c *domain.EquipmentCategory) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *c
	s.categories[c.ID] = &cp
	return nil
}

// --- InventoryRepository ---

func (s *Store) CreateItem(ctx context.Context, it *domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.items {
		if existing.Branch == it.Branch && existing.CategoryID == it.CategoryID && existing.SerialNumber == it.SerialNumber {
			return domain.ErrDuplicateSerial
		}
	}
	s.nextItemID++
	it.ID = s.nextItemID
	it.CreatedOn = time.Now()
	s.items[it.ID] = copyItem(it)
	return nil
}

func (s *Store) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	it, ok := s.items[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return copyItem(it), nil
}

func (s *Store) ListItems(ctx context.Context, branch, categoryID string) ([]domain.InventoryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.InventoryItem
	for _, it := range s.items {
		if branch != "" && it.Branch != branch {
			continue
		}
		if categoryID != "" && it.CategoryID != categoryID {
			continue
		}
		out = append(out, *copyItem(it))
	}
	sortItemsByID(out)
	return out, nil
}

func (s *Store) UpdateItem(ctx context.Context, it *domain.InventoryItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	existing, ok := s.items[it.ID]
	if !ok {
		return domain.ErrNotFound
	}
	existing.Condition = it.Condition
	existing.LastChecked = it.LastChecked
	existing.Notes = it.Notes
	return nil
}

func (s *Store) SetItemStatus(ctx context.Context, id int64, status domain.ItemStatus, ref *domain.BookingRef) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	it, ok := s.items[id]
	if !ok {
		return domain.ErrNotFound
	}
	it.Status = status
	if ref != nil {
		r := *ref
		it.CurrentBooking = &r
	} else {
		it.CurrentBooking = nil
	}
	return nil
}

func (s *Store) DeleteItem(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.items[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.items, id)
	return nil
}

// --- BookingRepository ---

func (s *Store) CreateBooking(ctx context.Context, b *domain.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBookingID++
	b.ID = s.nextBookingID
	cp := *b
	s.bookings[b.ID] = &cp
	return nil
}

func (s *Store) GetBooking(ctx context.Context, id int64) (*domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.bookings[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (s *Store) UpdateBookingStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[id]
	if !ok {
		return domain.ErrNotFound
	}
	b.Status = status
	return nil
}

func (s *Store) DeleteBooking(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.bookings, id)
	return nil
}

func (s *Store) ListBookings(ctx context.Context, status, branch string) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if status != "" && string(b.Status) != status {
			continue
		}
		if branch != "" && b.Branch != branch {
			continue
		}
		out = append(out, *b)
	}
	sortBookingsByID(out)
	return out, nil
}

func (s *Store) FindBookingConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.ItemID != itemID || !b.Blocks() {
			continue
		}
		if utils.Overlaps(b.StartDate, b.EndDate, start, end) {
			out = append(out, *b)
		}
	}
	sortBookingsByID(out)
	return out, nil
}

func (s *Store) ListBlockingForItem(ctx context.Context, itemID int64) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.ItemID == itemID && b.Blocks() {
			out = append(out, *b)
		}
	}
	sortBookingsByID(out)
	return out, nil
}

func (s *Store) ListActiveEndedBefore(ctx context.Context, day time.Time) ([]domain.Booking, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.Booking
	for _, b := range s.bookings {
		if b.Status == domain.BookingStatusActive && b.EndDate.Before(day) {
			out = append(out, *b)
		}
	}
	sortBookingsByID(out)
	return out, nil
}

// --- MaintenanceRepository ---

func (s *Store) CreateMaintenance(ctx context.Context, mb *domain.MaintenanceBlock) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextMaintenanceID++
	mb.ID = s.nextMaintenanceID
	cp := *mb
	s.maintenance[mb.ID] = &cp
	return nil
}

func (s *Store) GetMaintenance(ctx context.Context, id int64) (*domain.MaintenanceBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	mb, ok := s.maintenance[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *mb
	return &cp, nil
}

func (s *Store) DeleteMaintenance(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.maintenance[id]; !ok {
		return domain.ErrNotFound
	}
	delete(s.maintenance, id)
	return nil
}

func (s *Store) FindMaintenanceConflicts(ctx context.Context, itemID int64, start, end time.Time) ([]domain.MaintenanceBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MaintenanceBlock
	for _, mb := range s.maintenance {
		if mb.ItemID != itemID {
			continue
		}
		if utils.Overlaps(mb.StartDate, mb.EndDate, start, end) {
			out = append(out, *mb)
		}
	}
	sortMaintenanceByID(out)
	return out, nil
}

func (s *Store) ListMaintenanceForItem(ctx context.Context, itemID int64) ([]domain.MaintenanceBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MaintenanceBlock
	for _, mb := range s.maintenance {
		if mb.ItemID == itemID {
			out = append(out, *mb)
		}
	}
	sortMaintenanceByID(out)
	return out, nil
}

func (s *Store) ListMaintenanceEndedBefore(ctx context.Context, day time.Time) ([]domain.MaintenanceBlock, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.MaintenanceBlock
	for _, mb := range s.maintenance {
		if mb.EndDate.Before(day) {
			out = append(out, *mb)
		}
	}
	sortMaintenanceByID(out)
	return out, nil
}
