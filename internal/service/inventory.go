package service

import (
	"context"
	"fmt"
	"strconv"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/utils"
)

type inventoryService struct {
	invRepo  repository.InventoryRepository
	bookRepo repository.BookingRepository
	catRepo  repository.CategoryRepository
	branches [2]string
	notifier Notifier
}

func NewInventoryService(
	invRepo repository.InventoryRepository,
	bookRepo repository.BookingRepository,
	catRepo repository.CategoryRepository,
	branches [2]string,
	notifier Notifier,
) InventoryService {
	return &inventoryService{
		invRepo:  invRepo,
		bookRepo: bookRepo,
		catRepo:  catRepo,
		branches: branches,
		notifier: notifier,
	}
}

func (s *inventoryService) AddItem(ctx context.Context, item *domain.InventoryItem) error {
	if item.Branch != s.branches[0] && item.Branch != s.branches[1] {
		return fmt.Errorf("unknown branch %q: %w", item.Branch, domain.ErrNotFound)
	}
	if _, err := s.catRepo.GetByID(ctx, item.CategoryID); err != nil {
		return fmt.Errorf("category %q: %w", item.CategoryID, err)
	}
	if item.Status == "" {
		item.Status = domain.ItemStatusAvailable
	}
	if item.Condition == "" {
		item.Condition = domain.ItemConditionGood
	}
	if item.LastChecked.IsZero() {
		item.LastChecked = utils.Today()
	}

	if err := s.invRepo.Create(ctx, item); err != nil {
		return err
	}
	s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(item.ID, 10)})
	return nil
}

func (s *inventoryService) GetItem(ctx context.Context, id int64) (*domain.InventoryItem, error) {
	return s.invRepo.GetByID(ctx, id)
}

func (s *inventoryService) ListItems(ctx context.Context, branch, categoryID string) ([]domain.InventoryItem, error) {
	return s.invRepo.List(ctx, branch, categoryID)
}

func (s *inventoryService) UpdateItem(ctx context.Context, item *domain.InventoryItem) error {
	if err := s.invRepo.Update(ctx, item); err != nil {
		return err
	}
	s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(item.ID, 10)})
	return nil
}

// DeleteItem removes a unit from the registry. A unit that is currently
// booked, or that any confirmed/active booking still references, stays.
func (s *inventoryService) DeleteItem(ctx context.Context, id int64) error {
	item, err := s.invRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item.Status == domain.ItemStatusBooked {
		return fmt.Errorf("item %d is booked: %w", id, domain.ErrConflict)
	}

	blocking, err := s.bookRepo.ListBlockingForItem(ctx, id)
	if err != nil {
		return err
	}
	if len(blocking) > 0 {
		return fmt.Errorf("item %d is referenced by %d confirmed/active booking(s): %w", id, len(blocking), domain.ErrConflict)
	}

	if err := s.invRepo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Publish(Event{Type: EventInventoryChanged, Entity: strconv.FormatInt(id, 10)})
	return nil
}
