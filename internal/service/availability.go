package service

import (
	"context"
	"fmt"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
)

type availabilityService struct {
	invRepo   repository.InventoryRepository
	bookRepo  repository.BookingRepository
	maintRepo repository.MaintenanceRepository
	catRepo   repository.CategoryRepository
	branches  [2]string
}

func NewAvailabilityService(
	invRepo repository.InventoryRepository,
	bookRepo repository.BookingRepository,
	maintRepo repository.MaintenanceRepository,
	catRepo repository.CategoryRepository,
	branches [2]string,
) AvailabilityService {
	return &availabilityService{
		invRepo:   invRepo,
		bookRepo:  bookRepo,
		maintRepo: maintRepo,
		catRepo:   catRepo,
		branches:  branches,
	}
}

// Sibling returns the other branch of the fixed two-element set.
func (s *availabilityService) sibling(branch string) (string, error) {
	switch branch {
	case s.branches[0]:
		return s.branches[1], nil
	case s.branches[1]:
		return s.branches[0], nil
	default:
		return "", fmt.Errorf("unknown branch %q: %w", branch, domain.ErrNotFound)
	}
}

func (s *availabilityService) CheckAvailability(ctx context.Context, categoryID, branch string, start, end time.Time, quantity int) (*domain.AvailabilityResult, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}
	if quantity < 1 {
		quantity = 1
	}

	sibling, err := s.sibling(branch)
	if err != nil {
		return nil, err
	}
	cat, err := s.catRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	free, err := s.freeItems(ctx, categoryID, branch, start, end)
	if err != nil {
		return nil, err
	}
	if len(free) >= quantity {
		return &domain.AvailabilityResult{
			Available:  true,
			Message:    fmt.Sprintf("%d unit(s) available at %s", len(free), branch),
			Candidates: free[:quantity],
		}, nil
	}

	siblingFree, err := s.freeItems(ctx, categoryID, sibling, start, end)
	if err != nil {
		return nil, err
	}
	if len(siblingFree) >= quantity {
		return &domain.AvailabilityResult{
			Available:   true,
			Message:     fmt.Sprintf("no unit at %s; %d unit(s) available at %s with delivery surcharge", branch, len(siblingFree), sibling),
			Candidates:  []domain.InventoryItem{},
			CrossBranch: true,
			Alternative: &domain.BranchAlternative{
				Branch:           sibling,
				Candidates:       siblingFree[:quantity],
				DeliveryFeeCents: cat.CrossBranchSurchargeCents,
			},
		}, nil
	}

	return &domain.AvailabilityResult{
		Available:  false,
		Message:    fmt.Sprintf("no unit of %s available at either branch for the requested dates", categoryID),
		Candidates: []domain.InventoryItem{},
	}, nil
}

// freeItems lists available-status items at the branch and keeps those
// with no booking or maintenance conflict over [start, end]. List order
// is preserved, so the first free item wins ties.
func (s *availabilityService) freeItems(ctx context.Context, categoryID, branch string, start, end time.Time) ([]domain.InventoryItem, error) {
	items, err := s.invRepo.List(ctx, branch, categoryID)
	if err != nil {
		return nil, err
	}

	var free []domain.InventoryItem
	for _, it := range items {
		if it.Status != domain.ItemStatusAvailable {
			continue
		}
		ok, err := s.isFree(ctx, it.ID, start, end)
		if err != nil {
			return nil, err
		}
		if ok {
			free = append(free, it)
		}
	}
	return free, nil
}

func (s *availabilityService) isFree(ctx context.Context, itemID int64, start, end time.Time) (bool, error) {
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
