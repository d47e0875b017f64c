package service

import (
	"context"
	"math"
	"time"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository"
	"equiprent-backend/internal/utils"
)

type pricingService struct {
	catRepo    repository.CategoryRepository
	depositPct float64
	notifier   Notifier
}

func NewPricingService(catRepo repository.CategoryRepository, depositPct float64, notifier Notifier) PricingService {
	return &pricingService{
		catRepo:    catRepo,
		depositPct: depositPct,
		notifier:   notifier,
	}
}

func (s *pricingService) Quote(ctx context.Context, categoryID string, start, end time.Time, crossBranch bool) (*domain.CostQuote, error) {
	if end.Before(start) {
		return nil, domain.ErrInvalidRange
	}

	cat, err := s.catRepo.GetByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}

	days := utils.DaysInclusive(start, end)
	base := tieredBaseRate(cat, days)

	deliveryFee := cat.DeliveryBaseFeeCents
	if crossBranch {
		deliveryFee = cat.CrossBranchSurchargeCents
	}

	total := base + deliveryFee
	deposit := int64(math.Round(float64(total) * s.depositPct))

	return &domain.CostQuote{
		Days:             days,
		BaseRateCents:    base,
		DeliveryFeeCents: deliveryFee,
		DepositCents:     deposit,
		TotalCents:       total,
	}, nil
}

// tieredBaseRate picks the cheaper of the tier rollup and the flat daily
// cost, so a longer-duration tier can never cost more than paying
// day-by-day would.
func tieredBaseRate(cat *domain.EquipmentCategory, days int) int64 {
	d := int64(days)
	daily := cat.DailyRateCents * d

	switch {
	case days <= 6:
		return daily
	case days <= 29:
		if cat.WeeklyRateCents <= 0 {
			return daily
		}
		weekly := (d/7)*cat.WeeklyRateCents + (d%7)*cat.DailyRateCents
		if weekly < daily {
			return weekly
		}
		return daily
	default:
		if cat.MonthlyRateCents <= 0 {
			return daily
		}
		monthly := (d/30)*cat.MonthlyRateCents + (d%30)*cat.DailyRateCents
		if monthly < daily {
			return monthly
		}
		return daily
	}
}

func (s *pricingService) GetCategory(ctx context.Context, id string) (*domain.EquipmentCategory, error) {
	return s.catRepo.GetByID(ctx, id)
}

func (s *pricingService) ListCategories(ctx context.Context) ([]domain.EquipmentCategory, error) {
	return s.catRepo.List(ctx)
}

func (s *pricingService) CreateCategory(ctx context.Context, cat *domain.EquipmentCategory) error {
	if err := s.catRepo.Create(ctx, cat); err != nil {
		return err
	}
	s.notifier.Publish(Event{Type: EventPricingChanged, Entity: cat.ID})
	return nil
}

func (s *pricingService) UpdateRateCard(ctx context.Context, categoryID string, card domain.RateCard) error {
	cat, err := s.catRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}

	cat.DailyRateCents = card.DailyRateCents
	cat.WeeklyRateCents = card.WeeklyRateCents
	cat.MonthlyRateCents = card.MonthlyRateCents
	cat.DeliveryBaseFeeCents = card.DeliveryBaseFeeCents
	cat.CrossBranchSurchargeCents = card.CrossBranchSurchargeCents

	if err := s.catRepo.Update(ctx, cat); err != nil {
		return err
	}
	s.notifier.Publish(Event{Type: EventPricingChanged, Entity: categoryID})
	return nil
}
