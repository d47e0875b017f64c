package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository/memory"
	"equiprent-backend/internal/utils"
)

// MockEmailService is a testify mock for the outbound mail contract.
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) SendBookingCreated(ctx context.Context, b *domain.Booking, categoryName string) error {
	args := m.Called(ctx, b, categoryName)
	return args.Error(0)
}

func (m *MockEmailService) SendBookingStatusUpdate(ctx context.Context, b *domain.Booking, categoryName string) error {
	args := m.Called(ctx, b, categoryName)
	return args.Error(0)
}

func (m *MockEmailService) SendReturnReminder(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

const (
	testBranchA = "hillcrest"
	testBranchB = "junction"
)

// fixture wires the full service stack over the in-memory store.
type fixture struct {
	repos        *memory.Repositories
	email        *MockEmailService
	pricing      PricingService
	availability AvailabilityService
	inventory    InventoryService
	booking      BookingService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	repos := memory.NewRepositories(memory.NewStore())
	branches := [2]string{testBranchA, testBranchB}
	broadcaster := NewBroadcaster()
	email := &MockEmailService{}

	pricing := NewPricingService(repos.CategoryRepository, 0.30, broadcaster)
	availability := NewAvailabilityService(repos.InventoryRepository, repos.BookingRepository, repos.MaintenanceRepository, repos.CategoryRepository, branches)
	inventory := NewInventoryService(repos.InventoryRepository, repos.BookingRepository, repos.CategoryRepository, branches, broadcaster)
	booking := NewBookingService(repos.InventoryRepository, repos.BookingRepository, repos.MaintenanceRepository, repos.CategoryRepository, availability, pricing, email, broadcaster)

	return &fixture{
		repos:        repos,
		email:        email,
		pricing:      pricing,
		availability: availability,
		inventory:    inventory,
		booking:      booking,
	}
}

func (f *fixture) seedCategory(t *testing.T) *domain.EquipmentCategory {
	t.Helper()
	cat := &domain.EquipmentCategory{
		ID:                        "rotary-hammer",
		Name:                      "Rotary Hammer",
		ColorTag:                  "orange",
		DailyRateCents:            3500,
		WeeklyRateCents:           17500,
		MonthlyRateCents:          52500,
		DeliveryBaseFeeCents:      1500,
		CrossBranchSurchargeCents: 4000,
	}
	if err := f.repos.CategoryRepository.Create(context.Background(), cat); err != nil {
		t.Fatalf("seeding category: %v", err)
	}
	return cat
}

func (f *fixture) seedItem(t *testing.T, branch, serial string) *domain.InventoryItem {
	t.Helper()
	item := &domain.InventoryItem{
		CategoryID:   "rotary-hammer",
		Branch:       branch,
		SerialNumber: serial,
		Condition:    domain.ItemConditionGood,
		Status:       domain.ItemStatusAvailable,
		LastChecked:  utils.Today(),
	}
	if err := f.repos.InventoryRepository.Create(context.Background(), item); err != nil {
		t.Fatalf("seeding item: %v", err)
	}
	return item
}

// futureRange returns [today+startOffset, today+endOffset] as date-only times.
func futureRange(startOffset, endOffset int) (time.Time, time.Time) {
	today := utils.Today()
	return today.AddDate(0, 0, startOffset), today.AddDate(0, 0, endOffset)
}
