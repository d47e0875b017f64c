package jobs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"equiprent-backend/internal/config"
	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/repository/memory"
	"equiprent-backend/internal/service"
	"equiprent-backend/internal/utils"
)

type mockEmailService struct {
	mock.Mock
}

func (m *mockEmailService) SendBookingCreated(ctx context.Context, b *domain.Booking, categoryName string) error {
	args := m.Called(ctx, b, categoryName)
	return args.Error(0)
}

func (m *mockEmailService) SendBookingStatusUpdate(ctx context.Context, b *domain.Booking, categoryName string) error {
	args := m.Called(ctx, b, categoryName)
	return args.Error(0)
}

func (m *mockEmailService) SendReturnReminder(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func newTestRunner(t *testing.T) (*JobRunner, *memory.Repositories, *mockEmailService) {
	t.Helper()

	repos := memory.NewRepositories(memory.NewStore())
	branches := [2]string{"hillcrest", "junction"}
	broadcaster := service.NewBroadcaster()
	email := &mockEmailService{}

	pricing := service.NewPricingService(repos.CategoryRepository, 0.30, broadcaster)
	availability := service.NewAvailabilityService(repos.InventoryRepository, repos.BookingRepository, repos.MaintenanceRepository, repos.CategoryRepository, branches)
	booking := service.NewBookingService(repos.InventoryRepository, repos.BookingRepository, repos.MaintenanceRepository, repos.CategoryRepository, availability, pricing, email, broadcaster)

	runner := NewJobRunner(
		&Repositories{Booking: repos.BookingRepository, Maintenance: repos.MaintenanceRepository},
		&Services{Email: email, Booking: booking},
		&config.Config{},
	)
	return runner, repos, email
}

func TestSendOverdueReminders(t *testing.T) {
	runner, repos, email := newTestRunner(t)
	ctx := context.Background()
	today := utils.Today()

	// Active and past due, with an address to write to.
	overdue := &domain.Booking{
		CategoryID:    "rotary-hammer",
		ItemID:        1,
		Branch:        "hillcrest",
		CustomerName:  "Dana Reeves",
		CustomerEmail: "dana@example.com",
		StartDate:     today.AddDate(0, 0, -7),
		EndDate:       today.AddDate(0, 0, -2),
		Status:        domain.BookingStatusActive,
	}
	assert.NoError(t, repos.BookingRepository.Create(ctx, overdue))

	// Active but not past due yet.
	assert.NoError(t, repos.BookingRepository.Create(ctx, &domain.Booking{
		CategoryID:    "rotary-hammer",
		ItemID:        2,
		Branch:        "hillcrest",
		CustomerName:  "Miguel Ortiz",
		CustomerEmail: "miguel@example.com",
		StartDate:     today,
		EndDate:       today.AddDate(0, 0, 3),
		Status:        domain.BookingStatusActive,
	}))

	// Past due but already returned.
	assert.NoError(t, repos.BookingRepository.Create(ctx, &domain.Booking{
		CategoryID:    "rotary-hammer",
		ItemID:        3,
		Branch:        "hillcrest",
		CustomerName:  "Ren Tanaka",
		CustomerEmail: "ren@example.com",
		StartDate:     today.AddDate(0, 0, -7),
		EndDate:       today.AddDate(0, 0, -2),
		Status:        domain.BookingStatusReturned,
	}))

	email.On("SendReturnReminder", mock.Anything, mock.MatchedBy(func(b *domain.Booking) bool {
		return b.ID == overdue.ID
	})).Return(nil).Once()

	runner.SendOverdueReminders()

	email.AssertExpectations(t)
	email.AssertNumberOfCalls(t, "SendReturnReminder", 1)
}

func TestReleaseExpiredMaintenance(t *testing.T) {
	runner, repos, _ := newTestRunner(t)
	ctx := context.Background()
	today := utils.Today()

	item := &domain.InventoryItem{
		CategoryID:   "rotary-hammer",
		Branch:       "hillcrest",
		SerialNumber: "RH-001",
		Condition:    domain.ItemConditionGood,
		Status:       domain.ItemStatusMaintenance,
		LastChecked:  today,
	}
	assert.NoError(t, repos.InventoryRepository.Create(ctx, item))

	expired := &domain.MaintenanceBlock{
		ItemID:    item.ID,
		StartDate: today.AddDate(0, 0, -5),
		EndDate:   today.AddDate(0, 0, -1),
		Reason:    "annual service",
	}
	assert.NoError(t, repos.MaintenanceRepository.Create(ctx, expired))

	runner.ReleaseExpiredMaintenance()

	_, err := repos.MaintenanceRepository.GetByID(ctx, expired.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	got, err := repos.InventoryRepository.GetByID(ctx, item.ID)
	assert.NoError(t, err)
	assert.Equal(t, domain.ItemStatusAvailable, got.Status)
}
