package jobs

import (
	"context"

	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/utils"
)

// SendOverdueReminders emails customers whose active bookings ended
// before today and have not been returned.
func (jr *JobRunner) SendOverdueReminders() {
	jr.runWithRecovery("SendOverdueReminders", func() {
		ctx := context.Background()

		overdue, err := jr.repos.Booking.ListActiveEndedBefore(ctx, utils.Today())
		if err != nil {
			logger.Error("Failed to list overdue bookings", "error", err)
			return
		}

		sent := 0
		for _, booking := range overdue {
			if booking.CustomerEmail == "" {
				continue
			}

			if err := jr.services.Email.SendReturnReminder(ctx, &booking); err != nil {
				logger.Error("Failed to send return reminder",
					"booking_id", booking.ID,
					"customer_email", booking.CustomerEmail,
					"error", err)
				continue
			}
			sent++
		}

		logger.Info("Sent overdue return reminders", "overdue", len(overdue), "sent", sent)
	})
}

// ReleaseExpiredMaintenance removes maintenance blocks whose end date has
// passed so the covered items become bookable again.
func (jr *JobRunner) ReleaseExpiredMaintenance() {
	jr.runWithRecovery("ReleaseExpiredMaintenance", func() {
		ctx := context.Background()

		expired, err := jr.repos.Maintenance.ListEndedBefore(ctx, utils.Today())
		if err != nil {
			logger.Error("Failed to list expired maintenance blocks", "error", err)
			return
		}

		released := 0
		for _, block := range expired {
			if err := jr.services.Booking.RemoveMaintenanceBlock(ctx, block.ID); err != nil {
				logger.Error("Failed to release maintenance block",
					"block_id", block.ID,
					"item_id", block.ItemID,
					"error", err)
				continue
			}
			released++
		}

		logger.Info("Released expired maintenance blocks", "expired", len(expired), "released", released)
	})
}
