package service

import (
	"context"
	"fmt"

	"equiprent-backend/internal/domain"
	"equiprent-backend/internal/logger"
	"equiprent-backend/internal/utils"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) send(to, subject, body string) error {
	if s.host == "" {
		// No SMTP configured (memory/dev mode); log instead of failing.
		logger.Debug("SMTP not configured, skipping email", "to", to, "subject", subject)
		return nil
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (s *emailService) SendBookingCreated(ctx context.Context, b *domain.Booking, categoryName string) error {
	subject := fmt.Sprintf("Booking received - %s", categoryName)
	body := fmt.Sprintf("Hello %s,\n\nWe received your booking for a %s from %s to %s at our %s branch.",
		b.CustomerName, categoryName, utils.FormatDate(b.StartDate), utils.FormatDate(b.EndDate), b.Branch)
	if b.CrossBranch {
		body += fmt.Sprintf("\n\nYour requested branch had no unit free, so the unit will be delivered from our %s branch (delivery fee %.2f).",
			b.Branch, float64(b.DeliveryFeeCents)/100)
	}
	body += fmt.Sprintf("\n\nTotal: %.2f (deposit %.2f due at pickup).\n\nBest regards,\nThe EquipRent Team",
		float64(b.TotalCostCents)/100, float64(b.DepositCents)/100)
	return s.send(b.CustomerEmail, subject, body)
}

func (s *emailService) SendBookingStatusUpdate(ctx context.Context, b *domain.Booking, categoryName string) error {
	subject := fmt.Sprintf("Booking %s - %s", b.Status, categoryName)
	body := fmt.Sprintf("Hello %s,\n\nYour booking for a %s (%s to %s) is now %s.\n\nBest regards,\nThe EquipRent Team",
		b.CustomerName, categoryName, utils.FormatDate(b.StartDate), utils.FormatDate(b.EndDate), b.Status)
	return s.send(b.CustomerEmail, subject, body)
}

func (s *emailService) SendReturnReminder(ctx context.Context, b *domain.Booking) error {
	subject := "Return reminder"
	body := fmt.Sprintf("Hello %s,\n\nYour rental was due back on %s. Please return it to our %s branch as soon as possible.\n\nBest regards,\nThe EquipRent Team",
		b.CustomerName, utils.FormatDate(b.EndDate), b.Branch)
	return s.send(b.CustomerEmail, subject, body)
}
