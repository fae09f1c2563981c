package service

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"rentmarket-backend/internal/domain"
	"rentmarket-backend/internal/logger"
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

func (s *emailService) SendRentRequestAccepted(ctx context.Context, email, productTitle string, period domain.DateRange) error {
	body := fmt.Sprintf("Good news!\n\nYour rent request for %q starting %s was accepted by the owner.\n\nBest regards,\nThe Rentmarket Team",
		productTitle, period.From.Format("2006-01-02"))
	return s.send(ctx, email, fmt.Sprintf("Rent request accepted - %s", productTitle), body)
}

func (s *emailService) SendRentRequestRejected(ctx context.Context, email, productTitle string) error {
	body := fmt.Sprintf("Hello,\n\nUnfortunately your rent request for %q was rejected by the owner.\n\nBest regards,\nThe Rentmarket Team",
		productTitle)
	return s.send(ctx, email, fmt.Sprintf("Rent request rejected - %s", productTitle), body)
}

func (s *emailService) send(ctx context.Context, to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		logger.ErrorContext(ctx, "failed to send email", "to", to, "subject", subject, "error", err)
		return fmt.Errorf("failed to send email via gomail: %w", err)
	}
	return nil
}
