package email

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/Shefwef/ghuroo-api/internal/config"
)

type Service interface {
	SendBookingConfirmation(ctx context.Context, to, tourTitle, bookingDate string) error
	SendCustom(ctx context.Context, to, subject, content string) error
}

type service struct {
	cfg    config.SMTPConfig
	dialer *gomail.Dialer
}

func NewService(cfg config.SMTPConfig) Service {
	return &service{
		cfg:    cfg,
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
	}
}

func (s *service) SendBookingConfirmation(ctx context.Context, to, tourTitle, bookingDate string) error {
	subject := "Your booking is confirmed"
	body := fmt.Sprintf("Thanks for booking %s on %s. See you there!", tourTitle, bookingDate)
	return s.SendCustom(ctx, to, subject, body)
}

func (s *service) SendCustom(_ context.Context, to, subject, content string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", content)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
