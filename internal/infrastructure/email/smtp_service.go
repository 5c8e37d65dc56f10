package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/wneessen/go-mail"

	"storefront-backend/internal/config"
	"storefront-backend/pkg/logger"
)

type EmailService interface {
	SendOTPEmail(ctx context.Context, data OTPEmailData) error
	SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error
}

type sendFunc func(ctx context.Context, msg *mail.Msg) error

type smtpEmailService struct {
	smtpAddr string
	smtpFrom string
	send     sendFunc
}

func NewSMTPEmailService(cfg config.SMTPConfig) (EmailService, error) {
	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
	}
	if cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(cfg.Username),
			mail.WithPassword(cfg.Password),
		)
	}

	client, err := mail.NewClient(cfg.Host, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create mail client: %w", err)
	}

	return &smtpEmailService{
		smtpAddr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		smtpFrom: cfg.From,
		send: func(ctx context.Context, msg *mail.Msg) error {
			return client.DialAndSendWithContext(ctx, msg)
		},
	}, nil
}

func (s *smtpEmailService) SendOTPEmail(ctx context.Context, data OTPEmailData) error {
	subject := "Your verification code"
	body := fmt.Sprintf(`Hello,

Your one-time verification code is:

    %s

The code is valid for %s. If you did not request it, you can ignore this email.`, data.Code, data.ExpiresIn)

	return s.deliver(ctx, data.Email, subject, body)
}

func (s *smtpEmailService) SendOrderConfirmation(ctx context.Context, data OrderConfirmationData) error {
	var lines strings.Builder
	for _, l := range data.Lines {
		fmt.Fprintf(&lines, "  - %s (%s) x%d  %s\n", l.Name, l.Size, l.Quantity, l.Price.StringFixed(2))
	}

	subject := "Order confirmed: " + data.OrderID
	body := fmt.Sprintf(`Hi %s,

Thanks for shopping with us. We have received your order %s.

%s
Total: %s
Payment: %s

We will let you know when it ships.`, data.Name, data.OrderID, lines.String(), data.Total.StringFixed(2), data.PaymentMethod)

	return s.deliver(ctx, data.Email, subject, body)
}

func (s *smtpEmailService) deliver(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(s.smtpFrom); err != nil {
		return fmt.Errorf("invalid sender address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient address: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	if err := s.send(ctx, msg); err != nil {
		logger.Warn("Failed to send email", map[string]interface{}{
			"error":     err.Error(),
			"to":        to,
			"smtp_addr": s.smtpAddr,
		})
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
