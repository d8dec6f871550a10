package notify

import (
	"context"
	"fmt"

	"github.com/wneessen/go-mail"
	"golang.org/x/sync/errgroup"
)

// SMTPConfig holds mail server settings.
type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPNotifier sends offer mail through an SMTP relay. The candidate
// message and the HR copy are sent concurrently; either failure fails
// the delivery.
type SMTPNotifier struct {
	cfg SMTPConfig
}

// NewSMTPNotifier creates a mail notifier.
func NewSMTPNotifier(cfg SMTPConfig) (*SMTPNotifier, error) {
	if cfg.Host == "" || cfg.From == "" {
		return nil, fmt.Errorf("smtp host and from address are required")
	}
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTPNotifier{cfg: cfg}, nil
}

func (n *SMTPNotifier) NotifyOfferSent(ctx context.Context, d Delivery) error {
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return n.send(ctx, d.CandidateEmail, candidateSubject(d), candidateBody(d))
	})
	if d.HREmail != "" {
		g.Go(func() error {
			return n.send(ctx, d.HREmail, hrSubject(d), hrBody(d))
		})
	}
	return g.Wait()
}

func (n *SMTPNotifier) send(ctx context.Context, to, subject, body string) error {
	msg := mail.NewMsg()
	if err := msg.From(n.cfg.From); err != nil {
		return fmt.Errorf("invalid from address: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("invalid recipient %s: %w", to, err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, body)

	opts := []mail.Option{mail.WithPort(n.cfg.Port)}
	if n.cfg.Username != "" {
		opts = append(opts,
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
			mail.WithUsername(n.cfg.Username),
			mail.WithPassword(n.cfg.Password),
		)
	}
	client, err := mail.NewClient(n.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("failed to create mail client: %w", err)
	}
	if err := client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", to, err)
	}
	return nil
}
