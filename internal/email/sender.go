package email

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"

	"github.com/wellandwilde/landing-be/internal/config"
	"github.com/wellandwilde/landing-be/internal/models"
)

var (
	_ models.Notifier       = (*Sender)(nil)
	_ models.DigestNotifier = (*Sender)(nil)
)

// Transport delivers composed messages. *mail.Client satisfies it.
type Transport interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// NewTransport builds an SMTP client from configuration. It returns a nil
// Transport when no host is configured.
func NewTransport(cfg config.SMTP) (Transport, error) {
	if cfg.Host == "" {
		return nil, nil
	}

	opts := []mail.Option{
		mail.WithPort(cfg.Port),
		mail.WithTLSPolicy(tlsPolicy(cfg.TLS)),
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
	return client, nil
}

func tlsPolicy(name string) mail.TLSPolicy {
	switch name {
	case "mandatory":
		return mail.TLSMandatory
	case "none":
		return mail.NoTLS
	default:
		return mail.TLSOpportunistic
	}
}

// Sender composes and sends the fixed-template notification emails.
type Sender struct {
	cfg       config.Mail
	transport Transport
}

// NewSender creates a Sender. A nil transport leaves it unconfigured: every
// send is skipped and reported as unsuccessful.
func NewSender(cfg config.Mail, transport Transport) *Sender {
	return &Sender{cfg: cfg, transport: transport}
}

// Configured reports whether a transport is available.
func (s *Sender) Configured() bool {
	return s.transport != nil
}

// NotifyOperator tells the operator inbox that someone subscribed.
func (s *Sender) NotifyOperator(ctx context.Context, subscriberEmail string) bool {
	if !s.Configured() {
		log.Info().Msg("Email service not configured. Skipping operator notification.")
		return false
	}

	data := newTemplateData(s.cfg.Brand, s.cfg.From)
	data.Email = subscriberEmail
	subject := fmt.Sprintf("New Newsletter Subscription - %s", s.cfg.Brand)

	if err := s.send(ctx, s.cfg.Operator, subject, operatorMail, data); err != nil {
		log.Error().Err(err).Str("subscriber", subscriberEmail).Msg("Failed to send operator notification")
		return false
	}
	log.Info().Str("subscriber", subscriberEmail).Msg("Operator notification sent")
	return true
}

// SendWelcome sends the welcome email to the new subscriber.
func (s *Sender) SendWelcome(ctx context.Context, subscriberEmail string) bool {
	if !s.Configured() {
		log.Info().Msg("Email service not configured. Skipping welcome email.")
		return false
	}

	data := newTemplateData(s.cfg.Brand, s.cfg.From)
	data.Email = subscriberEmail
	subject := fmt.Sprintf("Welcome to %s - Redefining Wellness", s.cfg.Brand)

	if err := s.send(ctx, subscriberEmail, subject, welcomeMail, data); err != nil {
		log.Error().Err(err).Str("subscriber", subscriberEmail).Msg("Failed to send welcome email")
		return false
	}
	log.Info().Str("subscriber", subscriberEmail).Msg("Welcome email sent")
	return true
}

// SendDigest mails the operator a summary of recent subscribers.
func (s *Sender) SendDigest(ctx context.Context, subscribers []models.Subscriber) bool {
	if !s.Configured() {
		log.Info().Msg("Email service not configured. Skipping digest.")
		return false
	}
	if len(subscribers) == 0 {
		return false
	}

	data := newTemplateData(s.cfg.Brand, s.cfg.From)
	data.Subscribers = subscribers
	subject := fmt.Sprintf("Newsletter Digest - %s (%d new)", s.cfg.Brand, len(subscribers))

	if err := s.send(ctx, s.cfg.Operator, subject, digestMail, data); err != nil {
		log.Error().Err(err).Int("count", len(subscribers)).Msg("Failed to send digest")
		return false
	}
	log.Info().Int("count", len(subscribers)).Msg("Digest sent")
	return true
}

func (s *Sender) send(ctx context.Context, to, subject string, tmpl mailTemplate, data templateData) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("mail transport panicked: %v", r)
		}
	}()

	htmlBody, textBody, err := tmpl.render(data)
	if err != nil {
		return fmt.Errorf("failed to render template: %w", err)
	}

	msg := mail.NewMsg()
	if err := msg.From(s.cfg.From); err != nil {
		return fmt.Errorf("failed to set from: %w", err)
	}
	if err := msg.To(to); err != nil {
		return fmt.Errorf("failed to set to: %w", err)
	}
	msg.Subject(subject)
	msg.SetBodyString(mail.TypeTextPlain, textBody)
	msg.AddAlternativeString(mail.TypeTextHTML, htmlBody)

	if err := s.transport.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
