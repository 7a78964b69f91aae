package services

import (
	"context"

	"estatehub/config"

	logger "github.com/Bparsons0904/goLogger"
	"gopkg.in/gomail.v2"
)

// Mailer delivers a single plain-text email.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

type MailService struct {
	dialer *gomail.Dialer
	from   string
	log    logger.Logger
}

// NewMailService returns nil when SMTP is not configured; callers treat a nil
// Mailer as "record the email, do not send".
func NewMailService(config config.Config) *MailService {
	log := logger.New("mailService")
	if config.SMTPHost == "" {
		log.Warn("SMTP host not configured, outgoing email disabled")
		return nil
	}

	log.Info("Mail service initialized", "host", config.SMTPHost, "port", config.SMTPPort)
	return &MailService{
		dialer: gomail.NewDialer(config.SMTPHost, config.SMTPPort, config.SMTPUser, config.SMTPPassword),
		from:   config.SMTPFrom,
		log:    log,
	}
}

func (s *MailService) Send(ctx context.Context, to, subject, body string) error {
	log := s.log.TraceFromContext(ctx).Function("Send")

	if err := ctx.Err(); err != nil {
		return err
	}

	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return log.Err("failed to send email", err, "to", to, "subject", subject)
	}

	log.Info("Email sent", "to", to, "subject", subject)
	return nil
}
