package notifier

import (
	"crypto/tls"

	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"

	"filesentry/internal/config"
	"filesentry/internal/errorwrapper"
)

// MailSender is the transport capability the dispatcher delegates to.
type MailSender interface {
	Send(subject, body string) error
}

// SMTPSender sends plain-text mail through a configured SMTP relay.
// Credentials arrive already resolved; at-rest decoding happened in the
// config loader.
type SMTPSender struct {
	cfg    config.MailConfig
	logger zerolog.Logger
}

// NewSMTPSender creates a sender bound to cfg.
func NewSMTPSender(cfg config.MailConfig, logger zerolog.Logger) *SMTPSender {
	return &SMTPSender{
		cfg:    cfg,
		logger: logger.With().Str("component", "SMTPSender").Logger(),
	}
}

// Send delivers one message. Single-shot: no retry, no queueing.
func (s *SMTPSender) Send(subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.cfg.FromAddress)
	m.SetHeader("To", s.cfg.ToAddresses...)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.cfg.SMTPServer, s.cfg.SMTPPort, s.cfg.Username, s.cfg.Password)
	if s.cfg.UseTLS {
		d.TLSConfig = &tls.Config{ServerName: s.cfg.SMTPServer}
	}

	s.logger.Debug().
		Str("server", s.cfg.SMTPServer).
		Int("port", s.cfg.SMTPPort).
		Strs("to", s.cfg.ToAddresses).
		Msg("Sending alert mail")

	if err := d.DialAndSend(m); err != nil {
		return errorwrapper.WrapError(errorwrapper.ErrTransportFailure, err.Error())
	}
	return nil
}
