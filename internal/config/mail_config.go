package config

import (
	"encoding/base64"
	"strings"

	"filesentry/internal/errorwrapper"
)

// MailConfig defines configuration for the alert mail transport
type MailConfig struct {
	SMTPServer      string   `json:"smtp_server" yaml:"smtp_server" validate:"required"`
	SMTPPort        int      `json:"smtp_port,omitempty" yaml:"smtp_port,omitempty" validate:"omitempty,min=1,max=65535"`
	Username        string   `json:"username,omitempty" yaml:"username,omitempty"`
	Password        string   `json:"password,omitempty" yaml:"password,omitempty"`
	PasswordEncoded string   `json:"password_encoded,omitempty" yaml:"password_encoded,omitempty"`
	UseTLS          bool     `json:"use_tls" yaml:"use_tls"`
	FromAddress     string   `json:"from_address" yaml:"from_address" validate:"required,email"`
	ToAddresses     []string `json:"to_addresses" yaml:"to_addresses" validate:"required,min=1,dive,email"`
	Subject         string   `json:"subject,omitempty" yaml:"subject,omitempty"`
}

// NewDefaultMailConfig creates default mail configuration
func NewDefaultMailConfig() MailConfig {
	return MailConfig{
		SMTPPort: DefaultSMTPPort,
		UseTLS:   true,
		Subject:  DefaultSubject,
	}
}

// ResolvePassword returns the plain-text password, decoding the at-rest
// encoded form when one is configured. An explicit plain password wins.
func (mc MailConfig) ResolvePassword() (string, error) {
	if mc.Password != "" {
		return mc.Password, nil
	}
	if mc.PasswordEncoded == "" {
		return "", nil
	}
	decoded, err := base64.StdEncoding.DecodeString(strings.TrimSpace(mc.PasswordEncoded))
	if err != nil {
		return "", errorwrapper.NewValidationError("password_encoded", mc.PasswordEncoded, "not valid base64")
	}
	return string(decoded), nil
}

// EncodePassword produces the at-rest encoded form of a mail password.
func EncodePassword(plain string) string {
	return base64.StdEncoding.EncodeToString([]byte(plain))
}
