package mailer

import (
	"context"
	"fmt"
	"net/http"
	"net/mail"
	"os"
	"strings"
	"time"

	"github.com/taylorconnect/hub/pkg/tracing"
)

//go:generate mockgen -destination=../mocks/mock_mailer.go -package=mocks github.com/taylorconnect/hub/pkg/mailer Mailer

// Mailer sends one composed message through a provider
type Mailer interface {
	Send(ctx context.Context, msg Message) error
	// Provider names the backend for logs and error classification
	Provider() string
}

// Message is a fully rendered email
type Message struct {
	// From overrides the configured sender, "Name <address>" or a bare address
	From    string
	To      []string
	ReplyTo string
	Subject string
	HTML    string
	Text    string
}

// Validate checks the fields every provider needs
func (m Message) Validate() error {
	if len(m.To) == 0 {
		return fmt.Errorf("at least one recipient is required")
	}
	for _, to := range m.To {
		if strings.TrimSpace(to) == "" {
			return fmt.Errorf("recipient address is empty")
		}
	}
	if m.Subject == "" {
		return fmt.Errorf("subject is required")
	}
	if m.HTML == "" && m.Text == "" {
		return fmt.Errorf("message body is required")
	}
	return nil
}

// Config holds the configuration for the mailer
type Config struct {
	Provider string

	FromName    string
	FromAddress string

	ResendAPIKey  string
	ResendBaseURL string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string

	SESRegion    string
	SESAccessKey string
	SESSecretKey string
}

// DefaultFrom formats the configured sender
func (c *Config) DefaultFrom() string {
	return FormatAddress(c.FromName, c.FromAddress)
}

// FormatAddress renders a header address with the display name quoted, so names
// containing commas or quotes still parse. An empty name yields the bare address.
func FormatAddress(name, address string) string {
	if name == "" {
		return address
	}
	return (&mail.Address{Name: name, Address: address}).String()
}

// New builds the mailer for the configured provider
func New(config *Config) (Mailer, error) {
	switch config.Provider {
	case "resend":
		return NewResendMailer(config, tracing.WrapHTTPClient(&http.Client{Timeout: 15 * time.Second})), nil
	case "smtp":
		return NewSMTPMailer(config), nil
	case "ses":
		return NewSESMailer(config)
	case "console", "":
		return NewConsoleMailer(os.Stdout), nil
	default:
		return nil, fmt.Errorf("unsupported email provider: %s", config.Provider)
	}
}
