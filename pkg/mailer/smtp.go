package mailer

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/wneessen/go-mail"

	"github.com/taylorconnect/hub/pkg/retry"
)

// SMTPMailer implements the Mailer interface using SMTP
type SMTPMailer struct {
	config   *Config
	testMode bool
}

// NewSMTPMailer creates a new SMTP mailer
func NewSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: false,
	}
}

// NewTestSMTPMailer creates a new SMTP mailer in test mode (won't connect to SMTP server)
func NewTestSMTPMailer(config *Config) *SMTPMailer {
	return &SMTPMailer{
		config:   config,
		testMode: true,
	}
}

func (m *SMTPMailer) Provider() string {
	return "smtp"
}

// buildMessage converts a Message into a go-mail message
func (m *SMTPMailer) buildMessage(msg Message) (*mail.Msg, error) {
	if err := msg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid message: %w", err)
	}

	mm := mail.NewMsg(mail.WithNoDefaultUserAgent())

	if msg.From != "" {
		if err := mm.From(msg.From); err != nil {
			return nil, fmt.Errorf("failed to set email from address: %w", err)
		}
	} else if err := mm.FromFormat(m.config.FromName, m.config.FromAddress); err != nil {
		return nil, fmt.Errorf("failed to set email from address: %w", err)
	}

	if err := mm.To(msg.To...); err != nil {
		return nil, fmt.Errorf("failed to set email recipient: %w", err)
	}

	if msg.ReplyTo != "" {
		if err := mm.ReplyTo(msg.ReplyTo); err != nil {
			return nil, fmt.Errorf("failed to set reply-to address: %w", err)
		}
	}

	mm.Subject(msg.Subject)

	switch {
	case msg.HTML != "" && msg.Text != "":
		mm.SetBodyString(mail.TypeTextHTML, msg.HTML)
		mm.AddAlternativeString(mail.TypeTextPlain, msg.Text)
	case msg.HTML != "":
		mm.SetBodyString(mail.TypeTextHTML, msg.HTML)
	default:
		mm.SetBodyString(mail.TypeTextPlain, msg.Text)
	}

	return mm, nil
}

func (m *SMTPMailer) Send(ctx context.Context, msg Message) error {
	mm, err := m.buildMessage(msg)
	if err != nil {
		return retry.Permanent(err)
	}

	client, err := m.createSMTPClient()
	if err != nil {
		return err
	}

	// For testing - log information if client is nil
	if client == nil {
		log.Printf("Sending email to: %v", msg.To)
		log.Printf("Subject: %s", msg.Subject)
		return nil
	}

	if err := client.DialAndSendWithContext(ctx, mm); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	return nil
}

// createSMTPClient creates and configures a new SMTP client
func (m *SMTPMailer) createSMTPClient() (*mail.Client, error) {
	// In test mode, return nil client to avoid SMTP connections
	if m.testMode {
		return nil, nil
	}

	clientOptions := []mail.Option{
		mail.WithPort(m.config.SMTPPort),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithTimeout(10 * time.Second),
	}

	// Unauthenticated relays (local MTA, port 25) get no auth options
	if m.config.SMTPUsername != "" && m.config.SMTPPassword != "" {
		clientOptions = append(clientOptions,
			mail.WithUsername(m.config.SMTPUsername),
			mail.WithPassword(m.config.SMTPPassword),
			mail.WithSMTPAuth(mail.SMTPAuthPlain),
		)
	}

	client, err := mail.NewClient(m.config.SMTPHost, clientOptions...)
	if err != nil {
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}

	return client, nil
}
