package mailer

import (
	"context"
	"fmt"
	"io"
	"strings"
)

// ConsoleMailer is a development implementation that just prints emails
type ConsoleMailer struct {
	out io.Writer
}

// NewConsoleMailer creates a new console mailer for development
func NewConsoleMailer(out io.Writer) *ConsoleMailer {
	return &ConsoleMailer{out: out}
}

func (m *ConsoleMailer) Provider() string {
	return "console"
}

func (m *ConsoleMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return fmt.Errorf("invalid message: %w", err)
	}

	body := msg.Text
	if body == "" {
		body = msg.HTML
	}

	fmt.Fprintln(m.out, "==============================================================")
	fmt.Fprintf(m.out, "To: %s\n", strings.Join(msg.To, ", "))
	if msg.From != "" {
		fmt.Fprintf(m.out, "From: %s\n", msg.From)
	}
	if msg.ReplyTo != "" {
		fmt.Fprintf(m.out, "Reply-To: %s\n", msg.ReplyTo)
	}
	fmt.Fprintf(m.out, "Subject: %s\n\n", msg.Subject)
	fmt.Fprintln(m.out, body)
	fmt.Fprintln(m.out, "==============================================================")

	return nil
}
