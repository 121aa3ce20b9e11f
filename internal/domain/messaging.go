package domain

import (
	"context"
	"strings"
	"time"
)

//go:generate mockgen -destination mocks/mock_messaging_service.go -package mocks github.com/taylorconnect/hub/internal/domain MessagingService

// ContactRequest is a submission of the public contact form
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Message string `json:"message"`
}

// Validate checks presence only; the address format is checked by the service
func (r *ContactRequest) Validate() error {
	r.Name = strings.TrimSpace(r.Name)
	r.Email = strings.TrimSpace(r.Email)
	if r.Name == "" || r.Email == "" || strings.TrimSpace(r.Message) == "" {
		return NewValidationError("Missing required fields: name, email, message")
	}
	return nil
}

// Signup is one person signed up for an event by someone else
type Signup struct {
	Email         string `json:"email"`
	Name          string `json:"name,omitempty"`
	EventName     string `json:"eventName"`
	EventID       string `json:"eventId,omitempty"`
	EventDate     string `json:"eventDate,omitempty"`
	EventLocation string `json:"eventLocation,omitempty"`
	SignedUpBy    string `json:"signedUpBy,omitempty"`
}

type NotifySignupRequest struct {
	Signups []Signup `json:"signups"`
}

func (r *NotifySignupRequest) Validate() error {
	if len(r.Signups) == 0 {
		return NewValidationError("Invalid request data")
	}
	for _, s := range r.Signups {
		if strings.TrimSpace(s.Email) == "" || strings.TrimSpace(s.EventName) == "" {
			return NewValidationError("Invalid request data")
		}
	}
	return nil
}

// SignupNotifyResult reports a confirmation batch
type SignupNotifyResult struct {
	Sent   int      `json:"sent"`
	Failed int      `json:"failed"`
	Errors []string `json:"errors,omitempty"`
}

// ChatNotificationEmail is everything a chat notification email shows
type ChatNotificationEmail struct {
	To               string
	RecipientName    string
	EventID          string
	EventTitle       string
	EventDescription string
	Message          string
	SenderLabel      string
}

// MessagingService sends the one-shot emails that are not tied to accounts
type MessagingService interface {
	RelayContact(ctx context.Context, req ContactRequest, submittedAt time.Time) error
	NotifySignups(ctx context.Context, signups []Signup) SignupNotifyResult
	SendChatNotification(ctx context.Context, email ChatNotificationEmail) error
}
