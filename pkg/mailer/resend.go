package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/taylorconnect/hub/pkg/retry"
)

// HTTPClient is satisfied by *http.Client
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ResendMailer sends through the Resend HTTP API
type ResendMailer struct {
	config     *Config
	httpClient HTTPClient
}

func NewResendMailer(config *Config, httpClient HTTPClient) *ResendMailer {
	return &ResendMailer{
		config:     config,
		httpClient: httpClient,
	}
}

func (m *ResendMailer) Provider() string {
	return "resend"
}

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	ReplyTo string   `json:"reply_to,omitempty"`
}

func (m *ResendMailer) Send(ctx context.Context, msg Message) error {
	if err := msg.Validate(); err != nil {
		return retry.Permanent(fmt.Errorf("invalid message: %w", err))
	}
	if m.config.ResendAPIKey == "" {
		return retry.Permanent(fmt.Errorf("Resend API key is required"))
	}

	from := msg.From
	if from == "" {
		from = m.config.DefaultFrom()
	}

	jsonBody, err := json.Marshal(resendRequest{
		From:    from,
		To:      msg.To,
		Subject: msg.Subject,
		HTML:    msg.HTML,
		Text:    msg.Text,
		ReplyTo: msg.ReplyTo,
	})
	if err != nil {
		return retry.Permanent(fmt.Errorf("failed to marshal Resend request: %w", err))
	}

	baseURL := strings.TrimRight(m.config.ResendBaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.resend.com"
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/emails", bytes.NewBuffer(jsonBody))
	if err != nil {
		return retry.Permanent(fmt.Errorf("failed to create Resend request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+m.config.ResendAPIKey)

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to Resend API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read Resend API response: %w", err)
	}

	if resp.StatusCode >= 400 {
		name := gjson.GetBytes(body, "name").String()
		message := gjson.GetBytes(body, "message").String()
		if name == "" && message == "" {
			return fmt.Errorf("resend API error (status code: %d): %s", resp.StatusCode, strings.TrimSpace(string(body)))
		}
		return fmt.Errorf("resend API error (status code: %d): %s: %s", resp.StatusCode, name, message)
	}

	return nil
}
