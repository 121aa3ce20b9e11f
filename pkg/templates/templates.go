package templates

import (
	"context"
	"embed"
	"fmt"
	"strings"
	"sync"
	"time"

	mjmlgo "github.com/Boostport/mjml-go"
	"github.com/osteele/liquid"
)

//go:embed files/*
var files embed.FS

// Template names
const (
	VerificationCode   = "verification_code"
	PasswordReset      = "password_reset"
	ContactForm        = "contact_form"
	ChatNotification   = "chat_notification"
	SignupConfirmation = "signup_confirmation"
)

const (
	DefaultRenderTimeout   = 5 * time.Second
	DefaultMaxTemplateSize = 100 * 1024 // 100KB
)

// Rendered is the HTML and plain text body of one email
type Rendered struct {
	HTML string
	Text string
}

// Renderer turns a named template and its data into an email body. The MJML fragment
// is rendered with liquid, wrapped in the shared layout and compiled to HTML.
type Renderer struct {
	engine  *liquid.Engine
	timeout time.Duration
	maxSize int

	siteName string
	siteURL  string

	mu     sync.RWMutex
	source map[string]string
}

func NewRenderer(siteName, siteURL string) *Renderer {
	return &Renderer{
		engine:   liquid.NewEngine(),
		timeout:  DefaultRenderTimeout,
		maxSize:  DefaultMaxTemplateSize,
		siteName: siteName,
		siteURL:  strings.TrimRight(siteURL, "/"),
		source:   make(map[string]string),
	}
}

// Names lists every template that ships with the binary
func Names() []string {
	return []string{VerificationCode, PasswordReset, ContactForm, ChatNotification, SignupConfirmation}
}

func (r *Renderer) load(file string) (string, error) {
	r.mu.RLock()
	src, ok := r.source[file]
	r.mu.RUnlock()
	if ok {
		return src, nil
	}

	b, err := files.ReadFile("files/" + file)
	if err != nil {
		return "", fmt.Errorf("template %s not found: %w", file, err)
	}

	r.mu.Lock()
	r.source[file] = string(b)
	r.mu.Unlock()
	return string(b), nil
}

// Render produces the HTML and text bodies for the named template
func (r *Renderer) Render(ctx context.Context, name string, data map[string]interface{}) (*Rendered, error) {
	bindings := make(map[string]interface{}, len(data)+2)
	for k, v := range data {
		bindings[k] = v
	}
	bindings["site_name"] = r.siteName
	bindings["site_url"] = r.siteURL

	fragment, err := r.load(name + ".mjml")
	if err != nil {
		return nil, err
	}
	body, err := r.renderLiquid(ctx, fragment, bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to render %s: %w", name, err)
	}

	layout, err := r.load("layout.mjml")
	if err != nil {
		return nil, err
	}
	bindings["body"] = body
	mjml, err := r.renderLiquid(ctx, layout, bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to render layout for %s: %w", name, err)
	}

	html, err := mjmlgo.ToHTML(ctx, mjml)
	if err != nil {
		return nil, fmt.Errorf("failed to compile %s to HTML: %w", name, err)
	}

	textSource, err := r.load(name + ".txt")
	if err != nil {
		return nil, err
	}
	text, err := r.renderLiquid(ctx, textSource, bindings)
	if err != nil {
		return nil, fmt.Errorf("failed to render text for %s: %w", name, err)
	}

	return &Rendered{
		HTML: html,
		Text: strings.TrimSpace(text),
	}, nil
}

// renderLiquid renders with a size limit and a timeout
func (r *Renderer) renderLiquid(ctx context.Context, content string, data map[string]interface{}) (string, error) {
	if len(content) > r.maxSize {
		return "", fmt.Errorf("template size (%d bytes) exceeds maximum allowed size (%d bytes)", len(content), r.maxSize)
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resultChan := make(chan string, 1)
	errorChan := make(chan error, 1)

	go func() {
		defer func() {
			if rec := recover(); rec != nil {
				errorChan <- fmt.Errorf("panic during liquid rendering: %v", rec)
			}
		}()

		rendered, err := r.engine.ParseAndRenderString(content, data)
		if err != nil {
			errorChan <- fmt.Errorf("liquid rendering failed: %w", err)
			return
		}
		resultChan <- rendered
	}()

	select {
	case result := <-resultChan:
		return result, nil
	case err := <-errorChan:
		return "", err
	case <-ctx.Done():
		return "", fmt.Errorf("liquid rendering timeout after %v", r.timeout)
	}
}
