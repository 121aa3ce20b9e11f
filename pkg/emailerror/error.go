package emailerror

import "errors"

// ErrorType says whether a send failure is about the recipient or the provider
type ErrorType string

const (
	// ErrorTypeRecipient is a problem with the address itself (unknown mailbox, invalid format).
	// Repeating the send will not help.
	ErrorTypeRecipient ErrorType = "recipient"

	// ErrorTypeProvider is a problem with the provider or our account (auth, rate limit, outage)
	ErrorTypeProvider ErrorType = "provider"

	// ErrorTypeUnknown could not be classified and is handled like a provider error
	ErrorTypeUnknown ErrorType = "unknown"
)

// Provider names used in classification and log fields
const (
	ProviderResend  = "resend"
	ProviderSMTP    = "smtp"
	ProviderSES     = "ses"
	ProviderConsole = "console"
)

// ClassifiedError wraps a send error with the diagnostics logged by callers
type ClassifiedError struct {
	// Original is the underlying error
	Original error

	Type ErrorType

	// Provider is the email provider name (resend, smtp, ses)
	Provider string

	// HTTPStatus is the extracted HTTP status code (0 if not applicable)
	HTTPStatus int

	// Retryable reports whether another attempt may succeed
	Retryable bool
}

// Error implements the error interface
func (e *ClassifiedError) Error() string {
	if e.Original == nil {
		return ""
	}
	return e.Original.Error()
}

// Unwrap returns the underlying error for errors.Is/As compatibility
func (e *ClassifiedError) Unwrap() error {
	return e.Original
}

func (e *ClassifiedError) IsRecipientError() bool {
	return e.Type == ErrorTypeRecipient
}

// IsProviderError treats unknown errors as provider errors
func (e *ClassifiedError) IsProviderError() bool {
	return e.Type == ErrorTypeProvider || e.Type == ErrorTypeUnknown
}

// LogFields returns the structured fields attached to send failure logs
func (e *ClassifiedError) LogFields() map[string]interface{} {
	return map[string]interface{}{
		"provider":    e.Provider,
		"error_type":  string(e.Type),
		"http_status": e.HTTPStatus,
		"retryable":   e.Retryable,
	}
}

// IsRetryable is the retry.Policy hook for mail sends. Errors that were never
// classified are retried.
func IsRetryable(err error) bool {
	var classified *ClassifiedError
	if errors.As(err, &classified) {
		return classified.Retryable
	}
	return err != nil
}
