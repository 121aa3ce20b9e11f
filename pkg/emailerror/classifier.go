package emailerror

import (
	"regexp"
	"strconv"
	"strings"
)

// Classifier classifies email sending errors by provider type
type Classifier struct{}

// NewClassifier creates a new error classifier
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify analyzes an error and returns a ClassifiedError with type information.
// An error that is already classified is returned as is.
func (c *Classifier) Classify(err error, provider string) *ClassifiedError {
	if err == nil {
		return nil
	}
	if classified, ok := err.(*ClassifiedError); ok {
		return classified
	}

	errStr := err.Error()
	httpStatus := extractHTTPStatus(errStr)

	switch provider {
	case ProviderResend:
		return c.classifyResendError(err, errStr, httpStatus)
	case ProviderSES:
		return c.classifySESError(err, errStr, httpStatus)
	case ProviderSMTP:
		return c.classifySMTPError(err, errStr, httpStatus)
	default:
		return c.classifyUnknownProvider(err, errStr, httpStatus)
	}
}

// HTTP status extraction patterns
var (
	// Matches patterns like "status code: 429", "status_code: 500", "status code 503"
	httpStatusRegex = regexp.MustCompile(`(?i)status[_\s]code[:\s]*(\d{3})`)

	// Matches patterns like "HTTP 429", "http/1.1 500"
	httpPrefixRegex = regexp.MustCompile(`(?i)http[/\d.]*\s*(\d{3})`)

	// Matches patterns like "(429)", "[500]"
	bracketStatusRegex = regexp.MustCompile(`[\[(](\d{3})[\])]`)
)

// extractHTTPStatus attempts to extract HTTP status code from error message
func extractHTTPStatus(errStr string) int {
	for _, re := range []*regexp.Regexp{httpStatusRegex, httpPrefixRegex, bracketStatusRegex} {
		if matches := re.FindStringSubmatch(errStr); len(matches) >= 2 {
			if status, err := strconv.Atoi(matches[1]); err == nil {
				return status
			}
		}
	}
	return 0
}

// classifyByHTTPStatus provides classification based on HTTP status code
func classifyByHTTPStatus(status int) ErrorType {
	switch {
	case status == 429, status >= 500:
		return ErrorTypeProvider
	// Auth errors are provider issues (wrong API key, etc.)
	case status == 401, status == 403:
		return ErrorTypeProvider
	default:
		return ErrorTypeUnknown
	}
}

func retryableStatus(status int) bool {
	return status >= 500 || status == 429
}

// containsAny checks if the error string contains any of the patterns (case-insensitive)
func containsAny(errStr string, patterns []string) bool {
	errLower := strings.ToLower(errStr)
	for _, pattern := range patterns {
		if strings.Contains(errLower, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// fallback classifies by HTTP status when no provider pattern matched
func fallback(result *ClassifiedError) *ClassifiedError {
	if result.HTTPStatus > 0 {
		result.Type = classifyByHTTPStatus(result.HTTPStatus)
		result.Retryable = retryableStatus(result.HTTPStatus)
		return result
	}
	result.Type = ErrorTypeUnknown
	result.Retryable = true
	return result
}

// classifyUnknownProvider handles errors from unknown providers
func (c *Classifier) classifyUnknownProvider(err error, errStr string, httpStatus int) *ClassifiedError {
	return fallback(&ClassifiedError{
		Original:   err,
		Provider:   "unknown",
		HTTPStatus: httpStatus,
	})
}
