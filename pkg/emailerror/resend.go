package emailerror

// Resend reports failures as {"statusCode": 422, "name": "validation_error", "message": "..."}.
// The mailer folds name and message into the error string next to the status code.

var resendRecipientPatterns = []string{
	"invalid `to` field",
	"invalid to field",
	"invalid email",
	"invalid recipient",
	"recipient is on the suppression list",
}

var resendProviderPatterns = []string{
	"rate_limit_exceeded",
	"daily_quota_exceeded",
	"monthly_quota_exceeded",
	"too many requests",
	"missing_api_key",
	"invalid_api_key",
	"restricted_api_key",
	"invalid_from_address",
	"domain is not verified",
	"application_error",
	"internal_server_error",
}

func (c *Classifier) classifyResendError(err error, errStr string, httpStatus int) *ClassifiedError {
	result := &ClassifiedError{
		Original:   err,
		Provider:   ProviderResend,
		HTTPStatus: httpStatus,
		Retryable:  true,
	}

	if containsAny(errStr, resendRecipientPatterns) {
		result.Type = ErrorTypeRecipient
		result.Retryable = false
		return result
	}

	if containsAny(errStr, resendProviderPatterns) {
		result.Type = ErrorTypeProvider
		// rate limits and server faults clear up on their own; key and sender problems do not
		result.Retryable = retryableStatus(httpStatus) ||
			containsAny(errStr, []string{"rate_limit", "too many requests", "application_error", "internal_server_error"})
		return result
	}

	// 422 without a known name is a malformed request, repeating it is pointless
	if httpStatus == 422 || httpStatus == 400 {
		result.Type = ErrorTypeUnknown
		result.Retryable = false
		return result
	}

	return fallback(result)
}
