package emailerror

// SMTP replies: 5xx on a recipient is permanent, 4xx and transport failures are temporary.

var smtpRecipientPatterns = []string{
	"550 ",
	"551 ",
	"552 ",
	"553 ",
	"5.1.1", // Mailbox does not exist
	"5.1.2", // Bad destination mailbox
	"5.1.3", // Bad destination mailbox syntax
	"5.2.1", // Mailbox disabled
	"5.2.2", // Mailbox full
	"mailbox unavailable",
	"user unknown",
	"no such user",
	"recipient rejected",
	"mailbox full",
	"over quota",
}

var smtpProviderPatterns = []string{
	"421 ",
	"450 ",
	"451 ",
	"452 ",
	"connection refused",
	"connection reset",
	"timeout",
	"timed out",
	"tls handshake",
	"authentication failed",
	"auth failed",
	"service unavailable",
	"try again later",
	"temporary failure",
	"greylist",
}

func (c *Classifier) classifySMTPError(err error, errStr string, httpStatus int) *ClassifiedError {
	result := &ClassifiedError{
		Original:   err,
		Provider:   ProviderSMTP,
		HTTPStatus: httpStatus,
		Retryable:  true,
	}

	if containsAny(errStr, smtpRecipientPatterns) {
		result.Type = ErrorTypeRecipient
		result.Retryable = false
		return result
	}

	if containsAny(errStr, smtpProviderPatterns) {
		result.Type = ErrorTypeProvider
		// a rejected login will be rejected again
		result.Retryable = !containsAny(errStr, []string{"authentication failed", "auth failed"})
		return result
	}

	return fallback(result)
}
