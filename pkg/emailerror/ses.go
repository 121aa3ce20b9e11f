package emailerror

// SES error classification
//
// Recipient: MessageRejected, invalid or unknown mailbox.
// Provider: throttling and quota (retryable), credentials and paused accounts (not retryable).

var sesRecipientPatterns = []string{
	"messagerejected",
	"email address is not verified",
	"invalid recipient",
	"mailbox unavailable",
	"mailbox not found",
	"user unknown",
	"address rejected",
	"recipient rejected",
}

var sesProviderPatterns = []string{
	"throttling",
	"limitexceeded",
	"quota exceeded",
	"daily message quota",
	"serviceunavailable",
	"service unavailable",
	"accessdenied",
	"invalidclienttokenid",
	"signaturedoesnotmatch",
	"expiredtoken",
	"account is paused",
	"sending paused",
}

func (c *Classifier) classifySESError(err error, errStr string, httpStatus int) *ClassifiedError {
	result := &ClassifiedError{
		Original:   err,
		Provider:   ProviderSES,
		HTTPStatus: httpStatus,
		Retryable:  true,
	}

	if containsAny(errStr, sesRecipientPatterns) {
		// an unverified sender is our configuration, not the recipient's
		if containsAny(errStr, []string{"sender", "from address"}) && containsAny(errStr, []string{"not verified"}) {
			result.Type = ErrorTypeProvider
			result.Retryable = false
			return result
		}

		result.Type = ErrorTypeRecipient
		result.Retryable = false
		return result
	}

	if containsAny(errStr, sesProviderPatterns) {
		result.Type = ErrorTypeProvider
		result.Retryable = containsAny(errStr, []string{"throttl", "quota"})
		return result
	}

	return fallback(result)
}
