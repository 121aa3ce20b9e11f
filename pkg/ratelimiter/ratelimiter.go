package ratelimiter

import (
	"strings"
	"sync"
	"time"
)

// Namespaces used by the email endpoints
const (
	NamespaceVerification  = "verification"
	NamespacePasswordReset = "password_reset"
	NamespaceContact       = "contact"

	// NamespaceCodeCheck counts submitted codes, not emails sent
	NamespaceCodeCheck = "code_check"
)

// RatePolicy defines the rate limit configuration for a namespace
type RatePolicy struct {
	MaxAttempts int
	Window      time.Duration
}

// RateLimiter is an in-memory sliding window limiter keyed by namespace and
// email address. Keys are compared case-insensitively. It lives only as long as
// the process, so on serverless runtimes it limits bursts within one warm instance.
type RateLimiter struct {
	mu          sync.Mutex
	attempts    map[string][]time.Time // "namespace:key" -> timestamps of attempts
	policies    map[string]RatePolicy
	now         func() time.Time
	stopCleanup chan struct{}
	stopped     bool
}

// NewRateLimiter starts the background cleanup loop; call Stop when done
func NewRateLimiter() *RateLimiter {
	rl := newRateLimiter(time.Now)
	go rl.cleanup(time.Minute)
	return rl
}

func newRateLimiter(now func() time.Time) *RateLimiter {
	return &RateLimiter{
		attempts:    make(map[string][]time.Time),
		policies:    make(map[string]RatePolicy),
		now:         now,
		stopCleanup: make(chan struct{}),
	}
}

// SetPolicy configures the limit for a namespace
func (rl *RateLimiter) SetPolicy(namespace string, maxAttempts int, window time.Duration) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	rl.policies[namespace] = RatePolicy{
		MaxAttempts: maxAttempts,
		Window:      window,
	}
}

func compositeKey(namespace, key string) string {
	return namespace + ":" + strings.ToLower(strings.TrimSpace(key))
}

// validAttempts drops timestamps outside the window. Caller holds the lock.
func (rl *RateLimiter) validAttempts(ck string, policy RatePolicy, now time.Time) []time.Time {
	cutoff := now.Add(-policy.Window)
	list := rl.attempts[ck]
	valid := list[:0]
	for _, t := range list {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}
	if len(valid) == 0 {
		delete(rl.attempts, ck)
		return nil
	}
	rl.attempts[ck] = valid
	return valid
}

// Allow records an attempt and reports whether it is within the limit.
// A namespace without a policy denies everything.
func (rl *RateLimiter) Allow(namespace, key string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, exists := rl.policies[namespace]
	if !exists {
		return false
	}

	now := rl.now()
	ck := compositeKey(namespace, key)
	valid := rl.validAttempts(ck, policy, now)

	if len(valid) >= policy.MaxAttempts {
		return false
	}

	rl.attempts[ck] = append(valid, now)
	return true
}

// Reset clears the attempts for a key, e.g. after a successful password update
func (rl *RateLimiter) Reset(namespace, key string) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	delete(rl.attempts, compositeKey(namespace, key))
}

// RetryAfter returns the whole seconds until the oldest attempt leaves the window,
// for the Retry-After header. Zero when nothing is recorded.
func (rl *RateLimiter) RetryAfter(namespace, key string) int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	policy, exists := rl.policies[namespace]
	if !exists {
		return 0
	}

	now := rl.now()
	valid := rl.validAttempts(compositeKey(namespace, key), policy, now)
	if len(valid) == 0 {
		return 0
	}

	oldest := valid[0]
	for _, t := range valid[1:] {
		if t.Before(oldest) {
			oldest = t
		}
	}

	remaining := oldest.Add(policy.Window).Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(remaining.Seconds()) + 1
}

// purge removes keys with no attempts left in their window
func (rl *RateLimiter) purge() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	for ck := range rl.attempts {
		namespace, _, _ := strings.Cut(ck, ":")
		policy, exists := rl.policies[namespace]
		if !exists {
			delete(rl.attempts, ck)
			continue
		}
		rl.validAttempts(ck, policy, now)
	}
}

func (rl *RateLimiter) cleanup(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.purge()
		case <-rl.stopCleanup:
			return
		}
	}
}

// Stop ends the cleanup loop. It is safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	if !rl.stopped {
		close(rl.stopCleanup)
		rl.stopped = true
	}
}
