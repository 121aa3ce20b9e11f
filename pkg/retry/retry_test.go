package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPolicy_Delay(t *testing.T) {
	p := Policy{BaseDelay: 100 * time.Millisecond, Multiplier: 2, MaxDelay: time.Second}

	assert.Equal(t, 100*time.Millisecond, p.Delay(1))
	assert.Equal(t, 200*time.Millisecond, p.Delay(2))
	assert.Equal(t, 400*time.Millisecond, p.Delay(3))
	assert.Equal(t, 800*time.Millisecond, p.Delay(4))
	assert.Equal(t, time.Second, p.Delay(5), "capped by MaxDelay")

	constant := Policy{BaseDelay: 50 * time.Millisecond, Multiplier: 1}
	assert.Equal(t, 50*time.Millisecond, constant.Delay(7))
}

func TestPolicy_Do(t *testing.T) {
	errBoom := errors.New("boom")

	t.Run("succeeds first time", func(t *testing.T) {
		calls := 0
		err := Policy{Attempts: 3}.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("succeeds after failures", func(t *testing.T) {
		calls := 0
		var retried []int
		p := Policy{
			Attempts:   3,
			BaseDelay:  time.Millisecond,
			Multiplier: 2,
			OnRetry: func(attempt int, delay time.Duration, err error) {
				retried = append(retried, attempt)
			},
		}
		err := p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			if calls < 3 {
				return errBoom
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
		assert.Equal(t, []int{1, 2}, retried)
	})

	t.Run("exhausts attempts", func(t *testing.T) {
		calls := 0
		err := Policy{Attempts: 3, BaseDelay: time.Millisecond, Multiplier: 2}.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errBoom
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, errBoom)
		assert.Contains(t, err.Error(), "failed after 3 attempts")
		assert.Equal(t, 3, calls)
	})

	t.Run("single attempt returns raw error", func(t *testing.T) {
		err := Policy{Attempts: 1}.Do(context.Background(), func(ctx context.Context) error {
			return errBoom
		})
		assert.Equal(t, errBoom, err)
	})

	t.Run("non retryable stops immediately", func(t *testing.T) {
		calls := 0
		p := Policy{
			Attempts:  5,
			BaseDelay: time.Millisecond,
			Retryable: func(err error) bool { return false },
		}
		err := p.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errBoom
		})
		assert.Equal(t, errBoom, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("permanent error stops immediately", func(t *testing.T) {
		calls := 0
		err := Policy{Attempts: 5, BaseDelay: time.Millisecond}.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return Permanent(errBoom)
		})
		assert.Equal(t, errBoom, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancelled while waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		p := Policy{Attempts: 5, BaseDelay: time.Hour, Multiplier: 2}
		go func() {
			time.Sleep(10 * time.Millisecond)
			cancel()
		}()
		err := p.Do(ctx, func(ctx context.Context) error {
			calls++
			return errBoom
		})
		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})

	t.Run("zero attempts behaves as one", func(t *testing.T) {
		calls := 0
		_ = Policy{}.Do(context.Background(), func(ctx context.Context) error {
			calls++
			return errBoom
		})
		assert.Equal(t, 1, calls)
	})
}

func TestPermanentNil(t *testing.T) {
	assert.Nil(t, Permanent(nil))
}

func TestPermanentCause(t *testing.T) {
	errBoom := errors.New("boom")

	cause, ok := PermanentCause(fmt.Errorf("send: %w", Permanent(errBoom)))
	assert.True(t, ok)
	assert.Equal(t, errBoom, cause)

	cause, ok = PermanentCause(errBoom)
	assert.False(t, ok)
	assert.Equal(t, errBoom, cause)

	assert.True(t, IsPermanent(Permanent(errBoom)))
	assert.False(t, IsPermanent(nil))
}
