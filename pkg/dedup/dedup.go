package dedup

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taylorconnect/hub/pkg/logger"
)

//go:generate mockgen -destination=../mocks/mock_claimer.go -package=mocks github.com/taylorconnect/hub/pkg/dedup Claimer

// Claimer grants one holder the right to process an id for a while
type Claimer interface {
	// Claim returns true if the caller is the first to claim scope/id
	Claim(ctx context.Context, scope, id string) bool
	// Release gives the id back, e.g. after a failed send so the next pass can retry
	Release(ctx context.Context, scope, id string)
}

// redisClient is the part of *redis.Client the claimer needs
type redisClient interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// RedisClaimer claims ids with SETNX and a TTL. When Redis is unavailable it
// lets processing continue; the database remains the source of truth.
type RedisClaimer struct {
	rdb    redisClient
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisClaimer(rdb redisClient, ttl time.Duration, log logger.Logger) *RedisClaimer {
	return &RedisClaimer{
		rdb:    rdb,
		ttl:    ttl,
		logger: log,
	}
}

// NewRedisClient builds a client from address, password and db index
func NewRedisClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func claimKey(scope, id string) string {
	return fmt.Sprintf("dedup:%s:%s", scope, id)
}

func (c *RedisClaimer) Claim(ctx context.Context, scope, id string) bool {
	key := claimKey(scope, id)

	ok, err := c.rdb.SetNX(ctx, key, 1, c.ttl).Result()
	if err != nil {
		c.logger.WithFields(map[string]interface{}{
			"scope": scope,
			"id":    id,
			"error": err.Error(),
		}).Warn("Redis claim failed, allowing processing")
		return true
	}

	if !ok {
		c.logger.WithFields(map[string]interface{}{
			"scope":     scope,
			"id":        id,
			"claim_key": key,
		}).Info("Skipped id claimed by another worker")
	}

	return ok
}

func (c *RedisClaimer) Release(ctx context.Context, scope, id string) {
	if err := c.rdb.Del(ctx, claimKey(scope, id)).Err(); err != nil {
		c.logger.WithFields(map[string]interface{}{
			"scope": scope,
			"id":    id,
			"error": err.Error(),
		}).Warn("Failed to release Redis claim")
	}
}

// NoopClaimer grants every claim. Used when Redis is not configured.
type NoopClaimer struct{}

func (NoopClaimer) Claim(ctx context.Context, scope, id string) bool { return true }

func (NoopClaimer) Release(ctx context.Context, scope, id string) {}
