package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const sendWindow = time.Minute

// SendLimiter enforces a per-user fixed-window cap on message sends.
// Key format: msglimit:<user_id>:<window_start_unix>
type SendLimiter struct {
	client *redis.Client
	max    int64
}

// NewSendLimiter creates a SendLimiter allowing maxPerMinute sends per user.
func NewSendLimiter(client *redis.Client, maxPerMinute int) *SendLimiter {
	if maxPerMinute <= 0 {
		maxPerMinute = 30
	}
	return &SendLimiter{client: client, max: int64(maxPerMinute)}
}

// Allow increments the caller's counter for the current window and reports
// whether the send is within budget.
func (l *SendLimiter) Allow(ctx context.Context, userID int64) (bool, error) {
	key := l.key(userID, time.Now())

	// INCR and EXPIRE run in a single transaction so a counter can never be
	// left without a TTL. The key is per-window, so re-setting the TTL on
	// every call is harmless.
	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, key)
	pipe.Expire(ctx, key, sendWindow)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("rate limit incr: %w", err)
	}

	return incr.Val() <= l.max, nil
}

func (l *SendLimiter) key(userID int64, now time.Time) string {
	windowStart := now.Unix() - now.Unix()%int64(sendWindow.Seconds())
	return fmt.Sprintf("msglimit:%d:%d", userID, windowStart)
}
