package llm

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// DefaultDailyLimit is the number of model calls allowed per calendar day.
const DefaultDailyLimit = 100

// ErrDailyLimitReached is returned once the daily call budget is spent.
var ErrDailyLimitReached = errors.New("daily LLM call limit reached")

// DailyLimiter allows at most limit calls per calendar day in the local
// time zone. The counter resets on the first call of a new day.
type DailyLimiter struct {
	mu    sync.Mutex
	limit int
	count int
	day   string
	now   func() time.Time
}

// NewDailyLimiter creates a limiter. A non-positive limit uses DefaultDailyLimit.
func NewDailyLimiter(limit int) *DailyLimiter {
	if limit <= 0 {
		limit = DefaultDailyLimit
	}
	return &DailyLimiter{limit: limit, now: time.Now}
}

// Allow consumes one call from today's budget.
func (l *DailyLimiter) Allow() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	if l.count >= l.limit {
		return fmt.Errorf("%w: %d calls used today", ErrDailyLimitReached, l.count)
	}
	l.count++
	return nil
}

// Remaining returns the number of calls left today.
func (l *DailyLimiter) Remaining() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.rollover()
	return l.limit - l.count
}

// Limit returns the configured daily budget.
func (l *DailyLimiter) Limit() int {
	return l.limit
}

func (l *DailyLimiter) rollover() {
	today := l.now().Format(time.DateOnly)
	if today != l.day {
		l.day = today
		l.count = 0
	}
}

// LimitedClient wraps a Client so every generation draws from a DailyLimiter.
type LimitedClient struct {
	Client
	limiter *DailyLimiter
}

// NewLimitedClient wraps client with limiter.
func NewLimitedClient(client Client, limiter *DailyLimiter) *LimitedClient {
	return &LimitedClient{Client: client, limiter: limiter}
}

// GenerateContent checks the daily budget before delegating.
func (c *LimitedClient) GenerateContent(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if err := c.limiter.Allow(); err != nil {
		return "", err
	}
	return c.Client.GenerateContent(ctx, prompt, tier)
}

// Limiter exposes the underlying limiter.
func (c *LimitedClient) Limiter() *DailyLimiter {
	return c.limiter
}
