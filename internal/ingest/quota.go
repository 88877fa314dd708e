package ingest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyQuotaReached is returned once the daily API call quota is spent.
var ErrDailyQuotaReached = errors.New("daily API quota reached")

// quotaZone is where Naver Open API quotas roll over.
var quotaZone = time.FixedZone("KST", 9*60*60)

// QuotaLimiter paces API calls with a token bucket and enforces a daily
// call quota that resets at midnight KST. A zero daily quota is unlimited.
type QuotaLimiter struct {
	limiter *rate.Limiter
	daily   int64

	mu      sync.Mutex
	used    int64
	resetAt time.Time
	nowFunc func() time.Time
}

// QuotaOption configures the QuotaLimiter.
type QuotaOption func(*QuotaLimiter)

// WithQuotaNowFunc overrides the time function for testing.
func WithQuotaNowFunc(f func() time.Time) QuotaOption {
	return func(q *QuotaLimiter) {
		q.nowFunc = f
	}
}

// NewQuotaLimiter creates a limiter allowing perSecond calls with the given
// burst and at most daily calls per KST day.
func NewQuotaLimiter(perSecond float64, burst int, daily int64, opts ...QuotaOption) *QuotaLimiter {
	q := &QuotaLimiter{
		limiter: rate.NewLimiter(rate.Limit(perSecond), burst),
		daily:   daily,
		nowFunc: time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.resetAt = nextMidnight(q.nowFunc())
	return q
}

// Wait blocks until a call is allowed, the context is canceled, or the
// daily quota is exhausted.
func (q *QuotaLimiter) Wait(ctx context.Context) error {
	if err := q.reserve(); err != nil {
		return err
	}
	if err := q.limiter.Wait(ctx); err != nil {
		q.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// Used returns the number of calls made in the current quota day.
func (q *QuotaLimiter) Used() int64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	return q.used
}

// Remaining returns the calls left today, or -1 when unlimited.
func (q *QuotaLimiter) Remaining() int64 {
	if q.daily <= 0 {
		return -1
	}
	return max(q.daily-q.Used(), 0)
}

// ResetAt returns when the daily counter next resets.
func (q *QuotaLimiter) ResetAt() time.Time {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()
	return q.resetAt
}

func (q *QuotaLimiter) reserve() error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.rollover()

	if q.daily > 0 && q.used >= q.daily {
		return fmt.Errorf("%w (%d/%d, resets %s)",
			ErrDailyQuotaReached, q.used, q.daily, q.resetAt.Format(time.RFC3339))
	}
	q.used++
	return nil
}

func (q *QuotaLimiter) release() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.used > 0 {
		q.used--
	}
}

// rollover must be called with mu held.
func (q *QuotaLimiter) rollover() {
	now := q.nowFunc()
	if !now.Before(q.resetAt) {
		q.used = 0
		q.resetAt = nextMidnight(now)
	}
}

func nextMidnight(t time.Time) time.Time {
	local := t.In(quotaZone)
	y, m, d := local.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, quotaZone)
}
