// Package limiter provides the shared token bucket gating every outbound
// request to the analytics site. All fetchers acquire from the same bucket so
// the process as a whole stays under the site's tolerated request rate.
package limiter

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"go-champ-stats/internal/metrics"
)

// TokenBucket grants tokens in FIFO order among waiting callers. Refills are
// computed lazily from elapsed wall-clock time; a periodic drain timer runs
// only while callers are queued.
type TokenBucket struct {
	mu       sync.Mutex
	capacity int
	refill   time.Duration
	tokens   int
	last     time.Time // refill accounting instant
	waiters  []*waiter
	timer    *time.Timer
	logger   *zap.Logger
}

type waiter struct {
	ch chan struct{}
}

// New creates a full bucket. capacity is the burst size, refill the period
// per replenished token.
func New(capacity int, refill time.Duration, logger *zap.Logger) *TokenBucket {
	return &TokenBucket{
		capacity: capacity,
		refill:   refill,
		tokens:   capacity,
		last:     time.Now(),
		logger:   logger,
	}
}

// Acquire blocks until a token is granted. Grants are FIFO: a caller never
// overtakes one that started waiting earlier. Returns early only if ctx is
// done.
func (b *TokenBucket) Acquire(ctx context.Context) error {
	start := time.Now()

	b.mu.Lock()
	b.refillLocked(start)
	if b.tokens > 0 && len(b.waiters) == 0 {
		b.tokens--
		b.mu.Unlock()
		metrics.ObserveLimiterWait(time.Since(start).Seconds())
		return nil
	}

	w := &waiter{ch: make(chan struct{}, 1)}
	b.waiters = append(b.waiters, w)
	if b.timer == nil {
		b.timer = time.AfterFunc(b.refill, b.drain)
	}
	queued := len(b.waiters)
	b.mu.Unlock()

	b.logger.Debug("Rate limiter queue", zap.Int("waiters", queued))

	select {
	case <-w.ch:
		metrics.ObserveLimiterWait(time.Since(start).Seconds())
		return nil
	case <-ctx.Done():
		b.abandon(w)
		return ctx.Err()
	}
}

// refillLocked credits tokens for elapsed refill periods, capped at capacity
func (b *TokenBucket) refillLocked(now time.Time) {
	if b.tokens >= b.capacity {
		b.last = now
		return
	}

	periods := int(now.Sub(b.last) / b.refill)
	if periods <= 0 {
		return
	}

	b.tokens += periods
	if b.tokens >= b.capacity {
		b.tokens = b.capacity
		b.last = now
	} else {
		b.last = b.last.Add(time.Duration(periods) * b.refill)
	}
}

// drain fires once per refill period while callers are queued, handing
// tokens to the head of the queue, then stops when the queue empties.
func (b *TokenBucket) drain() {
	b.mu.Lock()
	b.refillLocked(time.Now())

	for b.tokens > 0 && len(b.waiters) > 0 {
		w := b.waiters[0]
		b.waiters = b.waiters[1:]
		b.tokens--
		w.ch <- struct{}{}
	}

	if len(b.waiters) > 0 {
		b.timer = time.AfterFunc(b.refill, b.drain)
	} else {
		b.timer = nil
	}
	b.mu.Unlock()
}

// abandon removes a cancelled waiter. If its token was already granted, the
// token goes back to the bucket.
func (b *TokenBucket) abandon(w *waiter) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, q := range b.waiters {
		if q == w {
			b.waiters = append(b.waiters[:i], b.waiters[i+1:]...)
			return
		}
	}

	select {
	case <-w.ch:
		if b.tokens < b.capacity {
			b.tokens++
		}
	default:
	}
}
