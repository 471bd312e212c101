// Package fallback runs an ordered chain of fetch attempts until one yields
// usable records. Channel and query-variant alternatives are expressed as
// attempts; the runner owns retries and backoff so the per-domain fetch code
// stays flat.
package fallback

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// ErrNoData means every variant and retry was exhausted without a usable
// result. Callers treat it as "no data right now", not as a fault.
var ErrNoData = errors.New("no usable data from any variant")

// Attempt is one variant/channel combination. Do returns the extracted
// records; an error or an empty slice both count as a failed try.
type Attempt[T any] struct {
	Label string
	Do    func(ctx context.Context) ([]T, error)
}

// Policy bounds retries within a single attempt
type Policy struct {
	MaxRetries int           // additional tries after the first
	Backoff    time.Duration // base delay, doubled per retry
}

// Run evaluates attempts in order and returns the first non-empty result.
// Transient failures retry with exponential backoff before the next variant
// is tried.
func Run[T any](ctx context.Context, policy Policy, logger *zap.Logger, attempts []Attempt[T]) ([]T, error) {
	for _, attempt := range attempts {
		for try := 0; try <= policy.MaxRetries; try++ {
			if try > 0 {
				delay := policy.Backoff << (try - 1)
				select {
				case <-time.After(delay):
				case <-ctx.Done():
					return nil, ctx.Err()
				}
			}

			records, err := attempt.Do(ctx)
			if err != nil {
				if ctx.Err() != nil {
					return nil, ctx.Err()
				}
				logger.Debug("Fetch attempt failed",
					zap.String("attempt", attempt.Label),
					zap.Int("try", try),
					zap.Error(err))
				continue
			}
			if len(records) > 0 {
				return records, nil
			}

			logger.Debug("Fetch attempt returned no records",
				zap.String("attempt", attempt.Label),
				zap.Int("try", try))
		}
	}

	return nil, ErrNoData
}
