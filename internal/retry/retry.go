// Package retry provides bounded exponential backoff for transient remote
// failures.
package retry

import (
	"context"
	"math"
	"time"
)

// Policy controls attempt count and backoff shape.
type Policy struct {
	// MaxAttempts is the total number of tries, including the first.
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Multiplier  float64
}

// DefaultPolicy keeps retries short: the caller usually has its own
// failover to move on to.
func DefaultPolicy() Policy {
	return Policy{
		MaxAttempts: 2,
		BaseDelay:   250 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Multiplier:  2.0,
	}
}

func (p Policy) delay(attempt int) time.Duration {
	d := time.Duration(float64(p.BaseDelay) * math.Pow(p.Multiplier, float64(attempt)))
	if d > p.MaxDelay {
		d = p.MaxDelay
	}
	return d
}

// Do runs fn until it succeeds, returns a non-transient error, or the
// policy is exhausted. transient decides whether an error is worth another
// attempt; a nil transient never retries.
func Do(ctx context.Context, p Policy, transient func(error) bool, fn func() error) error {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	var err error
	for attempt := 0; attempt < p.MaxAttempts; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(p.delay(attempt - 1)):
			}
		}

		if err = fn(); err == nil {
			return nil
		}
		if transient == nil || !transient(err) {
			return err
		}
	}
	return err
}
