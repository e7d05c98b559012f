package util

import (
	"context"
	"time"
)

// Pacer inserts a fixed pause between consecutive upstream requests so the
// fetchers stay under provider rate limits. It is not a rate limiter in the
// token-bucket sense: the pipeline is fully sequential, so a plain minimum
// interval is enough.
type Pacer struct {
	interval time.Duration
	last     time.Time
}

// NewPacer creates a Pacer enforcing the given minimum interval between
// calls to Wait. A non-positive interval disables pacing.
func NewPacer(interval time.Duration) *Pacer {
	return &Pacer{interval: interval}
}

// Wait blocks until at least the configured interval has passed since the
// previous Wait returned, or until the context is cancelled. The first call
// never blocks.
func (p *Pacer) Wait(ctx context.Context) error {
	if p.interval <= 0 {
		return nil
	}
	if !p.last.IsZero() {
		if remaining := p.interval - time.Since(p.last); remaining > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(remaining):
			}
		}
	}
	p.last = time.Now()
	return nil
}
