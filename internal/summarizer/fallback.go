package summarizer

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"judgebrief/internal/port"
)

// circuitState tracks rate-limit backoff for a single provider.
type circuitState struct {
	mu      sync.RWMutex
	resetAt time.Time // zero value = closed
}

func (c *circuitState) openUntil(now time.Time) (time.Time, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.resetAt, !c.resetAt.IsZero() && now.Before(c.resetAt)
}

func (c *circuitState) trip(resetAt time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.resetAt = resetAt
}

// Tier is one named provider in a fallback chain.
type Tier struct {
	Name       string
	Summarizer port.Summarizer
}

// FallbackSummarizer tries providers in order, skipping those whose circuit
// is open after a rate limit. It implements port.Summarizer.
type FallbackSummarizer struct {
	tiers    []Tier
	circuits []*circuitState
	now      func() time.Time
}

// NewFallbackSummarizer creates a FallbackSummarizer over tiers, tried in order.
func NewFallbackSummarizer(tiers ...Tier) *FallbackSummarizer {
	circuits := make([]*circuitState, len(tiers))
	for i := range circuits {
		circuits[i] = &circuitState{}
	}
	return &FallbackSummarizer{tiers: tiers, circuits: circuits, now: time.Now}
}

func (f *FallbackSummarizer) Summarize(ctx context.Context, input port.SummarizeInput) (*port.SummarizeOutput, error) {
	now := f.now()
	var lastErr error
	allRateLimited := true
	var earliestReset time.Time

	noteReset := func(at time.Time) {
		if earliestReset.IsZero() || at.Before(earliestReset) {
			earliestReset = at
		}
	}

	for i, tier := range f.tiers {
		if resetAt, open := f.circuits[i].openUntil(now); open {
			log.Printf("summarizer.FallbackSummarizer: skipping %s (circuit open until %s)", tier.Name, resetAt.Format(time.RFC3339))
			noteReset(resetAt)
			continue
		}

		out, err := tier.Summarizer.Summarize(ctx, input)
		if err == nil {
			return out, nil
		}

		log.Printf("summarizer.FallbackSummarizer: %s failed: %v", tier.Name, err)
		lastErr = err

		var rlErr *RateLimitError
		if errors.As(err, &rlErr) {
			resetAt := now.Add(rlErr.RetryAfter)
			f.circuits[i].trip(resetAt)
			noteReset(resetAt)
		} else {
			allRateLimited = false
		}
	}

	if lastErr == nil || allRateLimited {
		retryAfter := earliestReset.Sub(f.now())
		if retryAfter <= 0 {
			retryAfter = time.Second
		}
		return nil, NewRateLimitError("all", fmt.Errorf("all summarizers rate limited"), retryAfter)
	}
	return nil, fmt.Errorf("all summarizers failed: %w", lastErr)
}
