// Package job holds scheduled maintenance tasks.
package job

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"judgebrief/internal/config"
)

// Purger deletes finished analyses created before a cutoff.
type Purger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// Retention removes analyses older than a maximum age.
type Retention struct {
	purger Purger
	maxAge time.Duration
	now    func() time.Time
}

// NewRetention creates a Retention that purges analyses older than maxAge.
func NewRetention(purger Purger, maxAge time.Duration) *Retention {
	return &Retention{purger: purger, maxAge: maxAge, now: time.Now}
}

// Run performs a single purge pass.
func (r *Retention) Run(ctx context.Context) (int64, error) {
	cutoff := r.now().UTC().Add(-r.maxAge)
	n, err := r.purger.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purging analyses before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	return n, nil
}

// StartRetention schedules the purge on cfg.Schedule and stops the scheduler
// when ctx is cancelled. It returns nil when retention is disabled.
func StartRetention(ctx context.Context, cfg config.RetentionConfig, purger Purger) (*cron.Cron, error) {
	if !cfg.Enabled {
		log.Printf("job.Retention: disabled")
		return nil, nil
	}
	if cfg.MaxAge <= 0 {
		return nil, fmt.Errorf("retention max age must be positive, got %s", cfg.MaxAge)
	}

	r := NewRetention(purger, cfg.MaxAge)
	c := cron.New()
	_, err := c.AddFunc(cfg.Schedule, func() {
		n, err := r.Run(ctx)
		if err != nil {
			log.Printf("job.Retention: %v", err)
			return
		}
		log.Printf("job.Retention: purged %d analyses older than %s", n, cfg.MaxAge)
	})
	if err != nil {
		return nil, fmt.Errorf("scheduling retention %q: %w", cfg.Schedule, err)
	}

	c.Start()
	log.Printf("job.Retention: scheduled %q, max age %s", cfg.Schedule, cfg.MaxAge)

	go func() {
		<-ctx.Done()
		<-c.Stop().Done()
		log.Printf("job.Retention: stopped")
	}()
	return c, nil
}
