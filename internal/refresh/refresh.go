// Package refresh periodically re-warms the place cache on a cron schedule.
package refresh

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Warmer re-populates a cache from the backing store.
type Warmer interface {
	WarmUp(ctx context.Context) error
}

// Refresher drives periodic cache refreshes.
type Refresher struct {
	warmer Warmer
	logger *slog.Logger
	cron   *cron.Cron
}

// New creates a stopped refresher.
func New(warmer Warmer, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		warmer: warmer,
		logger: logger,
		cron:   cron.New(),
	}
}

// Start registers the refresh job and starts the scheduler. The schedule
// accepts standard cron expressions and descriptors like "@every 5m".
func (r *Refresher) Start(schedule string) error {
	_, err := r.cron.AddFunc(schedule, func() {
		if err := r.warmer.WarmUp(context.Background()); err != nil {
			r.logger.Error("cache refresh failed", "error", err)
			return
		}
		r.logger.Debug("cache refreshed")
	})
	if err != nil {
		return fmt.Errorf("scheduling cache refresh %q: %w", schedule, err)
	}
	r.cron.Start()
	r.logger.Info("cache refresher started", "schedule", schedule)
	return nil
}

// Stop halts the scheduler and waits for a running job to finish.
func (r *Refresher) Stop() {
	ctx := r.cron.Stop()
	<-ctx.Done()
}
