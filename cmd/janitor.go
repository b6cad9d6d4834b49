package cmd

import (
	"context"
	"log/slog"
	"time"

	"github.com/frahmantamala/bizmanager/internal/auth"
	"github.com/frahmantamala/bizmanager/internal/transport/middleware"
)

const defaultSweepInterval = time.Hour

// runJanitor drops expired sessions and idle rate-limit buckets until ctx is
// cancelled.
func runJanitor(ctx context.Context, interval time.Duration, sessions *auth.Service, limiter *middleware.RateLimiter, lg *slog.Logger) {
	if interval <= 0 {
		interval = defaultSweepInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := sessions.SweepExpiredSessions(ctx); err != nil && ctx.Err() == nil {
				lg.Error("session sweep failed", "error", err)
			}
			if n := limiter.Cleanup(interval); n > 0 {
				lg.Debug("idle rate limiters dropped", "count", n)
			}
		}
	}
}
