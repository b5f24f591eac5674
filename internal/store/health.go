package store

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/Maverick-list/Personal-Advance-Portofolio/internal/health"
)

const defaultCheckTimeout = 2 * time.Second

// HealthChecker keeps a cached flag for whether the memory store answers.
type HealthChecker struct {
	store   Store
	timeout time.Duration
	log     zerolog.Logger
	healthy atomic.Bool
	failing atomic.Bool
}

// NewHealthChecker reports unhealthy until the first successful check.
func NewHealthChecker(st Store, log zerolog.Logger, timeout time.Duration) *HealthChecker {
	if timeout <= 0 {
		timeout = defaultCheckTimeout
	}
	return &HealthChecker{store: st, timeout: timeout, log: log}
}

func (hc *HealthChecker) Name() string { return "memory_store" }

func (hc *HealthChecker) IsHealthy() bool { return hc.healthy.Load() }

// Start checks once, then every interval until ctx ends.
func (hc *HealthChecker) Start(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	hc.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			hc.Check(ctx)
		}
	}
}

// Check pings the driver when it supports health.Pinger and counts memories
// otherwise. Only the first failure of a streak is logged.
func (hc *HealthChecker) Check(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, hc.timeout)
	defer cancel()

	var err error
	if p, ok := hc.store.(health.Pinger); ok {
		err = p.Ping(ctx)
	} else {
		_, err = hc.store.Memories().Count(ctx)
	}
	hc.healthy.Store(err == nil)
	if err == nil {
		if hc.failing.Swap(false) {
			hc.log.Info().Str("checker", hc.Name()).Msg("memory store reachable again")
		}
		return true
	}
	if !hc.failing.Swap(true) {
		hc.log.Error().Stack().Str("checker", hc.Name()).Err(err).Msg("memory store health check failed")
	}
	return false
}
