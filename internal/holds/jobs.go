package holds

import (
	"context"
	"sync/atomic"
	"time"

	"tablebook/pkg/logger"
)

// Sweeper runs the hold expiry sweep on a timer. A pass drains expired
// holds in batches; if a pass is still draining when the next tick fires,
// the tick is skipped rather than stacking a second sweep.
type Sweeper struct {
	service Service
	config  *SweeperConfig
	log     *logger.Logger
	done    chan struct{}
	running atomic.Bool
}

// SweeperConfig contains configuration for the expiry sweep
type SweeperConfig struct {
	Interval time.Duration
}

// DefaultSweeperConfig returns default sweep configuration
func DefaultSweeperConfig() *SweeperConfig {
	return &SweeperConfig{
		Interval: 30 * time.Second,
	}
}

// NewSweeper creates a new hold expiry sweeper
func NewSweeper(service Service, config *SweeperConfig) *Sweeper {
	if config == nil {
		config = DefaultSweeperConfig()
	}

	return &Sweeper{
		service: service,
		config:  config,
		log:     logger.GetDefault(),
		done:    make(chan struct{}),
	}
}

// Start starts the background sweep loop
func (sw *Sweeper) Start(ctx context.Context) {
	sw.log.Info("Starting hold expiry sweeper", "interval", sw.config.Interval.String())
	go sw.run(ctx)
}

// Stop stops the background sweep loop
func (sw *Sweeper) Stop() {
	sw.log.Info("Stopping hold expiry sweeper")
	close(sw.done)
}

func (sw *Sweeper) run(ctx context.Context) {
	ticker := time.NewTicker(sw.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			sw.Sweep(ctx)
		case <-sw.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// Sweep runs one sweep pass. A failed pass logs and waits for the next
// tick; capacity accuracy only skews transiently, never permanently.
func (sw *Sweeper) Sweep(ctx context.Context) {
	if !sw.running.CompareAndSwap(false, true) {
		return
	}
	defer sw.running.Store(false)

	start := time.Now()
	expired, err := sw.service.SweepExpired(ctx)
	if err != nil {
		sw.log.ErrorWithContext(ctx, "hold sweep pass failed", err, map[string]interface{}{
			"expired_before_failure": expired,
		})
		return
	}

	if expired > 0 {
		sw.log.LogSweepPass(ctx, expired, time.Since(start))
	}
}
