package janitor

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Sweep is one expiry task, e.g. deleting outdated allowlist entries.
type Sweep struct {
	Name string
	Run  func(ctx context.Context) error
}

type Janitor struct {
	interval time.Duration
	sweeps   []Sweep
	inFlight atomic.Bool
}

func NewJanitor(interval time.Duration, sweeps ...Sweep) *Janitor {
	return &Janitor{
		interval: interval,
		sweeps:   sweeps,
	}
}

// Start runs the sweeps on every tick until the context is cancelled. Ticks
// arriving while a previous run is still in flight are skipped; the sweeps
// are idempotent, so a skipped tick is caught up by the next one.
func (j *Janitor) Start(ctx context.Context) {
	slog.Info("starting cleanup job", slog.String("interval", j.interval.String()))

	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			slog.Info("cleanup job stopped")
			return
		case <-ticker.C:
			if !j.inFlight.CompareAndSwap(false, true) {
				slog.Warn("previous cleanup run still in flight, skipping tick")
				continue
			}
			j.RunOnce(ctx)
			j.inFlight.Store(false)
		}
	}
}

// RunOnce executes all sweeps once. A failing sweep is logged and does not
// stop the others; the next tick retries independently.
func (j *Janitor) RunOnce(ctx context.Context) {
	for _, sweep := range j.sweeps {
		if err := sweep.Run(ctx); err != nil {
			slog.Error("cleanup sweep failed", slog.String("sweep", sweep.Name), slog.String("error", err.Error()))
		}
	}
}
