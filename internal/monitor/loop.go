// Package monitor
package monitor

import (
	"context"
	"time"

	"github.com/tellor-io/node-storage-monitor/internal/alert"
	"github.com/tellor-io/node-storage-monitor/internal/domain"
	"github.com/tellor-io/node-storage-monitor/internal/logger"
	"github.com/tellor-io/node-storage-monitor/internal/sampler"
	"github.com/tellor-io/node-storage-monitor/internal/storage/snapshot"
)

// Loop samples every target on a fixed interval and feeds the readings to
// the alert controller. Targets are processed sequentially; the first
// cycle runs immediately on start, the next ones on the ticker.
type Loop struct {
	interval   time.Duration
	targets    []domain.Target
	samplers   map[string]sampler.Sampler
	controller *alert.Controller
	store      *snapshot.SampleStore
	log        logger.Logger
}

func NewLoop(
	interval time.Duration,
	targets []domain.Target,
	samplers map[string]sampler.Sampler,
	controller *alert.Controller,
	store *snapshot.SampleStore,
	log logger.Logger,
) *Loop {
	return &Loop{
		interval:   interval,
		targets:    targets,
		samplers:   samplers,
		controller: controller,
		store:      store,
		log:        log,
	}
}

// Run blocks until ctx is canceled. It always returns the context error,
// so a clean shutdown reads as context.Canceled to the caller.
func (l *Loop) Run(ctx context.Context) error {
	l.log.Info("monitor loop started", "interval", l.interval, "targets", len(l.targets))

	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	l.tick(ctx)

	for {
		select {
		case <-ticker.C:
			l.tick(ctx)
		case <-ctx.Done():
			l.log.Info("monitor loop stopped")
			return ctx.Err()
		}
	}
}

// tick samples every target once, in config order. A failed sample skips
// that target for this cycle and leaves its alert state untouched.
func (l *Loop) tick(ctx context.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, l.interval)
	defer cancel()

	for _, t := range l.targets {
		smp, ok := l.samplers[t.Name]
		if !ok {
			l.log.Warn("no sampler for target", "target", t.Name)
			continue
		}

		s, err := smp.Sample(timeoutCtx)
		if err != nil {
			l.log.Error("sample failed", "target", t.Name, "error", err)
			continue
		}

		l.store.Set(t.Name, s)
		l.log.Debug("sampled", "target", t.Name, "value", s.Value, "unit", s.Unit)

		l.controller.Observe(timeoutCtx, t, s)
	}
}
