// Package report
package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
	"github.com/tellor-io/node-storage-monitor/internal/logger"
	"github.com/tellor-io/node-storage-monitor/internal/storage/snapshot"
)

// Sender is the outbound channel for status reports.
type Sender interface {
	Send(ctx context.Context, content string) error
}

// Reporter posts periodic storage summaries on a cron schedule,
// independent of alert state. It reads the monitor loop's latest samples
// instead of re-sampling, so an expensive directory walk never runs twice
// per cycle.
type Reporter struct {
	schedule   string
	serverName string
	targets    []domain.Target
	store      *snapshot.SampleStore
	sender     Sender
	log        logger.Logger
}

func New(
	schedule string,
	serverName string,
	targets []domain.Target,
	store *snapshot.SampleStore,
	sender Sender,
	log logger.Logger,
) *Reporter {
	return &Reporter{
		schedule:   schedule,
		serverName: serverName,
		targets:    targets,
		store:      store,
		sender:     sender,
		log:        log,
	}
}

// Run blocks until ctx is canceled, letting an in-flight report finish
// before returning.
func (r *Reporter) Run(ctx context.Context) error {
	c := cron.New()

	if _, err := c.AddFunc(r.schedule, func() { r.report(ctx) }); err != nil {
		return fmt.Errorf("invalid report schedule %q: %w", r.schedule, err)
	}

	c.Start()
	r.log.Info("status reports scheduled", "schedule", r.schedule)

	<-ctx.Done()
	<-c.Stop().Done()
	return ctx.Err()
}

func (r *Reporter) report(ctx context.Context) {
	timeoutCtx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := r.sender.Send(timeoutCtx, r.build()); err != nil {
		r.log.Error("status report delivery failed", "error", err)
		return
	}
	r.log.Info("status report sent", "targets", len(r.targets))
}

func (r *Reporter) build() string {
	var b strings.Builder
	fmt.Fprintf(&b, "🪖 **Storage status for %s**\n", r.serverName)

	var newest time.Time
	for _, t := range r.targets {
		s, ok := r.store.Get(t.Name)
		if !ok {
			fmt.Fprintf(&b, "**%s:** no data yet\n", t.Name)
			continue
		}
		if s.TakenAt.After(newest) {
			newest = s.TakenAt
		}

		if s.Unit == domain.UnitPercent {
			fmt.Fprintf(&b, "**%s:** %.1f%% used (%.1f GB free of %.1f GB)\n", t.Name, s.Value, s.FreeGB, s.TotalGB)
		} else {
			fmt.Fprintf(&b, "**%s:** %.2f %s\n", t.Name, s.Value, s.Unit)
		}
	}

	if !newest.IsZero() {
		fmt.Fprintf(&b, "_as of %s_", newest.Format("2006-01-02 15:04:05 MST"))
	}

	return b.String()
}
