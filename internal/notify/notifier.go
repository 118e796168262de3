// Package notify
package notify

import (
	"context"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// Notifier delivers threshold notifications for monitored targets. A nil
// error means the notification reached the destination; the caller treats
// anything else as undelivered.
type Notifier interface {
	Alert(ctx context.Context, ev domain.Event) error
	Recovered(ctx context.Context, ev domain.Event) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) Alert(context.Context, domain.Event) error     { return nil }
func (Nop) Recovered(context.Context, domain.Event) error { return nil }
