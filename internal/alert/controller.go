package alert

import (
	"context"
	"time"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
	"github.com/tellor-io/node-storage-monitor/internal/logger"
	"github.com/tellor-io/node-storage-monitor/internal/notify"
)

// Outcome reports what Observe did with a sample.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeAlerted
	OutcomeSuppressed
	OutcomeRecovered
	OutcomeDeliveryFailed
)

// Controller owns the alert state machine for every monitored target and
// drives notification side effects. State lives in memory only and is
// touched from a single goroutine, so there is no locking.
//
// On a failed delivery the state transition is withheld, which makes the
// next qualifying tick retry the notification naturally.
type Controller struct {
	notifier       notify.Notifier
	notifyRecovery bool
	log            logger.Logger
	states         map[string]State
	now            func() time.Time
}

func NewController(notifier notify.Notifier, notifyRecovery bool, log logger.Logger) *Controller {
	return &Controller{
		notifier:       notifier,
		notifyRecovery: notifyRecovery,
		log:            log,
		states:         make(map[string]State),
		now:            time.Now,
	}
}

func (c *Controller) Observe(ctx context.Context, t domain.Target, s domain.Sample) Outcome {
	st := c.states[t.Name]
	next, act := transition(st, t, s, c.now())

	switch act {
	case actionAlert:
		ev := domain.NewEvent(t, s)
		if err := c.notifier.Alert(ctx, ev); err != nil {
			c.log.Error("alert delivery failed",
				"target", t.Name,
				"trace_id", ev.TraceID,
				"error", err,
			)
			return OutcomeDeliveryFailed
		}

		c.states[t.Name] = next
		c.log.Info("alert sent",
			"target", t.Name,
			"trace_id", ev.TraceID,
			"value", s.Value,
			"unit", s.Unit,
			"threshold", t.Threshold,
		)
		return OutcomeAlerted

	case actionRecover:
		if c.notifyRecovery {
			ev := domain.NewEvent(t, s)
			if err := c.notifier.Recovered(ctx, ev); err != nil {
				c.log.Error("recovery delivery failed",
					"target", t.Name,
					"trace_id", ev.TraceID,
					"error", err,
				)
				return OutcomeDeliveryFailed
			}
			c.log.Info("recovery sent", "target", t.Name, "trace_id", ev.TraceID, "value", s.Value)
		} else {
			c.log.Info("target recovered", "target", t.Name, "value", s.Value, "unit", s.Unit)
		}

		c.states[t.Name] = next
		return OutcomeRecovered

	case actionSuppress:
		c.states[t.Name] = next
		c.log.Debug("alert suppressed by cooldown",
			"target", t.Name,
			"value", s.Value,
			"last_alerted_at", st.LastAlertedAt,
		)
		return OutcomeSuppressed

	default:
		c.states[t.Name] = next
		return OutcomeNone
	}
}
