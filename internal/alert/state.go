// Package alert
package alert

import (
	"time"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// State is the alert state of one target. The zero value is a healthy
// target that has never alerted.
type State struct {
	Alerting      bool
	LastAlertedAt time.Time
}

type action int

const (
	actionNone action = iota
	actionAlert
	actionSuppress
	actionRecover
)

// transition computes the next state for one observed sample. It has no
// side effects; callers commit the returned state only after any required
// notification actually went out.
func transition(st State, t domain.Target, s domain.Sample, now time.Time) (State, action) {
	if s.Value >= t.Threshold {
		if !st.Alerting || now.Sub(st.LastAlertedAt) >= t.Cooldown {
			return State{Alerting: true, LastAlertedAt: now}, actionAlert
		}
		return st, actionSuppress
	}

	if st.Alerting {
		return State{}, actionRecover
	}
	return st, actionNone
}
