package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is the payload handed to notifiers when a target crosses its
// threshold in either direction. It carries everything a message format
// needs so notifiers never reach back into monitor state.
type Event struct {
	TraceID   uuid.UUID
	Target    string
	Kind      TargetKind
	Path      string
	Value     float64
	Unit      string
	Threshold float64
	TotalGB   float64
	FreeGB    float64
	At        time.Time
}

func NewEvent(t Target, s Sample) Event {
	return Event{
		TraceID:   uuid.New(),
		Target:    t.Name,
		Kind:      t.Kind,
		Path:      t.Path,
		Value:     s.Value,
		Unit:      s.Unit,
		Threshold: t.Threshold,
		TotalGB:   s.TotalGB,
		FreeGB:    s.FreeGB,
		At:        s.TakenAt,
	}
}
