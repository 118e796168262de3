package domain

import (
	"errors"
	"fmt"
	"time"
)

var ErrUnknownTargetKind = errors.New("unknown target kind")

type TargetKind string

const (
	KindFilesystem TargetKind = "filesystem"
	KindDirectory  TargetKind = "directory"
	KindJournal    TargetKind = "journal"
)

func ParseTargetKind(s string) (TargetKind, error) {
	switch k := TargetKind(s); k {
	case KindFilesystem, KindDirectory, KindJournal:
		return k, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownTargetKind, s)
	}
}

const (
	UnitPercent = "%"
	UnitGB      = "GB"
)

// Target is one monitored storage resource. Targets are built from
// configuration at startup and never mutated afterwards.
type Target struct {
	Name      string
	Kind      TargetKind
	Path      string
	Threshold float64
	Cooldown  time.Duration
	Exclude   []string
}

// Unit is the unit Threshold and samples are expressed in: percent of
// capacity for filesystem targets, gigabytes for everything else.
func (t Target) Unit() string {
	if t.Kind == KindFilesystem {
		return UnitPercent
	}
	return UnitGB
}

// Sample is a single storage usage reading for a target.
type Sample struct {
	Value   float64
	Unit    string
	TakenAt time.Time

	// Capacity detail, populated for filesystem samples only.
	TotalGB float64
	FreeGB  float64
}
