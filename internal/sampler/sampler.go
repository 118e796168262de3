// Package sampler
package sampler

import (
	"context"
	"fmt"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

const gib = 1024 * 1024 * 1024

// Sampler produces one storage usage reading per call. Implementations are
// stateless; all scheduling lives in the monitor loop.
type Sampler interface {
	Sample(ctx context.Context) (domain.Sample, error)
}

func New(t domain.Target) (Sampler, error) {
	switch t.Kind {
	case domain.KindFilesystem:
		return &Filesystem{Path: t.Path}, nil
	case domain.KindDirectory:
		return &Directory{Root: t.Path, Exclude: t.Exclude}, nil
	case domain.KindJournal:
		return &Journal{}, nil
	default:
		return nil, fmt.Errorf("target %q: %w", t.Name, domain.ErrUnknownTargetKind)
	}
}

// ForTargets builds one sampler per target, keyed by target name.
func ForTargets(targets []domain.Target) (map[string]Sampler, error) {
	samplers := make(map[string]Sampler, len(targets))
	for _, t := range targets {
		s, err := New(t)
		if err != nil {
			return nil, err
		}
		samplers[t.Name] = s
	}
	return samplers, nil
}
