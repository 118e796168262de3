package sampler

import (
	"context"
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v4/disk"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// Filesystem reports how full the filesystem containing Path is, as a
// percentage of its capacity.
type Filesystem struct {
	Path string
}

func (f *Filesystem) Sample(ctx context.Context) (domain.Sample, error) {
	usage, err := disk.UsageWithContext(ctx, f.Path)
	if err != nil {
		return domain.Sample{}, fmt.Errorf("stat filesystem %s: %w", f.Path, err)
	}

	percent := usage.UsedPercent
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	return domain.Sample{
		Value:   percent,
		Unit:    domain.UnitPercent,
		TakenAt: time.Now().UTC(),
		TotalGB: float64(usage.Total) / gib,
		FreeGB:  float64(usage.Free) / gib,
	}, nil
}
