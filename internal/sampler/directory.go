package sampler

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// Directory reports the cumulative size of a directory tree in GB.
// Entries under an Exclude prefix are skipped, as are entries that
// disappear or turn unreadable mid-walk.
type Directory struct {
	Root    string
	Exclude []string
}

func (d *Directory) Sample(ctx context.Context) (domain.Sample, error) {
	if _, err := os.Stat(d.Root); err != nil {
		return domain.Sample{}, fmt.Errorf("stat directory %s: %w", d.Root, err)
	}

	var totalBytes int64

	err := filepath.WalkDir(d.Root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			// Unreadable subtrees count as zero rather than failing
			// the whole sample.
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		if entry.IsDir() {
			if d.excluded(path) {
				return fs.SkipDir
			}
			return nil
		}
		if !entry.Type().IsRegular() {
			return nil
		}

		info, err := entry.Info()
		if err != nil {
			return nil
		}
		totalBytes += info.Size()
		return nil
	})
	if err != nil {
		return domain.Sample{}, fmt.Errorf("walk %s: %w", d.Root, err)
	}

	return domain.Sample{
		Value:   float64(totalBytes) / gib,
		Unit:    domain.UnitGB,
		TakenAt: time.Now().UTC(),
	}, nil
}

func (d *Directory) excluded(path string) bool {
	for _, ex := range d.Exclude {
		if path == ex || strings.HasPrefix(path, ex+string(os.PathSeparator)) {
			return true
		}
	}
	return false
}
