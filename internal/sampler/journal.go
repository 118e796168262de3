package sampler

import (
	"context"
	"fmt"
	"os/exec"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

// Journal reports systemd journal disk usage in GB, as printed by
// "journalctl --disk-usage".
type Journal struct{}

// journalctl prints e.g. "Archived and active journals take up 1.6G in the
// file system."; the size token may carry a K/M/G/T suffix or none at all.
var journalSizeRe = regexp.MustCompile(`take up (\d+(?:\.\d+)?)\s*([KMGT]?)`)

func (j *Journal) Sample(ctx context.Context) (domain.Sample, error) {
	out, err := exec.CommandContext(ctx, "journalctl", "--disk-usage").Output()
	if err != nil {
		return domain.Sample{}, fmt.Errorf("journalctl --disk-usage: %w", err)
	}

	sizeGB, err := parseJournalUsage(string(out))
	if err != nil {
		return domain.Sample{}, err
	}

	return domain.Sample{
		Value:   sizeGB,
		Unit:    domain.UnitGB,
		TakenAt: time.Now().UTC(),
	}, nil
}

func parseJournalUsage(out string) (float64, error) {
	m := journalSizeRe.FindStringSubmatch(out)
	if m == nil {
		return 0, fmt.Errorf("unexpected journalctl output: %q", strings.TrimSpace(out))
	}

	size, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, fmt.Errorf("parse journal size %q: %w", m[1], err)
	}

	switch m[2] {
	case "T":
		size *= 1024
	case "G":
	case "M":
		size /= 1024
	case "K":
		size /= 1024 * 1024
	default:
		// Bare number means bytes.
		size /= gib
	}

	return size, nil
}
