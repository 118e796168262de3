package notify

import (
	"fmt"
	"strings"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

func formatAlert(serverName string, ev domain.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🚨 **%s - %s** usage above threshold\n", serverName, ev.Target)
	fmt.Fprintf(&b, "Current: %.2f %s\n", ev.Value, ev.Unit)
	fmt.Fprintf(&b, "Threshold: %.2f %s", ev.Threshold, ev.Unit)

	if ev.Path != "" {
		fmt.Fprintf(&b, "\nPath: %s", ev.Path)
	}
	if ev.Unit == domain.UnitPercent && ev.TotalGB > 0 {
		fmt.Fprintf(&b, "\nFree: %.1f GB of %.1f GB", ev.FreeGB, ev.TotalGB)
	}

	return b.String()
}

func formatRecovery(serverName string, ev domain.Event) string {
	var b strings.Builder

	fmt.Fprintf(&b, "✅ **%s - %s** back below threshold\n", serverName, ev.Target)
	fmt.Fprintf(&b, "Current: %.2f %s\n", ev.Value, ev.Unit)
	fmt.Fprintf(&b, "Threshold: %.2f %s", ev.Threshold, ev.Unit)

	return b.String()
}
