package sampler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseJournalUsage(t *testing.T) {
	tests := []struct {
		name string
		out  string
		want float64
	}{
		{
			name: "gigabytes",
			out:  "Archived and active journals take up 1.6G in the file system.",
			want: 1.6,
		},
		{
			name: "megabytes",
			out:  "Archived and active journals take up 512.0M in the file system.",
			want: 0.5,
		},
		{
			name: "kilobytes",
			out:  "Archived and active journals take up 800K in the file system.",
			want: 800.0 / 1024 / 1024,
		},
		{
			name: "terabytes",
			out:  "Archived and active journals take up 2.5T in the file system.",
			want: 2560,
		},
		{
			name: "bare bytes",
			out:  "Archived and active journals take up 4096 in the file system.",
			want: 4096.0 / gib,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseJournalUsage(tt.out)

			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestParseJournalUsageRejectsUnknownOutput(t *testing.T) {
	_, err := parseJournalUsage("No journal files were found.")

	assert.Error(t, err)
}
