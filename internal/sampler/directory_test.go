package sampler

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tellor-io/node-storage-monitor/internal/domain"
)

func writeTestFile(t *testing.T, path string, size int) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, bytes.Repeat([]byte{0xAB}, size), 0o644))
}

func TestDirectorySampleSumsRegularFiles(t *testing.T) {
	// Arrange
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.bin"), 4096)
	writeTestFile(t, filepath.Join(root, "sub", "b.bin"), 8192)

	d := &Directory{Root: root}

	// Act
	s, err := d.Sample(context.Background())

	// Assert
	require.NoError(t, err)
	assert.Equal(t, domain.UnitGB, s.Unit)
	assert.InDelta(t, float64(4096+8192)/gib, s.Value, 1e-12)
	assert.False(t, s.TakenAt.IsZero())
}

func TestDirectorySampleSkipsExcludedSubtrees(t *testing.T) {
	// Arrange
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "keep.bin"), 4096)
	writeTestFile(t, filepath.Join(root, "snapshots", "blob.bin"), 8192)

	d := &Directory{
		Root:    root,
		Exclude: []string{filepath.Join(root, "snapshots")},
	}

	// Act
	s, err := d.Sample(context.Background())

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 4096.0/gib, s.Value, 1e-12)
}

func TestDirectorySampleIgnoresSymlinks(t *testing.T) {
	// Arrange
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "real.bin"), 4096)
	require.NoError(t, os.Symlink(filepath.Join(root, "real.bin"), filepath.Join(root, "link.bin")))

	d := &Directory{Root: root}

	// Act
	s, err := d.Sample(context.Background())

	// Assert
	require.NoError(t, err)
	assert.InDelta(t, 4096.0/gib, s.Value, 1e-12)
}

func TestDirectorySampleMissingRootFails(t *testing.T) {
	d := &Directory{Root: filepath.Join(t.TempDir(), "gone")}

	_, err := d.Sample(context.Background())

	assert.Error(t, err)
}

func TestDirectorySampleHonorsCancellation(t *testing.T) {
	// Arrange
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.bin"), 4096)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := &Directory{Root: root}

	// Act
	_, err := d.Sample(ctx)

	// Assert
	assert.ErrorIs(t, err, context.Canceled)
}
