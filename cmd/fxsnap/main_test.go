package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"backdrop/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSize(t *testing.T) {
	w, h, err := parseSize("320X200")
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 200, h)

	for _, bad := range []string{"320", "ax2", "2xb", "0x10", "-1x5"} {
		_, _, err := parseSize(bad)
		assert.Error(t, err, bad)
	}
}

func TestRenderAllWritesFrames(t *testing.T) {
	dir := t.TempDir()
	job := renderJob{cfg: config.Default(), w: 64, h: 48, frames: 6, every: 3, seed: 1, out: dir, scale: 1}

	n, err := renderAll(context.Background(), job, []string{"spheres", "matrix", "waves"}, 2)
	require.NoError(t, err)
	assert.Equal(t, 6, n)

	for _, name := range []string{"spheres", "matrix", "waves"} {
		entries, err := os.ReadDir(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Len(t, entries, 2)
		_, err = os.Stat(filepath.Join(dir, name, name+"-000003.png"))
		assert.NoError(t, err)
	}
}

func TestRenderAllUnknownEffect(t *testing.T) {
	job := renderJob{cfg: config.Default(), w: 8, h: 8, frames: 1, every: 1, out: t.TempDir()}
	_, err := renderAll(context.Background(), job, []string{"stars"}, 0)
	assert.ErrorContains(t, err, `stars: fx: unknown effect "stars"`)
}

func TestRenderAllStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	job := renderJob{cfg: config.Default(), w: 8, h: 8, frames: 100, every: 1, out: t.TempDir()}
	n, err := renderAll(ctx, job, []string{"cubes"}, 0)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, n)
}
