package chart

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/i474232898/weather-bot/internal/format"
)

func TestRender(t *testing.T) {
	r, err := NewRenderer(filepath.Join(t.TempDir(), "plots"))
	require.NoError(t, err)

	series := format.Series{{Label: "28", Value: 7}, {Label: "29", Value: 8}, {Label: "30", Value: -2}}
	path, err := r.Render(series, format.Labels{Title: "Temperature plot", XLabel: "Days", YLabel: "Temperature, °C"})
	require.NoError(t, err)

	assert.Equal(t, r.Dir(), filepath.Dir(path))
	assert.True(t, strings.HasSuffix(path, ".png"))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(raw), 8)
	assert.Equal(t, "\x89PNG", string(raw[:4]))

	other, err := r.Render(series, format.Labels{})
	require.NoError(t, err)
	assert.NotEqual(t, path, other)
}

func TestRender_Empty(t *testing.T) {
	r, err := NewRenderer(t.TempDir())
	require.NoError(t, err)

	_, err = r.Render(nil, format.Labels{})
	assert.ErrorIs(t, err, errEmptySeries)
}

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	r, err := NewRenderer(dir)
	require.NoError(t, err)

	stale := filepath.Join(dir, "stale.png")
	fresh := filepath.Join(dir, "fresh.png")
	keep := filepath.Join(dir, "notes.txt")
	for _, p := range []string{stale, fresh, keep} {
		require.NoError(t, os.WriteFile(p, []byte("x"), 0o644))
	}
	old := time.Now().Add(-2 * time.Hour)
	require.NoError(t, os.Chtimes(stale, old, old))
	require.NoError(t, os.Chtimes(keep, old, old))

	removed, err := r.Sweep(time.Hour)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)

	assert.NoFileExists(t, stale)
	assert.FileExists(t, fresh)
	assert.FileExists(t, keep)
}
