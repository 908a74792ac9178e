package routes

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Rate-JP/metal-rookie-bot/internal/logging"
)

// TestNewSource_MissingFileIsNotFatal verifies the source starts empty
// when the file does not exist yet.
func TestNewSource_MissingFileIsNotFatal(t *testing.T) {
	s := NewSource(filepath.Join(t.TempDir(), "nope.jsonc"), logging.NewNop())
	_, ok := s.Map()
	assert.False(t, ok)
}

// TestWatch_ReloadsOnWrite writes a new map over the old one and waits
// for the watcher to swap it in.
func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(testMap), 0o644))

	s := NewSource(path, logging.NewNop())
	m, ok := s.Map()
	require.True(t, ok)
	require.Len(t, m.Names(), 6)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(200 * time.Millisecond)

	smaller := `{"nodes": [{"name": "北の町", "continent": "北大陸", "is_rura": true}], "edges": []}`
	require.NoError(t, os.WriteFile(path, []byte(smaller), 0o644))

	assert.Eventually(t, func() bool {
		m, ok := s.Map()
		return ok && len(m.Names()) == 1
	}, 10*time.Second, 100*time.Millisecond, "watcher never picked up the rewrite")

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}

// TestWatch_KeepsOldMapOnBrokenWrite verifies a bad save leaves the last
// good map in place.
func TestWatch_KeepsOldMapOnBrokenWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "map.jsonc")
	require.NoError(t, os.WriteFile(path, []byte(testMap), 0o644))

	s := NewSource(path, logging.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Watch(ctx) }()
	time.Sleep(200 * time.Millisecond)

	require.NoError(t, os.WriteFile(path, []byte(`{broken`), 0o644))
	time.Sleep(1 * time.Second)

	m, ok := s.Map()
	require.True(t, ok)
	assert.Len(t, m.Names(), 6)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
}
