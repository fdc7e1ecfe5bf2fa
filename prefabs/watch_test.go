package prefabs

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatcherReportsSpecChanges(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("ignored"), 0o644))
	target := filepath.Join(dir, "camera.yaml")
	require.NoError(t, os.WriteFile(target, []byte("name: camera\n"), 0o644))

	select {
	case got := <-w.Events:
		assert.Equal(t, target, got.Path)
		assert.Equal(t, ChangeSpec, got.Kind)
		assert.Equal(t, CameraFile, got.File())
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
}

func TestWatcherCoalescesBurst(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWatcher(dir)
	require.NoError(t, err)
	defer w.Close()

	target := filepath.Join(dir, "look_curve.tengo")
	for i := range 5 {
		require.NoError(t, os.WriteFile(target, []byte{byte('0' + i)}, 0o644))
	}

	select {
	case got := <-w.Events:
		assert.Equal(t, ChangeScript, got.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for watcher event")
	}
	select {
	case got := <-w.Events:
		t.Fatalf("unexpected second event %v", got)
	case <-time.After(3 * settle):
	}
}

func TestWatcherMissingDir(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestWatcherCloseIsIdempotent(t *testing.T) {
	w, err := NewWatcher(t.TempDir())
	require.NoError(t, err)
	assert.NoError(t, w.Close())
	assert.NoError(t, w.Close())
	_, ok := <-w.Events
	assert.False(t, ok)
}

func TestFileFilters(t *testing.T) {
	assert.True(t, isSpecFile("prefabs/camera.yaml"))
	assert.True(t, isSpecFile("a.YML"))
	assert.False(t, isSpecFile("a.json"))
	assert.True(t, isScriptFile("scripts/look_curve.tengo"))
	assert.False(t, isScriptFile("x.lua"))
}
