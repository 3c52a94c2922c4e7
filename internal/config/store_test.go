package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LazyLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("show_fps = true\n"), 0644))

	store := NewStore(path, nil)

	// Changing the file before first access is observed
	require.NoError(t, os.WriteFile(path, []byte("attempt_multiscreen = true\n"), 0644))

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.AttemptMultiscreen)
	assert.False(t, snap.ShowFPS)
}

func TestStore_MissingFileGivesDefaults(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), "absent.toml"), nil)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.True(t, DefaultSettings().Equal(snap))
}

func TestStore_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("[[[["), 0644))

	store := NewStore(path, nil)
	err := store.Read(func(*Settings) {})
	assert.Error(t, err)
}

func TestStore_WriteIsNotPersistedUntilSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store := NewStore(path, nil)
	require.NoError(t, store.Write(func(s *Settings) {
		s.ShowFPS = true
		s.Select("solid_color")
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Empty(t, data)

	saved, err := store.Save()
	require.NoError(t, err)
	assert.True(t, saved.ShowFPS)

	reloaded := NewStore(path, nil)
	snap, err := reloaded.Snapshot()
	require.NoError(t, err)
	assert.True(t, saved.Equal(snap))
}

func TestStore_SaveTwiceIsByteIdentical(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	store := NewStore(path, nil)
	require.NoError(t, store.Write(func(s *Settings) {
		s.DreamSettings["solid_color"] = "color = \"#00FF00FF\"\n"
		s.PresentationMode = PresentationDeferred
	}))

	_, err := store.Save()
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	require.NoError(t, store.Reload())
	_, err = store.Save()
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestStore_WriteRefusesEmptySelection(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), SettingsFileName), nil)

	require.NoError(t, store.Write(func(s *Settings) {
		s.SelectedDreams = nil
	}))

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, []string{DefaultDream}, snap.SelectedDreams)
}

func TestStore_ReloadDiscardsUnsaved(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("show_fps = false\n"), 0644))
	store := NewStore(path, nil)
	require.NoError(t, store.Write(func(s *Settings) { s.ShowFPS = true }))

	require.NoError(t, store.Reload())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.False(t, snap.ShowFPS)
}

func TestStore_ReloadFailureKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, []byte("show_fps = true\n"), 0644))
	store := NewStore(path, nil)
	require.NoError(t, store.Load())

	require.NoError(t, os.WriteFile(path, []byte("show_fps = "), 0644))
	assert.Error(t, store.Reload())

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.True(t, snap.ShowFPS)
}

func TestStore_ReloadEmptyKeepsPrevious(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	data := "selected_dreams = [\"solid_color\"]\nshow_fps = true\n\n[dream_settings]\nsolid_color = \"color = '#00FF00FF'\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))
	store := NewStore(path, nil)
	require.NoError(t, store.Load())
	before, err := store.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []string{"solid_color"}, before.SelectedDreams)
	require.Len(t, before.DreamSettings, 1)

	// A rewrite truncates the file before the new content lands
	require.NoError(t, os.WriteFile(path, nil, 0644))
	require.NoError(t, store.Reload())

	after, err := store.Snapshot()
	require.NoError(t, err)
	assert.True(t, before.Equal(after))

	require.NoError(t, os.Remove(path))
	require.NoError(t, store.Reload())
	after, err = store.Snapshot()
	require.NoError(t, err)
	assert.True(t, before.Equal(after))
}

func TestWatcher_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFileName)
	require.NoError(t, os.WriteFile(path, nil, 0644))

	store := NewStore(path, nil)
	require.NoError(t, store.Load())

	changed := make(chan struct{}, 8)
	w, err := NewWatcher(store, func() { changed <- struct{}{} }, nil)
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer func() { _ = w.Stop() }()

	require.NoError(t, os.WriteFile(path, []byte("show_fps = true\n"), 0644))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for reload")
	}

	assert.Eventually(t, func() bool {
		snap, err := store.Snapshot()
		return err == nil && snap.ShowFPS
	}, 2*time.Second, 20*time.Millisecond)
}

func TestWatcher_StopIdempotent(t *testing.T) {
	store := NewStore(filepath.Join(t.TempDir(), SettingsFileName), nil)
	w, err := NewWatcher(store, nil, nil)
	require.NoError(t, err)

	require.NoError(t, w.Start())
	require.NoError(t, w.Stop())
	require.NoError(t, w.Stop())
}
