package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePath(t *testing.T) {
	t.Run("beside executable wins", func(t *testing.T) {
		exeDir := t.TempDir()
		cfgDir := t.TempDir()
		local := filepath.Join(exeDir, SettingsFileName)
		require.NoError(t, os.WriteFile(local, nil, 0644))

		path, err := ResolvePath(exeDir, cfgDir)
		require.NoError(t, err)
		assert.Equal(t, local, path)
		assert.NoDirExists(t, filepath.Join(cfgDir, AppDirName))
	})

	t.Run("existing user file", func(t *testing.T) {
		cfgDir := t.TempDir()
		want := filepath.Join(cfgDir, AppDirName, SettingsFileName)
		require.NoError(t, os.MkdirAll(filepath.Dir(want), 0755))
		require.NoError(t, os.WriteFile(want, []byte("show_fps = true\n"), 0644))

		path, err := ResolvePath(t.TempDir(), cfgDir)
		require.NoError(t, err)
		assert.Equal(t, want, path)

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "show_fps = true\n", string(data))
	})

	t.Run("creates empty user file", func(t *testing.T) {
		cfgDir := t.TempDir()

		path, err := ResolvePath("", cfgDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cfgDir, AppDirName, SettingsFileName), path)

		info, err := os.Stat(path)
		require.NoError(t, err)
		assert.Zero(t, info.Size())
	})

	t.Run("directory named like settings is ignored", func(t *testing.T) {
		exeDir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(exeDir, SettingsFileName), 0755))
		cfgDir := t.TempDir()

		path, err := ResolvePath(exeDir, cfgDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(cfgDir, AppDirName, SettingsFileName), path)
	})

	t.Run("no config dir", func(t *testing.T) {
		_, err := ResolvePath(t.TempDir(), "")
		assert.Error(t, err)
	})
}
