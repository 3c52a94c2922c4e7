package config

import (
	"log/slog"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv_Defaults(t *testing.T) {
	clearEnv(t)

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Empty(t, e.SettingsPath)
	assert.Equal(t, slog.LevelWarn, e.Level())
	assert.Equal(t, 60, e.FPSSamples)
}

func TestParseEnv_Overrides(t *testing.T) {
	t.Setenv("DREAMSPINNER_SETTINGS", "/tmp/dreams.toml")
	t.Setenv("DREAMSPINNER_LOG_LEVEL", "debug")
	t.Setenv("DREAMSPINNER_FPS_SAMPLES", "10")

	e, err := ParseEnv()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/dreams.toml", e.SettingsPath)
	assert.Equal(t, slog.LevelDebug, e.Level())
	assert.Equal(t, 10, e.FPSSamples)
}

func TestParseEnv_Invalid(t *testing.T) {
	tests := []struct {
		name, key, value string
	}{
		{"samples not a number", "DREAMSPINNER_FPS_SAMPLES", "many"},
		{"samples too small", "DREAMSPINNER_FPS_SAMPLES", "1"},
		{"bad level", "DREAMSPINNER_LOG_LEVEL", "loud"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := ParseEnv()
			assert.Error(t, err)
		})
	}
}

// clearEnv unsets the variables for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{"DREAMSPINNER_SETTINGS", "DREAMSPINNER_LOG_LEVEL", "DREAMSPINNER_FPS_SAMPLES"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}
