package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds process environment overrides.
type Env struct {
	// SettingsPath overrides settings file discovery when set.
	SettingsPath string `env:"DREAMSPINNER_SETTINGS"`
	LogLevel     string `env:"DREAMSPINNER_LOG_LEVEL" envDefault:"warn"`
	// FPSSamples is the number of frame intervals averaged per FPS report.
	FPSSamples int `env:"DREAMSPINNER_FPS_SAMPLES" envDefault:"60"`
}

// ParseEnv reads the environment into an Env.
func ParseEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return Env{}, fmt.Errorf("failed to parse environment: %w", err)
	}
	if e.FPSSamples < 2 {
		return Env{}, fmt.Errorf("DREAMSPINNER_FPS_SAMPLES must be at least 2, got %d", e.FPSSamples)
	}
	if _, err := parseLevel(e.LogLevel); err != nil {
		return Env{}, err
	}
	return e, nil
}

// Level returns the configured log level, defaulting to warn.
func (e Env) Level() slog.Level {
	level, err := parseLevel(e.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return level
}

func parseLevel(s string) (slog.Level, error) {
	if strings.TrimSpace(s) == "" {
		return slog.LevelWarn, nil
	}
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid DREAMSPINNER_LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
