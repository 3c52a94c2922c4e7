package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// SettingsFileName is the settings file name, both beside the executable
	// and in the per-user configuration directory.
	SettingsFileName = "dream_settings.toml"

	// AppDirName is the per-user configuration subdirectory.
	AppDirName = "dreamspinner"
)

// ResolvePath finds the settings file. A file beside the executable wins,
// then one in the user configuration directory. When neither exists an empty
// file is created in the user configuration directory.
func ResolvePath(exeDir, userConfigDir string) (string, error) {
	if exeDir != "" {
		candidate := filepath.Join(exeDir, SettingsFileName)
		if isFile(candidate) {
			return candidate, nil
		}
	}

	if userConfigDir == "" {
		return "", errors.New("unable to determine user configuration directory")
	}

	dir := filepath.Join(userConfigDir, AppDirName)
	path := filepath.Join(dir, SettingsFileName)
	if isFile(path) {
		return path, nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create settings file: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to create settings file: %w", err)
	}
	return path, nil
}

// DefaultPath resolves the settings path for the running executable and user.
func DefaultPath() (string, error) {
	var exeDir string
	if exe, err := os.Executable(); err == nil {
		exeDir = filepath.Dir(exe)
	}

	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get config directory: %w", err)
	}
	return ResolvePath(exeDir, configDir)
}

func isFile(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}
