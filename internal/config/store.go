package config

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"sync"
)

// Store owns the in-memory settings and their backing file. Settings are read
// lazily on first access and written back only on Save.
type Store struct {
	path   string
	logger *slog.Logger

	mu       sync.RWMutex
	settings *Settings
	loaded   bool
}

// NewStore creates a store backed by the file at path.
func NewStore(path string, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		path:   path,
		logger: logger,
	}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the backing file if it has not been read yet.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.loaded {
		return nil
	}
	return s.loadLocked(false)
}

// Reload re-reads the backing file, discarding unsaved changes. An empty or
// missing file is taken to be mid-rewrite and keeps the current settings.
func (s *Store) Reload() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadLocked(s.loaded)
}

func (s *Store) loadLocked(keepOnEmpty bool) error {
	data, err := os.ReadFile(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to read settings file: %w", err)
	}
	if keepOnEmpty && len(bytes.TrimSpace(data)) == 0 {
		s.logger.Debug("settings file empty, keeping current settings", "path", s.path)
		return nil
	}

	settings, repaired, err := decode(data)
	if err != nil {
		return fmt.Errorf("failed to parse settings file %s: %w", s.path, err)
	}
	if repaired {
		s.logger.Warn("no dreams selected, falling back to default",
			"path", s.path,
			"dream", DefaultDream,
		)
	}

	s.settings = settings
	s.loaded = true
	s.logger.Debug("loaded settings",
		"path", s.path,
		"selected", settings.SelectedDreams,
		"multiscreen", settings.AttemptMultiscreen,
		"mode", settings.PresentationMode,
	)
	return nil
}

func (s *Store) ensureLoaded() error {
	s.mu.RLock()
	loaded := s.loaded
	s.mu.RUnlock()

	if loaded {
		return nil
	}
	return s.Load()
}

// Read calls fn with the current settings under a shared lock. fn must not
// retain or modify the settings.
func (s *Store) Read(fn func(*Settings)) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.settings)
	return nil
}

// Write calls fn with the current settings under an exclusive lock. An update
// that leaves the selection empty has its selection restored.
func (s *Store) Write(fn func(*Settings)) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	previous := slices.Clone(s.settings.SelectedDreams)
	fn(s.settings)
	s.settings.normalize()
	if len(s.settings.SelectedDreams) == 0 {
		s.logger.Warn("refusing to clear dream selection", "selected", previous)
		s.settings.SelectedDreams = previous
	}
	return nil
}

// Snapshot returns a deep copy of the current settings.
func (s *Store) Snapshot() (*Settings, error) {
	var snapshot *Settings
	err := s.Read(func(settings *Settings) {
		snapshot = settings.Clone()
	})
	return snapshot, err
}

// Save overwrites the backing file with the current settings and returns the
// snapshot that was written.
func (s *Store) Save() (*Settings, error) {
	snapshot, err := s.Snapshot()
	if err != nil {
		return nil, err
	}

	data, err := snapshot.Marshal()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return nil, fmt.Errorf("failed to write settings file: %w", err)
	}

	s.logger.Debug("saved settings", "path", s.path, "bytes", len(data))
	return snapshot, nil
}
