// Package config handles the persisted dream settings and process environment.
package config

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
)

// DefaultDream is selected when no other selection is available.
const DefaultDream = "fractal_clock"

// PresentationMode controls how secondary screens are scheduled.
type PresentationMode string

const (
	// PresentationImmediate draws every screen within the primary's frame.
	PresentationImmediate PresentationMode = "immediate"
	// PresentationDeferred lets each screen draw and repaint on its own.
	PresentationDeferred PresentationMode = "deferred"
)

// ValidPresentationModes returns all valid presentation modes.
func ValidPresentationModes() []PresentationMode {
	return []PresentationMode{PresentationImmediate, PresentationDeferred}
}

// Title returns the label shown in the configuration editor.
func (m PresentationMode) Title() string {
	switch m {
	case PresentationDeferred:
		return "Deferred"
	default:
		return "Immediate"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler for TOML parsing.
func (m *PresentationMode) UnmarshalText(text []byte) error {
	switch mode := PresentationMode(text); mode {
	case PresentationImmediate, PresentationDeferred:
		*m = mode
		return nil
	default:
		return fmt.Errorf("invalid presentation mode %q, must be one of: %v", string(text), ValidPresentationModes())
	}
}

// MarshalText implements encoding.TextMarshaler for TOML output.
func (m PresentationMode) MarshalText() ([]byte, error) {
	return []byte(m), nil
}

// Settings holds everything persisted in dream_settings.toml.
type Settings struct {
	// DreamSettings maps a dream id to that dream's own serialized settings.
	// The blobs are opaque here; only the owning dream interprets them.
	DreamSettings map[string]string `toml:"dream_settings"`

	// SelectedDreams is the sorted set of dreams the user wants to see. Never empty.
	SelectedDreams []string `toml:"selected_dreams"`

	AttemptMultiscreen bool             `toml:"attempt_multiscreen"`
	ShowFPS            bool             `toml:"show_fps"`
	AllowDevDreams     bool             `toml:"allow_dev_dreams"` // No UI toggle, file edit only
	PresentationMode   PresentationMode `toml:"presentation_mode"`
	ColorScheme        string           `toml:"color_scheme"`
}

// DefaultSettings returns Settings with default values.
func DefaultSettings() *Settings {
	return &Settings{
		DreamSettings:      make(map[string]string),
		SelectedDreams:     []string{DefaultDream},
		AttemptMultiscreen: false,
		ShowFPS:            false,
		AllowDevDreams:     false,
		PresentationMode:   PresentationImmediate,
		ColorScheme:        colorscheme.DefaultName,
	}
}

// Unmarshal parses settings text on top of the defaults.
// Empty input yields the defaults.
func Unmarshal(data []byte) (*Settings, error) {
	s, _, err := decode(data)
	return s, err
}

// decode parses settings and reports whether an empty selection had to be
// replaced with the default dream.
func decode(data []byte) (*Settings, bool, error) {
	s := DefaultSettings()
	if len(bytes.TrimSpace(data)) == 0 {
		return s, false, nil
	}
	if err := toml.Unmarshal(data, s); err != nil {
		return nil, false, err
	}
	s.normalize()

	repaired := false
	if len(s.SelectedDreams) == 0 {
		s.SelectedDreams = []string{DefaultDream}
		repaired = true
	}
	return s, repaired, nil
}

// Marshal returns the TOML form of the settings.
func (s *Settings) Marshal() ([]byte, error) {
	return toml.Marshal(s)
}

// normalize restores the canonical in-memory form: a non-nil blob map, a
// sorted duplicate-free selection and non-empty enum fields.
func (s *Settings) normalize() {
	if s.DreamSettings == nil {
		s.DreamSettings = make(map[string]string)
	}
	slices.Sort(s.SelectedDreams)
	s.SelectedDreams = slices.Compact(s.SelectedDreams)
	if s.PresentationMode == "" {
		s.PresentationMode = PresentationImmediate
	}
	if s.ColorScheme == "" {
		s.ColorScheme = colorscheme.DefaultName
	}
}

// Clone returns a deep copy.
func (s *Settings) Clone() *Settings {
	c := *s
	c.DreamSettings = maps.Clone(s.DreamSettings)
	if c.DreamSettings == nil {
		c.DreamSettings = make(map[string]string)
	}
	c.SelectedDreams = slices.Clone(s.SelectedDreams)
	return &c
}

// Equal reports whether two settings are structurally identical.
func (s *Settings) Equal(other *Settings) bool {
	if s == nil || other == nil {
		return s == other
	}
	return maps.Equal(s.DreamSettings, other.DreamSettings) &&
		slices.Equal(s.SelectedDreams, other.SelectedDreams) &&
		s.AttemptMultiscreen == other.AttemptMultiscreen &&
		s.ShowFPS == other.ShowFPS &&
		s.AllowDevDreams == other.AllowDevDreams &&
		s.PresentationMode == other.PresentationMode &&
		s.ColorScheme == other.ColorScheme
}

// IsSelected reports whether id is in the selection.
func (s *Settings) IsSelected(id string) bool {
	_, found := slices.BinarySearch(s.SelectedDreams, id)
	return found
}

// Select adds id to the selection.
func (s *Settings) Select(id string) {
	i, found := slices.BinarySearch(s.SelectedDreams, id)
	if !found {
		s.SelectedDreams = slices.Insert(s.SelectedDreams, i, id)
	}
}

// Deselect removes id from the selection. Removing the last selected dream is
// refused; it returns whether the selection changed.
func (s *Settings) Deselect(id string) bool {
	i, found := slices.BinarySearch(s.SelectedDreams, id)
	if !found || len(s.SelectedDreams) <= 1 {
		return false
	}
	s.SelectedDreams = slices.Delete(s.SelectedDreams, i, i+1)
	return true
}
