package colorscheme

import (
	"embed"
	"fmt"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed data/schemes.yaml
var embeddedSchemes embed.FS

// DefaultName is the name of the built-in fallback scheme.
const DefaultName = "None"

// PaletteSize is the number of palette entries in a scheme.
const PaletteSize = 16

// Scheme is a named set of colors.
type Scheme struct {
	Name       string
	Colors     [PaletteSize]Color
	Foreground Color
	Background Color
	Cursor     Color
}

// schemeText mirrors the YAML layout; colors are parsed after decoding so a
// malformed entry can be reported with the scheme name.
type schemeText struct {
	Name       string   `yaml:"name"`
	Foreground string   `yaml:"foreground"`
	Background string   `yaml:"background"`
	Cursor     string   `yaml:"cursor"`
	Colors     []string `yaml:"colors"`
}

// Default returns the built-in scheme used when nothing else is configured.
func Default() Scheme {
	var s Scheme
	s.Name = DefaultName
	for i := range s.Colors {
		s.Colors[i] = RGB(0, 0, 0)
	}
	s.Foreground = RGB(200, 200, 200)
	s.Background = RGB(0, 0, 0)
	s.Cursor = RGB(0, 200, 200)
	return s
}

var (
	bundledOnce sync.Once
	bundled     map[string]Scheme
	bundledErr  error
)

// Parse decodes a YAML scheme list.
func Parse(data []byte) (map[string]Scheme, error) {
	var texts []schemeText
	if err := yaml.Unmarshal(data, &texts); err != nil {
		return nil, fmt.Errorf("failed to parse color schemes: %w", err)
	}

	schemes := make(map[string]Scheme, len(texts))
	for _, t := range texts {
		s, err := t.toScheme()
		if err != nil {
			return nil, err
		}
		schemes[s.Name] = s
	}
	return schemes, nil
}

func (t schemeText) toScheme() (Scheme, error) {
	if t.Name == "" {
		return Scheme{}, fmt.Errorf("color scheme without a name")
	}
	if len(t.Colors) != PaletteSize {
		return Scheme{}, fmt.Errorf("color scheme %q: want %d colors, got %d", t.Name, PaletteSize, len(t.Colors))
	}

	s := Scheme{Name: t.Name}
	var err error
	for i, hex := range t.Colors {
		if s.Colors[i], err = ParseHex(hex); err != nil {
			return Scheme{}, fmt.Errorf("color scheme %q: %w", t.Name, err)
		}
	}
	if s.Foreground, err = ParseHex(t.Foreground); err != nil {
		return Scheme{}, fmt.Errorf("color scheme %q: %w", t.Name, err)
	}
	if s.Background, err = ParseHex(t.Background); err != nil {
		return Scheme{}, fmt.Errorf("color scheme %q: %w", t.Name, err)
	}
	if s.Cursor, err = ParseHex(t.Cursor); err != nil {
		return Scheme{}, fmt.Errorf("color scheme %q: %w", t.Name, err)
	}
	return s, nil
}

func loadBundled() (map[string]Scheme, error) {
	bundledOnce.Do(func() {
		data, err := embeddedSchemes.ReadFile("data/schemes.yaml")
		if err != nil {
			bundledErr = err
			return
		}
		bundled, bundledErr = Parse(data)
		if bundledErr == nil {
			bundled[DefaultName] = Default()
		}
	})
	return bundled, bundledErr
}

// Names returns the default scheme name followed by the bundled names in
// alphabetical order.
func Names() []string {
	schemes, err := loadBundled()
	if err != nil {
		return []string{DefaultName}
	}
	names := make([]string, 0, len(schemes))
	for name := range schemes {
		if name != DefaultName {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return append([]string{DefaultName}, names...)
}

// Lookup returns the scheme with the given name and whether it exists.
func Lookup(name string) (Scheme, bool) {
	schemes, err := loadBundled()
	if err != nil {
		return Default(), name == DefaultName
	}
	s, ok := schemes[name]
	if !ok {
		return Default(), false
	}
	return s, true
}

// Resolve returns the named scheme, or the default when the name is unknown.
func Resolve(name string) Scheme {
	s, _ := Lookup(name)
	return s
}
