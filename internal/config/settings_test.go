package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	assert.Equal(t, []string{DefaultDream}, s.SelectedDreams)
	assert.NotNil(t, s.DreamSettings)
	assert.False(t, s.AttemptMultiscreen)
	assert.False(t, s.ShowFPS)
	assert.False(t, s.AllowDevDreams)
	assert.Equal(t, PresentationImmediate, s.PresentationMode)
	assert.Equal(t, "None", s.ColorScheme)
}

func TestUnmarshal_Empty(t *testing.T) {
	for _, input := range []string{"", "   \n\t"} {
		s, err := Unmarshal([]byte(input))
		require.NoError(t, err)
		assert.True(t, DefaultSettings().Equal(s))
	}
}

func TestUnmarshal_Fields(t *testing.T) {
	data := `
selected_dreams = ["solid_color", "fractal_clock", "solid_color"]
attempt_multiscreen = true
show_fps = true
allow_dev_dreams = true
presentation_mode = "deferred"
color_scheme = "Nord"

[dream_settings]
solid_color = "color = \"#FF0000FF\"\n"
`
	s, err := Unmarshal([]byte(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"fractal_clock", "solid_color"}, s.SelectedDreams)
	assert.True(t, s.AttemptMultiscreen)
	assert.True(t, s.ShowFPS)
	assert.True(t, s.AllowDevDreams)
	assert.Equal(t, PresentationDeferred, s.PresentationMode)
	assert.Equal(t, "Nord", s.ColorScheme)
	assert.Equal(t, "color = \"#FF0000FF\"\n", s.DreamSettings["solid_color"])
}

func TestUnmarshal_PartialKeepsDefaults(t *testing.T) {
	s, err := Unmarshal([]byte("show_fps = true\n"))
	require.NoError(t, err)

	assert.True(t, s.ShowFPS)
	assert.Equal(t, []string{DefaultDream}, s.SelectedDreams)
	assert.Equal(t, PresentationImmediate, s.PresentationMode)
}

func TestUnmarshal_EmptySelectionRepaired(t *testing.T) {
	s, repaired, err := decode([]byte("selected_dreams = []\n"))
	require.NoError(t, err)

	assert.True(t, repaired)
	assert.Equal(t, []string{DefaultDream}, s.SelectedDreams)
}

func TestUnmarshal_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"syntax", "show_fps = \n"},
		{"bad mode", `presentation_mode = "sometimes"`},
		{"wrong type", `show_fps = "yes"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tt.data))
			assert.Error(t, err)
		})
	}
}

func TestSettings_MarshalRoundTrip(t *testing.T) {
	s := DefaultSettings()
	s.Select("solid_color")
	s.AttemptMultiscreen = true
	s.PresentationMode = PresentationDeferred
	s.ColorScheme = "Gruvbox Dark"
	s.DreamSettings["fractal_clock"] = "depth = 8\nspeed = 1.5\n"
	s.DreamSettings["solid_color"] = "color = \"#112233FF\"\n"

	first, err := s.Marshal()
	require.NoError(t, err)

	decoded, err := Unmarshal(first)
	require.NoError(t, err)
	assert.True(t, s.Equal(decoded))

	second, err := decoded.Marshal()
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestSettings_SelectDeselect(t *testing.T) {
	s := DefaultSettings()

	s.Select("monet")
	s.Select("solid_color")
	s.Select("monet")
	assert.Equal(t, []string{"fractal_clock", "monet", "solid_color"}, s.SelectedDreams)
	assert.True(t, s.IsSelected("monet"))

	assert.True(t, s.Deselect("monet"))
	assert.False(t, s.IsSelected("monet"))
	assert.False(t, s.Deselect("monet"), "deselecting an unselected dream is a no-op")

	assert.True(t, s.Deselect("fractal_clock"))
	assert.False(t, s.Deselect("solid_color"), "last selected dream must stay")
	assert.Equal(t, []string{"solid_color"}, s.SelectedDreams)
}

func TestSettings_CloneIsDeep(t *testing.T) {
	s := DefaultSettings()
	s.DreamSettings["a"] = "x"

	c := s.Clone()
	require.True(t, s.Equal(c))

	c.DreamSettings["a"] = "y"
	c.Select("b")
	assert.Equal(t, "x", s.DreamSettings["a"])
	assert.False(t, s.IsSelected("b"))
	assert.False(t, s.Equal(c))
}

func TestSettings_EqualNil(t *testing.T) {
	var a, b *Settings
	assert.True(t, a.Equal(b))
	assert.False(t, DefaultSettings().Equal(nil))
}

func TestPresentationMode_Text(t *testing.T) {
	var m PresentationMode
	require.NoError(t, m.UnmarshalText([]byte("deferred")))
	assert.Equal(t, PresentationDeferred, m)
	assert.Equal(t, "Deferred", m.Title())

	assert.Error(t, m.UnmarshalText([]byte("Deferred")))

	text, err := PresentationImmediate.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "immediate", string(text))
}
