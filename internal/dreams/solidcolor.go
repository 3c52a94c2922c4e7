package dreams

import (
	"time"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// SolidColorID identifies the solid color dream.
const SolidColorID dream.ID = "solid_color"

// SolidColorSettings are the persisted parameters of the solid color dream.
type SolidColorSettings struct {
	Color colorscheme.Color `toml:"color"`
}

// DefaultSolidColorSettings returns a brown fill.
func DefaultSolidColorSettings() SolidColorSettings {
	return SolidColorSettings{Color: colorscheme.RGB(165, 42, 42)}
}

// SolidColor fills every screen with one color.
type SolidColor struct {
	dream.Base
	deps     dream.Deps
	settings SolidColorSettings
}

// NewSolidColor creates the dream from its stored settings.
func NewSolidColor(deps dream.Deps) *SolidColor {
	d := &SolidColor{Base: dream.Base{DreamID: SolidColorID}, deps: withDefaults(deps)}
	d.load()
	return d
}

func (d *SolidColor) load() {
	d.settings = dream.DecodeSettings(d.deps.Settings, SolidColorID, DefaultSolidColorSettings(), d.deps.Logger)
}

// Settings returns the current parameters.
func (d *SolidColor) Settings() SolidColorSettings {
	return d.settings
}

func (d *SolidColor) Name() string {
	return "Solid Color"
}

func (d *SolidColor) PreferredUpdateRate() dream.UpdateRate {
	return dream.Fixed(10 * time.Second)
}

func (d *SolidColor) Prepare() error {
	d.load()
	return nil
}

func (d *SolidColor) Render(s dream.Surface) {
	s.Fill(s.Bounds(), d.settings.Color)
}

func (d *SolidColor) Configure(ui dream.Controls) bool {
	return ui.Color("Color", &d.settings.Color)
}

func (d *SolidColor) Store() error {
	return dream.EncodeSettings(d.deps.Settings, SolidColorID, d.settings)
}
