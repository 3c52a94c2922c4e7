package dreams

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// MonetID identifies the monet dream.
const MonetID dream.ID = "monet"

// MonetSettings are the persisted parameters of the monet dream.
type MonetSettings struct {
	Strokes int `toml:"strokes"`
}

// DefaultMonetSettings returns the settings used when none are stored.
func DefaultMonetSettings() MonetSettings {
	return MonetSettings{Strokes: 600}
}

// stroke is a short brush mark in unit coordinates.
type stroke struct {
	x, y   float64
	angle  float64
	length float64
	width  float64
	color  colorscheme.Color
}

// Monet paints a field of short brush strokes in the scheme's palette. The
// strokes are generated once per Prepare.
type Monet struct {
	dream.Base
	deps     dream.Deps
	seed     func() uint64
	settings MonetSettings
	scheme   colorscheme.Scheme
	strokes  []stroke
}

// NewMonet creates the dream from its stored settings.
func NewMonet(deps dream.Deps) *Monet {
	m := &Monet{
		Base: dream.Base{DreamID: MonetID},
		deps: withDefaults(deps),
		seed: rand.Uint64,
	}
	m.settings = dream.DecodeSettings(m.deps.Settings, MonetID, DefaultMonetSettings(), m.deps.Logger)
	return m
}

// Settings returns the current parameters.
func (m *Monet) Settings() MonetSettings {
	return m.settings
}

func (m *Monet) Name() string {
	return "Monet"
}

func (m *Monet) InDevelopment() bool {
	return true
}

func (m *Monet) RequiresLoadScreen() bool {
	return true
}

func (m *Monet) PreferredUpdateRate() dream.UpdateRate {
	return dream.Fixed(2 * time.Second)
}

func (m *Monet) Prepare() error {
	m.settings = dream.DecodeSettings(m.deps.Settings, MonetID, DefaultMonetSettings(), m.deps.Logger)
	m.scheme = activeScheme(m.deps)

	rng := rand.New(rand.NewPCG(m.seed(), m.seed()))
	palette := strokePalette(m.scheme)
	m.strokes = make([]stroke, max(m.settings.Strokes, 0))
	for i := range m.strokes {
		base := palette[rng.IntN(len(palette))]
		m.strokes[i] = stroke{
			x:      rng.Float64(),
			y:      rng.Float64(),
			angle:  rng.Float64() * math.Pi,
			length: 0.02 + rng.Float64()*0.06,
			width:  2 + rng.Float64()*6,
			color:  base.RotateHue(rng.NormFloat64() * 12).Fade(0.6 + rng.Float64()*0.4),
		}
	}
	return nil
}

func (m *Monet) Render(s dream.Surface) {
	b := s.Bounds()
	s.Fill(b, m.scheme.Background)

	side := math.Min(b.Width, b.Height)
	for _, st := range m.strokes {
		cx := b.X + st.x*b.Width
		cy := b.Y + st.y*b.Height
		dx := math.Cos(st.angle) * st.length * side / 2
		dy := math.Sin(st.angle) * st.length * side / 2
		s.Line(dream.Point{X: cx - dx, Y: cy - dy}, dream.Point{X: cx + dx, Y: cy + dy}, st.width, st.color)
	}
}

func (m *Monet) Configure(ui dream.Controls) bool {
	ui.Label("Strokes are regenerated each time the dream starts.")
	return ui.Int("Strokes", &m.settings.Strokes, 50, 5000)
}

func (m *Monet) Store() error {
	return dream.EncodeSettings(m.deps.Settings, MonetID, m.settings)
}

// strokePalette returns the scheme colors that stand out from the background,
// falling back to the foreground for monochrome schemes.
func strokePalette(scheme colorscheme.Scheme) []colorscheme.Color {
	var out []colorscheme.Color
	for _, c := range scheme.Colors {
		if c != scheme.Background {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		out = append(out, scheme.Foreground)
	}
	return out
}
