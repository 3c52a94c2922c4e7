package dreams

import (
	"math"
	"time"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// FractalClockID identifies the fractal clock.
const FractalClockID dream.ID = "fractal_clock"

// FractalClockSettings are the persisted parameters of the fractal clock.
type FractalClockSettings struct {
	Zoom            float64 `toml:"zoom"`
	StartLineWidth  float64 `toml:"start_line_width"`
	Depth           int     `toml:"depth"`
	LengthFactor    float64 `toml:"length_factor"`
	LuminanceFactor float64 `toml:"luminance_factor"`
	WidthFactor     float64 `toml:"width_factor"`
}

// DefaultFractalClockSettings returns the settings used when none are stored.
func DefaultFractalClockSettings() FractalClockSettings {
	return FractalClockSettings{
		Zoom:            0.25,
		StartLineWidth:  2.5,
		Depth:           9,
		LengthFactor:    0.8,
		LuminanceFactor: 0.8,
		WidthFactor:     0.9,
	}
}

// FractalClock draws clock hands that branch recursively, each generation
// rotated by the angle between the second or minute hand and the hour hand.
type FractalClock struct {
	dream.Base
	deps     dream.Deps
	now      func() time.Time
	settings FractalClockSettings
	scheme   colorscheme.Scheme
}

// NewFractalClock creates the fractal clock from its stored settings.
func NewFractalClock(deps dream.Deps) *FractalClock {
	c := &FractalClock{
		Base: dream.Base{DreamID: FractalClockID},
		deps: withDefaults(deps),
		now:  time.Now,
	}
	c.load()
	return c
}

func (c *FractalClock) load() {
	c.settings = dream.DecodeSettings(c.deps.Settings, FractalClockID, DefaultFractalClockSettings(), c.deps.Logger)
	c.scheme = activeScheme(c.deps)
}

// Settings returns the current parameters.
func (c *FractalClock) Settings() FractalClockSettings {
	return c.settings
}

func (c *FractalClock) Name() string {
	return "Fractal Clock"
}

func (c *FractalClock) PreferredUpdateRate() dream.UpdateRate {
	return dream.Smooth()
}

func (c *FractalClock) Prepare() error {
	c.load()
	return nil
}

func (c *FractalClock) Store() error {
	return dream.EncodeSettings(c.deps.Settings, FractalClockID, c.settings)
}

func (c *FractalClock) Configure(ui dream.Controls) bool {
	s := &c.settings
	changed := false
	changed = ui.Float("Zoom", &s.Zoom, 0, 1, 0.01) || changed
	changed = ui.Float("Start line width", &s.StartLineWidth, 0, 5, 0.1) || changed
	changed = ui.Int("Depth", &s.Depth, 0, 14) || changed
	changed = ui.Float("Length factor", &s.LengthFactor, 0, 1, 0.01) || changed
	changed = ui.Float("Luminance factor", &s.LuminanceFactor, 0, 1, 0.01) || changed
	changed = ui.Float("Width factor", &s.WidthFactor, 0, 1, 0.01) || changed

	if ui.Button("Reset") && c.settings != DefaultFractalClockSettings() {
		c.settings = DefaultFractalClockSettings()
		changed = true
	}

	ui.Label("Inspired by a screensaver by Rob Mayoff")
	ui.Label("http://www.dqd.com/~mayoff/programs/FractalClock/")
	return changed
}

type clockHand struct {
	length float64
	angle  float64
}

func (h clockHand) vec() dream.Point {
	return dream.Point{X: h.length * math.Cos(h.angle), Y: h.length * math.Sin(h.angle)}
}

type branch struct {
	pos, dir dream.Point
}

// rotor rotates by angle and scales by length.
type rotor struct {
	cos, sin float64
}

func newRotor(length, angle float64) rotor {
	return rotor{cos: length * math.Cos(angle), sin: length * math.Sin(angle)}
}

func (r rotor) apply(p dream.Point) dream.Point {
	return dream.Point{X: r.cos*p.X - r.sin*p.Y, Y: r.sin*p.X + r.cos*p.Y}
}

// secondsSinceMidnight returns the local wall clock time of day in seconds.
func secondsSinceMidnight(t time.Time) float64 {
	h, m, s := t.Clock()
	return float64(h*3600+m*60+s) + float64(t.Nanosecond())*1e-9
}

func (c *FractalClock) Render(surface dream.Surface) {
	s := c.settings
	bounds := surface.Bounds()
	surface.Fill(bounds, c.scheme.Background)

	now := secondsSinceMidnight(c.now())
	angle := func(period float64) float64 {
		return 2*math.Pi*math.Mod(now, period)/period - math.Pi/2
	}
	hands := [3]clockHand{
		{length: s.LengthFactor, angle: angle(60)},
		{length: s.LengthFactor, angle: angle(60 * 60)},
		{length: 0.5, angle: angle(12 * 60 * 60)},
	}

	// Unit space is centered with the shorter side spanning 1/zoom units
	center := bounds.Center()
	scale := math.Min(bounds.Width, bounds.Height) * s.Zoom
	toScreen := func(p dream.Point) dream.Point {
		return dream.Point{X: center.X + p.X*scale, Y: center.Y + p.Y*scale}
	}
	line := func(a, b dream.Point, color colorscheme.Color, width float64) {
		from, to := toScreen(a), toScreen(b)
		if !intersects(bounds, from, to) {
			return
		}
		surface.Line(from, to, width, color)
	}

	rotors := [2]rotor{
		newRotor(hands[0].length, hands[0].angle-hands[2].angle+math.Pi),
		newRotor(hands[1].length, hands[1].angle-hands[2].angle+math.Pi),
	}

	width := s.StartLineWidth
	nodes := make([]branch, 0, 2)
	for i, hand := range hands {
		end := hand.vec()
		line(dream.Point{}, end, c.scheme.Foreground, width)
		if i < 2 {
			nodes = append(nodes, branch{pos: end, dir: end})
		}
	}

	luminance := 0.7
	next := make([]branch, 0, len(nodes)*2)
	for range s.Depth {
		next = next[:0]
		luminance *= s.LuminanceFactor
		width *= s.WidthFactor
		color := c.scheme.Foreground.Fade(luminance)

		for _, r := range rotors {
			for _, a := range nodes {
				dir := r.apply(a.dir)
				b := branch{pos: dream.Point{X: a.pos.X + dir.X, Y: a.pos.Y + dir.Y}, dir: dir}
				line(a.pos, b.pos, color, width)
				next = append(next, b)
			}
		}
		nodes, next = next, nodes
	}
}

// intersects reports whether the bounding box of a segment overlaps r.
func intersects(r dream.Rect, a, b dream.Point) bool {
	minX, maxX := math.Min(a.X, b.X), math.Max(a.X, b.X)
	minY, maxY := math.Min(a.Y, b.Y), math.Max(a.Y, b.Y)
	return maxX >= r.X && minX <= r.X+r.Width && maxY >= r.Y && minY <= r.Y+r.Height
}
