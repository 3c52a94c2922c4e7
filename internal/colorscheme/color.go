package colorscheme

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 255}
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA". The leading '#' is optional.
func ParseHex(s string) (Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return Color{}, fmt.Errorf("invalid hex color %q: want 6 or 8 digits", s)
	}

	parse := func(part, name string) (uint8, error) {
		v, err := strconv.ParseUint(part, 16, 8)
		if err != nil {
			return 0, fmt.Errorf("invalid %s value in %q: %w", name, s, err)
		}
		return uint8(v), nil
	}

	var c Color
	var err error
	if c.R, err = parse(hex[0:2], "red"); err != nil {
		return Color{}, err
	}
	if c.G, err = parse(hex[2:4], "green"); err != nil {
		return Color{}, err
	}
	if c.B, err = parse(hex[4:6], "blue"); err != nil {
		return Color{}, err
	}
	c.A = 255
	if len(hex) == 8 {
		if c.A, err = parse(hex[6:8], "alpha"); err != nil {
			return Color{}, err
		}
	}
	return c, nil
}

// Hex returns the color as "#RRGGBBAA".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X%02X", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string {
	return c.Hex()
}

// MarshalText implements encoding.TextMarshaler.
func (c Color) MarshalText() ([]byte, error) {
	return []byte(c.Hex()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Color) UnmarshalText(text []byte) error {
	parsed, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Floats returns the channels scaled to 0.0-1.0.
func (c Color) Floats() (r, g, b, a float64) {
	return float64(c.R) / 255, float64(c.G) / 255, float64(c.B) / 255, float64(c.A) / 255
}

// Fade multiplies every channel, alpha included, by factor (clamped to 0-1).
// The result stays premultiplied the way the fractal clock dims its branches.
func (c Color) Fade(factor float64) Color {
	factor = math.Max(0, math.Min(1, factor))
	scale := func(v uint8) uint8 { return uint8(math.Round(float64(v) * factor)) }
	return Color{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: scale(c.A)}
}

// RotateHue shifts the hue by degrees, keeping saturation, value and alpha.
func (c Color) RotateHue(degrees float64) Color {
	h, s, v := c.hsv()
	h = math.Mod(h+degrees, 360)
	if h < 0 {
		h += 360
	}
	out := fromHSV(h, s, v)
	out.A = c.A
	return out
}

func (c Color) hsv() (h, s, v float64) {
	r, g, b, _ := c.Floats()
	maxC := math.Max(r, math.Max(g, b))
	minC := math.Min(r, math.Min(g, b))
	delta := maxC - minC

	v = maxC
	if maxC > 0 {
		s = delta / maxC
	}
	if delta == 0 {
		return 0, s, v
	}

	switch maxC {
	case r:
		h = 60 * math.Mod((g-b)/delta, 6)
	case g:
		h = 60 * ((b-r)/delta + 2)
	default:
		h = 60 * ((r-g)/delta + 4)
	}
	if h < 0 {
		h += 360
	}
	return h, s, v
}

func fromHSV(h, s, v float64) Color {
	chroma := v * s
	x := chroma * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - chroma

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = chroma, x, 0
	case h < 120:
		r, g, b = x, chroma, 0
	case h < 180:
		r, g, b = 0, chroma, x
	case h < 240:
		r, g, b = 0, x, chroma
	case h < 300:
		r, g, b = x, 0, chroma
	default:
		r, g, b = chroma, 0, x
	}

	to8 := func(f float64) uint8 { return uint8(math.Round((f + m) * 255)) }
	return Color{R: to8(r), G: to8(g), B: to8(b), A: 255}
}
