package dream

import (
	"errors"
	"fmt"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
)

// ID is a stable dream identifier, lowercase with underscores.
type ID string

// Type tags the kind of surface a dream draws on.
type Type int

const (
	// TypeCanvas dreams draw through a Surface.
	TypeCanvas Type = iota
)

func (t Type) String() string {
	switch t {
	case TypeCanvas:
		return "canvas"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// ErrNoEligibleDream is returned when a selection has no usable dream.
var ErrNoEligibleDream = errors.New("no eligible dream selected")

// Point is a position in surface coordinates.
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Surface is the drawing target handed to Render.
type Surface interface {
	Bounds() Rect
	Fill(r Rect, c colorscheme.Color)
	Line(from, to Point, width float64, c colorscheme.Color)
	Circle(center Point, radius float64, c colorscheme.Color)
	Text(at Point, size float64, text string, c colorscheme.Color)
}

// Controls is an immediate-mode form a dream describes its editable state
// with. Each input method returns true when the user changed the value.
type Controls interface {
	Heading(text string)
	Label(text string)
	Float(label string, v *float64, min, max, step float64) bool
	Int(label string, v *int, min, max int) bool
	Color(label string, c *colorscheme.Color) bool
	Toggle(label string, v *bool) bool
	Choice(label string, selected *int, options []string) bool
	Button(label string) bool
}

// Dream is the capability contract of a renderer.
type Dream interface {
	// ID never changes after construction.
	ID() ID
	// Name is unique within the catalog.
	Name() string
	Type() Type
	// PreferredUpdateRate is queried every frame and may change between calls.
	PreferredUpdateRate() UpdateRate
	// InDevelopment dreams are hidden unless dev dreams are allowed.
	InDevelopment() bool
	// RequiresLoadScreen is advisory.
	RequiresLoadScreen() bool

	// Prepare initializes resources. It runs before the first Render and after
	// every settings reload, and must be idempotent.
	Prepare() error
	// Render draws one frame. It may run concurrently with other Render calls
	// on the same instance and must not modify stored configuration.
	Render(s Surface)
	// Configure lays out the editable state and reports whether it changed.
	Configure(c Controls) bool
	// Store serializes the editable state into the settings blob map.
	Store() error
}

// Descriptor is the immutable catalog view of a dream.
type Descriptor struct {
	ID            ID
	Name          string
	InDevelopment bool
	Type          Type
}

func describe(d Dream) Descriptor {
	return Descriptor{
		ID:            d.ID(),
		Name:          d.Name(),
		InDevelopment: d.InDevelopment(),
		Type:          d.Type(),
	}
}
