package gtkui

import (
	"math"

	"github.com/diamondburned/gotk4/pkg/cairo"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// cairoSurface adapts a cairo context to dream.Surface.
type cairoSurface struct {
	cr     *cairo.Context
	bounds dream.Rect
}

func newCairoSurface(cr *cairo.Context, width, height int) *cairoSurface {
	return &cairoSurface{
		cr:     cr,
		bounds: dream.Rect{Width: float64(width), Height: float64(height)},
	}
}

func (s *cairoSurface) setColor(c colorscheme.Color) {
	r, g, b, a := c.Floats()
	s.cr.SetSourceRGBA(r, g, b, a)
}

func (s *cairoSurface) Bounds() dream.Rect {
	return s.bounds
}

func (s *cairoSurface) Fill(r dream.Rect, c colorscheme.Color) {
	s.setColor(c)
	s.cr.Rectangle(r.X, r.Y, r.Width, r.Height)
	s.cr.Fill()
}

func (s *cairoSurface) Line(from, to dream.Point, width float64, c colorscheme.Color) {
	s.setColor(c)
	s.cr.SetLineWidth(width)
	s.cr.MoveTo(from.X, from.Y)
	s.cr.LineTo(to.X, to.Y)
	s.cr.Stroke()
}

func (s *cairoSurface) Circle(center dream.Point, radius float64, c colorscheme.Color) {
	s.setColor(c)
	s.cr.NewPath()
	s.cr.Arc(center.X, center.Y, radius, 0, 2*math.Pi)
	s.cr.Fill()
}

func (s *cairoSurface) Text(at dream.Point, size float64, text string, c colorscheme.Color) {
	s.setColor(c)
	s.cr.SetFontSize(size)
	s.cr.MoveTo(at.X, at.Y)
	s.cr.ShowText(text)
}
