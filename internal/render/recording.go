package render

import (
	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// Recording is a Surface that stores draw calls for later replay.
type Recording struct {
	bounds dream.Rect
	ops    []func(dream.Surface)
}

// NewRecording creates an empty recording with the given bounds.
func NewRecording(bounds dream.Rect) *Recording {
	return &Recording{bounds: bounds}
}

func (r *Recording) Bounds() dream.Rect {
	return r.bounds
}

func (r *Recording) Fill(rect dream.Rect, c colorscheme.Color) {
	r.ops = append(r.ops, func(s dream.Surface) { s.Fill(rect, c) })
}

func (r *Recording) Line(from, to dream.Point, width float64, c colorscheme.Color) {
	r.ops = append(r.ops, func(s dream.Surface) { s.Line(from, to, width, c) })
}

func (r *Recording) Circle(center dream.Point, radius float64, c colorscheme.Color) {
	r.ops = append(r.ops, func(s dream.Surface) { s.Circle(center, radius, c) })
}

func (r *Recording) Text(at dream.Point, size float64, text string, c colorscheme.Color) {
	r.ops = append(r.ops, func(s dream.Surface) { s.Text(at, size, text, c) })
}

// Len returns the number of recorded draw calls.
func (r *Recording) Len() int {
	return len(r.ops)
}

// Replay issues every recorded call against s, in order.
func (r *Recording) Replay(s dream.Surface) {
	for _, op := range r.ops {
		op(s)
	}
}
