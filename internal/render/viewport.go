package render

import (
	"time"

	"github.com/jmylchreest/dreamspinner/internal/display"
	"github.com/jmylchreest/dreamspinner/internal/dream"
)

// Viewport is a window bound to one display.
type Viewport interface {
	// MoveTo places the viewport at logical desktop coordinates.
	MoveTo(x, y float64)
	SetFullscreen(fullscreen bool)
	// Invalidate repaints the viewport as part of the current frame.
	Invalidate()
	// RequestRepaint schedules the next frame no sooner than after. A later
	// request replaces an earlier pending one.
	RequestRepaint(after time.Duration)
	Close()
}

// DrawFunc paints one frame of a viewport.
type DrawFunc func(s dream.Surface)

// Windowing creates secondary viewports on demand.
type Windowing interface {
	// Secondary creates the viewport for a secondary display. draw is
	// invoked from the viewport's own paint callback.
	Secondary(id display.ViewportID, d display.Display, draw DrawFunc) (Viewport, error)
}
