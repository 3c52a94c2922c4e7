package gtkui

import (
	"log/slog"

	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/dreamspinner/internal/display"
	"github.com/jmylchreest/dreamspinner/internal/input"
	"github.com/jmylchreest/dreamspinner/internal/render"
)

// Windowing creates viewports for a session.
type Windowing struct {
	app      *gtk.Application
	monitors *MonitorSource
	bus      *input.Bus
	logger   *slog.Logger

	primary *Viewport
}

var _ render.Windowing = (*Windowing)(nil)

// NewWindowing creates a windowing layer publishing input to bus.
func NewWindowing(app *gtk.Application, monitors *MonitorSource, bus *input.Bus, logger *slog.Logger) *Windowing {
	if logger == nil {
		logger = slog.Default()
	}
	return &Windowing{
		app:      app,
		monitors: monitors,
		bus:      bus,
		logger:   logger,
	}
}

// Notify publishes an event and wakes the primary so the next tick sees it
// even while a slow dream is waiting for its repaint timer.
func (w *Windowing) Notify(e input.Event) {
	w.bus.Publish(e)
	if w.primary != nil {
		w.primary.Invalidate()
	}
}

// Primary creates the window for the primary display. Windowed primaries
// stay ordinary toplevels of the given size.
func (w *Windowing) Primary(d display.Display, windowed bool, width, height int, draw render.DrawFunc) *Viewport {
	opts := ViewportOptions{
		Title:   "Dreamspinner",
		Monitor: w.monitors.Monitor(d),
		Overlay: !windowed,
		OnInput: w.Notify,
	}
	if windowed {
		opts.Monitor = nil
		opts.Width, opts.Height = width, height
	}

	w.primary = NewViewport(w.app, opts, draw, w.logger.With("viewport", "primary"))
	return w.primary
}

// Secondary implements render.Windowing.
func (w *Windowing) Secondary(id display.ViewportID, d display.Display, draw render.DrawFunc) (render.Viewport, error) {
	monitor := w.monitors.Monitor(d)
	if monitor == nil {
		return nil, &display.DisplayError{Message: "no monitor for display " + d.Name}
	}

	return NewViewport(w.app, ViewportOptions{
		Title:   "Dreamspinner " + string(id),
		Monitor: monitor,
		Overlay: true,
		OnInput: w.Notify,
	}, draw, w.logger.With("viewport", string(id))), nil
}
