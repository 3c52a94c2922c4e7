package gtkui

import (
	"log/slog"
	"time"

	layershell "github.com/diamondburned/gotk4-layer-shell/pkg/gtk4layershell"
	"github.com/diamondburned/gotk4/pkg/cairo"
	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"
	"github.com/diamondburned/gotk4/pkg/gtk/v4"

	"github.com/jmylchreest/dreamspinner/internal/input"
	"github.com/jmylchreest/dreamspinner/internal/render"
)

const layerNamespace = "dreamspinner"

// ViewportOptions configures a viewport window.
type ViewportOptions struct {
	Title string
	// Monitor the window covers; nil leaves placement to the compositor.
	Monitor *gdk.Monitor
	// Overlay places the window on the layer-shell overlay layer.
	Overlay bool
	// Width and Height size a non-fullscreen window.
	Width, Height int
	// OnInput receives cancellation input from this window.
	OnInput func(input.Event)
}

// Viewport is a borderless window holding a single drawing area.
type Viewport struct {
	window  *gtk.Window
	area    *gtk.DrawingArea
	monitor *gdk.Monitor
	overlay bool
	logger  *slog.Logger

	timer    glib.SourceHandle
	hasTimer bool
	x, y     float64
	closed   bool
}

var _ render.Viewport = (*Viewport)(nil)

// NewViewport creates and shows a window whose paint callback is draw.
func NewViewport(app *gtk.Application, opts ViewportOptions, draw render.DrawFunc, logger *slog.Logger) *Viewport {
	if logger == nil {
		logger = slog.Default()
	}

	v := &Viewport{
		window:  gtk.NewWindow(),
		area:    gtk.NewDrawingArea(),
		monitor: opts.Monitor,
		overlay: opts.Overlay && layershell.IsSupported(),
		logger:  logger,
	}

	v.window.SetApplication(app)
	v.window.SetTitle(opts.Title)
	v.window.SetDecorated(false)
	v.window.AddCSSClass(styleClass)
	if opts.Width > 0 && opts.Height > 0 {
		v.window.SetDefaultSize(opts.Width, opts.Height)
	}

	if v.overlay {
		layershell.InitForWindow(v.window)
		layershell.SetLayer(v.window, layershell.LayerShellLayerOverlay)
		layershell.SetKeyboardMode(v.window, layershell.LayerShellKeyboardModeExclusive)
		layershell.SetNamespace(v.window, layerNamespace)
		if v.monitor != nil {
			layershell.SetMonitor(v.window, v.monitor)
		}
	}

	v.area.SetHExpand(true)
	v.area.SetVExpand(true)
	v.area.SetDrawFunc(func(_ *gtk.DrawingArea, cr *cairo.Context, width, height int) {
		draw(newCairoSurface(cr, width, height))
	})
	v.window.SetChild(v.area)

	if opts.OnInput != nil {
		v.connectInput(opts.OnInput)
	}

	v.window.ConnectCloseRequest(func() bool {
		v.cancelTimer()
		v.closed = true
		return false
	})

	v.window.Present()
	v.window.SetCursorFromName("none")
	return v
}

func (v *Viewport) connectInput(onInput func(input.Event)) {
	clickCtrl := gtk.NewGestureClick()
	clickCtrl.SetButton(0) // All buttons
	clickCtrl.ConnectReleased(func(nPress int, x, y float64) {
		onInput(input.EventPointerReleased)
	})
	v.window.AddController(clickCtrl)

	keyCtrl := gtk.NewEventControllerKey()
	keyCtrl.ConnectKeyPressed(func(keyval, keycode uint, state gdk.ModifierType) bool {
		onInput(input.EventKeyPressed)
		return true
	})
	v.window.AddController(keyCtrl)
}

// MoveTo records the requested logical origin. GTK4 cannot position
// toplevels, so placement comes from the bound monitor when fullscreened.
func (v *Viewport) MoveTo(x, y float64) {
	v.x, v.y = x, y
	v.logger.Debug("viewport placed", "x", x, "y", y)
}

// SetFullscreen covers the bound monitor.
func (v *Viewport) SetFullscreen(fullscreen bool) {
	if v.closed {
		return
	}

	if v.overlay {
		for _, edge := range []layershell.LayerShellEdge{
			layershell.LayerShellEdgeTop,
			layershell.LayerShellEdgeBottom,
			layershell.LayerShellEdgeLeft,
			layershell.LayerShellEdgeRight,
		} {
			layershell.SetAnchor(v.window, edge, fullscreen)
		}
		if fullscreen {
			layershell.SetExclusiveZone(v.window, -1)
		} else {
			layershell.SetExclusiveZone(v.window, 0)
		}
		return
	}

	switch {
	case !fullscreen:
		v.window.Unfullscreen()
	case v.monitor != nil:
		v.window.FullscreenOnMonitor(v.monitor)
	default:
		v.window.Fullscreen()
	}
}

// Invalidate queues a redraw for the next frame.
func (v *Viewport) Invalidate() {
	if v.closed {
		return
	}
	v.area.QueueDraw()
}

// RequestRepaint redraws after the delay, replacing any pending request.
// Zero delays wait for the main loop to go idle so a request made from
// inside the paint callback still lands on the next frame.
func (v *Viewport) RequestRepaint(after time.Duration) {
	if v.closed {
		return
	}
	v.cancelTimer()

	fire := func() bool {
		v.hasTimer = false
		v.Invalidate()
		return false
	}
	if after <= 0 {
		v.timer = glib.IdleAdd(fire)
	} else {
		v.timer = glib.TimeoutAdd(uint(after.Milliseconds()), fire)
	}
	v.hasTimer = true
}

func (v *Viewport) cancelTimer() {
	if v.hasTimer {
		glib.SourceRemove(v.timer)
		v.hasTimer = false
	}
}

// Close destroys the window.
func (v *Viewport) Close() {
	if v.closed {
		return
	}
	v.cancelTimer()
	v.closed = true
	v.window.Close()
}
