package gtkui

import (
	"errors"
	"fmt"
	"unsafe"

	"github.com/diamondburned/gotk4/pkg/core/glib"
	"github.com/diamondburned/gotk4/pkg/gdk/v4"

	"github.com/jmylchreest/dreamspinner/internal/display"
)

// MonitorSource enumerates GDK monitors as displays and remembers which
// monitor each display came from.
type MonitorSource struct {
	gdkDisplay *gdk.Display
	byName     map[string]*gdk.Monitor
}

// NewMonitorSource uses the default GDK display.
func NewMonitorSource() *MonitorSource {
	return &MonitorSource{
		gdkDisplay: gdk.DisplayGetDefault(),
		byName:     make(map[string]*gdk.Monitor),
	}
}

// Displays implements display.Enumerator. GTK4 has no notion of a primary
// monitor, so the first one listed is flagged primary.
func (s *MonitorSource) Displays() ([]display.Display, error) {
	if s.gdkDisplay == nil {
		return nil, errors.New("no GDK display available")
	}

	monitors := s.gdkDisplay.Monitors()
	if monitors == nil {
		return nil, nil
	}

	n := monitors.NItems()
	out := make([]display.Display, 0, n)
	clear(s.byName)

	for i := range n {
		monitor := wrapMonitor(monitors.Item(i))
		if monitor == nil {
			continue
		}

		name := monitor.Connector()
		if name == "" {
			name = fmt.Sprintf("monitor-%d", i)
		}
		nativeID := monitor.Model()
		if nativeID == "" {
			nativeID = name
		}

		// GDK geometry is in logical pixels
		scale := monitor.ScaleFactor()
		if scale < 1 {
			scale = 1
		}
		geom := monitor.Geometry()
		out = append(out, display.Display{
			Name:     name,
			NativeID: nativeID,
			X:        geom.X() * scale,
			Y:        geom.Y() * scale,
			Width:    geom.Width() * scale,
			Height:   geom.Height() * scale,
			Scale:    float64(scale),
			Primary:  len(out) == 0,
		})
		s.byName[name] = monitor
	}
	return out, nil
}

// Monitor returns the GDK monitor a display was enumerated from.
func (s *MonitorSource) Monitor(d display.Display) *gdk.Monitor {
	return s.byName[d.Name]
}

// wrapMonitor wraps a glib.Object as a gdk.Monitor.
// gotk4 does not export its own wrapper for list items.
func wrapMonitor(obj *glib.Object) *gdk.Monitor {
	if obj == nil {
		return nil
	}
	// gdk.Monitor embeds a *glib.Object, which is how gotk4 builds it internally
	type monitor struct {
		_ [0]func()
		*glib.Object
	}
	m := &monitor{Object: obj}
	return (*gdk.Monitor)(unsafe.Pointer(m))
}
