package display

import (
	"cmp"
	"fmt"
	"log/slog"
	"slices"
)

// Display describes one physical display as reported by the host.
type Display struct {
	// Name is the connector or model name used for ordering.
	Name string
	// NativeID is the host's identifier; it is not guaranteed unique.
	NativeID string
	// Physical position and size in device pixels.
	X, Y          int
	Width, Height int
	// Scale is the device pixel ratio; zero is treated as 1.
	Scale   float64
	Primary bool
}

// LogicalOrigin returns the display origin divided by its scale factor.
func (d Display) LogicalOrigin() (x, y float64) {
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	return float64(d.X) / scale, float64(d.Y) / scale
}

// ViewportID identifies the viewport bound to a secondary display.
type ViewportID string

// NewViewportID derives the identity from a display's native id and its
// position in the secondary list, so displays sharing a native id stay distinct.
func NewViewportID(nativeID string, ordinal int) ViewportID {
	return ViewportID(fmt.Sprintf("%s#%d", nativeID, ordinal))
}

// Secondary is a non-primary display with its viewport identity.
type Secondary struct {
	Display
	Viewport ViewportID
}

// Topology is the display layout resolved once per session.
type Topology struct {
	Primary     Display
	Secondaries []Secondary
}

// Enumerator lists the host's physical displays.
type Enumerator interface {
	Displays() ([]Display, error)
}

// EnumeratorFunc adapts a function to Enumerator.
type EnumeratorFunc func() ([]Display, error)

func (f EnumeratorFunc) Displays() ([]Display, error) {
	return f()
}

// Resolve enumerates displays and designates the primary. The first display
// flagged primary wins; the remaining displays are sorted by name. With
// multiscreen disabled there are no secondaries.
func Resolve(enum Enumerator, multiscreen bool, logger *slog.Logger) (*Topology, error) {
	if logger == nil {
		logger = slog.Default()
	}

	displays, err := enum.Displays()
	if err != nil {
		return nil, &DisplayError{Message: "failed to enumerate displays", Cause: err}
	}
	if len(displays) == 0 {
		return nil, &DisplayError{Message: "cannot start", Cause: ErrNoDisplays}
	}

	primary := -1
	for i, d := range displays {
		if d.Primary {
			primary = i
			break
		}
	}
	if primary < 0 {
		return nil, &DisplayError{
			Message: fmt.Sprintf("cannot choose among %d displays", len(displays)),
			Cause:   ErrNoPrimary,
		}
	}

	topo := &Topology{Primary: displays[primary]}
	topo.Primary.Primary = true

	if multiscreen {
		rest := make([]Display, 0, len(displays)-1)
		rest = append(rest, displays[:primary]...)
		rest = append(rest, displays[primary+1:]...)
		slices.SortStableFunc(rest, func(a, b Display) int {
			return cmp.Compare(a.Name, b.Name)
		})

		topo.Secondaries = make([]Secondary, len(rest))
		for i, d := range rest {
			d.Primary = false
			topo.Secondaries[i] = Secondary{Display: d, Viewport: NewViewportID(d.NativeID, i)}
		}
	}

	logger.Debug("resolved display topology",
		"primary", topo.Primary.Name,
		"detected", len(displays),
		"secondaries", len(topo.Secondaries),
		"multiscreen", multiscreen,
	)
	return topo, nil
}
