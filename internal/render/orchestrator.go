package render

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/config"
	"github.com/jmylchreest/dreamspinner/internal/display"
	"github.com/jmylchreest/dreamspinner/internal/dream"
	"github.com/jmylchreest/dreamspinner/internal/input"
)

// ErrNoActiveDream is returned by Tick before Start has chosen a dream.
var ErrNoActiveDream = errors.New("no active dream")

const defaultFPSSamples = 60

type state int

const (
	stateInitial state = iota
	stateSteady
	stateClosed
)

var (
	overlayColor = colorscheme.RGB(255, 255, 0)
	loadingColor = colorscheme.RGB(200, 200, 200)
)

// Options configures an Orchestrator.
type Options struct {
	Registry  *dream.Registry
	Settings  *config.Store
	Topology  *display.Topology
	Primary   Viewport
	Windowing Windowing
	Bus       *input.Bus

	// FPSSamples is the frame monitor batch size.
	FPSSamples int
	// Windowed keeps the primary viewport where the host placed it.
	Windowed bool

	Rand   *rand.Rand
	Now    func() time.Time
	Logger *slog.Logger
}

type secondary struct {
	info     display.Secondary
	viewport Viewport
	frame    *Recording
}

// Orchestrator runs the frame loop for one session.
type Orchestrator struct {
	registry  *dream.Registry
	settings  *config.Store
	topology  *display.Topology
	primary   Viewport
	windowing Windowing
	bus       *input.Bus
	windowed  bool
	rng       *rand.Rand
	now       func() time.Time
	logger    *slog.Logger

	mu           sync.Mutex
	state        state
	active       *dream.Handle
	prepared     bool
	loadingShown bool
	secondaries  map[display.ViewportID]*secondary
	fps          *FrameMonitor
	fpsSamples   int
}

// New creates an orchestrator. Start must be called before the first Tick.
func New(opts Options) *Orchestrator {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.FPSSamples <= 0 {
		opts.FPSSamples = defaultFPSSamples
	}
	if opts.Bus == nil {
		opts.Bus = input.NewBus(8, opts.Logger)
	}

	return &Orchestrator{
		registry:    opts.Registry,
		settings:    opts.Settings,
		topology:    opts.Topology,
		primary:     opts.Primary,
		windowing:   opts.Windowing,
		bus:         opts.Bus,
		windowed:    opts.Windowed,
		rng:         opts.Rand,
		now:         opts.Now,
		logger:      opts.Logger,
		secondaries: make(map[display.ViewportID]*secondary),
		fpsSamples:  opts.FPSSamples,
	}
}

// frameSettings are the settings consulted every tick.
type frameSettings struct {
	mode        config.PresentationMode
	showFPS     bool
	multiscreen bool
}

func (o *Orchestrator) readSettings() (frameSettings, error) {
	var fs frameSettings
	err := o.settings.Read(func(s *config.Settings) {
		fs = frameSettings{
			mode:        s.PresentationMode,
			showFPS:     s.ShowFPS,
			multiscreen: s.AttemptMultiscreen,
		}
	})
	return fs, err
}

// Start chooses the session's dream from the selection. Dreams that do not
// need a loading screen are prepared immediately so failures surface before
// any window is shown.
func (o *Orchestrator) Start() error {
	var (
		selected []string
		allowDev bool
	)
	if err := o.settings.Read(func(s *config.Settings) {
		selected = append(selected, s.SelectedDreams...)
		allowDev = s.AllowDevDreams
	}); err != nil {
		return err
	}

	h, err := o.registry.Choose(selected, allowDev, o.rng)
	if err != nil {
		return err
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	o.active = h
	o.prepared = false
	o.loadingShown = false
	o.logger.Info("starting dream", "dream", h.ID(), "rate", h.UpdateRate().String())

	if h.RequiresLoadScreen() {
		return nil
	}
	return o.prepareLocked()
}

func (o *Orchestrator) prepareLocked() error {
	if err := o.active.Prepare(); err != nil {
		return err
	}
	o.prepared = true
	return nil
}

// Active returns the session's dream.
func (o *Orchestrator) Active() *dream.Handle {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.active
}

// Closed reports whether the session has been torn down.
func (o *Orchestrator) Closed() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state == stateClosed
}

// Reload re-prepares the active dream after the settings changed on disk.
func (o *Orchestrator) Reload() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.active == nil || o.state == stateClosed || !o.prepared {
		return nil
	}
	o.logger.Debug("settings reloaded, preparing dream again", "dream", o.active.ID())
	return o.prepareLocked()
}

// Tick renders one frame of the primary viewport onto surface. The
// orchestrator lock guards state only; dreams render without it.
func (o *Orchestrator) Tick(surface dream.Surface) error {
	o.mu.Lock()
	if o.state == stateClosed {
		o.mu.Unlock()
		return nil
	}

	fs, err := o.readSettings()
	if err != nil {
		o.mu.Unlock()
		return err
	}

	if o.state == stateInitial {
		if !o.windowed {
			x, y := o.topology.Primary.LogicalOrigin()
			o.primary.MoveTo(x, y)
			o.primary.SetFullscreen(true)
		}
		o.state = stateSteady
	}

	h := o.active
	if h == nil {
		o.mu.Unlock()
		return ErrNoActiveDream
	}

	if !o.prepared {
		if h.RequiresLoadScreen() && o.prepareDeferredLocked(surface) {
			o.mu.Unlock()
			return nil
		}
		if err := o.prepareLocked(); err != nil {
			o.mu.Unlock()
			return err
		}
	}

	var secondaries []*secondary
	if fs.multiscreen {
		secondaries, err = o.ensureSecondariesLocked()
		if err != nil {
			o.mu.Unlock()
			return err
		}
	} else {
		o.closeSecondariesLocked()
	}
	o.mu.Unlock()

	rate := h.UpdateRate()

	var frames []*Recording
	if fs.multiscreen && fs.mode == config.PresentationImmediate {
		frames = make([]*Recording, len(secondaries))
		for i, sec := range secondaries {
			frames[i] = NewRecording(logicalBounds(sec.info.Display))
			h.Render(frames[i])
		}
	}
	h.Render(surface)

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == stateClosed {
		return nil
	}

	for i, frame := range frames {
		sec := secondaries[i]
		if o.secondaries[sec.info.Viewport] != sec {
			continue
		}
		sec.frame = frame
		sec.viewport.Invalidate()
	}

	if fs.showFPS {
		o.drawFPSLocked(surface)
	} else {
		o.fps = nil
	}

	if events := o.bus.Drain(); len(events) > 0 {
		o.logger.Info("input received, closing", "event", events[0].String())
		o.closeAllLocked()
		return nil
	}

	o.primary.RequestRepaint(rate.Interval())
	if fs.mode == config.PresentationDeferred && fs.multiscreen {
		for _, sec := range o.secondaries {
			sec.viewport.RequestRepaint(rate.Interval())
		}
	}
	return nil
}

// prepareDeferredLocked shows a loading frame the first time it is called and
// reports whether it did so; preparation happens on the following tick.
func (o *Orchestrator) prepareDeferredLocked(surface dream.Surface) bool {
	if o.loadingShown {
		return false
	}
	o.loadingShown = true

	b := surface.Bounds()
	surface.Fill(b, colorscheme.RGB(0, 0, 0))
	c := b.Center()
	surface.Text(dream.Point{X: c.X - 40, Y: c.Y}, 24, "Loading…", loadingColor)
	o.primary.RequestRepaint(0)
	return true
}

// ensureSecondariesLocked creates any missing secondary viewport and returns
// them in topology order.
func (o *Orchestrator) ensureSecondariesLocked() ([]*secondary, error) {
	out := make([]*secondary, 0, len(o.topology.Secondaries))
	for _, info := range o.topology.Secondaries {
		sec, err := o.ensureSecondaryLocked(info)
		if err != nil {
			return nil, err
		}
		out = append(out, sec)
	}
	return out, nil
}

// closeSecondariesLocked closes and forgets every secondary viewport, as when
// multiscreen is switched off during a session.
func (o *Orchestrator) closeSecondariesLocked() {
	for id, sec := range o.secondaries {
		sec.viewport.Close()
		delete(o.secondaries, id)
		o.logger.Debug("closed secondary viewport", "viewport", id)
	}
}

func (o *Orchestrator) ensureSecondaryLocked(info display.Secondary) (*secondary, error) {
	if sec, ok := o.secondaries[info.Viewport]; ok {
		return sec, nil
	}

	sec := &secondary{info: info}
	vp, err := o.windowing.Secondary(info.Viewport, info.Display, o.secondaryDraw(sec))
	if err != nil {
		return nil, fmt.Errorf("failed to create viewport %s: %w", info.Viewport, err)
	}
	sec.viewport = vp

	x, y := info.LogicalOrigin()
	vp.MoveTo(x, y)
	vp.SetFullscreen(true)
	o.secondaries[info.Viewport] = sec

	o.logger.Debug("created secondary viewport", "viewport", info.Viewport, "display", info.Name)
	return sec, nil
}

// secondaryDraw is the paint callback of a secondary viewport.
func (o *Orchestrator) secondaryDraw(sec *secondary) DrawFunc {
	return func(s dream.Surface) {
		o.mu.Lock()
		if o.state == stateClosed {
			o.mu.Unlock()
			return
		}
		if o.secondaries[sec.info.Viewport] != sec {
			o.mu.Unlock()
			return
		}
		h := o.active
		frame := sec.frame
		prepared := o.prepared
		deferred := false
		if fs, err := o.readSettings(); err == nil {
			if !fs.multiscreen {
				o.mu.Unlock()
				return
			}
			deferred = fs.mode == config.PresentationDeferred
		}
		o.mu.Unlock()

		if !deferred {
			if frame != nil {
				frame.Replay(s)
			}
			return
		}
		if h == nil || !prepared {
			return
		}

		h.Render(s)
		sec.viewport.RequestRepaint(h.UpdateRate().Interval())
	}
}

func (o *Orchestrator) drawFPSLocked(surface dream.Surface) {
	if o.fps == nil {
		o.fps = NewFrameMonitor(o.fpsSamples)
	}
	o.fps.Record(o.now())

	text := "measuring…"
	if rate, ok := o.fps.Latest(); ok {
		text = rate.String()
	}
	b := surface.Bounds()
	surface.Text(dream.Point{X: b.X + 16, Y: b.Y + 32}, 18, text, overlayColor)
}

func (o *Orchestrator) closeAllLocked() {
	o.state = stateClosed
	o.primary.Close()
	o.closeSecondariesLocked()
}

// Close tears down every viewport.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != stateClosed {
		o.closeAllLocked()
	}
}

// logicalBounds is the drawable area of a display in logical pixels.
func logicalBounds(d display.Display) dream.Rect {
	scale := d.Scale
	if scale <= 0 {
		scale = 1
	}
	return dream.Rect{Width: float64(d.Width) / scale, Height: float64(d.Height) / scale}
}
