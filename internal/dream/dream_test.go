package dream

import (
	"errors"
	"math/rand/v2"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmylchreest/dreamspinner/internal/colorscheme"
	"github.com/jmylchreest/dreamspinner/internal/config"
)

type fakeSettings struct {
	Level int    `toml:"level"`
	Label string `toml:"label"`
}

type fakeDream struct {
	Base
	name     string
	dev      bool
	rate     UpdateRate
	deps     Deps
	settings fakeSettings

	mu       sync.Mutex
	prepared int
	renders  int
	fail     error
}

func (d *fakeDream) Name() string                    { return d.name }
func (d *fakeDream) InDevelopment() bool             { return d.dev }
func (d *fakeDream) PreferredUpdateRate() UpdateRate { return d.rate }

func (d *fakeDream) Prepare() error {
	d.prepared++
	d.settings = DecodeSettings(d.deps.Settings, d.DreamID, fakeSettings{Level: 1}, d.deps.Logger)
	return d.fail
}

func (d *fakeDream) Render(s Surface) {
	d.mu.Lock()
	d.renders++
	d.mu.Unlock()
	s.Fill(s.Bounds(), colorscheme.Color{A: 255})
}

func (d *fakeDream) Configure(c Controls) bool {
	return c.Int("Level", &d.settings.Level, 0, 10)
}

func (d *fakeDream) Store() error {
	return EncodeSettings(d.deps.Settings, d.DreamID, d.settings)
}

func fakeEntry(id ID, name string, dev bool) Entry {
	return Entry{ID: id, New: func(deps Deps) Dream {
		return &fakeDream{Base: Base{DreamID: id}, name: name, dev: dev, deps: deps}
	}}
}

func newTestStore(t *testing.T) *config.Store {
	t.Helper()
	return config.NewStore(filepath.Join(t.TempDir(), config.SettingsFileName), nil)
}

func testCatalog() []Entry {
	return []Entry{
		fakeEntry("alpha", "Alpha", false),
		fakeEntry("beta", "Beta", true),
		fakeEntry("gamma", "Gamma", false),
	}
}

type nopSurface struct{}

func (nopSurface) Bounds() Rect                                   { return Rect{Width: 10, Height: 10} }
func (nopSurface) Fill(Rect, colorscheme.Color)                   {}
func (nopSurface) Line(Point, Point, float64, colorscheme.Color)  {}
func (nopSurface) Circle(Point, float64, colorscheme.Color)       {}
func (nopSurface) Text(Point, float64, string, colorscheme.Color) {}

// stepControls bumps every Int it is shown by one.
type stepControls struct{ nopControls }

func (stepControls) Int(_ string, v *int, _, max int) bool {
	if *v >= max {
		return false
	}
	*v++
	return true
}

type nopControls struct{}

func (nopControls) Heading(string)                                         {}
func (nopControls) Label(string)                                           {}
func (nopControls) Float(string, *float64, float64, float64, float64) bool { return false }
func (nopControls) Int(string, *int, int, int) bool                        { return false }
func (nopControls) Color(string, *colorscheme.Color) bool                  { return false }
func (nopControls) Toggle(string, *bool) bool                              { return false }
func (nopControls) Choice(string, *int, []string) bool                     { return false }
func (nopControls) Button(string) bool                                     { return false }

func TestUpdateRate(t *testing.T) {
	assert.True(t, Smooth().IsSmooth())
	assert.Zero(t, Smooth().Interval())

	r := Fixed(2 * time.Second)
	assert.False(t, r.IsSmooth())
	assert.Equal(t, 2*time.Second, r.Interval())
	assert.Equal(t, "fixed(2s)", r.String())

	assert.True(t, Fixed(0).IsSmooth())
	assert.True(t, Fixed(-time.Second).IsSmooth())
	assert.Equal(t, "smooth", Smooth().String())
}

func TestRegistry_List(t *testing.T) {
	r := NewRegistry(testCatalog(), Deps{Settings: newTestStore(t)})

	var ids []ID
	for _, d := range r.List(false) {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []ID{"alpha", "gamma"}, ids)

	ids = nil
	for _, d := range r.List(true) {
		ids = append(ids, d.ID)
	}
	assert.Equal(t, []ID{"alpha", "beta", "gamma"}, ids)
}

func TestRegistry_Get(t *testing.T) {
	r := NewRegistry(testCatalog(), Deps{Settings: newTestStore(t)})

	h := r.Get("alpha", false)
	require.NotNil(t, h)
	assert.Equal(t, "Alpha", h.Name())
	assert.Same(t, h, r.Get("alpha", true), "instances are shared")

	assert.Nil(t, r.Get("beta", false))
	assert.NotNil(t, r.Get("beta", true))

	assert.Panics(t, func() { r.Get("missing", true) })

	_, ok := r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegistry_CatalogErrors(t *testing.T) {
	store := newTestStore(t)

	assert.Panics(t, func() {
		NewRegistry([]Entry{fakeEntry("a", "A", false), fakeEntry("a", "B", false)}, Deps{Settings: store})
	}, "duplicate id")

	assert.Panics(t, func() {
		NewRegistry([]Entry{fakeEntry("a", "Same", false), fakeEntry("b", "Same", false)}, Deps{Settings: store})
	}, "duplicate name")

	mismatched := fakeEntry("a", "A", false)
	mismatched.ID = "other"
	assert.Panics(t, func() {
		NewRegistry([]Entry{mismatched}, Deps{Settings: store})
	}, "constructor id mismatch")
}

func TestRegistry_Choose(t *testing.T) {
	r := NewRegistry(testCatalog(), Deps{Settings: newTestStore(t)})
	rng := rand.New(rand.NewPCG(1, 2))

	for range 20 {
		h, err := r.Choose([]string{"alpha", "beta", "unknown"}, false, rng)
		require.NoError(t, err)
		assert.Equal(t, ID("alpha"), h.ID())
	}

	seen := map[ID]bool{}
	for range 200 {
		h, err := r.Choose([]string{"alpha", "beta", "gamma"}, true, rng)
		require.NoError(t, err)
		seen[h.ID()] = true
	}
	assert.Len(t, seen, 3)

	_, err := r.Choose([]string{"beta", "unknown"}, false, rng)
	assert.ErrorIs(t, err, ErrNoEligibleDream)

	_, err = r.Choose(nil, true, nil)
	assert.ErrorIs(t, err, ErrNoEligibleDream)
}

func TestHandle_ConfigureStoresChange(t *testing.T) {
	store := newTestStore(t)
	r := NewRegistry(testCatalog(), Deps{Settings: store})
	h := r.Get("alpha", false)
	require.NoError(t, h.Prepare())

	changed, err := h.Configure(stepControls{})
	require.NoError(t, err)
	assert.True(t, changed)

	snap, err := store.Snapshot()
	require.NoError(t, err)
	assert.Contains(t, snap.DreamSettings["alpha"], "level = 2")

	changed, err = h.Configure(nopControls{})
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestHandle_PrepareError(t *testing.T) {
	boom := errors.New("boom")
	entry := Entry{ID: "bad", New: func(deps Deps) Dream {
		return &fakeDream{Base: Base{DreamID: "bad"}, name: "Bad", deps: deps, fail: boom}
	}}
	r := NewRegistry([]Entry{entry}, Deps{Settings: newTestStore(t)})

	err := r.Get("bad", false).Prepare()
	assert.ErrorIs(t, err, boom)
}

func TestHandle_ConcurrentRender(t *testing.T) {
	r := NewRegistry(testCatalog(), Deps{Settings: newTestStore(t)})
	h := r.Get("alpha", false)

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				h.Render(nopSurface{})
				_ = h.UpdateRate()
			}
		}()
	}
	wg.Wait()

	h.mu.RLock()
	defer h.mu.RUnlock()
	assert.Equal(t, 400, h.dream.(*fakeDream).renders)
}

func TestSettingsRoundTrip(t *testing.T) {
	store := newTestStore(t)
	r := NewRegistry(testCatalog(), Deps{Settings: store})

	h := r.Get("gamma", false)
	require.NoError(t, h.Prepare())
	_, err := h.Configure(stepControls{})
	require.NoError(t, err)
	require.NoError(t, r.StoreAll())

	fresh := NewRegistry(testCatalog(), Deps{Settings: store})
	g := fresh.Get("gamma", false)
	require.NoError(t, g.Prepare())
	assert.Equal(t, 2, g.dream.(*fakeDream).settings.Level)
}

func TestDecodeSettings_Fallback(t *testing.T) {
	store := newTestStore(t)
	defaults := fakeSettings{Level: 3, Label: "x"}

	assert.Equal(t, defaults, DecodeSettings(store, "alpha", defaults, nil), "missing blob")

	require.NoError(t, store.Write(func(s *config.Settings) {
		s.DreamSettings["alpha"] = "level = [[["
	}))
	assert.Equal(t, defaults, DecodeSettings(store, "alpha", defaults, nil), "corrupt blob")

	require.NoError(t, store.Write(func(s *config.Settings) {
		s.DreamSettings["alpha"] = "level = 7\n"
	}))
	assert.Equal(t, fakeSettings{Level: 7, Label: "x"}, DecodeSettings(store, "alpha", defaults, nil), "partial blob keeps defaults")
}

func TestBase_Unimplemented(t *testing.T) {
	b := Base{DreamID: "bare"}

	assert.Equal(t, ID("bare"), b.ID())
	assert.True(t, b.PreferredUpdateRate().IsSmooth())
	assert.NoError(t, b.Prepare())
	assert.NoError(t, b.Store())

	assert.PanicsWithError(t, "dream bare does not implement render", func() { b.Render(nopSurface{}) })
	assert.PanicsWithError(t, "dream bare does not implement configure", func() { b.Configure(nopControls{}) })
}
