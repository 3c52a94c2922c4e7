package dream

import (
	"fmt"
	"sync"
)

// Handle is the shared reference to a live dream instance.
type Handle struct {
	desc Descriptor

	mu    sync.RWMutex
	dream Dream
}

func newHandle(d Dream) *Handle {
	return &Handle{desc: describe(d), dream: d}
}

// Descriptor returns the catalog view of the dream.
func (h *Handle) Descriptor() Descriptor {
	return h.desc
}

// ID returns the dream id.
func (h *Handle) ID() ID {
	return h.desc.ID
}

// Name returns the display name.
func (h *Handle) Name() string {
	return h.desc.Name
}

// Render draws a frame under a shared lock.
func (h *Handle) Render(s Surface) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	h.dream.Render(s)
}

// UpdateRate returns the dream's current preferred rate.
func (h *Handle) UpdateRate() UpdateRate {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dream.PreferredUpdateRate()
}

// RequiresLoadScreen reports whether Prepare is slow enough to warrant a
// loading screen.
func (h *Handle) RequiresLoadScreen() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.dream.RequiresLoadScreen()
}

// Prepare runs the dream's initialization under an exclusive lock.
func (h *Handle) Prepare() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.dream.Prepare(); err != nil {
		return fmt.Errorf("failed to prepare dream %s: %w", h.desc.ID, err)
	}
	return nil
}

// Configure lays out the dream's controls under an exclusive lock. A change
// is stored into the settings immediately so dirty tracking observes it.
func (h *Handle) Configure(c Controls) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if !h.dream.Configure(c) {
		return false, nil
	}
	if err := h.dream.Store(); err != nil {
		return true, fmt.Errorf("failed to store dream %s: %w", h.desc.ID, err)
	}
	return true, nil
}

// Store serializes the dream's state under an exclusive lock.
func (h *Handle) Store() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if err := h.dream.Store(); err != nil {
		return fmt.Errorf("failed to store dream %s: %w", h.desc.ID, err)
	}
	return nil
}
