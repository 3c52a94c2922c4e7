// Package input carries cancellation signals from the input layer to the
// render loop.
package input

import (
	"log/slog"
	"sync"
)

// Event is a reason to stop showing dreams.
type Event int

const (
	// EventPointerReleased is a mouse button or touch release on any viewport.
	EventPointerReleased Event = iota
	// EventKeyPressed is a key press on any viewport.
	EventKeyPressed
	// EventScreenSaverInactive is the session reporting the screensaver ended.
	EventScreenSaverInactive
	// EventInterrupt is a termination signal delivered to the process.
	EventInterrupt
)

func (e Event) String() string {
	switch e {
	case EventPointerReleased:
		return "pointer-released"
	case EventKeyPressed:
		return "key-pressed"
	case EventScreenSaverInactive:
		return "screensaver-inactive"
	case EventInterrupt:
		return "interrupt"
	default:
		return "unknown"
	}
}

// Bus is a buffered event channel. Publishing never blocks; when the buffer is
// full further events are dropped, since one pending event is enough to
// trigger teardown.
type Bus struct {
	events chan Event
	logger *slog.Logger

	mu     sync.Mutex
	closed bool
}

// NewBus creates a bus buffering up to size events.
func NewBus(size int, logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.Default()
	}
	if size < 1 {
		size = 1
	}
	return &Bus{
		events: make(chan Event, size),
		logger: logger,
	}
}

// Publish queues an event without blocking. It is safe for concurrent use.
func (b *Bus) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	select {
	case b.events <- e:
		b.logger.Debug("input event", "event", e.String())
	default:
		b.logger.Debug("input event dropped, bus full", "event", e.String())
	}
}

// Drain returns every queued event without blocking.
func (b *Bus) Drain() []Event {
	var out []Event
	for {
		select {
		case e, ok := <-b.events:
			if !ok {
				return out
			}
			out = append(out, e)
		default:
			return out
		}
	}
}

// Events exposes the channel for select loops.
func (b *Bus) Events() <-chan Event {
	return b.events
}

// Close stops accepting events and closes the channel.
func (b *Bus) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}
	b.closed = true
	close(b.events)
}
