package dbus

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/godbus/dbus/v5"
)

// Interfaces emitting ActiveChanged(bool). GNOME keeps its own name alongside
// the freedesktop one.
var screenSaverInterfaces = []string{
	"org.freedesktop.ScreenSaver",
	"org.gnome.ScreenSaver",
}

const activeChangedMember = "ActiveChanged"

// InactiveHandler is called when the session reports its screensaver ended.
type InactiveHandler func()

// ScreenSaverMonitor passively observes ActiveChanged signals.
type ScreenSaverMonitor struct {
	logger *slog.Logger

	mu         sync.Mutex
	conn       *dbus.Conn
	signals    chan *dbus.Signal
	done       chan struct{}
	onInactive InactiveHandler
}

// NewScreenSaverMonitor creates a new screensaver monitor.
func NewScreenSaverMonitor(logger *slog.Logger) *ScreenSaverMonitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &ScreenSaverMonitor{
		logger: logger,
	}
}

// SetInactiveHandler sets the callback for the screensaver turning off.
func (m *ScreenSaverMonitor) SetInactiveHandler(handler InactiveHandler) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onInactive = handler
}

// Start subscribes to ActiveChanged on the session bus.
func (m *ScreenSaverMonitor) Start() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn != nil {
		return nil
	}

	conn, err := dbus.SessionBus()
	if err != nil {
		return fmt.Errorf("failed to connect to session bus: %w", err)
	}

	if err := m.addMatchRules(conn); err != nil {
		return err
	}

	m.conn = conn
	m.signals = make(chan *dbus.Signal, 16)
	m.done = make(chan struct{})
	conn.Signal(m.signals)

	go m.processSignals(m.signals, m.done)

	m.logger.Debug("started screensaver monitor", "interfaces", screenSaverInterfaces)
	return nil
}

// matchRules is the part of *dbus.Conn that manages signal match rules.
type matchRules interface {
	AddMatchSignal(options ...dbus.MatchOption) error
	RemoveMatchSignal(options ...dbus.MatchOption) error
}

// addMatchRules subscribes to ActiveChanged on every interface. On failure the
// rules already added are removed again, since the bus connection is shared.
func (m *ScreenSaverMonitor) addMatchRules(conn matchRules) error {
	for i, iface := range screenSaverInterfaces {
		if err := conn.AddMatchSignal(matchOptions(iface)...); err != nil {
			m.removeMatchRules(conn, screenSaverInterfaces[:i])
			return fmt.Errorf("failed to add match rule for %s: %w", iface, err)
		}
	}
	return nil
}

func (m *ScreenSaverMonitor) removeMatchRules(conn matchRules, ifaces []string) {
	for _, iface := range ifaces {
		if err := conn.RemoveMatchSignal(matchOptions(iface)...); err != nil {
			m.logger.Debug("failed to remove match rule", "interface", iface, "error", err)
		}
	}
}

func matchOptions(iface string) []dbus.MatchOption {
	return []dbus.MatchOption{
		dbus.WithMatchInterface(iface),
		dbus.WithMatchMember(activeChangedMember),
	}
}

// processSignals reads signals until Stop.
func (m *ScreenSaverMonitor) processSignals(signals <-chan *dbus.Signal, done <-chan struct{}) {
	for {
		select {
		case sig, ok := <-signals:
			if !ok {
				return
			}
			m.handleSignal(sig)
		case <-done:
			return
		}
	}
}

// handleSignal invokes the handler for ActiveChanged(false).
func (m *ScreenSaverMonitor) handleSignal(sig *dbus.Signal) {
	if !isActiveChanged(sig.Name) {
		return
	}
	if len(sig.Body) < 1 {
		m.logger.Warn("malformed ActiveChanged signal", "body_len", len(sig.Body))
		return
	}
	active, ok := sig.Body[0].(bool)
	if !ok {
		m.logger.Warn("invalid ActiveChanged argument type", "sender", sig.Sender)
		return
	}

	m.logger.Debug("screensaver state changed", "active", active, "sender", sig.Sender)
	if active {
		return
	}

	m.mu.Lock()
	handler := m.onInactive
	m.mu.Unlock()
	if handler != nil {
		handler()
	}
}

func isActiveChanged(name string) bool {
	for _, iface := range screenSaverInterfaces {
		if name == iface+"."+activeChangedMember {
			return true
		}
	}
	return false
}

// Stop unsubscribes from the session bus. The shared connection stays open.
func (m *ScreenSaverMonitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.conn == nil {
		return
	}

	m.conn.RemoveSignal(m.signals)
	m.removeMatchRules(m.conn, screenSaverInterfaces)
	close(m.done)
	m.conn = nil
}
