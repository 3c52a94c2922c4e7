// Package dbus watches the session bus for the desktop's screensaver state so
// a running dream session can end when the session unlocks or wakes.
package dbus
