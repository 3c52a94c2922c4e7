// Package gtkui implements the windowing layer on GTK4: monitor enumeration,
// one borderless window per display, cairo drawing and repaint timers.
//
// Everything in this package must run on the GTK main loop.
package gtkui
