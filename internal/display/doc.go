// Package display resolves the physical display topology a session renders
// on: one primary display and, when multiscreen is enabled, an ordered list
// of secondaries with stable viewport identities.
package display
