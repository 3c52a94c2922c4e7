// Package render drives the per-frame loop across every viewport.
//
// The primary viewport's paint callback calls Orchestrator.Tick once per
// frame. Secondary viewports either replay a frame recorded during that tick
// (immediate presentation) or render the active dream from their own paint
// callback and schedule their own repaints (deferred presentation).
package render
