package blossom

import (
	"fmt"
	"os"
)

// debugStatsInterval is how many frames pass between stats lines.
const debugStatsInterval = 120

// globalDebug mirrors the most recently set Engine debug flag so that
// helpers without an Engine pointer can check it cheaply. Only valid with a
// single Engine.
var globalDebug bool

// Stats is a snapshot of the engine's particle counts.
type Stats struct {
	Running bool
	Petals  int
	Base    int
	Density float64
	Overlay int
	Created int
	Removed int
	Timers  int
}

// String formats the stats as a single log line.
func (s Stats) String() string {
	return fmt.Sprintf("running: %v | petals: %d/%d (density %.2f) | overlay: %d (created %d, removed %d) | timers: %d",
		s.Running, s.Petals, s.Base, s.Density, s.Overlay, s.Created, s.Removed, s.Timers)
}

// Stats returns the current counts. A disabled engine reports zeros.
func (e *Engine) Stats() Stats {
	if !e.enabled {
		return Stats{}
	}
	return Stats{
		Running: e.field.IsRunning(),
		Petals:  e.field.Count(),
		Base:    e.field.Base(),
		Density: e.field.Density(),
		Overlay: e.overlay.Len(),
		Created: e.overlay.Created(),
		Removed: e.overlay.Removed(),
		Timers:  e.timers.Pending(),
	}
}

// SetDebugMode enables or disables debug output. When enabled, disabled
// subsystems are reported and particle counts are printed to stderr every
// debugStatsInterval frames.
func (e *Engine) SetDebugMode(enabled bool) {
	e.debug = enabled
	globalDebug = enabled
}

// debugf prints a [blossom] line to stderr when debug mode is on.
func debugf(format string, args ...any) {
	if !globalDebug {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "[blossom] "+format+"\n", args...)
}
