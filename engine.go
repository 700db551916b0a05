package blossom

import (
	"math/rand/v2"
	"time"
)

// Options configures a new Engine.
type Options struct {
	Config Config
	// Width and Height describe the viewport; Width selects the field's base
	// count and both bound confetti.
	Width, Height int
	// Surface is the field's drawing surface. A nil Surface disables the
	// field but leaves the overlay emitters working.
	Surface Canvas
	// Layer receives overlay elements. Nil means draw on Surface.
	Layer Canvas
	// Rand is the random source for every particle parameter. Nil uses the
	// package-level source.
	Rand *rand.Rand
	// OnCelebrate runs after the click counter fires its confetti burst.
	OnCelebrate func()
}

// Engine ties the petal field and the overlay emitters to one timer queue.
// Host code holds the *Engine and calls it directly; it is driven by one
// Update and one Render per frame.
//
// When Config.ReducedMotion is set the engine is disabled: nothing is
// created and every method is a no-op.
type Engine struct {
	cfg     Config
	enabled bool
	debug   bool

	timers   *Timers
	field    *Field
	overlay  *Overlay
	sparkles *Sparkles
	confetti *Confetti
	clicks   *ClickCounter

	surface Canvas
	layer   Canvas
	target  Rect // last region passed to ClickHeart
	frames  uint64
}

// New builds an engine from opts.
func New(opts Options) *Engine {
	cfg := opts.Config
	e := &Engine{
		cfg:     cfg,
		enabled: !cfg.ReducedMotion,
		timers:  NewTimers(),
		overlay: NewOverlay(),
	}
	e.overlay.SetClock(e.timers)
	e.SetDebugMode(cfg.Debug)
	if !e.enabled {
		e.field = NewField(nil, cfg.Field, opts.Rand)
		debugf("reduced motion: engine disabled")
		return e
	}

	e.surface = opts.Surface
	e.layer = opts.Layer
	if e.layer == nil {
		e.layer = e.surface
	}
	e.field = NewField(e.surface, cfg.Field, opts.Rand)
	if !e.field.Enabled() {
		debugf("no drawing surface: petal field disabled")
	}
	e.sparkles = NewSparkles(e.overlay, e.timers, cfg.Sparkles, cfg.Hearts, opts.Rand)
	e.confetti = NewConfetti(e.overlay, e.timers, cfg.Confetti, float64(opts.Width), float64(opts.Height), opts.Rand)
	e.clicks = NewClickCounter(e.timers, cfg.Clicks.Threshold, cfg.Clicks.Reset)
	e.clicks.OnClick = func(int) {
		e.sparkles.HeartBurst(e.target.Center())
	}
	e.clicks.OnTrigger = func() {
		e.confetti.Burst(cfg.Clicks.Confetti)
		e.sparkles.Explosion(e.target.Center())
		if opts.OnCelebrate != nil {
			opts.OnCelebrate()
		}
	}
	return e
}

// Enabled reports whether the engine is active (reduced motion is off).
func (e *Engine) Enabled() bool {
	return e.enabled
}

// Start begins the petal loop. Idempotent.
func (e *Engine) Start() {
	if !e.enabled {
		return
	}
	e.field.Start()
}

// Stop halts the petal loop at the next frame boundary. Overlay elements
// already scheduled keep animating and are still removed on time.
func (e *Engine) Stop() {
	if !e.enabled {
		return
	}
	e.field.Stop()
}

// IsRunning reports whether the petal loop is active.
func (e *Engine) IsRunning() bool {
	return e.enabled && e.field.IsRunning()
}

// SetDensity keeps floor(base × fraction) petals active.
func (e *Engine) SetDensity(fraction float64) {
	if !e.enabled {
		return
	}
	e.field.SetDensity(fraction)
}

// CreateSparkleAt places one sparkle at (x, y).
func (e *Engine) CreateSparkleAt(x, y float64) {
	if !e.enabled {
		return
	}
	e.sparkles.SparkleAt(x, y)
}

// Burst schedules count confetti pieces (count ≤ 0 uses the default) and
// returns how many were scheduled.
func (e *Engine) Burst(count int) int {
	if !e.enabled {
		return 0
	}
	return e.confetti.Burst(count)
}

// MoveCursor feeds a pointer position to the throttled sparkle trail.
func (e *Engine) MoveCursor(x, y float64) {
	if !e.enabled {
		return
	}
	e.sparkles.Trail(x, y)
}

// HoverBurst bursts sparkles around an interactive region the pointer entered.
func (e *Engine) HoverBurst(r Rect) {
	if !e.enabled {
		return
	}
	e.sparkles.HoverBurst(r)
}

// ScatterSparkles drops a few sparkles at random points inside r.
func (e *Engine) ScatterSparkles(r Rect) {
	if !e.enabled {
		return
	}
	e.sparkles.Scatter(r)
}

// HeartBurst sends hearts outward from (cx, cy).
func (e *Engine) HeartBurst(cx, cy float64) {
	if !e.enabled {
		return
	}
	e.sparkles.HeartBurst(cx, cy)
}

// SparkleExplosion rings (cx, cy) with sparkles.
func (e *Engine) SparkleExplosion(cx, cy float64) {
	if !e.enabled {
		return
	}
	e.sparkles.Explosion(cx, cy)
}

// ClickHeart counts a click on region r: every click bursts hearts from its
// center, and the threshold click adds confetti and a sparkle explosion.
func (e *Engine) ClickHeart(r Rect) {
	if !e.enabled {
		return
	}
	e.target = r
	e.clicks.Click()
}

// Resize propagates a viewport change to the field, its canvas, a distinct
// overlay layer and confetti.
func (e *Engine) Resize(w, h int) {
	if !e.enabled || w <= 0 || h <= 0 {
		return
	}
	e.field.Resize(w, h)
	if e.layer != e.surface {
		if r, ok := e.layer.(Resizer); ok {
			r.Resize(w, h)
		}
	}
	e.confetti.SetViewport(float64(w), float64(h))
}

// Update advances one frame: due timers fire first, then overlay tracks
// and the petal field advance by dt. Elements a timer attached during this
// frame advance only from their timer's due time.
func (e *Engine) Update(dt time.Duration) {
	if !e.enabled {
		return
	}
	e.timers.Advance(dt)
	e.overlay.Update(dt)
	e.field.Update(dt)

	e.frames++
	if e.debug && e.frames%debugStatsInterval == 0 {
		debugf("%s", e.Stats())
	}
}

// Render draws the field and then the overlay.
func (e *Engine) Render() {
	if !e.enabled {
		return
	}
	shared := e.layer == e.surface
	if shared && !e.field.IsRunning() && e.layer != nil {
		e.layer.Clear()
	}
	e.field.Render()
	if !shared && e.layer != nil {
		e.layer.Clear()
	}
	e.overlay.Render(e.layer)
}

// Field returns the petal field.
func (e *Engine) Field() *Field {
	return e.field
}

// Overlay returns the overlay element container.
func (e *Engine) Overlay() *Overlay {
	return e.overlay
}

// Timers returns the engine's timer queue.
func (e *Engine) Timers() *Timers {
	return e.timers
}

// Clicks returns the heart click counter, or nil when disabled.
func (e *Engine) Clicks() *ClickCounter {
	return e.clicks
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}
