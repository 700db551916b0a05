package blossom

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/tanema/gween/ease"
)

// Sparkles creates sparkle and heart overlay elements. It keeps no list of
// what it created: each element is handed to the overlay and gets its own
// removal timer. The only state is the trail's last-emission timestamp.
type Sparkles struct {
	cfg        SparkleConfig
	hearts     HeartConfig
	overlay    *Overlay
	timers     *Timers
	rng        *rand.Rand
	palette    []Color
	heartColor Color

	trailEnabled bool
	trailed      bool
	lastTrail    time.Duration
}

// NewSparkles creates a sparkle factory over overlay, scheduling removals
// on timers.
func NewSparkles(overlay *Overlay, timers *Timers, cfg SparkleConfig, hearts HeartConfig, rng *rand.Rand) *Sparkles {
	hc, err := hearts.Color.Color()
	if err != nil {
		hc = Color{0.96, 0.25, 0.37, 1}
	}
	return &Sparkles{
		cfg:          cfg,
		hearts:       hearts,
		overlay:      overlay,
		timers:       timers,
		rng:          rng,
		palette:      mustColors(cfg.Palette),
		heartColor:   hc,
		trailEnabled: true,
	}
}

// SetTrailEnabled turns the cursor trail on or off.
func (s *Sparkles) SetTrailEnabled(enabled bool) {
	s.trailEnabled = enabled
}

// Trail emits one jittered sparkle at the pointer if more than
// TrailInterval has passed since the previous trail sparkle. It reports
// whether a sparkle was emitted.
func (s *Sparkles) Trail(x, y float64) bool {
	if !s.trailEnabled {
		return false
	}
	now := s.timers.Now()
	if s.trailed && now-s.lastTrail <= s.cfg.TrailInterval {
		return false
	}
	s.trailed = true
	s.lastTrail = now

	j := s.cfg.TrailJitter
	x += (float01(s.rng) - 0.5) * j
	y += (float01(s.rng) - 0.5) * j
	size := s.cfg.TrailSize.Random(s.rng)
	e := s.spawn(KindSparkle, x, y, size, s.color(), s.cfg.TrailLifetime)
	e.Glow = size * 2
	life := s.cfg.TrailLifetime
	e.Animate(&e.Scale, 1, 0, life, ease.OutQuad).
		Animate(&e.Alpha, 1, 0, life, ease.Linear).
		Animate(&e.OffsetY, 0, -size*2, life, ease.OutQuad)
	return true
}

// SparkleAt creates a single twinkling sparkle at (x, y).
func (s *Sparkles) SparkleAt(x, y float64) *Element {
	return s.twinkle(x, y, s.cfg.SparkleSize.Random(s.rng), s.cfg.SparkleLifetime)
}

// HoverBurst scatters BurstCount sparkles inside the circle around r's
// center with radius max(w, h)/2, one every BurstStagger.
func (s *Sparkles) HoverBurst(r Rect) {
	cx, cy := r.Center()
	radius := math.Max(r.Width, r.Height) / 2
	for i := 0; i < s.cfg.BurstCount; i++ {
		s.timers.After(time.Duration(i)*s.cfg.BurstStagger, func() {
			angle := float01(s.rng) * 2 * math.Pi
			dist := float01(s.rng) * radius
			sin, cos := math.Sincos(angle)
			s.twinkle(cx+cos*dist, cy+sin*dist, s.cfg.BurstSize.Random(s.rng), s.cfg.BurstLifetime)
		})
	}
}

// Scatter drops ScatterCount sparkles at random points inside r, one every
// ScatterStagger. Used for photo hover.
func (s *Sparkles) Scatter(r Rect) {
	for i := 0; i < s.cfg.ScatterCount; i++ {
		s.timers.After(time.Duration(i)*s.cfg.ScatterStagger, func() {
			s.SparkleAt(r.X+float01(s.rng)*r.Width, r.Y+float01(s.rng)*r.Height)
		})
	}
}

// Explosion rings (cx, cy) with ExplosionCount sparkles at evenly spaced
// angles and random distances, one every ExplosionStagger.
func (s *Sparkles) Explosion(cx, cy float64) {
	n := s.cfg.ExplosionCount
	for i := 0; i < n; i++ {
		s.timers.After(time.Duration(i)*s.cfg.ExplosionStagger, func() {
			angle := float64(i) / float64(n) * 2 * math.Pi
			dist := s.cfg.ExplosionDistance.Random(s.rng)
			sin, cos := math.Sincos(angle)
			s.SparkleAt(cx+cos*dist, cy+sin*dist)
		})
	}
}

// HeartBurst sends Count hearts outward from (cx, cy) along evenly spaced
// directions. Each eases out (cubic) to its end point while fading and
// shrinking to half size, and is removed when the animation ends.
func (s *Sparkles) HeartBurst(cx, cy float64) {
	h := s.hearts
	for i := 0; i < h.Count; i++ {
		angle := float64(i) / float64(h.Count) * 2 * math.Pi
		dist := h.Distance.Random(s.rng)
		sin, cos := math.Sincos(angle)
		e := s.spawn(KindHeart, cx, cy, h.Size.Random(s.rng), s.heartColor, h.Duration)
		e.Glow = 10
		e.Animate(&e.OffsetX, 0, cos*dist, h.Duration, ease.OutCubic).
			Animate(&e.OffsetY, 0, sin*dist, h.Duration, ease.OutCubic).
			Animate(&e.Alpha, 1, 0, h.Duration, ease.Linear).
			Animate(&e.Scale, 1, 0.5, h.Duration, ease.Linear)
	}
}

// twinkle creates a sparkle that grows in, spins and shrinks out.
func (s *Sparkles) twinkle(x, y, size float64, life time.Duration) *Element {
	e := s.spawn(KindSparkle, x, y, size, s.color(), life)
	e.Glow = size
	grow := life * 2 / 5
	e.Animate(&e.Scale, 0, 1, grow, ease.OutBack).
		AnimateAfter(grow, &e.Scale, 1, 0, life-grow, ease.InQuad).
		Animate(&e.Rotation, 0, math.Pi, life, ease.Linear).
		AnimateAfter(life/2, &e.Alpha, 1, 0, life-life/2, ease.Linear)
	return e
}

// spawn attaches an element and schedules its unconditional removal.
func (s *Sparkles) spawn(kind Kind, x, y, size float64, clr Color, life time.Duration) *Element {
	e := s.overlay.Attach(kind, x, y, size, clr)
	s.timers.After(life, func() { e.Remove() })
	return e
}

func (s *Sparkles) color() Color {
	return s.palette[pick(s.rng, len(s.palette))]
}

var confettiKinds = [...]Kind{KindConfettiCircle, KindConfettiSquare, KindConfettiHeart, KindConfettiStar}

// Confetti drops pieces from above the viewport. Like Sparkles it keeps no
// piece list; every piece removes itself after its own fall duration.
type Confetti struct {
	cfg     ConfettiConfig
	overlay *Overlay
	timers  *Timers
	rng     *rand.Rand
	palette []Color

	width, height float64
}

// NewConfetti creates a confetti factory for a viewport of width × height.
func NewConfetti(overlay *Overlay, timers *Timers, cfg ConfettiConfig, width, height float64, rng *rand.Rand) *Confetti {
	return &Confetti{
		cfg:     cfg,
		overlay: overlay,
		timers:  timers,
		rng:     rng,
		palette: mustColors(cfg.Palette),
		width:   width,
		height:  height,
	}
}

// SetViewport updates the area pieces fall across.
func (c *Confetti) SetViewport(width, height float64) {
	c.width, c.height = width, height
}

// Burst schedules count pieces, one every Stagger. A count of zero or less
// uses the configured default. It returns the number scheduled.
func (c *Confetti) Burst(count int) int {
	if count <= 0 {
		count = c.cfg.Count
	}
	for i := 0; i < count; i++ {
		c.timers.After(time.Duration(i)*c.cfg.Stagger, c.piece)
	}
	return count
}

// piece creates one falling confetti piece.
func (c *Confetti) piece() {
	kind := confettiKinds[pick(c.rng, len(confettiKinds))]
	size := c.cfg.Size.Random(c.rng)
	clr := c.palette[pick(c.rng, len(c.palette))]
	fall := c.cfg.Fall.Random(c.rng)

	e := c.overlay.Attach(kind, float01(c.rng)*c.width, c.cfg.StartY, size, clr)
	c.timers.After(fall, func() { e.Remove() })
	if kind == KindConfettiHeart {
		e.Glow = size
	}

	drop := c.height - c.cfg.StartY + size
	sway := (float01(c.rng) - 0.5) * 120
	spin := (float01(c.rng) - 0.5) * 8 * math.Pi
	fade := fall * 3 / 10
	e.Animate(&e.OffsetY, 0, drop, fall, ease.Linear).
		Animate(&e.OffsetX, 0, sway, fall, ease.InOutSine).
		Animate(&e.Rotation, 0, spin, fall, ease.Linear).
		AnimateAfter(fall-fade, &e.Alpha, 1, 0, fade, ease.InQuad)
}
