package blossom

import (
	"math"
	"math/rand/v2"
	"time"
)

// petal holds per-particle simulation state. Unexported; managed by Field.
// Size, opacity, color and kind are set once per (re)initialization.
type petal struct {
	x, y          float64
	speedX        float64
	speedY        float64
	rotation      float64 // degrees
	rotationSpeed float64 // degrees per frame
	size          float64
	oscSpeed      float64
	oscDistance   float64 // stored, not applied to drift
	oscOffset     float64
	flip          float64
	flipSpeed     float64
	opacity       float64
	color         Color
	kind          Kind
}

// Particle is a read-only snapshot of one field particle.
type Particle struct {
	X, Y                float64
	SpeedX, SpeedY      float64
	Rotation            float64
	RotationSpeed       float64
	Size                float64
	OscillationSpeed    float64
	OscillationDistance float64
	OscillationOffset   float64
	Flip                float64
	Opacity             float64
	Color               Color
	Kind                Kind
}

// Field is the falling petal and heart layer. It keeps an arena of
// particle slots sized to base × density; a particle that falls past the
// bottom edge is re-initialized in the same slot instead of being freed.
//
// A Field built without a canvas is disabled: every method is a no-op.
type Field struct {
	cfg     FieldConfig
	canvas  Canvas
	rng     *rand.Rand
	palette []Color

	particles []petal
	base      int
	density   float64
	running   bool

	width, height float64
	// elapsed is the frame clock in milliseconds fed to the drift sinusoid.
	elapsed float64
}

// NewField creates a field on canvas, sizing the arena from the canvas
// width (BaseCount at or above the breakpoint, NarrowBaseCount below) and
// filling it at density 1. A nil rng uses the package-level source.
func NewField(canvas Canvas, cfg FieldConfig, rng *rand.Rand) *Field {
	f := &Field{cfg: cfg, rng: rng, density: 1}
	if canvas == nil {
		return f
	}
	w, h := canvas.Size()
	if w <= 0 || h <= 0 {
		return f
	}
	f.canvas = canvas
	f.palette = mustColors(cfg.Palette)
	f.width, f.height = float64(w), float64(h)
	f.base = cfg.BaseCountFor(w)
	f.particles = make([]petal, f.base, f.base)
	for i := range f.particles {
		f.spawn(&f.particles[i], false)
	}
	return f
}

// Enabled reports whether the field has a surface to draw on.
func (f *Field) Enabled() bool {
	return f.canvas != nil
}

// Start begins the per-frame loop. Calling Start while running is a no-op.
func (f *Field) Start() {
	if f.canvas == nil || f.running {
		return
	}
	f.running = true
}

// Stop halts the loop; the next Update returns without advancing.
func (f *Field) Stop() {
	f.running = false
}

// IsRunning reports whether the loop is active.
func (f *Field) IsRunning() bool {
	return f.running
}

// Base returns the particle count at density 1.
func (f *Field) Base() int {
	return f.base
}

// Count returns the number of active particles.
func (f *Field) Count() int {
	return len(f.particles)
}

// Density returns the last density applied.
func (f *Field) Density() float64 {
	return f.density
}

// SetDensity resizes the arena to floor(base × fraction), truncating from
// the end or appending freshly initialized particles. fraction is clamped
// to [0, 1].
func (f *Field) SetDensity(fraction float64) {
	if f.canvas == nil {
		return
	}
	if math.IsNaN(fraction) {
		return
	}
	fraction = clamp01(fraction)
	f.density = fraction
	target := int(math.Floor(float64(f.base) * fraction))
	if target < len(f.particles) {
		clear(f.particles[target:])
		f.particles = f.particles[:target]
		return
	}
	for len(f.particles) < target {
		f.particles = f.particles[:len(f.particles)+1]
		f.spawn(&f.particles[len(f.particles)-1], false)
	}
}

// Resize updates the surface dimensions. Particle positions are not
// rescaled; anything left outside wraps back in on the following frames.
func (f *Field) Resize(w, h int) {
	if f.canvas == nil || w <= 0 || h <= 0 {
		return
	}
	if r, ok := f.canvas.(Resizer); ok {
		r.Resize(w, h)
	}
	f.width, f.height = float64(w), float64(h)
}

// Size returns the surface dimensions the field simulates against.
func (f *Field) Size() (float64, float64) {
	return f.width, f.height
}

// Update advances every particle by one frame. dt only feeds the drift
// clock; motion itself is per-frame.
func (f *Field) Update(dt time.Duration) {
	if !f.running {
		return
	}
	f.elapsed += float64(dt) / float64(time.Millisecond)
	for i := range f.particles {
		f.step(&f.particles[i])
	}
}

// step moves a single particle and applies the wrap rules.
func (f *Field) step(p *petal) {
	p.y += p.speedY
	p.x += math.Sin(f.elapsed*p.oscSpeed+p.oscOffset) * f.cfg.DriftScale
	p.x += p.speedX
	p.rotation += p.rotationSpeed
	p.flip += p.flipSpeed

	if p.y > f.height+p.size {
		f.spawn(p, true)
	}

	if p.x < -p.size {
		p.x = f.width + p.size
	} else if p.x > f.width+p.size {
		p.x = -p.size
	}
}

// Render clears the canvas and draws every particle. A stopped field leaves
// its last frame on the canvas.
func (f *Field) Render() {
	if !f.running {
		return
	}
	f.canvas.Clear()
	for i := range f.particles {
		f.canvas.Fill(f.particles[i].shape(f.cfg))
	}
}

// Particles returns a snapshot of the active particles.
func (f *Field) Particles() []Particle {
	out := make([]Particle, len(f.particles))
	for i := range f.particles {
		out[i] = f.particles[i].snapshot()
	}
	return out
}

// spawn re-draws every parameter of the slot. fromTop places it just above
// the top edge so it re-enters falling; otherwise it starts at a random height.
func (f *Field) spawn(p *petal, fromTop bool) {
	c := &f.cfg
	size := c.Size.Random(f.rng)
	kind := KindPetal
	if float01(f.rng) < c.HeartChance {
		kind = KindHeart
	}
	*p = petal{
		x:             float01(f.rng) * f.width,
		size:          size,
		speedY:        c.SpeedY.Random(f.rng),
		speedX:        c.SpeedX.Random(f.rng),
		rotation:      c.Rotation.Random(f.rng),
		rotationSpeed: c.RotationSpeed.Random(f.rng),
		oscSpeed:      c.OscillationSpeed.Random(f.rng),
		oscDistance:   c.OscillationDistance.Random(f.rng),
		oscOffset:     float01(f.rng) * 2 * math.Pi,
		color:         f.palette[pick(f.rng, len(f.palette))],
		opacity:       c.Opacity.Random(f.rng),
		flip:          c.Flip.Random(f.rng),
		flipSpeed:     c.FlipSpeed.Random(f.rng),
		kind:          kind,
	}
	if fromTop {
		p.y = -size
	} else {
		p.y = float01(f.rng) * f.height
	}
}

func (p *petal) shape(cfg FieldConfig) Shape {
	s := Shape{
		Kind:     p.kind,
		X:        p.x,
		Y:        p.y,
		Size:     p.size,
		Rotation: p.rotation * math.Pi / 180,
		ScaleX:   math.Cos(p.flip),
		ScaleY:   1,
		Color:    p.color,
		Alpha:    p.opacity,
	}
	if p.kind == KindHeart {
		s.Glow = cfg.HeartGlow
	} else {
		s.Glow = cfg.PetalGlow
		s.Gradient = true
	}
	return s
}

func (p *petal) snapshot() Particle {
	return Particle{
		X: p.x, Y: p.y,
		SpeedX: p.speedX, SpeedY: p.speedY,
		Rotation:            p.rotation,
		RotationSpeed:       p.rotationSpeed,
		Size:                p.size,
		OscillationSpeed:    p.oscSpeed,
		OscillationDistance: p.oscDistance,
		OscillationOffset:   p.oscOffset,
		Flip:                p.flip,
		Opacity:             p.opacity,
		Color:               p.color,
		Kind:                p.kind,
	}
}
