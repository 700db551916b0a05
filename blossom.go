package blossom

import (
	"image/color"
	"math/rand/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs when vertices are submitted to a canvas.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is opaque white.
var ColorWhite = Color{1, 1, 1, 1}

// WithAlpha returns c with its alpha replaced by a.
func (c Color) WithAlpha(a float64) Color {
	c.A = a
	return c
}

// toRGBA converts to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A)*255 + 0.5),
		G: uint8(clamp01(c.G*c.A)*255 + 0.5),
		B: uint8(clamp01(c.B*c.A)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

// Vec2 is a 2D vector used for positions and offsets.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Center returns the midpoint of the rectangle.
func (r Rect) Center() (float64, float64) {
	return r.X + r.Width/2, r.Y + r.Height/2
}

// Range is a general-purpose min/max range used for every randomized
// particle parameter.
type Range struct {
	Min float64 `yaml:"min"`
	Max float64 `yaml:"max"`
}

// Random returns a uniformly distributed value in [Min, Max). A nil rng
// uses the package-level source.
func (r Range) Random(rng *rand.Rand) float64 {
	if r.Min == r.Max {
		return r.Min
	}
	return r.Min + float01(rng)*(r.Max-r.Min)
}

// Contains reports whether v lies within [Min, Max].
func (r Range) Contains(v float64) bool {
	return v >= r.Min && v <= r.Max
}

// Kind identifies the visual shape of a particle.
type Kind uint8

const (
	KindPetal          Kind = iota // four-point bezier petal (field)
	KindHeart                      // small heart outline (field, heart burst)
	KindSparkle                    // glowing dot (trail, bursts)
	KindConfettiCircle             // round confetti piece
	KindConfettiSquare             // square confetti piece
	KindConfettiHeart              // heart glyph confetti
	KindConfettiStar               // four-point star glyph confetti
)

var kindNames = [...]string{
	KindPetal:          "petal",
	KindHeart:          "heart",
	KindSparkle:        "sparkle",
	KindConfettiCircle: "confetti-circle",
	KindConfettiSquare: "confetti-square",
	KindConfettiHeart:  "confetti-heart",
	KindConfettiStar:   "confetti-star",
}

// String returns the kind's name.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "unknown"
}

// float01 returns a value in [0, 1) from rng, or the global source when nil.
func float01(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}

// pick returns a uniformly chosen index in [0, n).
func pick(rng *rand.Rand, n int) int {
	if n <= 1 {
		return 0
	}
	if rng == nil {
		return rand.IntN(n)
	}
	return rng.IntN(n)
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
