package blossom

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"
)

// frame is one tick at 60 TPS.
const frame = time.Second / 60

// recordCanvas is a Canvas that remembers what was drawn since the last Clear.
type recordCanvas struct {
	w, h    int
	clears  int
	shapes  []Shape
	resizes int
}

func newRecordCanvas(w, h int) *recordCanvas {
	return &recordCanvas{w: w, h: h}
}

func (c *recordCanvas) Size() (int, int) { return c.w, c.h }

func (c *recordCanvas) Clear() {
	c.clears++
	c.shapes = c.shapes[:0]
}

func (c *recordCanvas) Fill(s Shape) { c.shapes = append(c.shapes, s) }

func (c *recordCanvas) Resize(w, h int) {
	c.w, c.h = w, h
	c.resizes++
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

// stepFrames advances fn n times by one frame.
func stepFrames(n int, fn func(time.Duration)) {
	for i := 0; i < n; i++ {
		fn(frame)
	}
}

func assertNear(t *testing.T, name string, got, want float64) {
	t.Helper()
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("%s = %v, want %v", name, got, want)
	}
}

func assertNearTol(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}
