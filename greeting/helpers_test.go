package greeting

import (
	"math"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/phanxgames/blossom"
)

const frame = time.Second / 60

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(7, 11))
}

func assertNear(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

// queueInput replays fixed frames, then reports an idle pointer.
type queueInput struct {
	frames []Frame
	last   Frame
}

func (q *queueInput) push(f ...Frame) { q.frames = append(q.frames, f...) }

func (q *queueInput) Poll() Frame {
	if len(q.frames) == 0 {
		return Frame{X: q.last.X, Y: q.last.Y}
	}
	f := q.frames[0]
	q.frames = q.frames[1:]
	q.last = f
	return f
}

// newTestPage builds a 1280x720 page driven by a queueInput.
func newTestPage(t *testing.T, mutate func(*Config)) (*Page, *queueInput) {
	t.Helper()
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	in := &queueInput{}
	p, err := NewPage(Options{
		Config:        cfg,
		Width:         1280,
		Height:        720,
		Input:         in,
		Rand:          testRand(),
		ScreenshotDir: t.TempDir(),
	})
	if err != nil {
		t.Fatalf("NewPage: %v", err)
	}
	return p, in
}

// stepPage runs n frames.
func stepPage(t *testing.T, p *Page, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		if err := p.Step(frame); err != nil {
			t.Fatalf("Step: %v", err)
		}
	}
}

// screenCenter returns the viewport center of a page rectangle.
func screenCenter(p *Page, r blossom.Rect) (float64, float64) {
	x, y := r.Center()
	return x, y - p.ScrollY()
}
