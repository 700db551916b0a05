package greeting

import (
	"math"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Lightbox is the full-screen photo viewer. Navigation wraps around; an
// empty gallery never opens.
type Lightbox struct {
	cfg   LightboxConfig
	count int
	index int
	open  bool

	alpha float64
	tween *gween.Tween
}

// NewLightbox creates a viewer over count photos.
func NewLightbox(cfg LightboxConfig, count int) *Lightbox {
	return &Lightbox{cfg: cfg, count: max(count, 0)}
}

// Open shows photo i. It reports whether the viewer opened.
func (lb *Lightbox) Open(i int) bool {
	if lb.count == 0 {
		return false
	}
	lb.index = wrap(i, lb.count)
	lb.open = true
	lb.tween = gween.New(float32(lb.alpha), 1, seconds(lb.cfg.Fade), ease.OutQuad)
	return true
}

// Close hides the viewer.
func (lb *Lightbox) Close() {
	if !lb.open {
		return
	}
	lb.open = false
	lb.tween = gween.New(float32(lb.alpha), 0, seconds(lb.cfg.Fade), ease.InQuad)
}

// Next moves to the following photo, wrapping to the first.
func (lb *Lightbox) Next() {
	if lb.count == 0 {
		return
	}
	lb.index = wrap(lb.index+1, lb.count)
}

// Prev moves to the preceding photo, wrapping to the last.
func (lb *Lightbox) Prev() {
	if lb.count == 0 {
		return
	}
	lb.index = wrap(lb.index-1, lb.count)
}

// Swipe handles a horizontal swipe where dx is start minus end. Travel
// beyond SwipeThreshold moves forward for positive dx and back for negative.
// It reports whether the swipe navigated.
func (lb *Lightbox) Swipe(dx float64) bool {
	if !lb.open || math.Abs(dx) <= lb.cfg.SwipeThreshold {
		return false
	}
	if dx > 0 {
		lb.Next()
	} else {
		lb.Prev()
	}
	return true
}

// HandleKey applies Escape, Left and Right while the viewer is open. It
// reports whether the key was consumed.
func (lb *Lightbox) HandleKey(k Key) bool {
	if !lb.open {
		return false
	}
	switch k {
	case KeyEscape:
		lb.Close()
	case KeyLeft:
		lb.Prev()
	case KeyRight:
		lb.Next()
	default:
		return false
	}
	return true
}

// IsOpen reports whether the viewer is showing.
func (lb *Lightbox) IsOpen() bool {
	return lb.open
}

// Index returns the current photo.
func (lb *Lightbox) Index() int {
	return lb.index
}

// Len returns the gallery size.
func (lb *Lightbox) Len() int {
	return lb.count
}

// Alpha returns the viewer's fade level; it stays above zero briefly after
// Close while fading out.
func (lb *Lightbox) Alpha() float64 {
	return lb.alpha
}

// Update advances the open/close fade.
func (lb *Lightbox) Update(dt time.Duration) {
	if lb.tween == nil {
		return
	}
	v, done := lb.tween.Update(seconds(dt))
	lb.alpha = float64(v)
	if done {
		lb.tween = nil
	}
}

func wrap(i, n int) int {
	return ((i % n) + n) % n
}
