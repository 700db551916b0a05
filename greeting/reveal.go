package greeting

import (
	"time"

	"github.com/phanxgames/blossom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// RevealItem is one block of page content that fades in the first time it
// scrolls into view. Top and Height are in page coordinates.
type RevealItem struct {
	Top, Height float64
	Delay       time.Duration

	observed bool // intersection seen, reveal scheduled
	revealed bool
	alpha    float64
	rise     float64
	tween    *gween.Tween
}

// Revealed reports whether the item has started revealing.
func (it *RevealItem) Revealed() bool {
	return it.revealed
}

// Alpha returns the item's current opacity.
func (it *RevealItem) Alpha() float64 {
	return it.alpha
}

// Offset returns how far below its resting position the item is drawn.
func (it *RevealItem) Offset() float64 {
	return it.rise
}

// Reveal watches items against the viewport. An item is revealed once, Delay
// after at least Threshold of its height first lies inside the viewport
// shrunk by BottomMargin at the bottom. With reduced motion every item is
// revealed as soon as it is added.
type Reveal struct {
	cfg     RevealConfig
	timers  *blossom.Timers
	reduced bool
	items   []*RevealItem
}

// NewReveal creates a reveal tracker.
func NewReveal(timers *blossom.Timers, cfg RevealConfig, reducedMotion bool) *Reveal {
	return &Reveal{cfg: cfg, timers: timers, reduced: reducedMotion}
}

// Add registers an item.
func (r *Reveal) Add(top, height float64, delay time.Duration) *RevealItem {
	it := &RevealItem{Top: top, Height: height, Delay: delay, rise: r.cfg.Rise}
	if r.reduced {
		it.observed = true
		it.revealed = true
		it.alpha = 1
		it.rise = 0
	}
	r.items = append(r.items, it)
	return it
}

// Items returns the registered items.
func (r *Reveal) Items() []*RevealItem {
	return r.items
}

// Check tests every unobserved item against the viewport at scrollY.
func (r *Reveal) Check(scrollY, viewportHeight float64) {
	top := scrollY
	bottom := scrollY + viewportHeight - r.cfg.BottomMargin
	for _, it := range r.items {
		if it.observed || !r.intersects(it, top, bottom) {
			continue
		}
		it.observed = true
		r.timers.After(it.Delay, func() { r.start(it) })
	}
}

// intersects reports whether enough of it lies within [top, bottom].
func (r *Reveal) intersects(it *RevealItem, top, bottom float64) bool {
	if bottom <= top {
		return false
	}
	overlap := min(bottom, it.Top+it.Height) - max(top, it.Top)
	if it.Height <= 0 {
		return it.Top >= top && it.Top <= bottom
	}
	return overlap > 0 && overlap/it.Height >= r.cfg.Threshold
}

func (r *Reveal) start(it *RevealItem) {
	it.revealed = true
	it.tween = gween.New(0, 1, seconds(r.cfg.Fade), ease.OutCubic)
}

// Update advances reveal animations.
func (r *Reveal) Update(dt time.Duration) {
	s := seconds(dt)
	for _, it := range r.items {
		if it.tween == nil {
			continue
		}
		v, done := it.tween.Update(s)
		it.alpha = float64(v)
		it.rise = r.cfg.Rise * (1 - float64(v))
		if done {
			it.tween = nil
		}
	}
}
