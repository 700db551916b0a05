package blossom

import (
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// track animates one float64 field of an Element with a gween tween,
// optionally after a delay. Tracks on the same element run independently;
// a sequence is expressed as a second track whose delay equals the first
// track's duration.
type track struct {
	tween *gween.Tween
	field *float64
	delay float32 // seconds left before the tween starts
	done  bool
}

// update advances the track by dt seconds and writes the value.
func (t *track) update(dt float32) {
	if t.done {
		return
	}
	if t.delay > 0 {
		if dt <= t.delay {
			t.delay -= dt
			return
		}
		dt -= t.delay
		t.delay = 0
	}
	val, finished := t.tween.Update(dt)
	*t.field = float64(val)
	t.done = finished
}

// Animate tweens field from one value to another over duration using fn.
// The starting value is written immediately. field must point into e.
func (e *Element) Animate(field *float64, from, to float64, duration time.Duration, fn ease.TweenFunc) *Element {
	return e.AnimateAfter(0, field, from, to, duration, fn)
}

// AnimateAfter is Animate with a start delay. The field keeps its current
// value until the delay elapses.
func (e *Element) AnimateAfter(delay time.Duration, field *float64, from, to float64, duration time.Duration, fn ease.TweenFunc) *Element {
	if fn == nil {
		fn = ease.Linear
	}
	if delay <= 0 {
		*field = from
	}
	e.tracks = append(e.tracks, track{
		tween: gween.New(float32(from), float32(to), seconds(duration), fn),
		field: field,
		delay: seconds(delay),
	})
	return e
}

// Animating reports whether any track is still running.
func (e *Element) Animating() bool {
	for i := range e.tracks {
		if !e.tracks[i].done {
			return true
		}
	}
	return false
}

// advance steps every track by dt.
func (e *Element) advance(dt time.Duration) {
	s := seconds(dt)
	for i := range e.tracks {
		e.tracks[i].update(s)
	}
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}
