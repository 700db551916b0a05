package blossom

import (
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

func TestElementRemoveIsIdempotent(t *testing.T) {
	o := NewOverlay()
	e := o.Attach(KindSparkle, 1, 2, 3, ColorWhite)
	if o.Len() != 1 || o.Created() != 1 {
		t.Fatalf("Len/Created = %d/%d, want 1/1", o.Len(), o.Created())
	}
	if !e.Remove() {
		t.Error("first Remove should return true")
	}
	if e.Remove() {
		t.Error("second Remove should return false")
	}
	if !e.Removed() {
		t.Error("Removed() = false")
	}
	if o.Len() != 0 || o.Removed() != 1 {
		t.Errorf("Len/Removed = %d/%d, want 0/1", o.Len(), o.Removed())
	}
}

func TestOverlayDetachKeepsOrder(t *testing.T) {
	o := NewOverlay()
	a := o.Attach(KindSparkle, 0, 0, 1, ColorWhite)
	b := o.Attach(KindHeart, 0, 0, 1, ColorWhite)
	c := o.Attach(KindConfettiStar, 0, 0, 1, ColorWhite)
	b.Remove()
	els := o.Elements()
	if len(els) != 2 || els[0] != a || els[1] != c {
		t.Errorf("Elements() = %v, want [a c]", els)
	}
}

func TestOverlayRenderDoesNotClear(t *testing.T) {
	o := NewOverlay()
	o.Attach(KindSparkle, 10, 20, 4, ColorWhite).OffsetX = 5
	c := newRecordCanvas(100, 100)
	c.Fill(Shape{Kind: KindPetal})
	o.Render(c)
	if c.clears != 0 {
		t.Errorf("clears = %d, want 0", c.clears)
	}
	if len(c.shapes) != 2 {
		t.Fatalf("shapes = %d, want 2", len(c.shapes))
	}
	s := c.shapes[1]
	if s.X != 15 || s.Y != 20 || s.Kind != KindSparkle || s.ScaleX != 1 || s.Alpha != 1 {
		t.Errorf("shape = %+v", s)
	}
	o.Render(nil)
}

func TestElementAnimate(t *testing.T) {
	o := NewOverlay()
	e := o.Attach(KindSparkle, 0, 0, 4, ColorWhite)
	e.Animate(&e.OffsetY, 0, -100, time.Second, nil)
	if !e.Animating() {
		t.Fatal("expected animating")
	}
	o.Update(500 * time.Millisecond)
	assertNearTol(t, "OffsetY@0.5s", e.OffsetY, -50, 1e-3)
	o.Update(600 * time.Millisecond)
	assertNearTol(t, "OffsetY@end", e.OffsetY, -100, 1e-3)
	if e.Animating() {
		t.Error("expected finished")
	}
}

func TestElementAnimateAfterHoldsValue(t *testing.T) {
	o := NewOverlay()
	e := o.Attach(KindSparkle, 0, 0, 4, ColorWhite)
	e.AnimateAfter(200*time.Millisecond, &e.Alpha, 1, 0, 200*time.Millisecond, ease.Linear)
	o.Update(100 * time.Millisecond)
	assertNear(t, "Alpha during delay", e.Alpha, 1)
	o.Update(200 * time.Millisecond) // 100ms into the tween
	assertNearTol(t, "Alpha mid-tween", e.Alpha, 0.5, 1e-3)
	o.Update(time.Second)
	assertNearTol(t, "Alpha end", e.Alpha, 0, 1e-3)
}

func TestElementAnimateWritesStartImmediately(t *testing.T) {
	o := NewOverlay()
	e := o.Attach(KindSparkle, 0, 0, 4, ColorWhite)
	e.Animate(&e.Scale, 0, 1, time.Second, ease.OutBack)
	if e.Scale != 0 {
		t.Errorf("Scale = %v, want 0 before the first update", e.Scale)
	}
}

func TestOverlayClockStepsLateElementsPartially(t *testing.T) {
	timers := NewTimers()
	o := NewOverlay()
	o.SetClock(timers)

	early := o.Attach(KindSparkle, 0, 0, 1, ColorWhite)
	early.Animate(&early.Alpha, 1, 0, 100*time.Millisecond, ease.Linear)

	var late *Element
	timers.After(10*time.Millisecond, func() {
		late = o.Attach(KindSparkle, 0, 0, 1, ColorWhite)
		late.Animate(&late.Alpha, 1, 0, 100*time.Millisecond, ease.Linear)
	})

	timers.Advance(16 * time.Millisecond)
	o.Update(16 * time.Millisecond)
	if late == nil {
		t.Fatal("timer did not attach the element")
	}
	assertNearTol(t, "early alpha", early.Alpha, 0.84, 1e-4)
	assertNearTol(t, "late alpha", late.Alpha, 0.94, 1e-4)

	timers.Advance(16 * time.Millisecond)
	o.Update(16 * time.Millisecond)
	assertNearTol(t, "late alpha next frame", late.Alpha, 0.78, 1e-4)
}
