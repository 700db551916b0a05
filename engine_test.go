package blossom

import (
	"testing"
	"time"
)

func newTestEngine(mutate func(*Config)) (*Engine, *recordCanvas) {
	cfg := DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	c := newRecordCanvas(1024, 768)
	e := New(Options{Config: cfg, Width: 1024, Height: 768, Surface: c, Rand: testRand()})
	return e, c
}

func TestReducedMotionEngineIsInert(t *testing.T) {
	e, c := newTestEngine(func(cfg *Config) { cfg.ReducedMotion = true })
	if e.Enabled() {
		t.Fatal("reduced-motion engine should be disabled")
	}

	e.Start()
	e.SetDensity(0.5)
	e.CreateSparkleAt(10, 10)
	e.MoveCursor(10, 10)
	e.HoverBurst(Rect{Width: 10, Height: 10})
	e.ScatterSparkles(Rect{Width: 10, Height: 10})
	e.HeartBurst(5, 5)
	e.SparkleExplosion(5, 5)
	for i := 0; i < 10; i++ {
		e.ClickHeart(Rect{Width: 10, Height: 10})
	}
	if n := e.Burst(100); n != 0 {
		t.Errorf("Burst() = %d, want 0", n)
	}
	e.Resize(10, 10)
	stepFrames(120, e.Update)
	e.Render()
	e.Stop()

	if e.IsRunning() {
		t.Error("IsRunning() = true")
	}
	if e.Overlay().Created() != 0 {
		t.Errorf("overlay created %d elements", e.Overlay().Created())
	}
	if e.Field().Count() != 0 {
		t.Errorf("field holds %d particles", e.Field().Count())
	}
	if c.clears != 0 || len(c.shapes) != 0 {
		t.Error("disabled engine touched the canvas")
	}
	if e.Clicks() != nil {
		t.Error("disabled engine has a click counter")
	}
	if (e.Stats() != Stats{}) {
		t.Errorf("Stats() = %+v, want zero", e.Stats())
	}
}

func TestEngineStartStop(t *testing.T) {
	e, c := newTestEngine(nil)
	if e.IsRunning() {
		t.Fatal("engine should not start until Start")
	}
	e.Start()
	e.Start()
	if !e.IsRunning() {
		t.Fatal("expected running")
	}
	e.Update(frame)
	e.Render()
	if len(c.shapes) != 40 {
		t.Errorf("shapes = %d, want 40", len(c.shapes))
	}
	e.Stop()
	if e.IsRunning() {
		t.Error("expected stopped")
	}
}

func TestEngineSetDensity(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.Start()
	e.SetDensity(0.25)
	e.SetDensity(0.5)
	if got := e.Stats().Petals; got != 20 {
		t.Errorf("petals = %d, want 20", got)
	}
}

func TestEngineClickHeartTriggersCelebration(t *testing.T) {
	e, _ := newTestEngine(nil)
	heart := Rect{X: 400, Y: 300, Width: 60, Height: 60}

	for i := 0; i < 4; i++ {
		e.ClickHeart(heart)
		e.Update(100 * time.Millisecond)
	}
	// Four heart bursts of eight, already removed after 600ms each or not.
	if got := e.Overlay().Created(); got != 32 {
		t.Fatalf("created after 4 clicks = %d, want 32", got)
	}

	e.ClickHeart(heart)
	if e.Clicks().Triggers() != 1 {
		t.Fatalf("triggers = %d, want 1", e.Clicks().Triggers())
	}
	stepFrames(600, e.Update) // 10s: everything scheduled has run and expired

	// 5 heart bursts + 200 confetti + 25 explosion sparkles.
	want := 5*8 + 200 + 25
	if got := e.Overlay().Created(); got != want {
		t.Errorf("created = %d, want %d", got, want)
	}
	if got := e.Overlay().Removed(); got != want {
		t.Errorf("removed = %d, want %d", got, want)
	}
	if e.Clicks().Count() != 0 {
		t.Errorf("count = %d, want 0", e.Clicks().Count())
	}
}

func TestEngineRenderSeparateLayer(t *testing.T) {
	cfg := DefaultConfig()
	surface := newRecordCanvas(800, 600)
	layer := newRecordCanvas(800, 600)
	e := New(Options{Config: cfg, Width: 800, Height: 600, Surface: surface, Layer: layer, Rand: testRand()})
	e.Start()
	e.CreateSparkleAt(100, 100)
	e.Update(frame)
	e.Render()
	if len(layer.shapes) != 1 || layer.shapes[0].Kind != KindSparkle {
		t.Errorf("layer shapes = %v, want one sparkle", layer.shapes)
	}
	if len(surface.shapes) != 40 {
		t.Errorf("surface shapes = %d, want 40", len(surface.shapes))
	}

	e.Resize(640, 480)
	if layer.w != 640 || surface.w != 640 {
		t.Errorf("resize not propagated: layer %d surface %d", layer.w, surface.w)
	}
}

func TestEngineRenderStoppedClearsSharedSurface(t *testing.T) {
	e, c := newTestEngine(nil)
	e.CreateSparkleAt(100, 100)
	e.Update(frame)
	e.Render()
	if c.clears != 1 {
		t.Errorf("clears = %d, want 1", c.clears)
	}
	if len(c.shapes) != 1 {
		t.Errorf("shapes = %d, want only the sparkle", len(c.shapes))
	}
}

func TestEngineWithoutSurfaceKeepsOverlay(t *testing.T) {
	e := New(Options{Config: DefaultConfig(), Width: 800, Height: 600, Rand: testRand()})
	if !e.Enabled() {
		t.Fatal("engine without surface should stay enabled")
	}
	e.Start()
	if e.IsRunning() {
		t.Error("field without surface should not run")
	}
	e.Burst(10)
	stepFrames(10, e.Update)
	e.Render()
	if e.Overlay().Created() == 0 {
		t.Error("confetti should still be created")
	}
}

func TestEngineStopKeepsOverlayRemovals(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.Start()
	e.HeartBurst(100, 100)
	e.Stop()
	e.Update(time.Second)
	if e.Overlay().Len() != 0 {
		t.Errorf("overlay Len() = %d after stop, want 0", e.Overlay().Len())
	}
}

func TestEngineStats(t *testing.T) {
	e, _ := newTestEngine(nil)
	e.Start()
	e.SetDensity(0.5)
	e.HeartBurst(0, 0)
	s := e.Stats()
	want := Stats{Running: true, Petals: 20, Base: 40, Density: 0.5, Overlay: 8, Created: 8, Removed: 0, Timers: 8}
	if s != want {
		t.Errorf("Stats() = %+v, want %+v", s, want)
	}
}

func TestEngineOnCelebrate(t *testing.T) {
	celebrations := 0
	e := New(Options{
		Config:      DefaultConfig(),
		Width:       800,
		Height:      600,
		Rand:        testRand(),
		OnCelebrate: func() { celebrations++ },
	})
	heart := Rect{X: 100, Y: 100, Width: 40, Height: 40}
	for i := 0; i < 4; i++ {
		e.ClickHeart(heart)
	}
	if celebrations != 0 {
		t.Fatalf("celebrated after 4 clicks")
	}
	e.ClickHeart(heart)
	if celebrations != 1 {
		t.Errorf("celebrations = %d after 5 clicks, want 1", celebrations)
	}
}
