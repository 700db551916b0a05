// Package blossom is a decorative particle engine for [Ebitengine] (with a
// terminal renderer for [tcell]).
//
// Blossom provides a falling petal and heart field, cursor sparkle trails,
// sparkle and heart bursts, and confetti, all driven by one Update and one
// Render call per frame.
//
// # Quick start
//
// Create an [Engine] over an offscreen [ImageCanvas] and drive it from your
// [ebiten.Game]:
//
//	canvas := blossom.NewImageCanvas(w, h)
//	eng := blossom.New(blossom.Options{
//		Config: blossom.DefaultConfig(), Width: w, Height: h, Surface: canvas,
//	})
//	eng.Start()
//
//	func (g *Game) Update() error {
//		g.eng.Update(time.Second / time.Duration(ebiten.TPS()))
//		return nil
//	}
//	func (g *Game) Draw(screen *ebiten.Image) {
//		g.eng.Render()
//		screen.DrawImage(canvas.Image(), nil)
//	}
//
// # Field
//
// A [Field] keeps an arena of base × density particle slots. Particles fall,
// drift on a sinusoid, spin and tumble; one that leaves the bottom edge is
// re-initialized in place just above the top edge, and one that leaves a
// side re-enters from the other side. [Field.SetDensity] grows or truncates
// the arena synchronously. The base count is chosen from the viewport width
// when the field is created.
//
// # Overlay
//
// Sparkles, hearts and confetti are [Element] values on an [Overlay]. The
// emitters ([Sparkles], [Confetti]) keep no element list: every element is
// animated by its own gween tracks and removed by its own one-shot [Timer],
// whether or not its animation has finished. [Element.Remove] is idempotent.
//
// # Time
//
// Nothing in blossom reads the wall clock. [Timers] is advanced by
// [Engine.Update], so the cursor trail throttle, staggered bursts, removals
// and the [ClickCounter] inactivity window all run on frame time and can be
// stepped deterministically in tests.
//
// # Reduced motion
//
// With [Config.ReducedMotion] set, [New] returns a disabled engine whose
// methods all do nothing.
//
// Configuration is YAML ([LoadConfig]); user preferences persist through
// [gdata] ([PreferenceStore]).
//
// [Ebitengine]: https://ebitengine.org
// [tcell]: https://github.com/gdamore/tcell
// [gdata]: https://github.com/quasilyte/gdata
package blossom
