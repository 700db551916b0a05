package greeting

import (
	"image/color"
	"math"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/blossom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Phase is the stage of the preloader.
type Phase uint8

const (
	PhaseLoading  Phase = iota // loader visible, waiting for MarkLoaded or MaxLoad
	PhaseFading                // loader fading out, curtains closed
	PhaseOpening               // curtains sliding apart
	PhaseRevealed              // content visible, curtains still on screen
	PhaseDone                  // curtains removed
)

var phaseNames = [...]string{"loading", "fading", "opening", "revealed", "done"}

// String returns the phase name.
func (p Phase) String() string {
	if int(p) < len(phaseNames) {
		return phaseNames[p]
	}
	return "unknown"
}

type dust struct {
	x, y     float64 // fraction of the viewport
	size     float64
	alpha    float64
	period   float64 // seconds
	phaseOff float64
}

// Preloader is the loading screen and curtain reveal. It hides once, either
// MinLoad after MarkLoaded (measured from creation) or at MaxLoad, whichever
// comes first, then runs its phases on the page's timer queue:
// fade (FadeOut) → curtains open → ContentDelay → OnComplete → CleanupDelay
// → done.
type Preloader struct {
	// OnComplete runs once, when the content becomes visible.
	OnComplete func()

	cfg     PreloaderConfig
	timers  *blossom.Timers
	created time.Duration
	hidden  bool
	phase   Phase
	clock   float64 // seconds, for the dust float

	loaderAlpha  float64
	curtain      float64 // 0 closed, 1 fully open
	contentAlpha float64
	fade         *gween.Tween
	slide        *gween.Tween
	content      *gween.Tween

	dust []dust
}

// NewPreloader starts the loading screen and arms the MaxLoad fallback.
func NewPreloader(timers *blossom.Timers, cfg PreloaderConfig, rng *rand.Rand) *Preloader {
	p := &Preloader{
		cfg:         cfg,
		timers:      timers,
		created:     timers.Now(),
		loaderAlpha: 1,
	}
	for i := 0; i < cfg.Particles; i++ {
		p.dust = append(p.dust, dust{
			x:        randFloat(rng),
			y:        randFloat(rng),
			size:     2 + randFloat(rng)*4,
			alpha:    0.2 + randFloat(rng)*0.5,
			period:   2 + randFloat(rng)*2,
			phaseOff: randFloat(rng) * 2,
		})
	}
	timers.After(cfg.MaxLoad, p.hide)
	return p
}

// MarkLoaded reports that loading finished. The loader hides once MinLoad
// has passed since creation.
func (p *Preloader) MarkLoaded() {
	if p.hidden {
		return
	}
	remaining := p.cfg.MinLoad - (p.timers.Now() - p.created)
	p.timers.After(max(remaining, 0), p.hide)
}

func (p *Preloader) hide() {
	if p.hidden {
		return
	}
	p.hidden = true
	p.phase = PhaseFading
	p.fade = gween.New(1, 0, seconds(p.cfg.FadeOut), ease.Linear)

	p.timers.After(p.cfg.FadeOut, func() {
		p.phase = PhaseOpening
		p.slide = gween.New(0, 1, seconds(p.cfg.CurtainSlide), ease.InOutCubic)

		p.timers.After(p.cfg.ContentDelay, func() {
			p.phase = PhaseRevealed
			p.content = gween.New(0, 1, 0.5, ease.Linear)
			if p.OnComplete != nil {
				p.OnComplete()
			}

			p.timers.After(p.cfg.CleanupDelay, func() {
				p.phase = PhaseDone
				p.curtain = 1
			})
		})
	})
}

// Update advances the fade and slide tweens.
func (p *Preloader) Update(dt time.Duration) {
	s := seconds(dt)
	p.clock += float64(s)
	if p.fade != nil {
		v, done := p.fade.Update(s)
		p.loaderAlpha = float64(v)
		if done {
			p.fade = nil
		}
	}
	if p.slide != nil {
		v, done := p.slide.Update(s)
		if p.phase != PhaseDone {
			p.curtain = float64(v)
		}
		if done {
			p.slide = nil
		}
	}
	if p.content != nil {
		v, done := p.content.Update(s)
		p.contentAlpha = float64(v)
		if done {
			p.content = nil
		}
	}
}

// Phase returns the current phase.
func (p *Preloader) Phase() Phase {
	return p.phase
}

// Hidden reports whether hiding has begun.
func (p *Preloader) Hidden() bool {
	return p.hidden
}

// Complete reports whether the content is visible.
func (p *Preloader) Complete() bool {
	return p.phase >= PhaseRevealed
}

// ContentAlpha returns the page content opacity.
func (p *Preloader) ContentAlpha() float64 {
	return p.contentAlpha
}

// Curtain returns how far the curtains have opened, in [0, 1].
func (p *Preloader) Curtain() float64 {
	return p.curtain
}

var (
	curtainColor = color.RGBA{0x1a, 0x0b, 0x12, 0xff}
	loaderColor  = color.RGBA{0x0c, 0x0a, 0x0f, 0xff}
)

// Draw paints the curtains and, while it is still visible, the loader.
func (p *Preloader) Draw(dst *ebiten.Image) {
	if p.phase == PhaseDone {
		return
	}
	b := dst.Bounds()
	w, h := float32(b.Dx()), float32(b.Dy())
	half := w / 2
	off := half * float32(p.curtain)
	vector.DrawFilledRect(dst, -off, 0, half, h, curtainColor, false)
	vector.DrawFilledRect(dst, half+off, 0, half, h, curtainColor, false)

	if p.loaderAlpha <= 0 {
		return
	}
	a := float32(p.loaderAlpha)
	bg := scaleAlpha(loaderColor, a)
	vector.DrawFilledRect(dst, 0, 0, w, h, bg, false)
	for _, d := range p.dust {
		t := math.Sin((p.clock + d.phaseOff) / d.period * 2 * math.Pi)
		x := float32(d.x)*w + float32(5+5*t)
		y := float32(d.y)*h - float32(5+5*t)
		clr := color.RGBA{0xf4, 0x3f, 0x5e, 0xff}
		vector.DrawFilledCircle(dst, x, y, float32(d.size/2), scaleAlpha(clr, a*float32(d.alpha*(0.75+0.25*t))), true)
	}
	ebitenutil.DebugPrintAt(dst, "loading...", int(w/2)-30, int(h/2))
}

// scaleAlpha premultiplies c by a.
func scaleAlpha(c color.RGBA, a float32) color.RGBA {
	if a < 0 {
		a = 0
	} else if a > 1 {
		a = 1
	}
	return color.RGBA{
		R: uint8(float32(c.R) * a),
		G: uint8(float32(c.G) * a),
		B: uint8(float32(c.B) * a),
		A: uint8(float32(c.A) * a),
	}
}

func seconds(d time.Duration) float32 {
	return float32(d.Seconds())
}

func randFloat(rng *rand.Rand) float64 {
	if rng == nil {
		return rand.Float64()
	}
	return rng.Float64()
}
