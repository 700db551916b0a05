package greeting

import (
	"fmt"
	"image/color"
	"log"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/blossom"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Options configures a Page.
type Options struct {
	Config        Config
	Width, Height int
	// Input defaults to live ebiten input.
	Input Input
	// Rand seeds every random draw; nil uses the global source.
	Rand *rand.Rand
	// Prefs, when set, persists the stats and motion toggles.
	Prefs         *blossom.PreferenceStore
	ShowStats     bool
	ScreenshotDir string
	// Density caps the petal density; zero means full density.
	Density float64
	// OnCelebrate runs when the heart's click counter fires.
	OnCelebrate func()
	// ExitWhenDone ends the game loop once a scripted input has run out and
	// every queued screenshot is written.
	ExitWhenDone bool
}

// section is a block of page content with its reveal state.
type section struct {
	rect  blossom.Rect // page coordinates
	item  *RevealItem
	label string
	clr   blossom.Color
}

// Page is the greeting page as an ebiten.Game. It owns the engine and calls
// it directly: the preloader starts it, the pointer feeds the sparkle trail,
// notes burst on hover, photos scatter sparkles and open the lightbox, the
// heart drives the click counter and the wheel scrolls the page and thins
// the petals past the hero.
type Page struct {
	cfg    Config
	timers *blossom.Timers
	engine *blossom.Engine
	input  Input
	prefs  *blossom.PreferenceStore

	surface *blossom.ImageCanvas // petals and overlay; nil with reduced motion
	chrome  *blossom.ImageCanvas // page content

	preloader  *Preloader
	typewriter *Typewriter
	reveal     *Reveal
	lightbox   *Lightbox
	stats      *blossom.StatsWidget
	showStats  bool
	shots      *Screenshotter
	exitOnDone bool
	density    float64

	width, height int
	scrollY       float64
	pointerX      float64
	pointerY      float64
	loaded        bool
	seenPointer   bool
	effects       bool
	hovering      bool
	glow          cursorGlow
	hoverNote     int
	hoverPhoto    int
	pulse         float64
	pulseTween    *gween.Tween

	hero, heart blossom.Rect
	notes       []section
	photos      []section
	orbs        []Orb
	pageHeight  float64
	background  color.RGBA
}

var noteTexts = []string{
	"You make every ordinary day feel like a celebration.",
	"Thank you for every laugh, every late night talk.",
	"Wherever you go, you carry sunshine with you.",
	"Here's to all the adventures still waiting for us.",
	"You are loved more than these petals can say.",
	"Make a wish. Then let me help it come true.",
}

var photoHexes = []string{"#f43f5e", "#fb7185", "#e11d48", "#fda4af", "#be123c", "#9f1239"}

var orbHexes = []string{"#f43f5e", "#be123c", "#fb7185"}

// NewPage builds the page and its engine.
func NewPage(opts Options) (*Page, error) {
	if opts.Width <= 0 || opts.Height <= 0 {
		return nil, fmt.Errorf("new page: invalid viewport %dx%d", opts.Width, opts.Height)
	}
	cfg := opts.Config
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("new page: %w", err)
	}
	p := &Page{
		cfg:        cfg,
		timers:     blossom.NewTimers(),
		input:      opts.Input,
		prefs:      opts.Prefs,
		showStats:  opts.ShowStats,
		exitOnDone: opts.ExitWhenDone,
		density:    1,
		shots:      NewScreenshotter(opts.ScreenshotDir),
		width:      opts.Width,
		height:     opts.Height,
		hoverNote:  -1,
		hoverPhoto: -1,
		pulse:      1,
		glow:       newCursorGlow(ebiten.TPS()),
	}
	if opts.Density > 0 && opts.Density < 1 {
		p.density = opts.Density
	}
	if p.input == nil {
		p.input = NewEbitenInput()
	}
	bg, _ := cfg.Page.Background.Color()
	p.background = color.RGBA{R: uint8(bg.R * 255), G: uint8(bg.G * 255), B: uint8(bg.B * 255), A: 255}

	eopts := blossom.Options{
		Config:      cfg.Engine,
		Width:       opts.Width,
		Height:      opts.Height,
		Rand:        opts.Rand,
		OnCelebrate: opts.OnCelebrate,
	}
	if !cfg.Engine.ReducedMotion {
		p.surface = blossom.NewImageCanvas(opts.Width, opts.Height)
		eopts.Surface = p.surface
	}
	p.engine = blossom.New(eopts)
	p.chrome = blossom.NewImageCanvas(opts.Width, opts.Height)
	p.stats = blossom.NewStatsWidget(p.engine)

	p.typewriter = NewTypewriter(p.timers, cfg.Page.Typewriter)
	p.reveal = NewReveal(p.timers, cfg.Page.Reveal, cfg.Engine.ReducedMotion)
	p.layout()
	p.lightbox = NewLightbox(cfg.Page.Lightbox, len(p.photos))

	p.preloader = NewPreloader(p.timers, cfg.Page.Preloader, opts.Rand)
	p.preloader.OnComplete = p.onReady
	p.timers.After(cfg.Page.EffectsDelay, func() { p.effects = true })
	return p, nil
}

// onReady runs when the preloader reveals the content.
func (p *Page) onReady() {
	p.engine.Start()
	p.engine.SetDensity(p.density * DensityForScroll(p.scrollY, p.hero.Height))
	p.typewriter.Start()
	p.reveal.Check(p.scrollY, float64(p.height))
}

// layout places every section for the current viewport. Reveal items are
// created on the first call and moved on later calls.
func (p *Page) layout() {
	w, h := float64(p.width), float64(p.height)
	p.hero = blossom.Rect{Width: w, Height: h}
	const heartSize = 90
	p.heart = blossom.Rect{X: w/2 - heartSize/2, Y: h*0.68 - heartSize/2, Width: heartSize, Height: heartSize}

	const margin, gap = 40.0, 24.0
	cols := 3
	if p.width < p.cfg.Engine.Field.Breakpoint {
		cols = 1
	}
	cardW := (w - 2*margin - float64(cols-1)*gap) / float64(cols)
	y := h + 100
	place := func(dst []section, n int, cellH float64, label func(int) string, hex func(int) string) ([]section, float64) {
		first := dst == nil
		for i := 0; i < n; i++ {
			col, row := i%cols, i/cols
			r := blossom.Rect{
				X:      margin + float64(col)*(cardW+gap),
				Y:      y + float64(row)*(cellH+gap),
				Width:  cardW,
				Height: cellH,
			}
			if first {
				c, _ := blossom.Swatch{Hex: hex(i)}.Color()
				s := section{rect: r, label: label(i), clr: c}
				s.item = p.reveal.Add(r.Y, r.Height, time.Duration(col)*100*time.Millisecond)
				dst = append(dst, s)
				continue
			}
			dst[i].rect = r
			dst[i].item.Top, dst[i].item.Height = r.Y, r.Height
		}
		rows := (n + cols - 1) / cols
		return dst, y + float64(rows)*(cellH+gap)
	}

	var end float64
	p.notes, end = place(p.notes, len(noteTexts), 150,
		func(i int) string { return noteTexts[i] },
		func(int) string { return "#1f1720" })
	y = end + 120
	p.photos, end = place(p.photos, len(photoHexes), cardW*0.75,
		func(i int) string { return fmt.Sprintf("photo %d", i+1) },
		func(i int) string { return photoHexes[i] })
	p.pageHeight = end + 140

	p.orbs = p.orbs[:0]
	for i, at := range [...]struct{ x, y, r float64 }{
		{w * 0.2, h * 0.25, 160},
		{w * 0.8, h * 0.4, 200},
		{w * 0.5, h * 1.3, 240},
	} {
		c, _ := blossom.Swatch{Hex: orbHexes[i]}.Color()
		p.orbs = append(p.orbs, Orb{X: at.x, Y: at.y, Radius: at.r, Color: c})
	}
}

// Update implements ebiten.Game.
func (p *Page) Update() error {
	return p.Step(time.Second / time.Duration(ebiten.TPS()))
}

// Step advances the page by dt with one polled input frame.
func (p *Page) Step(dt time.Duration) error {
	f := p.input.Poll()
	if !p.loaded {
		p.loaded = true
		p.preloader.MarkLoaded()
	}
	p.timers.Advance(dt)
	p.preloader.Update(dt)
	p.reveal.Update(dt)
	p.lightbox.Update(dt)
	if p.pulseTween != nil {
		v, done := p.pulseTween.Update(seconds(dt))
		p.pulse = float64(v)
		if done {
			p.pulseTween = nil
		}
	}

	p.handle(f)
	p.glow.step(p.pointerX, p.pointerY, p.hovering)

	p.engine.Update(dt)
	if p.showStats {
		p.stats.Update(dt)
	}
	if p.exitOnDone && p.Done() && p.shots.Pending() == 0 {
		return ebiten.Termination
	}
	return nil
}

func (p *Page) handle(f Frame) {
	if f.Screenshot != "" {
		p.shots.Queue(f.Screenshot)
	}
	if f.Pressed(KeyStats) {
		p.showStats = !p.showStats
		p.savePrefs(func(pr *blossom.Preferences) { pr.ShowStats = p.showStats })
	}
	if f.Pressed(KeyMotion) {
		p.savePrefs(func(pr *blossom.Preferences) { pr.ReducedMotion = !pr.ReducedMotion })
	}

	if f.Moved {
		if !p.seenPointer {
			p.seenPointer = true
			p.glow.jump(f.X, f.Y)
		}
		p.pointerX, p.pointerY = f.X, f.Y
		if p.effects {
			p.engine.MoveCursor(f.X, f.Y)
		}
	}
	if !p.preloader.Complete() {
		return
	}

	if p.lightbox.IsOpen() {
		for _, k := range f.Keys {
			p.lightbox.HandleKey(k)
		}
		if f.Swipe != 0 {
			p.lightbox.Swipe(f.Swipe)
		}
		if f.Clicked {
			p.clickLightbox(f.X, f.Y)
		}
		return
	}

	if f.WheelY != 0 {
		p.ScrollTo(p.scrollY - f.WheelY*p.cfg.Page.Scroll.Step)
	}
	p.updateHover(f.X, f.Y)
	if f.Clicked {
		p.click(f.X, f.Y)
	}
}

// ScrollTo moves the page, adjusting petal density and reveals.
func (p *Page) ScrollTo(y float64) {
	p.scrollY = clampScroll(y, p.pageHeight-float64(p.height))
	p.engine.SetDensity(p.density * DensityForScroll(p.scrollY, p.hero.Height))
	p.reveal.Check(p.scrollY, float64(p.height))
}

// updateHover fires enter effects for notes and photos under the pointer.
func (p *Page) updateHover(x, y float64) {
	py := y + p.scrollY
	note := hit(p.notes, x, py)
	if note != p.hoverNote {
		p.hoverNote = note
		if note >= 0 && p.effects {
			p.engine.HoverBurst(p.toScreen(p.notes[note].rect))
		}
	}
	photo := hit(p.photos, x, py)
	if photo != p.hoverPhoto {
		p.hoverPhoto = photo
		if photo >= 0 && p.effects {
			p.engine.ScatterSparkles(p.toScreen(p.photos[photo].rect))
		}
	}
	p.hovering = note >= 0 || photo >= 0 || p.heart.Contains(x, py)
}

func (p *Page) click(x, y float64) {
	py := y + p.scrollY
	if p.heart.Contains(x, py) {
		p.engine.ClickHeart(p.toScreen(p.heart))
		p.pulseTween = gween.New(1.4, 1, 0.2, ease.OutQuad)
		p.pulse = 1.4
		return
	}
	if i := hit(p.photos, x, py); i >= 0 {
		p.lightbox.Open(i)
	}
}

// Lightbox chrome in viewport coordinates.
func (p *Page) lightboxRects() (image, prev, next, closeBtn blossom.Rect) {
	w, h := float64(p.width), float64(p.height)
	image = blossom.Rect{X: w * 0.15, Y: h * 0.12, Width: w * 0.7, Height: h * 0.76}
	prev = blossom.Rect{X: 16, Y: h/2 - 30, Width: 60, Height: 60}
	next = blossom.Rect{X: w - 76, Y: h/2 - 30, Width: 60, Height: 60}
	closeBtn = blossom.Rect{X: w - 66, Y: 16, Width: 50, Height: 50}
	return
}

func (p *Page) clickLightbox(x, y float64) {
	image, prev, next, closeBtn := p.lightboxRects()
	switch {
	case prev.Contains(x, y):
		p.lightbox.Prev()
	case next.Contains(x, y):
		p.lightbox.Next()
	case closeBtn.Contains(x, y):
		p.lightbox.Close()
	case image.Contains(x, y):
	default:
		p.lightbox.Close()
	}
}

func (p *Page) savePrefs(apply func(*blossom.Preferences)) {
	if p.prefs == nil {
		return
	}
	pr := p.prefs.Get()
	apply(&pr)
	p.prefs.Set(pr)
	if err := p.prefs.Save(); err != nil {
		log.Printf("[greeting] save preferences: %v", err)
	}
}

func (p *Page) toScreen(r blossom.Rect) blossom.Rect {
	r.Y -= p.scrollY
	return r
}

func hit(sections []section, x, y float64) int {
	for i := range sections {
		if sections[i].rect.Contains(x, y) {
			return i
		}
	}
	return -1
}

// Draw implements ebiten.Game.
func (p *Page) Draw(screen *ebiten.Image) {
	screen.Fill(p.background)

	if a := p.preloader.ContentAlpha(); a > 0 {
		p.drawContent(screen, a)
	}

	if p.surface != nil {
		p.engine.Render()
		screen.DrawImage(p.surface.Image(), nil)
	}

	if p.effects && !p.cfg.Engine.ReducedMotion {
		vector.DrawFilledCircle(screen, float32(p.glow.x), float32(p.glow.y), float32(p.glow.r), color.RGBA{0x3d, 0x0c, 0x16, 0x40}, true)
	}

	p.drawLightbox(screen)
	p.preloader.Draw(screen)

	if p.showStats {
		p.stats.Draw(screen, 8, 8)
	}
	p.shots.Flush(screen)
}

func (p *Page) drawContent(screen *ebiten.Image, alpha float64) {
	c := p.chrome
	c.Clear()
	w, h := float64(p.width), float64(p.height)
	for i, o := range p.orbs {
		dx, dy := OrbOffset(i, p.scrollY, p.pointerX, p.pointerY, w, h)
		c.Fill(blossom.Shape{
			Kind: blossom.KindConfettiCircle, X: o.X + dx, Y: o.Y + dy - p.scrollY,
			Size: o.Radius * 2, ScaleX: 1, ScaleY: 1, Color: o.Color, Alpha: 0.08, Glow: o.Radius,
		})
	}

	hx, hy := p.heart.Center()
	c.Fill(blossom.Shape{
		Kind: blossom.KindHeart, X: hx, Y: hy - p.scrollY, Size: p.heart.Width * 1.6 * p.pulse,
		ScaleX: 1, ScaleY: 1, Color: blossom.Color{R: 0.96, G: 0.25, B: 0.37, A: 1}, Alpha: 1, Glow: 16,
	})

	for _, group := range [][]section{p.notes, p.photos} {
		for _, s := range group {
			r := p.toScreen(s.rect)
			r.Y += s.item.Offset()
			if r.Y > h || r.Y+r.Height < 0 || s.item.Alpha() <= 0 {
				continue
			}
			c.FillRect(r, s.clr.WithAlpha(s.clr.A*s.item.Alpha()))
		}
	}

	var op ebiten.DrawImageOptions
	op.ColorScale.ScaleAlpha(float32(alpha))
	screen.DrawImage(c.Image(), &op)

	ebitenutil.DebugPrintAt(screen, "Happy Birthday!", p.width/2-45, int(h*0.3-p.scrollY))
	ebitenutil.DebugPrintAt(screen, p.typewriter.Text()+"|", p.width/2-180, int(h*0.4-p.scrollY))
	for _, group := range [][]section{p.notes, p.photos} {
		for _, s := range group {
			if s.item.Alpha() < 0.5 {
				continue
			}
			r := p.toScreen(s.rect)
			ebitenutil.DebugPrintAt(screen, s.label, int(r.X)+12, int(r.Y+s.item.Offset())+12)
		}
	}
	year := time.Now().Year()
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("(c) %d", year), p.width/2-30, int(p.pageHeight-60-p.scrollY))
}

func (p *Page) drawLightbox(screen *ebiten.Image) {
	a := p.lightbox.Alpha()
	if a <= 0 {
		return
	}
	w, h := float32(p.width), float32(p.height)
	vector.DrawFilledRect(screen, 0, 0, w, h, scaleAlpha(color.RGBA{0, 0, 0, 230}, float32(a)), false)

	image, prev, next, closeBtn := p.lightboxRects()
	clr := p.photos[p.lightbox.Index()].clr
	photo := color.RGBA{R: uint8(clr.R * 255), G: uint8(clr.G * 255), B: uint8(clr.B * 255), A: 255}
	vector.DrawFilledRect(screen, float32(image.X), float32(image.Y), float32(image.Width), float32(image.Height), scaleAlpha(photo, float32(a)), true)
	button := scaleAlpha(color.RGBA{255, 255, 255, 40}, float32(a))
	for _, r := range []blossom.Rect{prev, next, closeBtn} {
		vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), button, true)
	}
	ebitenutil.DebugPrintAt(screen, "<", int(prev.X)+26, int(prev.Y)+22)
	ebitenutil.DebugPrintAt(screen, ">", int(next.X)+26, int(next.Y)+22)
	ebitenutil.DebugPrintAt(screen, "x", int(closeBtn.X)+21, int(closeBtn.Y)+17)
	ebitenutil.DebugPrintAt(screen, p.photos[p.lightbox.Index()].label, int(image.X)+12, int(image.Y)+12)
}

// Layout implements ebiten.Game. A new outside size resizes the engine
// surfaces and reflows the sections.
func (p *Page) Layout(outsideWidth, outsideHeight int) (int, int) {
	p.Resize(outsideWidth, outsideHeight)
	return p.width, p.height
}

// Resize reflows the page for a new viewport.
func (p *Page) Resize(w, h int) {
	if w <= 0 || h <= 0 || (w == p.width && h == p.height) {
		return
	}
	p.width, p.height = w, h
	p.engine.Resize(w, h)
	p.chrome.Resize(w, h)
	p.layout()
	p.ScrollTo(p.scrollY)
}

// Engine returns the page's particle engine.
func (p *Page) Engine() *blossom.Engine { return p.engine }

// Preloader returns the loading screen.
func (p *Page) Preloader() *Preloader { return p.preloader }

// Typewriter returns the hero headline.
func (p *Page) Typewriter() *Typewriter { return p.typewriter }

// Lightbox returns the photo viewer.
func (p *Page) Lightbox() *Lightbox { return p.lightbox }

// Reveal returns the scroll reveal tracker.
func (p *Page) Reveal() *Reveal { return p.reveal }

// ScrollY returns the page scroll offset.
func (p *Page) ScrollY() float64 { return p.scrollY }

// HeroBottom returns the page y of the end of the hero section.
func (p *Page) HeroBottom() float64 { return p.hero.Height }

// Heart returns the main heart's page rectangle.
func (p *Page) Heart() blossom.Rect { return p.heart }

// Photo returns photo i's page rectangle.
func (p *Page) Photo(i int) blossom.Rect { return p.photos[i].rect }

// Note returns note i's page rectangle.
func (p *Page) Note(i int) blossom.Rect { return p.notes[i].rect }

// EffectsEnabled reports whether pointer effects have started.
func (p *Page) EffectsEnabled() bool { return p.effects }

// StatsVisible reports whether the stats widget is shown.
func (p *Page) StatsVisible() bool { return p.showStats }

// Screenshots returns the capture queue.
func (p *Page) Screenshots() *Screenshotter { return p.shots }

// Done reports whether a scripted input source has run out of steps.
func (p *Page) Done() bool {
	if s, ok := p.input.(*ScriptInput); ok {
		return s.Done()
	}
	return false
}
