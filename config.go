package blossom

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"gopkg.in/yaml.v3"
)

// Swatch is a palette entry as written in YAML: a CSS-style hex color plus
// an alpha. An alpha of zero means opaque.
type Swatch struct {
	Hex   string  `yaml:"hex"`
	Alpha float64 `yaml:"alpha,omitempty"`
}

// Color parses the swatch into a Color.
func (s Swatch) Color() (Color, error) {
	c, err := colorful.Hex(s.Hex)
	if err != nil {
		return Color{}, fmt.Errorf("swatch %q: %w", s.Hex, err)
	}
	a := s.Alpha
	if a == 0 {
		a = 1
	}
	return Color{R: c.R, G: c.G, B: c.B, A: clamp01(a)}, nil
}

// Palette is an ordered list of swatches; particles pick one uniformly.
type Palette []Swatch

// Colors parses every swatch.
func (p Palette) Colors() ([]Color, error) {
	out := make([]Color, 0, len(p))
	for _, s := range p {
		c, err := s.Color()
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// DurationRange is a min/max range of durations.
type DurationRange struct {
	Min time.Duration `yaml:"min"`
	Max time.Duration `yaml:"max"`
}

// Random returns a uniformly distributed duration in [Min, Max).
func (r DurationRange) Random(rng *rand.Rand) time.Duration {
	if r.Min >= r.Max {
		return r.Min
	}
	return r.Min + time.Duration(float01(rng)*float64(r.Max-r.Min))
}

// FieldConfig controls the falling petal field.
type FieldConfig struct {
	// BaseCount is the particle count at density 1 on wide viewports.
	BaseCount int `yaml:"baseCount"`
	// NarrowBaseCount is used instead of BaseCount below Breakpoint.
	NarrowBaseCount int `yaml:"narrowBaseCount"`
	// Breakpoint is the viewport width (pixels) separating narrow from wide.
	Breakpoint int `yaml:"breakpoint"`

	Size                Range `yaml:"size"`
	SpeedX              Range `yaml:"speedX"`
	SpeedY              Range `yaml:"speedY"`
	Rotation            Range `yaml:"rotation"`      // degrees
	RotationSpeed       Range `yaml:"rotationSpeed"` // degrees per frame
	OscillationSpeed    Range `yaml:"oscillationSpeed"`
	OscillationDistance Range `yaml:"oscillationDistance"`
	Opacity             Range `yaml:"opacity"`
	Flip                Range `yaml:"flip"`
	FlipSpeed           Range `yaml:"flipSpeed"`

	// HeartChance is the probability that a particle is a heart, not a petal.
	HeartChance float64 `yaml:"heartChance"`
	// DriftScale multiplies the sinusoidal horizontal drift.
	DriftScale float64 `yaml:"driftScale"`
	PetalGlow  float64 `yaml:"petalGlow"`
	HeartGlow  float64 `yaml:"heartGlow"`

	Palette Palette `yaml:"palette"`
}

// SparkleConfig controls the cursor trail and every sparkle burst.
type SparkleConfig struct {
	TrailInterval time.Duration `yaml:"trailInterval"`
	TrailLifetime time.Duration `yaml:"trailLifetime"`
	TrailJitter   float64       `yaml:"trailJitter"` // full width of the jitter box
	TrailSize     Range         `yaml:"trailSize"`

	BurstCount    int           `yaml:"burstCount"`
	BurstStagger  time.Duration `yaml:"burstStagger"`
	BurstLifetime time.Duration `yaml:"burstLifetime"`
	BurstSize     Range         `yaml:"burstSize"`

	SparkleSize     Range         `yaml:"sparkleSize"`
	SparkleLifetime time.Duration `yaml:"sparkleLifetime"`

	ExplosionCount    int           `yaml:"explosionCount"`
	ExplosionStagger  time.Duration `yaml:"explosionStagger"`
	ExplosionDistance Range         `yaml:"explosionDistance"`

	ScatterCount   int           `yaml:"scatterCount"`
	ScatterStagger time.Duration `yaml:"scatterStagger"`

	Palette Palette `yaml:"palette"`
}

// HeartConfig controls the radial heart burst.
type HeartConfig struct {
	Count    int           `yaml:"count"`
	Duration time.Duration `yaml:"duration"`
	Distance Range         `yaml:"distance"`
	Size     Range         `yaml:"size"`
	Color    Swatch        `yaml:"color"`
}

// ConfettiConfig controls confetti bursts.
type ConfettiConfig struct {
	Count   int           `yaml:"count"`
	Stagger time.Duration `yaml:"stagger"`
	Size    Range         `yaml:"size"`
	Fall    DurationRange `yaml:"fall"`
	StartY  float64       `yaml:"startY"`
	Palette Palette       `yaml:"palette"`
}

// ClickConfig controls the click-counter easter egg.
type ClickConfig struct {
	Threshold int           `yaml:"threshold"`
	Reset     time.Duration `yaml:"reset"`
	Confetti  int           `yaml:"confetti"`
}

// Config is the full engine configuration.
type Config struct {
	ReducedMotion bool `yaml:"reducedMotion"`
	Debug         bool `yaml:"debug"`

	Field    FieldConfig    `yaml:"field"`
	Sparkles SparkleConfig  `yaml:"sparkles"`
	Hearts   HeartConfig    `yaml:"hearts"`
	Confetti ConfettiConfig `yaml:"confetti"`
	Clicks   ClickConfig    `yaml:"clicks"`
}

var rosePalette = Palette{
	{Hex: "#f43f5e"},
	{Hex: "#fb7185"},
	{Hex: "#fda4af"},
	{Hex: "#ffffff"},
	{Hex: "#e11d48"},
}

// DefaultConfig returns the stock rose-toned configuration.
func DefaultConfig() Config {
	return Config{
		Field: FieldConfig{
			BaseCount:           40,
			NarrowBaseCount:     20,
			Breakpoint:          768,
			Size:                Range{6, 18},
			SpeedX:              Range{-0.15, 0.15},
			SpeedY:              Range{0.3, 1.1},
			Rotation:            Range{0, 360},
			RotationSpeed:       Range{-0.75, 0.75},
			OscillationSpeed:    Range{0.005, 0.02},
			OscillationDistance: Range{15, 45},
			Opacity:             Range{0.3, 0.7},
			Flip:                Range{0, 3.141592653589793},
			FlipSpeed:           Range{0.005, 0.02},
			HeartChance:         0.3,
			DriftScale:          0.4,
			PetalGlow:           5,
			HeartGlow:           8,
			Palette: Palette{
				{Hex: "#f43f5e", Alpha: 0.6},
				{Hex: "#fb7185", Alpha: 0.5},
				{Hex: "#fda4af", Alpha: 0.4},
				{Hex: "#ffffff", Alpha: 0.3},
				{Hex: "#e11d48", Alpha: 0.5},
			},
		},
		Sparkles: SparkleConfig{
			TrailInterval:     80 * time.Millisecond,
			TrailLifetime:     600 * time.Millisecond,
			TrailJitter:       30,
			TrailSize:         Range{2, 6},
			BurstCount:        12,
			BurstStagger:      25 * time.Millisecond,
			BurstLifetime:     time.Second,
			BurstSize:         Range{4, 12},
			SparkleSize:       Range{5, 15},
			SparkleLifetime:   time.Second,
			ExplosionCount:    25,
			ExplosionStagger:  15 * time.Millisecond,
			ExplosionDistance: Range{60, 180},
			ScatterCount:      3,
			ScatterStagger:    100 * time.Millisecond,
			Palette:           rosePalette[:4],
		},
		Hearts: HeartConfig{
			Count:    8,
			Duration: 600 * time.Millisecond,
			Distance: Range{40, 120},
			Size:     Range{10, 24},
			Color:    Swatch{Hex: "#f43f5e"},
		},
		Confetti: ConfettiConfig{
			Count:   150,
			Stagger: 8 * time.Millisecond,
			Size:    Range{4, 12},
			Fall:    DurationRange{2 * time.Second, 4 * time.Second},
			StartY:  -20,
			Palette: rosePalette,
		},
		Clicks: ClickConfig{
			Threshold: 5,
			Reset:     2 * time.Second,
			Confetti:  200,
		},
	}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates the result.
// Keys missing from data keep their default values.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	return ParseConfig(data)
}

// Marshal encodes the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	data, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return data, nil
}

// Validate checks counts, ranges and palettes.
func (c Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}
	ranges := func(name string, r Range) {
		check(r.Min <= r.Max, "%s: min %.3f > max %.3f", name, r.Min, r.Max)
	}

	f := c.Field
	check(f.BaseCount >= 0 && f.NarrowBaseCount >= 0, "field: negative base count")
	check(f.Breakpoint > 0, "field: breakpoint must be positive, got %d", f.Breakpoint)
	check(f.HeartChance >= 0 && f.HeartChance <= 1, "field: heartChance %.2f outside [0, 1]", f.HeartChance)
	check(f.Size.Min > 0, "field: size must be positive")
	ranges("field.size", f.Size)
	ranges("field.speedX", f.SpeedX)
	ranges("field.speedY", f.SpeedY)
	ranges("field.rotation", f.Rotation)
	ranges("field.rotationSpeed", f.RotationSpeed)
	ranges("field.oscillationSpeed", f.OscillationSpeed)
	ranges("field.oscillationDistance", f.OscillationDistance)
	ranges("field.opacity", f.Opacity)
	ranges("field.flip", f.Flip)
	ranges("field.flipSpeed", f.FlipSpeed)

	s := c.Sparkles
	check(s.TrailInterval >= 0, "sparkles: negative trail interval")
	check(s.TrailLifetime > 0 && s.BurstLifetime > 0 && s.SparkleLifetime > 0, "sparkles: lifetimes must be positive")
	check(s.BurstCount >= 0 && s.ExplosionCount >= 0 && s.ScatterCount >= 0, "sparkles: negative count")
	ranges("sparkles.trailSize", s.TrailSize)
	ranges("sparkles.burstSize", s.BurstSize)
	ranges("sparkles.sparkleSize", s.SparkleSize)
	ranges("sparkles.explosionDistance", s.ExplosionDistance)

	h := c.Hearts
	check(h.Count >= 0, "hearts: negative count")
	check(h.Duration > 0, "hearts: duration must be positive")
	ranges("hearts.distance", h.Distance)
	ranges("hearts.size", h.Size)
	if _, err := h.Color.Color(); err != nil {
		errs = append(errs, fmt.Errorf("hearts.color: %w", err))
	}

	cf := c.Confetti
	check(cf.Count > 0, "confetti: count must be positive, got %d", cf.Count)
	check(cf.Stagger >= 0, "confetti: negative stagger")
	check(cf.Fall.Min > 0 && cf.Fall.Min <= cf.Fall.Max, "confetti: fall range %v..%v invalid", cf.Fall.Min, cf.Fall.Max)
	ranges("confetti.size", cf.Size)

	check(c.Clicks.Threshold > 0, "clicks: threshold must be positive")
	check(c.Clicks.Reset > 0, "clicks: reset must be positive")

	for name, p := range map[string]Palette{
		"field.palette":    f.Palette,
		"sparkles.palette": s.Palette,
		"confetti.palette": cf.Palette,
	} {
		if len(p) == 0 {
			errs = append(errs, fmt.Errorf("%s: empty", name))
			continue
		}
		if _, err := p.Colors(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", name, err))
		}
	}
	return errors.Join(errs...)
}

// BaseCountFor returns the density-1 field count for a viewport width.
func (f FieldConfig) BaseCountFor(viewportWidth int) int {
	if viewportWidth < f.Breakpoint {
		return f.NarrowBaseCount
	}
	return f.BaseCount
}

// mustColors parses a palette that Validate has already accepted, falling
// back to white for anything unparseable.
func mustColors(p Palette) []Color {
	cs, err := p.Colors()
	if err != nil || len(cs) == 0 {
		return []Color{ColorWhite}
	}
	return cs
}
