package greeting

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/phanxgames/blossom"
	"gopkg.in/yaml.v3"
)

// PreloaderConfig controls the loading screen and curtain reveal.
type PreloaderConfig struct {
	// MinLoad is the shortest time the loading screen stays up.
	MinLoad time.Duration `yaml:"minLoad"`
	// MaxLoad hides the loading screen even if loading never finishes.
	MaxLoad time.Duration `yaml:"maxLoad"`
	// FadeOut is the loader fade before the curtains open.
	FadeOut time.Duration `yaml:"fadeOut"`
	// ContentDelay is the wait after the curtains start opening before the
	// content appears and the page completes.
	ContentDelay time.Duration `yaml:"contentDelay"`
	// CleanupDelay is the wait after completion before the curtains are gone.
	CleanupDelay time.Duration `yaml:"cleanupDelay"`
	// CurtainSlide is how long each curtain takes to slide off screen.
	CurtainSlide time.Duration `yaml:"curtainSlide"`
	// Particles is the number of floating dots on the loading screen.
	Particles int `yaml:"particles"`
}

// TypewriterConfig controls the hero headline.
type TypewriterConfig struct {
	Messages    []string      `yaml:"messages"`
	TypeSpeed   time.Duration `yaml:"typeSpeed"`
	DeleteSpeed time.Duration `yaml:"deleteSpeed"`
	Pause       time.Duration `yaml:"pause"`
	StartDelay  time.Duration `yaml:"startDelay"`
}

// RevealConfig controls scroll-triggered reveals.
type RevealConfig struct {
	// Threshold is the visible fraction of an item that reveals it.
	Threshold float64 `yaml:"threshold"`
	// BottomMargin shrinks the viewport from the bottom, in pixels.
	BottomMargin float64 `yaml:"bottomMargin"`
	// Fade is the reveal animation length.
	Fade time.Duration `yaml:"fade"`
	// Rise is how far an item slides up while revealing.
	Rise float64 `yaml:"rise"`
}

// LightboxConfig controls the photo viewer.
type LightboxConfig struct {
	// SwipeThreshold is the horizontal travel, in pixels, a swipe must exceed.
	SwipeThreshold float64       `yaml:"swipeThreshold"`
	Fade           time.Duration `yaml:"fade"`
}

// ScrollConfig controls wheel scrolling and the scroll-linked petal density.
type ScrollConfig struct {
	// Step is the page travel per wheel notch.
	Step float64 `yaml:"step"`
}

// PageConfig is the configuration of the page chrome around the engine.
type PageConfig struct {
	Preloader  PreloaderConfig  `yaml:"preloader"`
	Typewriter TypewriterConfig `yaml:"typewriter"`
	Reveal     RevealConfig     `yaml:"reveal"`
	Lightbox   LightboxConfig   `yaml:"lightbox"`
	Scroll     ScrollConfig     `yaml:"scroll"`
	// EffectsDelay postpones the cursor trail and hover effects after launch.
	EffectsDelay time.Duration `yaml:"effectsDelay"`
	Background   blossom.Swatch `yaml:"background"`
}

// Config is the file format read by the greeting app: the engine settings
// and the page settings side by side.
type Config struct {
	Engine blossom.Config `yaml:"engine"`
	Page   PageConfig     `yaml:"page"`
}

// DefaultMessages are the headlines the typewriter cycles through.
var DefaultMessages = []string{
	"Today is your special day, and I wanted to celebrate you...",
	"Every moment with you is a gift I treasure...",
	"You light up my world in ways words cannot describe...",
	"Here's to another beautiful year of your amazing life...",
	"I am so grateful to have you in my life...",
}

// DefaultPageConfig returns the stock page timings.
func DefaultPageConfig() PageConfig {
	return PageConfig{
		Preloader: PreloaderConfig{
			MinLoad:      1500 * time.Millisecond,
			MaxLoad:      4000 * time.Millisecond,
			FadeOut:      400 * time.Millisecond,
			ContentDelay: 300 * time.Millisecond,
			CleanupDelay: 500 * time.Millisecond,
			CurtainSlide: 700 * time.Millisecond,
			Particles:    20,
		},
		Typewriter: TypewriterConfig{
			Messages:    append([]string(nil), DefaultMessages...),
			TypeSpeed:   50 * time.Millisecond,
			DeleteSpeed: 25 * time.Millisecond,
			Pause:       2500 * time.Millisecond,
			StartDelay:  500 * time.Millisecond,
		},
		Reveal: RevealConfig{
			Threshold:    0.1,
			BottomMargin: 80,
			Fade:         600 * time.Millisecond,
			Rise:         30,
		},
		Lightbox: LightboxConfig{
			SwipeThreshold: 50,
			Fade:           300 * time.Millisecond,
		},
		Scroll:       ScrollConfig{Step: 60},
		EffectsDelay: 3500 * time.Millisecond,
		Background:   blossom.Swatch{Hex: "#0c0a0f"},
	}
}

// DefaultConfig returns the default engine and page configuration.
func DefaultConfig() Config {
	return Config{Engine: blossom.DefaultConfig(), Page: DefaultPageConfig()}
}

// ParseConfig decodes YAML on top of DefaultConfig and validates both halves.
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

// Validate checks the engine and page settings.
func (c Config) Validate() error {
	return errors.Join(c.Engine.Validate(), c.Page.Validate())
}

// Validate checks the page settings.
func (c PageConfig) Validate() error {
	var errs []error
	p := c.Preloader
	if p.MinLoad < 0 || p.MaxLoad < p.MinLoad {
		errs = append(errs, fmt.Errorf("preloader: need 0 <= minLoad <= maxLoad, got %v/%v", p.MinLoad, p.MaxLoad))
	}
	if p.FadeOut < 0 || p.ContentDelay < 0 || p.CleanupDelay < 0 || p.CurtainSlide <= 0 {
		errs = append(errs, errors.New("preloader: phase durations must not be negative"))
	}
	t := c.Typewriter
	if t.TypeSpeed <= 0 || t.DeleteSpeed <= 0 || t.Pause < 0 {
		errs = append(errs, errors.New("typewriter: speeds must be positive"))
	}
	if c.Reveal.Threshold < 0 || c.Reveal.Threshold > 1 {
		errs = append(errs, fmt.Errorf("reveal: threshold %.2f outside [0, 1]", c.Reveal.Threshold))
	}
	if c.Lightbox.SwipeThreshold < 0 {
		errs = append(errs, errors.New("lightbox: negative swipe threshold"))
	}
	if c.Scroll.Step <= 0 {
		errs = append(errs, errors.New("scroll: step must be positive"))
	}
	if _, err := c.Background.Color(); err != nil {
		errs = append(errs, fmt.Errorf("background: %w", err))
	}
	return errors.Join(errs...)
}
