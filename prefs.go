package blossom

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// Preferences are the user-facing switches that survive restarts.
type Preferences struct {
	// ReducedMotion disables the engine on the next launch.
	ReducedMotion bool `yaml:"reducedMotion"`
	// ShowStats shows the FPS and particle count widget.
	ShowStats bool `yaml:"showStats"`
	// Density is the petal density applied at start, in [0, 1].
	Density float64 `yaml:"density"`
}

// DefaultPreferences returns full density with motion enabled.
func DefaultPreferences() Preferences {
	return Preferences{Density: 1}
}

// Storage keys.
const (
	prefsObject   = "preferences"
	prefsProperty = "global"
)

// PreferenceStore loads and saves Preferences as a YAML blob through a gdata
// manager. A nil manager keeps preferences in memory only.
type PreferenceStore struct {
	manager *gdata.Manager
	prefs   Preferences
}

// NewPreferenceStore creates a store and loads any saved preferences. A load
// failure is returned alongside a usable store holding the defaults.
func NewPreferenceStore(manager *gdata.Manager) (*PreferenceStore, error) {
	ps := &PreferenceStore{manager: manager, prefs: DefaultPreferences()}
	if err := ps.Load(); err != nil {
		return ps, err
	}
	return ps, nil
}

// OpenPreferenceStore opens gdata storage for appName and loads from it.
func OpenPreferenceStore(appName string) (*PreferenceStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return &PreferenceStore{prefs: DefaultPreferences()}, fmt.Errorf("open preference storage: %w", err)
	}
	return NewPreferenceStore(m)
}

// Load replaces the in-memory preferences with the saved ones. Missing data
// resets to defaults without error.
func (ps *PreferenceStore) Load() error {
	ps.prefs = DefaultPreferences()
	if ps.manager == nil || !ps.manager.ObjectPropExists(prefsObject, prefsProperty) {
		return nil
	}
	data, err := ps.manager.LoadObjectProp(prefsObject, prefsProperty)
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	var loaded Preferences
	if err := yaml.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("unmarshal preferences: %w", err)
	}
	loaded.Density = clamp01(loaded.Density)
	ps.prefs = loaded
	return nil
}

// Save writes the current preferences. With no manager it does nothing.
func (ps *PreferenceStore) Save() error {
	if ps.manager == nil {
		return nil
	}
	data, err := yaml.Marshal(ps.prefs)
	if err != nil {
		return fmt.Errorf("marshal preferences: %w", err)
	}
	if err := ps.manager.SaveObjectProp(prefsObject, prefsProperty, data); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

// Get returns the current preferences.
func (ps *PreferenceStore) Get() Preferences {
	return ps.prefs
}

// Set replaces the in-memory preferences; call Save to persist.
func (ps *PreferenceStore) Set(p Preferences) {
	p.Density = clamp01(p.Density)
	ps.prefs = p
}

// Apply copies preferences into an engine configuration. Reduced motion
// from either source wins.
func (p Preferences) Apply(cfg Config) Config {
	cfg.ReducedMotion = cfg.ReducedMotion || p.ReducedMotion
	return cfg
}
