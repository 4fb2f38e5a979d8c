// Package config provides configuration loading and access for the host and overlay.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all configuration parameters.
type Config struct {
	Screen     ScreenConfig     `yaml:"screen"`
	Overlay    OverlayConfig    `yaml:"overlay"`
	Timing     TimingConfig     `yaml:"timing"`
	Simulation SimulationConfig `yaml:"simulation"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// OverlayConfig holds stats overlay layout and styling.
type OverlayConfig struct {
	Enabled     bool          `yaml:"enabled"`
	FontPath    string        `yaml:"font_path"` // empty = raylib default font
	FontSize    float64       `yaml:"font_size"`
	Margin      float64       `yaml:"margin"`       // columns share width - 2*margin
	Left        float64       `yaml:"left"`         // x of the first column
	Top         float64       `yaml:"top"`          // y of the column titles
	RowHeight   float64       `yaml:"row_height"`   // vertical advance per row
	LabelInset  float64       `yaml:"label_inset"`  // label offset from column edge
	CountOffset float64       `yaml:"count_offset"` // count right edge, back from column right edge
	TimeOffset  float64       `yaml:"time_offset"`  // time right edge, back from column right edge
	HeaderX     float64       `yaml:"header_x"`
	HeaderY     float64       `yaml:"header_y"`
	Colors      OverlayColors `yaml:"colors"`
}

// OverlayColors holds the overlay palette.
type OverlayColors struct {
	Header   RGBA `yaml:"header"`
	Timeline RGBA `yaml:"timeline"`
	System   RGBA `yaml:"system"`
	Bucket   RGBA `yaml:"bucket"`
	Total    RGBA `yaml:"total"`
	Shadow   RGBA `yaml:"shadow"`
}

// RGBA is a color as written in YAML: {r: 51, g: 255, b: 77, a: 255}.
type RGBA struct {
	R uint8 `yaml:"r"`
	G uint8 `yaml:"g"`
	B uint8 `yaml:"b"`
	A uint8 `yaml:"a"`
}

// Color converts to image/color.
func (c RGBA) Color() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// TimingConfig holds timer averaging parameters.
type TimingConfig struct {
	Window int `yaml:"window"` // samples per running average
}

// SimulationConfig holds demo workload parameters.
type SimulationConfig struct {
	FixedDT         float64 `yaml:"fixed_dt"`          // seconds per fixed step
	MaxFixedSteps   int     `yaml:"max_fixed_steps"`   // catch-up cap per frame
	InitialEntities int     `yaml:"initial_entities"`
	MaxEntities     int     `yaml:"max_entities"`
	SpawnPerSecond  float64 `yaml:"spawn_per_second"`
	MaxSpeed        float64 `yaml:"max_speed"`
	Lifetime        float64 `yaml:"lifetime"` // seconds
	Seed            int64   `yaml:"seed"`     // 0 = time-based
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	FixedDT32 float32 // Simulation.FixedDT as float32
	ScreenW32 float32 // Screen.Width as float32
	ScreenH32 float32 // Screen.Height as float32
}

// global holds the loaded configuration.
var global *Config

// Init loads configuration from the given path, or uses embedded defaults if path is empty.
// Must be called before Cfg().
func Init(path string) error {
	cfg, err := Load(path)
	if err != nil {
		return err
	}
	global = cfg
	return nil
}

// Cfg returns the global configuration. Panics if Init was not called.
func Cfg() *Config {
	if global == nil {
		panic("config: Cfg() called before Init()")
	}
	return global
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	// Start with embedded defaults
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Load user config if provided
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.computeDerived()

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Simulation.FixedDT <= 0 {
		return fmt.Errorf("simulation.fixed_dt must be positive, got %v", c.Simulation.FixedDT)
	}
	if c.Screen.TargetFPS <= 0 {
		return fmt.Errorf("screen.target_fps must be positive, got %d", c.Screen.TargetFPS)
	}
	if c.Timing.Window < 1 {
		return fmt.Errorf("timing.window must be at least 1, got %d", c.Timing.Window)
	}
	if c.Overlay.RowHeight <= 0 {
		return fmt.Errorf("overlay.row_height must be positive, got %v", c.Overlay.RowHeight)
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.FixedDT32 = float32(c.Simulation.FixedDT)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Simulation.MaxFixedSteps < 1 {
		c.Simulation.MaxFixedSteps = 1
	}
	if c.Simulation.MaxEntities < c.Simulation.InitialEntities {
		c.Simulation.MaxEntities = c.Simulation.InitialEntities
	}
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
