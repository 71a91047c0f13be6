// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"log/slog"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/habitat/world"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Field size used when the configured dimensions are not positive.
const (
	DefaultDepth = 80
	DefaultWidth = 120
)

// Config holds all simulation configuration parameters.
type Config struct {
	World      WorldConfig      `yaml:"world"`
	Simulation SimulationConfig `yaml:"simulation"`
	Weather    WeatherConfig    `yaml:"weather"`
	Species    []SpeciesConfig  `yaml:"species"`
	Telemetry  TelemetryConfig  `yaml:"telemetry"`
	Viewer     ViewerConfig     `yaml:"viewer"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds field dimensions and terrain layout.
type WorldConfig struct {
	Depth         int     `yaml:"depth"`
	Width         int     `yaml:"width"`
	Layout        string  `yaml:"layout"` // bands | checkerboard | lakes | land | water
	WaterFraction float64 `yaml:"water_fraction"`
	CheckerBlock  int     `yaml:"checker_block"`
	NoiseScale    float64 `yaml:"noise_scale"`
	NoiseSeed     int64   `yaml:"noise_seed"`
}

// SimulationConfig holds run length and pacing.
type SimulationConfig struct {
	Steps      int   `yaml:"steps"`
	DelayMS    int   `yaml:"delay_ms"`
	Seed       int64 `yaml:"seed"` // 0 = time-based
	MinSpecies int   `yaml:"min_species"`
}

// WeatherConfig holds the inclusive thresholds on a draw in [0,100).
type WeatherConfig struct {
	SunMax      int `yaml:"sun_max"`
	RainMax     int `yaml:"rain_max"`
	AcidRainMax int `yaml:"acid_rain_max"`
}

// SpeciesConfig is one entry of the species registry. Order matters: when
// populating, the first species whose roll succeeds claims the cell.
type SpeciesConfig struct {
	Name                string  `yaml:"name"`
	CreationProbability float64 `yaml:"creation_probability"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	Window          int `yaml:"window"` // steps per stats window
	BookmarkHistory int `yaml:"bookmark_history"`
	PerfWindow      int `yaml:"perf_window"`
}

// ViewerConfig holds GUI parameters. Colors are "#rrggbb" strings.
type ViewerConfig struct {
	CellSize  int               `yaml:"cell_size"`
	TargetFPS int               `yaml:"target_fps"`
	Water     string            `yaml:"water"`
	Land      string            `yaml:"land"`
	Colors    map[string]string `yaml:"colors"`
}

// DerivedConfig holds values computed from the loaded config.
type DerivedConfig struct {
	Delay      time.Duration
	Thresholds world.WeatherThresholds
	Layout     world.Layout
	Registry   []RegistryEntry
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

// MustInit is like Init but panics on error.
func MustInit(path string) {
	if err := Init(path); err != nil {
		panic(fmt.Sprintf("config: failed to initialize: %v", err))
	}
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
	var data []byte
	if path != "" {
		var err error
		data, err = os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	}
	return Parse(data)
}

// Parse builds a config from YAML bytes overlaid on the embedded defaults.
func Parse(data []byte) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	// Unmarshal into same struct - only overwrites fields present in data
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// computeDerived validates the loaded values and fills Derived.
func (c *Config) computeDerived() error {
	if c.World.Depth <= 0 || c.World.Width <= 0 {
		slog.Warn("invalid field size, using defaults",
			"depth", c.World.Depth,
			"width", c.World.Width,
			"default_depth", DefaultDepth,
			"default_width", DefaultWidth,
		)
		c.World.Depth = DefaultDepth
		c.World.Width = DefaultWidth
	}
	if c.Simulation.DelayMS < 0 {
		c.Simulation.DelayMS = 0
	}
	c.Derived.Delay = time.Duration(c.Simulation.DelayMS) * time.Millisecond

	c.Derived.Thresholds = world.WeatherThresholds{
		SunMax:      c.Weather.SunMax,
		RainMax:     c.Weather.RainMax,
		AcidRainMax: c.Weather.AcidRainMax,
	}

	layout, err := world.LayoutByName(c.World.Layout, world.LayoutOptions{
		WaterFraction: c.World.WaterFraction,
		CheckerBlock:  c.World.CheckerBlock,
		NoiseScale:    c.World.NoiseScale,
		NoiseSeed:     c.World.NoiseSeed,
	})
	if err != nil {
		return fmt.Errorf("world: %w", err)
	}
	c.Derived.Layout = layout

	registry, err := c.Registry()
	if err != nil {
		return err
	}
	c.Derived.Registry = registry
	return nil
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
