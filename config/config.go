// Package config provides configuration loading and access for the simulator.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Fluid     FluidConfig     `yaml:"fluid"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings for the demo app.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// FluidConfig holds the solver tunables.
type FluidConfig struct {
	ParticleCount int     `yaml:"particle_count"` // population size, fixed at init
	SpawnX        float64 `yaml:"spawn_x"`        // spawn rectangle origin
	SpawnY        float64 `yaml:"spawn_y"`
	SpawnWidth    float64 `yaml:"spawn_width"`
	SpawnHeight   float64 `yaml:"spawn_height"`

	SmoothingLength float64 `yaml:"smoothing_length"` // neighbor radius / kernel support
	ParticleSize    float64 `yaml:"particle_size"`    // collision radius for clipping
	ParticleMass    float64 `yaml:"particle_mass"`
	GridCellSize    float64 `yaml:"grid_cell_size"` // broad-phase resolution
	NeighborRefresh int     `yaml:"neighbor_refresh"` // ticks between neighbor-list rebuilds

	GravityX       float64 `yaml:"gravity_x"`
	GravityY       float64 `yaml:"gravity_y"`
	RestDensity    float64 `yaml:"rest_density"`     // pressure zero-point
	Stiffness      float64 `yaml:"stiffness"`        // pressure response
	MinDensity     float64 `yaml:"min_density"`      // density floor
	Viscosity      float64 `yaml:"viscosity"`
	SurfaceTension float64 `yaml:"surface_tension"`
	SurfaceBias    float64 `yaml:"surface_bias"` // color-gradient magnitude marking surface particles
	SpringConstant float64 `yaml:"spring_constant"` // cohesion spring
	RestDistance   float64 `yaml:"rest_distance"`
	Repulsion      float64 `yaml:"repulsion"`

	Timestep        float64 `yaml:"timestep"`
	BoundaryBounce  float64 `yaml:"boundary_bounce"` // reflection damping
	VelocityDamping float64 `yaml:"velocity_damping"`
	MaxVelocity     float64 `yaml:"max_velocity"`     // per-axis clamp
	SettleThreshold float64 `yaml:"settle_threshold"` // mean speed below which the fluid is settled
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow float64 `yaml:"stats_window"` // stats window duration in sim seconds
	PerfWindow  int     `yaml:"perf_window"`  // ticks averaged for perf reporting
}

// DerivedConfig holds values derived from loaded config.
type DerivedConfig struct {
	DT32      float32 // Fluid.Timestep as float32
	ScreenW32 float32
	ScreenH32 float32
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

	cfg.computeDerived()

	return cfg, nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() {
	c.Derived.DT32 = float32(c.Fluid.Timestep)
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	if c.Fluid.NeighborRefresh < 1 {
		c.Fluid.NeighborRefresh = 1
	}
	if c.Fluid.MinDensity <= 0 {
		c.Fluid.MinDensity = 10
	}
	// Spawn rect defaults to the upper half of the screen.
	if c.Fluid.SpawnWidth == 0 {
		c.Fluid.SpawnWidth = float64(c.Screen.Width) * 0.5
	}
	if c.Fluid.SpawnHeight == 0 {
		c.Fluid.SpawnHeight = float64(c.Screen.Height) * 0.5
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
