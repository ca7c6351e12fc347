// Package config provides configuration loading and access for the simulation.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/forage/components"
	"github.com/pthm-cable/forage/traits"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	Screen     ScreenConfig            `yaml:"screen"`
	World      WorldConfig             `yaml:"world"`
	Population PopulationConfig        `yaml:"population"`
	Spawn      SpawnConfig             `yaml:"spawn"`
	Agent      components.Stats        `yaml:"agent"`
	Effects    []components.EffectSpec `yaml:"effects"`
	Weights    traits.Ranges           `yaml:"weights"`
	Mutation   MutationConfig          `yaml:"mutation"`
	Telemetry  TelemetryConfig         `yaml:"telemetry"`
	Bookmarks  BookmarksConfig         `yaml:"bookmarks"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	TargetFPS int `yaml:"target_fps"`
}

// WorldConfig holds simulation world dimensions.
// The world is centered on the origin.
type WorldConfig struct {
	Width  int `yaml:"width"`  // 0 = use screen width
	Height int `yaml:"height"` // 0 = use screen height
}

// PopulationConfig holds population caps and seeding.
type PopulationConfig struct {
	InitialAgents  int `yaml:"initial_agents"`
	InitialPellets int `yaml:"initial_pellets"`
	MaxAgents      int `yaml:"max_agents"`
	MaxPellets     int `yaml:"max_pellets"`
	CriticalLow    int `yaml:"critical_low"` // below this, reproduction is forced
	ReseedFloor    int `yaml:"reseed_floor"` // below this, readiness is ignored
}

// SpawnConfig holds per-tick chances, compared against a uniform byte.
type SpawnConfig struct {
	PelletChance       int `yaml:"pellet_chance"`       // spawn a pellet when byte < this
	ReproductionChance int `yaml:"reproduction_chance"` // attempt reproduction when byte < this
}

// MutationConfig holds offspring weight mutation parameters.
type MutationConfig struct {
	Spread float32 `yaml:"spread"`
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	BookmarkHistorySize int `yaml:"bookmark_history_size"`
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// BookmarksConfig holds bookmark detection thresholds.
type BookmarksConfig struct {
	PopulationCrash    PopulationCrashConfig    `yaml:"population_crash"`
	CriticalPopulation CriticalPopulationConfig `yaml:"critical_population"`
	StablePopulation   StablePopulationConfig   `yaml:"stable_population"`
}

// PopulationCrashConfig holds population crash detection parameters.
type PopulationCrashConfig struct {
	DropPercent float64 `yaml:"drop_percent"`
	MinDrop     int     `yaml:"min_drop"`
}

// CriticalPopulationConfig holds critical population detection parameters.
type CriticalPopulationConfig struct {
	Threshold int `yaml:"threshold"` // 0 = use population.critical_low
}

// StablePopulationConfig holds stable population detection parameters.
type StablePopulationConfig struct {
	MinAgents     int     `yaml:"min_agents"`
	CVThreshold   float64 `yaml:"cv_threshold"`
	StableWindows int     `yaml:"stable_windows"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	ScreenW32   float32                 // Screen.Width as float32
	ScreenH32   float32                 // Screen.Height as float32
	WorldW32    float32                 // Effective world width as float32
	WorldH32    float32                 // Effective world height as float32
	Bounds      components.Bounds       // World rectangle centered on the origin
	EffectTable *components.EffectTable // Parsed effects
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

// Default returns a fresh copy of the embedded defaults.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults are invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Only overwrites fields present in the file. A present effects
		// list replaces the default list entirely.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize validates the config and recomputes derived values. Call it
// after changing fields programmatically.
func (c *Config) Finalize() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return c.computeDerived()
}

// Validate rejects values the simulation cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, errors.New("screen dimensions must be positive"))
	}
	if c.World.Width < 0 || c.World.Height < 0 {
		errs = append(errs, errors.New("world dimensions must not be negative"))
	}
	p := c.Population
	if p.MaxAgents <= 0 || p.MaxPellets <= 0 {
		errs = append(errs, errors.New("population caps must be positive"))
	}
	if p.InitialAgents < 0 || p.InitialPellets < 0 || p.CriticalLow < 0 || p.ReseedFloor < 0 {
		errs = append(errs, errors.New("population counts must not be negative"))
	}
	if c.Spawn.PelletChance < 0 || c.Spawn.PelletChance > 256 {
		errs = append(errs, fmt.Errorf("spawn.pellet_chance %d outside [0, 256]", c.Spawn.PelletChance))
	}
	if c.Spawn.ReproductionChance < 0 || c.Spawn.ReproductionChance > 256 {
		errs = append(errs, fmt.Errorf("spawn.reproduction_chance %d outside [0, 256]", c.Spawn.ReproductionChance))
	}
	if c.Agent.MaxHealth <= 0 || c.Agent.MaxFood <= 0 {
		errs = append(errs, errors.New("agent max_health and max_food must be positive"))
	}
	if c.Mutation.Spread < 0 {
		errs = append(errs, errors.New("mutation.spread must not be negative"))
	}
	for _, r := range []traits.Range{c.Weights.Poison, c.Weights.Heal, c.Weights.Feed, c.Weights.SlowDown, c.Weights.SpeedUp} {
		if r.Max < r.Min {
			errs = append(errs, fmt.Errorf("weight range [%v, %v] is inverted", r.Min, r.Max))
		}
	}
	if c.Telemetry.StatsWindow <= 0 {
		errs = append(errs, errors.New("telemetry.stats_window must be positive"))
	}
	return errors.Join(errs...)
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	c.Derived.ScreenW32 = float32(c.Screen.Width)
	c.Derived.ScreenH32 = float32(c.Screen.Height)

	// World dimensions default to screen size if not specified
	worldW := c.World.Width
	if worldW == 0 {
		worldW = c.Screen.Width
	}
	worldH := c.World.Height
	if worldH == 0 {
		worldH = c.Screen.Height
	}
	c.Derived.WorldW32 = float32(worldW)
	c.Derived.WorldH32 = float32(worldH)
	c.Derived.Bounds = components.CenteredBounds(c.Derived.WorldW32, c.Derived.WorldH32)

	if len(c.Effects) == 0 {
		c.Effects = components.DefaultEffectSpecs()
	}
	table, err := components.NewEffectTable(c.Effects)
	if err != nil {
		return fmt.Errorf("building effect table: %w", err)
	}
	c.Derived.EffectTable = table

	if c.Bookmarks.CriticalPopulation.Threshold == 0 {
		c.Bookmarks.CriticalPopulation.Threshold = c.Population.CriticalLow
	}
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
