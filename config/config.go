// Package config provides configuration loading for the simulation.
package config

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pthm-cable/beasts/spatial"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all simulation configuration parameters.
type Config struct {
	World        WorldConfig        `yaml:"world"`
	Population   PopulationConfig   `yaml:"population"`
	Beast        BeastConfig        `yaml:"beast"`
	Brain        BrainConfig        `yaml:"brain"`
	Reproduction ReproductionConfig `yaml:"reproduction"`
	Mutation     MutationConfig     `yaml:"mutation"`
	Fight        FightConfig        `yaml:"fight"`
	Index        IndexConfig        `yaml:"index"`
	Telemetry    TelemetryConfig    `yaml:"telemetry"`
	HallOfFame   HallOfFameConfig   `yaml:"hall_of_fame"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// WorldConfig holds world dimensions. Beasts are confined to
// [Border, Width-Border] x [Border, Height-Border].
type WorldConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
	Border int `yaml:"border"`
}

// PopulationConfig holds population management parameters.
type PopulationConfig struct {
	Initial          int `yaml:"initial"`
	Max              int `yaml:"max"`               // births beyond this are dropped, 0 for no cap
	RespawnThreshold int `yaml:"respawn_threshold"` // reseed when live count drops below
	RespawnCount     int `yaml:"respawn_count"`
}

// BeastConfig holds per-beast lifecycle and movement parameters.
type BeastConfig struct {
	DespawnTicks     int     `yaml:"despawn_ticks"`      // corpse removed once dead longer than this
	MateRange        float64 `yaml:"mate_range"`         // detection radius for the nearest mate
	Speed            float64 `yaml:"speed"`              // max distance per tick
	IdleDrainDivisor float64 `yaml:"idle_drain_divisor"` // idle drain = consumption / this
	MoveCostDivisor  float64 `yaml:"move_cost_divisor"`  // move cost = consumption / this * distance
}

// BrainConfig scales actuator sums into actions.
type BrainConfig struct {
	MoveScale float64 `yaml:"move_scale"`
	TurnScale float64 `yaml:"turn_scale"`
}

// ReproductionConfig holds mating parameters.
type ReproductionConfig struct {
	Range float64 `yaml:"range"`
}

// MutationConfig holds genome mutation parameters.
type MutationConfig struct {
	Rate float64 `yaml:"rate"` // per-symbol replacement probability
}

// FightConfig holds combat parameters.
type FightConfig struct {
	Enabled       bool    `yaml:"enabled"`
	Range         float64 `yaml:"range"`
	Chance        float64 `yaml:"chance"`          // per eligible pair per tick
	DamagePerSize float64 `yaml:"damage_per_size"` // loser loses this * winner size
	EnergyGain    float64 `yaml:"energy_gain"`     // fraction of damage the winner absorbs
	Cooldown      int     `yaml:"cooldown"`
}

// IndexConfig selects the spatial index.
type IndexConfig struct {
	Kind string `yaml:"kind"` // kdtree or quadtree
}

// TelemetryConfig holds observability parameters.
type TelemetryConfig struct {
	StatsWindow         int `yaml:"stats_window"` // ticks per stats window
	PerfCollectorWindow int `yaml:"perf_collector_window"`
}

// HallOfFameConfig holds parameters for the genome archive used to reseed
// a collapsing population.
type HallOfFameConfig struct {
	Enabled bool                    `yaml:"enabled"`
	Size    int                     `yaml:"size"`
	Fitness HallOfFameFitnessConfig `yaml:"fitness"`
	Entry   HallOfFameEntryConfig   `yaml:"entry"`
}

// HallOfFameFitnessConfig holds fitness calculation weights.
type HallOfFameFitnessConfig struct {
	ChildrenWeight float64 `yaml:"children_weight"`
	SurvivalWeight float64 `yaml:"survival_weight"` // per tick alive
	FightsWeight   float64 `yaml:"fights_weight"`   // per fight won
}

// HallOfFameEntryConfig holds entry criteria thresholds.
type HallOfFameEntryConfig struct {
	MinChildren      int `yaml:"min_children"`
	MinSurvivalTicks int `yaml:"min_survival_ticks"`
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	WorldW32  float32      // World.Width as float32
	WorldH32  float32      // World.Height as float32
	WorldRect spatial.Rect // index build area
	IndexKind spatial.Kind
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
		// Only overwrites fields present in the file.
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the embedded defaults. It panics if they are invalid.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults: %v", err))
	}
	return cfg
}

// Finalize validates the configuration and computes derived values. Call
// it again after changing fields programmatically.
func (c *Config) Finalize() error {
	if err := c.validate(); err != nil {
		return err
	}
	kind, err := spatial.ParseKind(c.Index.Kind)
	if err != nil {
		return fmt.Errorf("index.kind: %w", err)
	}

	c.Derived.WorldW32 = float32(c.World.Width)
	c.Derived.WorldH32 = float32(c.World.Height)
	c.Derived.WorldRect = spatial.Rect{Max: spatial.Point{X: c.World.Width, Y: c.World.Height}}
	c.Derived.IndexKind = kind
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.World.Width <= 0 || c.World.Height <= 0:
		return fmt.Errorf("world: dimensions must be positive, got %dx%d", c.World.Width, c.World.Height)
	case c.World.Border < 0 || 2*c.World.Border >= min(c.World.Width, c.World.Height):
		return fmt.Errorf("world.border: %d leaves no room inside %dx%d", c.World.Border, c.World.Width, c.World.Height)
	case c.Population.Initial < 0 || c.Population.Max < 0:
		return fmt.Errorf("population: counts must not be negative")
	case c.Beast.IdleDrainDivisor <= 0 || c.Beast.MoveCostDivisor <= 0:
		return fmt.Errorf("beast: drain divisors must be positive")
	case c.Mutation.Rate < 0 || c.Mutation.Rate > 1:
		return fmt.Errorf("mutation.rate: %v not in [0,1]", c.Mutation.Rate)
	case c.Fight.Chance < 0 || c.Fight.Chance > 1:
		return fmt.Errorf("fight.chance: %v not in [0,1]", c.Fight.Chance)
	case c.Fight.Enabled && c.Fight.Cooldown < 1:
		return fmt.Errorf("fight.cooldown: must be at least 1 tick")
	case c.Telemetry.StatsWindow <= 0:
		return fmt.Errorf("telemetry.stats_window: must be positive")
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
