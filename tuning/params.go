// Package tuning searches simulation parameters for long-lived, active
// populations using CMA-ES.
package tuning

import (
	"github.com/pthm-cable/beasts/config"
)

// ParamSpec defines a single optimizable parameter.
type ParamSpec struct {
	Name    string  // Human-readable name
	Path    string  // Config path for logging
	Min     float64 // Lower bound
	Max     float64 // Upper bound
	Default float64 // Default value

	get func(*config.Config) float64
	set func(*config.Config, float64)
}

// ParamVector holds the set of all optimizable parameters.
type ParamVector struct {
	Specs []ParamSpec
}

// NewParamVector creates the standard set of optimizable parameters.
// Defaults are taken from base.
func NewParamVector(base *config.Config) *ParamVector {
	pv := &ParamVector{
		Specs: []ParamSpec{
			// Beast upkeep and movement
			{
				Name: "mate_range", Path: "beast.mate_range", Min: 20, Max: 250,
				get: func(c *config.Config) float64 { return c.Beast.MateRange },
				set: func(c *config.Config, v float64) { c.Beast.MateRange = v },
			},
			{
				Name: "speed", Path: "beast.speed", Min: 1, Max: 12,
				get: func(c *config.Config) float64 { return c.Beast.Speed },
				set: func(c *config.Config, v float64) { c.Beast.Speed = v },
			},
			{
				Name: "idle_drain_divisor", Path: "beast.idle_drain_divisor", Min: 2, Max: 50,
				get: func(c *config.Config) float64 { return c.Beast.IdleDrainDivisor },
				set: func(c *config.Config, v float64) { c.Beast.IdleDrainDivisor = v },
			},
			{
				Name: "move_cost_divisor", Path: "beast.move_cost_divisor", Min: 1, Max: 25,
				get: func(c *config.Config) float64 { return c.Beast.MoveCostDivisor },
				set: func(c *config.Config, v float64) { c.Beast.MoveCostDivisor = v },
			},
			// Brain actuation
			{
				Name: "move_scale", Path: "brain.move_scale", Min: 0.5, Max: 10,
				get: func(c *config.Config) float64 { return c.Brain.MoveScale },
				set: func(c *config.Config, v float64) { c.Brain.MoveScale = v },
			},
			{
				Name: "turn_scale", Path: "brain.turn_scale", Min: 10, Max: 360,
				get: func(c *config.Config) float64 { return c.Brain.TurnScale },
				set: func(c *config.Config, v float64) { c.Brain.TurnScale = v },
			},
			// Reproduction
			{
				Name: "repro_range", Path: "reproduction.range", Min: 3, Max: 50,
				get: func(c *config.Config) float64 { return c.Reproduction.Range },
				set: func(c *config.Config, v float64) { c.Reproduction.Range = v },
			},
			{
				Name: "mutation_rate", Path: "mutation.rate", Min: 0, Max: 0.02,
				get: func(c *config.Config) float64 { return c.Mutation.Rate },
				set: func(c *config.Config, v float64) { c.Mutation.Rate = v },
			},
			// Fights
			{
				Name: "fight_chance", Path: "fight.chance", Min: 0, Max: 0.5,
				get: func(c *config.Config) float64 { return c.Fight.Chance },
				set: func(c *config.Config, v float64) { c.Fight.Chance = v },
			},
			{
				Name: "damage_per_size", Path: "fight.damage_per_size", Min: 0.5, Max: 20,
				get: func(c *config.Config) float64 { return c.Fight.DamagePerSize },
				set: func(c *config.Config, v float64) { c.Fight.DamagePerSize = v },
			},
			{
				Name: "energy_gain", Path: "fight.energy_gain", Min: 0, Max: 1,
				get: func(c *config.Config) float64 { return c.Fight.EnergyGain },
				set: func(c *config.Config, v float64) { c.Fight.EnergyGain = v },
			},
		},
	}
	pv.Specs = pv.withDefaults(base)
	return pv
}

// withDefaults returns the specs with Default read from cfg and clamped
// into bounds.
func (pv *ParamVector) withDefaults(cfg *config.Config) []ParamSpec {
	specs := make([]ParamSpec, len(pv.Specs))
	for i, spec := range pv.Specs {
		spec.Default = min(max(spec.get(cfg), spec.Min), spec.Max)
		specs[i] = spec
	}
	return specs
}

// Dim returns the number of parameters.
func (pv *ParamVector) Dim() int {
	return len(pv.Specs)
}

// Names returns the parameter names in vector order.
func (pv *ParamVector) Names() []string {
	names := make([]string, len(pv.Specs))
	for i, spec := range pv.Specs {
		names[i] = spec.Name
	}
	return names
}

// DefaultVector returns the default parameter values as a slice.
func (pv *ParamVector) DefaultVector() []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.Default
	}
	return v
}

// Normalize converts raw parameter values to [0,1] range.
func (pv *ParamVector) Normalize(raw []float64) []float64 {
	normalized := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		normalized[i] = (raw[i] - spec.Min) / (spec.Max - spec.Min)
	}
	return normalized
}

// Denormalize converts [0,1] values back to raw parameter values.
func (pv *ParamVector) Denormalize(normalized []float64) []float64 {
	raw := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		raw[i] = spec.Min + normalized[i]*(spec.Max-spec.Min)
	}
	return raw
}

// Clamp ensures all values are within bounds.
func (pv *ParamVector) Clamp(v []float64) []float64 {
	clamped := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		clamped[i] = min(max(v[i], spec.Min), spec.Max)
	}
	return clamped
}

// Apply returns a copy of base with the (clamped) parameter values set and
// derived values recomputed.
func (pv *ParamVector) Apply(base *config.Config, values []float64) (*config.Config, error) {
	cfg := *base
	for i, v := range pv.Clamp(values) {
		pv.Specs[i].set(&cfg, v)
	}
	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Extract reads the current parameter values from cfg.
func (pv *ParamVector) Extract(cfg *config.Config) []float64 {
	v := make([]float64, len(pv.Specs))
	for i, spec := range pv.Specs {
		v[i] = spec.get(cfg)
	}
	return v
}
