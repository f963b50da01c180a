// Package traits derives a beast's phenotype from its genome.
package traits

import (
	"fmt"

	"github.com/pthm-cable/beasts/dna"
)

// Traits is the decoded, immutable phenotype of a beast.
type Traits struct {
	BaseEnergy           int     // starting energy
	EnergyConsumption    float64 // per-tick burn rate, already scaled by size
	Size                 int     // body size, 3..10
	Color                dna.Color
	ReproductionCooldown int // ticks between matings
	Fertility            int // lower is more fertile
}

// FromGenome decodes the phenotype carried by g.
func FromGenome(g dna.Genome) Traits {
	size := dna.DecodeDiscrete(g, dna.TraitSize)
	consumption := dna.DecodeScalar(g, dna.TraitEnergyConsumption)
	return Traits{
		BaseEnergy:           dna.DecodeDiscrete(g, dna.TraitBaseEnergy),
		EnergyConsumption:    consumption * float64(size) / 10,
		Size:                 size,
		Color:                dna.DecodeColor(g, dna.TraitColor),
		ReproductionCooldown: dna.DecodeDiscrete(g, dna.TraitReproductionCooldown),
		Fertility:            dna.DecodeDiscrete(g, dna.TraitFertility),
	}
}

// MaxTurn is the largest turn, in degrees, a beast can make in one tick.
// Bigger beasts turn slower.
func (t Traits) MaxTurn() int {
	return max(0, 90-t.Size*9)
}

// IdleDrain is the energy lost every tick regardless of activity.
func (t Traits) IdleDrain(divisor float64) float64 {
	return t.EnergyConsumption / divisor
}

// MoveCost is the energy lost moving distance units.
func (t Traits) MoveCost(distance, divisor float64) float64 {
	if distance < 0 {
		distance = -distance
	}
	return t.EnergyConsumption / divisor * distance
}

// MatingOdds returns the denominator of the chance that two beasts with
// these fertilities conceive when they meet: 1 in (fa*fb + 1).
func MatingOdds(a, b Traits) int {
	return a.Fertility*b.Fertility + 1
}

func (t Traits) String() string {
	return fmt.Sprintf("size=%d energy=%d consumption=%.3f cooldown=%d fertility=%d color=#%02x%02x%02x",
		t.Size, t.BaseEnergy, t.EnergyConsumption, t.ReproductionCooldown, t.Fertility,
		t.Color.R, t.Color.G, t.Color.B)
}
