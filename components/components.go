// Package components defines ECS components for the simulation.
package components

import (
	"github.com/pthm-cable/beasts/dna"
	"github.com/pthm-cable/beasts/neural"
	"github.com/pthm-cable/beasts/traits"
)

// Traits is the decoded phenotype, stored as its own component.
type Traits = traits.Traits

// Genetics holds the genome a beast was born with and the brain built
// from it. Neither changes after birth.
type Genetics struct {
	Genome dna.Genome
	Brain  *neural.Brain
}

// Senses records what a beast perceived and decided on its last tick.
type Senses struct {
	Inputs   neural.InputSet
	MateID   uint32 // nearest mate seen, 0 if none
	MateDist float64
	Actions  []neural.Action
}
