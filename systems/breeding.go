package systems

import (
	"math/rand"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/dna"
	"github.com/pthm-cable/beasts/traits"
)

// Parent is one side of a mating attempt.
type Parent struct {
	Org    *components.Organism
	Traits traits.Traits
	Genome dna.Genome
	Pos    components.Position
}

// Birth describes a child waiting to be spawned.
type Birth struct {
	Genome     dna.Genome
	Pos        components.Position
	Generation int
	ParentA    uint32
	ParentB    uint32
}

// Breed attempts a mating between a and b. Both must be alive and off
// cooldown; the attempt then succeeds with probability 1/MatingOdds. On
// success both parents' cooldowns are reset and the child, placed at a's
// position, is returned.
func Breed(rng *rand.Rand, a, b Parent, mutationRate float64) (Birth, bool) {
	if !a.Org.CanMate() || !b.Org.CanMate() {
		return Birth{}, false
	}
	if rng.Intn(traits.MatingOdds(a.Traits, b.Traits)) != 0 {
		return Birth{}, false
	}

	child := dna.Crossover(rng, a.Genome, b.Genome).Mutate(rng, mutationRate)

	a.Org.ReproCooldown = a.Traits.ReproductionCooldown
	b.Org.ReproCooldown = b.Traits.ReproductionCooldown

	return Birth{
		Genome:     child,
		Pos:        a.Pos,
		Generation: max(a.Org.Generation, b.Org.Generation) + 1,
		ParentA:    a.Org.ID,
		ParentB:    b.Org.ID,
	}, true
}
