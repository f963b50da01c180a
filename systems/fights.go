package systems

import (
	"math/rand"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/config"
)

// Fighter is one side of a fight.
type Fighter struct {
	Org  *components.Organism
	Size int
}

// FightResult records the outcome of a fight.
type FightResult struct {
	Winner uint32
	Loser  uint32
	Damage float64
	Gain   float64
}

// Fight resolves a possible fight between two nearby beasts. It happens with
// probability cfg.Chance when both are alive and off cooldown. The winner is
// drawn in proportion to size; the loser loses DamagePerSize times the
// winner's size and the winner absorbs EnergyGain of that. Both go on
// cooldown.
func Fight(rng *rand.Rand, a, b Fighter, cfg config.FightConfig) (FightResult, bool) {
	if !cfg.Enabled || !a.Org.CanFight() || !b.Org.CanFight() {
		return FightResult{}, false
	}
	if rng.Float64() >= cfg.Chance {
		return FightResult{}, false
	}

	winner, loser := a, b
	if total := a.Size + b.Size; total > 0 && rng.Float64()*float64(total) >= float64(a.Size) {
		winner, loser = b, a
	}

	damage := cfg.DamagePerSize * float64(winner.Size)
	gain := damage * cfg.EnergyGain
	loser.Org.Energy -= damage
	winner.Org.Energy += gain

	a.Org.FightCooldown = cfg.Cooldown
	b.Org.FightCooldown = cfg.Cooldown

	return FightResult{
		Winner: winner.Org.ID,
		Loser:  loser.Org.ID,
		Damage: damage,
		Gain:   gain,
	}, true
}
