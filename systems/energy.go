package systems

import (
	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/traits"
)

// Metabolize advances a beast by one tick of upkeep. Living beasts pay their
// idle drain and count down cooldowns; corpses only age.
func Metabolize(org *components.Organism, tr traits.Traits, idleDivisor float64) {
	if !org.Alive() {
		org.DeadTicks++
		return
	}

	org.Energy -= tr.IdleDrain(idleDivisor)
	org.ReproCooldown = max(org.ReproCooldown-1, 0)
	org.FightCooldown = max(org.FightCooldown-1, 0)
}

// CheckDeath marks a living beast with negative energy as dead and reports
// whether it died on this call.
func CheckDeath(org *components.Organism) bool {
	if !org.Alive() || org.Energy >= 0 {
		return false
	}
	org.DeadTicks = 1
	return true
}

// Despawnable reports whether a corpse has lain long enough to be removed.
func Despawnable(org *components.Organism, despawnTicks int) bool {
	return org.DeadTicks > despawnTicks
}
