package components

// Organism bundles identity, energy and lifecycle state.
type Organism struct {
	ID         uint32
	Generation int
	ParentA    uint32 // 0 for founders
	ParentB    uint32
	BirthTick  int32

	Energy        float64
	ReproCooldown int // ticks until the beast may mate again
	FightCooldown int // ticks until the beast may fight again

	// DeadTicks is 0 while alive. It becomes 1 on death and counts up
	// every tick until the corpse despawns.
	DeadTicks int
}

// Alive reports whether the beast has not died.
func (o *Organism) Alive() bool {
	return o.DeadTicks == 0
}

// CanMate reports whether the beast is alive and off its mating cooldown.
func (o *Organism) CanMate() bool {
	return o.Alive() && o.ReproCooldown == 0
}

// CanFight reports whether the beast is alive and off its fight cooldown.
func (o *Organism) CanFight() bool {
	return o.Alive() && o.FightCooldown == 0
}
