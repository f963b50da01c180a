package telemetry

// LifetimeStats tracks per-beast statistics over its lifetime.
type LifetimeStats struct {
	BirthTick     int32
	SurvivalTicks int32
	Generation    int

	// Reproduction
	Children int

	// Fighting
	FightsWon  int
	FightsLost int

	// Energy and movement
	PeakEnergy float64
	Distance   float64
}

// LifetimeTracker manages per-beast lifetime statistics.
type LifetimeTracker struct {
	stats map[uint32]*LifetimeStats
}

// NewLifetimeTracker creates a new lifetime tracker.
func NewLifetimeTracker() *LifetimeTracker {
	return &LifetimeTracker{
		stats: make(map[uint32]*LifetimeStats),
	}
}

// Register creates lifetime stats for a new beast.
func (lt *LifetimeTracker) Register(id uint32, birthTick int32, generation int, energy float64) {
	lt.stats[id] = &LifetimeStats{
		BirthTick:  birthTick,
		Generation: generation,
		PeakEnergy: energy,
	}
}

// Set replaces a beast's stats, as when restoring a snapshot.
func (lt *LifetimeTracker) Set(id uint32, stats *LifetimeStats) {
	lt.stats[id] = stats
}

// Get returns the lifetime stats for a beast, or nil if not found.
func (lt *LifetimeTracker) Get(id uint32) *LifetimeStats {
	return lt.stats[id]
}

// Remove removes a beast's stats and returns them.
func (lt *LifetimeTracker) Remove(id uint32) *LifetimeStats {
	stats := lt.stats[id]
	delete(lt.stats, id)
	return stats
}

// RecordChild increments children count.
func (lt *LifetimeTracker) RecordChild(parentID uint32) {
	if s := lt.stats[parentID]; s != nil {
		s.Children++
	}
}

// RecordFight credits the winner and debits the loser.
func (lt *LifetimeTracker) RecordFight(winnerID, loserID uint32) {
	if s := lt.stats[winnerID]; s != nil {
		s.FightsWon++
	}
	if s := lt.stats[loserID]; s != nil {
		s.FightsLost++
	}
}

// RecordMove adds to the distance travelled.
func (lt *LifetimeTracker) RecordMove(id uint32, distance float64) {
	if s := lt.stats[id]; s != nil {
		s.Distance += distance
	}
}

// UpdateEnergy tracks peak energy.
func (lt *LifetimeTracker) UpdateEnergy(id uint32, energy float64) {
	if s := lt.stats[id]; s != nil && energy > s.PeakEnergy {
		s.PeakEnergy = energy
	}
}

// RecordDeath fixes the survival time at the tick the beast died.
func (lt *LifetimeTracker) RecordDeath(id uint32, tick int32) {
	if s := lt.stats[id]; s != nil {
		s.SurvivalTicks = tick - s.BirthTick
	}
}

// All returns all tracked stats (for snapshots).
func (lt *LifetimeTracker) All() map[uint32]*LifetimeStats {
	return lt.stats
}

// Count returns the number of tracked beasts.
func (lt *LifetimeTracker) Count() int {
	return len(lt.stats)
}
