package telemetry

// Collector accumulates events within tick windows and produces WindowStats.
type Collector struct {
	windowDurationTicks int32

	// Current window tracking
	windowStartTick int32

	// Event counters for current window
	births      int
	deaths      int
	despawns    int
	fights      int
	reseeds     int
	fightDamage float64
}

// NewCollector creates a new stats collector whose windows last
// windowTicks ticks.
func NewCollector(windowTicks int) *Collector {
	return &Collector{
		windowDurationTicks: int32(max(windowTicks, 1)),
	}
}

// Record counts an event in the current window.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventBirth:
		c.births++
	case EventDeath:
		c.deaths++
	case EventDespawn:
		c.despawns++
	case EventFight:
		c.fights++
		c.fightDamage += e.Amount
	case EventReseed:
		c.reseeds++
	}
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// PopulationSample is the state of the population at a window boundary.
type PopulationSample struct {
	Alive       int
	Corpses     int
	Energies    []float64 // living beasts only
	Sizes       []float64
	Generations []float64
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentTick int32, pop PopulationSample) WindowStats {
	energyMean, energyStd, p10, p50, p90 := ComputeDistribution(pop.Energies)
	sizeMean, sizeStd, _, _, _ := ComputeDistribution(pop.Sizes)
	genMean, genMax := ComputeGenerationStats(pop.Generations)

	var meanDamage float64
	if c.fights > 0 {
		meanDamage = c.fightDamage / float64(c.fights)
	}

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,

		Alive:   pop.Alive,
		Corpses: pop.Corpses,

		Births:     c.births,
		Deaths:     c.deaths,
		Despawns:   c.despawns,
		Fights:     c.fights,
		Reseeds:    c.reseeds,
		MeanDamage: meanDamage,

		EnergyMean: energyMean,
		EnergyStd:  energyStd,
		EnergyP10:  p10,
		EnergyP50:  p50,
		EnergyP90:  p90,

		SizeMean: sizeMean,
		SizeStd:  sizeStd,

		GenerationMean: genMean,
		GenerationMax:  genMax,
	}

	// Reset for next window
	c.windowStartTick = currentTick
	c.births = 0
	c.deaths = 0
	c.despawns = 0
	c.fights = 0
	c.reseeds = 0
	c.fightDamage = 0

	return stats
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}
