package game

import (
	"github.com/pthm-cable/beasts/telemetry"
)

// flushTelemetry checks if the stats window should be flushed and handles bookmarks.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.tick) {
		return
	}

	stats := g.collector.Flush(g.tick, g.samplePopulation())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats(g.logger)
		perfStats.LogStats(g.logger)
	}
	g.logWorldState(stats)

	if err := g.outputManager.WriteTelemetry(stats); err != nil {
		g.logger.Error("failed to write telemetry", "error", err)
	}
	if err := g.outputManager.WritePerf(perfStats, stats.WindowEndTick); err != nil {
		g.logger.Error("failed to write perf", "error", err)
	}

	for _, bm := range g.bookmarkDetector.Check(stats) {
		bm.LogBookmark(g.logger)

		if err := g.outputManager.WriteBookmark(bm); err != nil {
			g.logger.Error("failed to write bookmark", "error", err)
		}
		g.saveSnapshot(&bm)
	}
}

// samplePopulation collects the distributions reported in a stats window.
func (g *Game) samplePopulation() telemetry.PopulationSample {
	var s telemetry.PopulationSample

	query := g.beastFilter.Query()
	for query.Next() {
		_, _, tr, org, _, _ := query.Get()
		if !org.Alive() {
			s.Corpses++
			continue
		}

		s.Alive++
		s.Energies = append(s.Energies, org.Energy)
		s.Sizes = append(s.Sizes, float64(tr.Size))
		s.Generations = append(s.Generations, float64(org.Generation))

		g.lifetimeTracker.UpdateEnergy(org.ID, org.Energy)
	}
	return s
}

// saveSnapshot writes a snapshot into the output directory, if any.
func (g *Game) saveSnapshot(bookmark *telemetry.Bookmark) {
	if g.outputManager == nil {
		return
	}

	path, err := g.outputManager.WriteSnapshot(g.createSnapshot(bookmark))
	if err != nil {
		g.logger.Error("failed to save snapshot", "error", err)
		return
	}
	g.logger.Info("snapshot saved", "path", path, "tick", g.tick)
}

// createSnapshot builds a snapshot from the current state.
func (g *Game) createSnapshot(bookmark *telemetry.Bookmark) *telemetry.Snapshot {
	snapshot := &telemetry.Snapshot{
		Version:     telemetry.SnapshotVersion,
		RNGSeed:     g.seed,
		WorldWidth:  g.cfg.World.Width,
		WorldHeight: g.cfg.World.Height,
		IndexKind:   string(g.cfg.Derived.IndexKind),
		Tick:        g.tick,
		NextID:      g.nextID,
		Bookmark:    bookmark,
	}

	query := g.beastFilter.Query()
	for query.Next() {
		pos, rot, _, org, gen, _ := query.Get()

		snapshot.Beasts = append(snapshot.Beasts, telemetry.BeastState{
			ID:            org.ID,
			Generation:    org.Generation,
			ParentA:       org.ParentA,
			ParentB:       org.ParentB,
			BirthTick:     org.BirthTick,
			X:             pos.X,
			Y:             pos.Y,
			Heading:       rot.Heading,
			Energy:        org.Energy,
			ReproCooldown: org.ReproCooldown,
			FightCooldown: org.FightCooldown,
			DeadTicks:     org.DeadTicks,
			Genome:        gen.Genome.String(),
			Lifetime:      g.lifetimeTracker.Get(org.ID).ToJSON(),
		})
	}

	return snapshot
}
