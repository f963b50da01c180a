package game

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/dna"
	"github.com/pthm-cable/beasts/neural"
	"github.com/pthm-cable/beasts/systems"
	"github.com/pthm-cable/beasts/telemetry"
	"github.com/pthm-cable/beasts/traits"
)

// spawnSpec describes a beast about to enter the world.
type spawnSpec struct {
	genome     dna.Genome
	pos        components.Position
	heading    float32
	generation int
	parentA    uint32
	parentB    uint32
	newborn    bool // newborns start on their mating cooldown
}

// randomSpec places a beast with the given genome at a random spot.
func (g *Game) randomSpec(genome dna.Genome) spawnSpec {
	b := g.motion.Bounds
	return spawnSpec{
		genome: genome,
		pos: components.Position{
			X: b.MinX + g.rng.Float32()*(b.MaxX-b.MinX),
			Y: b.MinY + g.rng.Float32()*(b.MaxY-b.MinY),
		},
		heading: float32(g.rng.Intn(360)),
	}
}

// spawnInitialPopulation creates the founding beasts with random genomes.
func (g *Game) spawnInitialPopulation() {
	for i := 0; i < g.cfg.Population.Initial; i++ {
		g.spawnBeast(g.randomSpec(dna.Random(g.rng)))
	}
}

// spawnBeast decodes the genome and creates the beast's entity. It must
// not be called while a query is open.
func (g *Game) spawnBeast(s spawnSpec) ecs.Entity {
	id := g.nextID
	g.nextID++

	tr := traits.FromGenome(s.genome)
	pos := s.pos
	rot := components.Rotation{Heading: s.heading}
	org := components.Organism{
		ID:         id,
		Generation: s.generation,
		ParentA:    s.parentA,
		ParentB:    s.parentB,
		BirthTick:  g.tick,
		Energy:     float64(tr.BaseEnergy),
	}
	if s.newborn {
		org.ReproCooldown = tr.ReproductionCooldown
	}
	gen := components.Genetics{Genome: s.genome, Brain: neural.Build(s.genome)}
	senses := components.Senses{}

	entity := g.beastMapper.NewEntity(&pos, &rot, &tr, &org, &gen, &senses)
	g.entities[id] = entity
	g.aliveCount++

	g.lifetimeTracker.Register(id, g.tick, s.generation, org.Energy)

	g.logger.Debug("spawn",
		"id", id,
		"generation", s.generation,
		"pos", pos,
		"traits", tr.String(),
	)
	return entity
}

// cleanupDead removes corpses that have lain longer than the despawn window.
func (g *Game) cleanupDead() {
	// First pass: collect despawnable entities (must complete before modifying)
	type deadInfo struct {
		entity ecs.Entity
		id     uint32
		genome dna.Genome
	}
	var toRemove []deadInfo

	query := g.beastFilter.Query()
	for query.Next() {
		_, _, _, org, gen, _ := query.Get()
		if systems.Despawnable(org, g.cfg.Beast.DespawnTicks) {
			toRemove = append(toRemove, deadInfo{entity: query.Entity(), id: org.ID, genome: gen.Genome})
		}
	}

	// Second pass: remove entities (query iteration complete)
	for _, dead := range toRemove {
		stats := g.lifetimeTracker.Remove(dead.id)
		if g.hallOfFame != nil && g.hallOfFame.Consider(dead.genome, stats, dead.id) {
			g.logger.Debug("hall of fame entry", "id", dead.id, "size", g.hallOfFame.Size())
		}

		g.world.RemoveEntity(dead.entity)
		delete(g.entities, dead.id)
		g.emit(telemetry.NewDespawnEvent(g.tick, dead.id))
	}
}

// reseedIfNeeded tops the population up when it falls below the respawn
// threshold, preferring genomes from the hall of fame.
func (g *Game) reseedIfNeeded() {
	pop := g.cfg.Population
	if g.aliveCount >= pop.RespawnThreshold {
		return
	}

	fromHall := 0
	for i := 0; i < pop.RespawnCount; i++ {
		genome, ok := dna.Genome{}, false
		if g.hallOfFame != nil {
			genome, ok = g.hallOfFame.Sample()
		}
		if ok {
			genome = genome.Mutate(g.rng, g.cfg.Mutation.Rate)
			fromHall++
		} else {
			genome = dna.Random(g.rng)
		}

		entity := g.spawnBeast(g.randomSpec(genome))
		g.emit(telemetry.NewReseedEvent(g.tick, g.orgMap.Get(entity).ID))
	}

	if pop.RespawnCount > 0 {
		g.logger.Info("population reseeded",
			"tick", g.tick,
			"spawned", pop.RespawnCount,
			"from_hall", fromHall,
			"alive", g.aliveCount,
		)
	}
}

// restore rebuilds the population from a snapshot.
func (g *Game) restore(s *telemetry.Snapshot) error {
	if s.WorldWidth != g.cfg.World.Width || s.WorldHeight != g.cfg.World.Height {
		g.logger.Warn("snapshot world size differs from config",
			"snapshot", fmt.Sprintf("%dx%d", s.WorldWidth, s.WorldHeight),
			"config", fmt.Sprintf("%dx%d", g.cfg.World.Width, g.cfg.World.Height),
		)
	}

	beasts := slices.Clone(s.Beasts)
	slices.SortFunc(beasts, func(a, b telemetry.BeastState) int {
		return cmp.Compare(a.ID, b.ID)
	})

	g.tick = s.Tick
	for _, b := range beasts {
		genome, err := dna.Parse(b.Genome)
		if err != nil {
			return fmt.Errorf("beast %d: %w", b.ID, err)
		}
		if _, dup := g.entities[b.ID]; dup || b.ID == 0 {
			return fmt.Errorf("beast %d: invalid or duplicate id", b.ID)
		}

		g.nextID = b.ID
		entity := g.spawnBeast(spawnSpec{
			genome:     genome,
			pos:        components.Position{X: b.X, Y: b.Y},
			heading:    b.Heading,
			generation: b.Generation,
			parentA:    b.ParentA,
			parentB:    b.ParentB,
		})

		org := g.orgMap.Get(entity)
		org.BirthTick = b.BirthTick
		org.Energy = b.Energy
		org.ReproCooldown = b.ReproCooldown
		org.FightCooldown = b.FightCooldown
		org.DeadTicks = b.DeadTicks
		if !org.Alive() {
			g.aliveCount--
		}

		if lt := b.Lifetime.FromJSON(); lt != nil {
			g.lifetimeTracker.Set(b.ID, lt)
		}
	}
	g.nextID = max(s.NextID, g.nextID)

	g.logger.Info("snapshot restored", "tick", s.Tick, "beasts", len(beasts), "alive", g.aliveCount)
	return nil
}
