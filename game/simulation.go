package game

import (
	"context"

	"github.com/pthm-cable/beasts/logging"
	"github.com/pthm-cable/beasts/spatial"
	"github.com/pthm-cable/beasts/systems"
	"github.com/pthm-cable/beasts/telemetry"
)

// buildIndex rebuilds the spatial index from the current positions of
// living beasts. Corpses are not indexed.
func (g *Game) buildIndex() {
	g.indexEntries = g.indexEntries[:0]

	query := g.beastFilter.Query()
	for query.Next() {
		pos, _, _, org, _, _ := query.Get()
		if org.Alive() {
			g.indexEntries = append(g.indexEntries, spatial.Entry{Pos: systems.IndexPoint(*pos), ID: org.ID})
		}
	}

	g.index = spatial.Build(g.cfg.Derived.IndexKind, g.cfg.Derived.WorldRect, g.indexEntries)
}

// updateBehavior runs sense, think and act for every living beast, then
// applies upkeep and checks for starvation. Corpses only age.
func (g *Game) updateBehavior() {
	cfg := g.cfg
	trace := g.logger.Enabled(context.Background(), logging.LevelTrace)

	var died []uint32

	query := g.beastFilter.Query()
	for query.Next() {
		pos, rot, tr, org, gen, senses := query.Get()

		if org.Alive() {
			*senses = systems.Sense(g.index, org.ID, *pos, *rot, cfg.Beast.MateRange, g.rng)
			senses.Actions = systems.Think(gen.Brain, senses, *tr, cfg.Brain.MoveScale, cfg.Brain.TurnScale)

			cost, moved := systems.Act(senses.Actions, pos, rot, *tr, g.motion)
			org.Energy -= cost
			g.lifetimeTracker.RecordMove(org.ID, moved)

			if trace {
				g.logDecision(org, senses, pos, rot)
			}
		}

		systems.Metabolize(org, *tr, cfg.Beast.IdleDrainDivisor)
		if systems.CheckDeath(org) {
			died = append(died, org.ID)
		}
	}

	for _, id := range died {
		g.recordDeath(id)
	}
}

// updateFights resolves fights between living beasts within fight range.
func (g *Game) updateFights() {
	if !g.cfg.Fight.Enabled {
		return
	}

	for _, p := range systems.FindPairs(g.index, g.indexEntries, g.cfg.Fight.Range) {
		a := systems.Fighter{Org: g.orgMap.Get(g.entities[p.A]), Size: g.traitsMap.Get(g.entities[p.A]).Size}
		b := systems.Fighter{Org: g.orgMap.Get(g.entities[p.B]), Size: g.traitsMap.Get(g.entities[p.B]).Size}

		res, ok := systems.Fight(g.rng, a, b, g.cfg.Fight)
		if !ok {
			continue
		}

		g.lifetimeTracker.RecordFight(res.Winner, res.Loser)
		g.emit(telemetry.NewFightEvent(g.tick, res.Winner, res.Loser, res.Damage))

		loser := a.Org
		if res.Loser == b.Org.ID {
			loser = b.Org
		}
		if systems.CheckDeath(loser) {
			g.recordDeath(loser.ID)
		}
	}
}

// updateReproduction mates living beasts within reproduction range. Births
// are spawned once every pair has been considered.
func (g *Game) updateReproduction() {
	var births []systems.Birth

	for _, p := range systems.FindPairs(g.index, g.indexEntries, g.cfg.Reproduction.Range) {
		child, ok := systems.Breed(g.rng, g.parent(p.A), g.parent(p.B), g.cfg.Mutation.Rate)
		if !ok {
			continue
		}
		births = append(births, child)
	}

	for _, b := range births {
		if g.cfg.Population.Max > 0 && g.aliveCount >= g.cfg.Population.Max {
			g.logger.Debug("birth dropped at population cap", "parent_a", b.ParentA, "parent_b", b.ParentB)
			continue
		}

		entity := g.spawnBeast(spawnSpec{
			genome:     b.Genome,
			pos:        b.Pos,
			heading:    float32(g.rng.Intn(360)),
			generation: b.Generation,
			parentA:    b.ParentA,
			parentB:    b.ParentB,
			newborn:    true,
		})
		id := g.orgMap.Get(entity).ID

		g.lifetimeTracker.RecordChild(b.ParentA)
		g.lifetimeTracker.RecordChild(b.ParentB)
		g.emit(telemetry.NewBirthEvent(g.tick, id, b.ParentA))
	}
}

func (g *Game) parent(id uint32) systems.Parent {
	e := g.entities[id]
	return systems.Parent{
		Org:    g.orgMap.Get(e),
		Traits: *g.traitsMap.Get(e),
		Genome: g.geneMap.Get(e).Genome,
		Pos:    *g.posMap.Get(e),
	}
}

// recordDeath books a death that has just happened.
func (g *Game) recordDeath(id uint32) {
	g.aliveCount--
	g.lifetimeTracker.RecordDeath(id, g.tick)

	var energy float64
	if e, ok := g.entities[id]; ok {
		energy = g.orgMap.Get(e).Energy
	}
	g.emit(telemetry.NewDeathEvent(g.tick, id, energy))
}
