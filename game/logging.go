package game

import (
	"context"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/logging"
	"github.com/pthm-cable/beasts/telemetry"
)

// emit counts an event and logs it at debug level.
func (g *Game) emit(e telemetry.Event) {
	g.collector.Record(e)
	g.logger.Debug("event", "event", e)
}

// logDecision logs one beast's inputs and chosen actions.
func (g *Game) logDecision(org *components.Organism, senses *components.Senses, pos *components.Position, rot *components.Rotation) {
	g.logger.Log(context.Background(), logging.LevelTrace, "decision",
		"tick", g.tick,
		"id", org.ID,
		"energy", org.Energy,
		"x", pos.X,
		"y", pos.Y,
		"heading", rot.Heading,
		"mate", senses.MateID,
		"inputs", senses.Inputs.String(),
		"actions", senses.Actions,
	)
}

// logWorldState logs a one-line population summary.
func (g *Game) logWorldState(stats telemetry.WindowStats) {
	var topFitness float64
	var hallSize int
	if g.hallOfFame != nil {
		topFitness = g.hallOfFame.TopFitness()
		hallSize = g.hallOfFame.Size()
	}
	g.logger.Debug("world",
		"tick", g.tick,
		"alive", g.aliveCount,
		"corpses", g.Corpses(),
		"next_id", g.nextID,
		"generation_max", stats.GenerationMax,
		"hall_size", hallSize,
		"hall_top_fitness", topFitness,
	)
}
