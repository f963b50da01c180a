// Package game runs the beast simulation: an ECS world of beasts stepped
// tick by tick, with population management and telemetry.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/spatial"
	"github.com/pthm-cable/beasts/systems"
	"github.com/pthm-cable/beasts/telemetry"
)

// Options configures a new Game.
type Options struct {
	Config *config.Config // nil uses the embedded defaults
	Seed   int64
	Logger *slog.Logger // nil uses slog.Default()

	// OutputDir receives CSV telemetry, the config used, snapshots and the
	// hall of fame. Empty disables output.
	OutputDir string

	// HallOfFamePath preloads the hall of fame from a previous run.
	HallOfFamePath string

	// Snapshot resumes a saved run instead of spawning a fresh population.
	Snapshot *telemetry.Snapshot

	// LogStats logs every stats window at info level.
	LogStats bool

	// StatsCallback, if set, receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
}

// Game holds the complete simulation state.
type Game struct {
	cfg    *config.Config
	world  *ecs.World
	rng    *rand.Rand
	seed   int64
	logger *slog.Logger

	beastMapper *ecs.Map6[
		components.Position,
		components.Rotation,
		components.Traits,
		components.Organism,
		components.Genetics,
		components.Senses,
	]
	beastFilter *ecs.Filter6[
		components.Position,
		components.Rotation,
		components.Traits,
		components.Organism,
		components.Genetics,
		components.Senses,
	]

	// Individual component mappers for lookups by entity
	posMap    *ecs.Map1[components.Position]
	traitsMap *ecs.Map1[components.Traits]
	orgMap    *ecs.Map1[components.Organism]
	geneMap   *ecs.Map1[components.Genetics]

	// entities maps beast IDs to their entity.
	entities map[uint32]ecs.Entity

	// Spatial index over living beasts, rebuilt every phase that needs it
	index        spatial.Index
	indexEntries []spatial.Entry

	motion systems.Motion

	// Telemetry
	collector        *telemetry.Collector
	perfCollector    *telemetry.PerfCollector
	lifetimeTracker  *telemetry.LifetimeTracker
	bookmarkDetector *telemetry.BookmarkDetector
	hallOfFame       *telemetry.HallOfFame
	outputManager    *telemetry.OutputManager
	logStats         bool
	statsCallback    func(telemetry.WindowStats)

	// State
	tick       int32
	nextID     uint32
	aliveCount int
}

// NewGame creates a game and spawns (or restores) its population.
func NewGame(opts Options) (*Game, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	world := ecs.NewWorld()
	rng := rand.New(rand.NewSource(opts.Seed))

	g := &Game{
		cfg:    cfg,
		world:  world,
		rng:    rng,
		seed:   opts.Seed,
		logger: logger,
		beastMapper: ecs.NewMap6[
			components.Position,
			components.Rotation,
			components.Traits,
			components.Organism,
			components.Genetics,
			components.Senses,
		](world),
		beastFilter: ecs.NewFilter6[
			components.Position,
			components.Rotation,
			components.Traits,
			components.Organism,
			components.Genetics,
			components.Senses,
		](world),
		posMap:    ecs.NewMap1[components.Position](world),
		traitsMap: ecs.NewMap1[components.Traits](world),
		orgMap:    ecs.NewMap1[components.Organism](world),
		geneMap:   ecs.NewMap1[components.Genetics](world),
		entities:  make(map[uint32]ecs.Entity),
		motion: systems.Motion{
			Speed:           cfg.Beast.Speed,
			MoveCostDivisor: cfg.Beast.MoveCostDivisor,
			Bounds: systems.Bounds{
				MinX: float32(cfg.World.Border),
				MinY: float32(cfg.World.Border),
				MaxX: cfg.Derived.WorldW32 - float32(cfg.World.Border),
				MaxY: cfg.Derived.WorldH32 - float32(cfg.World.Border),
			},
		},
		collector:        telemetry.NewCollector(cfg.Telemetry.StatsWindow),
		perfCollector:    telemetry.NewPerfCollector(cfg.Telemetry.PerfCollectorWindow),
		lifetimeTracker:  telemetry.NewLifetimeTracker(),
		bookmarkDetector: telemetry.NewBookmarkDetector(10),
		logStats:         opts.LogStats,
		statsCallback:    opts.StatsCallback,
		nextID:           1,
	}

	if cfg.HallOfFame.Enabled {
		if opts.HallOfFamePath != "" {
			hof, err := telemetry.LoadHallOfFameFromFile(opts.HallOfFamePath, cfg.HallOfFame, rng)
			if err != nil {
				return nil, err
			}
			g.hallOfFame = hof
			logger.Info("hall of fame loaded", "path", opts.HallOfFamePath, "entries", hof.Size())
		} else {
			g.hallOfFame = telemetry.NewHallOfFame(cfg.HallOfFame, rng)
		}
	}

	if opts.Snapshot != nil {
		if err := g.restore(opts.Snapshot); err != nil {
			return nil, fmt.Errorf("restoring snapshot: %w", err)
		}
	} else {
		g.spawnInitialPopulation()
	}

	om, err := telemetry.NewOutputManager(opts.OutputDir)
	if err != nil {
		return nil, err
	}
	g.outputManager = om
	if err := om.WriteConfig(cfg); err != nil {
		om.Close()
		return nil, err
	}

	logger.Info("game created",
		"seed", opts.Seed,
		"beasts", g.aliveCount,
		"index", cfg.Derived.IndexKind,
		"world", fmt.Sprintf("%dx%d", cfg.World.Width, cfg.World.Height),
	)
	return g, nil
}

// Step advances the simulation by one tick.
func (g *Game) Step() {
	g.perfCollector.StartTick()

	g.perfCollector.StartPhase(telemetry.PhaseIndex)
	g.buildIndex()

	g.perfCollector.StartPhase(telemetry.PhaseBehavior)
	g.updateBehavior()

	g.perfCollector.StartPhase(telemetry.PhaseFights)
	g.buildIndex()
	g.updateFights()

	g.perfCollector.StartPhase(telemetry.PhaseReproduction)
	g.updateReproduction()

	g.perfCollector.StartPhase(telemetry.PhaseCleanup)
	g.cleanupDead()

	g.perfCollector.StartPhase(telemetry.PhaseReseed)
	g.reseedIfNeeded()

	g.tick++

	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.flushTelemetry()

	g.perfCollector.EndTick()
}

// Run steps the simulation until ctx is cancelled or, if maxTicks is
// positive, until the tick counter reaches maxTicks.
func (g *Game) Run(ctx context.Context, maxTicks int32) error {
	for maxTicks <= 0 || g.tick < maxTicks {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		g.Step()
	}
	return nil
}

// Close writes the hall of fame and closes output files.
func (g *Game) Close() error {
	if err := g.outputManager.WriteHallOfFame(g.hallOfFame); err != nil {
		g.logger.Error("failed to write hall of fame", "error", err)
	}
	return g.outputManager.Close()
}

// Tick returns the number of completed ticks.
func (g *Game) Tick() int32 {
	return g.tick
}

// Alive returns the number of living beasts.
func (g *Game) Alive() int {
	return g.aliveCount
}

// Corpses returns the number of dead beasts not yet despawned.
func (g *Game) Corpses() int {
	return len(g.entities) - g.aliveCount
}

// HallOfFame returns the hall of fame, or nil if disabled.
func (g *Game) HallOfFame() *telemetry.HallOfFame {
	return g.hallOfFame
}

// Snapshot captures the current state.
func (g *Game) Snapshot() *telemetry.Snapshot {
	return g.createSnapshot(nil)
}
