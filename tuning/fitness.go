package tuning

import (
	"io"
	"log/slog"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/game"
	"github.com/pthm-cable/beasts/telemetry"
)

// Minimum viable population: if the live count stays below this for
// extinctionGraceTicks consecutive ticks, the run counts as extinct.
const (
	minViablePop         = 3
	extinctionGraceTicks = 500
	warmupTicks          = 100
)

// FitnessEvaluator runs headless simulations and computes fitness.
type FitnessEvaluator struct {
	params     *ParamVector
	maxTicks   int32
	seeds      []int64
	baseConfig *config.Config
	logger     *slog.Logger

	// Best run tracking
	mu             sync.Mutex
	bestFitness    float64
	bestHallOfFame *telemetry.HallOfFame
	lastQuality    float64 // quality from most recent Evaluate call
}

// NewFitnessEvaluator creates a new evaluator. Runs disable reseeding so
// that extinction ends them.
func NewFitnessEvaluator(params *ParamVector, maxTicks int32, seeds []int64, baseCfg *config.Config, logger *slog.Logger) *FitnessEvaluator {
	base := *baseCfg
	base.Population.RespawnThreshold = 0
	if logger == nil {
		logger = slog.Default()
	}
	return &FitnessEvaluator{
		params:      params,
		maxTicks:    maxTicks,
		seeds:       seeds,
		baseConfig:  &base,
		logger:      logger,
		bestFitness: math.Inf(1),
	}
}

// BestHallOfFame returns the hall of fame from the best evaluation.
func (fe *FitnessEvaluator) BestHallOfFame() *telemetry.HallOfFame {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.bestHallOfFame
}

// LastQuality returns the quality score from the most recent evaluation.
func (fe *FitnessEvaluator) LastQuality() float64 {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastQuality
}

// runResult holds the results from a single simulation run.
type runResult struct {
	survivalTicks int32                   // ticks before extinction (or maxTicks if survived)
	windowStats   []telemetry.WindowStats // collected via StatsCallback each window
	hallOfFame    *telemetry.HallOfFame
}

// seedResult holds the result from one seed evaluation.
type seedResult struct {
	fitness    float64
	quality    float64
	hallOfFame *telemetry.HallOfFame
}

// Evaluate computes fitness for a raw parameter vector (lower = better).
// Fitness is negative survival ticks scaled by population quality.
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	cfg, err := fe.params.Apply(fe.baseConfig, x)
	if err != nil {
		fe.logger.Warn("rejected parameters", "error", err)
		return 0
	}

	// Run all seeds in parallel; games share nothing but the read-only config.
	results := make([]seedResult, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s int64) {
			defer wg.Done()
			result := fe.runSimulation(cfg, s)
			quality := computeQuality(result.windowStats)
			results[idx] = seedResult{
				fitness:    computeFitness(result.survivalTicks, quality),
				quality:    quality,
				hallOfFame: result.hallOfFame,
			}
		}(i, seed)
	}
	wg.Wait()

	// Aggregate results
	var totalFitness, totalQuality float64
	bestSeedFitness := math.Inf(1)
	var bestSeedHallOfFame *telemetry.HallOfFame

	for _, r := range results {
		totalFitness += r.fitness
		totalQuality += r.quality
		if r.fitness < bestSeedFitness {
			bestSeedFitness = r.fitness
			bestSeedHallOfFame = r.hallOfFame
		}
	}

	n := float64(max(len(fe.seeds), 1))
	avgFitness := totalFitness / n

	fe.mu.Lock()
	if avgFitness < fe.bestFitness {
		fe.bestFitness = avgFitness
		fe.bestHallOfFame = bestSeedHallOfFame
	}
	fe.lastQuality = totalQuality / n
	fe.mu.Unlock()

	return avgFitness
}

// runSimulation executes a single headless simulation run.
// Runs until extinction or maxTicks, whichever comes first.
func (fe *FitnessEvaluator) runSimulation(cfg *config.Config, seed int64) *runResult {
	result := &runResult{survivalTicks: fe.maxTicks}

	g, err := game.NewGame(game.Options{
		Config: cfg,
		Seed:   seed,
		Logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
		StatsCallback: func(stats telemetry.WindowStats) {
			result.windowStats = append(result.windowStats, stats)
		},
	})
	if err != nil {
		fe.logger.Error("failed to create game", "seed", seed, "error", err)
		result.survivalTicks = 0
		return result
	}
	defer g.Close()

	var belowTicks int32
	for g.Tick() < fe.maxTicks {
		g.Step()

		tick := g.Tick()
		if tick < warmupTicks {
			continue
		}

		alive := g.Alive()
		if alive == 0 {
			result.survivalTicks = tick
			break
		}

		// Functional extinction: below minimum viable population too long
		if alive < minViablePop {
			belowTicks++
		} else {
			belowTicks = 0
		}
		if belowTicks >= extinctionGraceTicks {
			result.survivalTicks = tick
			break
		}
	}

	result.hallOfFame = g.HallOfFame()
	return result
}

// computeFitness calculates the scalar fitness (lower = better).
// Formula: -(survivalTicks × (1.0 + 0.2 × quality))
// Survival dominates; quality adds up to 20% to separate configs with
// similar survival.
func computeFitness(survivalTicks int32, quality float64) float64 {
	return -(float64(survivalTicks) * (1.0 + 0.2*quality))
}

// Quality component weights.
const (
	qualityWeightStability = 0.30
	qualityWeightEnergy    = 0.25
	qualityWeightTurnover  = 0.25
	qualityWeightEvolution = 0.20

	qualityWarmupWindows = 3 // skip first N windows (warmup)
	qualityMinPop        = 3 // exclude windows with fewer live beasts
)

// computeQuality computes population quality ∈ [0, 1] from window stats.
func computeQuality(windows []telemetry.WindowStats) float64 {
	if len(windows) <= qualityWarmupWindows {
		return 0
	}

	valid := windows[qualityWarmupWindows:]

	var energySum, turnoverSum float64
	counts := make([]float64, 0, len(valid))
	maxGen := 0

	for _, w := range valid {
		if w.Alive < qualityMinPop {
			continue
		}
		counts = append(counts, float64(w.Alive))

		// Median energy well clear of starvation, without hoarding.
		energySum += math.Exp(-math.Pow((w.EnergyP50-200)/150, 2))

		// Births per live beast per window.
		rate := float64(w.Births) / float64(w.Alive)
		turnoverSum += 1 - math.Exp(-3*rate)

		maxGen = max(maxGen, w.GenerationMax)
	}

	if len(counts) == 0 {
		return 0
	}
	n := float64(len(counts))

	stabilityScore := 0.0
	if len(counts) >= 2 {
		c := cv(counts)
		stabilityScore = math.Exp(-c * c)
	}
	energyScore := energySum / n
	turnoverScore := turnoverSum / n
	evolutionScore := 1 - math.Exp(-float64(maxGen)/20)

	quality := qualityWeightStability*stabilityScore +
		qualityWeightEnergy*energyScore +
		qualityWeightTurnover*turnoverScore +
		qualityWeightEvolution*evolutionScore

	return clamp01(quality)
}

// cv computes the coefficient of variation (std/mean) for a slice of values.
func cv(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	mean, std := stat.PopMeanStdDev(values, nil)
	if mean == 0 {
		return 0
	}
	return std / mean
}

// clamp01 clamps x to [0, 1].
func clamp01(x float64) float64 {
	return min(max(x, 0), 1)
}
