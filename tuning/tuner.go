package tuning

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gonum.org/v1/gonum/optimize"

	"github.com/pthm-cable/beasts/config"
	"github.com/pthm-cable/beasts/telemetry"
)

// Options configures a tuning run.
type Options struct {
	Config     *config.Config // base config; nil uses the embedded defaults
	MaxTicks   int32          // cap on each simulation run
	Seeds      int            // seeds per evaluation
	MaxEvals   int            // maximum number of evaluations
	Population int            // CMA-ES population size, 0 = auto
	OutputDir  string         // receives optimize_log.csv, best_config.yaml and hall_of_fame.json
	Logger     *slog.Logger
	Progress   io.Writer // per-evaluation progress lines, nil discards
}

// Result is the outcome of a tuning run.
type Result struct {
	Evaluations int
	BestFitness float64
	BestParams  map[string]float64
	BestConfig  *config.Config
	HallOfFame  *telemetry.HallOfFame
	Elapsed     time.Duration
}

// Run searches the parameter space with CMA-ES and writes the best config
// found into opts.OutputDir.
func Run(opts Options) (*Result, error) {
	if opts.OutputDir == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	if opts.Seeds <= 0 || opts.MaxEvals <= 0 || opts.MaxTicks <= 0 {
		return nil, fmt.Errorf("seeds, max evals and max ticks must be positive")
	}
	baseCfg := opts.Config
	if baseCfg == nil {
		baseCfg = config.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	params := NewParamVector(baseCfg)

	// Generate seeds for evaluation
	evalSeeds := make([]int64, opts.Seeds)
	for i := range evalSeeds {
		evalSeeds[i] = int64(i*1000 + 42)
	}

	evaluator := NewFitnessEvaluator(params, opts.MaxTicks, evalSeeds, baseCfg, logger)

	dim := params.Dim()
	initX := params.Normalize(params.DefaultVector())

	popSize := opts.Population
	if popSize == 0 {
		popSize = 4 + int(3.0*float64(dim)/2.0)
	}

	method := &optimize.CmaEsChol{
		InitStepSize: 0.3,
		Population:   popSize,
	}
	settings := &optimize.Settings{
		FuncEvaluations: opts.MaxEvals,
		Concurrent:      0, // sequential; seeds already run in parallel
	}

	logPath := filepath.Join(opts.OutputDir, "optimize_log.csv")
	logFile, err := os.Create(logPath)
	if err != nil {
		return nil, fmt.Errorf("creating optimize log: %w", err)
	}
	defer logFile.Close()

	logWriter := csv.NewWriter(logFile)
	defer logWriter.Flush()

	if err := logWriter.Write(append([]string{"eval", "fitness", "quality"}, params.Names()...)); err != nil {
		return nil, fmt.Errorf("writing optimize log: %w", err)
	}

	evalCount := 0
	bestFitness := math.Inf(1)
	var bestParams []float64
	startTime := time.Now()

	problem := optimize.Problem{
		Func: func(x []float64) float64 {
			clamped := params.Clamp(params.Denormalize(x))
			fitness := evaluator.Evaluate(clamped)
			quality := evaluator.LastQuality()
			evalCount++

			if fitness < bestFitness {
				bestFitness = fitness
				bestParams = clamped
			}

			row := []string{strconv.Itoa(evalCount), fmt.Sprintf("%.6f", fitness), fmt.Sprintf("%.4f", quality)}
			for _, v := range clamped {
				row = append(row, fmt.Sprintf("%.6f", v))
			}
			logWriter.Write(row)
			logWriter.Flush()

			elapsed := time.Since(startTime)
			avgPerEval := elapsed / time.Duration(evalCount)
			remaining := time.Duration(opts.MaxEvals-evalCount) * avgPerEval

			fmt.Fprintf(progress, "Eval %d/%d: survived=%.0f ticks quality=%.2f (best=%.0f) | elapsed: %s, ETA: %s\n",
				evalCount, opts.MaxEvals, -fitness/(1.0+0.2*quality), quality, bestFitness,
				formatDuration(elapsed), formatDuration(remaining))

			return fitness
		},
	}

	logger.Info("starting optimization",
		"params", dim,
		"population", popSize,
		"max_evals", opts.MaxEvals,
		"seeds", opts.Seeds,
		"max_ticks", opts.MaxTicks,
	)

	result, err := optimize.Minimize(problem, initX, settings, method)
	if err != nil {
		logger.Warn("optimization ended", "error", err)
	}
	if bestParams == nil {
		if result == nil {
			return nil, fmt.Errorf("optimization made no evaluations: %w", err)
		}
		bestParams = params.Clamp(params.Denormalize(result.X))
	}
	if err := logWriter.Error(); err != nil {
		return nil, fmt.Errorf("writing optimize log: %w", err)
	}

	bestCfg, err := params.Apply(baseCfg, bestParams)
	if err != nil {
		return nil, fmt.Errorf("applying best parameters: %w", err)
	}
	if err := bestCfg.WriteYAML(filepath.Join(opts.OutputDir, "best_config.yaml")); err != nil {
		return nil, err
	}

	res := &Result{
		Evaluations: evalCount,
		BestFitness: bestFitness,
		BestParams:  make(map[string]float64, dim),
		BestConfig:  bestCfg,
		HallOfFame:  evaluator.BestHallOfFame(),
		Elapsed:     time.Since(startTime),
	}
	for i, name := range params.Names() {
		res.BestParams[name] = bestParams[i]
	}

	if res.HallOfFame != nil {
		data, err := res.HallOfFame.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("marshaling hall of fame: %w", err)
		}
		if err := os.WriteFile(filepath.Join(opts.OutputDir, "hall_of_fame.json"), data, 0644); err != nil {
			return nil, fmt.Errorf("writing hall of fame: %w", err)
		}
	}

	logger.Info("optimization complete",
		"evaluations", evalCount,
		"best_fitness", bestFitness,
		"elapsed", formatDuration(res.Elapsed),
	)
	return res, nil
}

// formatDuration formats a duration as HH:MM:SS or MM:SS for shorter durations.
func formatDuration(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second

	if h > 0 {
		return fmt.Sprintf("%dh%02dm%02ds", h, m, s)
	}
	return fmt.Sprintf("%dm%02ds", m, s)
}
