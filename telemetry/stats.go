package telemetry

import (
	"log/slog"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// WindowStats holds aggregated statistics for a tick window.
type WindowStats struct {
	WindowStartTick int32 `csv:"-"`
	WindowEndTick   int32 `csv:"window_end"`

	// Population at window end
	Alive   int `csv:"alive"`
	Corpses int `csv:"corpses"`

	// Events during window
	Births     int     `csv:"births"`
	Deaths     int     `csv:"deaths"`
	Despawns   int     `csv:"despawns"`
	Fights     int     `csv:"fights"`
	Reseeds    int     `csv:"reseeds"`
	MeanDamage float64 `csv:"mean_damage"`

	// Energy distribution (sampled at window end)
	EnergyMean float64 `csv:"energy_mean"`
	EnergyStd  float64 `csv:"energy_std"`
	EnergyP10  float64 `csv:"energy_p10"`
	EnergyP50  float64 `csv:"energy_p50"`
	EnergyP90  float64 `csv:"energy_p90"`

	// Phenotype drift
	SizeMean float64 `csv:"size_mean"`
	SizeStd  float64 `csv:"size_std"`

	GenerationMean float64 `csv:"generation_mean"`
	GenerationMax  int     `csv:"generation_max"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean, population standard deviation, and
// percentiles. All are zero for an empty slice.
func ComputeDistribution(values []float64) (mean, std, p10, p50, p90 float64) {
	if len(values) == 0 {
		return 0, 0, 0, 0, 0
	}

	mean, std = stat.PopMeanStdDev(values, nil)

	sorted := slices.Clone(values)
	slices.Sort(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, std, p10, p50, p90
}

// ComputeGenerationStats returns the mean and maximum generation.
func ComputeGenerationStats(generations []float64) (mean float64, maxGen int) {
	if len(generations) == 0 {
		return 0, 0
	}
	return stat.Mean(generations, nil), int(floats.Max(generations))
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Int("alive", s.Alive),
		slog.Int("corpses", s.Corpses),
		slog.Int("births", s.Births),
		slog.Int("deaths", s.Deaths),
		slog.Int("despawns", s.Despawns),
		slog.Int("fights", s.Fights),
		slog.Int("reseeds", s.Reseeds),
		slog.Float64("mean_damage", s.MeanDamage),
		slog.Float64("energy_mean", s.EnergyMean),
		slog.Float64("energy_std", s.EnergyStd),
		slog.Float64("energy_p10", s.EnergyP10),
		slog.Float64("energy_p50", s.EnergyP50),
		slog.Float64("energy_p90", s.EnergyP90),
		slog.Float64("size_mean", s.SizeMean),
		slog.Float64("size_std", s.SizeStd),
		slog.Float64("generation_mean", s.GenerationMean),
		slog.Int("generation_max", s.GenerationMax),
	)
}

// LogStats logs the headline window stats.
func (s WindowStats) LogStats(logger *slog.Logger) {
	logger.Info("stats",
		"window_end", s.WindowEndTick,
		"alive", s.Alive,
		"corpses", s.Corpses,
		"births", s.Births,
		"deaths", s.Deaths,
		"fights", s.Fights,
		"reseeds", s.Reseeds,
		"energy_mean", s.EnergyMean,
		"energy_p50", s.EnergyP50,
		"size_mean", s.SizeMean,
		"generation_max", s.GenerationMax,
	)
}
