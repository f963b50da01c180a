package telemetry

import (
	"math"
	"testing"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	// Unsorted on purpose.
	values := []float64{100, 10, 90, 20, 80, 30, 70, 40, 60, 50}
	mean, std, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-55) > 0.001 {
		t.Errorf("mean = %v, want 55", mean)
	}
	// Population std of 10..100 step 10.
	if math.Abs(std-28.7228) > 0.001 {
		t.Errorf("std = %v, want ~28.7228", std)
	}
	if math.Abs(p10-19) > 0.01 || math.Abs(p50-55) > 0.01 || math.Abs(p90-91) > 0.01 {
		t.Errorf("percentiles = %v/%v/%v, want 19/55/91", p10, p50, p90)
	}
	if values[0] != 100 {
		t.Error("input slice should not be sorted in place")
	}
}

func TestComputeDistributionSmall(t *testing.T) {
	mean, std, p10, p50, p90 := ComputeDistribution(nil)
	if mean != 0 || std != 0 || p10 != 0 || p50 != 0 || p90 != 0 {
		t.Error("empty slice should return all zeros")
	}

	mean, std, _, p50, _ = ComputeDistribution([]float64{7})
	if mean != 7 || std != 0 || p50 != 7 {
		t.Errorf("single value: mean=%v std=%v p50=%v, want 7/0/7", mean, std, p50)
	}
}

func TestComputeGenerationStats(t *testing.T) {
	mean, maxGen := ComputeGenerationStats([]float64{0, 1, 5, 2})
	if mean != 2 || maxGen != 5 {
		t.Errorf("mean/max = %v/%d, want 2/5", mean, maxGen)
	}

	if mean, maxGen := ComputeGenerationStats(nil); mean != 0 || maxGen != 0 {
		t.Errorf("empty: mean/max = %v/%d, want 0/0", mean, maxGen)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(10)

	if c.ShouldFlush(9) {
		t.Error("should not flush before the window ends")
	}
	if !c.ShouldFlush(10) {
		t.Error("should flush at the window end")
	}

	c.Record(NewBirthEvent(1, 5, 2))
	c.Record(NewBirthEvent(2, 6, 2))
	c.Record(NewDeathEvent(3, 2, -0.5))
	c.Record(NewFightEvent(4, 5, 6, 20))
	c.Record(NewFightEvent(5, 6, 5, 40))
	c.Record(NewDespawnEvent(6, 2))
	c.Record(NewReseedEvent(7, 9))

	s := c.Flush(10, PopulationSample{
		Alive:       3,
		Corpses:     1,
		Energies:    []float64{10, 20, 30},
		Sizes:       []float64{3, 3, 3},
		Generations: []float64{0, 1, 2},
	})

	if s.Births != 2 || s.Deaths != 1 || s.Despawns != 1 || s.Fights != 2 || s.Reseeds != 1 {
		t.Errorf("counts = %+v", s)
	}
	if s.MeanDamage != 30 {
		t.Errorf("mean damage = %v, want 30", s.MeanDamage)
	}
	if s.EnergyMean != 20 || s.SizeStd != 0 || s.GenerationMax != 2 {
		t.Errorf("energy mean %v size std %v gen max %d", s.EnergyMean, s.SizeStd, s.GenerationMax)
	}
	if s.WindowStartTick != 0 || s.WindowEndTick != 10 {
		t.Errorf("window = [%d, %d], want [0, 10]", s.WindowStartTick, s.WindowEndTick)
	}

	// Counters reset and the next window starts at the flush tick.
	next := c.Flush(20, PopulationSample{})
	if next.Births != 0 || next.Fights != 0 || next.WindowStartTick != 10 {
		t.Errorf("next window not reset: %+v", next)
	}
	if c.ShouldFlush(25) {
		t.Error("window should restart at the last flush")
	}
}
