package traits

import (
	"math"
	"math/rand"
	"strings"
	"testing"

	"github.com/pthm-cable/beasts/dna"
)

func TestFromZeroGenome(t *testing.T) {
	tr := FromGenome(dna.MustParse(strings.Repeat("0", dna.Length)))

	if tr.BaseEnergy != 100 {
		t.Errorf("BaseEnergy = %d, want 100", tr.BaseEnergy)
	}
	if tr.Size != 3 {
		t.Errorf("Size = %d, want 3", tr.Size)
	}
	// 0.5 scaled by size/10.
	if math.Abs(tr.EnergyConsumption-0.15) > 1e-12 {
		t.Errorf("EnergyConsumption = %v, want 0.15", tr.EnergyConsumption)
	}
	if tr.ReproductionCooldown != 50 {
		t.Errorf("ReproductionCooldown = %d, want 50", tr.ReproductionCooldown)
	}
	if tr.Fertility != 0 {
		t.Errorf("Fertility = %d, want 0", tr.Fertility)
	}
	if tr.MaxTurn() != 63 {
		t.Errorf("MaxTurn = %d, want 63", tr.MaxTurn())
	}
}

func TestRandomGenomesStayInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for range 500 {
		tr := FromGenome(dna.Random(rng))
		if tr.Size < 3 || tr.Size > 10 {
			t.Fatalf("Size %d out of range", tr.Size)
		}
		if tr.BaseEnergy < 100 || tr.BaseEnergy > 750 {
			t.Fatalf("BaseEnergy %d out of range", tr.BaseEnergy)
		}
		if tr.ReproductionCooldown < 50 || tr.ReproductionCooldown > 150 {
			t.Fatalf("ReproductionCooldown %d out of range", tr.ReproductionCooldown)
		}
		if tr.Fertility < 0 || tr.Fertility > 10 {
			t.Fatalf("Fertility %d out of range", tr.Fertility)
		}
		lo, hi := 0.5*float64(tr.Size)/10, 1.5*float64(tr.Size)/10
		if tr.EnergyConsumption < lo || tr.EnergyConsumption > hi {
			t.Fatalf("EnergyConsumption %v outside [%v, %v]", tr.EnergyConsumption, lo, hi)
		}
		if tr.MaxTurn() < 0 {
			t.Fatalf("MaxTurn %d negative", tr.MaxTurn())
		}
	}
}

func TestMaxTurn(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{3, 63},
		{5, 45},
		{10, 0},
	}
	for _, tt := range tests {
		if got := (Traits{Size: tt.size}).MaxTurn(); got != tt.want {
			t.Errorf("MaxTurn(size=%d) = %d, want %d", tt.size, got, tt.want)
		}
	}
}

func TestEnergyCosts(t *testing.T) {
	tr := Traits{EnergyConsumption: 1}

	if got := tr.IdleDrain(10); got != 0.1 {
		t.Errorf("IdleDrain = %v, want 0.1", got)
	}
	if got := tr.MoveCost(5, 5); got != 1 {
		t.Errorf("MoveCost(5) = %v, want 1", got)
	}
	if got := tr.MoveCost(-5, 5); got != 1 {
		t.Errorf("MoveCost(-5) = %v, want 1 (backwards costs the same)", got)
	}
}

func TestMatingOdds(t *testing.T) {
	tests := []struct {
		fa, fb int
		want   int
	}{
		{0, 0, 1},
		{0, 7, 1},
		{2, 3, 7},
		{10, 10, 101},
	}
	for _, tt := range tests {
		got := MatingOdds(Traits{Fertility: tt.fa}, Traits{Fertility: tt.fb})
		if got != tt.want {
			t.Errorf("MatingOdds(%d, %d) = %d, want %d", tt.fa, tt.fb, got, tt.want)
		}
	}
}
