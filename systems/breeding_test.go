package systems

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/dna"
	"github.com/pthm-cable/beasts/traits"
)

func parent(id uint32, gen int, g dna.Genome, fertility int) Parent {
	tr := testTraits
	tr.Fertility = fertility
	return Parent{
		Org:    &components.Organism{ID: id, Generation: gen, Energy: 50},
		Traits: tr,
		Genome: g,
		Pos:    pos(float32(id)*10, 100),
	}
}

func TestBreed_Success(t *testing.T) {
	g := dna.MustParse(strings.Repeat("a", dna.Length))
	a := parent(1, 2, g, 0)
	b := parent(2, 5, g, 0)

	child, ok := Breed(rand.New(rand.NewSource(1)), a, b, 0)
	if !ok {
		t.Fatal("fully fertile parents should always conceive")
	}
	if child.Genome != g {
		t.Errorf("child of identical parents without mutation should match them")
	}
	if child.Generation != 6 {
		t.Errorf("generation = %d, want 6", child.Generation)
	}
	if child.ParentA != 1 || child.ParentB != 2 {
		t.Errorf("parents = %d/%d, want 1/2", child.ParentA, child.ParentB)
	}
	if child.Pos != a.Pos {
		t.Errorf("child at %v, want first parent's position %v", child.Pos, a.Pos)
	}
	if a.Org.ReproCooldown != 20 || b.Org.ReproCooldown != 20 {
		t.Errorf("parent cooldowns = %d/%d, want 20/20", a.Org.ReproCooldown, b.Org.ReproCooldown)
	}
}

func TestBreed_Ineligible(t *testing.T) {
	g := dna.MustParse(strings.Repeat("0", dna.Length))

	tests := []struct {
		name   string
		mutate func(a, b *Parent)
	}{
		{"first on cooldown", func(a, b *Parent) { a.Org.ReproCooldown = 1 }},
		{"second on cooldown", func(a, b *Parent) { b.Org.ReproCooldown = 3 }},
		{"first dead", func(a, b *Parent) { a.Org.DeadTicks = 1 }},
		{"second dead", func(a, b *Parent) { b.Org.DeadTicks = 4 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, b := parent(1, 0, g, 0), parent(2, 0, g, 0)
			tt.mutate(&a, &b)
			cdA, cdB := a.Org.ReproCooldown, b.Org.ReproCooldown

			if _, ok := Breed(rand.New(rand.NewSource(1)), a, b, 0); ok {
				t.Error("Breed should fail")
			}
			if a.Org.ReproCooldown != cdA || b.Org.ReproCooldown != cdB {
				t.Error("failed attempt should not touch cooldowns")
			}
		})
	}
}

func TestBreed_FertilityOdds(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	g := dna.Random(rng)
	const trials = 20000

	successes := 0
	for i := 0; i < trials; i++ {
		if _, ok := Breed(rng, parent(1, 0, g, 3), parent(2, 0, g, 3), 0); ok {
			successes++
		}
	}

	// 1 in 10
	want := trials / traits.MatingOdds(traits.Traits{Fertility: 3}, traits.Traits{Fertility: 3})
	if successes < want*8/10 || successes > want*12/10 {
		t.Errorf("successes = %d, want about %d", successes, want)
	}
}
