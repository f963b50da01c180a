package neural

import (
	"math"
	"math/rand"
	"testing"

	"github.com/pthm-cable/beasts/dna"
)

var testActuation = Actuation{MoveScale: 5, TurnScale: 180, MaxTurn: 45}

func gene(srcType, sinkType uint8, strength float64) dna.Connection {
	return dna.Connection{SourceType: srcType, SinkType: sinkType, Strength: strength}
}

func TestBuildSelectsTypesByModulo(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{
		gene(4, 3, 0.5), // input 4%3=1 (direction), output 3%2=1 (move)
	})

	if b.NumConnections() != 1 {
		t.Fatalf("connections = %d, want 1", b.NumConnections())
	}
	c := b.Connection(0)
	src, sink := b.Neuron(c.Source), b.Neuron(c.Sink)
	if src.Kind != KindInput || src.Input != InputMateDirection {
		t.Errorf("source = %v, want input(mate_direction)", src)
	}
	if sink.Kind != KindOutput || sink.Output != OutputMoveForward {
		t.Errorf("sink = %v, want output(move_forward)", sink)
	}
	if len(src.Outgoing) != 1 || len(sink.Incoming) != 1 {
		t.Error("connection not registered on both endpoints")
	}
}

func TestBuildMergesOutputsOfSameType(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{
		gene(0, 0, 0.5),
		gene(1, 2, -0.25), // 2%2=0 -> turn again
		gene(2, 1, 1),
	})

	turn, ok := b.Output(OutputTurn)
	if !ok {
		t.Fatal("missing turn output")
	}
	if got := len(b.Neuron(turn).Incoming); got != 2 {
		t.Errorf("turn neuron incoming = %d, want 2", got)
	}

	outputs := 0
	for i := 0; i < b.NumNeurons(); i++ {
		if b.Neuron(NeuronID(i)).Kind == KindOutput {
			outputs++
		}
	}
	if outputs != 2 {
		t.Errorf("output neurons = %d, want 2", outputs)
	}
	// Inputs are never merged: one per gene.
	if b.NumNeurons() != 5 {
		t.Errorf("neurons = %d, want 3 inputs + 2 outputs", b.NumNeurons())
	}
}

func TestEvaluateEmptyInputs(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{gene(0, 0, 1), gene(2, 1, 1)})
	if actions := b.Evaluate(InputSet{}, testActuation); len(actions) != 0 {
		t.Errorf("empty input set produced %v", actions)
	}
}

func TestEvaluateMergedOutputSumsContributions(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{
		gene(0, 0, 0.5),  // distance -> turn
		gene(1, 0, -0.2), // direction -> turn
	})

	var in InputSet
	in.Set(InputMateDistance, 0.4)
	in.Set(InputMateDirection, 0.5)

	sum, live := b.Sum(OutputTurn, in)
	if !live {
		t.Fatal("turn output should be live")
	}
	want := 0.4*0.5 + 0.5*-0.2
	if math.Abs(sum-want) > 1e-12 {
		t.Errorf("sum = %v, want %v", sum, want)
	}

	actions := b.Evaluate(in, testActuation)
	if len(actions) != 1 {
		t.Fatalf("actions = %v, want exactly one", actions)
	}
	turn, ok := actions[0].(Turn)
	if !ok {
		t.Fatalf("action = %T, want Turn", actions[0])
	}
	if turn.Degrees != 18 { // 0.1 * 180
		t.Errorf("degrees = %d, want 18", turn.Degrees)
	}
}

func TestEvaluateAbsentInputSuppressesContribution(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{
		gene(0, 1, 1),   // distance -> move
		gene(2, 1, 0.5), // random -> move
	})

	var in InputSet
	in.Set(InputRandom, 1)

	sum, live := b.Sum(OutputMoveForward, in)
	if !live || sum != 0.5 {
		t.Errorf("sum = %v live = %v, want only the random input to count", sum, live)
	}

	actions := b.Evaluate(in, testActuation)
	if len(actions) != 1 {
		t.Fatalf("actions = %v", actions)
	}
	if mv, ok := actions[0].(MoveForward); !ok || mv.Distance != 3 { // round(2.5)
		t.Errorf("action = %v, want move_forward(3)", actions[0])
	}
}

func TestEvaluateNoopWhenNothingFires(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{gene(0, 1, 1)})

	var in InputSet
	in.Set(InputRandom, 0.7) // present, but not wired

	actions := b.Evaluate(in, testActuation)
	if len(actions) != 1 {
		t.Fatalf("actions = %v", actions)
	}
	if _, ok := actions[0].(Noop); !ok {
		t.Errorf("action = %T, want Noop", actions[0])
	}
}

func TestEvaluateClampsTurn(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{gene(1, 0, 1)})

	tests := []struct {
		name      string
		direction float64
		maxTurn   int
		want      int
	}{
		{"within limit", 0.1, 45, 18},
		{"clamped right", 1, 45, 45},
		{"clamped left", -1, 45, -45},
		{"largest beast cannot turn", 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var in InputSet
			in.Set(InputMateDirection, tt.direction)
			act := testActuation
			act.MaxTurn = tt.maxTurn

			actions := b.Evaluate(in, act)
			if len(actions) != 1 {
				t.Fatalf("actions = %v", actions)
			}
			turn, ok := actions[0].(Turn)
			if !ok || turn.Degrees != tt.want {
				t.Errorf("action = %v, want turn(%d)", actions[0], tt.want)
			}
		})
	}
}

func TestEvaluateOrderTurnBeforeMove(t *testing.T) {
	b := BuildFromGenes([]dna.Connection{gene(2, 1, 1), gene(2, 0, 0.1)})

	var in InputSet
	in.Set(InputRandom, 1)

	actions := b.Evaluate(in, testActuation)
	if len(actions) != 2 {
		t.Fatalf("actions = %v", actions)
	}
	if _, ok := actions[0].(Turn); !ok {
		t.Errorf("first action = %T, want Turn", actions[0])
	}
	if _, ok := actions[1].(MoveForward); !ok {
		t.Errorf("second action = %T, want MoveForward", actions[1])
	}
}

func TestBuildFromGenomeIsDeterministic(t *testing.T) {
	g := dna.Random(rand.New(rand.NewSource(21)))
	a, b := Build(g), Build(g)

	if a.NumConnections() != len(dna.ConnectionTraits) {
		t.Errorf("connections = %d, want %d", a.NumConnections(), len(dna.ConnectionTraits))
	}
	if a.String() != b.String() {
		t.Errorf("same genome built different brains:\n%s\n%s", a, b)
	}
}

func TestInputSetAbsentIsNotZero(t *testing.T) {
	var in InputSet
	if _, ok := in.Get(InputMateDistance); ok {
		t.Error("zero InputSet should report inputs absent")
	}
	in.Set(InputMateDistance, 0)
	if v, ok := in.Get(InputMateDistance); !ok || v != 0 {
		t.Error("explicit zero should be present")
	}
	if in.Empty() {
		t.Error("set with an explicit zero is not empty")
	}
	in.Clear(InputMateDistance)
	if !in.Empty() {
		t.Error("cleared set should be empty")
	}
}
