package neural

import (
	"fmt"
	"math"
	"strings"

	"github.com/pthm-cable/beasts/dna"
)

const noNeuron NeuronID = -1

// Actuation converts summed actuator values into concrete actions.
type Actuation struct {
	MoveScale float64 // distance = round(value * MoveScale)
	TurnScale float64 // degrees = round(value * TurnScale)
	MaxTurn   int     // |degrees| is clamped to this
}

// Brain is a weighted graph from input neurons to output neurons, built
// once from a genome and never modified afterwards. Neurons and connections
// live in arenas and refer to each other by index.
type Brain struct {
	neurons     []Neuron
	connections []Connection
	outputs     [NumOutputTypes]NeuronID
}

// Build decodes every connection gene of g into a brain.
func Build(g dna.Genome) *Brain {
	genes := make([]dna.Connection, len(dna.ConnectionTraits))
	for i, trait := range dna.ConnectionTraits {
		genes[i] = dna.DecodeConnection(g, trait)
	}
	return BuildFromGenes(genes)
}

// BuildFromGenes builds a brain from decoded connection genes. Every gene
// links a fresh input neuron to an output neuron; genes that target the
// same output type share one output neuron.
func BuildFromGenes(genes []dna.Connection) *Brain {
	b := &Brain{
		neurons:     make([]Neuron, 0, 2*len(genes)),
		connections: make([]Connection, 0, len(genes)),
	}
	for i := range b.outputs {
		b.outputs[i] = noNeuron
	}

	for _, gene := range genes {
		// Source and sink class bits select internal neurons once those
		// exist; for now every source is an input and every sink an output.
		src := b.addNeuron(Neuron{
			Kind:  KindInput,
			Input: InputType(int(gene.SourceType) % NumInputTypes),
		})
		sink := b.outputNeuron(OutputType(int(gene.SinkType) % NumOutputTypes))
		b.connect(src, sink, gene.Strength)
	}
	return b
}

func (b *Brain) addNeuron(n Neuron) NeuronID {
	b.neurons = append(b.neurons, n)
	return NeuronID(len(b.neurons) - 1)
}

// outputNeuron returns the output neuron of type t, creating it on first use.
func (b *Brain) outputNeuron(t OutputType) NeuronID {
	if id := b.outputs[t]; id != noNeuron {
		return id
	}
	id := b.addNeuron(Neuron{Kind: KindOutput, Output: t})
	b.outputs[t] = id
	return id
}

func (b *Brain) connect(src, sink NeuronID, strength float64) {
	id := ConnectionID(len(b.connections))
	b.connections = append(b.connections, Connection{Source: src, Sink: sink, Strength: strength})
	b.neurons[src].Outgoing = append(b.neurons[src].Outgoing, id)
	b.neurons[sink].Incoming = append(b.neurons[sink].Incoming, id)
}

// Neuron returns the neuron with the given id.
func (b *Brain) Neuron(id NeuronID) Neuron {
	return b.neurons[id]
}

// Connection returns the connection with the given id.
func (b *Brain) Connection(id ConnectionID) Connection {
	return b.connections[id]
}

// NumNeurons returns the number of neurons in the brain.
func (b *Brain) NumNeurons() int {
	return len(b.neurons)
}

// NumConnections returns the number of connections in the brain.
func (b *Brain) NumConnections() int {
	return len(b.connections)
}

// Output returns the output neuron for t, if any gene targets it.
func (b *Brain) Output(t OutputType) (NeuronID, bool) {
	id := b.outputs[t]
	return id, id != noNeuron
}

// Sum returns the weighted input of output t for the given input set and
// whether any connection contributed. Connections whose source input is
// absent do not contribute.
func (b *Brain) Sum(t OutputType, in InputSet) (float64, bool) {
	id, ok := b.Output(t)
	if !ok {
		return 0, false
	}

	var sum float64
	var live bool
	for _, cid := range b.neurons[id].Incoming {
		c := b.connections[cid]
		v, ok := b.sample(c.Source, in)
		if !ok {
			continue
		}
		sum += v * c.Strength
		live = true
	}
	return sum, live
}

func (b *Brain) sample(id NeuronID, in InputSet) (float64, bool) {
	n := b.neurons[id]
	switch n.Kind {
	case KindInput:
		return in.Get(n.Input)
	case KindInternal, KindOutput:
		return 0, false
	default:
		panic(fmt.Sprintf("neural: unknown neuron kind %v", n.Kind))
	}
}

// Evaluate runs the brain on one tick of input. An input set with nothing
// present yields no actions. Otherwise every output with a nonzero sum
// emits one action, in output type order; if none does, a single Noop is
// returned.
func (b *Brain) Evaluate(in InputSet, act Actuation) []Action {
	if in.Empty() {
		return nil
	}

	var actions []Action
	for t := OutputType(0); t < NumOutputTypes; t++ {
		sum, live := b.Sum(t, in)
		if !live || sum == 0 {
			continue
		}
		switch t {
		case OutputTurn:
			deg := int(math.Round(sum * act.TurnScale))
			actions = append(actions, Turn{Degrees: clampInt(deg, -act.MaxTurn, act.MaxTurn)})
		case OutputMoveForward:
			actions = append(actions, MoveForward{Distance: int(math.Round(sum * act.MoveScale))})
		}
	}

	if len(actions) == 0 {
		return []Action{Noop{}}
	}
	return actions
}

func (b *Brain) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "brain: %d neurons, %d connections\n", len(b.neurons), len(b.connections))
	for _, c := range b.connections {
		fmt.Fprintf(&sb, "  %s -> %s : %+.3f\n", b.neurons[c.Source], b.neurons[c.Sink], c.Strength)
	}
	return sb.String()
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		return 0
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
