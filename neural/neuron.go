// Package neural builds the small fixed-weight brain of a beast from its
// connection genes and evaluates it against per-tick sensory input.
package neural

import "fmt"

// InputType identifies a sensory neuron.
type InputType uint8

const (
	InputMateDistance InputType = iota
	InputMateDirection
	InputRandom

	NumInputTypes = 3
)

func (t InputType) String() string {
	switch t {
	case InputMateDistance:
		return "mate_distance"
	case InputMateDirection:
		return "mate_direction"
	case InputRandom:
		return "random"
	default:
		return fmt.Sprintf("InputType(%d)", uint8(t))
	}
}

// OutputType identifies an actuator neuron.
type OutputType uint8

const (
	OutputTurn OutputType = iota
	OutputMoveForward

	NumOutputTypes = 2
)

func (t OutputType) String() string {
	switch t {
	case OutputTurn:
		return "turn"
	case OutputMoveForward:
		return "move_forward"
	default:
		return fmt.Sprintf("OutputType(%d)", uint8(t))
	}
}

// NeuronKind is the class of a neuron.
type NeuronKind uint8

const (
	KindInput NeuronKind = iota
	// KindInternal is reserved; no connection gene currently produces one.
	KindInternal
	KindOutput
)

func (k NeuronKind) String() string {
	switch k {
	case KindInput:
		return "input"
	case KindInternal:
		return "internal"
	case KindOutput:
		return "output"
	default:
		return fmt.Sprintf("NeuronKind(%d)", uint8(k))
	}
}

// NeuronID indexes a neuron in its brain's arena.
type NeuronID int32

// ConnectionID indexes a connection in its brain's arena.
type ConnectionID int32

// Neuron is a node of a brain graph. Input is meaningful for KindInput
// neurons and Output for KindOutput neurons.
type Neuron struct {
	Kind     NeuronKind
	Input    InputType
	Output   OutputType
	Incoming []ConnectionID
	Outgoing []ConnectionID
}

func (n Neuron) String() string {
	switch n.Kind {
	case KindInput:
		return "input(" + n.Input.String() + ")"
	case KindOutput:
		return "output(" + n.Output.String() + ")"
	default:
		return n.Kind.String()
	}
}

// Connection is a weighted directed edge between two neurons.
type Connection struct {
	Source   NeuronID
	Sink     NeuronID
	Strength float64
}
