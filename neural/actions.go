package neural

import "fmt"

// Action is an actuator command produced by a brain. It is one of
// MoveForward, Turn or Noop.
type Action interface {
	action()
}

// MoveForward moves a beast along its heading. Negative distances move it
// backwards.
type MoveForward struct {
	Distance int
}

// Turn rotates a beast clockwise by Degrees (negative turns counter-clockwise).
type Turn struct {
	Degrees int
}

// Noop is produced when a brain had input but no actuator fired.
type Noop struct{}

func (MoveForward) action() {}
func (Turn) action()        {}
func (Noop) action()        {}

func (a MoveForward) String() string { return fmt.Sprintf("move_forward(%d)", a.Distance) }
func (a Turn) String() string        { return fmt.Sprintf("turn(%d)", a.Degrees) }
func (Noop) String() string          { return "noop" }
