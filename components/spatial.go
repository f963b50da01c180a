package components

// Position is a beast's location in world units. y grows downwards.
type Position struct {
	X, Y float32
}

// Rotation is a beast's heading in degrees: 0 is up, 90 is right.
// Always kept in [0, 360).
type Rotation struct {
	Heading float32
}
