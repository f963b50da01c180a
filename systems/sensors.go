package systems

import (
	"math/rand"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/neural"
	"github.com/pthm-cable/beasts/spatial"
)

// Sense builds a beast's inputs for this tick. The nearest other indexed
// beast within mateRange is its mate; without one, both mate inputs are
// absent. The random input is always present.
//
// Inputs are normalised: distance as a fraction of mateRange, direction
// as a fraction of 180 degrees (negative is left).
func Sense(
	idx spatial.Index,
	id uint32,
	pos components.Position,
	rot components.Rotation,
	mateRange float64,
	rng *rand.Rand,
) components.Senses {
	var s components.Senses

	if mate, dist, ok := idx.Nearest(IndexPoint(pos), id); ok && dist <= mateRange && mateRange > 0 {
		s.MateID = mate.ID
		s.MateDist = dist
		s.Inputs.Set(neural.InputMateDistance, dist/mateRange)
		s.Inputs.Set(neural.InputMateDirection, RelativeDirection(pos, rot.Heading, PointPosition(mate.Pos))/180)
	}

	s.Inputs.Set(neural.InputRandom, rng.Float64()*2-1)
	return s
}
