package systems

import (
	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/neural"
	"github.com/pthm-cable/beasts/traits"
)

// Motion holds the movement rules shared by every beast.
type Motion struct {
	Speed           float64 // max distance per tick, either direction
	MoveCostDivisor float64
	Bounds          Bounds
}

// Think evaluates a beast's brain on its current senses. The turn limit
// comes from the beast's size.
func Think(brain *neural.Brain, s *components.Senses, tr traits.Traits, moveScale, turnScale float64) []neural.Action {
	if brain == nil {
		return nil
	}
	return brain.Evaluate(s.Inputs, neural.Actuation{
		MoveScale: moveScale,
		TurnScale: turnScale,
		MaxTurn:   tr.MaxTurn(),
	})
}

// Act applies actions in order, updating position and heading. It returns
// the energy spent and the distance covered. Moves are capped at the motion
// speed and end inside the bounds; the cost is charged on the attempted
// distance.
func Act(
	actions []neural.Action,
	pos *components.Position,
	rot *components.Rotation,
	tr traits.Traits,
	m Motion,
) (cost, moved float64) {
	for _, a := range actions {
		switch a := a.(type) {
		case neural.MoveForward:
			dist := float64(a.Distance)
			if dist > m.Speed {
				dist = m.Speed
			} else if dist < -m.Speed {
				dist = -m.Speed
			}
			if dist == 0 {
				continue
			}
			*pos = m.Bounds.Clamp(Translate(*pos, rot.Heading, dist))
			cost += tr.MoveCost(dist, m.MoveCostDivisor)
			if dist < 0 {
				dist = -dist
			}
			moved += dist
		case neural.Turn:
			rot.Heading = wrapHeading(float64(rot.Heading) + float64(a.Degrees))
		case neural.Noop:
		}
	}
	return cost, moved
}
