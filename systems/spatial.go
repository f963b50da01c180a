// Package systems implements the per-tick rules of the simulation: sensing,
// acting, metabolism, mating and fighting.
package systems

import (
	"math"
	"slices"

	"github.com/pthm-cable/beasts/components"
	"github.com/pthm-cable/beasts/spatial"
)

// IndexPoint rounds a position to the integer grid used by spatial indexes.
func IndexPoint(p components.Position) spatial.Point {
	return spatial.Point{
		X: int(math.Round(float64(p.X))),
		Y: int(math.Round(float64(p.Y))),
	}
}

// PointPosition converts an index point back to a world position.
func PointPosition(p spatial.Point) components.Position {
	return components.Position{X: float32(p.X), Y: float32(p.Y)}
}

// Pair is an unordered pair of beast IDs with A < B.
type Pair struct {
	A, B uint32
}

// FindPairs returns every pair of entries within radius of each other,
// once each, sorted by A then B. entries must be the entries idx was
// built from.
func FindPairs(idx spatial.Index, entries []spatial.Entry, radius float64) []Pair {
	var pairs []Pair
	for _, e := range entries {
		for _, o := range idx.Within(e.Pos, radius) {
			if o.ID > e.ID {
				pairs = append(pairs, Pair{A: e.ID, B: o.ID})
			}
		}
	}
	slices.SortFunc(pairs, func(x, y Pair) int {
		if x.A != y.A {
			return cmpUint32(x.A, y.A)
		}
		return cmpUint32(x.B, y.B)
	})
	return pairs
}

func cmpUint32(a, b uint32) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
