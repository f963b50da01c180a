package spatial

import (
	"fmt"
	"math"
)

// Entry is an indexed position with an opaque handle. Handle 0 is never
// assigned to a beast and means "exclude nothing" in Nearest.
type Entry struct {
	Pos Point
	ID  uint32
}

// Index answers proximity queries over a fixed set of entries.
type Index interface {
	// Len returns the number of indexed entries.
	Len() int
	// Nearest returns the entry closest to loc whose ID is not exclude,
	// and its Euclidean distance. ok is false, with distance +Inf, when
	// no such entry exists.
	Nearest(loc Point, exclude uint32) (e Entry, dist float64, ok bool)
	// Within returns every entry at Euclidean distance <= radius from loc,
	// including an entry located at loc itself.
	Within(loc Point, radius float64) []Entry
	String() string
}

// Kind selects an index implementation.
type Kind string

const (
	KindKDTree   Kind = "kdtree"
	KindQuadTree Kind = "quadtree"
)

// ParseKind validates an index kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindKDTree, KindQuadTree:
		return k, nil
	default:
		return "", fmt.Errorf("unknown index kind %q (want %s or %s)", s, KindKDTree, KindQuadTree)
	}
}

// Build constructs an index of the given kind over entries. area is the
// nominal world rectangle; it is grown to cover any entry outside it.
// entries is copied.
func Build(kind Kind, area Rect, entries []Entry) Index {
	switch kind {
	case KindKDTree:
		return NewKDTree(area, entries)
	case KindQuadTree:
		return NewQuadTree(area, entries)
	default:
		panic(fmt.Sprintf("spatial: unknown index kind %q", kind))
	}
}

func bounds(area Rect, entries []Entry) Rect {
	for _, e := range entries {
		area = area.Extend(e.Pos)
	}
	return area
}

func noMatch() (Entry, float64, bool) {
	return Entry{}, math.Inf(1), false
}

// radiusSq converts a query radius to a squared integer bound. Negative or
// NaN radii match nothing.
func radiusSq(radius float64) (int64, bool) {
	if !(radius >= 0) {
		return 0, false
	}
	if radius > math.MaxInt32 {
		return math.MaxInt64, true
	}
	return int64(math.Floor(radius * radius)), true
}

// queryBox is the bounding square of a radius query.
func queryBox(loc Point, radius float64) Rect {
	r := math.MaxInt32
	if radius < math.MaxInt32 {
		r = int(math.Ceil(radius))
	}
	return RectAround(loc, r)
}
