// Package spatial indexes beast positions for nearest-neighbour and range
// queries. An index is built once per tick from a snapshot of positions and
// is read-only afterwards.
package spatial

import "fmt"

// Point is an integer position on the world plane.
type Point struct {
	X, Y int
}

// Axis returns the coordinate on axis 0 (x) or 1 (y).
func (p Point) Axis(axis int) int {
	if axis == 0 {
		return p.X
	}
	return p.Y
}

// DistSq returns the squared Euclidean distance between p and q.
func (p Point) DistSq(q Point) int64 {
	dx := int64(p.X - q.X)
	dy := int64(p.Y - q.Y)
	return dx*dx + dy*dy
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Rect is an axis-aligned rectangle. Both corners are inclusive.
type Rect struct {
	Min, Max Point
}

// RectAround returns the square of half-width r centred on p.
func RectAround(p Point, r int) Rect {
	return Rect{
		Min: Point{p.X - r, p.Y - r},
		Max: Point{p.X + r, p.Y + r},
	}
}

// Contains reports whether p lies inside r.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X && p.Y >= r.Min.Y && p.Y <= r.Max.Y
}

// Intersects reports whether r and o share at least one point.
func (r Rect) Intersects(o Rect) bool {
	return r.Min.X <= o.Max.X && o.Min.X <= r.Max.X &&
		r.Min.Y <= o.Max.Y && o.Min.Y <= r.Max.Y
}

// Extend returns the smallest rectangle covering r and p.
func (r Rect) Extend(p Point) Rect {
	r.Min.X = min(r.Min.X, p.X)
	r.Min.Y = min(r.Min.Y, p.Y)
	r.Max.X = max(r.Max.X, p.X)
	r.Max.Y = max(r.Max.Y, p.Y)
	return r
}

// DistSq returns the squared distance from p to the closest point of r,
// zero if p is inside.
func (r Rect) DistSq(p Point) int64 {
	var dx, dy int64
	switch {
	case p.X < r.Min.X:
		dx = int64(r.Min.X - p.X)
	case p.X > r.Max.X:
		dx = int64(p.X - r.Max.X)
	}
	switch {
	case p.Y < r.Min.Y:
		dy = int64(r.Min.Y - p.Y)
	case p.Y > r.Max.Y:
		dy = int64(p.Y - r.Max.Y)
	}
	return dx*dx + dy*dy
}

// withMax returns r with its upper bound on axis replaced by v.
func (r Rect) withMax(axis, v int) Rect {
	if axis == 0 {
		r.Max.X = v
	} else {
		r.Max.Y = v
	}
	return r
}

func (r Rect) withMin(axis, v int) Rect {
	if axis == 0 {
		r.Min.X = v
	} else {
		r.Min.Y = v
	}
	return r
}

func (r Rect) String() string {
	return fmt.Sprintf("[%s-%s]", r.Min, r.Max)
}
