package spatial

import (
	"fmt"
	"math"
	"slices"
	"strings"
)

// KDTree is a 2-d tree whose split axis alternates by depth, x first.
// Each node stores the median entry of its subtree as the pivot; entries
// sorted before it on the split axis go left, the rest go right.
type KDTree struct {
	root *kdNode
	size int
}

type kdNode struct {
	entry       Entry
	axis        int
	rect        Rect
	left, right *kdNode
}

// NewKDTree builds a k-d tree over entries. entries is not modified.
func NewKDTree(area Rect, entries []Entry) *KDTree {
	pts := slices.Clone(entries)
	return &KDTree{
		root: buildKD(pts, 0, bounds(area, pts)),
		size: len(pts),
	}
}

func buildKD(pts []Entry, axis int, rect Rect) *kdNode {
	if len(pts) == 0 {
		return nil
	}
	slices.SortStableFunc(pts, func(a, b Entry) int {
		return a.Pos.Axis(axis) - b.Pos.Axis(axis)
	})

	m := len(pts) / 2
	n := &kdNode{entry: pts[m], axis: axis, rect: rect}
	pivot := n.entry.Pos.Axis(axis)
	next := 1 - axis
	n.left = buildKD(pts[:m], next, rect.withMax(axis, pivot))
	n.right = buildKD(pts[m+1:], next, rect.withMin(axis, pivot))
	return n
}

// Len returns the number of entries in the tree.
func (t *KDTree) Len() int { return t.size }

// Nearest implements Index.
func (t *KDTree) Nearest(loc Point, exclude uint32) (Entry, float64, bool) {
	s := kdSearch{loc: loc, exclude: exclude, best: math.MaxInt64}
	s.visit(t.root)
	if !s.found {
		return noMatch()
	}
	return s.hit, math.Sqrt(float64(s.best)), true
}

type kdSearch struct {
	loc     Point
	exclude uint32
	hit     Entry
	best    int64
	found   bool
}

func (s *kdSearch) visit(n *kdNode) {
	if n == nil {
		return
	}

	delta := int64(s.loc.Axis(n.axis) - n.entry.Pos.Axis(n.axis))
	near, far := n.left, n.right
	if delta >= 0 {
		near, far = n.right, n.left
	}

	s.visit(near)

	self := n.entry.ID == s.exclude && s.exclude != 0
	if !self {
		if d := s.loc.DistSq(n.entry.Pos); d < s.best {
			s.best, s.hit, s.found = d, n.entry, true
		}
	}

	// The far side can only hold something closer if the split plane is.
	// Skipping the excluded pivot's far side on plane distance alone can
	// miss the true neighbour, so that node always searches both.
	if self || delta*delta < s.best {
		s.visit(far)
	}
}

// Within implements Index.
func (t *KDTree) Within(loc Point, radius float64) []Entry {
	limit, ok := radiusSq(radius)
	if !ok {
		return nil
	}
	var out []Entry
	box := queryBox(loc, radius)
	var walk func(n *kdNode)
	walk = func(n *kdNode) {
		if n == nil || !n.rect.Intersects(box) {
			return
		}
		if loc.DistSq(n.entry.Pos) <= limit {
			out = append(out, n.entry)
		}
		walk(n.left)
		walk(n.right)
	}
	walk(t.root)
	return out
}

// String renders the tree one node per line, indented by depth.
func (t *KDTree) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "kdtree: %d entries\n", t.size)
	var dump func(n *kdNode, depth int, side string)
	dump = func(n *kdNode, depth int, side string) {
		if n == nil {
			return
		}
		axis := "x"
		if n.axis == 1 {
			axis = "y"
		}
		fmt.Fprintf(&sb, "%s%s#%d %s split=%s %s\n",
			strings.Repeat("  ", depth), side, n.entry.ID, n.entry.Pos, axis, n.rect)
		dump(n.left, depth+1, "L ")
		dump(n.right, depth+1, "R ")
	}
	dump(t.root, 0, "")
	return sb.String()
}
