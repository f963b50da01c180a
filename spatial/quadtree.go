package spatial

import (
	"fmt"
	"math"
	"strings"
)

const (
	// QuadCapacity is the number of entries a leaf holds before it splits.
	QuadCapacity = 4
	// QuadMaxDepth stops splitting; leaves at this depth grow without bound.
	QuadMaxDepth = 10
)

// QuadTree is a region quadtree. Each internal node splits its rectangle
// at the integer midpoint into four quadrants.
type QuadTree struct {
	root *quadNode
	size int
}

type quadNode struct {
	rect     Rect
	depth    int
	entries  []Entry
	children *[4]*quadNode
}

// NewQuadTree builds a quadtree over entries. entries is not modified.
func NewQuadTree(area Rect, entries []Entry) *QuadTree {
	t := &QuadTree{root: &quadNode{rect: bounds(area, entries)}}
	for _, e := range entries {
		t.root.insert(e)
	}
	t.size = len(entries)
	return t
}

func (n *quadNode) insert(e Entry) {
	if n.children == nil {
		if len(n.entries) < QuadCapacity || n.depth >= QuadMaxDepth || n.unsplittable() {
			n.entries = append(n.entries, e)
			return
		}
		n.split()
	}
	n.children[n.quadrant(e.Pos)].insert(e)
}

func (n *quadNode) unsplittable() bool {
	return n.rect.Min == n.rect.Max
}

func (n *quadNode) mid() Point {
	// Floor division keeps negative coordinates on the correct side.
	return Point{
		X: floorHalf(n.rect.Min.X + n.rect.Max.X),
		Y: floorHalf(n.rect.Min.Y + n.rect.Max.Y),
	}
}

func floorHalf(v int) int {
	if v < 0 {
		return -((-v + 1) / 2)
	}
	return v / 2
}

// quadrant returns 0 (west-north), 1 (east-north), 2 (west-south) or
// 3 (east-south). West and north include the midpoint.
func (n *quadNode) quadrant(p Point) int {
	m := n.mid()
	q := 0
	if p.X > m.X {
		q |= 1
	}
	if p.Y > m.Y {
		q |= 2
	}
	return q
}

func (n *quadNode) split() {
	m := n.mid()
	r := n.rect
	n.children = &[4]*quadNode{
		{rect: Rect{Min: r.Min, Max: m}},
		{rect: Rect{Min: Point{m.X + 1, r.Min.Y}, Max: Point{r.Max.X, m.Y}}},
		{rect: Rect{Min: Point{r.Min.X, m.Y + 1}, Max: Point{m.X, r.Max.Y}}},
		{rect: Rect{Min: Point{m.X + 1, m.Y + 1}, Max: r.Max}},
	}
	for _, c := range n.children {
		c.depth = n.depth + 1
	}
	old := n.entries
	n.entries = nil
	for _, e := range old {
		n.children[n.quadrant(e.Pos)].insert(e)
	}
}

// Len returns the number of entries in the tree.
func (t *QuadTree) Len() int { return t.size }

// Nearest implements Index.
func (t *QuadTree) Nearest(loc Point, exclude uint32) (Entry, float64, bool) {
	var (
		hit   Entry
		best  int64 = math.MaxInt64
		found bool
	)
	var visit func(n *quadNode)
	visit = func(n *quadNode) {
		if n.rect.DistSq(loc) >= best {
			return
		}
		for _, e := range n.entries {
			if e.ID == exclude && exclude != 0 {
				continue
			}
			if d := loc.DistSq(e.Pos); d < best {
				hit, best, found = e, d, true
			}
		}
		if n.children == nil {
			return
		}
		// Start with the quadrant holding loc, then the rest in order.
		first := n.quadrant(loc)
		visit(n.children[first])
		for i, c := range n.children {
			if i != first {
				visit(c)
			}
		}
	}
	visit(t.root)
	if !found {
		return noMatch()
	}
	return hit, math.Sqrt(float64(best)), true
}

// Within implements Index.
func (t *QuadTree) Within(loc Point, radius float64) []Entry {
	limit, ok := radiusSq(radius)
	if !ok {
		return nil
	}
	var out []Entry
	box := queryBox(loc, radius)
	var walk func(n *quadNode)
	walk = func(n *quadNode) {
		if !n.rect.Intersects(box) {
			return
		}
		for _, e := range n.entries {
			if loc.DistSq(e.Pos) <= limit {
				out = append(out, e)
			}
		}
		if n.children != nil {
			for _, c := range n.children {
				walk(c)
			}
		}
	}
	walk(t.root)
	return out
}

// String renders the tree one node per line, indented by depth.
func (t *QuadTree) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "quadtree: %d entries\n", t.size)
	var dump func(n *quadNode)
	dump = func(n *quadNode) {
		indent := strings.Repeat("  ", n.depth)
		fmt.Fprintf(&sb, "%s%s", indent, n.rect)
		for _, e := range n.entries {
			fmt.Fprintf(&sb, " #%d%s", e.ID, e.Pos)
		}
		sb.WriteByte('\n')
		if n.children != nil {
			for _, c := range n.children {
				dump(c)
			}
		}
	}
	dump(t.root)
	return sb.String()
}
