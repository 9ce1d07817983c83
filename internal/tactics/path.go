package tactics

import "strings"

// Path is an ordered walk of adjacent nodes. Element 0 is the tile the unit
// stands on, the last element is the destination.
type Path []Node

// Source returns the first node. The path must not be empty.
func (p Path) Source() Node { return p[0] }

// Last returns the final node. The path must not be empty.
func (p Path) Last() Node { return p[len(p)-1] }

// Edges is the number of steps in the path.
func (p Path) Edges() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

// Index returns the position of the first occurrence of n, or -1.
func (p Path) Index(n Node) int {
	for i, pn := range p {
		if pn == n {
			return i
		}
	}
	return -1
}

// Cost sums the entry cost of every node but the first.
func (p Path) Cost(g *Grid) float64 {
	total := 0.0
	for i := 1; i < len(p); i++ {
		total += g.cost(p[i])
	}
	return total
}

// Valid reports whether p is non-empty, stays on g and only moves between neighbors.
func (p Path) Valid(g *Grid) bool {
	if len(p) == 0 {
		return false
	}
	for i, n := range p {
		if !g.InBounds(n.X, n.Y) {
			return false
		}
		if i > 0 && !g.IsNeighbor(p[i-1], n) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (p Path) Clone() Path {
	if p == nil {
		return nil
	}
	return append(Path(nil), p...)
}

func (p Path) String() string {
	parts := make([]string, len(p))
	for i, n := range p {
		parts[i] = n.String()
	}
	return strings.Join(parts, "→")
}
