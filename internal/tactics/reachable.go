package tactics

import (
	"cmp"
	"slices"
)

// ReachableSet holds every node a unit can afford to enter from its source
// within a movement budget. It is rebuilt, never updated.
type ReachableSet struct {
	source Node
	budget float64
	width  int
	dist   map[Node]float64
}

func (r *ReachableSet) Source() Node    { return r.source }
func (r *ReachableSet) Budget() float64 { return r.budget }
func (r *ReachableSet) Len() int        { return len(r.dist) }

// Contains reports whether n is affordable. A nil set contains nothing.
func (r *ReachableSet) Contains(n Node) bool {
	if r == nil {
		return false
	}
	_, ok := r.dist[n]
	return ok
}

// Cost returns the cheapest entry cost from the source to n.
func (r *ReachableSet) Cost(n Node) (float64, bool) {
	if r == nil {
		return 0, false
	}
	d, ok := r.dist[n]
	return d, ok
}

// Nodes returns the members in row-major order.
func (r *ReachableSet) Nodes() []Node {
	if r == nil {
		return nil
	}
	out := make([]Node, 0, len(r.dist))
	for n := range r.dist {
		out = append(out, n)
	}
	slices.SortFunc(out, func(a, b Node) int {
		return cmp.Compare(a.Y*r.width+a.X, b.Y*r.width+b.X)
	})
	return out
}
