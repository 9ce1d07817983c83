package tactics

import (
	"container/heap"
	"errors"
	"math"
)

// ErrNoPath is returned when the target cannot be entered or reached.
var ErrNoPath = errors.New("no path to target")

// Pathfinder runs single-source Dijkstra searches over a grid. Entering a
// node costs that node's terrain cost; the source itself is free. A
// Pathfinder holds no per-search state and may be shared.
type Pathfinder struct {
	grid *Grid
}

// NewPathfinder returns a pathfinder over g.
func NewPathfinder(g *Grid) *Pathfinder {
	return &Pathfinder{grid: g}
}

// Grid returns the grid searched by pf.
func (pf *Pathfinder) Grid() *Grid { return pf.grid }

// Result is the outcome of a point-to-point search.
type Result struct {
	Path     Path
	Cost     float64
	Expanded int // nodes popped from the frontier
}

// --- Dijkstra frontier ---

type frontierItem struct {
	index int
	dist  float64
}

// frontier orders by distance, then by row-major index so equal-distance
// ties resolve the same way on every run.
type frontier []frontierItem

func (f frontier) Len() int { return len(f) }
func (f frontier) Less(i, j int) bool {
	if f[i].dist != f[j].dist {
		return f[i].dist < f[j].dist
	}
	return f[i].index < f[j].index
}
func (f frontier) Swap(i, j int) { f[i], f[j] = f[j], f[i] }
func (f *frontier) Push(x any)   { *f = append(*f, x.(frontierItem)) }
func (f *frontier) Pop() any     { old := *f; it := old[len(old)-1]; *f = old[:len(old)-1]; return it }

type search struct {
	dist     []float64
	prev     []int
	expanded int
}

// run relaxes outward from src. It stops once target is settled, or when the
// frontier drains if target < 0.
func (pf *Pathfinder) run(src Node, target int) search {
	g := pf.grid
	n := len(g.tiles)
	s := search{dist: make([]float64, n), prev: make([]int, n)}
	for i := range s.dist {
		s.dist[i] = math.Inf(1)
		s.prev[i] = -1
	}
	visited := make([]bool, n)

	start := g.index(src)
	s.dist[start] = 0
	open := &frontier{{index: start}}

	for open.Len() > 0 {
		cur := heap.Pop(open).(frontierItem)
		if visited[cur.index] {
			continue
		}
		visited[cur.index] = true
		s.expanded++
		if cur.index == target {
			break
		}
		for _, v := range g.neighbors[cur.index] {
			vi := g.index(v)
			if visited[vi] {
				continue
			}
			alt := s.dist[cur.index] + g.costs[vi]
			if alt < s.dist[vi] {
				s.dist[vi] = alt
				s.prev[vi] = cur.index
				heap.Push(open, frontierItem{index: vi, dist: alt})
			}
		}
	}
	return s
}

// Search finds the cheapest path from source to target.
func (pf *Pathfinder) Search(source, target Node) (Result, error) {
	g := pf.grid
	if err := g.check(source.X, source.Y); err != nil {
		return Result{}, err
	}
	if err := g.check(target.X, target.Y); err != nil {
		return Result{}, err
	}
	if !g.enterable(target) {
		return Result{}, ErrNoPath
	}

	ti := g.index(target)
	s := pf.run(source, ti)
	if math.IsInf(s.dist[ti], 1) {
		return Result{Expanded: s.expanded}, ErrNoPath
	}
	return Result{
		Path:     buildPath(g, s.prev, ti),
		Cost:     s.dist[ti],
		Expanded: s.expanded,
	}, nil
}

// ShortestPath returns the cheapest path from source to target, or ErrNoPath
// when target is unenterable or lies in another connected component.
func (pf *Pathfinder) ShortestPath(source, target Node) (Path, error) {
	r, err := pf.Search(source, target)
	if err != nil {
		return nil, err
	}
	return r.Path, nil
}

// Reachable returns every node whose cheapest entry cost from source is
// within budget. The source is a member whenever budget >= 0.
func (pf *Pathfinder) Reachable(source Node, budget float64) (*ReachableSet, error) {
	g := pf.grid
	if err := g.check(source.X, source.Y); err != nil {
		return nil, err
	}
	s := pf.run(source, -1)
	rs := &ReachableSet{
		source: source,
		budget: budget,
		width:  g.width,
		dist:   make(map[Node]float64),
	}
	for i, d := range s.dist {
		if d >= 0 && d <= budget {
			rs.dist[g.nodeAt(i)] = d
		}
	}
	return rs, nil
}

// Distances returns the cheapest entry cost from source to every reachable node.
func (pf *Pathfinder) Distances(source Node) (map[Node]float64, error) {
	g := pf.grid
	if err := g.check(source.X, source.Y); err != nil {
		return nil, err
	}
	s := pf.run(source, -1)
	out := make(map[Node]float64)
	for i, d := range s.dist {
		if !math.IsInf(d, 1) {
			out[g.nodeAt(i)] = d
		}
	}
	return out, nil
}

func buildPath(g *Grid, prev []int, end int) Path {
	var p Path
	for i := end; i >= 0; i = prev[i] {
		p = append(p, g.nodeAt(i))
	}
	// Reverse
	for i, j := 0, len(p)-1; i < j; i, j = i+1, j-1 {
		p[i], p[j] = p[j], p[i]
	}
	return p
}
