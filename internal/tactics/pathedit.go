package tactics

// Change describes what a hover did to the path being edited.
type Change uint8

const (
	ChangeIgnored     Change = iota // tile outside range, unenterable or path over budget
	ChangeNone                      // tile already ends the path
	ChangeAppended                  // tile added to the end of the trace
	ChangeBacktracked               // trace retracted to the tile, then re-extended
	ChangeRerouted                  // trace replaced by the optimal path to the tile
)

func (c Change) String() string {
	switch c {
	case ChangeIgnored:
		return "ignored"
	case ChangeNone:
		return "none"
	case ChangeAppended:
		return "appended"
	case ChangeBacktracked:
		return "backtracked"
	case ChangeRerouted:
		return "rerouted"
	default:
		return "unknown"
	}
}

// PathBuilder lets a player trace a unit's path tile by tile. Manual edits are
// kept while they stay adjacent and affordable; anything else falls back to
// the cheapest path. One builder serves one selected unit and must not be
// driven from more than one goroutine.
type PathBuilder struct {
	pf     *Pathfinder
	source Node
	budget float64
	reach  *ReachableSet
	path   Path // nil until the first hover
}

// NewPathBuilder starts an empty trace for a unit standing on source with the
// given movement budget and precomputed reachable set.
func NewPathBuilder(pf *Pathfinder, source Node, budget float64, reach *ReachableSet) *PathBuilder {
	return &PathBuilder{pf: pf, source: source, budget: budget, reach: reach}
}

func (b *PathBuilder) Source() Node    { return b.source }
func (b *PathBuilder) Budget() float64 { return b.budget }

// Path returns a copy of the current trace, or nil if nothing was traced yet.
func (b *PathBuilder) Path() Path { return b.path.Clone() }

// Cost returns the movement the current trace would spend.
func (b *PathBuilder) Cost() float64 { return b.path.Cost(b.pf.grid) }

// Reset discards the trace.
func (b *PathBuilder) Reset() { b.path = nil }

// Hover feeds the tile under the pointer. Tiles that fail the range, terrain
// or budget gate are ignored without touching the trace. The only error is an
// *OutOfBoundsError for coordinates off the grid.
func (b *PathBuilder) Hover(x, y int) (Change, error) {
	g := b.pf.grid
	if err := g.check(x, y); err != nil {
		return ChangeIgnored, err
	}
	if b.path == nil {
		b.path = Path{b.source}
	}

	t := Node{x, y}
	if !b.reach.Contains(t) || !g.enterable(t) || float64(b.path.Edges()) > b.budget {
		return ChangeIgnored, nil
	}

	last := b.path.Last()
	if t == last {
		return ChangeNone, nil
	}
	// Pointer left the range and came back somewhere else.
	if !g.IsNeighbor(last, t) {
		return b.reroute(t), nil
	}

	// Walking back over the trace retracts it.
	trace, change := b.path, ChangeAppended
	if i := trace.Index(t); i >= 0 {
		trace, change = trace[:i], ChangeBacktracked
	}

	if float64(len(trace)-1) > b.budget || trace.Cost(g)+g.cost(t) > b.budget {
		return b.reroute(t), nil
	}
	b.path = append(trace, t)
	return change, nil
}

// reroute replaces the trace with the cheapest path from the source to t.
func (b *PathBuilder) reroute(t Node) Change {
	p, err := b.pf.ShortestPath(b.source, t)
	if err != nil {
		return ChangeIgnored
	}
	b.path = p
	return ChangeRerouted
}
