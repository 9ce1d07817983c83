package tactics

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds matches every *OutOfBoundsError.
var ErrOutOfBounds = errors.New("coordinates out of bounds")

// OutOfBoundsError reports a coordinate outside the grid.
type OutOfBoundsError struct {
	X, Y          int
	Width, Height int
}

func (e *OutOfBoundsError) Error() string {
	return fmt.Sprintf("tile (%d,%d) outside %dx%d grid", e.X, e.Y, e.Width, e.Height)
}

// Is lets errors.Is(err, ErrOutOfBounds) match.
func (e *OutOfBoundsError) Is(target error) bool { return target == ErrOutOfBounds }

// Node is a graph vertex handle: the coordinates of one grid cell.
type Node struct {
	X, Y int
}

func (n Node) String() string { return fmt.Sprintf("(%d,%d)", n.X, n.Y) }

// Grid is the immutable terrain field of a mission plus its 4-connected
// neighbor graph. Safe for concurrent readers.
type Grid struct {
	width     int
	height    int
	catalog   Catalog
	tiles     []int     // row-major terrain index: y*width + x
	costs     []float64 // cached entry cost per cell
	neighbors [][]Node
}

// NewGrid builds a grid from row-major terrain indices into catalog.
func NewGrid(width, height int, catalog Catalog, tiles []int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d must be positive", width, height)
	}
	if len(tiles) != width*height {
		return nil, fmt.Errorf("grid %dx%d needs %d tiles, got %d", width, height, width*height, len(tiles))
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}

	g := &Grid{
		width:     width,
		height:    height,
		catalog:   append(Catalog(nil), catalog...),
		tiles:     append([]int(nil), tiles...),
		costs:     make([]float64, len(tiles)),
		neighbors: make([][]Node, len(tiles)),
	}
	for i, t := range g.tiles {
		if t < 0 || t >= len(catalog) {
			return nil, fmt.Errorf("tile (%d,%d): terrain index %d not in catalog of %d", i%width, i/width, t, len(catalog))
		}
		g.costs[i] = catalog[t].entryCost()
	}
	g.buildGraph()
	return g, nil
}

// NewUniformGrid builds a grid where every cell uses the same terrain index.
func NewUniformGrid(width, height int, catalog Catalog, terrain int) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("grid dimensions %dx%d must be positive", width, height)
	}
	tiles := make([]int, width*height)
	for i := range tiles {
		tiles[i] = terrain
	}
	return NewGrid(width, height, catalog, tiles)
}

// buildGraph links every cell to its in-bounds left, right, up and down cells.
func (g *Grid) buildGraph() {
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			nb := make([]Node, 0, 4)
			if x > 0 {
				nb = append(nb, Node{x - 1, y})
			}
			if x < g.width-1 {
				nb = append(nb, Node{x + 1, y})
			}
			if y > 0 {
				nb = append(nb, Node{x, y - 1})
			}
			if y < g.height-1 {
				nb = append(nb, Node{x, y + 1})
			}
			g.neighbors[y*g.width+x] = nb
		}
	}
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Catalog returns a copy of the terrain catalog.
func (g *Grid) Catalog() Catalog { return append(Catalog(nil), g.catalog...) }

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

func (g *Grid) check(x, y int) error {
	if !g.InBounds(x, y) {
		return &OutOfBoundsError{X: x, Y: y, Width: g.width, Height: g.height}
	}
	return nil
}

func (g *Grid) index(n Node) int { return n.Y*g.width + n.X }

func (g *Grid) nodeAt(i int) Node { return Node{i % g.width, i / g.width} }

// Node returns the handle for (x, y).
func (g *Grid) Node(x, y int) (Node, error) {
	if err := g.check(x, y); err != nil {
		return Node{}, err
	}
	return Node{x, y}, nil
}

// Nodes returns every node in row-major order.
func (g *Grid) Nodes() []Node {
	out := make([]Node, 0, len(g.tiles))
	for i := range g.tiles {
		out = append(out, g.nodeAt(i))
	}
	return out
}

// Neighbors returns the adjacent nodes of n. The slice is shared; do not modify it.
func (g *Grid) Neighbors(n Node) []Node {
	if !g.InBounds(n.X, n.Y) {
		return nil
	}
	return g.neighbors[g.index(n)]
}

// IsNeighbor reports whether a and b share an edge.
func (g *Grid) IsNeighbor(a, b Node) bool {
	for _, nb := range g.Neighbors(a) {
		if nb == b {
			return true
		}
	}
	return false
}

// TerrainIndex returns the catalog index of the terrain at (x, y).
func (g *Grid) TerrainIndex(x, y int) (int, error) {
	if err := g.check(x, y); err != nil {
		return 0, err
	}
	return g.tiles[y*g.width+x], nil
}

// Terrain returns the terrain type at (x, y).
func (g *Grid) Terrain(x, y int) (TerrainType, error) {
	i, err := g.TerrainIndex(x, y)
	if err != nil {
		return TerrainType{}, err
	}
	return g.catalog[i], nil
}

// IsEnterable reports whether a unit may step onto (x, y).
func (g *Grid) IsEnterable(x, y int) (bool, error) {
	t, err := g.Terrain(x, y)
	if err != nil {
		return false, err
	}
	return t.Walkable, nil
}

// CostToEnter returns the movement spent stepping onto (x, y), or Impassable.
func (g *Grid) CostToEnter(x, y int) (float64, error) {
	if err := g.check(x, y); err != nil {
		return Impassable, err
	}
	return g.costs[y*g.width+x], nil
}

// cost is the unchecked form used by the searches; n comes from the graph.
func (g *Grid) cost(n Node) float64 { return g.costs[g.index(n)] }

func (g *Grid) enterable(n Node) bool { return g.catalog[g.tiles[g.index(n)]].Walkable }
