package tactics

import (
	"fmt"
	"log/slog"
)

// TestMission is a headless mission harness for tests and the report tool.
// It mirrors what the window does with pointer events but has no rendering
// dependency.
type TestMission struct {
	*Mission

	width   int
	height  int
	catalog Catalog
	tiles   []int
	units   []*Unit
	logger  *slog.Logger
}

// missionOptionKind controls the pass in which an option is applied.
type missionOptionKind int

const (
	missionOptInfra   missionOptionKind = iota // size, catalog and logger; applied first
	missionOptTerrain                          // paint tiles once the tile slice exists
	missionOptUnit                             // add units after terrain
)

// MissionOption is a builder function applied to a TestMission during construction.
type MissionOption struct {
	kind missionOptionKind
	fn   func(*TestMission)
}

// WithGridSize sets the board dimensions in tiles.
func WithGridSize(w, h int) MissionOption {
	return MissionOption{missionOptInfra, func(tm *TestMission) {
		tm.width = w
		tm.height = h
	}}
}

// WithCatalog replaces the default terrain catalog.
func WithCatalog(c Catalog) MissionOption {
	return MissionOption{missionOptInfra, func(tm *TestMission) {
		tm.catalog = c
	}}
}

// WithLogger routes turn events to logger.
func WithLogger(logger *slog.Logger) MissionOption {
	return MissionOption{missionOptInfra, func(tm *TestMission) {
		tm.logger = logger
	}}
}

// WithPracticeTerrain paints the practice map (swamp block and mountain U).
func WithPracticeTerrain() MissionOption {
	return MissionOption{missionOptTerrain, func(tm *TestMission) {
		copy(tm.tiles, PracticeTiles(tm.width, tm.height))
	}}
}

// WithTerrainRect paints terrain t over the inclusive rectangle (x0,y0)-(x1,y1).
func WithTerrainRect(x0, y0, x1, y1, t int) MissionOption {
	return MissionOption{missionOptTerrain, func(tm *TestMission) {
		for y := max(0, y0); y <= min(tm.height-1, y1); y++ {
			for x := max(0, x0); x <= min(tm.width-1, x1); x++ {
				tm.tiles[y*tm.width+x] = t
			}
		}
	}}
}

// WithTerrainAt paints terrain t on the listed tiles.
func WithTerrainAt(t int, nodes ...Node) MissionOption {
	return MissionOption{missionOptTerrain, func(tm *TestMission) {
		for _, n := range nodes {
			if n.X >= 0 && n.X < tm.width && n.Y >= 0 && n.Y < tm.height {
				tm.tiles[n.Y*tm.width+n.X] = t
			}
		}
	}}
}

// WithAlly adds a player-controlled unit.
func WithAlly(name string, x, y int, movement float64) MissionOption {
	return MissionOption{missionOptUnit, func(tm *TestMission) {
		tm.units = append(tm.units, &Unit{Name: name, Team: TeamAlly, X: x, Y: y, Movement: movement})
	}}
}

// WithEnemy adds an opposing unit. Enemies only block tiles.
func WithEnemy(name string, x, y int, movement float64) MissionOption {
	return MissionOption{missionOptUnit, func(tm *TestMission) {
		tm.units = append(tm.units, &Unit{Name: name, Team: TeamEnemy, X: x, Y: y, Movement: movement})
	}}
}

// NewTestMission builds a mission from the given options in ordered passes:
//  1. Infrastructure (size, catalog, logger)
//  2. Terrain painting
//  3. Units
//  4. Grid, roster and turn manager
func NewTestMission(opts ...MissionOption) (*TestMission, error) {
	tm := &TestMission{
		width:   10,
		height:  10,
		catalog: DefaultCatalog(),
	}
	for _, o := range opts {
		if o.kind == missionOptInfra {
			o.fn(tm)
		}
	}
	if tm.width <= 0 || tm.height <= 0 {
		return nil, fmt.Errorf("test mission: grid %dx%d must be positive", tm.width, tm.height)
	}
	tm.tiles = make([]int, tm.width*tm.height)
	for _, o := range opts {
		if o.kind == missionOptTerrain {
			o.fn(tm)
		}
	}
	for _, o := range opts {
		if o.kind == missionOptUnit {
			o.fn(tm)
		}
	}

	g, err := NewGrid(tm.width, tm.height, tm.catalog, tm.tiles)
	if err != nil {
		return nil, fmt.Errorf("test mission: %w", err)
	}
	m, err := NewMission("test", g, tm.units, tm.logger)
	if err != nil {
		return nil, fmt.Errorf("test mission: %w", err)
	}
	tm.Mission = m
	return tm, nil
}

// Unit returns the unit called name, or nil.
func (tm *TestMission) Unit(name string) *Unit {
	return tm.Roster.ByName(name)
}

// SelectUnit selects the named unit as if it had been clicked.
func (tm *TestMission) SelectUnit(name string) error {
	u := tm.Unit(name)
	if u == nil {
		return fmt.Errorf("test mission: no unit %q", name)
	}
	return tm.Turns.Click(u.X, u.Y)
}

// Trace hovers each node in order and returns the change each hover caused.
func (tm *TestMission) Trace(nodes ...Node) ([]Change, error) {
	changes := make([]Change, 0, len(nodes))
	for _, n := range nodes {
		c, err := tm.Turns.Hover(n.X, n.Y)
		if err != nil {
			return changes, err
		}
		changes = append(changes, c)
	}
	return changes, nil
}
