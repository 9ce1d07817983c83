package tactics

import (
	"fmt"
	"log/slog"
)

// Mission bundles a grid, the units on it and the turn manager driving them.
type Mission struct {
	Name   string
	Grid   *Grid
	Roster *Roster
	Turns  *TurnManager
}

// NewMission places units on g and wires a turn manager. Units must stand on
// distinct in-bounds tiles.
func NewMission(name string, g *Grid, units []*Unit, logger *slog.Logger) (*Mission, error) {
	roster := NewRoster()
	for _, u := range units {
		if !g.InBounds(u.X, u.Y) {
			return nil, fmt.Errorf("unit %s: %w", u.Name, &OutOfBoundsError{X: u.X, Y: u.Y, Width: g.Width(), Height: g.Height()})
		}
		if err := roster.Add(u); err != nil {
			return nil, err
		}
	}
	return &Mission{
		Name:   name,
		Grid:   g,
		Roster: roster,
		Turns:  NewTurnManager(g, roster, logger),
	}, nil
}

// PracticeTiles lays out the practice map on a width×height grid: grass, a
// swamp block over x 3..5, y 0..3 and a U-shaped mountain range along row 4
// whose arms run toward higher y. The grid must be at least 9×7.
func PracticeTiles(width, height int) []int {
	tiles := make([]int, width*height)
	set := func(x, y, t int) {
		if x >= 0 && x < width && y >= 0 && y < height {
			tiles[y*width+x] = t
		}
	}
	for x := 3; x <= 5; x++ {
		for y := 0; y < 4; y++ {
			set(x, y, TerrainSwamp)
		}
	}
	for x := 4; x <= 8; x++ {
		set(x, 4, TerrainMountain)
	}
	set(4, 5, TerrainMountain)
	set(4, 6, TerrainMountain)
	set(8, 5, TerrainMountain)
	set(8, 6, TerrainMountain)
	return tiles
}
