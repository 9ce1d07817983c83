package tactics

import (
	"errors"
	"fmt"
	"math"
)

// Impassable is the entry cost of a tile no unit can enter. It is larger than
// any finite sum of real costs and is only meant for comparisons.
var Impassable = math.Inf(1)

// ErrInvalidCatalog is returned when a terrain catalog cannot back a grid.
var ErrInvalidCatalog = errors.New("invalid terrain catalog")

// Terrain indices of DefaultCatalog.
const (
	TerrainGrass    = 0
	TerrainSwamp    = 1
	TerrainMountain = 2
)

// TerrainType describes what it takes to enter a tile.
type TerrainType struct {
	Name         string
	Walkable     bool
	MovementCost float64
	Colour       [3]uint8 // presentation only
}

// Catalog is the ordered list of terrain types a grid indexes into.
type Catalog []TerrainType

// DefaultCatalog returns the practice catalog: grass, swamp (triple cost) and
// impassable mountain.
func DefaultCatalog() Catalog {
	return Catalog{
		TerrainGrass:    {Name: "grass", Walkable: true, MovementCost: 1, Colour: [3]uint8{58, 120, 52}},
		TerrainSwamp:    {Name: "swamp", Walkable: true, MovementCost: 3, Colour: [3]uint8{62, 84, 60}},
		TerrainMountain: {Name: "mountain", Walkable: false, Colour: [3]uint8{110, 104, 98}},
	}
}

// Validate checks that every walkable entry has a finite positive cost.
func (c Catalog) Validate() error {
	if len(c) == 0 {
		return fmt.Errorf("%w: no terrain types", ErrInvalidCatalog)
	}
	for i, t := range c {
		if !t.Walkable {
			continue
		}
		if !(t.MovementCost > 0) || math.IsInf(t.MovementCost, 0) {
			return fmt.Errorf("%w: terrain %d (%s) has movement cost %v", ErrInvalidCatalog, i, t.Name, t.MovementCost)
		}
	}
	return nil
}

// entryCost returns the cost of entering a tile of this type.
func (t TerrainType) entryCost() float64 {
	if !t.Walkable {
		return Impassable
	}
	return t.MovementCost
}
