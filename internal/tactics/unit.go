package tactics

import (
	"errors"
	"fmt"
)

// ErrTileOccupied is returned when a unit would share a tile with another.
var ErrTileOccupied = errors.New("tile already occupied")

// Team identifies which side a unit fights for.
type Team uint8

const (
	TeamAlly Team = iota
	TeamEnemy
)

func (t Team) String() string {
	if t == TeamAlly {
		return "ally"
	}
	return "enemy"
}

// Unit is a piece on the board. The turn layer owns it; the pathfinding core
// only reads its position and budget and replaces Path and Reachable wholesale.
type Unit struct {
	Name      string
	Team      Team
	X, Y      int
	Movement  float64 // movement budget per move action
	Path      Path
	Reachable *ReachableSet
	TurnTaken bool
	HasMoved  bool
}

// Tile returns the node the unit stands on.
func (u *Unit) Tile() Node { return Node{u.X, u.Y} }

// Ready reports whether the unit can still act this round.
func (u *Unit) Ready() bool { return !u.TurnTaken }

// clearPlan drops the path and reachable set.
func (u *Unit) clearPlan() {
	u.Path = nil
	u.Reachable = nil
}

// Roster indexes units by the tile they occupy.
type Roster struct {
	units []*Unit
	byPos map[Node]*Unit
}

// NewRoster returns an empty roster.
func NewRoster() *Roster {
	return &Roster{byPos: make(map[Node]*Unit)}
}

// Add places u on its tile.
func (r *Roster) Add(u *Unit) error {
	if other, ok := r.byPos[u.Tile()]; ok {
		return fmt.Errorf("%w: %s at %s holds %s", ErrTileOccupied, other.Name, u.Tile(), u.Name)
	}
	r.units = append(r.units, u)
	r.byPos[u.Tile()] = u
	return nil
}

// UnitAt returns the unit on n, or nil.
func (r *Roster) UnitAt(n Node) *Unit { return r.byPos[n] }

// Occupied reports whether any unit stands on n.
func (r *Roster) Occupied(n Node) bool {
	_, ok := r.byPos[n]
	return ok
}

// Move relocates u to n and keeps the index in sync.
func (r *Roster) Move(u *Unit, n Node) error {
	if other, ok := r.byPos[n]; ok && other != u {
		return fmt.Errorf("%w: %s at %s", ErrTileOccupied, other.Name, n)
	}
	delete(r.byPos, u.Tile())
	u.X, u.Y = n.X, n.Y
	r.byPos[n] = u
	return nil
}

// Units returns every unit in insertion order.
func (r *Roster) Units() []*Unit { return r.units }

// Team returns the units fighting for t.
func (r *Roster) Team(t Team) []*Unit {
	var out []*Unit
	for _, u := range r.units {
		if u.Team == t {
			out = append(out, u)
		}
	}
	return out
}

// Allies returns the player-controlled units.
func (r *Roster) Allies() []*Unit { return r.Team(TeamAlly) }

// Enemies returns the opposing units.
func (r *Roster) Enemies() []*Unit { return r.Team(TeamEnemy) }

// ByName returns the first unit called name, or nil.
func (r *Roster) ByName(name string) *Unit {
	for _, u := range r.units {
		if u.Name == name {
			return u
		}
	}
	return nil
}
