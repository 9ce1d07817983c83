package tactics

import (
	"errors"
	"fmt"
	"log/slog"
)

// ErrNoSelection is returned by actions that need a selected unit.
var ErrNoSelection = errors.New("no unit selected")

// TurnManager is the turn and selection collaborator around the pathfinding
// core. It is driven by explicit pointer events: Hover for the tile under the
// pointer, Click to select or commit, Cancel to deselect, EndUnitTurn to finish
// a unit. Not safe for concurrent use.
type TurnManager struct {
	grid   *Grid
	pf     *Pathfinder
	roster *Roster
	log    *EventLog
	logger *slog.Logger

	round    int
	selected *Unit
	builder  *PathBuilder
	preview  *Unit // ready ally whose range is shown while nothing is selected

	hovered    Node
	hoverValid bool
}

// NewTurnManager wires a roster onto a grid. A nil logger discards output.
func NewTurnManager(g *Grid, roster *Roster, logger *slog.Logger) *TurnManager {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &TurnManager{
		grid:   g,
		pf:     NewPathfinder(g),
		roster: roster,
		log:    NewEventLog(),
		logger: logger,
		round:  1,
	}
}

func (tm *TurnManager) Grid() *Grid             { return tm.grid }
func (tm *TurnManager) Pathfinder() *Pathfinder { return tm.pf }
func (tm *TurnManager) Roster() *Roster         { return tm.roster }
func (tm *TurnManager) Log() *EventLog          { return tm.log }
func (tm *TurnManager) Round() int              { return tm.round }
func (tm *TurnManager) Selected() *Unit         { return tm.selected }

// Hovered returns the last tile passed to Hover.
func (tm *TurnManager) Hovered() (Node, bool) { return tm.hovered, tm.hoverValid }

// ClearHover forgets the hovered tile, e.g. when the pointer leaves the board.
func (tm *TurnManager) ClearHover() { tm.hoverValid = false }

func (tm *TurnManager) record(u *Unit, category, key, value string, num float64) {
	name := "--"
	if u != nil {
		name = u.Name
	}
	tm.log.Add(tm.round, name, category, key, value, num)
	tm.logger.Debug("turn event", "round", tm.round, "unit", name, "category", category, "key", key, "value", value)
}

// Hover handles the pointer moving onto (x, y). With nothing selected it
// previews the range of a ready ally under the pointer; with a selected unit
// that has not moved it extends or corrects that unit's path.
func (tm *TurnManager) Hover(x, y int) (Change, error) {
	n, err := tm.grid.Node(x, y)
	if err != nil {
		tm.hoverValid = false
		return ChangeIgnored, err
	}
	tm.hovered, tm.hoverValid = n, true

	if tm.selected == nil {
		tm.previewAt(n)
		return ChangeIgnored, nil
	}
	if tm.selected.HasMoved {
		return ChangeIgnored, nil
	}

	change, err := tm.builder.Hover(x, y)
	if err != nil {
		return ChangeIgnored, err
	}
	switch change {
	case ChangeAppended, ChangeBacktracked, ChangeRerouted:
		tm.selected.Path = tm.builder.Path()
		tm.record(tm.selected, CategoryPath, change.String(), tm.selected.Path.String(), tm.builder.Cost())
	}
	return change, nil
}

func (tm *TurnManager) previewAt(n Node) {
	u := tm.roster.UnitAt(n)
	if u == nil || u.Team != TeamAlly || !u.Ready() {
		if tm.preview != nil {
			tm.preview.Reachable = nil
			tm.preview = nil
		}
		return
	}
	if u == tm.preview {
		return
	}
	if tm.preview != nil {
		tm.preview.Reachable = nil
	}
	reach, err := tm.pf.Reachable(u.Tile(), u.Movement)
	if err != nil {
		tm.logger.Warn("range preview failed", "unit", u.Name, "err", err)
		return
	}
	u.Reachable = reach
	tm.preview = u
}

// Click handles a primary click on (x, y): select a ready ally when nothing is
// selected, otherwise move the selected unit to the clicked tile if it is in
// range and free.
func (tm *TurnManager) Click(x, y int) error {
	n, err := tm.grid.Node(x, y)
	if err != nil {
		return err
	}
	if tm.selected == nil {
		u := tm.roster.UnitAt(n)
		if u == nil || u.Team != TeamAlly || !u.Ready() {
			return nil
		}
		return tm.Select(u)
	}
	if tm.selected.HasMoved {
		return nil
	}
	if !tm.selected.Reachable.Contains(n) || tm.roster.Occupied(n) {
		return nil
	}
	return tm.Commit(n)
}

// Select makes u the active unit and computes its range.
func (tm *TurnManager) Select(u *Unit) error {
	if tm.selected != nil && tm.selected != u {
		tm.selected.clearPlan()
	}
	if tm.preview != nil && tm.preview != u {
		tm.preview.Reachable = nil
	}
	tm.preview = nil

	reach, err := tm.pf.Reachable(u.Tile(), u.Movement)
	if err != nil {
		return fmt.Errorf("select %s: %w", u.Name, err)
	}
	u.Reachable = reach
	u.Path = nil
	tm.selected = u
	tm.builder = NewPathBuilder(tm.pf, u.Tile(), u.Movement, reach)
	tm.record(u, CategorySelect, "selected", fmt.Sprintf("at %s range %d tiles", u.Tile(), reach.Len()), float64(reach.Len()))
	return nil
}

// Commit moves the selected unit toward dest along its traced path, falling
// back to the cheapest path when the trace does not end at dest.
func (tm *TurnManager) Commit(dest Node) error {
	u := tm.selected
	if u == nil {
		return ErrNoSelection
	}
	if len(u.Path) == 0 || u.Path.Last() != dest {
		p, err := tm.pf.ShortestPath(u.Tile(), dest)
		if err != nil {
			return fmt.Errorf("commit %s to %s: %w", u.Name, dest, err)
		}
		u.Path = p
	}
	tiles, spent := tm.Advance(u)
	u.HasMoved = true
	u.Reachable = nil
	tm.builder = nil
	tm.record(u, CategoryMove, "committed", fmt.Sprintf("%d tiles to %s", tiles, u.Tile()), spent)
	return nil
}

// Advance walks u along its path one tile at a time, paying the entry cost of
// each tile from its movement budget. It stops at the destination, clearing
// the path, or before the first step it cannot afford or whose tile is taken.
func (tm *TurnManager) Advance(u *Unit) (tiles int, spent float64) {
	remaining := u.Movement
	for len(u.Path) > 1 {
		next := u.Path[1]
		c := tm.grid.cost(next)
		if remaining-c < 0 {
			break
		}
		if err := tm.roster.Move(u, next); err != nil {
			tm.logger.Warn("advance blocked", "unit", u.Name, "tile", next.String(), "err", err)
			break
		}
		remaining -= c
		spent += c
		tiles++
		u.Path = u.Path[1:]
		tm.record(u, CategoryMove, "step", next.String(), c)
	}
	if len(u.Path) <= 1 {
		u.Path = nil
	}
	return tiles, spent
}

// Cancel deselects the active unit if it has not moved yet.
func (tm *TurnManager) Cancel() {
	u := tm.selected
	if u == nil || u.HasMoved {
		return
	}
	u.clearPlan()
	tm.selected = nil
	tm.builder = nil
	tm.record(u, CategorySelect, "cancelled", "", 0)
}

// EndUnitTurn finishes the selected unit's turn. When every ally is done a
// new round starts.
func (tm *TurnManager) EndUnitTurn() error {
	u := tm.selected
	if u == nil {
		return ErrNoSelection
	}
	u.TurnTaken = true
	u.clearPlan()
	tm.selected = nil
	tm.builder = nil
	tm.record(u, CategoryTurn, "unit_done", u.Tile().String(), 0)

	if tm.alliesDone() {
		tm.startRound()
	}
	return nil
}

func (tm *TurnManager) alliesDone() bool {
	for _, u := range tm.roster.Allies() {
		if !u.TurnTaken {
			return false
		}
	}
	return true
}

func (tm *TurnManager) startRound() {
	tm.round++
	for _, u := range tm.roster.Allies() {
		u.TurnTaken = false
		u.HasMoved = false
	}
	tm.record(nil, CategoryTurn, "round_start", fmt.Sprintf("round %d", tm.round), float64(tm.round))
	tm.logger.Info("round started", "round", tm.round)
}

// ActiveReachable is the range currently on display: the selected unit's, or
// the previewed unit's.
func (tm *TurnManager) ActiveReachable() *ReachableSet {
	if tm.selected != nil {
		return tm.selected.Reachable
	}
	if tm.preview != nil {
		return tm.preview.Reachable
	}
	return nil
}

// TileView is what the presentation layer needs to draw one tile.
type TileView struct {
	Node      Node
	Terrain   TerrainType
	Enterable bool
	Reachable bool
	PathIndex int // position on the selected unit's path, -1 if off it
	Occupant  *Unit
	Hovered   bool
}

// TileView describes (x, y) for rendering.
func (tm *TurnManager) TileView(x, y int) (TileView, error) {
	t, err := tm.grid.Terrain(x, y)
	if err != nil {
		return TileView{}, err
	}
	n := Node{x, y}
	v := TileView{
		Node:      n,
		Terrain:   t,
		Enterable: t.Walkable,
		Reachable: tm.ActiveReachable().Contains(n),
		PathIndex: -1,
		Occupant:  tm.roster.UnitAt(n),
		Hovered:   tm.hoverValid && tm.hovered == n,
	}
	if tm.selected != nil {
		v.PathIndex = tm.selected.Path.Index(n)
	}
	return v, nil
}
