package tactics

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func newPracticeMission(t *testing.T, extra ...MissionOption) *TestMission {
	t.Helper()
	opts := append([]MissionOption{
		WithPracticeTerrain(),
		WithAlly("archer", 0, 0, 5),
		WithAlly("knight", 0, 9, 3),
		WithEnemy("orc", 2, 1, 4),
	}, extra...)
	tm, err := NewTestMission(opts...)
	if err != nil {
		t.Fatal(err)
	}
	return tm
}

func TestTurnManager_HoverPreviewsReadyAlly(t *testing.T) {
	tm := newPracticeMission(t)
	if _, err := tm.Turns.Hover(0, 0); err != nil {
		t.Fatal(err)
	}
	rs := tm.Turns.ActiveReachable()
	if rs == nil || !rs.Contains(Node{2, 0}) {
		t.Fatal("hovering the archer should preview its range")
	}
	if tm.Turns.Selected() != nil {
		t.Fatal("preview must not select")
	}
	// Enemies get no preview.
	tm.Turns.Hover(2, 1)
	if tm.Turns.ActiveReachable() != nil {
		t.Fatal("preview should clear off the archer")
	}
	if tm.Unit("archer").Reachable != nil {
		t.Fatal("stale preview left on the archer")
	}
}

func TestTurnManager_SelectTraceCommit(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	archer := tm.Unit("archer")
	if tm.Turns.Selected() != archer || archer.Reachable == nil {
		t.Fatal("archer should be selected with a range")
	}

	changes, err := tm.Trace(Node{1, 0}, Node{2, 0})
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]Change{ChangeAppended, ChangeAppended}, changes); diff != "" {
		t.Fatalf("changes mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(Path{{0, 0}, {1, 0}, {2, 0}}, archer.Path); diff != "" {
		t.Fatalf("unit path mismatch (-want +got):\n%s", diff)
	}

	if err := tm.Turns.Click(2, 0); err != nil {
		t.Fatal(err)
	}
	if archer.Tile() != (Node{2, 0}) {
		t.Fatalf("archer at %s, want (2,0)", archer.Tile())
	}
	if !archer.HasMoved || archer.Path != nil || archer.Reachable != nil {
		t.Fatalf("after commit: moved=%v path=%s reach=%v", archer.HasMoved, archer.Path, archer.Reachable)
	}
	if tm.Roster.UnitAt(Node{2, 0}) != archer || tm.Roster.Occupied(Node{0, 0}) {
		t.Fatal("roster out of sync with unit position")
	}
	if tm.Turns.Selected() != archer {
		t.Fatal("unit should stay selected until its turn ends")
	}

	log := tm.Turns.Log()
	if n := log.Count(CategoryPath, "appended"); n != 2 {
		t.Fatalf("path appended events %d, want 2", n)
	}
	if n := log.Count(CategoryMove, "step"); n != 2 {
		t.Fatalf("step events %d, want 2", n)
	}
	e, ok := log.LastOf(CategoryMove, "committed")
	if !ok || e.NumVal != 2 || e.Unit != "archer" {
		t.Fatalf("committed event %+v, want 2 movement spent by archer", e)
	}
}

func TestTurnManager_ClickWithoutTraceUsesShortestPath(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.Click(0, 3); err != nil {
		t.Fatal(err)
	}
	if got := tm.Unit("archer").Tile(); got != (Node{0, 3}) {
		t.Fatalf("archer at %s, want (0,3)", got)
	}
}

func TestTurnManager_ClickIgnoresOccupiedAndOutOfRange(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	archer := tm.Unit("archer")
	// Orc tile is in range but taken.
	if err := tm.Turns.Click(2, 1); err != nil {
		t.Fatal(err)
	}
	// Far corner is out of range.
	if err := tm.Turns.Click(9, 9); err != nil {
		t.Fatal(err)
	}
	if archer.HasMoved || archer.Tile() != (Node{0, 0}) {
		t.Fatalf("archer moved to %s", archer.Tile())
	}
	if err := tm.Turns.Click(-1, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
}

func TestTurnManager_ClickOnEnemyDoesNotSelect(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.Turns.Click(2, 1); err != nil {
		t.Fatal(err)
	}
	if tm.Turns.Selected() != nil {
		t.Fatal("enemy must not be selectable")
	}
}

func TestTurnManager_Cancel(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if _, err := tm.Trace(Node{1, 0}); err != nil {
		t.Fatal(err)
	}
	tm.Turns.Cancel()
	archer := tm.Unit("archer")
	if tm.Turns.Selected() != nil || archer.Path != nil || archer.Reachable != nil {
		t.Fatal("cancel should deselect and clear the plan")
	}
	if tm.Turns.Log().Count(CategorySelect, "cancelled") != 1 {
		t.Fatal("cancel not recorded")
	}

	// After moving, cancel keeps the unit selected.
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.Click(1, 0); err != nil {
		t.Fatal(err)
	}
	tm.Turns.Cancel()
	if tm.Turns.Selected() != archer {
		t.Fatal("cancel after moving should be a no-op")
	}
}

func TestTurnManager_HoverAfterMoveIsIgnored(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.Click(1, 0); err != nil {
		t.Fatal(err)
	}
	c, err := tm.Turns.Hover(1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if c != ChangeIgnored || tm.Unit("archer").Path != nil {
		t.Fatalf("moved unit traced a path: %s", c)
	}
}

func TestTurnManager_EndUnitTurnRollsRound(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.Turns.EndUnitTurn(); !errors.Is(err, ErrNoSelection) {
		t.Fatalf("got %v, want ErrNoSelection", err)
	}

	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.Click(1, 0); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.EndUnitTurn(); err != nil {
		t.Fatal(err)
	}
	archer := tm.Unit("archer")
	if !archer.TurnTaken || tm.Turns.Round() != 1 {
		t.Fatalf("turnTaken=%v round=%d, want true/1", archer.TurnTaken, tm.Turns.Round())
	}
	// A finished unit cannot be picked again this round.
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if tm.Turns.Selected() != nil {
		t.Fatal("finished unit was selected")
	}

	if err := tm.SelectUnit("knight"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.EndUnitTurn(); err != nil {
		t.Fatal(err)
	}
	if tm.Turns.Round() != 2 {
		t.Fatalf("round %d, want 2", tm.Turns.Round())
	}
	for _, u := range tm.Roster.Team(TeamAlly) {
		if u.TurnTaken || u.HasMoved {
			t.Fatalf("%s not reset for the new round", u.Name)
		}
	}
	if tm.Turns.Log().Count(CategoryTurn, "round_start") != 1 {
		t.Fatal("round start not recorded")
	}
}

func TestTurnManager_AdvanceStopsWhenUnaffordable(t *testing.T) {
	tm := newPracticeMission(t, WithAlly("scout", 2, 0, 2))
	scout := tm.Unit("scout")
	scout.Path = Path{{2, 0}, {3, 0}, {4, 0}}
	tiles, spent := tm.Turns.Advance(scout)
	if tiles != 0 || spent != 0 {
		t.Fatalf("moved %d tiles for %v, want nothing (swamp costs 3)", tiles, spent)
	}
	if diff := cmp.Diff(Path{{2, 0}, {3, 0}, {4, 0}}, scout.Path); diff != "" {
		t.Fatalf("unaffordable path should be kept (-want +got):\n%s", diff)
	}
}

func TestTurnManager_AdvanceStopsBeforeOccupiedTile(t *testing.T) {
	tm := newPracticeMission(t)
	archer := tm.Unit("archer")
	archer.Path = Path{{0, 0}, {1, 0}, {1, 1}, {2, 1}, {3, 1}}
	tiles, spent := tm.Turns.Advance(archer)
	if tiles != 2 || spent != 2 {
		t.Fatalf("moved %d tiles for %v, want 2/2", tiles, spent)
	}
	if archer.Tile() != (Node{1, 1}) {
		t.Fatalf("archer at %s, want (1,1) next to the orc", archer.Tile())
	}
}

func TestTurnManager_TileView(t *testing.T) {
	tm := newPracticeMission(t)
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	if _, err := tm.Trace(Node{1, 0}); err != nil {
		t.Fatal(err)
	}

	v, err := tm.Turns.TileView(1, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !v.Reachable || v.PathIndex != 1 || !v.Hovered || !v.Enterable {
		t.Fatalf("(1,0) view %+v", v)
	}
	v, _ = tm.Turns.TileView(2, 1)
	if v.Occupant == nil || v.Occupant.Name != "orc" {
		t.Fatalf("(2,1) occupant %v, want orc", v.Occupant)
	}
	v, _ = tm.Turns.TileView(4, 4)
	if v.Enterable || v.Reachable || v.Terrain.Name != "mountain" {
		t.Fatalf("(4,4) view %+v, want unreachable mountain", v)
	}
	if _, err := tm.Turns.TileView(10, 0); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
}

func TestTurnManager_HoverOffBoardClearsHover(t *testing.T) {
	tm := newPracticeMission(t)
	tm.Turns.Hover(3, 3)
	if n, ok := tm.Turns.Hovered(); !ok || n != (Node{3, 3}) {
		t.Fatalf("hovered %s/%v", n, ok)
	}
	if _, err := tm.Turns.Hover(-1, -1); !errors.Is(err, ErrOutOfBounds) {
		t.Fatalf("got %v, want ErrOutOfBounds", err)
	}
	if _, ok := tm.Turns.Hovered(); ok {
		t.Fatal("off-board hover should clear the hovered tile")
	}
}
