package tactics

import (
	"testing"
)

// dumpLog prints the event log to t.Log so it appears in `go test -v` output.
func dumpLog(t *testing.T, tm *TestMission) {
	t.Helper()
	entries := tm.Turns.Log().Entries()
	if len(entries) == 0 {
		t.Log("(no log entries)")
		return
	}
	for _, e := range entries {
		t.Log(e.String())
	}
}

// --- Scenario: practice map, one full round ---

func TestScenario_PracticeRound(t *testing.T) {
	t.Log("=== TestScenario_PracticeRound ===")
	t.Log("--- Setup: practice terrain, two allies, one enemy ---")

	tm := newPracticeMission(t)
	defer dumpLog(t, tm)

	t.Log("--- Archer: trace into the swamp edge, wander off, come back ---")
	if err := tm.SelectUnit("archer"); err != nil {
		t.Fatal(err)
	}
	changes, err := tm.Trace(
		Node{1, 0}, Node{2, 0}, // append, append
		Node{3, 0}, // swamp: 2+3 = 5, still affordable
		Node{9, 9}, // far off range: ignored
		Node{2, 0}, // retract
		Node{1, 2}, // jump: re-route
	)
	if err != nil {
		t.Fatal(err)
	}
	want := []Change{ChangeAppended, ChangeAppended, ChangeAppended, ChangeIgnored, ChangeBacktracked, ChangeRerouted}
	for i := range want {
		if changes[i] != want[i] {
			t.Fatalf("hover %d: %s, want %s", i, changes[i], want[i])
		}
	}
	archer := tm.Unit("archer")
	if archer.Path.Last() != (Node{1, 2}) || archer.Path.Cost(tm.Grid) != 3 {
		t.Fatalf("archer path %s, want a 3-cost path ending at (1,2)", archer.Path)
	}
	if err := tm.Turns.Click(1, 2); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.EndUnitTurn(); err != nil {
		t.Fatal(err)
	}

	t.Log("--- Knight: straight march, then end the round ---")
	if err := tm.SelectUnit("knight"); err != nil {
		t.Fatal(err)
	}
	if err := tm.Turns.Click(3, 9); err != nil {
		t.Fatal(err)
	}
	if got := tm.Unit("knight").Tile(); got != (Node{3, 9}) {
		t.Fatalf("knight at %s, want (3,9)", got)
	}
	if err := tm.Turns.EndUnitTurn(); err != nil {
		t.Fatal(err)
	}

	if tm.Turns.Round() != 2 {
		t.Fatalf("round %d, want 2", tm.Turns.Round())
	}
	if tm.Unit("archer").Tile() != (Node{1, 2}) {
		t.Fatalf("archer at %s, want (1,2)", tm.Unit("archer").Tile())
	}
}

func TestScenario_CustomTerrainHarness(t *testing.T) {
	tm, err := NewTestMission(
		WithGridSize(5, 5),
		WithTerrainRect(0, 2, 4, 2, TerrainMountain),
		WithTerrainAt(TerrainGrass, Node{2, 2}),
		WithAlly("scout", 0, 0, 10),
	)
	if err != nil {
		t.Fatal(err)
	}
	if ok, _ := tm.Grid.IsEnterable(1, 2); ok {
		t.Fatal("wall tile should be a mountain")
	}
	p, err := tm.Turns.Pathfinder().ShortestPath(Node{0, 0}, Node{0, 4})
	if err != nil {
		t.Fatal(err)
	}
	if p.Index(Node{2, 2}) < 0 {
		t.Fatalf("path %s should squeeze through the gap at (2,2)", p)
	}
	if _, err := NewTestMission(WithGridSize(0, 3)); err == nil {
		t.Fatal("empty grid should fail")
	}
	if _, err := NewTestMission(WithAlly("a", 1, 1, 3), WithAlly("b", 1, 1, 3)); err == nil {
		t.Fatal("stacked units should fail")
	}
	if err := tm.SelectUnit("nobody"); err == nil {
		t.Fatal("unknown unit should fail")
	}
}
