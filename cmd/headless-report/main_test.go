package main

import (
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Garsondee/Tile-Tactics/internal/mission"
	"github.com/Garsondee/Tile-Tactics/internal/tactics"
)

func buildPractice(t *testing.T) *tactics.Mission {
	t.Helper()
	doc, err := mission.Default()
	if err != nil {
		t.Fatal(err)
	}
	m, err := doc.Build(nil)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestRunTraces_NoViolationsOnPracticeMission(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		rs := runTraces(buildPractice(t), 1, seed, 60)
		if rs.Violations != 0 {
			t.Fatalf("seed %d: %d traces broke the budget or adjacency", seed, rs.Violations)
		}
		if rs.Hovers != 2*60 {
			t.Fatalf("seed %d: %d hovers, want 120", seed, rs.Hovers)
		}
		if rs.Rounds != 1 {
			t.Fatalf("seed %d: %d rounds, want 1", seed, rs.Rounds)
		}
		if got := rs.Appended + rs.Backtracked + rs.Rerouted + rs.Ignored + rs.Unchanged; got != rs.Hovers {
			t.Fatalf("seed %d: tallies sum to %d, want %d", seed, got, rs.Hovers)
		}
	}
}

func TestRunTraces_DeterministicPerSeed(t *testing.T) {
	a := runTraces(buildPractice(t), 1, 99, 50)
	b := runTraces(buildPractice(t), 1, 99, 50)
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("same seed gave different runs (-a +b):\n%s", diff)
	}
}

func TestNextPointer_StaysOnBoard(t *testing.T) {
	g, err := tactics.NewUniformGrid(3, 2, tactics.DefaultCatalog(), tactics.TerrainGrass)
	if err != nil {
		t.Fatal(err)
	}
	rng := rand.New(rand.NewSource(7))
	x, y := 0, 0
	for i := 0; i < 500; i++ {
		x, y = nextPointer(rng, g, x, y)
		if !g.InBounds(x, y) {
			t.Fatalf("step %d left the board at (%d,%d)", i, x, y)
		}
	}
}

func TestRerouteRate(t *testing.T) {
	if r := rerouteRate(runStats{}); r != 0 {
		t.Fatalf("empty rate %v, want 0", r)
	}
	if r := rerouteRate(runStats{Appended: 2, Backtracked: 1, Rerouted: 1}); r != 0.25 {
		t.Fatalf("rate %v, want 0.25", r)
	}
}

func TestRunTraces_RecordsSearchEffort(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		rs := runTraces(buildPractice(t), 1, seed, 60)
		if rs.Connected < 2 {
			t.Fatalf("seed %d: connected %d, want both allies to reach some tiles", seed, rs.Connected)
		}
		if rs.Searches < rs.Moves {
			t.Fatalf("seed %d: %d searches for %d moves", seed, rs.Searches, rs.Moves)
		}
		if rs.Expanded < rs.Searches {
			t.Fatalf("seed %d: %d nodes expanded over %d searches", seed, rs.Expanded, rs.Searches)
		}
	}
}

func TestExpandedPerSearch(t *testing.T) {
	if r := expandedPerSearch(runStats{}); r != 0 {
		t.Fatalf("empty average %v, want 0", r)
	}
	if r := expandedPerSearch(runStats{Searches: 4, Expanded: 10}); r != 2.5 {
		t.Fatalf("average %v, want 2.5", r)
	}
}
