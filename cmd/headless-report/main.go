package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"

	"github.com/Garsondee/Tile-Tactics/internal/mission"
	"github.com/Garsondee/Tile-Tactics/internal/tactics"
)

type runStats struct {
	RunIndex int   `json:"run"`
	Seed     int64 `json:"seed"`

	Hovers      int `json:"hovers"`
	Appended    int `json:"appended"`
	Backtracked int `json:"backtracked"`
	Rerouted    int `json:"rerouted"`
	Ignored     int `json:"ignored"`
	Unchanged   int `json:"unchanged"`

	Moves      int     `json:"moves"`
	TilesMoved int     `json:"tiles_moved"`
	Spent      float64 `json:"spent"`
	Rounds     int     `json:"rounds"`

	// Connected sums, per selected ally, the tiles reachable at any cost.
	Connected int `json:"connected"`
	Searches  int `json:"searches"`
	Expanded  int `json:"expanded"`

	// Violations counts traces that were invalid or over budget after a hover.
	Violations int `json:"violations"`
}

func main() {
	var runs int
	var steps int
	var seedBase int64
	var seedStep int64
	var missionPath string
	var asJSON bool
	var logLevel string

	flag.IntVar(&runs, "runs", 5, "number of headless runs")
	flag.IntVar(&steps, "steps", 40, "pointer moves per unit per run")
	flag.Int64Var(&seedBase, "seed-base", 42, "base RNG seed for run 1")
	flag.Int64Var(&seedStep, "seed-step", 1, "seed increment between runs")
	flag.StringVar(&missionPath, "mission", "", "mission file (.yaml or .hcl); empty for the embedded practice mission")
	flag.BoolVar(&asJSON, "json", false, "print one JSON object per run instead of text")
	flag.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	flag.Parse()

	if runs <= 0 {
		fmt.Println("error: -runs must be > 0")
		return
	}
	if steps <= 0 {
		fmt.Println("error: -steps must be > 0")
		return
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		fmt.Printf("error: bad -log-level %q\n", logLevel)
		return
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	doc, err := loadMission(missionPath)
	if err != nil {
		fmt.Printf("error: %v\n", err)
		os.Exit(1)
	}

	if !asJSON {
		fmt.Printf("=== Headless Path Report ===\n")
		fmt.Printf("mission=%s runs=%d steps=%d seed_base=%d seed_step=%d\n\n", doc.Name, runs, steps, seedBase, seedStep)
	}

	enc := json.NewEncoder(os.Stdout)
	all := make([]runStats, 0, runs)
	for i := 0; i < runs; i++ {
		seed := seedBase + int64(i)*seedStep
		m, err := doc.Build(logger)
		if err != nil {
			fmt.Printf("error: %v\n", err)
			os.Exit(1)
		}
		stats := runTraces(m, i+1, seed, steps)
		all = append(all, stats)
		if asJSON {
			if err := enc.Encode(stats); err != nil {
				logger.Error("encode run", "run", i+1, "err", err)
			}
			continue
		}
		printRun(stats)
	}
	if !asJSON {
		printAggregate(all)
	}
}

func loadMission(path string) (*mission.Mission, error) {
	if path == "" {
		return mission.Default()
	}
	return mission.Load(path)
}

// runTraces plays one round: every ally is selected, a seeded random pointer
// walk is fed through the turn manager, and the unit commits to wherever its
// trace ended.
func runTraces(m *tactics.Mission, runIndex int, seed int64, steps int) runStats {
	rs := runStats{RunIndex: runIndex, Seed: seed}
	rng := rand.New(rand.NewSource(seed))
	turns := m.Turns
	startRound := turns.Round()

	for _, u := range m.Roster.Allies() {
		if !u.Ready() {
			continue
		}
		if err := turns.Click(u.X, u.Y); err != nil || turns.Selected() != u {
			continue
		}
		pf := turns.Pathfinder()
		if dist, err := pf.Distances(u.Tile()); err == nil {
			rs.Connected += len(dist)
		}
		px, py := u.X, u.Y
		for s := 0; s < steps; s++ {
			px, py = nextPointer(rng, m.Grid, px, py)
			c, err := turns.Hover(px, py)
			if err != nil {
				continue
			}
			rs.tally(c)
			if p := u.Path; p != nil && (!p.Valid(m.Grid) || p.Cost(m.Grid) > u.Movement) {
				rs.Violations++
			}
		}
		if len(u.Path) > 1 {
			dest := u.Path.Last()
			if r, err := pf.Search(u.Tile(), dest); err == nil {
				rs.Searches++
				rs.Expanded += r.Expanded
			}
			if err := turns.Click(dest.X, dest.Y); err == nil && u.HasMoved {
				rs.Moves++
				if e, ok := turns.Log().LastOf(tactics.CategoryMove, "committed"); ok {
					rs.Spent += e.NumVal
				}
			}
		}
		_ = turns.EndUnitTurn()
	}
	rs.TilesMoved = turns.Log().Count(tactics.CategoryMove, "step")
	rs.Rounds = turns.Round() - startRound
	return rs
}

// nextPointer moves the simulated cursor one tile in a random direction, and
// now and then jumps a few tiles to exercise discontinuous hovers.
func nextPointer(rng *rand.Rand, g *tactics.Grid, x, y int) (int, int) {
	dx, dy := 0, 0
	switch rng.Intn(4) {
	case 0:
		dx = -1
	case 1:
		dx = 1
	case 2:
		dy = -1
	default:
		dy = 1
	}
	if rng.Intn(8) == 0 {
		dx *= 2 + rng.Intn(2)
		dy *= 2 + rng.Intn(2)
	}
	nx := min(max(x+dx, 0), g.Width()-1)
	ny := min(max(y+dy, 0), g.Height()-1)
	return nx, ny
}

func (rs *runStats) tally(c tactics.Change) {
	rs.Hovers++
	switch c {
	case tactics.ChangeAppended:
		rs.Appended++
	case tactics.ChangeBacktracked:
		rs.Backtracked++
	case tactics.ChangeRerouted:
		rs.Rerouted++
	case tactics.ChangeIgnored:
		rs.Ignored++
	case tactics.ChangeNone:
		rs.Unchanged++
	}
}

func printRun(rs runStats) {
	fmt.Printf("--- Run %d (seed=%d) ---\n", rs.RunIndex, rs.Seed)
	fmt.Printf("hover_changes: hovers=%d appended=%d backtracked=%d rerouted=%d ignored=%d unchanged=%d\n",
		rs.Hovers, rs.Appended, rs.Backtracked, rs.Rerouted, rs.Ignored, rs.Unchanged)
	fmt.Printf("movement: moves=%d tiles=%d spent=%.0f rounds=%d\n", rs.Moves, rs.TilesMoved, rs.Spent, rs.Rounds)
	fmt.Printf("search: connected=%d searches=%d expanded=%d\n", rs.Connected, rs.Searches, rs.Expanded)
	fmt.Printf("violations: %d\n\n", rs.Violations)
}

func printAggregate(all []runStats) {
	var total runStats
	for _, rs := range all {
		total.Hovers += rs.Hovers
		total.Appended += rs.Appended
		total.Backtracked += rs.Backtracked
		total.Rerouted += rs.Rerouted
		total.Ignored += rs.Ignored
		total.Unchanged += rs.Unchanged
		total.Moves += rs.Moves
		total.TilesMoved += rs.TilesMoved
		total.Spent += rs.Spent
		total.Violations += rs.Violations
		total.Searches += rs.Searches
		total.Expanded += rs.Expanded
	}
	n := float64(len(all))
	fmt.Printf("=== Aggregate (%d runs) ===\n", len(all))
	fmt.Printf("avg_per_run: hovers=%.1f appended=%.1f backtracked=%.1f rerouted=%.1f ignored=%.1f\n",
		float64(total.Hovers)/n, float64(total.Appended)/n, float64(total.Backtracked)/n,
		float64(total.Rerouted)/n, float64(total.Ignored)/n)
	fmt.Printf("reroute_rate=%.2f  avg_spent=%.1f  total_violations=%d\n",
		rerouteRate(total), total.Spent/n, total.Violations)
	fmt.Printf("avg_expanded_per_search=%.1f\n", expandedPerSearch(total))
}

// rerouteRate is the share of accepted hovers that replaced the trace.
func rerouteRate(rs runStats) float64 {
	accepted := rs.Appended + rs.Backtracked + rs.Rerouted
	if accepted == 0 {
		return 0
	}
	return float64(rs.Rerouted) / float64(accepted)
}

func expandedPerSearch(rs runStats) float64 {
	if rs.Searches == 0 {
		return 0
	}
	return float64(rs.Expanded) / float64(rs.Searches)
}
