package game

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/Garsondee/Tile-Tactics/internal/tactics"
)

// copyReport puts the path report on the system clipboard.
func (g *Game) copyReport() {
	report := pathReport(g.mission)
	if err := clipboard.WriteAll(report); err != nil {
		g.status = "clipboard: " + err.Error()
		g.logger.Warn("clipboard export failed", "err", err)
		return
	}
	g.status = "report copied"
	g.logger.Info("path report copied", "bytes", len(report))
}

// pathReport summarises the mission state and the full event log as text.
func pathReport(m *tactics.Mission) string {
	turns := m.Turns
	var sb strings.Builder
	fmt.Fprintf(&sb, "mission %s  round %d\n", m.Name, turns.Round())
	for _, u := range m.Roster.Units() {
		fmt.Fprintf(&sb, "  %-8s %-5s at %-7s movement %.0f", u.Name, u.Team, u.Tile(), u.Movement)
		if u.TurnTaken {
			sb.WriteString("  done")
		}
		sb.WriteByte('\n')
	}
	if u := turns.Selected(); u != nil && len(u.Path) > 0 {
		fmt.Fprintf(&sb, "selected %s path %s cost %.0f\n", u.Name, u.Path, u.Path.Cost(m.Grid))
	}
	sb.WriteString("--- events ---\n")
	sb.WriteString(turns.Log().Format())
	return sb.String()
}
