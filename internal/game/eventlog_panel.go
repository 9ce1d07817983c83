package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tile-Tactics/internal/tactics"
)

const (
	logPanelWidth = 360
	logLineHeight = 14
)

// categoryColours tints the marker next to each log line.
var categoryColours = map[string]color.RGBA{
	tactics.CategorySelect: {R: 120, G: 200, B: 120, A: 255},
	tactics.CategoryPath:   {R: 250, G: 210, B: 70, A: 255},
	tactics.CategoryMove:   {R: 70, G: 150, B: 230, A: 255},
	tactics.CategoryTurn:   {R: 200, G: 120, B: 220, A: 255},
}

// drawLogPanel draws the tail of the turn event log down the right edge,
// newest at the bottom.
func (g *Game) drawLogPanel(screen *ebiten.Image, panelX, panelH int) {
	px, ph := float32(panelX), float32(panelH)
	vector.FillRect(screen, px, 0, logPanelWidth, ph, color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, px, 0, px, ph, 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	// Title bar.
	vector.FillRect(screen, px, 0, logPanelWidth, 18, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	g.panelText(screen, "EVENT LOG", panelX+8, 2, color.RGBA{R: 200, G: 220, B: 200, A: 255})
	vector.StrokeLine(screen, px, 18, px+logPanelWidth, 18, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := g.mission.Turns.Log().Entries()
	maxVisible := (panelH - 24) / logLineHeight
	start := max(0, len(entries)-maxVisible)
	visible := entries[start:]
	const recent = 3

	y := 22
	for i, e := range visible {
		isRecent := i >= len(visible)-recent
		if isRecent {
			vector.FillRect(screen, px+2, float32(y), logPanelWidth-4, logLineHeight, color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, px+5, float32(y+4), 3, 6, categoryColours[e.Category], false)

		textCol := color.RGBA{R: 150, G: 160, B: 150, A: 255}
		if isRecent {
			textCol = color.RGBA{R: 235, G: 240, B: 235, A: 255}
		}
		g.panelText(screen, logLine(e), panelX+12, y, textCol)
		y += logLineHeight
	}
}

// logLine is the short form of an entry that fits the panel.
func logLine(e tactics.EventEntry) string {
	line := e.Unit + " " + e.Key
	if e.Value != "" {
		line += " " + e.Value
	}
	const maxChars = (logPanelWidth - 16) / 7
	if r := []rune(line); len(r) > maxChars {
		line = string(r[:maxChars-3]) + "..."
	}
	return line
}

func (g *Game) panelText(screen *ebiten.Image, s string, x, y int, c color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	op.ColorScale.ScaleWithColor(c)
	text.Draw(screen, s, g.face, op)
}
