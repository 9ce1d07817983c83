package game

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudLineHeight matches basicfont.Face7x13.
const hudLineHeight = 14

// hudLines builds the HUD text: round, selection, hovered tile and key legend.
func (g *Game) hudLines() []string {
	turns := g.mission.Turns
	lines := []string{fmt.Sprintf("%s  round %d", g.mission.Name, turns.Round())}

	if u := turns.Selected(); u != nil {
		state := "planning"
		if u.HasMoved {
			state = "moved"
		}
		lines = append(lines, fmt.Sprintf("%s at %s  movement %.0f  %s", u.Name, u.Tile(), u.Movement, state))
		if len(u.Path) > 0 {
			lines = append(lines, fmt.Sprintf("path %d steps  cost %.0f/%.0f", u.Path.Edges(), u.Path.Cost(turns.Grid()), u.Movement))
		}
	} else {
		lines = append(lines, "click an ally to select")
	}

	if n, ok := turns.Hovered(); ok {
		if v, err := turns.TileView(n.X, n.Y); err == nil {
			cost := "impassable"
			if c, _ := turns.Grid().CostToEnter(n.X, n.Y); !math.IsInf(c, 1) {
				cost = fmt.Sprintf("cost %.0f", c)
			}
			line := fmt.Sprintf("%s %s %s", n, v.Terrain.Name, cost)
			if v.Occupant != nil {
				line += "  " + v.Occupant.Name
			}
			lines = append(lines, line)
		}
	}

	lines = append(lines,
		"LMB=select/move  RMB/Esc=cancel",
		"Space=end turn  C=copy  H=hide HUD",
	)
	if g.status != "" {
		lines = append(lines, g.status)
	}
	return lines
}

func (g *Game) drawHUD(screen *ebiten.Image) {
	lines := g.hudLines()

	const charW = 7
	const padX = 6
	const padY = 4
	maxLen := 0
	for _, l := range lines {
		maxLen = max(maxLen, len(l))
	}
	boxW := float32(maxLen*charW + padX*2)
	boxH := float32(len(lines)*hudLineHeight + padY*2)
	bx := float32(4)
	by := float32(g.height) - boxH - 4

	vector.FillRect(screen, bx, by, boxW, boxH, color.RGBA{R: 6, G: 10, B: 6, A: 210}, false)
	vector.StrokeRect(screen, bx, by, boxW, boxH, 1.0, color.RGBA{R: 60, G: 100, B: 60, A: 180}, false)

	for i, line := range lines {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(bx)+padX, float64(by)+padY+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(color.RGBA{R: 220, G: 230, B: 220, A: 255})
		text.Draw(screen, line, g.face, op)
	}
}
