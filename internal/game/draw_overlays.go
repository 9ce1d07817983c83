package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/Tile-Tactics/internal/tactics"
)

var (
	reachableFill  = color.RGBA{R: 70, G: 130, B: 230, A: 90}
	pathLine       = color.RGBA{R: 250, G: 210, B: 70, A: 230}
	cursorOK       = color.RGBA{R: 255, G: 255, B: 255, A: 230}
	cursorBlocked  = color.RGBA{R: 235, G: 50, B: 50, A: 230}
	gridLine       = color.RGBA{R: 0, G: 0, B: 0, A: 50}
	allyColour     = color.RGBA{R: 70, G: 110, B: 210, A: 255}
	enemyColour    = color.RGBA{R: 210, G: 70, B: 70, A: 255}
	exhaustedShade = color.RGBA{R: 90, G: 90, B: 90, A: 255}
	selectedRing   = color.RGBA{R: 250, G: 250, B: 140, A: 255}
)

// drawBoard fills each tile with its terrain colour and overlays the grid.
func (g *Game) drawBoard(screen *ebiten.Image) {
	grid := g.mission.Grid
	ts := float32(g.layout.tile)
	for _, n := range grid.Nodes() {
		t, err := grid.Terrain(n.X, n.Y)
		if err != nil {
			continue
		}
		x, y := g.layout.origin(n.X, n.Y)
		c := t.Colour
		vector.FillRect(screen, x, y, ts, ts, color.RGBA{R: c[0], G: c[1], B: c[2], A: 255}, false)
	}
	drawGridLines(screen, g.layout, gridLine)

	// Board border frame.
	ox, oy := float32(g.layout.offX), float32(g.layout.offY)
	gw, gh := float32(g.layout.pixelWidth()), float32(g.layout.pixelHeight())
	vector.StrokeRect(screen, ox-1, oy-1, gw+2, gh+2, 2.0, color.RGBA{R: 65, G: 90, B: 65, A: 255}, false)
}

// drawReachable tints every tile of the range on display.
func (g *Game) drawReachable(screen *ebiten.Image) {
	rs := g.mission.Turns.ActiveReachable()
	if rs == nil {
		return
	}
	ts := float32(g.layout.tile)
	for _, n := range rs.Nodes() {
		x, y := g.layout.origin(n.X, n.Y)
		vector.FillRect(screen, x+1, y+1, ts-2, ts-2, reachableFill, false)
	}
}

// drawPath draws the selected unit's path as a line through tile centres
// with a marker on the destination.
func (g *Game) drawPath(screen *ebiten.Image) {
	u := g.mission.Turns.Selected()
	if u == nil || len(u.Path) < 2 {
		return
	}
	width := max(2, float32(g.layout.tile)/10)
	for i := 1; i < len(u.Path); i++ {
		ax, ay := g.layout.centre(u.Path[i-1].X, u.Path[i-1].Y)
		bx, by := g.layout.centre(u.Path[i].X, u.Path[i].Y)
		vector.StrokeLine(screen, ax, ay, bx, by, width, pathLine, true)
		vector.FillCircle(screen, bx, by, width, pathLine, true)
	}
	last := u.Path.Last()
	cx, cy := g.layout.centre(last.X, last.Y)
	vector.StrokeCircle(screen, cx, cy, float32(g.layout.tile)/4, width/2, pathLine, true)
}

// drawUnits draws each unit as a disc in its team colour. Units that have
// finished their turn are greyed out.
func (g *Game) drawUnits(screen *ebiten.Image) {
	selected := g.mission.Turns.Selected()
	r := float32(g.layout.tile) * 0.32
	for _, u := range g.mission.Roster.Units() {
		cx, cy := g.layout.centre(u.X, u.Y)
		col := unitColour(u)
		vector.FillCircle(screen, cx, cy, r, col, true)
		vector.StrokeCircle(screen, cx, cy, r, 1.5, color.RGBA{A: 200}, true)
		if u == selected {
			vector.StrokeCircle(screen, cx, cy, r+4, 2, selectedRing, true)
		}
	}
}

func unitColour(u *tactics.Unit) color.RGBA {
	if u.Team == tactics.TeamAlly && u.TurnTaken {
		return exhaustedShade
	}
	if u.Team == tactics.TeamEnemy {
		return enemyColour
	}
	return allyColour
}

// drawCursor outlines the hovered tile: white where a unit could stand, red
// on unwalkable terrain.
func (g *Game) drawCursor(screen *ebiten.Image) {
	n, ok := g.mission.Turns.Hovered()
	if !ok {
		return
	}
	v, err := g.mission.Turns.TileView(n.X, n.Y)
	if err != nil {
		return
	}
	col := cursorOK
	if !v.Enterable {
		col = cursorBlocked
	}
	x, y := g.layout.origin(n.X, n.Y)
	ts := float32(g.layout.tile)
	vector.StrokeRect(screen, x+1, y+1, ts-2, ts-2, 2, col, false)
}

// drawGridLines rules one line per tile boundary across the board.
func drawGridLines(screen *ebiten.Image, l boardLayout, c color.Color) {
	top, bottom := float32(l.offY), float32(l.offY+l.pixelHeight())
	left, right := float32(l.offX), float32(l.offX+l.pixelWidth())
	for col := 0; col <= l.width; col++ {
		x, _ := l.origin(col, 0)
		vector.StrokeLine(screen, x, top, x, bottom, 1, c, false)
	}
	for row := 0; row <= l.height; row++ {
		_, y := l.origin(0, row)
		vector.StrokeLine(screen, left, y, right, y, 1, c, false)
	}
}
