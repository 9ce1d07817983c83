// Package game is the ebiten window around the tactics turn layer: it turns
// the pointer into Hover and Click events and draws what TileView reports.
package game

import (
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/Garsondee/Tile-Tactics/internal/mission"
	"github.com/Garsondee/Tile-Tactics/internal/tactics"
)

// borderWidth is the pixel gap between the window edge and the board.
const borderWidth = 24

// DefaultTileSize is the edge of one tile in pixels.
const DefaultTileSize = 48

// Config is everything New needs.
type Config struct {
	Mission     *tactics.Mission
	MissionPath string // file to hot-reload; empty for the embedded mission
	TileSize    int
	Logger      *slog.Logger
}

type Game struct {
	mission *tactics.Mission
	layout  boardLayout
	width   int
	height  int

	face    text.Face
	logger  *slog.Logger
	showHUD bool
	status  string // last notice shown in the HUD

	prevKeys      map[ebiten.Key]bool
	prevMouseLeft bool

	missionPath string
	watcher     *mission.Watcher
}

// New sets up the window state for cfg.Mission. When cfg.MissionPath is set
// the file is watched and reloaded on save.
func New(cfg Config) (*Game, error) {
	if cfg.Mission == nil {
		return nil, errors.New("game: no mission")
	}
	if cfg.TileSize <= 0 {
		cfg.TileSize = DefaultTileSize
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	g := &Game{
		face:     text.NewGoXFace(basicfont.Face7x13),
		logger:   cfg.Logger,
		showHUD:  true,
		prevKeys: make(map[ebiten.Key]bool),
	}
	g.setMission(cfg.Mission, cfg.TileSize)

	if cfg.MissionPath != "" {
		w, err := mission.WatchFile(cfg.MissionPath)
		if err != nil {
			g.logger.Warn("mission hot reload disabled", "path", cfg.MissionPath, "err", err)
		} else {
			g.watcher = w
			g.missionPath = filepath.Clean(cfg.MissionPath)
		}
	}
	return g, nil
}

func (g *Game) setMission(m *tactics.Mission, tile int) {
	g.mission = m
	g.layout = boardLayout{
		offX:   borderWidth,
		offY:   borderWidth,
		tile:   tile,
		width:  m.Grid.Width(),
		height: m.Grid.Height(),
	}
	g.width = borderWidth + g.layout.pixelWidth() + borderWidth + logPanelWidth
	g.height = max(borderWidth+g.layout.pixelHeight()+borderWidth, minWindowHeight)
}

// Size returns the window size the board needs.
func (g *Game) Size() (int, int) { return g.width, g.height }

// Close stops the mission watcher.
func (g *Game) Close() error {
	if g.watcher == nil {
		return nil
	}
	return g.watcher.Close()
}

func (g *Game) Update() error {
	g.pollReload()
	g.handleInput()
	return nil
}

func (g *Game) handleInput() {
	turns := g.mission.Turns
	currentKeys := map[ebiten.Key]bool{}
	pressed := func(k ebiten.Key) bool {
		currentKeys[k] = ebiten.IsKeyPressed(k)
		return currentKeys[k] && !g.prevKeys[k]
	}

	// H: toggle HUD.
	if pressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	// C: copy the path report.
	if pressed(ebiten.KeyC) {
		g.copyReport()
	}
	// Space: end the selected unit's turn.
	if pressed(ebiten.KeySpace) {
		if err := turns.EndUnitTurn(); err != nil && !errors.Is(err, tactics.ErrNoSelection) {
			g.logger.Warn("end turn failed", "err", err)
		}
	}
	// Escape or right click: deselect.
	if pressed(ebiten.KeyEscape) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		turns.Cancel()
	}

	mx, my := ebiten.CursorPosition()
	x, y, onBoard := g.layout.tileAt(mx, my)
	if onBoard {
		if _, err := turns.Hover(x, y); err != nil {
			g.logger.Warn("hover failed", "x", x, "y", y, "err", err)
		}
	} else {
		turns.ClearHover()
	}

	// Left click: select or move.
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	if left && !g.prevMouseLeft && onBoard {
		if err := turns.Click(x, y); err != nil {
			g.logger.Warn("click failed", "x", x, "y", y, "err", err)
			g.status = err.Error()
		}
	}
	g.prevMouseLeft = left

	g.prevKeys = currentKeys
}

// pollReload swaps in the mission file when the watcher reports a save.
func (g *Game) pollReload() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			if filepath.Clean(name) != g.missionPath {
				continue
			}
			g.reload()
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.logger.Warn("mission watcher", "err", err)
		default:
			return
		}
	}
}

func (g *Game) reload() {
	doc, err := mission.Load(g.missionPath)
	if err == nil {
		var m *tactics.Mission
		if m, err = doc.Build(g.logger); err == nil {
			g.setMission(m, g.layout.tile)
			ebiten.SetWindowSize(g.width, g.height)
			g.status = fmt.Sprintf("reloaded %s", filepath.Base(g.missionPath))
			g.logger.Info("mission reloaded", "path", g.missionPath, "name", m.Name)
			return
		}
	}
	g.status = "reload failed: " + err.Error()
	g.logger.Error("mission reload failed", "path", g.missionPath, "err", err)
}

func (g *Game) Draw(screen *ebiten.Image) {
	// Window background outside the board.
	screen.Fill(color.RGBA{R: 12, G: 14, B: 12, A: 255})

	g.drawBoard(screen)
	g.drawReachable(screen)
	g.drawPath(screen)
	g.drawUnits(screen)
	g.drawCursor(screen)

	g.drawLogPanel(screen, g.width-logPanelWidth, g.height)
	if g.showHUD {
		g.drawHUD(screen)
	}
}

func (g *Game) Layout(_, _ int) (int, int) {
	return g.width, g.height
}
