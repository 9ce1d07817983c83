package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/Garsondee/Tile-Tactics/internal/game"
	"github.com/Garsondee/Tile-Tactics/internal/mission"
)

func main() {
	var missionPath string
	var tileSize int
	var logLevel string

	flag.StringVar(&missionPath, "mission", "", "mission file (.yaml or .hcl); empty for the embedded practice mission")
	flag.IntVar(&tileSize, "tile", game.DefaultTileSize, "tile size in pixels")
	flag.StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	flag.Parse()

	var level slog.Level
	if err := level.UnmarshalText([]byte(logLevel)); err != nil {
		log.Fatalf("bad -log-level %q: %v", logLevel, err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	doc, err := loadMission(missionPath)
	if err != nil {
		log.Fatal(err)
	}
	m, err := doc.Build(logger)
	if err != nil {
		log.Fatal(err)
	}
	g, err := game.New(game.Config{
		Mission:     m,
		MissionPath: missionPath,
		TileSize:    tileSize,
		Logger:      logger,
	})
	if err != nil {
		log.Fatal(err)
	}
	defer g.Close()

	w, h := g.Size()
	ebiten.SetWindowTitle("Tile Tactics: " + m.Name)
	ebiten.SetWindowSize(w, h)
	logger.Info("starting", "mission", m.Name, "units", len(m.Roster.Units()))
	if err := ebiten.RunGame(g); err != nil {
		log.Fatal(err)
	}
}

func loadMission(path string) (*mission.Mission, error) {
	if path == "" {
		return mission.Default()
	}
	return mission.Load(path)
}
