// Package mission loads mission files (YAML or HCL) and turns them into a
// playable tactics.Mission.
package mission

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Tile-Tactics/internal/tactics"
	"github.com/Garsondee/Tile-Tactics/missions"
)

// ErrUnknownFormat is returned for files that are neither YAML nor HCL.
var ErrUnknownFormat = errors.New("unknown mission format")

// Mission is the decoded mission document.
type Mission struct {
	Name    string        `yaml:"name" hcl:"name,attr"`
	Width   int           `yaml:"width" hcl:"width,attr"`
	Height  int           `yaml:"height" hcl:"height,attr"`
	Terrain []TerrainSpec `yaml:"terrain" hcl:"terrain,block"`
	Tiles   [][]int       `yaml:"tiles" hcl:"tiles,optional"`
	Units   []UnitSpec    `yaml:"units" hcl:"unit,block"`
}

// TerrainSpec is one catalog entry. The index in Mission.Terrain is the value
// used in Tiles.
type TerrainSpec struct {
	Name     string  `yaml:"name" hcl:"name,label"`
	Walkable bool    `yaml:"walkable" hcl:"walkable,attr"`
	Cost     float64 `yaml:"cost" hcl:"cost,optional"`
	Colour   []int   `yaml:"colour" hcl:"colour,optional"`
}

type UnitSpec struct {
	Name     string  `yaml:"name" hcl:"name,label"`
	Team     string  `yaml:"team" hcl:"team,attr"`
	X        int     `yaml:"x" hcl:"x,attr"`
	Y        int     `yaml:"y" hcl:"y,attr"`
	Movement float64 `yaml:"movement" hcl:"movement,attr"`
}

// Load reads a mission file, picking the decoder from its extension.
func Load(path string) (*Mission, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("mission: load %s: %w", path, err)
	}
	return Parse(path, data)
}

// Default returns the embedded practice mission.
func Default() (*Mission, error) {
	data, err := missions.FS.ReadFile(missions.Practice)
	if err != nil {
		return nil, fmt.Errorf("mission: embedded %s: %w", missions.Practice, err)
	}
	return Parse(missions.Practice, data)
}

// Parse decodes data; name selects the format and labels errors.
func Parse(name string, data []byte) (*Mission, error) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return parseYAML(name, data)
	case ".hcl":
		return parseHCL(name, data)
	default:
		return nil, fmt.Errorf("mission: %s: %w", name, ErrUnknownFormat)
	}
}

// IsMissionFile reports whether path has an extension Load understands.
func IsMissionFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".hcl":
		return true
	}
	return false
}

func parseYAML(name string, data []byte) (*Mission, error) {
	var m Mission
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("mission: unmarshal %s: %w", name, err)
	}
	return &m, nil
}

func parseHCL(name string, data []byte) (*Mission, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, name)
	if diags.HasErrors() {
		return nil, fmt.Errorf("mission: parse %s: %s", name, diags.Error())
	}
	var m Mission
	diags = gohcl.DecodeBody(file.Body, nil, &m)
	if diags.HasErrors() {
		return nil, fmt.Errorf("mission: decode %s: %s", name, diags.Error())
	}
	return &m, nil
}

// Catalog converts the terrain list. An empty list means the default catalog.
func (m *Mission) Catalog() (tactics.Catalog, error) {
	if len(m.Terrain) == 0 {
		return tactics.DefaultCatalog(), nil
	}
	cat := make(tactics.Catalog, len(m.Terrain))
	for i, t := range m.Terrain {
		tt := tactics.TerrainType{Name: t.Name, Walkable: t.Walkable, MovementCost: t.Cost}
		if len(t.Colour) > 0 {
			if len(t.Colour) != 3 {
				return nil, fmt.Errorf("mission %s: terrain %s: colour needs 3 components, got %d", m.Name, t.Name, len(t.Colour))
			}
			for c, v := range t.Colour {
				if v < 0 || v > 255 {
					return nil, fmt.Errorf("mission %s: terrain %s: colour component %d out of range", m.Name, t.Name, v)
				}
				tt.Colour[c] = uint8(v)
			}
		}
		cat[i] = tt
	}
	return cat, nil
}

// FlatTiles flattens Tiles into the row-major slice tactics.NewGrid expects.
// Missing tiles mean an all-zero board.
func (m *Mission) FlatTiles() ([]int, error) {
	if m.Width <= 0 || m.Height <= 0 {
		return nil, fmt.Errorf("mission %s: size %dx%d must be positive", m.Name, m.Width, m.Height)
	}
	flat := make([]int, 0, m.Width*m.Height)
	if len(m.Tiles) == 0 {
		return flat[:m.Width*m.Height], nil
	}
	if len(m.Tiles) != m.Height {
		return nil, fmt.Errorf("mission %s: %d tile rows, want %d", m.Name, len(m.Tiles), m.Height)
	}
	for y, row := range m.Tiles {
		if len(row) != m.Width {
			return nil, fmt.Errorf("mission %s: row %d has %d tiles, want %d", m.Name, y, len(row), m.Width)
		}
		flat = append(flat, row...)
	}
	return flat, nil
}

func parseTeam(s string) (tactics.Team, error) {
	switch strings.ToLower(s) {
	case "ally", "player":
		return tactics.TeamAlly, nil
	case "enemy":
		return tactics.TeamEnemy, nil
	}
	return 0, fmt.Errorf("unknown team %q", s)
}

// Build validates the document and assembles grid, roster and turn manager.
func (m *Mission) Build(logger *slog.Logger) (*tactics.Mission, error) {
	cat, err := m.Catalog()
	if err != nil {
		return nil, err
	}
	tiles, err := m.FlatTiles()
	if err != nil {
		return nil, err
	}
	g, err := tactics.NewGrid(m.Width, m.Height, cat, tiles)
	if err != nil {
		return nil, fmt.Errorf("mission %s: %w", m.Name, err)
	}
	units := make([]*tactics.Unit, 0, len(m.Units))
	for _, us := range m.Units {
		team, err := parseTeam(us.Team)
		if err != nil {
			return nil, fmt.Errorf("mission %s: unit %s: %w", m.Name, us.Name, err)
		}
		if us.Movement < 0 {
			return nil, fmt.Errorf("mission %s: unit %s: negative movement %v", m.Name, us.Name, us.Movement)
		}
		units = append(units, &tactics.Unit{Name: us.Name, Team: team, X: us.X, Y: us.Y, Movement: us.Movement})
	}
	tm, err := tactics.NewMission(m.Name, g, units, logger)
	if err != nil {
		return nil, fmt.Errorf("mission %s: %w", m.Name, err)
	}
	if logger != nil {
		logger.Debug("mission built", "name", m.Name, "width", m.Width, "height", m.Height, "units", len(units))
	}
	return tm, nil
}
