package generate

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed themes.yaml
var themesYAML []byte

// TileDef describes one tile kind within a theme: its single-character grid
// legend plus the mesh and material assets placed for it.
type TileDef struct {
	Char     string `yaml:"char"`
	Mesh     string `yaml:"mesh"`
	Material string `yaml:"material"`
}

// Theme is a visual tile set the generators build levels from.
type Theme struct {
	ID          string             `yaml:"id"`
	Name        string             `yaml:"name"`
	Description string             `yaml:"description"`
	Tiles       map[string]TileDef `yaml:"tiles"`
}

type themeFile struct {
	Themes []Theme `yaml:"themes"`
}

var (
	themesOnce sync.Once
	themeList  []Theme
	themesErr  error
)

func loadThemes() ([]Theme, error) {
	themesOnce.Do(func() {
		var f themeFile
		if err := yaml.Unmarshal(themesYAML, &f); err != nil {
			themesErr = fmt.Errorf("parse embedded themes: %w", err)
			return
		}
		themeList = f.Themes
	})
	return themeList, themesErr
}

// Themes returns all built-in themes.
func Themes() ([]Theme, error) {
	return loadThemes()
}

// ThemeByID looks up a built-in theme.
func ThemeByID(id string) (Theme, error) {
	themes, err := loadThemes()
	if err != nil {
		return Theme{}, err
	}
	for _, t := range themes {
		if t.ID == id {
			return t, nil
		}
	}
	return Theme{}, fmt.Errorf("theme not found: %s", id)
}

// ThemeIDs returns the ids of all built-in themes, sorted.
func ThemeIDs() []string {
	themes, err := loadThemes()
	if err != nil {
		return nil
	}
	ids := make([]string, len(themes))
	for i, t := range themes {
		ids[i] = t.ID
	}
	sort.Strings(ids)
	return ids
}

// TileChar returns the legend character for a tile key, or ' ' when the
// theme has no such tile.
func (t Theme) TileChar(key string) rune {
	def, ok := t.Tiles[key]
	if !ok || def.Char == "" {
		return ' '
	}
	return []rune(def.Char)[0]
}

// TileForChar returns the tile key for a legend character.
func (t Theme) TileForChar(ch rune) (string, bool) {
	for key, def := range t.Tiles {
		if def.Char != "" && []rune(def.Char)[0] == ch {
			return key, true
		}
	}
	return "", false
}

// Legend renders a human-readable character legend for the theme, one tile
// per line, sorted by tile key.
func (t Theme) Legend() string {
	keys := make([]string, 0, len(t.Tiles))
	for key := range t.Tiles {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	fmt.Fprintf(&b, "Theme: %s\n", t.Name)
	for _, key := range keys {
		fmt.Fprintf(&b, "  %c  %s\n", t.TileChar(key), key)
	}
	return b.String()
}

// ParseGrid converts a newline-separated grid string into a tile-key map.
// Unknown characters become empty strings.
func (t Theme) ParseGrid(grid string) [][]string {
	var rows [][]string
	for _, line := range strings.Split(strings.TrimRight(grid, "\n"), "\n") {
		row := make([]string, 0, len(line))
		for _, ch := range line {
			key, ok := t.TileForChar(ch)
			if !ok {
				key = ""
			}
			row = append(row, key)
		}
		rows = append(rows, row)
	}
	return rows
}

// RenderGrid converts a tile-key map back into a grid string.
func (t Theme) RenderGrid(tiles [][]string) string {
	var b strings.Builder
	for _, row := range tiles {
		for _, key := range row {
			if key == "" {
				b.WriteRune(' ')
				continue
			}
			b.WriteRune(t.TileChar(key))
		}
		b.WriteRune('\n')
	}
	return b.String()
}
