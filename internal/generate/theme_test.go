package generate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemes_AllBuiltinsPresent(t *testing.T) {
	assert.Equal(t, []string{"castle", "dungeon", "office", "scifi"}, ThemeIDs())

	themes, err := Themes()
	require.NoError(t, err)
	for _, theme := range themes {
		assert.NotEmpty(t, theme.Name, "theme %s has no name", theme.ID)
		for _, key := range []string{"floor", "wall", "corridor", "door"} {
			def, ok := theme.Tiles[key]
			require.True(t, ok, "theme %s is missing tile %q", theme.ID, key)
			assert.NotEmpty(t, def.Char, "theme %s tile %q has no legend char", theme.ID, key)
			assert.NotEmpty(t, def.Mesh, "theme %s tile %q has no mesh", theme.ID, key)
			assert.NotEmpty(t, def.Material, "theme %s tile %q has no material", theme.ID, key)
		}
	}
}

func TestThemeByID(t *testing.T) {
	theme, err := ThemeByID("dungeon")
	require.NoError(t, err)
	assert.Equal(t, "dungeon", theme.ID)

	_, err = ThemeByID("vaporwave")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "theme not found: vaporwave")
}

func TestTheme_TileCharRoundTrip(t *testing.T) {
	theme, err := ThemeByID("dungeon")
	require.NoError(t, err)

	for key := range theme.Tiles {
		ch := theme.TileChar(key)
		require.NotEqual(t, ' ', ch, "tile %q has no char", key)

		back, ok := theme.TileForChar(ch)
		require.True(t, ok)
		assert.Equal(t, key, back)
	}

	assert.Equal(t, ' ', theme.TileChar("no-such-tile"))
	_, ok := theme.TileForChar('?')
	assert.False(t, ok)
}

func TestTheme_ParseRenderGridRoundTrip(t *testing.T) {
	theme, err := ThemeByID("dungeon")
	require.NoError(t, err)

	grid := "###\n#.#\n#+#\n"
	tiles := theme.ParseGrid(grid)
	require.Len(t, tiles, 3)
	assert.Equal(t, []string{"wall", "floor", "wall"}, tiles[1])
	assert.Equal(t, "door", tiles[2][1])

	assert.Equal(t, grid, theme.RenderGrid(tiles))
}

func TestTheme_ParseGridUnknownChars(t *testing.T) {
	theme, err := ThemeByID("office")
	require.NoError(t, err)

	tiles := theme.ParseGrid("#?#")
	require.Len(t, tiles, 1)
	assert.Equal(t, []string{"wall", "", "wall"}, tiles[0])

	assert.Equal(t, "# #\n", theme.RenderGrid(tiles))
}

func TestTheme_Legend(t *testing.T) {
	theme, err := ThemeByID("dungeon")
	require.NoError(t, err)

	legend := theme.Legend()
	assert.Contains(t, legend, "Theme: ")
	assert.Contains(t, legend, "#  wall")
	assert.Contains(t, legend, ".  floor")
}
