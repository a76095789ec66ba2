package level

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/morganbevy/editor/internal/scene"
)

func TestFromGraph_SkipsGroups(t *testing.T) {
	g := scene.New(scene.WithIDGenerator(scene.NewFixedIDs("a", "b", "grp")))
	_, err := g.AddObject(scene.KindMesh, scene.Vec3{0, 0, 0})
	require.NoError(t, err)
	_, err = g.AddObject(scene.KindLight, scene.Vec3{4, 2, 0})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"a", "b"})
	require.NoError(t, err)

	lvl := FromGraph(g, "Test Level")

	assert.Equal(t, "Test Level", lvl.Name)
	assert.NotEmpty(t, lvl.ID)
	require.Len(t, lvl.Objects, 2, "groups carry no mesh and are not emitted")
	assert.Equal(t, "a", lvl.Objects[0].ID)
	assert.Equal(t, "b", lvl.Objects[1].ID)
	assert.Equal(t, []string{"mesh"}, lvl.Objects[0].Tags)
	assert.Equal(t, []string{"light"}, lvl.Objects[1].Tags)
}

func TestFromGraph_IdentityRotationBecomesIdentityQuaternion(t *testing.T) {
	g := scene.New(scene.WithIDGenerator(scene.NewFixedIDs("a")))
	_, err := g.AddObject(scene.KindMesh, scene.Vec3{1, 2, 3})
	require.NoError(t, err)

	lvl := FromGraph(g, "L")

	require.Len(t, lvl.Objects, 1)
	tr := lvl.Objects[0].Transform
	assert.Equal(t, [3]float32{1, 2, 3}, tr.Position)
	assert.Equal(t, [4]float32{0, 0, 0, 1}, tr.Rotation)
	assert.Equal(t, [3]float32{1, 1, 1}, tr.Scale)
}

func TestFromGraph_MaterialAndLayers(t *testing.T) {
	g := scene.New(scene.WithIDGenerator(scene.NewFixedIDs("a", "b")))
	_, err := g.AddObject(scene.KindMesh, scene.Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(scene.KindMesh, scene.Vec3{})
	require.NoError(t, err)

	name := "stone"
	require.NoError(t, g.UpdateMaterial("a", scene.MaterialPatch{Name: &name}))

	// Move "b" onto a custom layer through the graph internals the panel
	// would use.
	lvl := FromGraph(g, "L")
	require.Len(t, lvl.Objects, 2)
	assert.Equal(t, "stone", lvl.Objects[0].Material)
	assert.Empty(t, lvl.Objects[1].Material)
	assert.Equal(t, []string{"Default"}, lvl.Layers)
}

func TestFromGraph_BoundsUnionAllObjects(t *testing.T) {
	g := scene.New(scene.WithIDGenerator(scene.NewFixedIDs("a", "b")))
	_, err := g.AddObject(scene.KindMesh, scene.Vec3{0, 0, 0})
	require.NoError(t, err)
	_, err = g.AddObject(scene.KindMesh, scene.Vec3{10, 0, 0})
	require.NoError(t, err)

	lvl := FromGraph(g, "L")

	assert.Equal(t, [3]float32{-0.5, -0.5, -0.5}, lvl.Bounds.Min)
	assert.Equal(t, [3]float32{10.5, 0.5, 0.5}, lvl.Bounds.Max)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	seed := uint64(42)
	lvl := New("Round Trip")
	lvl.GenerationSeed = &seed
	lvl.Objects = []GameObject{{
		ID:   "obj-1",
		Name: "wall_3",
		Transform: Transform3D{
			Position: [3]float32{1, 2, 3},
			Rotation: [4]float32{0, 0, 0, 1},
			Scale:    [3]float32{1, 2, 1},
		},
		Mesh:     "meshes/dungeon/wall.glb",
		Material: "materials/dungeon/wall.mat",
		Layer:    "Walls",
		Tags:     []string{"wall", "collision"},
		Metadata: map[string]any{},
	}}
	lvl.Layers = append(lvl.Layers, "Walls")

	path := filepath.Join(t.TempDir(), "level.json")
	require.NoError(t, Save(lvl, path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, lvl.ID, loaded.ID)
	assert.Equal(t, lvl.Name, loaded.Name)
	require.NotNil(t, loaded.GenerationSeed)
	assert.Equal(t, uint64(42), *loaded.GenerationSeed)
	require.Len(t, loaded.Objects, 1)
	assert.Equal(t, lvl.Objects[0].Transform, loaded.Objects[0].Transform)
	assert.Equal(t, lvl.Objects[0].Mesh, loaded.Objects[0].Mesh)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoad_MalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
