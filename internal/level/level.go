// Package level defines the flat level descriptor consumed by the export
// pipeline and the game runtime, plus the bridge that flattens the editor's
// scene graph into it.
//
// A level is the interchange form: objects carry quaternion rotations and
// asset paths instead of the editor's euler angles and object tree. Files on
// disk are pretty-printed JSON.
package level

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/morganbevy/editor/internal/scene"
	"github.com/morganbevy/editor/internal/spatial"
)

// Transform3D is a world transform with a quaternion rotation [x, y, z, w].
type Transform3D struct {
	Position [3]float32 `json:"position"`
	Rotation [4]float32 `json:"rotation"`
	Scale    [3]float32 `json:"scale"`
}

// GameObject is one placed object in a level.
type GameObject struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Transform Transform3D    `json:"transform"`
	Material  string         `json:"material,omitempty"`
	Mesh      string         `json:"mesh,omitempty"`
	Layer     string         `json:"layer"`
	Tags      []string       `json:"tags"`
	Metadata  map[string]any `json:"metadata"`
}

// Level is a complete level descriptor.
type Level struct {
	ID               string              `json:"id"`
	Name             string              `json:"name"`
	Objects          []GameObject        `json:"objects"`
	Layers           []string            `json:"layers"`
	GenerationSeed   *uint64             `json:"generation_seed,omitempty"`
	GenerationParams any                 `json:"generation_params,omitempty"`
	Bounds           spatial.BoundingBox `json:"bounds"`
}

// New creates an empty named level with a fresh id.
func New(name string) Level {
	return Level{
		ID:     uuid.Must(uuid.NewV7()).String(),
		Name:   name,
		Layers: []string{"Default"},
	}
}

// FromGraph flattens the scene graph into a level descriptor.
//
// Groups are organizational and carry no mesh, so only mesh and light
// objects are emitted. Euler rotations become quaternions, objects are
// ordered by id (creation order under UUIDv7), and the level bounds are the
// union of every object's scaled unit-cube bounds.
func FromGraph(g *scene.Graph, name string) Level {
	lvl := New(name)

	layers := map[string]bool{"Default": true}
	first := true
	for _, obj := range g.Objects() {
		if obj.Kind == scene.KindGroup {
			continue
		}

		material := ""
		if obj.Material != nil {
			material = obj.Material.Name
		}
		box := spatial.FromPositionScale(obj.Transform.Position, obj.Transform.Scale)
		if first {
			lvl.Bounds = box
			first = false
		} else {
			lvl.Bounds = lvl.Bounds.Union(box)
		}
		if !layers[obj.LayerID] {
			layers[obj.LayerID] = true
			lvl.Layers = append(lvl.Layers, obj.LayerID)
		}

		lvl.Objects = append(lvl.Objects, GameObject{
			ID:        obj.ID,
			Name:      obj.Name,
			Transform: Transform3D{
				Position: obj.Transform.Position,
				Rotation: EulerToQuaternion(obj.Transform.Rotation),
				Scale:    obj.Transform.Scale,
			},
			Material: material,
			Mesh:     obj.MeshType,
			Layer:    obj.LayerID,
			Tags:     []string{string(obj.Kind)},
			Metadata: map[string]any{},
		})
	}
	return lvl
}

// Save writes the level as pretty-printed JSON.
func Save(lvl Level, path string) error {
	data, err := json.MarshalIndent(lvl, "", "  ")
	if err != nil {
		return fmt.Errorf("serialize level: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write level file: %w", err)
	}
	return nil
}

// Load reads a level from a JSON file written by Save (or by hand).
func Load(path string) (Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Level{}, fmt.Errorf("read level file: %w", err)
	}
	var lvl Level
	if err := json.Unmarshal(data, &lvl); err != nil {
		return Level{}, fmt.Errorf("parse level file: %w", err)
	}
	return lvl, nil
}
