// Package spatial provides axis-aligned bounding boxes and a flat spatial
// index over object ids, backing the editor's viewport picking and the
// level exporter's bounds computation.
package spatial

import "github.com/chewxy/math32"

// BoundingBox is an axis-aligned box in world space.
type BoundingBox struct {
	Min [3]float32 `json:"min"`
	Max [3]float32 `json:"max"`
}

// FromPositionScale derives a box from an object's position and scale:
// the unit cube scaled then centered on the position.
func FromPositionScale(position, scale [3]float32) BoundingBox {
	var b BoundingBox
	for i := 0; i < 3; i++ {
		half := scale[i] * 0.5
		b.Min[i] = position[i] - half
		b.Max[i] = position[i] + half
	}
	return b
}

// Intersects reports whether the two boxes overlap (touching counts).
func (b BoundingBox) Intersects(o BoundingBox) bool {
	return b.Max[0] >= o.Min[0] && b.Min[0] <= o.Max[0] &&
		b.Max[1] >= o.Min[1] && b.Min[1] <= o.Max[1] &&
		b.Max[2] >= o.Min[2] && b.Min[2] <= o.Max[2]
}

// Union returns the smallest box containing both inputs.
func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	var u BoundingBox
	for i := 0; i < 3; i++ {
		u.Min[i] = math32.Min(b.Min[i], o.Min[i])
		u.Max[i] = math32.Max(b.Max[i], o.Max[i])
	}
	return u
}

// Index maps object ids to their world-space bounds.
//
// The index is a plain map scan, not a tree: editor levels top out at a few
// thousand objects and a linear intersect test is well under frame budget.
type Index struct {
	objects map[string]BoundingBox
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{objects: make(map[string]BoundingBox)}
}

// Insert records the bounds derived from position and scale. Inserting an
// existing id overwrites it, so Insert doubles as Update.
func (x *Index) Insert(id string, position, scale [3]float32) {
	x.objects[id] = FromPositionScale(position, scale)
}

// Remove drops the id from the index. Unknown ids are ignored.
func (x *Index) Remove(id string) {
	delete(x.objects, id)
}

// Clear empties the index.
func (x *Index) Clear() {
	x.objects = make(map[string]BoundingBox)
}

// Len returns the number of indexed objects.
func (x *Index) Len() int { return len(x.objects) }

// QueryBounds returns the ids of all objects whose bounds intersect the
// query box. Order is unspecified.
func (x *Index) QueryBounds(bounds BoundingBox) []string {
	var results []string
	for id, b := range x.objects {
		if bounds.Intersects(b) {
			results = append(results, id)
		}
	}
	return results
}
