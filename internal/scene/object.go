package scene

import "github.com/jinzhu/copier"

// Kind distinguishes the object categories the editor manipulates.
type Kind string

const (
	// KindMesh is a renderable mesh instance.
	KindMesh Kind = "mesh"
	// KindLight is a light source.
	KindLight Kind = "light"
	// KindGroup is a container; only groups may have children.
	KindGroup Kind = "group"
)

// Vec3 is a 3-component float vector (position, euler rotation, or scale).
type Vec3 [3]float32

// Transform is the full local transform of an object.
// Rotation is euler angles in radians; exporters convert to quaternions.
type Transform struct {
	Position Vec3
	Rotation Vec3
	Scale    Vec3
}

// IdentityTransform returns the default transform for new objects:
// origin position, identity rotation, unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: Vec3{1, 1, 1}}
}

// Material holds the surface parameters of a mesh object.
type Material struct {
	Name      string
	Color     [4]float32
	Metallic  float32
	Roughness float32
	Texture   string
}

// MaterialPatch is a partial material update. Nil fields are left untouched,
// so UpdateMaterial merges into the existing record instead of replacing it.
type MaterialPatch struct {
	Name      *string
	Color     *[4]float32
	Metallic  *float32
	Roughness *float32
	Texture   *string
}

// apply merges the non-nil patch fields into m.
func (p MaterialPatch) apply(m *Material) {
	if p.Name != nil {
		m.Name = *p.Name
	}
	if p.Color != nil {
		m.Color = *p.Color
	}
	if p.Metallic != nil {
		m.Metallic = *p.Metallic
	}
	if p.Roughness != nil {
		m.Roughness = *p.Roughness
	}
	if p.Texture != nil {
		m.Texture = *p.Texture
	}
}

// Object is a single entry in the scene graph.
//
// ID is globally unique and immutable once assigned. ParentID is a
// back-reference, not an ownership edge: the Graph's object map is the only
// owner. Children is an ordered list of ids and is non-empty only for
// KindGroup objects.
type Object struct {
	ID        string
	Name      string
	Kind      Kind
	Transform Transform
	Visible   bool
	Locked    bool
	LayerID   string
	ParentID  string
	Children  []string
	MeshType  string
	Material  *Material
}

// Clone returns a deep copy of the object. The copy shares no mutable state
// with the original (Children slice and Material record are duplicated).
func (o *Object) Clone() *Object {
	var dst Object
	// copier never fails for a concrete src/dst pair of the same type.
	if err := copier.CopyWithOption(&dst, o, copier.Option{DeepCopy: true}); err != nil {
		panic("scene: object clone failed: " + err.Error())
	}
	return &dst
}

// Snapshot is an immutable copy of an object captured for later exact
// restoration, together with its position in the parent's child list.
type Snapshot struct {
	Object     Object
	ChildIndex int
}
