package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestGraph(t *testing.T, ids ...string) *Graph {
	t.Helper()
	return New(WithIDGenerator(NewFixedIDs(ids...)))
}

func TestAddObject_Defaults(t *testing.T) {
	g := newTestGraph(t, "obj-1")

	id, err := g.AddObject(KindMesh, Vec3{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "obj-1", id)

	obj, err := g.Object(id)
	require.NoError(t, err)
	assert.Equal(t, "mesh_1", obj.Name)
	assert.Equal(t, KindMesh, obj.Kind)
	assert.Equal(t, Vec3{1, 2, 3}, obj.Transform.Position)
	assert.Equal(t, Vec3{0, 0, 0}, obj.Transform.Rotation)
	assert.Equal(t, Vec3{1, 1, 1}, obj.Transform.Scale)
	assert.True(t, obj.Visible)
	assert.False(t, obj.Locked)
	assert.Equal(t, "Default", obj.LayerID)
}

func TestAddObject_NameSequencePerKind(t *testing.T) {
	g := newTestGraph(t, "a", "b", "c")

	for _, kind := range []Kind{KindMesh, KindMesh, KindLight} {
		_, err := g.AddObject(kind, Vec3{})
		require.NoError(t, err)
	}

	objA, _ := g.Object("a")
	objB, _ := g.Object("b")
	objC, _ := g.Object("c")
	assert.Equal(t, "mesh_1", objA.Name)
	assert.Equal(t, "mesh_2", objB.Name)
	assert.Equal(t, "light_1", objC.Name)
}

func TestAddObjectWithID_RejectsDuplicate(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.AddObjectWithID("obj-1", KindMesh, Vec3{})
	require.NoError(t, err)

	_, err = g.AddObjectWithID("obj-1", KindLight, Vec3{})
	require.Error(t, err)
	var sceneErr *Error
	require.ErrorAs(t, err, &sceneErr)
	assert.Equal(t, ErrCodeDuplicateID, sceneErr.Code)
}

func TestObject_ReturnsCopy(t *testing.T) {
	g := newTestGraph(t, "obj-1")
	id, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	obj, err := g.Object(id)
	require.NoError(t, err)
	obj.Name = "mutated"
	obj.Transform.Position = Vec3{9, 9, 9}

	fresh, err := g.Object(id)
	require.NoError(t, err)
	assert.Equal(t, "mesh_1", fresh.Name)
	assert.Equal(t, Vec3{0, 0, 0}, fresh.Transform.Position)
}

func TestObject_NotFound(t *testing.T) {
	g := newTestGraph(t)

	_, err := g.Object("missing")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}

func TestRemoveObject_ReparentsChildren(t *testing.T) {
	g := newTestGraph(t, "root", "mid", "leaf")
	_, err := g.AddObject(KindGroup, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindGroup, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	// Build the chain root → mid → leaf.
	g.objects["mid"].ParentID = "root"
	g.objects["root"].Children = []string{"mid"}
	g.objects["leaf"].ParentID = "mid"
	g.objects["mid"].Children = []string{"leaf"}

	require.NoError(t, g.RemoveObject("mid"))

	leaf, err := g.Object("leaf")
	require.NoError(t, err)
	assert.Equal(t, "root", leaf.ParentID)
	root, err := g.Object("root")
	require.NoError(t, err)
	assert.Equal(t, []string{"leaf"}, root.Children)
}

func TestRemoveObject_RootChildrenBecomeRoots(t *testing.T) {
	g := newTestGraph(t, "a", "b", "grp")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"a", "b"})
	require.NoError(t, err)

	require.NoError(t, g.RemoveObject("grp"))

	for _, id := range []string{"a", "b"} {
		obj, err := g.Object(id)
		require.NoError(t, err)
		assert.Empty(t, obj.ParentID, "child %s should be a root", id)
	}
}

func TestRemoveObject_NotFound(t *testing.T) {
	g := newTestGraph(t)
	err := g.RemoveObject("missing")
	assert.True(t, IsNotFound(err))
}

func TestRemoveObject_PrunesSelection(t *testing.T) {
	g := newTestGraph(t, "a", "b")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	g.SetSelection([]string{"a", "b"})

	require.NoError(t, g.RemoveObject("a"))
	assert.Equal(t, []string{"b"}, g.Selection())
}

func TestUpdateTransform_Idempotent(t *testing.T) {
	g := newTestGraph(t, "a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	next := Transform{Position: Vec3{1, 2, 3}, Rotation: Vec3{0, 90, 0}, Scale: Vec3{2, 2, 2}}
	require.NoError(t, g.UpdateTransform("a", next))
	require.NoError(t, g.UpdateTransform("a", next))

	obj, err := g.Object("a")
	require.NoError(t, err)
	assert.Equal(t, next, obj.Transform)
}

func TestUpdateMaterial_MergesPatch(t *testing.T) {
	g := newTestGraph(t, "a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	name := "stone"
	metallic := float32(0.8)
	require.NoError(t, g.UpdateMaterial("a", MaterialPatch{Name: &name, Metallic: &metallic}))

	roughness := float32(0.3)
	require.NoError(t, g.UpdateMaterial("a", MaterialPatch{Roughness: &roughness}))

	obj, err := g.Object("a")
	require.NoError(t, err)
	require.NotNil(t, obj.Material)
	assert.Equal(t, "stone", obj.Material.Name)
	assert.Equal(t, float32(0.8), obj.Material.Metallic)
	assert.Equal(t, float32(0.3), obj.Material.Roughness)
}

func TestDuplicateObjects_GrowsByExactlyK(t *testing.T) {
	g := newTestGraph(t, "a", "b", "dup-a", "dup-b")
	_, err := g.AddObject(KindMesh, Vec3{1, 0, 0})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{2, 0, 0})
	require.NoError(t, err)

	produced, err := g.DuplicateObjects([]string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"dup-a", "dup-b"}, produced)
	assert.Equal(t, 4, g.Len())

	dup, err := g.Object("dup-a")
	require.NoError(t, err)
	assert.Equal(t, "mesh_1 Copy", dup.Name)
	assert.Equal(t, Vec3{1, 0, 0}, dup.Transform.Position)
}

func TestDuplicateObjects_RemapsInSetChildren(t *testing.T) {
	g := newTestGraph(t, "a", "b", "grp", "dup-grp", "dup-a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"a", "b"})
	require.NoError(t, err)

	// Duplicate the group and one of its children. The duplicate group's
	// child list keeps only the duplicated child; "b" stays with the
	// original group.
	produced, err := g.DuplicateObjects([]string{"grp", "a"})
	require.NoError(t, err)

	dupGroup, err := g.Object(produced[0])
	require.NoError(t, err)
	assert.Equal(t, []string{"dup-a"}, dupGroup.Children)

	dupChild, err := g.Object(produced[1])
	require.NoError(t, err)
	assert.Equal(t, "dup-grp", dupChild.ParentID)
}

func TestDuplicateObjects_OutOfSetParentKept(t *testing.T) {
	g := newTestGraph(t, "a", "b", "grp", "dup-a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"a", "b"})
	require.NoError(t, err)

	produced, err := g.DuplicateObjects([]string{"a"})
	require.NoError(t, err)

	dup, err := g.Object(produced[0])
	require.NoError(t, err)
	assert.Equal(t, "grp", dup.ParentID)

	grp, err := g.Object("grp")
	require.NoError(t, err)
	assert.Contains(t, grp.Children, "dup-a")
}

func TestDuplicateObjects_EmptyInput(t *testing.T) {
	g := newTestGraph(t)
	_, err := g.DuplicateObjects(nil)
	require.Error(t, err)
	var sceneErr *Error
	require.ErrorAs(t, err, &sceneErr)
	assert.Equal(t, ErrCodeEmptyInput, sceneErr.Code)
}

func TestDuplicateObjects_UnknownSource(t *testing.T) {
	g := newTestGraph(t, "a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	_, err = g.DuplicateObjects([]string{"a", "missing"})
	assert.True(t, IsNotFound(err))
	assert.Equal(t, 1, g.Len(), "failed duplicate must not mutate the graph")
}

func TestGroupObjects_SameParentRequired(t *testing.T) {
	g := newTestGraph(t, "a", "b", "c", "grp")
	for i := 0; i < 3; i++ {
		_, err := g.AddObject(KindMesh, Vec3{})
		require.NoError(t, err)
	}
	_, err := g.GroupObjects([]string{"a"})
	require.NoError(t, err)

	// "a" is now under grp; "b" is still a root.
	_, err = g.GroupObjects([]string{"a", "b"})
	require.Error(t, err)
	assert.True(t, IsMixedParents(err))

	// Failed grouping must leave parents untouched.
	objA, _ := g.Object("a")
	assert.Equal(t, "grp", objA.ParentID)
	objB, _ := g.Object("b")
	assert.Empty(t, objB.ParentID)
}

func TestGroupObjects_ReparentsAndOrders(t *testing.T) {
	g := newTestGraph(t, "a", "b", "grp")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindLight, Vec3{})
	require.NoError(t, err)

	groupID, err := g.GroupObjects([]string{"b", "a"})
	require.NoError(t, err)

	grp, err := g.Object(groupID)
	require.NoError(t, err)
	assert.Equal(t, KindGroup, grp.Kind)
	assert.Equal(t, "group_1", grp.Name)
	assert.Equal(t, []string{"b", "a"}, grp.Children, "group preserves input order")

	for _, id := range []string{"a", "b"} {
		obj, err := g.Object(id)
		require.NoError(t, err)
		assert.Equal(t, groupID, obj.ParentID)
	}
}

func TestGroupObjects_InheritsFirstMemberLayer(t *testing.T) {
	g := newTestGraph(t, "a", "grp")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	g.objects["a"].LayerID = "Walls"

	groupID, err := g.GroupObjects([]string{"a"})
	require.NoError(t, err)

	grp, err := g.Object(groupID)
	require.NoError(t, err)
	assert.Equal(t, "Walls", grp.LayerID)
}

func TestUngroupObject_RestoresChildrenToFormerParent(t *testing.T) {
	g := newTestGraph(t, "a", "b", "inner", "outer")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"a", "b"})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"inner"})
	require.NoError(t, err)

	children, err := g.UngroupObject("inner")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, children)
	assert.False(t, g.Exists("inner"))

	for _, id := range children {
		obj, err := g.Object(id)
		require.NoError(t, err)
		assert.Equal(t, "outer", obj.ParentID)
	}
	outer, err := g.Object("outer")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"a", "b"}, outer.Children)
}

func TestUngroupObject_NotAGroup(t *testing.T) {
	g := newTestGraph(t, "a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	_, err = g.UngroupObject("a")
	require.Error(t, err)
	var sceneErr *Error
	require.ErrorAs(t, err, &sceneErr)
	assert.Equal(t, ErrCodeNotGroup, sceneErr.Code)
	assert.True(t, g.Exists("a"))
}

func TestSetSelection_FiltersAndDedupes(t *testing.T) {
	g := newTestGraph(t, "a", "b")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	g.SetSelection([]string{"b", "missing", "a", "b"})
	assert.Equal(t, []string{"b", "a"}, g.Selection())
}

func TestSelection_ReturnsCopy(t *testing.T) {
	g := newTestGraph(t, "a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	g.SetSelection([]string{"a"})

	sel := g.Selection()
	sel[0] = "mutated"
	assert.Equal(t, []string{"a"}, g.Selection())
}

func TestSnapshotRestore_ExactChildIndex(t *testing.T) {
	g := newTestGraph(t, "a", "b", "c", "grp")
	for i := 0; i < 3; i++ {
		_, err := g.AddObject(KindMesh, Vec3{})
		require.NoError(t, err)
	}
	_, err := g.GroupObjects([]string{"a", "b", "c"})
	require.NoError(t, err)

	snap, err := g.TakeSnapshot("b")
	require.NoError(t, err)
	assert.Equal(t, 1, snap.ChildIndex)

	require.NoError(t, g.RemoveObject("b"))
	grp, _ := g.Object("grp")
	assert.Equal(t, []string{"a", "c"}, grp.Children)

	require.NoError(t, g.Restore(snap))
	grp, _ = g.Object("grp")
	assert.Equal(t, []string{"a", "b", "c"}, grp.Children, "restore splices at the recorded index")

	obj, err := g.Object("b")
	require.NoError(t, err)
	assert.Equal(t, "grp", obj.ParentID)
}

func TestSnapshotRestore_RelinksChildren(t *testing.T) {
	g := newTestGraph(t, "a", "b", "grp")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)
	_, err = g.GroupObjects([]string{"a", "b"})
	require.NoError(t, err)

	snap, err := g.TakeSnapshot("grp")
	require.NoError(t, err)
	require.NoError(t, g.RemoveObject("grp"))

	// Children were reparented to roots by the removal.
	objA, _ := g.Object("a")
	assert.Empty(t, objA.ParentID)

	require.NoError(t, g.Restore(snap))
	for _, id := range []string{"a", "b"} {
		obj, err := g.Object(id)
		require.NoError(t, err)
		assert.Equal(t, "grp", obj.ParentID)
	}
	grp, err := g.Object("grp")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, grp.Children)
}

func TestRestore_RejectsLiveID(t *testing.T) {
	g := newTestGraph(t, "a")
	_, err := g.AddObject(KindMesh, Vec3{})
	require.NoError(t, err)

	snap, err := g.TakeSnapshot("a")
	require.NoError(t, err)

	err = g.Restore(snap)
	require.Error(t, err)
	var sceneErr *Error
	require.ErrorAs(t, err, &sceneErr)
	assert.Equal(t, ErrCodeDuplicateID, sceneErr.Code)
}

func TestObjects_OrderedByID(t *testing.T) {
	g := newTestGraph(t, "c", "a", "b")
	for i := 0; i < 3; i++ {
		_, err := g.AddObject(KindMesh, Vec3{})
		require.NoError(t, err)
	}

	objs := g.Objects()
	require.Len(t, objs, 3)
	assert.Equal(t, "a", objs[0].ID)
	assert.Equal(t, "b", objs[1].ID)
	assert.Equal(t, "c", objs[2].ID)
}
