package scene

import (
	"fmt"
	"sort"
)

// Graph owns the id→Object mapping and the ordered selection.
//
// The zero value is not usable; construct with New. The graph is exclusively
// owned by the editor's control thread and is not safe for concurrent
// mutation (see package doc).
type Graph struct {
	ids       IDGenerator
	objects   map[string]*Object
	selection []string
	nameSeq   map[Kind]int
}

// Option configures a Graph.
type Option func(*Graph)

// WithIDGenerator sets the id generator. Tests use NewFixedIDs for
// deterministic ids; the default is UUIDv7Generator.
func WithIDGenerator(gen IDGenerator) Option {
	return func(g *Graph) {
		g.ids = gen
	}
}

// New creates an empty scene graph.
func New(opts ...Option) *Graph {
	g := &Graph{
		ids:     UUIDv7Generator{},
		objects: make(map[string]*Object),
		nameSeq: make(map[Kind]int),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Len returns the number of live objects.
func (g *Graph) Len() int {
	return len(g.objects)
}

// Exists reports whether an object with the given id is live.
func (g *Graph) Exists(id string) bool {
	_, ok := g.objects[id]
	return ok
}

// Object returns a deep copy of the object with the given id.
// External readers get copies so the graph stays the sole writer.
func (g *Graph) Object(id string) (Object, error) {
	obj, err := g.get(id)
	if err != nil {
		return Object{}, err
	}
	return *obj.Clone(), nil
}

// Objects returns deep copies of all live objects, ordered by id.
// UUIDv7 ids are time-sortable, so this is creation order in production.
func (g *Graph) Objects() []Object {
	out := make([]Object, 0, len(g.objects))
	for _, obj := range g.objects {
		out = append(out, *obj.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// AddObject mints a fresh id and creates an object of the given kind at the
// given position, with identity rotation and unit scale.
func (g *Graph) AddObject(kind Kind, position Vec3) (string, error) {
	return g.AddObjectWithID("", kind, position)
}

// AddObjectWithID creates an object under a caller-supplied id, minting one
// when id is empty. The explicit-id path exists so a redo of a create
// command reinstates the exact id minted by its first execution; other
// history entries may reference that id.
func (g *Graph) AddObjectWithID(id string, kind Kind, position Vec3) (string, error) {
	if id == "" {
		id = g.ids.Generate()
	}
	if g.Exists(id) {
		return "", NewDuplicateID(id)
	}

	g.nameSeq[kind]++
	tr := IdentityTransform()
	tr.Position = position

	g.objects[id] = &Object{
		ID:        id,
		Name:      fmt.Sprintf("%s_%d", kind, g.nameSeq[kind]),
		Kind:      kind,
		Transform: tr,
		Visible:   true,
		LayerID:   "Default",
	}
	return id, nil
}

// RemoveObject deletes the record and detaches it from its parent's child
// list. Children are reparented to the removed object's former parent (or
// become roots), so no object is ever left with a dangling ParentID.
func (g *Graph) RemoveObject(id string) error {
	obj, err := g.get(id)
	if err != nil {
		return err
	}

	parent := g.objects[obj.ParentID] // nil for roots
	if parent != nil {
		parent.Children = removeID(parent.Children, id)
	}

	for _, cid := range obj.Children {
		child := g.objects[cid]
		if child == nil {
			continue
		}
		child.ParentID = obj.ParentID
		if parent != nil {
			parent.Children = append(parent.Children, cid)
		}
	}

	delete(g.objects, id)
	g.pruneSelection()
	return nil
}

// UpdateTransform unconditionally overwrites the object's transform.
// Idempotent: safe to call repeatedly with the same value, which is what
// makes the gesture coordinator's redundant re-apply on commit harmless.
func (g *Graph) UpdateTransform(id string, t Transform) error {
	obj, err := g.get(id)
	if err != nil {
		return err
	}
	obj.Transform = t
	return nil
}

// UpdateMaterial merges the patch into the object's material record,
// creating the record if the object had none.
func (g *Graph) UpdateMaterial(id string, patch MaterialPatch) error {
	obj, err := g.get(id)
	if err != nil {
		return err
	}
	if obj.Material == nil {
		obj.Material = &Material{}
	}
	patch.apply(obj.Material)
	return nil
}

// DuplicateObjects deep-copies each named object under a freshly minted id
// and returns the new ids in input order.
func (g *Graph) DuplicateObjects(ids []string) ([]string, error) {
	return g.DuplicateObjectsWithIDs(ids, nil)
}

// DuplicateObjectsWithIDs duplicates with caller-supplied ids (one per
// source, in order), minting fresh ids when newIDs is nil. The explicit-id
// path keeps ids stable across redo.
//
// Copies preserve transform and material. Child references are remapped
// when the child is also in the input set and dropped otherwise; parents
// outside the set keep the parent link, so a duplicate lands next to its
// source. Duplicating k objects grows the graph by exactly k.
func (g *Graph) DuplicateObjectsWithIDs(ids, newIDs []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, NewEmptyInput("DuplicateObjects")
	}
	if newIDs != nil && len(newIDs) != len(ids) {
		return nil, fmt.Errorf("duplicate: %d source ids but %d preset ids", len(ids), len(newIDs))
	}
	for _, id := range ids {
		if !g.Exists(id) {
			return nil, NewNotFound(id)
		}
	}
	for _, nid := range newIDs {
		if g.Exists(nid) {
			return nil, NewDuplicateID(nid)
		}
	}

	remap := make(map[string]string, len(ids))
	produced := make([]string, len(ids))
	for i, id := range ids {
		nid := ""
		if newIDs != nil {
			nid = newIDs[i]
		} else {
			nid = g.ids.Generate()
		}
		remap[id] = nid
		produced[i] = nid
	}

	for _, id := range ids {
		src := g.objects[id]
		dup := src.Clone()
		dup.ID = remap[id]
		dup.Name = src.Name + " Copy"

		dup.Children = nil
		for _, cid := range src.Children {
			if r, ok := remap[cid]; ok {
				dup.Children = append(dup.Children, r)
			}
		}

		if r, ok := remap[src.ParentID]; ok {
			dup.ParentID = r
		} else if src.ParentID != "" {
			g.objects[src.ParentID].Children = append(g.objects[src.ParentID].Children, dup.ID)
		}

		g.objects[dup.ID] = dup
	}
	return produced, nil
}

// GroupObjects creates a new group whose children are the given ids, in
// order, and reparents each of them to the group. All inputs must currently
// share the same parent; mixed-parent input fails before any mutation.
func (g *Graph) GroupObjects(ids []string) (string, error) {
	return g.GroupObjectsWithID("", ids)
}

// GroupObjectsWithID groups under a caller-supplied group id, minting one
// when empty (the redo path reuses the id from the first execution).
func (g *Graph) GroupObjectsWithID(groupID string, ids []string) (string, error) {
	if len(ids) == 0 {
		return "", NewEmptyInput("GroupObjects")
	}
	if g.Exists(groupID) {
		return "", NewDuplicateID(groupID)
	}
	first, err := g.get(ids[0])
	if err != nil {
		return "", err
	}
	parentID := first.ParentID
	for _, id := range ids[1:] {
		obj, err := g.get(id)
		if err != nil {
			return "", err
		}
		if obj.ParentID != parentID {
			return "", NewMixedParents(id)
		}
	}

	if groupID == "" {
		groupID = g.ids.Generate()
	}
	g.nameSeq[KindGroup]++
	group := &Object{
		ID:        groupID,
		Name:      fmt.Sprintf("%s_%d", KindGroup, g.nameSeq[KindGroup]),
		Kind:      KindGroup,
		Transform: IdentityTransform(),
		Visible:   true,
		LayerID:   first.LayerID,
		ParentID:  parentID,
		Children:  append([]string(nil), ids...),
	}

	parent := g.objects[parentID]
	for _, id := range ids {
		obj := g.objects[id]
		if parent != nil {
			parent.Children = removeID(parent.Children, id)
		}
		obj.ParentID = groupID
	}
	if parent != nil {
		parent.Children = append(parent.Children, groupID)
	}
	g.objects[groupID] = group
	return groupID, nil
}

// UngroupObject removes the group record and reparents its children to the
// group's former parent. Returns the child ids in their group order.
func (g *Graph) UngroupObject(groupID string) ([]string, error) {
	group, err := g.get(groupID)
	if err != nil {
		return nil, err
	}
	if group.Kind != KindGroup {
		return nil, NewNotGroup(groupID)
	}

	children := append([]string(nil), group.Children...)
	parent := g.objects[group.ParentID]
	if parent != nil {
		parent.Children = removeID(parent.Children, groupID)
	}
	for _, cid := range children {
		child := g.objects[cid]
		if child == nil {
			continue
		}
		child.ParentID = group.ParentID
		if parent != nil {
			parent.Children = append(parent.Children, cid)
		}
	}

	delete(g.objects, groupID)
	g.pruneSelection()
	return children, nil
}

// SetSelection replaces the selection wholesale, filtered to existing ids.
// Order is preserved and duplicates are dropped.
func (g *Graph) SetSelection(ids []string) {
	sel := make([]string, 0, len(ids))
	seen := make(map[string]bool, len(ids))
	for _, id := range ids {
		if g.Exists(id) && !seen[id] {
			sel = append(sel, id)
			seen[id] = true
		}
	}
	g.selection = sel
}

// Selection returns a copy of the ordered selection.
func (g *Graph) Selection() []string {
	return append([]string(nil), g.selection...)
}

// TakeSnapshot captures an immutable deep copy of the object plus its
// position in the parent's child list, for later exact restoration via
// Restore. Delete and ungroup commands call this at first execution.
func (g *Graph) TakeSnapshot(id string) (Snapshot, error) {
	obj, err := g.get(id)
	if err != nil {
		return Snapshot{}, err
	}
	snap := Snapshot{Object: *obj.Clone(), ChildIndex: -1}
	if parent := g.objects[obj.ParentID]; parent != nil {
		for i, cid := range parent.Children {
			if cid == id {
				snap.ChildIndex = i
				break
			}
		}
	}
	return snap, nil
}

// Restore reinserts a snapshotted object verbatim: the record comes back
// under its original id, is spliced into its parent's child list at the
// recorded index, and every child listed in the snapshot is reparented back
// to it (undoing the reparenting RemoveObject or UngroupObject performed).
func (g *Graph) Restore(snap Snapshot) error {
	id := snap.Object.ID
	if g.Exists(id) {
		return NewDuplicateID(id)
	}

	obj := snap.Object.Clone()

	if obj.ParentID != "" {
		parent, err := g.get(obj.ParentID)
		if err != nil {
			return err
		}
		idx := snap.ChildIndex
		if idx < 0 || idx > len(parent.Children) {
			idx = len(parent.Children)
		}
		parent.Children = append(parent.Children, "")
		copy(parent.Children[idx+1:], parent.Children[idx:])
		parent.Children[idx] = id
	}

	for _, cid := range obj.Children {
		child, err := g.get(cid)
		if err != nil {
			return err
		}
		if cur := g.objects[child.ParentID]; cur != nil {
			cur.Children = removeID(cur.Children, cid)
		}
		child.ParentID = id
	}

	g.objects[id] = obj
	return nil
}

func (g *Graph) get(id string) (*Object, error) {
	obj, ok := g.objects[id]
	if !ok {
		return nil, NewNotFound(id)
	}
	return obj, nil
}

// pruneSelection drops ids that no longer exist, keeping order.
func (g *Graph) pruneSelection() {
	sel := g.selection[:0]
	for _, id := range g.selection {
		if g.Exists(id) {
			sel = append(sel, id)
		}
	}
	g.selection = sel
}

func removeID(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i], ids[i+1:]...)
		}
	}
	return ids
}
