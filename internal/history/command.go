package history

import (
	"fmt"
	"strings"

	"github.com/morganbevy/editor/internal/scene"
)

// Command is one reversible unit of edit history.
//
// Execute applies the forward effect; Undo applies the exact inverse,
// restoring the prior observable state. Description is a human-readable
// label for the history UI.
//
// The interface is sealed (unexported marker method): the variant set is
// closed within this package. See the package doc for the invariants every
// variant upholds.
type Command interface {
	Execute(g *scene.Graph) error
	Undo(g *scene.Graph) error
	Description() string

	isCommand()
}

// TransformCommand overwrites an object's transform and restores the old one
// on undo. Both transforms are captured at construction: the gesture
// coordinator reads them off the live object before and after the drag.
type TransformCommand struct {
	ObjectID     string
	OldTransform scene.Transform
	NewTransform scene.Transform
}

// NewTransform creates a transform command from an observed (old, new) pair.
func NewTransform(objectID string, oldT, newT scene.Transform) *TransformCommand {
	return &TransformCommand{ObjectID: objectID, OldTransform: oldT, NewTransform: newT}
}

func (c *TransformCommand) Execute(g *scene.Graph) error {
	return g.UpdateTransform(c.ObjectID, c.NewTransform)
}

func (c *TransformCommand) Undo(g *scene.Graph) error {
	return g.UpdateTransform(c.ObjectID, c.OldTransform)
}

func (c *TransformCommand) Description() string { return "Transform object" }
func (c *TransformCommand) isCommand()          {}

// CreateCommand adds a new object. The id minted by the first Execute is
// recorded and reused on every redo.
type CreateCommand struct {
	Kind     scene.Kind
	Position scene.Vec3

	createdID string
}

// NewCreate creates a command that will add an object of the given kind at
// the given position.
func NewCreate(kind scene.Kind, position scene.Vec3) *CreateCommand {
	return &CreateCommand{Kind: kind, Position: position}
}

func (c *CreateCommand) Execute(g *scene.Graph) error {
	id, err := g.AddObjectWithID(c.createdID, c.Kind, c.Position)
	if err != nil {
		return err
	}
	c.createdID = id
	return nil
}

func (c *CreateCommand) Undo(g *scene.Graph) error {
	return g.RemoveObject(c.createdID)
}

// CreatedID returns the id assigned by the first execution, or "" before it.
func (c *CreateCommand) CreatedID() string { return c.createdID }

func (c *CreateCommand) Description() string { return fmt.Sprintf("Create %s", c.Kind) }
func (c *CreateCommand) isCommand()          {}

// DeleteCommand removes an object. The full snapshot (including the child
// list and the position in the parent's child list) is captured at first
// execution, and undo reinserts it verbatim.
type DeleteCommand struct {
	ObjectID string

	snapshot *scene.Snapshot
}

// NewDelete creates a command that will delete the given object.
func NewDelete(objectID string) *DeleteCommand {
	return &DeleteCommand{ObjectID: objectID}
}

func (c *DeleteCommand) Execute(g *scene.Graph) error {
	if c.snapshot == nil {
		snap, err := g.TakeSnapshot(c.ObjectID)
		if err != nil {
			return err
		}
		c.snapshot = &snap
	}
	return g.RemoveObject(c.ObjectID)
}

func (c *DeleteCommand) Undo(g *scene.Graph) error {
	if c.snapshot == nil {
		return fmt.Errorf("delete %s: undo before execute", c.ObjectID)
	}
	return g.Restore(*c.snapshot)
}

func (c *DeleteCommand) Description() string { return "Delete object" }
func (c *DeleteCommand) isCommand()          {}

// DuplicateCommand deep-copies the source objects. Produced ids are recorded
// at first execution and reused on redo; undo removes them all.
type DuplicateCommand struct {
	SourceIDs []string

	producedIDs []string
}

// NewDuplicate creates a command that will duplicate the given objects.
func NewDuplicate(sourceIDs []string) *DuplicateCommand {
	return &DuplicateCommand{SourceIDs: append([]string(nil), sourceIDs...)}
}

func (c *DuplicateCommand) Execute(g *scene.Graph) error {
	ids, err := g.DuplicateObjectsWithIDs(c.SourceIDs, c.producedIDs)
	if err != nil {
		return err
	}
	c.producedIDs = ids
	return nil
}

func (c *DuplicateCommand) Undo(g *scene.Graph) error {
	// Reverse order so a duplicated parent is removed after its duplicated
	// children have already been detached from it.
	for i := len(c.producedIDs) - 1; i >= 0; i-- {
		if err := g.RemoveObject(c.producedIDs[i]); err != nil {
			return err
		}
	}
	return nil
}

// ProducedIDs returns the ids minted by the first execution.
func (c *DuplicateCommand) ProducedIDs() []string {
	return append([]string(nil), c.producedIDs...)
}

func (c *DuplicateCommand) Description() string {
	return fmt.Sprintf("Duplicate %d object(s)", len(c.SourceIDs))
}
func (c *DuplicateCommand) isCommand() {}

// SelectionCommand replaces the selection wholesale in both directions.
type SelectionCommand struct {
	OldSelection []string
	NewSelection []string
}

// NewSelection creates a selection command from the observed (old, new) pair.
func NewSelection(oldSel, newSel []string) *SelectionCommand {
	return &SelectionCommand{
		OldSelection: append([]string(nil), oldSel...),
		NewSelection: append([]string(nil), newSel...),
	}
}

func (c *SelectionCommand) Execute(g *scene.Graph) error {
	g.SetSelection(c.NewSelection)
	return nil
}

func (c *SelectionCommand) Undo(g *scene.Graph) error {
	g.SetSelection(c.OldSelection)
	return nil
}

func (c *SelectionCommand) Description() string { return "Change selection" }
func (c *SelectionCommand) isCommand()          {}

// GroupCommand groups the given siblings under a new group object. The group
// id from the first execution is reused on redo; undo ungroups it.
type GroupCommand struct {
	ObjectIDs []string

	groupID string
}

// NewGroup creates a command that will group the given objects.
func NewGroup(objectIDs []string) *GroupCommand {
	return &GroupCommand{ObjectIDs: append([]string(nil), objectIDs...)}
}

func (c *GroupCommand) Execute(g *scene.Graph) error {
	id, err := g.GroupObjectsWithID(c.groupID, c.ObjectIDs)
	if err != nil {
		return err
	}
	c.groupID = id
	return nil
}

func (c *GroupCommand) Undo(g *scene.Graph) error {
	_, err := g.UngroupObject(c.groupID)
	return err
}

// GroupID returns the group id assigned by the first execution.
func (c *GroupCommand) GroupID() string { return c.groupID }

func (c *GroupCommand) Description() string {
	return fmt.Sprintf("Group %d object(s)", len(c.ObjectIDs))
}
func (c *GroupCommand) isCommand() {}

// UngroupCommand dissolves a group. The group record and its child ids are
// snapshotted at first execution; undo reconstructs the group, reparents the
// children back to it, and selects the group.
type UngroupCommand struct {
	GroupID string

	snapshot *scene.Snapshot
}

// NewUngroup creates a command that will dissolve the given group.
func NewUngroup(groupID string) *UngroupCommand {
	return &UngroupCommand{GroupID: groupID}
}

func (c *UngroupCommand) Execute(g *scene.Graph) error {
	if c.snapshot == nil {
		snap, err := g.TakeSnapshot(c.GroupID)
		if err != nil {
			return err
		}
		if snap.Object.Kind != scene.KindGroup {
			return scene.NewNotGroup(c.GroupID)
		}
		c.snapshot = &snap
	}
	_, err := g.UngroupObject(c.GroupID)
	return err
}

func (c *UngroupCommand) Undo(g *scene.Graph) error {
	if c.snapshot == nil {
		return fmt.Errorf("ungroup %s: undo before execute", c.GroupID)
	}
	if err := g.Restore(*c.snapshot); err != nil {
		return err
	}
	g.SetSelection([]string{c.GroupID})
	return nil
}

func (c *UngroupCommand) Description() string { return "Ungroup" }
func (c *UngroupCommand) isCommand()          {}

// CompositeCommand executes sub-commands in order and undoes them in strict
// reverse order. Reverse order is mandatory, not cosmetic: later
// sub-commands may depend on state produced by earlier ones.
type CompositeCommand struct {
	commands []Command
	label    string
}

// NewComposite creates an atomic grouping of sub-commands. label may be
// empty, in which case the sub-command descriptions are joined.
func NewComposite(label string, commands ...Command) *CompositeCommand {
	return &CompositeCommand{commands: commands, label: label}
}

// Execute runs each sub-command in order. If one fails, the already-executed
// prefix is undone in reverse so the composite is all-or-nothing.
func (c *CompositeCommand) Execute(g *scene.Graph) error {
	for i, cmd := range c.commands {
		if err := cmd.Execute(g); err != nil {
			for j := i - 1; j >= 0; j-- {
				if uerr := c.commands[j].Undo(g); uerr != nil {
					return fmt.Errorf("composite rollback failed after %q: %w", cmd.Description(), uerr)
				}
			}
			return fmt.Errorf("composite step %d (%s): %w", i, cmd.Description(), err)
		}
	}
	return nil
}

func (c *CompositeCommand) Undo(g *scene.Graph) error {
	for i := len(c.commands) - 1; i >= 0; i-- {
		if err := c.commands[i].Undo(g); err != nil {
			return fmt.Errorf("composite undo step %d (%s): %w", i, c.commands[i].Description(), err)
		}
	}
	return nil
}

func (c *CompositeCommand) Description() string {
	if c.label != "" {
		return c.label
	}
	parts := make([]string, len(c.commands))
	for i, cmd := range c.commands {
		parts[i] = cmd.Description()
	}
	return strings.Join(parts, ", ")
}
func (c *CompositeCommand) isCommand() {}
