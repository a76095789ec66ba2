// Package gesture bridges continuous pointer manipulation into discrete
// history entries.
//
// A gesture is one press→move→release interaction. During the drag every
// intermediate transform is written straight through the scene graph,
// bypassing the command stack, so the viewport gets immediate feedback; on
// release the whole drag collapses into exactly one Transform command built
// from the (start, end) pair. The intermediate writes are never individually
// undoable.
package gesture

import (
	"errors"

	"github.com/morganbevy/editor/internal/history"
	"github.com/morganbevy/editor/internal/scene"
)

// ErrGestureActive is returned by Begin while a gesture is in progress.
var ErrGestureActive = errors.New("gesture already in progress")

// ErrNoGesture is returned by Update, End and Cancel with no gesture active.
var ErrNoGesture = errors.New("no gesture in progress")

// Coordinator turns one drag into at most one committed command.
//
// Like the graph it drives, a Coordinator belongs to the editor's control
// thread; it holds no lock.
type Coordinator struct {
	graph *scene.Graph
	stack *history.Stack

	objectID string
	start    scene.Transform
	active   bool
}

// NewCoordinator creates a coordinator over the given graph and history.
func NewCoordinator(g *scene.Graph, s *history.Stack) *Coordinator {
	return &Coordinator{graph: g, stack: s}
}

// Active reports whether a gesture is in progress.
func (c *Coordinator) Active() bool { return c.active }

// Begin starts a gesture on the given object, snapshotting its current
// transform as the undo target for the eventual command.
func (c *Coordinator) Begin(objectID string) error {
	if c.active {
		return ErrGestureActive
	}
	obj, err := c.graph.Object(objectID)
	if err != nil {
		return err
	}
	c.objectID = objectID
	c.start = obj.Transform
	c.active = true
	return nil
}

// Update applies an intermediate transform directly to the graph for live
// feedback. It does not touch the command stack.
func (c *Coordinator) Update(t scene.Transform) error {
	if !c.active {
		return ErrNoGesture
	}
	if err := c.graph.UpdateTransform(c.objectID, t); err != nil {
		// Object vanished mid-drag (deleted by a shortcut, say); the
		// gesture cannot commit anything meaningful anymore.
		c.reset()
		return err
	}
	return nil
}

// End commits the gesture. The object's current transform is read back and
// paired with the Begin snapshot into a single Transform command.
//
// The transform was already applied during the drag, so the command's
// Execute here re-applies a value the object already has; UpdateTransform is
// an unconditional set, making that redundant write harmless.
//
// A zero-net-change gesture (press-release without movement) commits
// nothing, so clicking an object never pollutes the history.
func (c *Coordinator) End() error {
	if !c.active {
		return ErrNoGesture
	}
	obj, err := c.graph.Object(c.objectID)
	if err != nil {
		c.reset()
		return err
	}
	start, id := c.start, c.objectID
	c.reset()

	if obj.Transform == start {
		return nil
	}
	return c.stack.Execute(history.NewTransform(id, start, obj.Transform))
}

// Cancel abandons the gesture and puts the object back where Begin found
// it, without creating a history entry.
func (c *Coordinator) Cancel() error {
	if !c.active {
		return ErrNoGesture
	}
	start, id := c.start, c.objectID
	c.reset()
	err := c.graph.UpdateTransform(id, start)
	if err != nil && scene.IsNotFound(err) {
		// Object already gone; nothing to roll back.
		return nil
	}
	return err
}

func (c *Coordinator) reset() {
	c.objectID = ""
	c.start = scene.Transform{}
	c.active = false
}
