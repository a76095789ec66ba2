package history

import (
	"fmt"

	"github.com/morganbevy/editor/internal/scene"
)

// DefaultMaxDepth is the default undo depth cap. Stack depth is otherwise
// unbounded; the cap evicts the oldest entry rather than rejecting new ones,
// so a long editing session degrades gracefully instead of leaking memory.
const DefaultMaxDepth = 1000

// Stack is the strictly linear, two-stack undo/redo history.
//
// Execute runs a command and pushes it onto the undo side, clearing the redo
// side: any new forward action invalidates prior redo history, explicitly
// and unconditionally. Undo and Redo move one entry between the sides.
// History is process-lifetime only; nothing here persists.
type Stack struct {
	graph    *scene.Graph
	undo     []Command
	redo     []Command
	maxDepth int
}

// StackOption configures a Stack.
type StackOption func(*Stack)

// WithMaxDepth sets the undo depth cap. When the cap is reached the oldest
// undo entry is evicted on the next Execute.
//
// Use WithMaxDepth(1) to keep only the latest edit undoable.
func WithMaxDepth(n int) StackOption {
	return func(s *Stack) {
		s.maxDepth = n
	}
}

// NewStack creates an empty history over the given graph.
func NewStack(g *scene.Graph, opts ...StackOption) *Stack {
	s := &Stack{graph: g, maxDepth: DefaultMaxDepth}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Execute runs the command and records it. On failure nothing is recorded
// and the redo side is left intact: a command that did not run cannot
// invalidate anything.
func (s *Stack) Execute(cmd Command) error {
	if err := cmd.Execute(s.graph); err != nil {
		return fmt.Errorf("execute %q: %w", cmd.Description(), err)
	}
	s.undo = append(s.undo, cmd)
	s.redo = s.redo[:0]
	if s.maxDepth > 0 && len(s.undo) > s.maxDepth {
		// Evict oldest. Nil the slot so the command is collectable.
		copy(s.undo, s.undo[1:])
		s.undo[len(s.undo)-1] = nil
		s.undo = s.undo[:len(s.undo)-1]
	}
	return nil
}

// Undo reverses the most recent command and moves it to the redo side.
// No-op on an empty undo stack.
func (s *Stack) Undo() error {
	if len(s.undo) == 0 {
		return nil
	}
	cmd := s.undo[len(s.undo)-1]
	if err := cmd.Undo(s.graph); err != nil {
		return fmt.Errorf("undo %q: %w", cmd.Description(), err)
	}
	s.undo = s.undo[:len(s.undo)-1]
	s.redo = append(s.redo, cmd)
	return nil
}

// Redo re-applies the most recently undone command and moves it back to the
// undo side. No-op on an empty redo stack.
func (s *Stack) Redo() error {
	if len(s.redo) == 0 {
		return nil
	}
	cmd := s.redo[len(s.redo)-1]
	if err := cmd.Execute(s.graph); err != nil {
		return fmt.Errorf("redo %q: %w", cmd.Description(), err)
	}
	s.redo = s.redo[:len(s.redo)-1]
	s.undo = append(s.undo, cmd)
	return nil
}

// CanUndo reports whether an undo entry is available.
func (s *Stack) CanUndo() bool { return len(s.undo) > 0 }

// CanRedo reports whether a redo entry is available.
func (s *Stack) CanRedo() bool { return len(s.redo) > 0 }

// UndoDepth returns the number of undoable entries.
func (s *Stack) UndoDepth() int { return len(s.undo) }

// RedoDepth returns the number of redoable entries.
func (s *Stack) RedoDepth() int { return len(s.redo) }

// UndoDescriptions returns history labels, most recent last, for the UI.
func (s *Stack) UndoDescriptions() []string {
	out := make([]string, len(s.undo))
	for i, cmd := range s.undo {
		out[i] = cmd.Description()
	}
	return out
}
