package widget

import (
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// PodFlags is the per-node dirty and interaction state bitset.
type PodFlags uint32

const (
	// FlagRequestUpdate asks for a data-update traversal visit.
	FlagRequestUpdate PodFlags = 1 << iota
	// FlagRequestLayout invalidates the node's layout memoization.
	FlagRequestLayout
	// FlagRequestPaint asks for a repaint.
	FlagRequestPaint
	// FlagHot marks the node currently under the pointer.
	FlagHot
	// FlagActive marks the node as having grabbed the pointer.
	FlagActive
	// FlagHasActive marks a subtree containing an active node.
	FlagHasActive
	// FlagHasFocus marks a subtree containing the focused node. Key
	// events descend only into flagged subtrees.
	FlagHasFocus
	// FlagHasCapture marks a subtree containing a key-capture listener.
	FlagHasCapture
	// FlagChildrenChanged marks a subtree whose child set mutated since
	// the last added-routing pass.
	FlagChildrenChanged
)

// initFlags are set on a freshly created Pod so the first traversals
// visit it unconditionally.
const initFlags = FlagRequestUpdate | FlagRequestLayout | FlagRequestPaint

// upwardFlags are the flags that merge into the parent after every
// traversal step. Hot and Active stay local.
const upwardFlags = FlagRequestUpdate | FlagRequestLayout | FlagRequestPaint |
	FlagHasActive | FlagHasFocus | FlagHasCapture | FlagChildrenChanged

// WidgetState is the per-Pod bookkeeping the runtime maintains on the
// widget's behalf: dirty flags, geometry and the layout memo.
type WidgetState struct {
	flags PodFlags

	// origin is the node's position in its parent's coordinate space.
	origin graphics.Point
	// size is the resolved size from the last layout.
	size graphics.Size

	// proposed is the constraint window of the last layout pass.
	proposed  layout.Constraints
	hasLayout bool

	// measured caches the last measure result under measureProposed.
	measured        graphics.Size
	measureProposed layout.Constraints
	hasMeasure      bool
}

// mergeUp folds a child's upward-propagating flags into this state.
func (s *WidgetState) mergeUp(child *WidgetState) {
	s.flags |= child.flags & upwardFlags
}

func (s *WidgetState) has(f PodFlags) bool {
	return s.flags&f != 0
}

func (s *WidgetState) set(f PodFlags) {
	s.flags |= f
}

func (s *WidgetState) clear(f PodFlags) {
	s.flags &^= f
}
