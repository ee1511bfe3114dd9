package widget

import (
	"github.com/loomui/loom/pkg/config"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/focus"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// Root hosts the tree: it owns the top Pod, the shared context state and
// the synthetic state the top Pod merges into. The driver calls
// Dispatch, Update, LayoutRoot and Paint in that order each frame,
// consulting the Needs observers to skip idle phases.
//
// Failures inside a traversal are not recovered here; the driver owns
// the event-loop boundary and decides whether to abort or restart.
type Root struct {
	pod   *Pod
	cs    *ContextState
	state WidgetState
	size  graphics.Size
}

// NewRoot wraps the content widget and delivers the added lifecycle so
// the initial tree registers its focus participants.
func NewRoot(content Widget, cfg *config.Config) *Root {
	r := &Root{
		pod: NewPod(content),
		cs:  newContextState(cfg),
	}
	lc := &LifecycleContext{cs: r.cs, state: &r.state, scope: focus.DefaultScope}
	r.pod.Lifecycle(lc, WidgetAdded{})
	return r
}

// Pod returns the top Pod, mainly for geometry inspection.
func (r *Root) Pod() *Pod { return r.pod }

// Focus exposes the focus manager for drivers that seed or inspect the
// chain directly.
func (r *Root) Focus() *focus.Manager { return r.cs.Focus }

// FocusedNode returns the identity of the focused node, 0 if none.
func (r *Root) FocusedNode() NodeID {
	return NodeID(r.cs.Focus.Focused())
}

// NeedsUpdate reports a pending update anywhere in the tree.
func (r *Root) NeedsUpdate() bool {
	return r.state.has(FlagRequestUpdate) || r.pod.NeedsUpdate()
}

// NeedsLayout reports a pending layout invalidation anywhere in the tree.
func (r *Root) NeedsLayout() bool {
	return r.state.has(FlagRequestLayout) || r.pod.NeedsLayout()
}

// NeedsPaint reports a pending repaint anywhere in the tree.
func (r *Root) NeedsPaint() bool {
	return r.state.has(FlagRequestPaint) || r.pod.NeedsPaint()
}

// Messages drains the payloads widgets submitted since the last drain.
func (r *Root) Messages() []Message {
	return r.cs.drainMessages()
}

// Dispatch routes one semantic event through the tree and applies any
// focus transfer it produced. An unhandled Tab key press falls back to
// chain traversal: Tab advances, Shift+Tab retreats, both wrapping.
// Reports whether the tree handled the event.
func (r *Root) Dispatch(ev event.Event) bool {
	cx := &EventContext{cs: r.cs, state: &r.state}
	r.pod.Event(cx, ev)
	handled := cx.handled

	if !handled {
		if ke, ok := ev.(event.KeyEvent); ok && ke.Phase == event.KeyDown && ke.Key == event.KeyTab {
			delta := 1
			if ke.Modifiers&event.ModShift != 0 {
				delta = -1
			}
			old, new := r.cs.Focus.MoveFocus(delta)
			if old != new {
				r.routeFocusChanged(NodeID(old), NodeID(new))
				handled = true
			}
		}
	}

	if id, ok := r.cs.takeFocusRequest(); ok {
		r.applyFocus(id)
	}
	r.routeAddedIfNeeded()
	return handled
}

// RequestFocus transfers focus to the given node from outside an event
// pass, firing the focus lifecycle notifications.
func (r *Root) RequestFocus(id NodeID) {
	r.applyFocus(id)
}

// RequestUpdate arms an update pass from the driver, used after a
// widget was mutated outside a traversal.
func (r *Root) RequestUpdate() { r.pod.RequestUpdate() }

// RequestLayout invalidates layout from the top, re-entering subtrees
// that carry their own pending invalidations.
func (r *Root) RequestLayout() { r.pod.RequestLayout() }

// RequestPaint arms a repaint from the driver.
func (r *Root) RequestPaint() { r.pod.RequestPaint() }

// Update runs the data-update traversal over subtrees that requested it
// and initializes any Pods they created.
func (r *Root) Update() {
	if !r.NeedsUpdate() {
		return
	}
	r.state.clear(FlagRequestUpdate)
	cx := &UpdateContext{cs: r.cs, state: &r.state}
	r.pod.Update(cx)
	r.routeAddedIfNeeded()
}

// LayoutRoot resolves the whole tree against the window size, pinning
// the top Pod at the window origin.
func (r *Root) LayoutRoot(size graphics.Size) {
	r.size = size
	r.state.clear(FlagRequestLayout)
	cx := &LayoutContext{cs: r.cs, state: &r.state}
	r.pod.Layout(cx, layout.Tight(size))
	r.pod.SetOrigin(graphics.Point{})
	r.routeAddedIfNeeded()
}

// Paint draws the tree onto the canvas.
func (r *Root) Paint(canvas graphics.Canvas) {
	r.state.clear(FlagRequestPaint)
	cx := &PaintContext{cs: r.cs, state: &r.state, Canvas: canvas}
	r.pod.Paint(cx)
}

func (r *Root) applyFocus(id NodeID) {
	old, new := r.cs.Focus.RequestFocus(uint64(id))
	if old != new {
		r.routeFocusChanged(NodeID(old), NodeID(new))
	}
}

// routeFocusChanged notifies the old holder before the new one
// regardless of their tree order, then re-flags the path to the new
// holder so key routing finds it.
func (r *Root) routeFocusChanged(old, new NodeID) {
	lc := &LifecycleContext{cs: r.cs, state: &r.state, scope: focus.DefaultScope}
	if old != 0 {
		r.pod.Lifecycle(lc, RouteFocusChanged{Old: old})
	}
	r.pod.Lifecycle(lc, RouteFocusChanged{New: new})
}

// routeAddedIfNeeded sweeps the tree for Pods created during the last
// traversal so they receive the added lifecycle exactly once.
func (r *Root) routeAddedIfNeeded() {
	if !r.state.has(FlagChildrenChanged) {
		return
	}
	r.state.clear(FlagChildrenChanged)
	lc := &LifecycleContext{cs: r.cs, state: &r.state, scope: focus.DefaultScope}
	r.pod.Lifecycle(lc, RouteWidgetAdded{})
	r.state.clear(FlagChildrenChanged)
}
