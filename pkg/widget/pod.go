package widget

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/focus"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// Pod owns exactly one widget instance and mediates every protocol call
// between it and its parent. Parents hold child Pods, never bare
// widgets; the Pod maintains the dirty flags, geometry and memoization
// the protocol depends on.
type Pod struct {
	id     NodeID
	state  WidgetState
	widget Widget
	added  bool
}

// NewPod wraps a widget for insertion into the tree. The initial dirty
// flags guarantee the first update, layout and paint all visit it.
func NewPod(w Widget) *Pod {
	return &Pod{
		id:     NewNodeID(),
		state:  WidgetState{flags: initFlags},
		widget: w,
	}
}

// ID returns the Pod's tree identity.
func (p *Pod) ID() NodeID { return p.id }

// Widget returns the owned widget instance.
func (p *Pod) Widget() Widget { return p.widget }

// Size returns the size resolved by the last layout.
func (p *Pod) Size() graphics.Size { return p.state.size }

// Origin returns the position in the parent's coordinate space.
func (p *Pod) Origin() graphics.Point { return p.state.origin }

// SetOrigin positions the Pod in its parent's coordinate space. Called
// by the parent during its own layout, after laying the child out.
func (p *Pod) SetOrigin(origin graphics.Point) {
	if p.state.origin == origin {
		return
	}
	p.state.origin = origin
	p.state.set(FlagRequestPaint)
}

// NeedsUpdate reports a pending update request in this subtree.
func (p *Pod) NeedsUpdate() bool { return p.state.has(FlagRequestUpdate) }

// NeedsLayout reports a pending layout invalidation in this subtree.
func (p *Pod) NeedsLayout() bool { return p.state.has(FlagRequestLayout) }

// NeedsPaint reports a pending repaint in this subtree.
func (p *Pod) NeedsPaint() bool { return p.state.has(FlagRequestPaint) }

// RequestUpdate arms an update visit from outside a traversal.
func (p *Pod) RequestUpdate() { p.state.set(FlagRequestUpdate) }

// RequestLayout invalidates the layout memo from outside a traversal.
func (p *Pod) RequestLayout() { p.state.set(FlagRequestLayout) }

// RequestPaint arms a repaint from outside a traversal.
func (p *Pod) RequestPaint() { p.state.set(FlagRequestPaint) }

// HeightFlexibility reports how far the subtree's height can stretch at
// the given width: the spread between its measured heights under
// unbounded and under zero height proposals. 0 means rigid.
func (p *Pod) HeightFlexibility(cx *LayoutContext, width float64) float64 {
	min := p.Measure(cx, layout.Constraints{Max: graphics.Size{Width: width}})
	max := p.Measure(cx, layout.Constraints{Max: graphics.Size{Width: width, Height: layout.Inf}})
	return max.Height - min.Height
}

// IsHot reports whether the pointer is over this Pod.
func (p *Pod) IsHot() bool { return p.state.has(FlagHot) }

// HasActive reports whether this subtree contains a pointer grab.
func (p *Pod) HasActive() bool { return p.state.has(FlagHasActive) }

// Event routes a semantic event into the subtree. Pointer events are
// hit-tested against the Pod's frame and translated into its coordinate
// space; everything else flows through unchanged. Flags set by the
// subtree merge into the parent's state afterward.
func (p *Pod) Event(parentCx *EventContext, ev event.Event) {
	if parentCx.handled {
		return
	}

	childCx := &EventContext{
		cs:         parentCx.cs,
		state:      &p.state,
		podID:      p.id,
		obstructed: parentCx.obstructed,
	}

	recurse := true
	forwarded := ev
	if pe, ok := ev.(event.PointerEvent); ok {
		hadActive := p.state.has(FlagHasActive)
		frame := graphics.RectFromOriginSize(p.state.origin, p.state.size)
		hotNow := frame.Contains(pe.Position) && !pe.Obstructed
		hotChanged := p.setHotState(parentCx.cs, hotNow)
		isHot := p.state.has(FlagHot)
		if pe.Phase == event.PointerMove {
			recurse = hadActive || isHot || hotChanged
		} else {
			recurse = hadActive || isHot
		}
		childCx.obstructed = pe.Obstructed
		forwarded = pe.Translated(p.state.origin.X, p.state.origin.Y)
	} else if _, ok := ev.(event.KeyEvent); ok {
		// Keys are focus-directed: only subtrees holding the focused
		// node or a key-capture listener are entered.
		recurse = p.state.has(FlagHasFocus | FlagHasCapture)
	}

	if recurse {
		p.state.clear(FlagHasActive)
		p.widget.Event(childCx, forwarded)
		if p.state.has(FlagActive) {
			p.state.set(FlagHasActive)
		}
		parentCx.handled = parentCx.handled || childCx.handled
	}
	parentCx.state.mergeUp(&p.state)
}

// setHotState flips the hot flag, repaints on change and notifies the
// widget without recursion. Returns whether the flag changed.
func (p *Pod) setHotState(cs *ContextState, hot bool) bool {
	if p.state.has(FlagHot) == hot {
		return false
	}
	if hot {
		p.state.set(FlagHot)
	} else {
		p.state.clear(FlagHot)
	}
	p.state.set(FlagRequestPaint)
	lc := &LifecycleContext{cs: cs, state: &p.state, podID: p.id, scope: focus.DefaultScope}
	p.widget.Lifecycle(lc, HotChanged{Hot: hot})
	return true
}

// Lifecycle routes a tree-structure or focus notification into the
// subtree, converting routing events into their targeted forms.
func (p *Pod) Lifecycle(parentCx *LifecycleContext, ev LifecycleEvent) {
	childCx := &LifecycleContext{cs: parentCx.cs, state: &p.state, podID: p.id, scope: parentCx.scope}

	switch e := ev.(type) {
	case WidgetAdded:
		if p.added {
			errors.Warnf("widget.Pod.Lifecycle", errors.KindProtocol,
				"node %d added twice", p.id)
			return
		}
		p.added = true
		p.state.clear(FlagChildrenChanged)
		if f, ok := p.widget.(Focusable); ok && f.AcceptsFocus() {
			parentCx.cs.Focus.Register(focus.Node{WidgetID: uint64(p.id), Scope: childCx.scope})
		}
		p.widget.Lifecycle(childCx, ev)

	case RouteWidgetAdded:
		if !p.added {
			p.Lifecycle(parentCx, WidgetAdded{})
			return
		}
		p.state.clear(FlagChildrenChanged)
		p.widget.Lifecycle(childCx, ev)

	case WidgetRemoved:
		parentCx.cs.Focus.Unregister(uint64(p.id))
		delete(parentCx.cs.keyCapture, p.id)
		p.added = false
		p.widget.Lifecycle(childCx, ev)

	case RouteFocusChanged:
		p.state.clear(FlagHasFocus)
		if e.Old != 0 && e.Old == p.id {
			p.widget.Lifecycle(childCx, FocusChanged{Focused: false})
		}
		if e.New != 0 && e.New == p.id {
			p.state.set(FlagHasFocus)
			p.widget.Lifecycle(childCx, FocusChanged{Focused: true})
		}
		p.widget.Lifecycle(childCx, ev)

	case HotChanged, FocusChanged:
		// Targeted notifications reach their widget straight from the
		// Pod owning the transition; one arriving here was forwarded by
		// a container and stops.
		return

	default:
		p.widget.Lifecycle(childCx, ev)
	}
	parentCx.state.mergeUp(&p.state)
}

// Update visits the subtree if an update was requested. The flag is
// cleared before the widget runs so it can re-arm itself for the next
// pass, which is how cooperative async work keeps itself polled.
func (p *Pod) Update(parentCx *UpdateContext) {
	if !p.state.has(FlagRequestUpdate) {
		return
	}
	p.state.clear(FlagRequestUpdate)
	childCx := &UpdateContext{cs: parentCx.cs, state: &p.state, podID: p.id}
	p.widget.Update(childCx)
	parentCx.state.mergeUp(&p.state)
}

// Measure runs the non-binding layout phase, memoized on the proposed
// constraints while no layout invalidation is pending.
func (p *Pod) Measure(parentCx *LayoutContext, proposed layout.Constraints) graphics.Size {
	if !p.state.has(FlagRequestLayout) && p.state.hasMeasure && proposed == p.state.measureProposed {
		return p.state.measured
	}
	childCx := &LayoutContext{cs: parentCx.cs, state: &p.state, podID: p.id}
	size := p.widget.Measure(childCx, proposed)
	p.state.measured = size
	p.state.measureProposed = proposed
	p.state.hasMeasure = true
	parentCx.state.mergeUp(&p.state)
	return size
}

// Layout resolves the subtree's geometry. A subtree with no pending
// invalidation asked for the same constraint window returns its cached
// size without visiting the widget. The invalidation flag is cleared
// before the widget runs so descendants can re-arm during the pass.
func (p *Pod) Layout(parentCx *LayoutContext, proposed layout.Constraints) graphics.Size {
	if !p.state.has(FlagRequestLayout) && p.state.hasLayout && proposed == p.state.proposed {
		return p.state.size
	}
	p.state.clear(FlagRequestLayout)
	childCx := &LayoutContext{cs: parentCx.cs, state: &p.state, podID: p.id}
	size := p.widget.Layout(childCx, proposed)
	if !proposed.Contains(size) {
		if parentCx.cs.overflowWarnings() {
			errors.Warnf("widget.Pod.Layout", errors.KindLayout,
				"node %d resolved %.1fx%.1f outside its constraint window",
				p.id, size.Width, size.Height)
		}
		size = proposed.Constrain(size)
	}
	if p.state.hasLayout && size != p.state.size {
		p.state.set(FlagRequestPaint)
	}
	p.state.size = size
	p.state.proposed = proposed
	p.state.hasLayout = true
	parentCx.state.mergeUp(&p.state)
	return size
}

// Align threads an alignment query into the subtree, accumulating this
// Pod's origin so contributions resolve in the caller's space.
func (p *Pod) Align(parentCx *AlignContext, alignment align.SingleAlignment) {
	childCx := &AlignContext{
		state:  &p.state,
		result: parentCx.result,
		origin: parentCx.origin.Add(p.state.origin),
	}
	p.widget.Align(childCx, alignment)
}

// GetAlignment resolves a guide value for this Pod in its own coordinate
// space. Well-known edge and center guides resolve from the Pod's extent
// without recursing; everything else runs a subtree query. A query with
// no contributors resolves to 0 after a protocol warning.
func (p *Pod) GetAlignment(alignment align.SingleAlignment) float64 {
	switch alignment.ID {
	case align.Leading.ID, align.Top.ID:
		return 0
	case align.HCenter.ID:
		return p.state.size.Width / 2
	case align.VCenter.ID:
		return p.state.size.Height / 2
	case align.Trailing.ID:
		return p.state.size.Width
	case align.Bottom.ID:
		return p.state.size.Height
	}

	var result align.Result
	cx := &AlignContext{state: &p.state, result: &result}
	p.widget.Align(cx, alignment)
	if result.Count() == 0 {
		errors.Warnf("widget.Pod.GetAlignment", errors.KindProtocol,
			"guide %d has no contributors under node %d", alignment.ID, p.id)
	}
	return result.Reap(alignment)
}

// Paint draws the subtree inside a saved, translated canvas scope. The
// restore is deferred so an aborting widget cannot leave the transform
// stack unbalanced for the code that catches the failure at the root.
func (p *Pod) Paint(parentCx *PaintContext) {
	p.state.clear(FlagRequestPaint)
	childCx := &PaintContext{
		cs:     parentCx.cs,
		state:  &p.state,
		podID:  p.id,
		Canvas: parentCx.Canvas,
	}
	canvas := parentCx.Canvas
	canvas.Save()
	defer canvas.Restore()
	canvas.Translate(p.state.origin.X, p.state.origin.Y)
	p.widget.Paint(childCx)
}
