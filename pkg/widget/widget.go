// Package widget implements the retained widget tree: the Pod wrapper
// that owns one widget instance, the traversal contexts, and the root
// host driving the event, update, layout, align and paint protocols.
package widget

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// Widget is the protocol every tree node implements. Containers forward
// each call to their child Pods; the Pod, not the widget, maintains the
// dirty flags, geometry and memoization around these calls.
type Widget interface {
	// Event reacts to a semantic event. The event's coordinates are in
	// the widget's own space.
	Event(cx *EventContext, ev event.Event)

	// Lifecycle reacts to tree structure and focus notifications.
	Lifecycle(cx *LifecycleContext, ev LifecycleEvent)

	// Update gives the widget a chance to fold in data changes before
	// layout. Called only on subtrees that requested it.
	Update(cx *UpdateContext)

	// Measure is the non-binding first layout phase: report a preferred
	// size under the proposed constraints without committing geometry.
	Measure(cx *LayoutContext, proposed layout.Constraints) graphics.Size

	// Layout commits geometry: size self, lay out and position children.
	// The returned size must satisfy the proposed constraints.
	Layout(cx *LayoutContext, proposed layout.Constraints) graphics.Size

	// Align contributes to an alignment query, either by aggregating a
	// value or by forwarding to child Pods.
	Align(cx *AlignContext, alignment align.SingleAlignment)

	// Paint draws the widget. The canvas origin is the widget's own
	// top-left corner.
	Paint(cx *PaintContext)
}

// Focusable is implemented by widgets that participate in the focus
// chain. Registration happens on the added lifecycle event.
type Focusable interface {
	AcceptsFocus() bool
}

// LifecycleEvent is a tree-structure or focus notification.
type LifecycleEvent interface {
	isLifecycleEvent()
}

// WidgetAdded tells a widget it has joined the tree. Containers forward
// it to their child Pods so the whole subtree initializes.
type WidgetAdded struct{}

// WidgetRemoved tells a widget its Pod is being destroyed. Focus and
// capture registrations are released by the Pod before delivery.
type WidgetRemoved struct{}

// RouteWidgetAdded sweeps the tree for Pods added since the last pass.
// Pods not yet initialized convert it to WidgetAdded; everyone else
// forwards it unchanged.
type RouteWidgetAdded struct{}

// HotChanged reports that the pointer entered or left the widget. It is
// delivered to the affected widget only; a copy forwarded by a container
// stops at the child Pod.
type HotChanged struct {
	Hot bool
}

// FocusChanged reports that the widget gained or lost keyboard focus.
// Like HotChanged it is targeted: child Pods drop forwarded copies.
type FocusChanged struct {
	Focused bool
}

// RouteFocusChanged routes a focus transfer through the tree; the Pods
// matching Old and New convert it to FocusChanged (false, then true).
type RouteFocusChanged struct {
	Old NodeID
	New NodeID
}

func (WidgetAdded) isLifecycleEvent()       {}
func (WidgetRemoved) isLifecycleEvent()     {}
func (RouteWidgetAdded) isLifecycleEvent()  {}
func (HotChanged) isLifecycleEvent()        {}
func (FocusChanged) isLifecycleEvent()      {}
func (RouteFocusChanged) isLifecycleEvent() {}

// Base provides no-op implementations of the non-geometric protocol
// methods. Embed it in leaf widgets that only care about layout and
// paint; containers usually override Event and Lifecycle to forward.
type Base struct{}

func (Base) Event(cx *EventContext, ev event.Event)                  {}
func (Base) Lifecycle(cx *LifecycleContext, ev LifecycleEvent)       {}
func (Base) Update(cx *UpdateContext)                                {}
func (Base) Align(cx *AlignContext, alignment align.SingleAlignment) {}
func (Base) Paint(cx *PaintContext)                                  {}
