package widget

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/config"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/focus"
	"github.com/loomui/loom/pkg/graphics"
)

// Message is a payload submitted by a widget during a traversal, drained
// by the driver through Root.Messages.
type Message struct {
	// Origin is the submitting Pod.
	Origin NodeID
	// Payload is the widget-defined content.
	Payload any
}

// ContextState is the per-tree state shared by every context handed out
// during traversals. One instance lives on the Root.
type ContextState struct {
	Focus  *focus.Manager
	Config *config.Config

	messages     []Message
	keyCapture   map[NodeID]struct{}
	focusRequest *NodeID
}

func newContextState(cfg *config.Config) *ContextState {
	if cfg == nil {
		cfg = config.Default()
	}
	return &ContextState{
		Focus:      focus.NewManager(),
		Config:     cfg,
		keyCapture: make(map[NodeID]struct{}),
	}
}

func (cs *ContextState) submit(origin NodeID, payload any) {
	cs.messages = append(cs.messages, Message{Origin: origin, Payload: payload})
}

func (cs *ContextState) drainMessages() []Message {
	out := cs.messages
	cs.messages = nil
	return out
}

func (cs *ContextState) requestFocus(id NodeID) {
	cs.focusRequest = &id
}

func (cs *ContextState) takeFocusRequest() (NodeID, bool) {
	if cs.focusRequest == nil {
		return 0, false
	}
	id := *cs.focusRequest
	cs.focusRequest = nil
	return id, true
}

func (cs *ContextState) overflowWarnings() bool {
	return cs.Config != nil && cs.Config.Diagnostics.OverflowWarnings
}

// EventContext is handed to Widget.Event.
type EventContext struct {
	cs    *ContextState
	state *WidgetState
	podID NodeID

	handled    bool
	obstructed bool
}

// SetHandled stops propagation to later siblings once the current
// container returns.
func (cx *EventContext) SetHandled() {
	cx.handled = true
}

// IsHandled reports whether a previously visited node claimed the event.
func (cx *EventContext) IsHandled() bool {
	return cx.handled
}

// IsHot reports whether the pointer is over this node.
func (cx *EventContext) IsHot() bool {
	return cx.state.has(FlagHot)
}

// IsActive reports whether this node has grabbed the pointer.
func (cx *EventContext) IsActive() bool {
	return cx.state.has(FlagActive)
}

// SetActive grabs or releases the pointer. A grab attempted while the
// node is obstructed by a frontmost sibling is refused.
func (cx *EventContext) SetActive(active bool) {
	if active && cx.obstructed {
		errors.Warnf("widget.EventContext.SetActive", errors.KindProtocol,
			"node %d attempted a pointer grab while obstructed", cx.podID)
		return
	}
	if active {
		cx.state.set(FlagActive)
	} else {
		cx.state.clear(FlagActive)
	}
}

// HasFocus reports whether this node holds keyboard focus.
func (cx *EventContext) HasFocus() bool {
	return cx.cs.Focus.IsFocused(uint64(cx.podID))
}

// RequestFocus asks for keyboard focus. The transfer and its lifecycle
// notifications happen after the current event pass finishes.
func (cx *EventContext) RequestFocus() {
	cx.cs.requestFocus(cx.podID)
}

// CaptureKeys adds this node to the global key-capture set; captured
// nodes receive and may act on keyboard events without holding focus.
func (cx *EventContext) CaptureKeys() {
	cx.cs.keyCapture[cx.podID] = struct{}{}
	cx.state.set(FlagHasCapture)
}

// ReleaseKeys removes this node from the key-capture set.
func (cx *EventContext) ReleaseKeys() {
	delete(cx.cs.keyCapture, cx.podID)
	cx.state.clear(FlagHasCapture)
}

// HasKeyCapture reports whether this node is in the key-capture set.
func (cx *EventContext) HasKeyCapture() bool {
	_, ok := cx.cs.keyCapture[cx.podID]
	return ok
}

// Submit queues a message for the driver.
func (cx *EventContext) Submit(payload any) {
	cx.cs.submit(cx.podID, payload)
}

// ChildrenChanged tells the root to route an added sweep after this
// traversal; containers call it when a command created child Pods.
func (cx *EventContext) ChildrenChanged() { cx.state.set(FlagChildrenChanged) }

// RetireChild tears down a Pod being removed from the tree, releasing
// its focus and capture registrations through the removed lifecycle.
func (cx *EventContext) RetireChild(p *Pod) {
	retireChild(cx.cs, cx.state, cx.podID, p)
}

// RequestUpdate schedules an update visit for this subtree.
func (cx *EventContext) RequestUpdate() { cx.state.set(FlagRequestUpdate) }

// RequestLayout invalidates this subtree's layout.
func (cx *EventContext) RequestLayout() { cx.state.set(FlagRequestLayout) }

// RequestPaint schedules a repaint of this subtree.
func (cx *EventContext) RequestPaint() { cx.state.set(FlagRequestPaint) }

// UpdateContext is handed to Widget.Update.
type UpdateContext struct {
	cs    *ContextState
	state *WidgetState
	podID NodeID
}

// Config exposes the runtime configuration.
func (cx *UpdateContext) Config() *config.Config { return cx.cs.Config }

// HasFocus reports whether this node holds keyboard focus.
func (cx *UpdateContext) HasFocus() bool {
	return cx.cs.Focus.IsFocused(uint64(cx.podID))
}

// Submit queues a message for the driver.
func (cx *UpdateContext) Submit(payload any) {
	cx.cs.submit(cx.podID, payload)
}

// ChildrenChanged tells the root to route an added sweep after this
// traversal, initializing Pods created during it.
func (cx *UpdateContext) ChildrenChanged() { cx.state.set(FlagChildrenChanged) }

// RetireChild tears down a Pod being removed from the tree.
func (cx *UpdateContext) RetireChild(p *Pod) {
	retireChild(cx.cs, cx.state, cx.podID, p)
}

// RequestUpdate re-arms an update visit; a widget may call this inside
// its own Update to be visited again next pass.
func (cx *UpdateContext) RequestUpdate() { cx.state.set(FlagRequestUpdate) }

// RequestLayout invalidates this subtree's layout.
func (cx *UpdateContext) RequestLayout() { cx.state.set(FlagRequestLayout) }

// RequestPaint schedules a repaint of this subtree.
func (cx *UpdateContext) RequestPaint() { cx.state.set(FlagRequestPaint) }

// LayoutContext is handed to Widget.Measure and Widget.Layout.
type LayoutContext struct {
	cs    *ContextState
	state *WidgetState
	podID NodeID
}

// Config exposes the runtime configuration.
func (cx *LayoutContext) Config() *config.Config { return cx.cs.Config }

// Submit queues a message for the driver; virtualized containers use it
// to request child construction discovered during layout.
func (cx *LayoutContext) Submit(payload any) {
	cx.cs.submit(cx.podID, payload)
}

// ChildrenChanged tells the root to route an added sweep after this
// traversal.
func (cx *LayoutContext) ChildrenChanged() { cx.state.set(FlagChildrenChanged) }

// RequestUpdate schedules an update visit for this subtree.
func (cx *LayoutContext) RequestUpdate() { cx.state.set(FlagRequestUpdate) }

// RetireChild tears down a Pod being removed from the tree.
func (cx *LayoutContext) RetireChild(p *Pod) {
	retireChild(cx.cs, cx.state, cx.podID, p)
}

func retireChild(cs *ContextState, state *WidgetState, podID NodeID, p *Pod) {
	lc := &LifecycleContext{cs: cs, state: state, podID: podID, scope: focus.DefaultScope}
	p.Lifecycle(lc, WidgetRemoved{})
}

// LifecycleContext is handed to Widget.Lifecycle. It carries the focus
// scope active for the subtree being visited.
type LifecycleContext struct {
	cs    *ContextState
	state *WidgetState
	podID NodeID
	scope string
}

// Scope returns the focus scope name active for this subtree.
func (cx *LifecycleContext) Scope() string { return cx.scope }

// WithScope returns a copy of the context that registers descendants
// into the named focus scope. Scoping containers forward lifecycle
// events to their children through it.
func (cx *LifecycleContext) WithScope(name string) *LifecycleContext {
	out := *cx
	if name == "" {
		name = focus.DefaultScope
	}
	out.scope = name
	return &out
}

// RequestUpdate schedules an update visit for this subtree.
func (cx *LifecycleContext) RequestUpdate() { cx.state.set(FlagRequestUpdate) }

// RequestLayout invalidates this subtree's layout.
func (cx *LifecycleContext) RequestLayout() { cx.state.set(FlagRequestLayout) }

// RequestPaint schedules a repaint of this subtree.
func (cx *LifecycleContext) RequestPaint() { cx.state.set(FlagRequestPaint) }

// AlignContext threads one alignment query through a subtree. The origin
// accumulates Pod offsets so contributions resolve in the querying
// container's coordinate space.
type AlignContext struct {
	state  *WidgetState
	result *align.Result
	origin graphics.Point
}

// Size returns the visited node's resolved size, the reference for
// extent-relative guide values.
func (cx *AlignContext) Size() graphics.Size { return cx.state.size }

// Aggregate folds one contribution in, re-based by the accumulated
// origin on the guide's axis.
func (cx *AlignContext) Aggregate(alignment align.SingleAlignment, value float64) {
	cx.result.Aggregate(alignment, alignment.ApplyOffset(cx.origin.X, cx.origin.Y, value))
}

// PaintContext is handed to Widget.Paint. The canvas translation already
// places the origin at the widget's top-left corner.
type PaintContext struct {
	cs    *ContextState
	state *WidgetState
	podID NodeID

	Canvas graphics.Canvas
}

// Size returns the widget's resolved size.
func (cx *PaintContext) Size() graphics.Size { return cx.state.size }

// HasFocus reports whether this node holds keyboard focus, for focus
// ring rendering.
func (cx *PaintContext) HasFocus() bool {
	return cx.cs.Focus.IsFocused(uint64(cx.podID))
}

// IsHot reports whether the pointer is over this node.
func (cx *PaintContext) IsHot() bool { return cx.state.has(FlagHot) }

// IsActive reports whether this node has grabbed the pointer.
func (cx *PaintContext) IsActive() bool { return cx.state.has(FlagActive) }
