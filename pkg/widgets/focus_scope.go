package widgets

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// FocusScope re-scopes focus registration for its subtree: descendants
// joining the focus chain land in the named scope, so tab traversal
// cycles within it instead of the default chain.
type FocusScope struct {
	widget.Base
	child *widget.Pod

	Name string
}

// NewFocusScope wraps the child in the named scope.
func NewFocusScope(name string, child widget.Widget) *FocusScope {
	return &FocusScope{child: widget.NewPod(child), Name: name}
}

func (f *FocusScope) Event(cx *widget.EventContext, ev event.Event) {
	f.child.Event(cx, ev)
}

func (f *FocusScope) Lifecycle(cx *widget.LifecycleContext, ev widget.LifecycleEvent) {
	f.child.Lifecycle(cx.WithScope(f.Name), ev)
}

func (f *FocusScope) Update(cx *widget.UpdateContext) {
	f.child.Update(cx)
}

func (f *FocusScope) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return f.child.Measure(cx, proposed)
}

func (f *FocusScope) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	size := f.child.Layout(cx, proposed)
	f.child.SetOrigin(graphics.Point{})
	return size
}

func (f *FocusScope) Align(cx *widget.AlignContext, alignment align.SingleAlignment) {
	f.child.Align(cx, alignment)
}

func (f *FocusScope) Paint(cx *widget.PaintContext) {
	f.child.Paint(cx)
}
