package widgets

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// AlignmentGuide overrides one guide for its subtree: when the queried
// key matches, it contributes Value of the child's size instead of
// recursing. Other guides pass through to the child.
type AlignmentGuide struct {
	widget.Base
	child *widget.Pod

	Guide align.SingleAlignment
	Value func(size graphics.Size) float64
}

// NewAlignmentGuide wraps the child with an override for guide.
func NewAlignmentGuide(child widget.Widget, guide align.SingleAlignment, value func(size graphics.Size) float64) *AlignmentGuide {
	return &AlignmentGuide{
		child: widget.NewPod(child),
		Guide: guide,
		Value: value,
	}
}

func (g *AlignmentGuide) Event(cx *widget.EventContext, ev event.Event) {
	g.child.Event(cx, ev)
}

func (g *AlignmentGuide) Lifecycle(cx *widget.LifecycleContext, ev widget.LifecycleEvent) {
	g.child.Lifecycle(cx, ev)
}

func (g *AlignmentGuide) Update(cx *widget.UpdateContext) {
	g.child.Update(cx)
}

func (g *AlignmentGuide) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return g.child.Measure(cx, proposed)
}

func (g *AlignmentGuide) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	size := g.child.Layout(cx, proposed)
	g.child.SetOrigin(graphics.Point{})
	return size
}

func (g *AlignmentGuide) Align(cx *widget.AlignContext, alignment align.SingleAlignment) {
	if alignment.ID == g.Guide.ID && g.Value != nil {
		cx.Aggregate(alignment, g.Value(g.child.Size()))
		return
	}
	g.child.Align(cx, alignment)
}

func (g *AlignmentGuide) Paint(cx *widget.PaintContext) {
	g.child.Paint(cx)
}
