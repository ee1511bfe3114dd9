package widgets

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// zLayer sizes a stacked child relative to the base layer.
type zLayer struct {
	pod *widget.Pod
	// relSize scales the base size; absSize adds to it.
	relSize  graphics.Size
	absSize  graphics.Size
	position graphics.UnitPoint
	offset   graphics.Point
}

func (l *zLayer) maxSize(base graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  base.Width*l.relSize.Width + l.absSize.Width,
		Height: base.Height*l.relSize.Height + l.absSize.Height,
	}
}

// ZStack paints children on top of each other. The slice holds layers
// frontmost-first with the base layer last; the base fixes the stack
// size and every other layer is sized against it. Pointer events are
// offered front-to-back, and once a frontmost layer is hot the layers
// behind it see the event tagged Obstructed: they may tidy up hover
// state but cannot become hot or grab the pointer.
type ZStack struct {
	widget.Base
	layers []*zLayer
}

// NewZStack creates a stack over its base layer.
func NewZStack(base widget.Widget) *ZStack {
	return &ZStack{layers: []*zLayer{{
		pod:     widget.NewPod(base),
		relSize: graphics.Size{Width: 1, Height: 1},
	}}}
}

// AddLayer inserts a widget directly above the base. The layer's
// constraint window is rel*base + abs; position resolves against the
// space remaining around the laid-out layer, then offset shifts it.
func (z *ZStack) AddLayer(w widget.Widget, rel, abs graphics.Size, position graphics.UnitPoint, offset graphics.Point) *ZStack {
	layer := &zLayer{
		pod:      widget.NewPod(w),
		relSize:  rel,
		absSize:  abs,
		position: position,
		offset:   offset,
	}
	i := len(z.layers) - 1
	z.layers = append(z.layers[:i], append([]*zLayer{layer}, z.layers[i:]...)...)
	return z
}

func (z *ZStack) base() *zLayer { return z.layers[len(z.layers)-1] }

func (z *ZStack) Event(cx *widget.EventContext, ev event.Event) {
	pe, isPointer := ev.(event.PointerEvent)
	if !isPointer {
		for _, l := range z.layers {
			l.pod.Event(cx, ev)
		}
		return
	}
	frontHot := false
	for _, l := range z.layers {
		copied := pe
		copied.Obstructed = pe.Obstructed || frontHot
		l.pod.Event(cx, copied)
		frontHot = frontHot || l.pod.IsHot()
	}
}

func (z *ZStack) Lifecycle(cx *widget.LifecycleContext, ev widget.LifecycleEvent) {
	for _, l := range z.layers {
		l.pod.Lifecycle(cx, ev)
	}
}

func (z *ZStack) Update(cx *widget.UpdateContext) {
	for _, l := range z.layers {
		l.pod.Update(cx)
	}
}

func (z *ZStack) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return z.base().pod.Measure(cx, proposed)
}

func (z *ZStack) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	base := z.base()
	size := base.pod.Layout(cx, proposed)
	base.pod.SetOrigin(graphics.Point{})

	for _, l := range z.layers[:len(z.layers)-1] {
		max := l.maxSize(size)
		layerSize := l.pod.Layout(cx, layout.Loose(max))
		if layerSize.Width > size.Width || layerSize.Height > size.Height {
			errors.Warnf("widgets.ZStack.Layout", errors.KindLayout,
				"layer %.1fx%.1f does not fit the %.1fx%.1f stack",
				layerSize.Width, layerSize.Height, size.Width, size.Height)
		}
		remaining := graphics.Size{
			Width:  size.Width - layerSize.Width,
			Height: size.Height - layerSize.Height,
		}
		l.pod.SetOrigin(l.position.Resolve(remaining).Add(l.offset))
	}
	return size
}

func (z *ZStack) Align(cx *widget.AlignContext, alignment align.SingleAlignment) {
	for _, l := range z.layers {
		l.pod.Align(cx, alignment)
	}
}

func (z *ZStack) Paint(cx *widget.PaintContext) {
	for i := len(z.layers) - 1; i >= 0; i-- {
		z.layers[i].pod.Paint(cx)
	}
}
