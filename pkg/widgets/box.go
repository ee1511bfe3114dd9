// Package widgets provides the structural widgets exercising the full
// Pod protocol: z-ordered stacking with pointer obstruction, modal
// overlay hosting, virtualized list population, alignment and focus
// wrappers, and the Box leaf they compose over.
package widgets

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// Box is a fixed-preferred-size leaf with a solid fill. It can join the
// focus chain, grab the pointer on press and report clicks.
type Box struct {
	widget.Base

	// Size is the preferred size; layout clamps it into the window.
	Size graphics.Size
	// Fill paints the background when its color is visible.
	Fill graphics.Brush
	// Focusable adds the box to the focus chain on insertion.
	Focusable bool
	// OnPress fires on a press released inside the box.
	OnPress func()

	// Guide, when set, contributes GuideValue to matching queries.
	Guide      *align.SingleAlignment
	GuideValue float64
}

// AcceptsFocus implements widget.Focusable.
func (b *Box) AcceptsFocus() bool { return b.Focusable }

func (b *Box) Event(cx *widget.EventContext, ev event.Event) {
	switch e := ev.(type) {
	case event.PointerEvent:
		switch e.Phase {
		case event.PointerDown:
			if cx.IsHot() {
				cx.SetActive(true)
				if b.Focusable {
					cx.RequestFocus()
				}
				cx.SetHandled()
			}
		case event.PointerUp:
			if cx.IsActive() {
				cx.SetActive(false)
				if cx.IsHot() && b.OnPress != nil {
					b.OnPress()
				}
				cx.SetHandled()
			}
		}
	case event.KeyEvent:
		if e.Phase == event.KeyDown && e.Key == event.KeyEnter && cx.HasFocus() {
			if b.OnPress != nil {
				b.OnPress()
			}
			cx.SetHandled()
		}
	}
}

func (b *Box) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return proposed.Constrain(b.Size)
}

func (b *Box) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return proposed.Constrain(b.Size)
}

func (b *Box) Align(cx *widget.AlignContext, alignment align.SingleAlignment) {
	if b.Guide != nil && b.Guide.ID == alignment.ID {
		cx.Aggregate(alignment, b.GuideValue)
	}
}

func (b *Box) Paint(cx *widget.PaintContext) {
	size := cx.Size()
	frame := graphics.RectFromLTWH(0, 0, size.Width, size.Height)
	if b.Fill.Color != graphics.ColorTransparent {
		cx.Canvas.FillRect(frame, b.Fill)
	}
	if cx.HasFocus() {
		cx.Canvas.StrokeRect(frame, graphics.SolidBrush(graphics.ColorWhite), 1)
	}
}
