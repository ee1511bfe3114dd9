package widgets

import (
	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// Command selectors the modal host intercepts. Dispatch a CommandEvent
// with ShowModal and a *Modal payload to present; DismissModal pops the
// top of the stack.
const (
	ShowModal    = "loom.show-modal"
	DismissModal = "loom.dismiss-modal"
)

// Modal describes one presented overlay.
type Modal struct {
	// Content is the widget to present.
	Content widget.Widget
	// PassThrough lets user input continue to the next-lower modal (or
	// the base child) instead of stopping here.
	PassThrough bool
	// Background, when set, fills the whole host behind the modal.
	Background *graphics.Brush
	// Position places the modal's top-left corner; nil centers it.
	Position *graphics.Point

	pod *widget.Pod
}

// ModalHost owns a base child and a LIFO stack of modals. While the
// stack is non-empty, user-input events are withheld from the base: they
// walk the stack top-down, continuing past PassThrough modals and
// stopping at the first opaque one. Non-input events are broadcast to
// the base and every modal unconditionally.
type ModalHost struct {
	widget.Base
	base   *widget.Pod
	modals []*Modal
}

// NewModalHost wraps the base child.
func NewModalHost(base widget.Widget) *ModalHost {
	return &ModalHost{base: widget.NewPod(base)}
}

// Depth returns the number of presented modals.
func (h *ModalHost) Depth() int { return len(h.modals) }

func (h *ModalHost) Event(cx *widget.EventContext, ev event.Event) {
	if cmd, ok := ev.(event.CommandEvent); ok {
		switch cmd.Selector {
		case ShowModal:
			h.show(cx, cmd.Payload)
			return
		case DismissModal:
			h.dismiss(cx)
			return
		}
	}

	if !event.IsUserInput(ev) {
		h.base.Event(cx, ev)
		for _, m := range h.modals {
			m.pod.Event(cx, ev)
		}
		return
	}

	// Top of the stack first; PassThrough hands the event down.
	for i := len(h.modals) - 1; i >= 0; i-- {
		m := h.modals[i]
		m.pod.Event(cx, ev)
		if !m.PassThrough {
			return
		}
	}
	h.base.Event(cx, ev)
}

func (h *ModalHost) show(cx *widget.EventContext, payload any) {
	m, ok := payload.(*Modal)
	if !ok || m == nil || m.Content == nil {
		errors.Warnf("widgets.ModalHost.show", errors.KindProtocol,
			"show command carried %T, want *Modal with content", payload)
		cx.SetHandled()
		return
	}
	m.pod = widget.NewPod(m.Content)
	h.modals = append(h.modals, m)
	cx.ChildrenChanged()
	cx.RequestLayout()
	cx.SetHandled()
}

func (h *ModalHost) dismiss(cx *widget.EventContext) {
	if len(h.modals) == 0 {
		errors.Warnf("widgets.ModalHost.dismiss", errors.KindProtocol,
			"dismiss with no modal shown")
		cx.SetHandled()
		return
	}
	top := h.modals[len(h.modals)-1]
	h.modals = h.modals[:len(h.modals)-1]
	cx.RetireChild(top.pod)
	cx.RequestLayout()
	cx.RequestPaint()
	cx.SetHandled()
}

func (h *ModalHost) Lifecycle(cx *widget.LifecycleContext, ev widget.LifecycleEvent) {
	h.base.Lifecycle(cx, ev)
	for _, m := range h.modals {
		m.pod.Lifecycle(cx, ev)
	}
}

func (h *ModalHost) Update(cx *widget.UpdateContext) {
	h.base.Update(cx)
	for _, m := range h.modals {
		m.pod.Update(cx)
	}
}

func (h *ModalHost) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return h.base.Measure(cx, proposed)
}

func (h *ModalHost) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	size := h.base.Layout(cx, proposed)
	h.base.SetOrigin(graphics.Point{})

	for _, m := range h.modals {
		modalSize := m.pod.Layout(cx, layout.Loose(size))
		if m.Position != nil {
			m.pod.SetOrigin(*m.Position)
		} else {
			remaining := graphics.Size{
				Width:  size.Width - modalSize.Width,
				Height: size.Height - modalSize.Height,
			}
			m.pod.SetOrigin(graphics.UnitCenter.Resolve(remaining))
		}
	}
	return size
}

func (h *ModalHost) Align(cx *widget.AlignContext, alignment align.SingleAlignment) {
	h.base.Align(cx, alignment)
}

func (h *ModalHost) Paint(cx *widget.PaintContext) {
	h.base.Paint(cx)
	size := cx.Size()
	for _, m := range h.modals {
		if m.Background != nil {
			cx.Canvas.FillRect(graphics.RectFromLTWH(0, 0, size.Width, size.Height), *m.Background)
		}
		m.pod.Paint(cx)
	}
}
