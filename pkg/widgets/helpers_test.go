package widgets

import (
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// recorder is a fixed-size leaf recording everything routed to it.
type recorder struct {
	widget.Base
	size      graphics.Size
	focusable bool

	events     []event.Event
	lifecycles []widget.LifecycleEvent
}

func (p *recorder) AcceptsFocus() bool { return p.focusable }

func (p *recorder) Event(cx *widget.EventContext, ev event.Event) {
	p.events = append(p.events, ev)
}

func (p *recorder) Lifecycle(cx *widget.LifecycleContext, ev widget.LifecycleEvent) {
	p.lifecycles = append(p.lifecycles, ev)
}

func (p *recorder) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return proposed.Constrain(p.size)
}

func (p *recorder) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	return proposed.Constrain(p.size)
}

func (p *recorder) keyCount() int {
	n := 0
	for _, ev := range p.events {
		if _, ok := ev.(event.KeyEvent); ok {
			n++
		}
	}
	return n
}

func (p *recorder) pasteCount() int {
	n := 0
	for _, ev := range p.events {
		if _, ok := ev.(event.PasteEvent); ok {
			n++
		}
	}
	return n
}

func (p *recorder) timerCount() int {
	n := 0
	for _, ev := range p.events {
		if _, ok := ev.(event.TimerEvent); ok {
			n++
		}
	}
	return n
}

func pointerMove(x, y float64) event.PointerEvent {
	return event.PointerEvent{Phase: event.PointerMove, Position: graphics.Point{X: x, Y: y}}
}

func pointerDown(x, y float64) event.PointerEvent {
	return event.PointerEvent{Phase: event.PointerDown, Position: graphics.Point{X: x, Y: y}}
}

func keyDown(r rune) event.KeyEvent {
	return event.KeyEvent{Phase: event.KeyDown, Rune: r}
}
