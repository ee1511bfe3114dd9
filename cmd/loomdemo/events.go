package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
)

// translator turns tcell input into the semantic event set, tracking
// button state so presses and releases come out as distinct phases.
type translator struct {
	buttons tcell.ButtonMask
}

func (t *translator) key(ev *tcell.EventKey) event.KeyEvent {
	out := event.KeyEvent{Phase: event.KeyDown}
	if ev.Modifiers()&tcell.ModShift != 0 {
		out.Modifiers |= event.ModShift
	}
	if ev.Modifiers()&tcell.ModCtrl != 0 {
		out.Modifiers |= event.ModCtrl
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		out.Modifiers |= event.ModAlt
	}
	switch ev.Key() {
	case tcell.KeyTab:
		out.Key = event.KeyTab
	case tcell.KeyBacktab:
		out.Key = event.KeyTab
		out.Modifiers |= event.ModShift
	case tcell.KeyEnter:
		out.Key = event.KeyEnter
	case tcell.KeyEscape:
		out.Key = event.KeyEscape
	case tcell.KeyRune:
		out.Rune = ev.Rune()
	}
	return out
}

// mouse translates one tcell mouse event into zero or more pointer
// events. Wheel ticks become scroll events; button transitions become
// down/up; everything else is motion.
func (t *translator) mouse(ev *tcell.EventMouse) []event.PointerEvent {
	x, y := ev.Position()
	pos := graphics.Point{X: float64(x), Y: float64(y)}
	var out []event.PointerEvent

	if ev.Buttons()&tcell.WheelUp != 0 {
		out = append(out, event.PointerEvent{
			Phase:    event.PointerScroll,
			Position: pos,
			Scroll:   graphics.Point{Y: -3},
		})
	}
	if ev.Buttons()&tcell.WheelDown != 0 {
		out = append(out, event.PointerEvent{
			Phase:    event.PointerScroll,
			Position: pos,
			Scroll:   graphics.Point{Y: 3},
		})
	}

	const pressMask = tcell.Button1 | tcell.Button2 | tcell.Button3
	was := t.buttons & pressMask
	now := ev.Buttons() & pressMask
	t.buttons = ev.Buttons()

	switch {
	case was == 0 && now != 0:
		out = append(out, event.PointerEvent{Phase: event.PointerDown, Position: pos, Buttons: 1})
	case was != 0 && now == 0:
		out = append(out, event.PointerEvent{Phase: event.PointerUp, Position: pos})
	default:
		var buttons uint8
		if now != 0 {
			buttons = 1
		}
		out = append(out, event.PointerEvent{Phase: event.PointerMove, Position: pos, Buttons: buttons})
	}
	return out
}

func (t *translator) paste(ev *tcell.EventPaste) *event.PasteEvent {
	// tcell brackets paste content in start/end events; content arrives
	// as key runes in between. Only the boundary is surfaced here.
	if ev.Start() {
		return &event.PasteEvent{}
	}
	return nil
}
