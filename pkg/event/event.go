// Package event defines the semantic event set routed through the widget
// tree. The platform collaborator translates native input into these
// values before they enter the tree at the root.
package event

import "github.com/loomui/loom/pkg/graphics"

// Event is a semantic event dispatched through the tree.
type Event interface {
	isEvent()
}

// PointerPhase identifies the stage of a pointer event.
type PointerPhase int

const (
	// PointerDown is a press.
	PointerDown PointerPhase = iota
	// PointerMove is a motion, pressed or not.
	PointerMove
	// PointerUp is a release.
	PointerUp
	// PointerScroll is a wheel tick.
	PointerScroll
)

// PointerEvent is a pointer-class event in the receiving node's parent
// coordinate space. Containers translate Position as the event descends.
type PointerEvent struct {
	Phase    PointerPhase
	Position graphics.Point
	Buttons  uint8
	Scroll   graphics.Point

	// Obstructed tells a node that a frontmost sibling already claimed
	// the pointer: the node must not become hot or begin a drag, though
	// it still sees the event for hover-exit bookkeeping.
	Obstructed bool
}

// Translated returns a copy with the position shifted by (-dx, -dy),
// moving it into a child coordinate space.
func (e PointerEvent) Translated(dx, dy float64) PointerEvent {
	e.Position.X -= dx
	e.Position.Y -= dy
	return e
}

// KeyPhase identifies press or release.
type KeyPhase int

const (
	// KeyDown is a key press.
	KeyDown KeyPhase = iota
	// KeyUp is a key release.
	KeyUp
)

// Key identifies a non-character key.
type Key int

const (
	// KeyNone means the event carries only a rune.
	KeyNone Key = iota
	// KeyTab drives focus traversal when unhandled.
	KeyTab
	// KeyEnter is the return key.
	KeyEnter
	// KeyEscape is the escape key.
	KeyEscape
)

// Modifier flags for key events.
const (
	ModShift uint8 = 1 << iota
	ModCtrl
	ModAlt
)

// KeyEvent is a keyboard event. Delivery is focus-directed: only
// subtrees holding the focused node or a key-capture listener see it.
type KeyEvent struct {
	Phase     KeyPhase
	Key       Key
	Rune      rune
	Modifiers uint8
}

// PasteEvent carries clipboard text.
type PasteEvent struct {
	Text string
}

// ZoomEvent carries a pinch/zoom scale delta.
type ZoomEvent struct {
	Delta float64
}

// TimerEvent signals an elapsed timer token.
type TimerEvent struct {
	Token uint64
}

// CommandEvent is an opaque typed message carried by the event channel.
// The tree recognizes selectors it owns (such as modal show/dismiss) and
// forwards everything else untouched.
type CommandEvent struct {
	Selector string
	Payload  any
}

func (PointerEvent) isEvent() {}
func (KeyEvent) isEvent()     {}
func (PasteEvent) isEvent()   {}
func (ZoomEvent) isEvent()    {}
func (TimerEvent) isEvent()   {}
func (CommandEvent) isEvent() {}

// IsUserInput reports whether the event belongs to the user-input class
// that modal hosts intercept: pointer, key, paste and zoom events. Timers
// and commands are broadcast unconditionally.
func IsUserInput(e Event) bool {
	switch e.(type) {
	case PointerEvent, KeyEvent, PasteEvent, ZoomEvent:
		return true
	default:
		return false
	}
}

// IsPointer reports whether the event is pointer-class, the class subject
// to z-order obstruction.
func IsPointer(e Event) bool {
	_, ok := e.(PointerEvent)
	return ok
}
