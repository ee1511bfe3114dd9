package widgets

import (
	"testing"

	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/widget"
)

func showModal(root *widget.Root, m *Modal) {
	root.Dispatch(event.CommandEvent{Selector: ShowModal, Payload: m})
	root.LayoutRoot(graphics.Size{Width: 100, Height: 100})
}

// modalHostFixture builds a host over a focusable base and focuses it,
// so focus-directed key events have a live target behind the stack.
func modalHostFixture() (*widget.Root, *ModalHost, *recorder) {
	base := &recorder{size: graphics.Size{Width: 100, Height: 100}, focusable: true}
	host := NewModalHost(base)
	root := widget.NewRoot(host, nil)
	root.LayoutRoot(graphics.Size{Width: 100, Height: 100})
	root.RequestFocus(host.base.ID())
	return root, host, base
}

func TestOpaqueModalWithholdsInputFromBase(t *testing.T) {
	root, host, base := modalHostFixture()

	top := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	showModal(root, &Modal{Content: top})
	if host.Depth() != 1 {
		t.Fatalf("depth = %d, want 1", host.Depth())
	}

	// Keys aimed at the focused base stop at the opaque modal.
	root.Dispatch(keyDown('x'))
	if base.keyCount() != 0 {
		t.Fatalf("base saw %d keys behind an opaque modal, want 0", base.keyCount())
	}

	root.Dispatch(event.PasteEvent{Text: "clip"})
	if top.pasteCount() != 1 {
		t.Fatalf("modal saw %d pastes, want 1", top.pasteCount())
	}
	if base.pasteCount() != 0 {
		t.Fatalf("base saw %d pastes behind an opaque modal, want 0", base.pasteCount())
	}
}

func TestPassThroughModalHandsInputDown(t *testing.T) {
	root, _, base := modalHostFixture()

	lower := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	upper := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	showModal(root, &Modal{Content: lower})
	showModal(root, &Modal{Content: upper, PassThrough: true})

	root.Dispatch(event.PasteEvent{Text: "clip"})
	if upper.pasteCount() != 1 || lower.pasteCount() != 1 {
		t.Fatalf("pastes upper=%d lower=%d, want 1 and 1", upper.pasteCount(), lower.pasteCount())
	}
	if base.pasteCount() != 0 {
		t.Fatalf("base saw %d pastes, the lower modal is opaque", base.pasteCount())
	}

	root.Dispatch(keyDown('x'))
	if base.keyCount() != 0 {
		t.Fatalf("base saw %d keys, the lower modal is opaque", base.keyCount())
	}
}

func TestFullyTransparentStackReachesBase(t *testing.T) {
	root, _, base := modalHostFixture()

	m1 := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	m2 := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	showModal(root, &Modal{Content: m1, PassThrough: true})
	showModal(root, &Modal{Content: m2, PassThrough: true})

	root.Dispatch(keyDown('x'))
	if base.keyCount() != 1 {
		t.Fatalf("base saw %d keys through a pass-through stack, want 1", base.keyCount())
	}
}

func TestNonInputEventsBroadcast(t *testing.T) {
	root, _, base := modalHostFixture()

	modal := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	showModal(root, &Modal{Content: modal})

	root.Dispatch(event.TimerEvent{Token: 7})
	if base.timerCount() != 1 || modal.timerCount() != 1 {
		t.Fatalf("timers base=%d modal=%d, want 1 and 1", base.timerCount(), modal.timerCount())
	}
}

func TestPasteAndZoomAreUserInput(t *testing.T) {
	root, _, base := modalHostFixture()
	modal := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	showModal(root, &Modal{Content: modal})

	root.Dispatch(event.PasteEvent{Text: "clip"})
	root.Dispatch(event.ZoomEvent{Delta: 0.5})
	if len(base.events) != 0 {
		t.Fatalf("base saw %d user-input events behind an opaque modal", len(base.events))
	}
	if len(modal.events) != 2 {
		t.Fatalf("modal saw %d events, want paste and zoom", len(modal.events))
	}
}

func TestDismissPopsInStackOrder(t *testing.T) {
	root, host, base := modalHostFixture()

	m1 := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	m2 := &recorder{size: graphics.Size{Width: 40, Height: 40}}
	showModal(root, &Modal{Content: m1})
	showModal(root, &Modal{Content: m2})

	root.Dispatch(event.CommandEvent{Selector: DismissModal})
	if host.Depth() != 1 {
		t.Fatalf("depth = %d after one dismiss, want 1", host.Depth())
	}

	root.Dispatch(event.PasteEvent{Text: "clip"})
	if m1.pasteCount() != 1 || m2.pasteCount() != 0 {
		t.Fatalf("pastes m1=%d m2=%d after dismissing the top", m1.pasteCount(), m2.pasteCount())
	}

	root.Dispatch(event.CommandEvent{Selector: DismissModal})
	if host.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", host.Depth())
	}
	root.Dispatch(keyDown('x'))
	if base.keyCount() != 1 {
		t.Fatalf("base keys = %d after clearing the stack, want 1", base.keyCount())
	}
}

func TestDismissOnEmptyStackIsNoOp(t *testing.T) {
	root, host, _ := modalHostFixture()

	if !root.Dispatch(event.CommandEvent{Selector: DismissModal}) {
		t.Fatal("dismiss command not claimed by the host")
	}
	if host.Depth() != 0 {
		t.Fatalf("depth = %d, want 0", host.Depth())
	}
}

func TestModalFocusReleasedOnDismiss(t *testing.T) {
	root, _, _ := modalHostFixture()
	before := root.Focus().ChainLen("")

	m := &recorder{size: graphics.Size{Width: 40, Height: 40}, focusable: true}
	showModal(root, &Modal{Content: m})
	if n := root.Focus().ChainLen(""); n != before+1 {
		t.Fatalf("chain length %d after show, want %d", n, before+1)
	}

	root.Dispatch(event.CommandEvent{Selector: DismissModal})
	if n := root.Focus().ChainLen(""); n != before {
		t.Fatalf("chain length %d after dismiss, want %d", n, before)
	}
}

func TestModalPlacement(t *testing.T) {
	root, host, _ := modalHostFixture()

	centered := &recorder{size: graphics.Size{Width: 40, Height: 20}}
	showModal(root, &Modal{Content: centered})
	if got := host.modals[0].pod.Origin(); got != (graphics.Point{X: 30, Y: 40}) {
		t.Fatalf("centered modal at %v", got)
	}

	placed := &recorder{size: graphics.Size{Width: 10, Height: 10}}
	pos := graphics.Point{X: 5, Y: 7}
	showModal(root, &Modal{Content: placed, Position: &pos})
	if got := host.modals[1].pod.Origin(); got != pos {
		t.Fatalf("positioned modal at %v, want %v", got, pos)
	}
}
