package focus

import "testing"

func register(m *Manager, scope string, ids ...uint64) {
	for _, id := range ids {
		m.Register(Node{WidgetID: id, Scope: scope})
	}
}

func TestMoveFocusCyclesForward(t *testing.T) {
	m := NewManager()
	register(m, "", 10, 20, 30)

	want := []uint64{10, 20, 30, 10}
	for i, w := range want {
		_, got := m.MoveFocus(1)
		if got != w {
			t.Fatalf("step %d: focused %d, want %d", i, got, w)
		}
	}
}

func TestMoveFocusCyclesBackward(t *testing.T) {
	m := NewManager()
	register(m, "", 10, 20, 30)

	_, got := m.MoveFocus(-1)
	if got != 30 {
		t.Fatalf("first backward step focused %d, want 30", got)
	}
	_, got = m.MoveFocus(-1)
	if got != 20 {
		t.Fatalf("second backward step focused %d, want 20", got)
	}
}

func TestMoveFocusRoundTripIsIdempotent(t *testing.T) {
	m := NewManager()
	register(m, "", 1, 2, 3, 4)
	m.RequestFocus(2)

	m.MoveFocus(1)
	_, got := m.MoveFocus(-1)
	if got != 2 {
		t.Fatalf("forward then backward focused %d, want 2", got)
	}
}

func TestMoveFocusEmptyChain(t *testing.T) {
	m := NewManager()
	old, new := m.MoveFocus(1)
	if old != 0 || new != 0 {
		t.Fatalf("empty chain moved focus: old=%d new=%d", old, new)
	}
}

func TestMoveFocusStaysInScope(t *testing.T) {
	m := NewManager()
	register(m, "", 1, 2)
	register(m, "dialog", 100, 200)
	m.RequestFocus(100)

	_, got := m.MoveFocus(1)
	if got != 200 {
		t.Fatalf("focused %d, want 200", got)
	}
	_, got = m.MoveFocus(1)
	if got != 100 {
		t.Fatalf("wrap focused %d, want 100", got)
	}
}

func TestUnregisterFocusedClearsFocus(t *testing.T) {
	m := NewManager()
	register(m, "", 1, 2, 3)
	m.RequestFocus(2)
	m.Unregister(2)

	if got := m.Focused(); got != 0 {
		t.Fatalf("focused %d after unregister, want 0", got)
	}
	if n := m.ChainLen(""); n != 2 {
		t.Fatalf("chain length %d, want 2", n)
	}
}

func TestRequestFocusToleratesUnknownID(t *testing.T) {
	m := NewManager()
	register(m, "", 1)

	old, new := m.RequestFocus(999)
	if old != 0 || new != 999 {
		t.Fatalf("RequestFocus(999) = (%d, %d)", old, new)
	}
	// Traversal recovers by restarting the default chain.
	_, got := m.MoveFocus(1)
	if got != 1 {
		t.Fatalf("focused %d after stale focus, want 1", got)
	}
}

func TestRegisterTwiceIsNoOp(t *testing.T) {
	m := NewManager()
	register(m, "", 7, 7)
	if n := m.ChainLen(""); n != 1 {
		t.Fatalf("chain length %d, want 1", n)
	}
}
