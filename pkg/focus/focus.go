// Package focus tracks keyboard focus across named scopes. Each scope
// holds an ordered chain of focusable node IDs; traversal cycles through
// the chain of the scope owning the currently focused node.
package focus

import "sync"

// DefaultScope is the scope nodes register into unless an ancestor
// re-scopes its subtree.
const DefaultScope = "default"

// Node describes one focusable participant as seen by the manager.
type Node struct {
	// WidgetID is the registering node's tree identity.
	WidgetID uint64
	// Scope names the chain the node belongs to.
	Scope string
	// IsFocused mirrors the manager's view at the last change.
	IsFocused bool
}

type scope struct {
	name  string
	chain []uint64
}

func (s *scope) indexOf(id uint64) int {
	for i, v := range s.chain {
		if v == id {
			return i
		}
	}
	return -1
}

// Manager owns the focus chains and the single focused node. All methods
// are safe for concurrent use, though the runtime only calls them from
// the event-loop goroutine.
type Manager struct {
	mu      sync.Mutex
	scopes  map[string]*scope
	focused uint64
}

// NewManager creates an empty focus manager with no focused node.
func NewManager() *Manager {
	return &Manager{scopes: make(map[string]*scope)}
}

// Register appends a node to its scope's chain in registration order.
// Re-registering an already present node is a no-op.
func (m *Manager) Register(n Node) {
	if n.WidgetID == 0 {
		return
	}
	name := n.Scope
	if name == "" {
		name = DefaultScope
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.scopes[name]
	if s == nil {
		s = &scope{name: name}
		m.scopes[name] = s
	}
	if s.indexOf(n.WidgetID) >= 0 {
		return
	}
	s.chain = append(s.chain, n.WidgetID)
}

// Unregister removes a node from every chain it appears in. If the node
// was focused, focus is cleared.
func (m *Manager) Unregister(id uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, s := range m.scopes {
		if i := s.indexOf(id); i >= 0 {
			s.chain = append(s.chain[:i], s.chain[i+1:]...)
		}
	}
	if m.focused == id {
		m.focused = 0
	}
}

// Focused returns the ID of the focused node, or 0 if none.
func (m *Manager) Focused() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.focused
}

// IsFocused reports whether the given node holds focus.
func (m *Manager) IsFocused(id uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return id != 0 && m.focused == id
}

// RequestFocus moves focus to the given node and returns the previous and
// new holders. A request naming an unregistered node is honored anyway;
// the ID may belong to a node added later in the same pass, and a truly
// stale ID simply never matches during key delivery.
func (m *Manager) RequestFocus(id uint64) (old, new uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old = m.focused
	m.focused = id
	return old, id
}

// ClearFocus drops focus entirely, returning the previous holder.
func (m *Manager) ClearFocus() (old uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old = m.focused
	m.focused = 0
	return old
}

// MoveFocus advances focus by delta steps through the chain owning the
// focused node, wrapping at either end. With no focused node it starts at
// the front (or back, for negative delta) of the default scope. Returns
// the previous and new holders; old == new means nothing changed.
func (m *Manager) MoveFocus(delta int) (old, new uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	old = m.focused
	new = old

	s := m.scopeOf(old)
	if s == nil || len(s.chain) == 0 {
		return old, new
	}
	if old == 0 {
		if delta >= 0 {
			new = s.chain[0]
		} else {
			new = s.chain[len(s.chain)-1]
		}
	} else {
		i := s.indexOf(old)
		if i < 0 {
			// Focused node was unregistered under us; restart the chain.
			new = s.chain[0]
		} else {
			new = s.chain[wrapIndex(i+delta, len(s.chain))]
		}
	}
	m.focused = new
	return old, new
}

// ChainLen returns the number of nodes registered in the named scope.
func (m *Manager) ChainLen(name string) int {
	if name == "" {
		name = DefaultScope
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.scopes[name]
	if s == nil {
		return 0
	}
	return len(s.chain)
}

// scopeOf finds the scope containing id, falling back to the default
// scope when id is 0 or unknown. Caller holds m.mu.
func (m *Manager) scopeOf(id uint64) *scope {
	if id != 0 {
		for _, s := range m.scopes {
			if s.indexOf(id) >= 0 {
				return s
			}
		}
	}
	return m.scopes[DefaultScope]
}

func wrapIndex(i, n int) int {
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
