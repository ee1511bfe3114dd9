package widget

import "sync/atomic"

// NodeID identifies a Pod in the tree. 0 is reserved as invalid; the
// root context uses it for its synthetic state.
type NodeID uint64

var nextNodeID atomic.Uint64

// NewNodeID allocates a fresh process-wide node identity.
func NewNodeID() NodeID {
	return NodeID(nextNodeID.Add(1))
}
