// Package align implements cross-subtree alignment guides: named, axis
// tagged query points that let a container align sibling subtrees without
// knowing their internal layout.
package align

import "sync/atomic"

// Axis selects the dimension an alignment guide measures.
type Axis int

const (
	// Horizontal guides yield x-axis values.
	Horizontal Axis = iota
	// Vertical guides yield y-axis values.
	Vertical
)

// Merge selects how multiple contributions inside a subtree combine.
type Merge int

const (
	// MergeMean averages all contributions.
	MergeMean Merge = iota
	// MergeMin keeps the smallest contribution.
	MergeMin
	// MergeMax keeps the largest contribution.
	MergeMax
)

// GuideID is the identity of an alignment guide. Two call sites referring
// to the same guide share an ID. 0 is reserved as invalid.
type GuideID uint64

var nextGuideID atomic.Uint64

// NewGuideID allocates a fresh process-wide guide identity.
func NewGuideID() GuideID {
	return GuideID(nextGuideID.Add(1))
}

// SingleAlignment is a value-typed alignment query key: an identity, the
// axis it measures, and the policy merging contributions. Keys compare by
// identity.
type SingleAlignment struct {
	ID    GuideID
	Axis  Axis
	Merge Merge
}

// Built-in guides. Leading/Top resolve to 0, Trailing/Bottom to a node's
// extent and HCenter/VCenter to half the extent, without recursing.
var (
	Leading  = SingleAlignment{ID: NewGuideID(), Axis: Horizontal, Merge: MergeMin}
	HCenter  = SingleAlignment{ID: NewGuideID(), Axis: Horizontal, Merge: MergeMean}
	Trailing = SingleAlignment{ID: NewGuideID(), Axis: Horizontal, Merge: MergeMax}

	Top     = SingleAlignment{ID: NewGuideID(), Axis: Vertical, Merge: MergeMin}
	VCenter = SingleAlignment{ID: NewGuideID(), Axis: Vertical, Merge: MergeMean}
	Bottom  = SingleAlignment{ID: NewGuideID(), Axis: Vertical, Merge: MergeMax}

	FirstBaseline = SingleAlignment{ID: NewGuideID(), Axis: Vertical, Merge: MergeMin}
	LastBaseline  = SingleAlignment{ID: NewGuideID(), Axis: Vertical, Merge: MergeMax}
)

// Horiz creates a custom horizontal guide with the given merge policy.
func Horiz(merge Merge) SingleAlignment {
	return SingleAlignment{ID: NewGuideID(), Axis: Horizontal, Merge: merge}
}

// Vert creates a custom vertical guide with the given merge policy.
func Vert(merge Merge) SingleAlignment {
	return SingleAlignment{ID: NewGuideID(), Axis: Vertical, Merge: merge}
}

// ApplyOffset re-bases a contributed value by the accumulated origin on
// the guide's axis, moving it into an ancestor coordinate space.
func (a SingleAlignment) ApplyOffset(x, y, value float64) float64 {
	if a.Axis == Horizontal {
		return value + x
	}
	return value + y
}

// Result accumulates contributions for one alignment query. It is created
// at the start of a query, threaded through the subtree and discarded
// after Reap.
type Result struct {
	value float64
	count int
}

// Aggregate folds one contribution in under the key's merge policy.
func (r *Result) Aggregate(alignment SingleAlignment, value float64) {
	switch alignment.Merge {
	case MergeMax:
		if r.count == 0 || value > r.value {
			r.value = value
		}
	case MergeMin:
		if r.count == 0 || value < r.value {
			r.value = value
		}
	case MergeMean:
		r.value += value
	}
	r.count++
}

// Count returns the number of contributions seen so far.
func (r *Result) Count() int {
	return r.count
}

// Reap resolves the accumulated contributions into a single value. A
// query with no contributors resolves to 0; the caller decides whether
// that is protocol misuse worth a warning.
func (r *Result) Reap(alignment SingleAlignment) float64 {
	if alignment.Merge == MergeMean {
		if r.count == 0 {
			return 0
		}
		return r.value / float64(r.count)
	}
	return r.value
}
