package graphics

import "golang.org/x/image/math/f64"

// TransformStack tracks the current affine transform and a save/restore
// history for canvas implementations. The zero value is ready to use with
// the identity transform.
type TransformStack struct {
	current f64.Aff3
	saved   []f64.Aff3
	init    bool
}

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

func (t *TransformStack) ensure() {
	if !t.init {
		t.current = identity
		t.init = true
	}
}

// Save pushes the current transform onto the history stack.
func (t *TransformStack) Save() {
	t.ensure()
	t.saved = append(t.saved, t.current)
}

// Restore pops the most recently saved transform. Restoring with an empty
// history resets to the identity transform rather than panicking; an
// unbalanced restore is a backend bug, not a tree-consistency failure.
func (t *TransformStack) Restore() {
	t.ensure()
	if n := len(t.saved); n > 0 {
		t.current = t.saved[n-1]
		t.saved = t.saved[:n-1]
		return
	}
	t.current = identity
}

// Translate post-multiplies a translation onto the current transform.
func (t *TransformStack) Translate(dx, dy float64) {
	t.ensure()
	// Post-multiply: [a b c; d e f] * [1 0 dx; 0 1 dy].
	t.current[2] += t.current[0]*dx + t.current[1]*dy
	t.current[5] += t.current[3]*dx + t.current[4]*dy
}

// Apply maps a point through the current transform.
func (t *TransformStack) Apply(p Point) Point {
	t.ensure()
	return Point{
		X: t.current[0]*p.X + t.current[1]*p.Y + t.current[2],
		Y: t.current[3]*p.X + t.current[4]*p.Y + t.current[5],
	}
}

// ApplyRect maps an axis-aligned rect through the current transform.
// Only translation components are honored; the tree never rotates or
// scales during paint.
func (t *TransformStack) ApplyRect(r Rect) Rect {
	origin := t.Apply(Point{X: r.Left, Y: r.Top})
	return RectFromLTWH(origin.X, origin.Y, r.Width(), r.Height())
}

// Depth returns the number of unmatched Save calls.
func (t *TransformStack) Depth() int {
	return len(t.saved)
}
