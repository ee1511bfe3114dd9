// Package layout provides the constraint type exchanged between a parent
// and a child during layout negotiation.
package layout

import (
	"math"

	"github.com/loomui/loom/pkg/graphics"
)

// Inf marks an unbounded maximum extent.
var Inf = math.Inf(1)

// Constraints is an immutable min/max size window passed from a parent to
// a child during a layout pass. Invariant: Min.Width <= Max.Width and
// Min.Height <= Max.Height; either Max dimension may be Inf. A new value
// is created for every pass, never mutated in place.
type Constraints struct {
	Min graphics.Size
	Max graphics.Size
}

// Tight creates constraints that admit exactly one size.
func Tight(size graphics.Size) Constraints {
	return Constraints{Min: size, Max: size}
}

// Loose creates constraints from zero up to the given size.
func Loose(size graphics.Size) Constraints {
	return Constraints{Max: size}
}

// Unbounded creates constraints with no maximum on either axis.
func Unbounded() Constraints {
	return Constraints{Max: graphics.Size{Width: Inf, Height: Inf}}
}

// IsTight reports whether the window admits exactly one size.
func (c Constraints) IsTight() bool {
	return c.Min == c.Max
}

// IsBoundedWidth reports whether the max width is finite.
func (c Constraints) IsBoundedWidth() bool {
	return !math.IsInf(c.Max.Width, 1)
}

// IsBoundedHeight reports whether the max height is finite.
func (c Constraints) IsBoundedHeight() bool {
	return !math.IsInf(c.Max.Height, 1)
}

// Constrain clamps a size into the window.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  clamp(size.Width, c.Min.Width, c.Max.Width),
		Height: clamp(size.Height, c.Min.Height, c.Max.Height),
	}
}

// Contains reports whether the size satisfies the window on both axes.
func (c Constraints) Contains(size graphics.Size) bool {
	return size.Width >= c.Min.Width && size.Width <= c.Max.Width &&
		size.Height >= c.Min.Height && size.Height <= c.Max.Height
}

// Loosen relaxes the minimum to zero while preserving the maximum,
// including an infinite maximum.
func (c Constraints) Loosen() Constraints {
	return Constraints{Max: c.Max}
}

// Shrink reduces the maximum by the given amounts, clamping at zero and
// keeping the minimum within the new maximum. An infinite maximum stays
// infinite.
func (c Constraints) Shrink(dw, dh float64) Constraints {
	out := c
	if c.IsBoundedWidth() {
		out.Max.Width = math.Max(0, c.Max.Width-dw)
		out.Min.Width = math.Min(out.Min.Width, out.Max.Width)
	}
	if c.IsBoundedHeight() {
		out.Max.Height = math.Max(0, c.Max.Height-dh)
		out.Min.Height = math.Min(out.Min.Height, out.Max.Height)
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
