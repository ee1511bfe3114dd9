package graphics

// Color is a straight-alpha 8-bit RGBA color.
type Color struct {
	R uint8
	G uint8
	B uint8
	A uint8
}

// Common colors.
var (
	ColorTransparent = Color{}
	ColorBlack       = Color{A: 0xff}
	ColorWhite       = Color{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Brush describes how a shape is filled or stroked.
type Brush struct {
	Color Color
}

// SolidBrush creates a brush that fills with a single color.
func SolidBrush(c Color) Brush {
	return Brush{Color: c}
}

// Canvas is the drawing surface handed to the tree during a paint pass.
//
// The rendering backend is an external collaborator; the tree only relies
// on the save/restore transform discipline and the two shape primitives.
// Every Save must be paired with a Restore; Pod painting enforces the
// pairing with a deferred Restore so the stack unwinds even when a widget
// panics mid-paint.
type Canvas interface {
	// Save pushes the current transform state.
	Save()

	// Restore pops the most recent transform state.
	Restore()

	// Translate moves the origin by the given offset.
	Translate(dx, dy float64)

	// FillRect fills a rectangle in the current coordinate space.
	FillRect(rect Rect, brush Brush)

	// StrokeRect outlines a rectangle in the current coordinate space.
	StrokeRect(rect Rect, brush Brush, width float64)
}
