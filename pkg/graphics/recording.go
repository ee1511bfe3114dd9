package graphics

// RecordingCanvas captures draw calls in device coordinates. Tests and
// headless tools use it to assert what a paint pass produced without a
// real rasterizer.
type RecordingCanvas struct {
	transform TransformStack
	ops       []DrawOp
}

// DrawOp is a single recorded draw call with its rect already mapped to
// device coordinates.
type DrawOp struct {
	Kind        DrawOpKind
	Rect        Rect
	Brush       Brush
	StrokeWidth float64
}

// DrawOpKind identifies the primitive a DrawOp recorded.
type DrawOpKind int

const (
	// OpFillRect records a FillRect call.
	OpFillRect DrawOpKind = iota
	// OpStrokeRect records a StrokeRect call.
	OpStrokeRect
)

// Save pushes the transform state.
func (c *RecordingCanvas) Save() {
	c.transform.Save()
}

// Restore pops the transform state.
func (c *RecordingCanvas) Restore() {
	c.transform.Restore()
}

// Translate offsets the current coordinate space.
func (c *RecordingCanvas) Translate(dx, dy float64) {
	c.transform.Translate(dx, dy)
}

// FillRect records a filled rectangle.
func (c *RecordingCanvas) FillRect(rect Rect, brush Brush) {
	c.ops = append(c.ops, DrawOp{
		Kind:  OpFillRect,
		Rect:  c.transform.ApplyRect(rect),
		Brush: brush,
	})
}

// StrokeRect records an outlined rectangle.
func (c *RecordingCanvas) StrokeRect(rect Rect, brush Brush, width float64) {
	c.ops = append(c.ops, DrawOp{
		Kind:        OpStrokeRect,
		Rect:        c.transform.ApplyRect(rect),
		Brush:       brush,
		StrokeWidth: width,
	})
}

// Ops returns the recorded draw calls in order.
func (c *RecordingCanvas) Ops() []DrawOp {
	return c.ops
}

// Reset discards recorded ops and transform history.
func (c *RecordingCanvas) Reset() {
	c.ops = nil
	c.transform = TransformStack{}
}

// Balanced reports whether every Save has been matched by a Restore.
func (c *RecordingCanvas) Balanced() bool {
	return c.transform.Depth() == 0
}
