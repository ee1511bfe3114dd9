package main

import (
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/loomui/loom/pkg/graphics"
)

// screenCanvas adapts a tcell screen to the graphics.Canvas interface.
// One logical pixel maps to one terminal cell; the transform stack
// carries the Pod translations of the paint traversal.
type screenCanvas struct {
	screen    tcell.Screen
	transform graphics.TransformStack
}

func newScreenCanvas(screen tcell.Screen) *screenCanvas {
	return &screenCanvas{screen: screen}
}

func (c *screenCanvas) Save()    { c.transform.Save() }
func (c *screenCanvas) Restore() { c.transform.Restore() }

func (c *screenCanvas) Translate(dx, dy float64) { c.transform.Translate(dx, dy) }

func toStyle(brush graphics.Brush) tcell.Style {
	col := brush.Color
	return tcell.StyleDefault.Background(tcell.NewRGBColor(int32(col.R), int32(col.G), int32(col.B)))
}

// cellBounds maps a device rect onto whole cells, clipped to the screen.
func (c *screenCanvas) cellBounds(rect graphics.Rect) (x0, y0, x1, y1 int, ok bool) {
	device := c.transform.ApplyRect(rect)
	w, h := c.screen.Size()
	x0 = int(math.Floor(device.Left))
	y0 = int(math.Floor(device.Top))
	x1 = int(math.Ceil(device.Right))
	y1 = int(math.Ceil(device.Bottom))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 > w {
		x1 = w
	}
	if y1 > h {
		y1 = h
	}
	return x0, y0, x1, y1, x0 < x1 && y0 < y1
}

func (c *screenCanvas) FillRect(rect graphics.Rect, brush graphics.Brush) {
	if brush.Color == graphics.ColorTransparent {
		return
	}
	x0, y0, x1, y1, ok := c.cellBounds(rect)
	if !ok {
		return
	}
	style := toStyle(brush)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			c.screen.SetContent(x, y, ' ', nil, style)
		}
	}
}

func (c *screenCanvas) StrokeRect(rect graphics.Rect, brush graphics.Brush, width float64) {
	x0, y0, x1, y1, ok := c.cellBounds(rect)
	if !ok {
		return
	}
	style := toStyle(brush)
	for x := x0; x < x1; x++ {
		c.screen.SetContent(x, y0, ' ', nil, style)
		c.screen.SetContent(x, y1-1, ' ', nil, style)
	}
	for y := y0; y < y1; y++ {
		c.screen.SetContent(x0, y, ' ', nil, style)
		c.screen.SetContent(x1-1, y, ' ', nil, style)
	}
}
