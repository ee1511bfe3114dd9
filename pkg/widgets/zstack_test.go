package widgets

import (
	"testing"

	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/widget"
)

// threeLayerStack builds a 100x100 base, a 50x50 middle layer and a
// 20x20 top layer, all anchored at the top-left corner.
func threeLayerStack() (*widget.Root, *ZStack) {
	base := &Box{Size: graphics.Size{Width: 100, Height: 100}}
	mid := &Box{Size: graphics.Size{Width: 50, Height: 50}}
	top := &Box{Size: graphics.Size{Width: 20, Height: 20}}

	z := NewZStack(base)
	z.AddLayer(top, graphics.Size{}, graphics.Size{Width: 20, Height: 20}, graphics.UnitTopLeft, graphics.Point{})
	z.AddLayer(mid, graphics.Size{}, graphics.Size{Width: 50, Height: 50}, graphics.UnitTopLeft, graphics.Point{})

	root := widget.NewRoot(z, nil)
	root.LayoutRoot(graphics.Size{Width: 100, Height: 100})
	return root, z
}

func layerHot(z *ZStack) []bool {
	out := make([]bool, len(z.layers))
	for i, l := range z.layers {
		out[i] = l.pod.IsHot()
	}
	return out
}

func TestZStackFrontmostLayerWins(t *testing.T) {
	root, z := threeLayerStack()

	// All three layers cover (10, 10); only the frontmost becomes hot.
	root.Dispatch(pointerMove(10, 10))
	if got := layerHot(z); !got[0] || got[1] || got[2] {
		t.Fatalf("hot layers = %v, want only the front", got)
	}
}

func TestZStackMiddleLayerWhenFrontMissed(t *testing.T) {
	root, z := threeLayerStack()

	// (40, 40) misses the 20x20 front layer but hits the middle one.
	root.Dispatch(pointerMove(40, 40))
	if got := layerHot(z); got[0] || !got[1] || got[2] {
		t.Fatalf("hot layers = %v, want only the middle", got)
	}
}

func TestZStackBaseWhenAllLayersMissed(t *testing.T) {
	root, z := threeLayerStack()

	root.Dispatch(pointerMove(80, 80))
	if got := layerHot(z); got[0] || got[1] || !got[2] {
		t.Fatalf("hot layers = %v, want only the base", got)
	}
}

func TestZStackObstructedLayerCannotGrab(t *testing.T) {
	root, z := threeLayerStack()

	root.Dispatch(pointerMove(10, 10))
	root.Dispatch(pointerDown(10, 10))

	if !z.layers[0].pod.HasActive() {
		t.Fatal("front layer did not grab the pointer")
	}
	if z.layers[1].pod.HasActive() || z.layers[2].pod.HasActive() {
		t.Fatal("an obstructed layer grabbed the pointer")
	}
}

func TestZStackHoverExitWhenFrontTakesOver(t *testing.T) {
	root, z := threeLayerStack()

	// Hover the middle layer alone, then slide under the front layer:
	// the middle layer must drop its hot state.
	root.Dispatch(pointerMove(40, 40))
	root.Dispatch(pointerMove(10, 10))
	if got := layerHot(z); !got[0] || got[1] {
		t.Fatalf("hot layers = %v after takeover, want only the front", got)
	}
}

func TestZStackLayerPlacement(t *testing.T) {
	base := &Box{Size: graphics.Size{Width: 100, Height: 100}}
	corner := &Box{Size: graphics.Size{Width: 10, Height: 10}}
	z := NewZStack(base)
	z.AddLayer(corner, graphics.Size{}, graphics.Size{Width: 10, Height: 10}, graphics.UnitBottomRight, graphics.Point{X: -5, Y: -5})

	root := widget.NewRoot(z, nil)
	root.LayoutRoot(graphics.Size{Width: 100, Height: 100})

	got := z.layers[0].pod.Origin()
	want := graphics.Point{X: 85, Y: 85}
	if got != want {
		t.Fatalf("layer origin = %v, want %v", got, want)
	}
}

func TestZStackZeroAreaBase(t *testing.T) {
	base := &Box{}
	z := NewZStack(base)
	z.AddLayer(&Box{Size: graphics.Size{Width: 10, Height: 10}}, graphics.Size{Width: 1, Height: 1}, graphics.Size{}, graphics.UnitCenter, graphics.Point{})

	root := widget.NewRoot(z, nil)
	root.LayoutRoot(graphics.Size{})

	if size := root.Pod().Size(); !size.IsEmpty() {
		t.Fatalf("zero-area stack sized %v", size)
	}
}
