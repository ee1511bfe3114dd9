package widgets

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/widget"
)

func listWindow() graphics.Size {
	return graphics.Size{Width: 50, Height: 200}
}

func drainListRequests(root *widget.Root) []ListChildRequest {
	var out []ListChildRequest
	for _, m := range root.Messages() {
		if req, ok := m.Payload.(ListChildRequest); ok {
			out = append(out, req)
		}
	}
	return out
}

func intsEqual(got, want []int) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}

func rng(start, end int) []int {
	var out []int
	for i := start; i < end; i++ {
		out = append(out, i)
	}
	return out
}

func TestListWindowingRoundTrip(t *testing.T) {
	list := NewVirtualList(1000, 20, nil)
	root := widget.NewRoot(list, nil)

	list.SetViewport(graphics.RectFromLTWH(0, 100, 50, 200))
	root.LayoutRoot(listWindow())

	reqs := drainListRequests(root)
	if len(reqs) != 1 {
		t.Fatalf("got %d requests, want 1", len(reqs))
	}
	if !intsEqual(reqs[0].Add, rng(5, 15)) || len(reqs[0].Remove) != 0 {
		t.Fatalf("request = %+v, want add 5..14", reqs[0])
	}

	// Reconcile: supply the requested children.
	for _, i := range reqs[0].Add {
		list.SetChild(i, &Box{Size: graphics.Size{Width: 50, Height: 20}})
	}
	root.RequestUpdate()
	root.Update()
	root.LayoutRoot(listWindow())

	if pod := list.ChildAt(5); pod == nil || pod.Origin().Y != 0 {
		t.Fatalf("item 5 missing or misplaced: %+v", pod)
	}
	if pod := list.ChildAt(14); pod == nil || pod.Origin().Y != 180 {
		t.Fatalf("item 14 missing or misplaced: %+v", pod)
	}

	// Scroll a window's worth: symmetric difference only.
	list.SetViewport(graphics.RectFromLTWH(0, 200, 50, 200))
	root.RequestLayout()
	root.LayoutRoot(listWindow())

	reqs = drainListRequests(root)
	if len(reqs) != 1 {
		t.Fatalf("got %d requests after scroll, want 1", len(reqs))
	}
	if !intsEqual(reqs[0].Remove, rng(5, 10)) || !intsEqual(reqs[0].Add, rng(15, 20)) {
		t.Fatalf("request = %+v, want remove 5..9 add 15..19", reqs[0])
	}
	if list.ChildAt(5) != nil {
		t.Fatal("item 5 still materialized after leaving the window")
	}
	if list.ChildAt(12) == nil {
		t.Fatal("item 12 dropped despite staying visible")
	}
}

func TestListRetireReleasesFocus(t *testing.T) {
	list := NewVirtualList(10, 20, nil)
	root := widget.NewRoot(list, nil)
	list.SetViewport(graphics.RectFromLTWH(0, 0, 50, 40))
	root.LayoutRoot(graphics.Size{Width: 50, Height: 40})
	root.Messages()

	list.SetChild(0, &Box{Size: graphics.Size{Width: 50, Height: 20}, Focusable: true})
	list.SetChild(1, &Box{Size: graphics.Size{Width: 50, Height: 20}, Focusable: true})
	root.RequestUpdate()
	root.Update()
	if n := root.Focus().ChainLen(""); n != 2 {
		t.Fatalf("chain length %d, want 2", n)
	}

	list.SetViewport(graphics.RectFromLTWH(0, 160, 50, 40))
	root.RequestLayout()
	root.LayoutRoot(graphics.Size{Width: 50, Height: 40})
	if n := root.Focus().ChainLen(""); n != 0 {
		t.Fatalf("chain length %d after scroll-out, want 0", n)
	}
}

func TestListAsyncBuilder(t *testing.T) {
	built := make(chan int, 64)
	builder := func(ctx context.Context, index int) (widget.Widget, error) {
		built <- index
		return &Box{Size: graphics.Size{Width: 50, Height: 20}}, nil
	}
	list := NewVirtualList(100, 20, builder)
	root := widget.NewRoot(list, nil)

	list.SetViewport(graphics.RectFromLTWH(0, 0, 50, 60))
	root.Update()
	root.LayoutRoot(graphics.Size{Width: 50, Height: 60})

	deadline := time.After(2 * time.Second)
	for list.Pending() > 0 {
		select {
		case <-deadline:
			t.Fatalf("builds never completed, %d pending", list.Pending())
		case <-time.After(time.Millisecond):
		}
		root.Update()
	}
	root.LayoutRoot(graphics.Size{Width: 50, Height: 60})

	for i := 0; i < 3; i++ {
		if list.ChildAt(i) == nil {
			t.Fatalf("item %d never materialized", i)
		}
	}
	if root.NeedsUpdate() {
		t.Fatal("list still re-arming with nothing pending")
	}
}

func TestListFailedBuildLeavesIndexBlank(t *testing.T) {
	builder := func(ctx context.Context, index int) (widget.Widget, error) {
		if index == 1 {
			return nil, fmt.Errorf("no data for %d", index)
		}
		return &Box{Size: graphics.Size{Width: 50, Height: 20}}, nil
	}
	list := NewVirtualList(10, 20, builder)
	root := widget.NewRoot(list, nil)

	list.SetViewport(graphics.RectFromLTWH(0, 0, 50, 60))
	root.Update()
	root.LayoutRoot(graphics.Size{Width: 50, Height: 60})

	deadline := time.After(2 * time.Second)
	for list.Pending() > 0 {
		select {
		case <-deadline:
			t.Fatal("builds never completed")
		case <-time.After(time.Millisecond):
		}
		root.Update()
	}

	if list.ChildAt(0) == nil || list.ChildAt(2) == nil {
		t.Fatal("healthy items missing")
	}
	if list.ChildAt(1) != nil {
		t.Fatal("failed item materialized anyway")
	}
	// Blank indices are skipped, not fatal.
	root.LayoutRoot(graphics.Size{Width: 50, Height: 60})
	root.Paint(&graphics.RecordingCanvas{})
}

func TestListScrollOutCancelsBuilds(t *testing.T) {
	builder := func(ctx context.Context, index int) (widget.Widget, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	list := NewVirtualList(1000, 20, builder)
	root := widget.NewRoot(list, nil)

	list.SetViewport(graphics.RectFromLTWH(0, 0, 50, 200))
	root.Update()
	root.LayoutRoot(listWindow())
	if list.Pending() != 10 {
		t.Fatalf("pending = %d, want 10", list.Pending())
	}

	list.SetViewport(graphics.RectFromLTWH(0, 10000, 50, 200))
	root.RequestLayout()
	root.LayoutRoot(listWindow())
	if list.Pending() != 10 {
		t.Fatalf("pending = %d after full scroll, want 10 fresh builds", list.Pending())
	}
	for i := 0; i < 10; i++ {
		if _, ok := list.inflight[i]; ok {
			t.Fatalf("build %d not cancelled after leaving the window", i)
		}
	}
}

func TestListEmptyAndZeroExtent(t *testing.T) {
	empty := NewVirtualList(0, 20, nil)
	root := widget.NewRoot(empty, nil)
	root.LayoutRoot(graphics.Size{Width: 50, Height: 40})
	if len(root.Messages()) != 0 {
		t.Fatal("empty list requested children")
	}

	degenerate := NewVirtualList(10, 0, nil)
	root = widget.NewRoot(degenerate, nil)
	root.LayoutRoot(graphics.Size{Width: 50, Height: 40})
	if len(root.Messages()) != 0 {
		t.Fatal("zero-extent list requested children")
	}
}
