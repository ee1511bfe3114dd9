package widgets

import (
	"context"
	"sort"
	"sync"

	"github.com/loomui/loom/pkg/align"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
	"github.com/loomui/loom/pkg/widget"
)

// ItemBuilder constructs the widget for one list index. It runs on its
// own goroutine and must honor ctx cancellation; the result is handed
// back to the tree over a channel, never by touching the tree directly.
type ItemBuilder func(ctx context.Context, index int) (widget.Widget, error)

// ListChildRequest reports a change of the visible index window. Add
// and Remove are disjoint: the symmetric difference between the old and
// new windows. Drivers reconciling children manually respond with
// SetChild and RemoveChild.
type ListChildRequest struct {
	Add    []int
	Remove []int
}

type buildResult struct {
	index int
	w     widget.Widget
	err   error
}

type listEdit struct {
	index int
	w     widget.Widget // nil means remove
}

// VirtualList virtualizes a fixed-extent column of items: only indices
// intersecting the viewport are materialized as Pods. Items appear
// either through the configured ItemBuilder (asynchronously) or through
// the SetChild/RemoveChild reconciler surface; indices with no child
// yet are skipped by layout and paint.
type VirtualList struct {
	widget.Base

	count   int
	extent  float64
	builder ItemBuilder

	children         map[int]*widget.Pod
	visStart, visEnd int

	mu       sync.Mutex
	viewport graphics.Rect
	edits    []listEdit

	inflight map[int]context.CancelFunc
	results  chan buildResult
}

// NewVirtualList creates a list of count items, each extent tall. The
// builder may be nil; the driver then supplies children via SetChild in
// response to ListChildRequest messages.
func NewVirtualList(count int, extent float64, builder ItemBuilder) *VirtualList {
	return &VirtualList{
		count:    count,
		extent:   extent,
		builder:  builder,
		children: make(map[int]*widget.Pod),
		inflight: make(map[int]context.CancelFunc),
	}
}

// SetViewport stores the window of content the list should materialize,
// in content coordinates. The caller arms a layout pass afterward.
func (l *VirtualList) SetViewport(r graphics.Rect) {
	l.mu.Lock()
	l.viewport = r
	l.mu.Unlock()
}

// Viewport returns the current content viewport.
func (l *VirtualList) Viewport() graphics.Rect {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.viewport
}

// SetChild supplies the widget for an index. Applied on the next update
// pass; the caller arms one afterward.
func (l *VirtualList) SetChild(index int, w widget.Widget) {
	l.mu.Lock()
	l.edits = append(l.edits, listEdit{index: index, w: w})
	l.mu.Unlock()
}

// RemoveChild discards the child at an index and cancels any build
// still in flight for it. Applied on the next update pass.
func (l *VirtualList) RemoveChild(index int) {
	l.mu.Lock()
	l.edits = append(l.edits, listEdit{index: index})
	l.mu.Unlock()
}

// ChildAt returns the materialized Pod for an index, nil if blank.
func (l *VirtualList) ChildAt(index int) *widget.Pod {
	return l.children[index]
}

// Pending reports how many builds are still in flight.
func (l *VirtualList) Pending() int {
	return len(l.inflight)
}

// indices returns the materialized indices in ascending order.
func (l *VirtualList) indices() []int {
	out := make([]int, 0, len(l.children))
	for i := range l.children {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

func (l *VirtualList) Event(cx *widget.EventContext, ev event.Event) {
	if pe, ok := ev.(event.PointerEvent); ok && pe.Phase == event.PointerScroll && cx.IsHot() {
		l.scrollBy(pe.Scroll.Y)
		cx.RequestLayout()
		cx.SetHandled()
		return
	}
	for _, i := range l.indices() {
		l.children[i].Event(cx, ev)
	}
}

func (l *VirtualList) scrollBy(dy float64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	limit := float64(l.count)*l.extent - l.viewport.Height()
	if limit < 0 {
		limit = 0
	}
	top := l.viewport.Top + dy
	if top < 0 {
		top = 0
	}
	if top > limit {
		top = limit
	}
	l.viewport = l.viewport.Translate(0, top-l.viewport.Top)
}

func (l *VirtualList) Lifecycle(cx *widget.LifecycleContext, ev widget.LifecycleEvent) {
	for _, i := range l.indices() {
		l.children[i].Lifecycle(cx, ev)
	}
}

// Update adopts driver edits and finished builds, then re-arms itself
// while work remains so it keeps being polled.
func (l *VirtualList) Update(cx *widget.UpdateContext) {
	l.ensureResults(cx.Config().List.ResultBuffer)

	l.mu.Lock()
	edits := l.edits
	l.edits = nil
	l.mu.Unlock()

	changed := false
	for _, e := range edits {
		if cancel, ok := l.inflight[e.index]; ok {
			cancel()
			delete(l.inflight, e.index)
		}
		if old, ok := l.children[e.index]; ok {
			cx.RetireChild(old)
			delete(l.children, e.index)
			changed = true
		}
		if e.w != nil {
			l.children[e.index] = widget.NewPod(e.w)
			changed = true
		}
	}

drain:
	for {
		select {
		case res := <-l.results:
			cancel, ok := l.inflight[res.index]
			if !ok {
				// Retired while building; drop the result.
				continue
			}
			cancel()
			delete(l.inflight, res.index)
			if res.err != nil {
				errors.Warnf("widgets.VirtualList.Update", errors.KindList,
					"building item %d failed: %v", res.index, res.err)
				continue
			}
			l.children[res.index] = widget.NewPod(res.w)
			changed = true
		default:
			break drain
		}
	}

	if changed {
		cx.ChildrenChanged()
		cx.RequestLayout()
	}
	if len(l.inflight) > 0 {
		cx.RequestUpdate()
	}

	for _, i := range l.indices() {
		l.children[i].Update(cx)
	}
}

func (l *VirtualList) ensureResults(capacity int) {
	if l.results == nil {
		if capacity <= 0 {
			capacity = 64
		}
		l.results = make(chan buildResult, capacity)
	}
}

func (l *VirtualList) Measure(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	content := graphics.Size{Width: layout.Inf, Height: float64(l.count) * l.extent}
	return proposed.Constrain(content)
}

func (l *VirtualList) Layout(cx *widget.LayoutContext, proposed layout.Constraints) graphics.Size {
	size := proposed.Constrain(graphics.Size{
		Width:  layout.Inf,
		Height: float64(l.count) * l.extent,
	})

	l.mu.Lock()
	viewport := l.viewport
	l.mu.Unlock()
	if viewport.IsEmpty() {
		viewport = graphics.RectFromLTWH(0, 0, size.Width, size.Height)
	}

	start, end := l.visibleRange(viewport)
	if start != l.visStart || end != l.visEnd {
		req := l.diffRange(cx, start, end)
		l.visStart, l.visEnd = start, end
		if len(req.Add) > 0 || len(req.Remove) > 0 {
			cx.Submit(req)
		}
	}

	for i := start; i < end; i++ {
		pod := l.children[i]
		if pod == nil {
			continue
		}
		pod.Layout(cx, layout.Tight(graphics.Size{Width: size.Width, Height: l.extent}))
		pod.SetOrigin(graphics.Point{Y: float64(i)*l.extent - viewport.Top})
	}
	return size
}

// visibleRange maps the viewport onto item indices, clamped to the
// logical count. End is exclusive.
func (l *VirtualList) visibleRange(viewport graphics.Rect) (int, int) {
	if l.count == 0 || l.extent <= 0 {
		return 0, 0
	}
	start := int(viewport.Top / l.extent)
	end := int(viewport.Bottom / l.extent)
	if float64(end)*l.extent < viewport.Bottom {
		end++
	}
	if start < 0 {
		start = 0
	}
	if end > l.count {
		end = l.count
	}
	if start > end {
		start = end
	}
	return start, end
}

// diffRange retires children leaving the window, starts builds for
// indices entering it and reports the symmetric difference.
func (l *VirtualList) diffRange(cx *widget.LayoutContext, start, end int) ListChildRequest {
	var req ListChildRequest
	for i := l.visStart; i < l.visEnd; i++ {
		if i >= start && i < end {
			continue
		}
		req.Remove = append(req.Remove, i)
		if cancel, ok := l.inflight[i]; ok {
			cancel()
			delete(l.inflight, i)
		}
		if pod, ok := l.children[i]; ok {
			cx.RetireChild(pod)
			delete(l.children, i)
		}
	}
	for i := start; i < end; i++ {
		if i >= l.visStart && i < l.visEnd {
			continue
		}
		req.Add = append(req.Add, i)
		if l.builder != nil {
			l.startBuild(cx, i)
		}
	}
	return req
}

func (l *VirtualList) startBuild(cx *widget.LayoutContext, index int) {
	if _, ok := l.children[index]; ok {
		return
	}
	if _, ok := l.inflight[index]; ok {
		return
	}
	l.ensureResults(cx.Config().List.ResultBuffer)
	ctx, cancel := context.WithCancel(context.Background())
	l.inflight[index] = cancel
	cx.RequestUpdate()
	go func() {
		w, err := l.builder(ctx, index)
		select {
		case l.results <- buildResult{index: index, w: w, err: err}:
		case <-ctx.Done():
		}
	}()
}

func (l *VirtualList) Align(cx *widget.AlignContext, alignment align.SingleAlignment) {
	for _, i := range l.indices() {
		l.children[i].Align(cx, alignment)
	}
}

func (l *VirtualList) Paint(cx *widget.PaintContext) {
	for i := l.visStart; i < l.visEnd; i++ {
		if pod := l.children[i]; pod != nil {
			pod.Paint(cx)
		}
	}
}
