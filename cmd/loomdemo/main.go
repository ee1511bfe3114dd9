// Command loomdemo runs the widget runtime against a terminal screen:
// a virtualized list under a z-ordered badge layer, wrapped in a modal
// host. Keys: Tab cycles focus, m presents a modal, d dismisses it,
// mouse wheel scrolls the list, q or Ctrl+C quits.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/loomui/loom/pkg/config"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/event"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/widget"
	"github.com/loomui/loom/pkg/widgets"
)

const (
	itemCount  = 500
	itemExtent = 3
)

func buildItem(ctx context.Context, index int) (widget.Widget, error) {
	// Simulated data fetch, cancellable when the row scrolls away.
	select {
	case <-time.After(25 * time.Millisecond):
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	shade := uint8(40 + (index%8)*20)
	return &widgets.Box{
		Size:      graphics.Size{Width: 1000, Height: itemExtent},
		Fill:      graphics.SolidBrush(graphics.Color{R: shade, G: shade, B: 90 + shade/2, A: 255}),
		Focusable: true,
	}, nil
}

func buildTree() (*widgets.VirtualList, widget.Widget) {
	list := widgets.NewVirtualList(itemCount, itemExtent, buildItem)

	stack := widgets.NewZStack(list)
	stack.AddLayer(
		&widgets.Box{
			Size: graphics.Size{Width: 14, Height: 3},
			Fill: graphics.SolidBrush(graphics.Color{R: 180, G: 120, B: 30, A: 255}),
		},
		graphics.Size{},
		graphics.Size{Width: 14, Height: 3},
		graphics.UnitTopRight,
		graphics.Point{X: -1, Y: 1},
	)

	return list, widgets.NewModalHost(stack)
}

func demoModal() *widgets.Modal {
	dim := graphics.SolidBrush(graphics.Color{R: 10, G: 10, B: 10, A: 255})
	return &widgets.Modal{
		Content: widgets.NewFocusScope("modal", &widgets.Box{
			Size:      graphics.Size{Width: 30, Height: 8},
			Fill:      graphics.SolidBrush(graphics.Color{R: 60, G: 90, B: 160, A: 255}),
			Focusable: true,
		}),
		Background: &dim,
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "loomdemo: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.LoadOptional(".")
	if err != nil {
		return err
	}
	errors.SetHandler(&errors.LogHandler{Verbose: cfg.Diagnostics.Verbose})

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.EnablePaste()

	// The tree does not recover traversal failures; this loop is the
	// boundary that reports them before the terminal is restored.
	defer func() {
		if r := recover(); r != nil {
			screen.Fini()
			errors.ReportPanic("loomdemo.run", r)
			os.Exit(1)
		}
	}()

	list, content := buildTree()
	root := widget.NewRoot(content, cfg)

	w, h := screen.Size()
	size := graphics.Size{Width: float64(w), Height: float64(h)}
	list.SetViewport(graphics.RectFromLTWH(0, 0, size.Width, size.Height))
	root.LayoutRoot(size)

	// Frame ticks keep update polling alive while list builds finish.
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		ticker := time.NewTicker(33 * time.Millisecond)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				screen.PostEvent(tcell.NewEventInterrupt(nil))
			case <-stop:
				return
			}
		}
	}()

	canvas := newScreenCanvas(screen)
	var tr translator

	for {
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if ev.Key() == tcell.KeyCtrlC || (ev.Key() == tcell.KeyRune && ev.Rune() == 'q') {
				return nil
			}
			switch {
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'm':
				root.Dispatch(event.CommandEvent{Selector: widgets.ShowModal, Payload: demoModal()})
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'd':
				root.Dispatch(event.CommandEvent{Selector: widgets.DismissModal})
			default:
				root.Dispatch(tr.key(ev))
			}
		case *tcell.EventMouse:
			for _, pe := range tr.mouse(ev) {
				root.Dispatch(pe)
			}
		case *tcell.EventPaste:
			if pe := tr.paste(ev); pe != nil {
				root.Dispatch(*pe)
			}
		case *tcell.EventResize:
			w, h := ev.Size()
			size = graphics.Size{Width: float64(w), Height: float64(h)}
			top := list.Viewport().Top
			list.SetViewport(graphics.RectFromLTWH(0, top, size.Width, size.Height))
			root.RequestLayout()
			root.RequestPaint()
			screen.Sync()
		case *tcell.EventInterrupt:
			// Fall through to the frame below.
		}

		// Child requests are satisfied by the list's own builder; the
		// drain keeps the queue from growing.
		root.Messages()

		if root.NeedsUpdate() {
			root.Update()
		}
		if root.NeedsLayout() {
			root.LayoutRoot(size)
		}
		if root.NeedsPaint() {
			screen.Fill(' ', tcell.StyleDefault)
			root.Paint(canvas)
			screen.Show()
		}
	}
}
