// Package term hosts a dom.Document in a terminal. It draws the document as
// lines of text, moves focus with Tab and Shift-Tab, and turns keys and
// mouse clicks into DOM events on the focused element.
package term

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"

	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/errors"
)

// HelpText is drawn on the last row of the screen.
const HelpText = "Tab/Shift-Tab: move  Enter/Space: activate  Esc: quit"

// quitSignal is posted to stop Run when its context is cancelled.
type quitSignal struct{}

// hit maps a drawn span to the element a click on it targets.
type hit struct {
	y, x0, x1 int
	node      *dom.Element
}

// Host draws a document on a tcell screen and feeds it input.
//
// All methods must be called from the goroutine that runs the event loop.
type Host struct {
	screen   tcell.Screen
	doc      *dom.Document
	logger   *slog.Logger
	showHelp bool

	hits    []hit
	buttons tcell.ButtonMask
}

// Option configures a Host.
type Option func(*Host)

// WithLogger sets the logger for input and drawing records.
func WithLogger(logger *slog.Logger) Option {
	return func(h *Host) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// WithoutHelp hides the key help line.
func WithoutHelp() Option {
	return func(h *Host) {
		h.showHelp = false
	}
}

// New returns a host for doc drawing on screen. The screen is initialized by
// Run; callers driving the host through Step must initialize it themselves.
func New(screen tcell.Screen, doc *dom.Document, opts ...Option) *Host {
	h := &Host{
		screen:   screen,
		doc:      doc,
		logger:   slog.New(slog.DiscardHandler),
		showHelp: true,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// NewScreen returns the terminal screen for the current process.
func NewScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, errors.New("term.NewScreen", errors.KindInit, err)
	}
	return screen, nil
}

// Run initializes the screen and processes events until Escape or Ctrl-C is
// pressed or ctx is cancelled. The screen is restored before Run returns,
// also when an event handler panics.
func (h *Host) Run(ctx context.Context) (err error) {
	if err := h.screen.Init(); err != nil {
		return errors.New("term.Run", errors.KindInit, err)
	}
	defer h.screen.Fini()
	defer errors.RecoverWithCallback("term.Run", func(r any) {
		err = errors.New("term.Run", errors.KindPanic, fmt.Errorf("%v", r))
	})

	h.screen.EnableMouse()
	h.doc.OnFrameRequested = func() {
		// A full queue already holds a wakeup.
		_ = h.screen.PostEvent(tcell.NewEventInterrupt(nil))
	}
	defer func() { h.doc.OnFrameRequested = nil }()

	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = h.screen.PostEvent(tcell.NewEventInterrupt(quitSignal{}))
		case <-done:
		}
	}()

	h.logger.Debug("terminal started")
	h.doc.Flush()
	h.Draw()
	for {
		ev := h.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if !h.Step(ev) {
			h.logger.Debug("terminal stopped")
			return ctx.Err()
		}
	}
}

// Step handles one event, runs the frames it queued and redraws. It reports
// whether the loop should continue.
func (h *Host) Step(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		if !h.HandleKey(ev) {
			return false
		}
	case *tcell.EventMouse:
		h.handleMouse(ev)
	case *tcell.EventResize:
		h.screen.Sync()
	case *tcell.EventInterrupt:
		if _, ok := ev.Data().(quitSignal); ok {
			return false
		}
	}
	if n := h.doc.Flush(); n > 0 {
		h.logger.Debug("frames", "count", n)
	}
	h.Draw()
	return true
}

// Draw paints the document body and places the cursor in a focused text
// input.
func (h *Host) Draw() {
	h.screen.Clear()
	width, height := h.screen.Size()
	rows := height
	if h.showHelp && height > 1 {
		rows--
		h.print(0, height-1, width, HelpText, tcell.StyleDefault.Dim(true))
	}

	focused := h.doc.Focused()
	h.hits = h.hits[:0]
	cursor := false
	for y, ln := range layout(h.doc.Body(), focused) {
		if y >= rows {
			break
		}
		x := 0
		for i, s := range ln {
			if i > 0 {
				x++
			}
			start := x
			x = h.print(x, y, width, s.text, s.style)
			if s.node != nil {
				h.hits = append(h.hits, hit{y: y, x0: start, x1: x, node: s.node})
			}
			if s.cursor >= 0 && start+s.cursor < width {
				h.screen.ShowCursor(start+s.cursor, y)
				cursor = true
			}
		}
	}
	if !cursor {
		h.screen.HideCursor()
	}
	h.screen.Show()
}

// print draws text from x one grapheme cluster per cell run and returns the
// column after it. Wide clusters take two columns; clusters that do not fit
// before width are clipped.
func (h *Host) print(x, y, width int, text string, style tcell.Style) int {
	state := -1
	for text != "" {
		var cluster string
		var w int
		cluster, text, w, state = uniseg.FirstGraphemeClusterInString(text, state)
		w = max(w, 1)
		if x+w <= width {
			runes := []rune(cluster)
			h.screen.SetContent(x, y, runes[0], runes[1:], style)
		}
		x += w
	}
	return x
}

func (h *Host) handleMouse(ev *tcell.EventMouse) {
	buttons := ev.Buttons()
	pressed := buttons&tcell.Button1 != 0 && h.buttons&tcell.Button1 == 0
	h.buttons = buttons
	if !pressed {
		return
	}
	x, y := ev.Position()
	for _, hit := range h.hits {
		if hit.y == y && x >= hit.x0 && x < hit.x1 {
			h.click(hit.node)
			return
		}
	}
}

// click focuses target and runs its activation behavior.
func (h *Host) click(target *dom.Element) {
	if err := target.Focus(); err != nil {
		h.logger.Debug("click ignored", "tag", target.NodeName(), "err", err)
		return
	}
	switch {
	case isCheckbox(target):
		h.toggle(target)
	case target.NodeName() == "button":
		h.activate(target)
	case target.NodeName() == "a":
		h.doc.DispatchEvent(target, dom.NewEvent("click"))
	}
}
