package testing

import (
	"errors"
	"testing"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/engine"
	"github.com/go-will/will/pkg/focus"
)

// maxSettleFrames bounds Settle for components that re-render forever.
const maxSettleFrames = 100

// ErrSettleTimeout is returned when Settle still has frames pending after
// maxSettleFrames frames.
var ErrSettleTimeout = errors.New("Settle timed out: frames still pending")

// Tester mounts a description into an in-memory document and drives its
// frames and events.
type Tester struct {
	tb   testing.TB
	doc  *dom.Document
	root *engine.Root
}

// New mounts desc into a fresh document. It fails the test if mounting
// fails.
func New(tb testing.TB, desc *core.VNode, opts ...engine.Option) *Tester {
	tb.Helper()
	doc := dom.NewDocument()
	root, err := engine.Mount(doc, desc, opts...)
	if err != nil {
		tb.Fatalf("mount failed: %v", err)
	}
	return &Tester{tb: tb, doc: doc, root: root}
}

// Document returns the in-memory document.
func (t *Tester) Document() *dom.Document {
	return t.doc
}

// Root returns the mounted root.
func (t *Tester) Root() *engine.Root {
	return t.root
}

// Container returns the element the root renders into.
func (t *Tester) Container() *dom.Element {
	return t.root.Container().(*dom.Element)
}

// Frame runs the paint callbacks queued so far and returns how many ran.
func (t *Tester) Frame() int {
	return t.doc.Flush()
}

// Settle runs frames until none are pending.
func (t *Tester) Settle() error {
	for range maxSettleFrames {
		if t.doc.Flush() == 0 {
			return nil
		}
	}
	if t.doc.PendingFrames() > 0 {
		return ErrSettleTimeout
	}
	return nil
}

// Find evaluates a finder against the rendered tree.
func (t *Tester) Find(finder Finder) FinderResult {
	return FinderResult{
		elements: finder.Evaluate(t.Container()),
		finder:   finder,
	}
}

// Dispatch sends an event of type typ to the first match of finder and
// reports whether its default action was left uncancelled.
func (t *Tester) Dispatch(finder Finder, typ string) bool {
	t.tb.Helper()
	target := t.mustFind(finder)
	return t.doc.DispatchEvent(target, dom.NewEvent(typ))
}

// Click dispatches a click to the first match of finder.
func (t *Tester) Click(finder Finder) {
	t.tb.Helper()
	t.Dispatch(finder, "click")
}

// Input sets the value of the first match of finder and dispatches an
// input event, as typing would.
func (t *Tester) Input(finder Finder, value string) {
	t.tb.Helper()
	target := t.mustFind(finder)
	target.SetProperty("value", value)
	t.doc.DispatchEvent(target, dom.NewEvent("input"))
}

// Toggle flips the checked property of the first match of finder and
// dispatches a change event.
func (t *Tester) Toggle(finder Finder) {
	t.tb.Helper()
	target := t.mustFind(finder)
	checked, _ := target.Property("checked")
	on, _ := checked.(bool)
	target.SetProperty("checked", !on)
	t.doc.DispatchEvent(target, dom.NewEvent("change"))
}

// Submit dispatches a submit event to the first match of finder.
func (t *Tester) Submit(finder Finder) {
	t.tb.Helper()
	t.Dispatch(finder, "submit")
}

// Focus focuses the first match of finder.
func (t *Tester) Focus(finder Finder) {
	t.tb.Helper()
	if err := t.mustFind(finder).Focus(); err != nil {
		t.tb.Fatalf("focus %s: %v", finder.Description(), err)
	}
}

// Focused returns the focused element, or nil.
func (t *Tester) Focused() *dom.Element {
	return t.doc.Focused()
}

// FocusPath returns the focused element's path below the container.
func (t *Tester) FocusPath() focus.Path {
	return focus.CapturePath(t.doc.ActiveElement(), t.root.Container())
}

// Outline returns the rendered tree as indented markup.
func (t *Tester) Outline() string {
	return dom.Outline(t.Container())
}

func (t *Tester) mustFind(finder Finder) *dom.Element {
	t.tb.Helper()
	result := t.Find(finder)
	if !result.Exists() {
		t.tb.Fatalf("finder found no elements: %s", finder.Description())
	}
	return result.First()
}
