package dom

import (
	"slices"
	"strings"
	"sync"
)

// TextNodeName is the NodeName of text nodes.
const TextNodeName = "#text"

// RootID is the id of the container NewDocument creates.
const RootID = "root"

var focusableTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

// Element is a node of the in-memory Document. Text nodes are Elements
// whose NodeName is TextNodeName.
type Element struct {
	doc       *Document
	name      string
	text      string
	props     map[string]any
	listeners map[string][]Handler
	children  []*Element
	parent    *Element
}

// NodeName returns the lower-case tag, or TextNodeName.
func (e *Element) NodeName() string {
	return e.name
}

// IsText reports whether e is a text node.
func (e *Element) IsText() bool {
	return e.name == TextNodeName
}

// Data returns a text node's content.
func (e *Element) Data() string {
	return e.text
}

// SetData replaces a text node's content.
func (e *Element) SetData(text string) {
	e.text = text
}

func (e *Element) SetProperty(name string, value any) {
	if e.props == nil {
		e.props = make(map[string]any)
	}
	e.props[name] = value
}

func (e *Element) Property(name string) (any, bool) {
	v, ok := e.props[name]
	return v, ok
}

// PropertyNames returns the assigned property names in sorted order.
func (e *Element) PropertyNames() []string {
	names := make([]string, 0, len(e.props))
	for name := range e.props {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func (e *Element) AddEventListener(event string, h Handler) {
	if h == nil {
		return
	}
	if e.listeners == nil {
		e.listeners = make(map[string][]Handler)
	}
	e.listeners[event] = append(e.listeners[event], h)
}

// ListenerNames returns the event names with listeners, sorted.
func (e *Element) ListenerNames() []string {
	names := make([]string, 0, len(e.listeners))
	for name := range e.listeners {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// HasListener reports whether any listener is registered for event.
func (e *Element) HasListener(event string) bool {
	return len(e.listeners[event]) > 0
}

func (e *Element) AppendChild(children ...Node) {
	for _, child := range children {
		c := asElement(child)
		if c == nil {
			continue
		}
		c.detach()
		c.parent = e
		e.children = append(e.children, c)
	}
}

func (e *Element) ReplaceChildren(children ...Node) {
	for _, c := range e.children {
		c.parent = nil
	}
	e.children = nil
	e.AppendChild(children...)
}

func (e *Element) ChildNodes() []Node {
	nodes := make([]Node, len(e.children))
	for i, c := range e.children {
		nodes[i] = c
	}
	return nodes
}

func (e *Element) ParentNode() Node {
	if e.parent == nil {
		return nil
	}
	return e.parent
}

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element {
	return e.parent
}

// Children returns the child elements.
func (e *Element) Children() []*Element {
	return e.children
}

// Focusable reports whether Focus would succeed on a connected e.
func (e *Element) Focusable() bool {
	if e.IsText() {
		return false
	}
	if disabled, _ := e.props["disabled"].(bool); disabled {
		return false
	}
	if idx, ok := e.props["tabIndex"].(int); ok {
		return idx >= 0
	}
	return focusableTags[e.name]
}

func (e *Element) Focus() error {
	if !e.Focusable() {
		return ErrNotFocusable
	}
	if !e.Connected() {
		return ErrDetached
	}
	e.doc.setFocus(e)
	return nil
}

// Blur drops focus if e holds it.
func (e *Element) Blur() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()
	if e.doc.focused == e {
		e.doc.focused = nil
	}
}

// Connected reports whether e is attached under the document body.
func (e *Element) Connected() bool {
	for n := e; n != nil; n = n.parent {
		if n == e.doc.body {
			return true
		}
	}
	return false
}

// Contains reports whether other is e or one of its descendants.
func (e *Element) Contains(other *Element) bool {
	for n := other; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

func (e *Element) detach() {
	p := e.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, e); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	e.parent = nil
}

func asElement(n Node) *Element {
	if n == nil {
		return nil
	}
	e, _ := n.(*Element)
	return e
}

// Document is an in-memory Host. Tree mutation is not synchronized and
// belongs to the goroutine running frames; RequestAnimationFrame may be
// called from any goroutine.
type Document struct {
	body    *Element
	focused *Element

	mu     sync.Mutex
	frames []func()

	// OnFrameRequested is called after a frame callback is queued. Hosts use
	// it to wake their event loop.
	OnFrameRequested func()
}

// NewDocument returns a document whose body holds a single
// <div id="root"> container.
func NewDocument() *Document {
	d := &Document{}
	d.body = d.newElement("body")
	root := d.newElement("div")
	root.SetProperty("id", RootID)
	d.body.AppendChild(root)
	return d
}

func (d *Document) newElement(tag string) *Element {
	return &Element{doc: d, name: strings.ToLower(tag)}
}

// Body returns the document body.
func (d *Document) Body() *Element {
	return d.body
}

// Root returns the <div id="root"> container, or nil if it was removed.
func (d *Document) Root() *Element {
	return asElement(d.GetElementByID(RootID))
}

func (d *Document) CreateElement(tag string) Node {
	return d.newElement(tag)
}

func (d *Document) CreateTextNode(text string) Node {
	e := &Element{doc: d, name: TextNodeName, text: text}
	return e
}

func (d *Document) GetElementByID(id string) Node {
	var found *Element
	WalkElements(d.body, func(e *Element) bool {
		if v, ok := e.props["id"]; ok && v == id {
			found = e
			return false
		}
		return true
	})
	if found == nil {
		return nil
	}
	return found
}

// ActiveElement returns the focused element, or the body when no connected
// element holds focus.
func (d *Document) ActiveElement() Node {
	if e := d.Focused(); e != nil {
		return e
	}
	return d.body
}

// Focused returns the focused connected element, or nil.
func (d *Document) Focused() *Element {
	d.mu.Lock()
	f := d.focused
	d.mu.Unlock()
	if f == nil || !f.Connected() {
		return nil
	}
	return f
}

func (d *Document) setFocus(e *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.focused = e
}

func (d *Document) RequestAnimationFrame(cb func()) {
	if cb == nil {
		return
	}
	d.mu.Lock()
	d.frames = append(d.frames, cb)
	hook := d.OnFrameRequested
	d.mu.Unlock()
	if hook != nil {
		hook()
	}
}

// PendingFrames returns the number of queued frame callbacks.
func (d *Document) PendingFrames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.frames)
}

// Flush runs the frame callbacks queued before the call and returns how
// many ran. Callbacks queued while flushing wait for the next Flush.
func (d *Document) Flush() int {
	d.mu.Lock()
	frames := d.frames
	d.frames = nil
	d.mu.Unlock()
	for _, cb := range frames {
		cb()
	}
	return len(frames)
}

// DispatchEvent runs ev's listeners on target, then bubbles through the
// ancestors until one calls StopPropagation. It reports whether the default
// action was left uncancelled.
func (d *Document) DispatchEvent(target *Element, ev *Event) bool {
	ev.Target = target
	for n := target; n != nil && !ev.stopped; n = n.parent {
		ev.CurrentTarget = n
		for _, h := range slices.Clone(n.listeners[ev.Type]) {
			h(ev)
		}
	}
	ev.CurrentTarget = nil
	return !ev.defaultPrevented
}

var _ Host = (*Document)(nil)
