// Package dom defines the display-surface contract the render engine
// materializes descriptions into, and ships an in-memory implementation.
//
// The engine only consumes the Node and Host interfaces. A browser
// binding, a terminal host or a test double can satisfy them. The in-memory
// Document is what the terminal host and the test helpers drive.
package dom

import "errors"

var (
	// ErrNotFocusable is returned by Focus on nodes that cannot take focus.
	ErrNotFocusable = errors.New("dom: node is not focusable")
	// ErrDetached is returned by Focus on nodes not connected to a document.
	ErrDetached = errors.New("dom: node is not connected")
)

// Handler receives dispatched events.
type Handler func(ev *Event)

// Node is one node of the live display tree.
type Node interface {
	// SetProperty assigns an attribute or property.
	SetProperty(name string, value any)
	// Property returns a previously assigned attribute or property.
	Property(name string) (any, bool)
	// AddEventListener registers h for events named event.
	AddEventListener(event string, h Handler)
	// AppendChild appends children in order, detaching them from any
	// previous parent.
	AppendChild(children ...Node)
	// ReplaceChildren removes every child and appends children.
	ReplaceChildren(children ...Node)
	// ChildNodes returns the ordered children, text nodes included.
	ChildNodes() []Node
	// ParentNode returns the parent, or nil for detached and top nodes.
	ParentNode() Node
	// Focus makes the node the document's active element.
	Focus() error
}

// Host is the document environment the engine renders into.
type Host interface {
	CreateElement(tag string) Node
	CreateTextNode(text string) Node
	// GetElementByID finds a connected element by its "id" property.
	GetElementByID(id string) Node
	// ActiveElement returns the focused node, or nil if none.
	ActiveElement() Node
	// RequestAnimationFrame runs cb on the next paint opportunity.
	RequestAnimationFrame(cb func())
}

// Event is a dispatched DOM-style event.
type Event struct {
	Type string
	// Target is the node the event was dispatched to.
	Target Node
	// CurrentTarget is the node whose listeners are running.
	CurrentTarget Node
	// Key carries the key name for keyboard events.
	Key string

	defaultPrevented bool
	stopped          bool
}

// NewEvent returns an event of the given type.
func NewEvent(typ string) *Event {
	return &Event{Type: typ}
}

// PreventDefault marks the event's default action as cancelled.
func (e *Event) PreventDefault() {
	e.defaultPrevented = true
}

// DefaultPrevented reports whether PreventDefault was called.
func (e *Event) DefaultPrevented() bool {
	return e.defaultPrevented
}

// StopPropagation stops the event from bubbling to further ancestors.
func (e *Event) StopPropagation() {
	e.stopped = true
}

// Value returns the target's "value" property as a string.
func (e *Event) Value() string {
	if e.Target == nil {
		return ""
	}
	v, ok := e.Target.Property("value")
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// Checked returns the target's "checked" property.
func (e *Event) Checked() bool {
	if e.Target == nil {
		return false
	}
	v, _ := e.Target.Property("checked")
	b, _ := v.(bool)
	return b
}
