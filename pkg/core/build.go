package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-will/will/pkg/dom"
)

// Build materializes v into a host node. Component descriptions are expanded
// until a host description remains. It returns nil when v, or the
// description a component returns, is nil.
//
// An unknown Kind or a component description without a function is a caller
// error and panics.
func (s *Session) Build(v *VNode) dom.Node {
	for v != nil && v.Kind == KindComponent {
		v = s.Expand(v)
	}
	if v == nil {
		return nil
	}
	switch v.Kind {
	case KindText:
		return s.doc.CreateTextNode(v.Text)
	case KindElement:
		return s.buildElement(v)
	default:
		panic(fmt.Sprintf("core: cannot build description of kind %v", v.Kind))
	}
}

// Expand invokes a component description and returns the description it
// renders, without materializing it. The component gets a fresh cursor over
// the slot list of its identity.
func (s *Session) Expand(v *VNode) *VNode {
	if v.Kind != KindComponent || v.Component == nil {
		panic(fmt.Sprintf("core: cannot expand %v description without a component", v.Kind))
	}
	id := identityOf(v)
	if s.inPass {
		s.observed[id] = struct{}{}
	}
	ctx := &Context{
		session:  s,
		identity: id,
		slots:    s.store.Lookup(id),
	}
	return v.Component(ctx, v.Props.withChildren(v.Children))
}

func (s *Session) buildElement(v *VNode) dom.Node {
	node := s.doc.CreateElement(v.Tag)

	names := make([]string, 0, len(v.Props))
	for name := range v.Props {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		if name == KeyProp {
			continue
		}
		value := v.Props[name]
		if h, ok := eventHandler(name, value); ok {
			node.AddEventListener(strings.ToLower(name[2:]), h)
			continue
		}
		node.SetProperty(name, value)
	}

	children := make([]dom.Node, 0, len(v.Children))
	for _, child := range v.Children {
		if child == nil {
			continue
		}
		if n := s.Build(child); n != nil {
			children = append(children, n)
		}
	}
	if len(children) > 0 {
		node.AppendChild(children...)
	}
	return node
}

// eventHandler reports whether a prop names an event listener: an "on"
// prefix followed by the event name, holding a function.
func eventHandler(name string, value any) (dom.Handler, bool) {
	if len(name) <= 2 || !strings.HasPrefix(name, "on") {
		return nil, false
	}
	switch fn := value.(type) {
	case dom.Handler:
		return fn, fn != nil
	case func(*dom.Event):
		return fn, fn != nil
	case func():
		if fn == nil {
			return nil, false
		}
		return func(*dom.Event) { fn() }, true
	}
	return nil, false
}
