package core

import "fmt"

// VKind discriminates the variants of a VNode.
type VKind uint8

const (
	// KindElement is a primitive host element such as "div" or "input".
	KindElement VKind = iota + 1
	// KindText is a host text node.
	KindText
	// KindComponent is a Component invocation.
	KindComponent
)

func (k VKind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindText:
		return "text"
	case KindComponent:
		return "component"
	default:
		return fmt.Sprintf("VKind(%d)", uint8(k))
	}
}

// Component renders props into a description. Hooks called from a component
// must use the ctx it was invoked with, in the same order on every render.
type Component func(ctx *Context, props Props) *VNode

// VNode describes what to render. VNodes are built fresh on every render
// pass and must not be mutated once handed to the engine.
type VNode struct {
	Kind VKind
	// Tag is the host element name for KindElement.
	Tag string
	// Text is the content of a KindText node.
	Text string
	// Component is the function invoked for KindComponent.
	Component Component
	Props     Props
	// Children are materialized in order; nil entries are skipped.
	Children []*VNode
}

// H describes a host element.
func H(tag string, props Props, children ...*VNode) *VNode {
	return &VNode{Kind: KindElement, Tag: tag, Props: props, Children: children}
}

// C describes a component invocation. A "key" entry in props gives the
// invocation its own hook storage, independent of other invocations of c.
//
// Without a key, storage is keyed by c's code pointer. Closures created from
// the same function literal share that pointer, so components returned by one
// factory share hook storage unless they are keyed.
func C(c Component, props Props, children ...*VNode) *VNode {
	return &VNode{Kind: KindComponent, Component: c, Props: props, Children: children}
}

// Text describes a host text node.
func Text(s string) *VNode {
	return &VNode{Kind: KindText, Text: s}
}

// Textf describes a host text node with formatted content.
func Textf(format string, args ...any) *VNode {
	return Text(fmt.Sprintf(format, args...))
}

// Map describes one node per item, in order.
func Map[T any](items []T, fn func(T) *VNode) []*VNode {
	nodes := make([]*VNode, 0, len(items))
	for _, item := range items {
		nodes = append(nodes, fn(item))
	}
	return nodes
}

const (
	// KeyProp is the props entry holding a stability key.
	KeyProp = "key"
	// ChildrenProp is the props entry a component receives its children in.
	ChildrenProp = "children"
)

// Props is a description's property bag. On host elements, entries whose
// name starts with "on" and whose value is a function become event
// listeners; everything else is assigned as a property.
type Props map[string]any

// Key returns the stability key, or nil.
func (p Props) Key() any {
	return p[KeyProp]
}

// Children returns the children passed to a component.
func (p Props) Children() []*VNode {
	children, _ := p[ChildrenProp].([]*VNode)
	return children
}

// withChildren returns a copy of p carrying children. The caller's bag
// belongs to the description and is left untouched.
func (p Props) withChildren(children []*VNode) Props {
	merged := make(Props, len(p)+1)
	for k, v := range p {
		merged[k] = v
	}
	merged[ChildrenProp] = children
	return merged
}

// Prop returns props[name] as a T, or T's zero value when the entry is
// absent or holds another type.
func Prop[T any](p Props, name string) T {
	v, _ := p[name].(T)
	return v
}
