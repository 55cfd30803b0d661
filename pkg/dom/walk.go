package dom

import (
	"fmt"
	"strings"
)

// Walk visits n and its descendants depth-first in document order. Returning
// false from fn skips the node's subtree.
func Walk(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.ChildNodes() {
		Walk(c, fn)
	}
}

// WalkElements is Walk specialized to the in-memory Element type. Returning
// false from fn stops the walk entirely.
func WalkElements(e *Element, fn func(*Element) bool) bool {
	if e == nil {
		return true
	}
	if !fn(e) {
		return false
	}
	for _, c := range e.children {
		if !WalkElements(c, fn) {
			return false
		}
	}
	return true
}

// TextContent concatenates the text of e's descendant text nodes.
func TextContent(e *Element) string {
	var sb strings.Builder
	WalkElements(e, func(n *Element) bool {
		if n.IsText() {
			sb.WriteString(n.text)
		}
		return true
	})
	return sb.String()
}

// Outline renders e's subtree as indented markup, one node per line, with
// properties sorted by name. Listener names are listed as @event.
func Outline(e *Element) string {
	var sb strings.Builder
	outline(&sb, e, 0)
	return sb.String()
}

func outline(sb *strings.Builder, e *Element, depth int) {
	indent := strings.Repeat("  ", depth)
	if e.IsText() {
		fmt.Fprintf(sb, "%s%q\n", indent, e.text)
		return
	}
	sb.WriteString(indent)
	sb.WriteString("<")
	sb.WriteString(e.name)
	for _, name := range e.PropertyNames() {
		fmt.Fprintf(sb, " %s=%v", name, formatValue(e.props[name]))
	}
	for _, ev := range e.ListenerNames() {
		fmt.Fprintf(sb, " @%s", ev)
	}
	sb.WriteString(">\n")
	for _, c := range e.children {
		outline(sb, c, depth+1)
	}
}

func formatValue(v any) string {
	switch v := v.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	default:
		return fmt.Sprint(v)
	}
}
