// Package focus captures and restores focus by tree position, and moves
// focus linearly through focusable nodes.
package focus

import (
	"errors"
	"slices"

	"github.com/go-will/will/pkg/dom"
)

// ErrPathNotFound is returned when a path walks past the children of a node.
var ErrPathNotFound = errors.New("focus: path not found")

// Path locates a node by child indices, starting from a container.
type Path []int

// CapturePath returns the path from container down to active. It is empty
// when active is nil, is the container itself, or is not inside container.
func CapturePath(active, container dom.Node) Path {
	if active == nil || container == nil {
		return nil
	}
	var path Path
	for n := active; n != container; {
		parent := n.ParentNode()
		if parent == nil {
			return nil
		}
		index := slices.IndexFunc(parent.ChildNodes(), func(c dom.Node) bool {
			return c == n
		})
		if index < 0 {
			return nil
		}
		path = append(path, index)
		n = parent
	}
	slices.Reverse(path)
	return path
}

// Resolve walks path from container and returns the node it reaches.
func Resolve(container dom.Node, path Path) (dom.Node, error) {
	n := container
	for _, index := range path {
		if n == nil {
			return nil, ErrPathNotFound
		}
		children := n.ChildNodes()
		if index < 0 || index >= len(children) {
			return nil, ErrPathNotFound
		}
		n = children[index]
	}
	return n, nil
}

// RestorePath focuses the node at path below container. An empty path is a
// no-op.
func RestorePath(container dom.Node, path Path) error {
	if len(path) == 0 {
		return nil
	}
	n, err := Resolve(container, path)
	if err != nil {
		return err
	}
	return n.Focus()
}

// Focusables returns the focusable elements under root in document order.
func Focusables(root *dom.Element) []*dom.Element {
	var nodes []*dom.Element
	dom.WalkElements(root, func(e *dom.Element) bool {
		if e.Focusable() {
			nodes = append(nodes, e)
		}
		return true
	})
	return nodes
}

// Move shifts focus by delta positions among the focusables under root,
// wrapping around. With nothing focused under root, a positive delta starts
// at the first focusable and a negative one at the last. It reports whether
// focus moved.
func Move(doc *dom.Document, root *dom.Element, delta int) bool {
	candidates := Focusables(root)
	if len(candidates) == 0 || delta == 0 {
		return false
	}
	current := slices.Index(candidates, doc.Focused())
	if current < 0 && delta < 0 {
		current = 0
	}
	count := len(candidates)
	for step := 1; step <= count; step++ {
		next := candidates[wrapIndex(current+delta*step, count)]
		if next.Focus() == nil {
			return true
		}
	}
	return false
}

// wrapIndex wraps an index to stay within [0, count).
func wrapIndex(index, count int) int {
	index = index % count
	if index < 0 {
		index += count
	}
	return index
}
