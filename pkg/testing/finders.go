package testing

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-will/will/pkg/dom"
)

// Finder locates elements in the rendered tree.
type Finder interface {
	// Evaluate returns all matching elements under root (depth-first pre-order).
	Evaluate(root *dom.Element) []*dom.Element
	// Description returns a human-readable description for error messages.
	Description() string
}

// FinderResult wraps finder results with convenient accessors.
type FinderResult struct {
	elements []*dom.Element
	finder   Finder
}

// First returns the first match. Panics if no matches.
func (r FinderResult) First() *dom.Element {
	if len(r.elements) == 0 {
		panic(fmt.Sprintf("Finder found no elements: %s", r.describe()))
	}
	return r.elements[0]
}

// FirstOrNil returns the first match, or nil if none.
func (r FinderResult) FirstOrNil() *dom.Element {
	if len(r.elements) == 0 {
		return nil
	}
	return r.elements[0]
}

// At returns the match at index. Panics if out of range.
func (r FinderResult) At(index int) *dom.Element {
	if index < 0 || index >= len(r.elements) {
		panic(fmt.Sprintf("Finder index %d out of range (found %d): %s", index, len(r.elements), r.describe()))
	}
	return r.elements[index]
}

// All returns all matches in traversal order.
func (r FinderResult) All() []*dom.Element {
	return r.elements
}

// Count returns the number of matches.
func (r FinderResult) Count() int {
	return len(r.elements)
}

// Exists returns true if at least one match was found.
func (r FinderResult) Exists() bool {
	return len(r.elements) > 0
}

func (r FinderResult) describe() string {
	if r.finder == nil {
		return "unknown"
	}
	return r.finder.Description()
}

// --- Concrete finders ---

type predicateFinder struct {
	fn   func(*dom.Element) bool
	desc string
}

func (f *predicateFinder) Evaluate(root *dom.Element) []*dom.Element {
	var matches []*dom.Element
	dom.WalkElements(root, func(e *dom.Element) bool {
		if e != root && f.fn(e) {
			matches = append(matches, e)
		}
		return true
	})
	return matches
}

func (f *predicateFinder) Description() string {
	return f.desc
}

// ByPredicate returns a finder that matches elements satisfying fn.
func ByPredicate(fn func(*dom.Element) bool) Finder {
	return &predicateFinder{fn: fn, desc: "ByPredicate(...)"}
}

// ByTag returns a finder that matches elements with the given tag.
func ByTag(tag string) Finder {
	tag = strings.ToLower(tag)
	return &predicateFinder{
		fn:   func(e *dom.Element) bool { return e.NodeName() == tag },
		desc: fmt.Sprintf("ByTag(%q)", tag),
	}
}

// ByText returns a finder that matches elements with a direct text child
// whose content equals text.
func ByText(text string) Finder {
	return &predicateFinder{
		fn: func(e *dom.Element) bool {
			for _, c := range e.Children() {
				if c.IsText() && c.Data() == text {
					return true
				}
			}
			return false
		},
		desc: fmt.Sprintf("ByText(%q)", text),
	}
}

// ByTextContaining returns a finder that matches elements whose whole text
// content contains substring. Ancestors of a match match too.
func ByTextContaining(substring string) Finder {
	return &predicateFinder{
		fn: func(e *dom.Element) bool {
			return !e.IsText() && strings.Contains(dom.TextContent(e), substring)
		},
		desc: fmt.Sprintf("ByTextContaining(%q)", substring),
	}
}

// ByProp returns a finder that matches elements whose property name equals
// value.
func ByProp(name string, value any) Finder {
	return &predicateFinder{
		fn: func(e *dom.Element) bool {
			v, ok := e.Property(name)
			return ok && reflect.DeepEqual(v, value)
		},
		desc: fmt.Sprintf("ByProp(%s=%v)", name, value),
	}
}

// ByID returns a finder that matches elements with the given id property.
func ByID(id string) Finder {
	f := ByProp("id", id).(*predicateFinder)
	f.desc = fmt.Sprintf("ByID(%q)", id)
	return f
}

type descendantFinder struct {
	of       Finder
	matching Finder
}

func (f *descendantFinder) Evaluate(root *dom.Element) []*dom.Element {
	var results []*dom.Element
	seen := make(map[*dom.Element]bool)
	for _, ancestor := range f.of.Evaluate(root) {
		for _, e := range f.matching.Evaluate(ancestor) {
			if !seen[e] {
				seen[e] = true
				results = append(results, e)
			}
		}
	}
	return results
}

func (f *descendantFinder) Description() string {
	return fmt.Sprintf("Descendant(of: %s, matching: %s)", f.of.Description(), f.matching.Description())
}

// Descendant returns a finder that matches elements found by matching below
// elements found by of.
func Descendant(of, matching Finder) Finder {
	return &descendantFinder{of: of, matching: matching}
}
