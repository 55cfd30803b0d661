// Package showcase holds the demo applications shipped with will.
package showcase

import (
	"slices"

	"github.com/go-will/will/pkg/core"
)

// Demo is a runnable application.
type Demo struct {
	Name     string
	Title    string
	Subtitle string
	Root     func() *core.VNode
}

// demos is the registry of all demos, in display order.
var demos = []Demo{
	{"todo", "Tasks", "Add, complete and delete tasks", func() *core.VNode { return core.C(TaskList, nil) }},
	{"counter", "Counter", "Increment and decrement a number", func() *core.VNode { return core.C(Counter, nil) }},
}

// DefaultDemo is run when none is configured.
const DefaultDemo = "todo"

// Demos returns all registered demos.
func Demos() []Demo {
	return slices.Clone(demos)
}

// Lookup returns the demo registered under name.
func Lookup(name string) (Demo, bool) {
	i := slices.IndexFunc(demos, func(d Demo) bool { return d.Name == name })
	if i < 0 {
		return Demo{}, false
	}
	return demos[i], true
}

// Names returns the registered demo names.
func Names() []string {
	names := make([]string, len(demos))
	for i, d := range demos {
		names[i] = d.Name
	}
	return names
}
