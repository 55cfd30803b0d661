// Package core provides descriptions, hook storage and the element builder.
//
// A UI is described with plain function calls. H describes a host element,
// Text a text node and C a component invocation:
//
//	func App(ctx *core.Context, _ core.Props) *core.VNode {
//	    name, setName := core.UseState(ctx, "")
//	    return core.H("div", nil,
//	        core.H("input", core.Props{
//	            "value":   name,
//	            "onInput": func(ev *dom.Event) { setName.Set(ev.Value()) },
//	        }),
//	        core.Textf("Hello, %s", name),
//	    )
//	}
//
// # Hooks
//
// UseState and UseEffect claim slots in the hook storage of the calling
// component's identity, one slot per call, in call order. A component must
// make the same hook calls in the same order on every render; nothing
// checks this.
//
// The identity is the component function, or the "key" prop when one is
// given. Keys give list items their own storage:
//
//	rows := core.Map(tasks, func(t Task) *core.VNode {
//	    return core.C(Row, core.Props{"key": t.ID, "task": t})
//	})
//
// # Sessions
//
// A Session carries the hook store and scheduler of one mounted root and
// materializes descriptions into a dom.Host. Component invocations get
// their own Context, so nested expansion never disturbs a parent's cursor.
// Package engine owns sessions for mounted roots; tests may use one
// directly.
package core
