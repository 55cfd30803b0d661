// Package testbed holds small components for exercising the tester.
package testbed

import (
	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
)

// Counter renders a count with increment and decrement buttons.
func Counter(ctx *core.Context, props core.Props) *core.VNode {
	count, setCount := core.UseState(ctx, core.Prop[int](props, "start"))
	return core.H("div", nil,
		core.H("span", core.Props{"id": "count"}, core.Textf("%d", count)),
		core.H("button", core.Props{"onClick": func() {
			setCount.Update(func(n int) int { return n + 1 })
		}}, core.Text("+")),
		core.H("button", core.Props{"onClick": func() {
			setCount.Update(func(n int) int { return n - 1 })
		}}, core.Text("-")),
	)
}

// Echo mirrors an input's value into a paragraph.
func Echo(ctx *core.Context, _ core.Props) *core.VNode {
	text, setText := core.UseState(ctx, "")
	return core.H("form", nil,
		core.H("input", core.Props{
			"type":    "text",
			"value":   text,
			"onInput": func(ev *dom.Event) { setText.Set(ev.Value()) },
		}),
		core.H("p", nil, core.Text(text)),
	)
}
