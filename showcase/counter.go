package showcase

import "github.com/go-will/will/pkg/core"

// Counter renders a number with buttons to change it. Props:
//
//	start    int        initial count
//	step     int        amount per click, 1 when unset
//	onChange func(int)  called after every render where the count changed
func Counter(ctx *core.Context, props core.Props) *core.VNode {
	count, setCount := core.UseState(ctx, core.Prop[int](props, "start"))
	step := core.Prop[int](props, "step")
	if step == 0 {
		step = 1
	}

	onChange := core.Prop[func(int)](props, "onChange")
	core.UseEffect(ctx, func() func() {
		if onChange != nil {
			onChange(count)
		}
		return nil
	}, count)

	return core.H("div", core.Props{"class": "counter"},
		core.H("h1", nil, core.Text("Counter")),
		core.H("span", core.Props{"id": "count"}, core.Textf("%d", count)),
		core.H("button", core.Props{
			"id":      "decrement",
			"onClick": func() { setCount.Update(func(n int) int { return n - step }) },
		}, core.Text("-")),
		core.H("button", core.Props{
			"id":      "increment",
			"onClick": func() { setCount.Update(func(n int) int { return n + step }) },
		}, core.Text("+")),
		core.H("button", core.Props{
			"id":       "reset",
			"disabled": count == 0,
			"onClick":  func() { setCount.Set(0) },
		}, core.Text("Reset")),
	)
}
