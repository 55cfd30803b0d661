package engine

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/errors"
)

// counterApp renders a count, and exposes its setter through the pointer.
func counterApp(set *core.Setter[int]) core.Component {
	return func(ctx *core.Context, _ core.Props) *core.VNode {
		n, setN := core.UseState(ctx, 0)
		*set = setN
		return core.H("div", nil,
			core.H("span", core.Props{"id": "count"}, core.Textf("%d", n)),
			core.H("button", core.Props{"onClick": func() { setN.Update(func(v int) int { return v + 1 }) }}, core.Text("+")),
		)
	}
}

func text(t *testing.T, doc *dom.Document, id string) string {
	t.Helper()
	n := doc.GetElementByID(id)
	require.NotNil(t, n, "no element %q", id)
	return dom.TextContent(n.(*dom.Element))
}

func TestMount(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[int]

	r, err := Mount(doc, core.C(counterApp(&set), nil))
	require.NoError(t, err)

	assert.Equal(t, "0", text(t, doc, "count"))
	assert.Equal(t, dom.Node(doc.Root()), r.Container())
	assert.Equal(t, 1, r.Renders())
	assert.Equal(t, 1, r.Store().Len())
	assert.Equal(t, 0, doc.PendingFrames())
}

func TestMount_MissingContainer(t *testing.T) {
	_, err := Mount(dom.NewDocument(), core.H("div", nil), WithRootID("app"))
	require.Error(t, err)
	assert.Equal(t, errors.KindInit, errors.KindOf(err))
	assert.Contains(t, err.Error(), `"app"`)
}

func TestMount_CustomRootID(t *testing.T) {
	doc := dom.NewDocument()
	app := doc.CreateElement("main")
	app.SetProperty("id", "app")
	doc.Body().AppendChild(app)

	r, err := Mount(doc, core.Text("hi"), WithRootID("app"))
	require.NoError(t, err)
	assert.Equal(t, app, r.Container())
	assert.Empty(t, doc.Root().Children())
}

func TestSetterCallsCoalesceIntoOneRerender(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[int]
	r, err := Mount(doc, core.C(counterApp(&set), nil))
	require.NoError(t, err)

	set.Set(1)
	set.Set(2)
	set.Update(func(n int) int { return n + 1 })
	assert.Equal(t, 1, doc.PendingFrames())
	assert.Equal(t, "0", text(t, doc, "count"), "nothing renders before the frame")

	assert.Equal(t, 1, doc.Flush())
	assert.Equal(t, "3", text(t, doc, "count"))
	assert.Equal(t, 2, r.Renders())
	assert.Equal(t, 0, doc.PendingFrames())
}

func TestSetterDuringMountIsDropped(t *testing.T) {
	doc := dom.NewDocument()
	app := func(ctx *core.Context, _ core.Props) *core.VNode {
		n, set := core.UseState(ctx, 0)
		if n == 0 {
			set.Set(1)
		}
		return core.Textf("%d", n)
	}

	r, err := Mount(doc, core.C(app, nil))
	require.NoError(t, err)
	assert.Equal(t, 0, doc.PendingFrames())

	r.Rerender()
	assert.Equal(t, "1", dom.TextContent(doc.Root()), "the value was stored")
}

func TestRerenderBuildsFreshNodes(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[int]
	r, err := Mount(doc, core.C(counterApp(&set), nil))
	require.NoError(t, err)

	before := doc.Root().Children()[0]
	r.Rerender()
	after := doc.Root().Children()[0]

	assert.NotSame(t, before, after)
	assert.Nil(t, before.Parent())
	assert.Len(t, doc.Root().Children(), 1)
}

func TestClickHandlerUpdatesState(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[int]
	_, err := Mount(doc, core.C(counterApp(&set), nil))
	require.NoError(t, err)

	for range 2 {
		button := doc.Root().Children()[0].Children()[1]
		doc.DispatchEvent(button, dom.NewEvent("click"))
		doc.Flush()
	}
	assert.Equal(t, "2", text(t, doc, "count"))
}

func TestRerenderRestoresFocusByPosition(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[string]
	form := func(ctx *core.Context, _ core.Props) *core.VNode {
		v, setV := core.UseState(ctx, "")
		set = setV
		return core.H("div", nil,
			core.H("label", nil, core.Text("name")),
			core.H("p", nil, core.Text(v)),
			core.H("input", core.Props{"value": v}),
		)
	}
	r, err := Mount(doc, core.C(form, nil))
	require.NoError(t, err)

	input := doc.Root().Children()[0].Children()[2]
	require.NoError(t, input.Focus())

	set.Set("typed")
	doc.Flush()

	focused := doc.Focused()
	require.NotNil(t, focused)
	assert.NotSame(t, input, focused)
	assert.Equal(t, "input", focused.NodeName())
	v, _ := focused.Property("value")
	assert.Equal(t, "typed", v)
	assert.Equal(t, 2, r.Renders())
}

type recordingHandler struct {
	errs []*errors.WillError
}

func (h *recordingHandler) HandleError(err *errors.WillError) { h.errs = append(h.errs, err) }
func (h *recordingHandler) HandlePanic(*errors.PanicError)    {}

func TestRerenderDropsUnrestorableFocus(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	doc := dom.NewDocument()
	var set core.Setter[bool]
	app := func(ctx *core.Context, _ core.Props) *core.VNode {
		short, setShort := core.UseState(ctx, false)
		set = setShort
		if short {
			return core.H("div", nil)
		}
		return core.H("div", nil, core.H("p", nil), core.H("button", nil))
	}
	r, err := Mount(doc, core.C(app, nil))
	require.NoError(t, err)
	require.NoError(t, doc.Root().Children()[0].Children()[1].Focus())

	set.Set(true)
	doc.Flush()

	assert.Nil(t, doc.Focused())
	assert.Equal(t, 2, r.Renders(), "the render itself succeeded")
	require.Len(t, rec.errs, 1)
	assert.Equal(t, errors.KindFocus, rec.errs[0].Kind)
}

func TestRerenderWithoutFocusReportsNothing(t *testing.T) {
	rec := &recordingHandler{}
	errors.SetHandler(rec)
	t.Cleanup(func() { errors.SetHandler(nil) })

	doc := dom.NewDocument()
	r, err := Mount(doc, core.H("div", nil, core.H("button", nil)))
	require.NoError(t, err)
	r.Rerender()

	assert.Empty(t, rec.errs)
	assert.Nil(t, doc.Focused())
}

func TestKeyedItemRemovalKeepsOthersState(t *testing.T) {
	doc := dom.NewDocument()
	setters := map[string]core.Setter[int]{}
	row := func(ctx *core.Context, props core.Props) *core.VNode {
		n, set := core.UseState(ctx, 0)
		setters[props.Key().(string)] = set
		return core.H("li", core.Props{"id": props.Key()}, core.Textf("%d", n))
	}
	var setKeys core.Setter[[]string]
	list := func(ctx *core.Context, _ core.Props) *core.VNode {
		keys, set := core.UseState(ctx, []string{"a", "b", "c"})
		setKeys = set
		return core.H("ul", nil, core.Map(keys, func(k string) *core.VNode {
			return core.C(row, core.Props{"key": k})
		})...)
	}
	r, err := Mount(doc, core.C(list, nil))
	require.NoError(t, err)

	setters["a"].Set(1)
	setters["c"].Set(3)
	doc.Flush()
	setKeys.Set([]string{"a", "c"})
	doc.Flush()

	assert.Equal(t, "1", text(t, doc, "a"))
	assert.Equal(t, "3", text(t, doc, "c"))
	assert.Nil(t, doc.GetElementByID("b"))
	_, kept := r.Store().Get("b")
	assert.False(t, kept, "storage of removed items is pruned")
}

func TestWithoutPruning(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[bool]
	child := func(ctx *core.Context, _ core.Props) *core.VNode {
		core.UseState(ctx, 0)
		return nil
	}
	app := func(ctx *core.Context, _ core.Props) *core.VNode {
		show, setShow := core.UseState(ctx, true)
		set = setShow
		if !show {
			return core.H("div", nil)
		}
		return core.H("div", nil, core.C(child, core.Props{"key": "child"}))
	}
	r, err := Mount(doc, core.C(app, nil), WithoutPruning())
	require.NoError(t, err)

	set.Set(false)
	doc.Flush()
	_, ok := r.Store().Get("child")
	assert.True(t, ok)
}

func TestRerenderIsNotReentrant(t *testing.T) {
	doc := dom.NewDocument()
	var r *Root
	nested := 0
	app := func(ctx *core.Context, _ core.Props) *core.VNode {
		if r != nil && nested == 0 {
			nested++
			r.Rerender()
		}
		return core.H("div", nil)
	}
	var err error
	r, err = Mount(doc, core.C(app, nil))
	require.NoError(t, err)

	r.Rerender()
	assert.Equal(t, 2, r.Renders())
	assert.Equal(t, 1, doc.PendingFrames(), "the nested call was deferred")
	doc.Flush()
	assert.Equal(t, 3, r.Renders())
}

func TestStart(t *testing.T) {
	doc := dom.NewDocument()
	calls := 0
	app := func(*core.Context, core.Props) *core.VNode {
		calls++
		return core.Text("x")
	}

	rerender, err := Start(doc, core.C(app, nil))
	require.NoError(t, err)
	rerender()
	assert.Equal(t, 2, calls)

	_, err = Start(doc, core.C(app, nil), WithRootID("nope"))
	assert.Error(t, err)
}

func TestWithFrameRequester(t *testing.T) {
	q := &frameQueue{}
	doc := dom.NewDocument()
	var set core.Setter[int]
	_, err := Mount(doc, core.C(counterApp(&set), nil), WithFrameRequester(q.request))
	require.NoError(t, err)

	set.Set(5)
	assert.Equal(t, 0, doc.PendingFrames())
	assert.Equal(t, 1, q.flush())
	assert.Equal(t, "5", text(t, doc, "count"))
}

func TestDefaultLoggerDiscards(t *testing.T) {
	o := defaultOptions()
	assert.False(t, o.logger.Enabled(t.Context(), slog.LevelError))

	WithLogger(nil)(&o)
	assert.False(t, o.logger.Enabled(t.Context(), slog.LevelError), "a nil logger keeps the default")
}
