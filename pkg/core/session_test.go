package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-will/will/pkg/dom"
)

// item keeps a per-identity counter so tests can tell storage apart.
func item(ctx *Context, props Props) *VNode {
	n, set := UseState(ctx, 0)
	if Prop[bool](props, "bump") {
		set.Set(n + 1)
	}
	return H("li", nil, Textf("%v=%d", props.Key(), n))
}

func TestKeyedComponentsHaveIndependentStorage(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	list := func(bumpKey string) *VNode {
		return H("ul", nil, Map([]string{"a", "b"}, func(k string) *VNode {
			return C(item, Props{"key": k, "bump": k == bumpKey})
		})...)
	}

	s.Render(list("b"))
	s.Render(list("b"))
	el := render(t, s, list(""))

	assert.Equal(t, "a=0b=2", dom.TextContent(el))
	assert.Equal(t, 2, s.Store().Len())
}

func TestUnkeyedInvocationsShareStorage(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	counter := func(ctx *Context, props Props) *VNode {
		n, set := UseState(ctx, 0)
		if Prop[bool](props, "bump") {
			set.Set(n + 1)
		}
		return Textf("%d", n)
	}
	tree := func() *VNode {
		return H("div", nil, C(counter, Props{"bump": true}), C(counter, nil))
	}

	s.Render(tree())
	el := render(t, s, tree())

	// The second invocation reads the slot the first one bumped.
	assert.Equal(t, "12", dom.TextContent(el))
	assert.Equal(t, 1, s.Store().Len())
}

func TestFactoryComponentsShareCodeIdentity(t *testing.T) {
	labeled := func(label string) Component {
		return func(ctx *Context, props Props) *VNode {
			n, set := UseState(ctx, 0)
			if Prop[bool](props, "bump") {
				set.Set(n + 1)
			}
			return Textf("%s%d", label, n)
		}
	}
	a, b := labeled("a"), labeled("b")

	s := NewSession(dom.NewDocument(), nil, nil)
	s.Render(C(a, Props{"bump": true}))
	el := render(t, s, H("div", nil, C(a, nil), C(b, nil)))
	assert.Equal(t, "a1b1", dom.TextContent(el), "closures of one literal share a slot list")
	assert.Equal(t, 1, s.Store().Len())

	keyed := NewSession(dom.NewDocument(), nil, nil)
	keyed.Render(C(a, Props{"key": "a", "bump": true}))
	el = render(t, keyed, H("div", nil, C(a, Props{"key": "a"}), C(b, Props{"key": "b"})))
	assert.Equal(t, "a1b0", dom.TextContent(el))
}

func TestFalsyKeysAreIdentities(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	s.Render(H("div", nil,
		C(item, Props{"key": 0}),
		C(item, Props{"key": ""}),
		C(item, Props{"key": false}),
	))
	assert.Equal(t, 3, s.Store().Len())
}

func TestEndPrunesUnrenderedIdentities(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	list := func(keys ...string) *VNode {
		return H("ul", nil, Map(keys, func(k string) *VNode {
			return C(item, Props{"key": k})
		})...)
	}

	s.Render(list("a", "b", "c"))
	require.Equal(t, 3, s.Store().Len())

	s.Begin()
	s.Build(list("a", "c"))
	assert.Equal(t, 1, s.End())

	_, ok := s.Store().Get("b")
	assert.False(t, ok)
	_, ok = s.Store().Get("a")
	assert.True(t, ok)
}

func TestPruningDisabledKeepsStorage(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	s.SetPruning(false)

	s.Render(C(item, Props{"key": "gone"}))
	s.Render(H("div", nil))

	_, ok := s.Store().Get("gone")
	assert.True(t, ok)
}

func TestPrunedIdentityStartsFresh(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)

	s.Render(C(item, Props{"key": "x", "bump": true}))
	s.Render(H("div", nil))
	el := render(t, s, C(item, Props{"key": "x"}))

	assert.Equal(t, "x=0", dom.TextContent(el))
}

func TestBuildOutsidePassDoesNotPrune(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	s.Render(C(item, Props{"key": "kept"}))

	assert.False(t, s.InPass())
	s.Build(C(item, Props{"key": "other"}))
	assert.Equal(t, 0, s.End())
	assert.Equal(t, 2, s.Store().Len())
}

func TestSharedStoreAcrossSessions(t *testing.T) {
	store := NewHookStore()
	first := NewSession(dom.NewDocument(), store, nil)
	first.Render(C(item, Props{"key": "k", "bump": true}))

	second := NewSession(dom.NewDocument(), store, nil)
	el := render(t, second, C(item, Props{"key": "k"}))
	assert.Equal(t, "k=1", dom.TextContent(el))
}

func TestContextAccessors(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	var ctx *Context
	s.Render(C(func(c *Context, _ Props) *VNode {
		ctx = c
		return nil
	}, Props{"key": "id"}))

	require.NotNil(t, ctx)
	assert.Same(t, s, ctx.Session())
	assert.Equal(t, "id", ctx.Identity())
}

func TestHookStoreDescribe(t *testing.T) {
	s := NewSession(dom.NewDocument(), nil, nil)
	s.Render(H("div", nil, C(item, Props{"key": "b"}), C(item, Props{"key": "a"})))

	assert.Equal(t, []string{"a: 1 slots", "b: 1 slots"}, s.Store().Describe())
}

func TestComponentIDString(t *testing.T) {
	id := identityOf(C(item, nil))
	assert.Contains(t, id.(componentID).String(), "core.item")
}
