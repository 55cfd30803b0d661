package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
)

func TestRenderTraceBuffer_Wraps(t *testing.T) {
	b := NewRenderTraceBuffer(3, time.Millisecond)
	for i := 1; i <= 5; i++ {
		b.Add(RenderSample{Pass: i}, time.Duration(i)*time.Millisecond/2)
	}

	snap := b.Snapshot()
	require.Len(t, snap.Samples, 3)
	assert.Equal(t, []int{3, 4, 5}, []int{snap.Samples[0].Pass, snap.Samples[1].Pass, snap.Samples[2].Pass})
	assert.Equal(t, 3, snap.SlowRenders, "passes 3 to 5 exceed 1ms")
	assert.Equal(t, 1.0, snap.ThresholdMs)
}

func TestRenderTraceBuffer_Defaults(t *testing.T) {
	b := NewRenderTraceBuffer(0, 0)
	assert.Equal(t, renderTraceSamplesDefault, b.Capacity())
	assert.Equal(t, defaultSlowRenderThreshold, b.Threshold())

	b.SetThreshold(time.Second)
	assert.Equal(t, time.Second, b.Threshold())
	b.SetThreshold(-1)
	assert.Equal(t, defaultSlowRenderThreshold, b.Threshold())

	assert.Empty(t, b.Snapshot().Samples)
}

func TestRootRecordsPasses(t *testing.T) {
	doc := dom.NewDocument()
	var setKeys core.Setter[[]string]
	row := func(ctx *core.Context, _ core.Props) *core.VNode {
		core.UseState(ctx, 0)
		return nil
	}
	app := func(ctx *core.Context, _ core.Props) *core.VNode {
		keys, set := core.UseState(ctx, []string{"a", "b"})
		setKeys = set
		return core.H("ul", nil, core.Map(keys, func(k string) *core.VNode {
			return core.C(row, core.Props{"key": k})
		})...)
	}
	r, err := Mount(doc, core.C(app, nil), WithRenderTrace(10, time.Hour))
	require.NoError(t, err)

	setKeys.Set(nil)
	doc.Flush()

	snap := r.Trace().Snapshot()
	require.Len(t, snap.Samples, 2)
	assert.Equal(t, 1, snap.Samples[0].Pass)
	assert.Equal(t, 3, snap.Samples[0].Identities)
	assert.Equal(t, 2, snap.Samples[1].Pruned)
	assert.Equal(t, 1, snap.Samples[1].Identities)
	assert.Equal(t, 10, r.Trace().Capacity())
	assert.Zero(t, snap.SlowRenders)
}

func TestInspect(t *testing.T) {
	doc := dom.NewDocument()
	var set core.Setter[int]
	r, err := Mount(doc, core.C(counterApp(&set), nil), WithInspection())
	require.NoError(t, err)
	require.NoError(t, doc.Root().Children()[0].Children()[1].Focus())

	set.Set(4)
	doc.Flush()

	insp := r.Inspect()
	assert.Equal(t, 2, insp.Pass)
	assert.Equal(t, []int{0, 1}, insp.Focus)
	assert.Contains(t, insp.Outline, "\"4\"")
	assert.Len(t, insp.Hooks, 1)
}

func TestInspectDisabledTracksPass(t *testing.T) {
	doc := dom.NewDocument()
	r, err := Mount(doc, core.H("div", nil))
	require.NoError(t, err)
	r.Rerender()

	insp := r.Inspect()
	assert.Equal(t, 2, insp.Pass)
	assert.Empty(t, insp.Outline)
	assert.Nil(t, insp.Hooks)
}
