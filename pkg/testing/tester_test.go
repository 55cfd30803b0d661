package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/focus"
	"github.com/go-will/will/pkg/testing/internal/testbed"
)

func TestNew_MountsTree(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, core.Props{"start": 5}))

	assert.True(t, tester.Find(ByText("5")).Exists())
	assert.Equal(t, 1, tester.Root().Renders())
	assert.Equal(t, 0, tester.Document().PendingFrames())
}

func TestClick_RerendersOnFrame(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))

	tester.Click(ByText("+"))
	assert.True(t, tester.Find(ByText("0")).Exists(), "state changes wait for a frame")

	assert.Equal(t, 1, tester.Frame())
	assert.True(t, tester.Find(ByText("1")).Exists())
	assert.Equal(t, 2, tester.Root().Renders())
}

func TestFrame_CoalescesClicks(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))

	tester.Click(ByText("+"))
	tester.Click(ByText("+"))
	tester.Click(ByText("-"))
	tester.Click(ByText("+"))

	assert.Equal(t, 1, tester.Document().PendingFrames())
	tester.Frame()
	assert.True(t, tester.Find(ByText("2")).Exists())
	assert.Equal(t, 2, tester.Root().Renders())
}

func TestInput_KeepsFocus(t *testing.T) {
	tester := New(t, core.C(testbed.Echo, nil))

	tester.Focus(ByTag("input"))
	require.Equal(t, focus.Path{0, 0}, tester.FocusPath())

	tester.Input(ByTag("input"), "hello")
	require.NoError(t, tester.Settle())

	assert.True(t, tester.Find(ByText("hello")).Exists())
	assert.Equal(t, focus.Path{0, 0}, tester.FocusPath())
	value, _ := tester.Focused().Property("value")
	assert.Equal(t, "hello", value)
}

func TestSettle_NothingPending(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))
	assert.NoError(t, tester.Settle())
}

func TestOutline(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, core.Props{"start": 1}))

	want := `<div id="root">
  <div>
    <span id="count">
      "1"
    <button @click>
      "+"
    <button @click>
      "-"
`
	assert.Equal(t, want, tester.Outline())
}
