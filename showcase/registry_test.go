package showcase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	willtest "github.com/go-will/will/pkg/testing"
	"github.com/go-will/will/showcase"
)

func TestLookup(t *testing.T) {
	d, ok := showcase.Lookup(showcase.DefaultDemo)
	require.True(t, ok)
	assert.Equal(t, "Tasks", d.Title)

	_, ok = showcase.Lookup("missing")
	assert.False(t, ok)
}

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"todo", "counter"}, showcase.Names())
}

func TestDemosMount(t *testing.T) {
	for _, d := range showcase.Demos() {
		t.Run(d.Name, func(t *testing.T) {
			tester := willtest.New(t, d.Root())
			assert.NotEmpty(t, tester.Container().Children())
			assert.NoError(t, tester.Settle())
		})
	}
}
