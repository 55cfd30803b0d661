package testing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/dom"
	"github.com/go-will/will/pkg/testing/internal/testbed"
)

func TestFinders(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, core.Props{"start": 3}))

	tests := []struct {
		name   string
		finder Finder
		count  int
	}{
		{"tag", ByTag("button"), 2},
		{"tag is case-insensitive", ByTag("BUTTON"), 2},
		{"text", ByText("+"), 1},
		{"text miss", ByText("plus"), 0},
		{"text containing", ByTextContaining("3"), 2},
		{"prop", ByProp("id", "count"), 1},
		{"id", ByID("count"), 1},
		{"descendant", Descendant(ByTag("div"), ByTag("span")), 1},
		{"predicate", ByPredicate(func(e *dom.Element) bool { return e.IsText() }), 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.count, tester.Find(tt.finder).Count(), tt.finder.Description())
		})
	}
}

func TestFinderResult_Accessors(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))

	result := tester.Find(ByTag("button"))
	assert.Same(t, result.First(), result.At(0))
	assert.Len(t, result.All(), 2)
	assert.Nil(t, tester.Find(ByTag("table")).FirstOrNil())

	assert.PanicsWithValue(t, `Finder found no elements: ByTag("table")`, func() {
		tester.Find(ByTag("table")).First()
	})
	assert.Panics(t, func() { result.At(2) })
}
