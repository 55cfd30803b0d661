package testing

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-will/will/pkg/core"
	"github.com/go-will/will/pkg/testing/internal/testbed"
)

func TestCaptureSnapshot_Structure(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, core.Props{"start": 7}))

	snap := tester.CaptureSnapshot()
	require.Len(t, snap.Tree, 1)
	div := snap.Tree[0]
	assert.Equal(t, "div", div.Name)
	require.Len(t, div.Children, 3)

	span := div.Children[0]
	assert.Equal(t, map[string]string{"id": "count"}, span.Props)
	require.Len(t, span.Children, 1)
	assert.Equal(t, "#text", span.Children[0].Name)
	assert.Equal(t, "7", span.Children[0].Text)

	assert.Equal(t, []string{"click"}, div.Children[1].Events)
	assert.Empty(t, snap.Focus)
}

func TestSnapshot_FocusRecorded(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))
	tester.Focus(ByText("-"))

	assert.Equal(t, []int{0, 2}, tester.CaptureSnapshot().Focus)
}

func TestSnapshot_RoundTripFile(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))
	snap := tester.CaptureSnapshot()

	path := filepath.Join(t.TempDir(), "nested", "counter.snapshot.json")
	require.NoError(t, snap.UpdateFile(path))

	loaded, err := loadSnapshot(path)
	require.NoError(t, err)
	assert.Empty(t, snap.Diff(loaded))

	snap.MatchesFile(t, path)
}

func TestSnapshot_DiffReportsChange(t *testing.T) {
	tester := New(t, core.C(testbed.Counter, nil))
	before := tester.CaptureSnapshot()

	tester.Click(ByText("+"))
	tester.Frame()
	after := tester.CaptureSnapshot()

	diff := after.Diff(before)
	assert.Contains(t, diff, `-              "text": "0"`)
	assert.Contains(t, diff, `+              "text": "1"`)
}

type fakeT struct {
	fatals []string
	errs   []string
}

func (f *fakeT) Helper()                           {}
func (f *fakeT) Name() string                      { return "TestFake" }
func (f *fakeT) Fatalf(format string, args ...any) { f.fatals = append(f.fatals, format) }
func (f *fakeT) Errorf(format string, args ...any) { f.errs = append(f.errs, format) }

func TestMatchesFile_Missing(t *testing.T) {
	t.Setenv("WILL_UPDATE_SNAPSHOTS", "")
	tester := New(t, core.C(testbed.Counter, nil))

	ft := &fakeT{}
	tester.CaptureSnapshot().MatchesFile(ft, filepath.Join(t.TempDir(), "missing.json"))
	assert.Len(t, ft.fatals, 1)
}

func TestMatchesFile_Golden(t *testing.T) {
	tester := New(t, core.C(testbed.Echo, nil))
	tester.CaptureSnapshot().MatchesFile(t, "testdata/echo.snapshot.json")
}
