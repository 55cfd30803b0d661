// Package testing provides a headless tester for components.
//
// # Quick Start
//
// Mount a description, interact with it, and pump frames:
//
//	func TestCounter(t *testing.T) {
//	    tester := willtest.New(t, core.C(Counter, nil))
//
//	    tester.Click(willtest.ByText("+"))
//	    tester.Frame()
//
//	    require.True(t, tester.Find(willtest.ByText("1")).Exists())
//	}
//
// Frames never run on their own: state setters queue a paint callback on the
// in-memory document, and Frame runs it. This makes coalescing observable.
//
// # Snapshot Testing
//
// Capture and compare the rendered tree:
//
//	tester.CaptureSnapshot().MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	WILL_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import willtest "github.com/go-will/will/pkg/testing"
package testing
