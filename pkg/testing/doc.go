// Package testing provides a component testing harness for vdom.
//
// # Quick Start
//
// Create a tester, render a description, and make assertions:
//
//	func TestCounter(t *testing.T) {
//	    tester := vdomtest.NewTesterWithT(t)
//	    tester.Render(core.C(counterType, core.Props{"initial": 1}))
//
//	    tester.Tap(vdomtest.ByTag("button"))
//
//	    if !tester.Find(vdomtest.ByText("2")).Exists() {
//	        t.Error("expected '2'")
//	    }
//	}
//
// Tap and other event helpers flush deferred renders, so state changes made
// by handlers are visible immediately afterwards.
//
// # Snapshot Testing
//
// Capture and compare host tree snapshots:
//
//	snapshot := tester.CaptureSnapshot()
//	snapshot.MatchesFile(t, "testdata/counter.snapshot.json")
//
// Update snapshots with:
//
//	VDOM_UPDATE_SNAPSHOTS=1 go test ./...
//
// # Import Alias
//
// Since this package has the same name as the standard library testing
// package, import it with an alias:
//
//	import vdomtest "github.com/go-drift/vdom/pkg/testing"
package testing
