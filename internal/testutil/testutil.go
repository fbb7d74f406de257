package testutil

import (
	"testing"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// AssertEqualExpr fails with a readable character diff when two expression
// strings differ.
func AssertEqualExpr(t *testing.T, expected, actual string) {
	t.Helper()
	if expected == actual {
		return
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(expected, actual, false)
	t.Errorf("expression mismatch:\n%s", dmp.DiffPrettyText(diffs))
}
