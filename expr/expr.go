// expr implements the run filter expression language: a Python-like string
// syntax, an object-oriented builder API, and conversions between both and
// the canonical filters.Filters wire tree.
//
// The three representations agree: any tree produced by this package
// round-trips through the string syntax and the FilterExpr list form
// without loss, once the one-way operator coercions ('<' to '<=', '>' to
// '>=' and '=' to '==') have been applied.
package expr

import "github.com/tracelab/workspaces-go/log"

var logger = log.NewDefaultLogger()

// SetLogger redirects the non-fatal advisories this package emits, such as
// strict-inequality coercion warnings.
func SetLogger(l log.Logger) {
	logger = l
}
