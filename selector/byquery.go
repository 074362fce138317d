package selector

import (
	"fmt"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/debug"
)

// ByQueryWith pairs two elements when the children each side yields for
// queryExpr can be fully matched by the given matcher under child.
//
// Both candidate sequences are registered into their contexts as the
// selectable children at the current level, and the matcher sees per-child
// contexts positioned within those sequences. The pair is accepted when the
// matcher produces as many pairs as there are control candidates; leftover
// test candidates do not by themselves reject the pair. That imbalance is
// the surrounding diff pipeline's to report.
//
// A query evaluation failure rejects the pair. Use an engine that compiles
// the expression eagerly (see xmlunit.ByXPath) to surface syntax errors at
// construction time instead.
func ByQueryWith(engine QueryEngine, m NodeMatcher, queryExpr string, child Selector) Selector {
	if engine == nil {
		panic(fmt.Errorf("%w: query engine must not be nil", ErrConfig))
	}
	if m == nil {
		panic(fmt.Errorf("%w: node matcher must not be nil", ErrConfig))
	}
	if queryExpr == "" {
		panic(fmt.Errorf("%w: query expression must not be empty", ErrConfig))
	}
	if child == nil {
		panic(fmt.Errorf("%w: child selector must not be nil", ErrConfig))
	}
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		controlKids, err := engine.SelectElements(queryExpr, control)
		if err != nil {
			if debug.Selector() {
				debug.Logf("byquery %q control side: %v\n", queryExpr, err)
			}
			return false
		}
		cCtx.SetChildren(ElementInfos(controlKids))
		testKids, err := engine.SelectElements(queryExpr, test)
		if err != nil {
			if debug.Selector() {
				debug.Logf("byquery %q test side: %v\n", queryExpr, err)
			}
			return false
		}
		tCtx.SetChildren(ElementInfos(testKids))

		expected := len(controlKids)
		pairs := m.Match(controlKids, ChildContexts(cCtx, controlKids),
			testKids, ChildContexts(tCtx, testKids), child)
		if debug.Selector() {
			debug.Logf("byquery %q at %s: expected %d, matched %d\n",
				queryExpr, cCtx.XPath(), expected, len(pairs))
		}
		return len(pairs) == expected
	}
}
