// Package matcher provides strategies for pairing control and test
// element sequences during comparison. A matcher takes the two candidate
// sequences plus a selector and decides which control element should be
// compared against which test element; everything downstream works on the
// pairs it returns.
package matcher

import (
	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/debug"
	"github.com/benroe89/xmlunit/selector"
)

// Greedy pairs each control element with the first not-yet-claimed test
// element the selector accepts, scanning test elements in document order.
// Controls that find no partner stay unmatched; they never steal a test
// element already claimed by an earlier control.
type Greedy struct{}

var _ selector.NodeMatcher = Greedy{}

func (Greedy) Match(control []*etree.Element, controlCtx selector.ContextProvider,
	test []*etree.Element, testCtx selector.ContextProvider, sel selector.Selector) []selector.Match {
	claimed := make([]bool, len(test))
	var pairs []selector.Match
	for _, c := range control {
		for i, t := range test {
			if claimed[i] {
				continue
			}
			if sel(c, controlCtx(c), t, testCtx(t)) {
				claimed[i] = true
				pairs = append(pairs, selector.Match{Control: c, Test: t})
				if debug.Match() {
					debug.Logf("matcher: greedy paired <%s> with test[%d]\n", c.FullTag(), i)
				}
				break
			}
		}
	}
	return pairs
}
