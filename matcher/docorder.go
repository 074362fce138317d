package matcher

import (
	"github.com/beevik/etree"
	diffpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/benroe89/xmlunit/debug"
	"github.com/benroe89/xmlunit/selector"
	"github.com/benroe89/xmlunit/xmltree"
)

// DocOrder aligns the two sequences by qualified name first and only
// then asks the selector to confirm each aligned pair. Elements are
// summarized to identity runes and the rune sequences diffed, so a
// single inserted sibling shifts the alignment instead of cascading
// mismatches through the rest of the sequence. Pairs the selector
// rejects are dropped, not re-matched elsewhere.
type DocOrder struct{}

var _ selector.NodeMatcher = DocOrder{}

func (DocOrder) Match(control []*etree.Element, controlCtx selector.ContextProvider,
	test []*etree.Element, testCtx selector.ContextProvider, sel selector.Selector) []selector.Match {
	m := map[string]rune{}
	controlRunes := identityRunes(m, control)
	testRunes := identityRunes(m, test)
	diffs := diffpatch.New().DiffMainRunes(controlRunes, testRunes, false)

	var pairs []selector.Match
	ci, ti := 0, 0
	for i := range diffs {
		d := &diffs[i]
		switch d.Type {
		case diffpatch.DiffDelete:
			ci += len([]rune(d.Text))
		case diffpatch.DiffInsert:
			ti += len([]rune(d.Text))
		case diffpatch.DiffEqual:
			for range d.Text {
				c, t := control[ci], test[ti]
				if sel(c, controlCtx(c), t, testCtx(t)) {
					pairs = append(pairs, selector.Match{Control: c, Test: t})
				} else if debug.Match() {
					debug.Logf("matcher: docorder alignment of <%s> rejected by selector\n", c.FullTag())
				}
				ci++
				ti++
			}
		}
	}
	return pairs
}

// identityRunes maps each element to a rune keyed by its qualified name,
// reusing runes for repeated names so the diff sees identical symbols.
func identityRunes(m map[string]rune, els []*etree.Element) []rune {
	rs := make([]rune, len(els))
	for i, e := range els {
		key := xmltree.QNameOf(e).String()
		r, ok := m[key]
		if !ok {
			r = rune(len(m))
			m[key] = r
		}
		rs[i] = r
	}
	return rs
}
