package selector

import (
	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/debug"
	"github.com/benroe89/xmlunit/xmltree"
)

// ByNameAndTextRec pairs elements whose names, direct text, and structural
// children agree recursively. Text-bearing children are skipped as glue;
// the remaining children must align positionally, with no reordering
// tolerance and no backtracking. A node-kind mismatch or a leftover
// structural child on either side rejects the whole pair.
func ByNameAndTextRec(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
	if !ByNameAndText(control, cCtx, test, tCtx) {
		return false
	}
	controlKids := control.Child
	testKids := test.Child
	cCtx.SetChildren(ChildInfos(control))
	tCtx.SetChildren(ChildInfos(test))

	ci, ti := 0, 0
	for ci < len(controlKids) && ti < len(testKids) {
		ci = nextNonText(controlKids, ci)
		if ci >= len(controlKids) {
			break
		}
		ti = nextNonText(testKids, ti)
		if ti >= len(testKids) {
			break
		}
		c, t := controlKids[ci], testKids[ti]
		if xmltree.KindOf(c) != xmltree.KindOf(t) {
			if debug.Selector() {
				debug.Logf("rec: kind mismatch %s vs %s at %s\n",
					xmltree.KindOf(c), xmltree.KindOf(t), cCtx.XPath())
			}
			return false
		}
		if ce, ok := c.(*etree.Element); ok {
			te := t.(*etree.Element)
			matched := func() bool {
				cCtx.NavigateToChild(ci)
				defer cCtx.NavigateToParent()
				tCtx.NavigateToChild(ti)
				defer tCtx.NavigateToParent()
				return ByNameAndTextRec(ce, cCtx, te, tCtx)
			}()
			if !matched {
				return false
			}
		}
		ci++
		ti++
	}

	// any structural child remaining on either side is a hard failure
	if nextNonText(controlKids, ci) < len(controlKids) {
		return false
	}
	if nextNonText(testKids, ti) < len(testKids) {
		return false
	}
	return true
}

func nextNonText(kids []etree.Token, i int) int {
	for i < len(kids) && xmltree.IsText(kids[i]) {
		i++
	}
	return i
}
