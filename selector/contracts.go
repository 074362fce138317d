package selector

import (
	"fmt"

	"github.com/beevik/etree"
)

// Match pairs one control element with one test element.
type Match struct {
	Control *etree.Element
	Test    *etree.Element
}

// ContextProvider yields an XPathContext positioned at the given element.
// Providers hand out independent contexts; callers may register children
// into them freely.
type ContextProvider func(*etree.Element) *XPathContext

// QueryEngine selects an ordered sequence of candidate elements below a
// context element. Implementations resolve any namespace prefixes in the
// expression themselves; see the query package for the default.
type QueryEngine interface {
	SelectElements(expr string, root *etree.Element) ([]*etree.Element, error)
}

// NodeMatcher pairs members of two candidate sequences using sel as the
// pairing predicate. The pairing strategy is the implementation's business;
// consumers here only count the pairs produced.
type NodeMatcher interface {
	Match(control []*etree.Element, controlCtx ContextProvider,
		test []*etree.Element, testCtx ContextProvider, sel Selector) []Match
}

// ChildContexts returns a ContextProvider serving clones of parent
// positioned at an element's index within children (the registered
// sequence, not the element's raw sibling position). Asking for an element
// outside the sequence is a programming error and panics.
func ChildContexts(parent *XPathContext, children []*etree.Element) ContextProvider {
	index := make(map[*etree.Element]int, len(children))
	for i, ch := range children {
		index[ch] = i
	}
	base := parent.Clone()
	return func(e *etree.Element) *XPathContext {
		i, ok := index[e]
		if !ok {
			panic(fmt.Sprintf("selector: element <%s> not among registered children", e.FullTag()))
		}
		ctx := base.Clone()
		ctx.NavigateToChild(i)
		return ctx
	}
}
