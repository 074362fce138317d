package selector

import (
	"fmt"
	"slices"

	"github.com/beevik/etree"
)

// Not inverts a selector's decision.
func Not(s Selector) Selector {
	if s == nil {
		panic(fmt.Errorf("%w: selector must not be nil", ErrConfig))
	}
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		return !s(control, cCtx, test, tCtx)
	}
}

// Or accepts a pair if at least one of the given selectors does. Selectors
// run in the given order and stop at the first acceptance; an empty Or
// accepts nothing.
func Or(selectors ...Selector) Selector {
	sels := checked(selectors)
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		for _, s := range sels {
			if s(control, cCtx, test, tCtx) {
				return true
			}
		}
		return false
	}
}

// And accepts a pair if all of the given selectors do, stopping at the
// first rejection; an empty And accepts everything.
func And(selectors ...Selector) Selector {
	sels := checked(selectors)
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		for _, s := range sels {
			if !s(control, cCtx, test, tCtx) {
				return false
			}
		}
		return true
	}
}

// Xor accepts a pair if exactly one of the two selectors does. Both always
// run; there is no short-circuit to rely on.
func Xor(s1, s2 Selector) Selector {
	if s1 == nil || s2 == nil {
		panic(fmt.Errorf("%w: selectors must not be nil", ErrConfig))
	}
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		return s1(control, cCtx, test, tCtx) != s2(control, cCtx, test, tCtx)
	}
}

// Conditional applies s only when pred accepts the control element; when the
// guard rejects, the result is false and s never runs, so it registers no
// context state.
func Conditional(pred ElementPredicate, s Selector) Selector {
	if pred == nil {
		panic(fmt.Errorf("%w: predicate must not be nil", ErrConfig))
	}
	if s == nil {
		panic(fmt.Errorf("%w: selector must not be nil", ErrConfig))
	}
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		return pred(control, cCtx) && s(control, cCtx, test, tCtx)
	}
}

func checked(selectors []Selector) []Selector {
	for i, s := range selectors {
		if s == nil {
			panic(fmt.Errorf("%w: selector %d must not be nil", ErrConfig, i))
		}
	}
	return slices.Clone(selectors)
}
