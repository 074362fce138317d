package selector

import (
	"fmt"
	"slices"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/xmltree"
)

// Selector decides whether a control element and a test element are the same
// logical node and therefore eligible for detailed comparison. It must not
// depend on anything but its four inputs; its only permitted side effect is
// registering children into the supplied contexts.
type Selector func(control *etree.Element, controlCtx *XPathContext, test *etree.Element, testCtx *XPathContext) bool

// ElementPredicate guards a Selector based on the control element alone.
type ElementPredicate func(e *etree.Element, ctx *XPathContext) bool

// Default pairs any two elements. With a document-order matcher this
// reproduces a plain positional comparison.
func Default(_ *etree.Element, _ *XPathContext, _ *etree.Element, _ *XPathContext) bool {
	return true
}

// ByName pairs elements sharing a local name and namespace URI, if any.
// Either side absent is a defined non-match, never a failure.
func ByName(control *etree.Element, _ *XPathContext, test *etree.Element, _ *XPathContext) bool {
	return control != nil && test != nil &&
		xmltree.QNameOf(control) == xmltree.QNameOf(test)
}

// ByNameAndText pairs elements sharing a name and merged direct text.
func ByNameAndText(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
	return ByName(control, cCtx, test, tCtx) &&
		xmltree.MergedText(control) == xmltree.MergedText(test)
}

// ByNameAndAttrNames pairs elements sharing a name and the values of the
// given attributes, looked up in the absent namespace on both sides.
// An empty name panics wrapping ErrConfig.
func ByNameAndAttrNames(names ...string) Selector {
	qs := make([]xmltree.QName, len(names))
	for i, n := range names {
		if n == "" {
			panic(fmt.Errorf("%w: attribute names must not be empty", ErrConfig))
		}
		qs[i] = xmltree.QName{Local: n}
	}
	return ByNameAndAttrs(qs...)
}

// ByNameAndAttrNamesControlNS is ByNameAndAttrNames with namespace
// resolution driven by the control side: each requested local name is looked
// up, on both elements, in whatever namespace the control element's own
// attribute of that local name has, or the absent namespace when the control
// element lacks it. The asymmetry is deliberate.
func ByNameAndAttrNamesControlNS(names ...string) Selector {
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if n == "" {
			panic(fmt.Errorf("%w: attribute names must not be empty", ErrConfig))
		}
		want[n] = true
	}
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		if !ByName(control, cCtx, test, tCtx) {
			return false
		}
		cAttrs := xmltree.Attributes(control)
		keyByLocal := make(map[string]xmltree.QName, len(want))
		for q := range cAttrs {
			if want[q.Local] {
				keyByLocal[q.Local] = q
			}
		}
		keys := make([]xmltree.QName, 0, len(want))
		for local := range want {
			q, ok := keyByLocal[local]
			if !ok {
				q = xmltree.QName{Local: local}
			}
			keys = append(keys, q)
		}
		return attrsEqualForKeys(cAttrs, xmltree.Attributes(test), keys)
	}
}

// ByNameAndAttrs pairs elements sharing a name and the values of the given
// qualified attributes. No namespace fallback is applied.
func ByNameAndAttrs(names ...xmltree.QName) Selector {
	for _, q := range names {
		if q.Local == "" {
			panic(fmt.Errorf("%w: attribute names must not be empty", ErrConfig))
		}
	}
	keys := slices.Clone(names)
	return func(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
		if !ByName(control, cCtx, test, tCtx) {
			return false
		}
		return attrsEqualForKeys(xmltree.Attributes(control), xmltree.Attributes(test), keys)
	}
}

// ByNameAndAllAttrs pairs elements sharing a name and exactly the same
// attribute set. The cardinality check rules out extra attributes on the
// test side.
func ByNameAndAllAttrs(control *etree.Element, cCtx *XPathContext, test *etree.Element, tCtx *XPathContext) bool {
	if !ByName(control, cCtx, test, tCtx) {
		return false
	}
	cAttrs := xmltree.Attributes(control)
	tAttrs := xmltree.Attributes(test)
	if len(cAttrs) != len(tAttrs) {
		return false
	}
	for k, cv := range cAttrs {
		tv, ok := tAttrs[k]
		if !ok || tv != cv {
			return false
		}
	}
	return true
}

// valuesEqual treats a value as (present, content): absent on both sides is
// equal, absent on one side is not.
func valuesEqual(c string, cok bool, t string, tok bool) bool {
	if cok != tok {
		return false
	}
	return !cok || c == t
}

func attrsEqualForKeys(cAttrs, tAttrs map[xmltree.QName]string, keys []xmltree.QName) bool {
	for _, k := range keys {
		cv, cok := cAttrs[k]
		tv, tok := tAttrs[k]
		if !valuesEqual(cv, cok, tv, tok) {
			return false
		}
	}
	return true
}
