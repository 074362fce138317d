// Package selector decides whether two elements drawn from a control and a
// test document are the same logical node and may be compared in detail.
//
// The unit of composition is the Selector: a pure boolean decision over a
// control element, a test element, and one XPathContext per side. Selectors
// built from this package's constructors never fail during evaluation; all
// misconfiguration surfaces at construction time as a panic wrapping
// ErrConfig or ErrBuilderState.
//
// # Composing selectors
//
//	sel := selector.NewBuilder().
//		WhenNamed("li").ThenUse(selector.ByNameAndText).
//		DefaultTo(selector.ByNameAndAttrNames("id")).
//		Build()
//
// Combinators (Not, Or, And, Xor, Conditional) evaluate left to right with
// the usual short-circuit rules; callers may rely on that order to keep
// expensive selectors from running once a decision is reached.
//
// # Contexts
//
// An XPathContext tracks an addressable position in one tree across a single
// pairing decision. Recursive rules register the children they inspect and
// descend temporarily; the stack depth on exit always equals the depth on
// entry. A context pair must not be shared between concurrent evaluations;
// the selectors themselves are stateless and safe for concurrent use.
//
// # Related Packages
//
//   - github.com/benroe89/xmlunit/query - default query engine for ByQueryWith
//   - github.com/benroe89/xmlunit/matcher - default sibling matchers
//   - github.com/benroe89/xmlunit - diff driver consuming pairing decisions
package selector
