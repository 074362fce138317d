package xmlunit

import (
	"fmt"

	"github.com/benroe89/xmlunit/matcher"
	"github.com/benroe89/xmlunit/query"
	"github.com/benroe89/xmlunit/selector"
)

// ByXPath pairs two elements when every child the expression selects below
// the control element has a counterpart, per the child selector, among the
// children it selects below the test element. ns binds namespace prefixes
// used in the expression. The expression is compiled here; a malformed one
// panics with an error wrapping selector.ErrConfig.
func ByXPath(expr string, ns map[string]string, child selector.Selector) selector.Selector {
	engine := query.New(ns)
	if err := engine.Compile(expr); err != nil {
		panic(fmt.Errorf("%w: %v", selector.ErrConfig, err))
	}
	return selector.ByQueryWith(engine, matcher.Greedy{}, expr, child)
}
