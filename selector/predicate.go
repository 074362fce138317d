package selector

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/benroe89/xmlunit/xmltree"
)

// ElementNamed matches a control element by plain local name. A missing
// element never matches.
func ElementNamed(local string) ElementPredicate {
	if local == "" {
		panic(fmt.Errorf("%w: element name must not be empty", ErrConfig))
	}
	return func(e *etree.Element, _ *XPathContext) bool {
		return e != nil && e.Tag == local
	}
}

// ElementNamedQN matches a control element by qualified name. A missing
// element never matches.
func ElementNamedQN(q xmltree.QName) ElementPredicate {
	if q.Local == "" {
		panic(fmt.Errorf("%w: element name must not be empty", ErrConfig))
	}
	return func(e *etree.Element, _ *XPathContext) bool {
		return e != nil && xmltree.QNameOf(e) == q
	}
}

// NewExprPredicate compiles a boolean expression over the control element.
// The expression sees:
//
//	name           element local name
//	space          element namespace URI, "" when absent
//	path           the context's current XPath
//	attr(name)     attribute value by document key, "" when absent
//	hasAttr(name)  attribute presence by document key
//	text()         merged direct text
//
// A missing element never matches.
func NewExprPredicate(src string) (ElementPredicate, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: expression must not be empty", ErrConfig)
	}
	prg, err := expr.Compile(src, expr.Env(exprEnv(nil, nil)), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("%w: compile %q: %v", ErrConfig, src, err)
	}
	return func(e *etree.Element, ctx *XPathContext) bool {
		if e == nil {
			return false
		}
		return runBool(prg, exprEnv(e, ctx))
	}, nil
}

// ExprPredicate is NewExprPredicate that panics on a bad expression.
func ExprPredicate(src string) ElementPredicate {
	p, err := NewExprPredicate(src)
	if err != nil {
		panic(err)
	}
	return p
}

func runBool(prg *vm.Program, env map[string]any) bool {
	out, err := expr.Run(prg, env)
	if err != nil {
		return false
	}
	b, _ := out.(bool)
	return b
}

func exprEnv(e *etree.Element, ctx *XPathContext) map[string]any {
	env := map[string]any{
		"name":    "",
		"space":   "",
		"path":    "",
		"attr":    func(string) string { return "" },
		"hasAttr": func(string) bool { return false },
		"text":    func() string { return "" },
	}
	if e == nil {
		return env
	}
	env["name"] = e.Tag
	env["space"] = e.NamespaceURI()
	if ctx != nil {
		env["path"] = ctx.XPath()
	}
	env["attr"] = func(name string) string { return e.SelectAttrValue(name, "") }
	env["hasAttr"] = func(name string) bool { return e.SelectAttr(name) != nil }
	env["text"] = func() string { return xmltree.MergedText(e) }
	return env
}
