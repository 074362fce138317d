// Package query evaluates a small XPath subset against element trees.
//
// An expression is a sequence of child steps separated by "/", with "//"
// for descendant steps, an optional leading "./", name tests of the form
// "local", "pfx:local" or "*", and 1-based positional predicates "[n]".
// Prefixes resolve through the engine's prefix→namespace-URI bindings; an
// unprefixed name test matches elements in no namespace, per XPath 1.0.
// Results are in document order with duplicates removed.
package query

import (
	"maps"
	"sync"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/debug"
)

// Engine compiles and evaluates expressions under one binding table.
// Compiled expressions are cached; an Engine is safe for concurrent use.
type Engine struct {
	bindings map[string]string

	mu    sync.RWMutex
	cache map[string]*compiled
}

// New returns an engine with the given prefix→URI bindings. A nil map means
// expressions use no prefixes.
func New(bindings map[string]string) *Engine {
	b := make(map[string]string, len(bindings))
	maps.Copy(b, bindings)
	return &Engine{bindings: b, cache: map[string]*compiled{}}
}

// Compile parses and caches an expression, reporting syntax and binding
// errors without evaluating anything.
func (e *Engine) Compile(expr string) error {
	_, err := e.get(expr)
	return err
}

// SelectElements evaluates expr with root as the context element.
func (e *Engine) SelectElements(expr string, root *etree.Element) ([]*etree.Element, error) {
	c, err := e.get(expr)
	if err != nil {
		return nil, err
	}
	res := c.selectFrom(root)
	if debug.Query() {
		debug.Logf("query %q under <%s>: %d elements\n", expr, root.FullTag(), len(res))
	}
	return res, nil
}

func (e *Engine) get(expr string) (*compiled, error) {
	e.mu.RLock()
	c := e.cache[expr]
	e.mu.RUnlock()
	if c != nil {
		return c, nil
	}
	c, err := parse(expr, e.bindings)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.cache[expr] = c
	e.mu.Unlock()
	return c, nil
}
