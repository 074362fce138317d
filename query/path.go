package query

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"
)

type step struct {
	desc  bool // "//": descendant instead of child
	any   bool // "*"
	space string
	local string
	pos   int // 1-based positional predicate, 0 when absent
}

type compiled struct {
	steps []step
}

func parse(src string, bindings map[string]string) (*compiled, error) {
	s := src
	switch {
	case s == "":
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	case s == ".":
		return nil, fmt.Errorf("%w: expression must select children", ErrSyntax)
	case strings.HasPrefix(s, ".//"):
		s = s[1:]
	case strings.HasPrefix(s, "./"):
		s = s[2:]
	case strings.HasPrefix(s, "."):
		return nil, fmt.Errorf("%w: unexpected '.' in %q", ErrSyntax, src)
	}
	if strings.HasPrefix(s, "/") && !strings.HasPrefix(s, "//") {
		return nil, fmt.Errorf("%w: absolute paths are not supported", ErrSyntax)
	}
	var steps []step
	for len(s) > 0 {
		st := step{}
		if strings.HasPrefix(s, "//") {
			st.desc = true
			s = s[2:]
		} else {
			s = strings.TrimPrefix(s, "/")
		}
		if s == "" {
			return nil, fmt.Errorf("%w: trailing slash in %q", ErrSyntax, src)
		}
		name := s
		if i := strings.IndexAny(s, "/["); i >= 0 {
			name, s = s[:i], s[i:]
		} else {
			s = ""
		}
		if err := st.setName(name, bindings); err != nil {
			return nil, err
		}
		if strings.HasPrefix(s, "[") {
			j := strings.IndexByte(s, ']')
			if j < 0 {
				return nil, fmt.Errorf("%w: missing ']' in %q", ErrSyntax, src)
			}
			n, err := strconv.Atoi(s[1:j])
			if err != nil || n < 1 {
				return nil, fmt.Errorf("%w: bad position %q", ErrSyntax, s[1:j])
			}
			st.pos = n
			s = s[j+1:]
		}
		steps = append(steps, st)
	}
	if len(steps) == 0 {
		return nil, fmt.Errorf("%w: expression must select children", ErrSyntax)
	}
	return &compiled{steps: steps}, nil
}

func (st *step) setName(name string, bindings map[string]string) error {
	if name == "" {
		return fmt.Errorf("%w: empty name test", ErrSyntax)
	}
	if name == "*" {
		st.any = true
		return nil
	}
	if pfx, local, ok := strings.Cut(name, ":"); ok {
		uri, bound := bindings[pfx]
		if !bound {
			return fmt.Errorf("%w: unbound namespace prefix %q", ErrSyntax, pfx)
		}
		st.space, st.local = uri, local
		return nil
	}
	st.local = name
	return nil
}

func (c *compiled) selectFrom(root *etree.Element) []*etree.Element {
	ctx := []*etree.Element{root}
	for i := range c.steps {
		st := &c.steps[i]
		var next []*etree.Element
		seen := map[*etree.Element]bool{}
		for _, e := range ctx {
			var matched []*etree.Element
			if st.desc {
				matched = st.matchDescendants(e)
			} else {
				matched = st.matchChildren(e)
			}
			// positional predicates apply per context node
			if st.pos > 0 {
				if st.pos <= len(matched) {
					matched = matched[st.pos-1 : st.pos]
				} else {
					matched = nil
				}
			}
			for _, m := range matched {
				if !seen[m] {
					seen[m] = true
					next = append(next, m)
				}
			}
		}
		ctx = next
	}
	return ctx
}

func (st *step) matches(e *etree.Element) bool {
	if st.any {
		return true
	}
	return e.Tag == st.local && e.NamespaceURI() == st.space
}

func (st *step) matchChildren(e *etree.Element) []*etree.Element {
	var res []*etree.Element
	for _, ch := range e.ChildElements() {
		if st.matches(ch) {
			res = append(res, ch)
		}
	}
	return res
}

func (st *step) matchDescendants(e *etree.Element) []*etree.Element {
	var res []*etree.Element
	var walk func(*etree.Element)
	walk = func(x *etree.Element) {
		for _, ch := range x.ChildElements() {
			if st.matches(ch) {
				res = append(res, ch)
			}
			walk(ch)
		}
	}
	walk(e)
	return res
}
