package selector

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/xmltree"
)

// NodeInfo describes one selectable child registered into an XPathContext:
// its node kind and, for elements, its qualified name.
type NodeInfo struct {
	Kind xmltree.Kind
	Name xmltree.QName
}

type level struct {
	children []NodeInfo
	// index of this level's node within the parent level's registered
	// children; -1 at the root level
	index int
}

// XPathContext is a mutable cursor into one tree, scoped to a single pairing
// decision. Rules register the selectable children of the element they are
// inspecting and may temporarily descend to one of them. Every descent made
// inside a selector must be matched by an ascent on every exit path.
type XPathContext struct {
	levels []level
}

// NewXPathContext returns a context positioned at the tree's root element.
func NewXPathContext() *XPathContext {
	return &XPathContext{levels: []level{{index: -1}}}
}

// SetChildren replaces the set of selectable children at the current level.
func (x *XPathContext) SetChildren(infos []NodeInfo) {
	x.levels[len(x.levels)-1].children = infos
}

// AppendChildren extends the set of selectable children at the current level.
func (x *XPathContext) AppendChildren(infos []NodeInfo) {
	cur := &x.levels[len(x.levels)-1]
	cur.children = append(cur.children[:len(cur.children):len(cur.children)], infos...)
}

// NavigateToChild descends to the i-th registered child of the current level.
func (x *XPathContext) NavigateToChild(i int) {
	cur := &x.levels[len(x.levels)-1]
	if i < 0 || i >= len(cur.children) {
		panic(fmt.Sprintf("selector: navigate to unregistered child %d of %d", i, len(cur.children)))
	}
	x.levels = append(x.levels, level{index: i})
}

// NavigateToParent ascends one level.
func (x *XPathContext) NavigateToParent() {
	if len(x.levels) <= 1 {
		panic("selector: navigate above root")
	}
	x.levels = x.levels[:len(x.levels)-1]
}

// Depth is the number of descents currently active; 0 at the root.
func (x *XPathContext) Depth() int {
	return len(x.levels) - 1
}

// WithChild descends to registered child i, runs f, and restores the parent
// position on every exit path.
func (x *XPathContext) WithChild(i int, f func() bool) bool {
	x.NavigateToChild(i)
	defer x.NavigateToParent()
	return f()
}

// Clone returns an independent cursor at the same position. Registered
// child slices are shared; they are never mutated in place.
func (x *XPathContext) Clone() *XPathContext {
	cp := make([]level, len(x.levels))
	copy(cp, x.levels)
	return &XPathContext{levels: cp}
}

// XPath renders the current position as an XPath-style location, one step
// per descent, with 1-based positions counted among same-kind (and for
// elements, same-name) registered siblings. Namespace URIs are elided from
// element steps.
func (x *XPathContext) XPath() string {
	if len(x.levels) == 1 {
		return "/"
	}
	var sb strings.Builder
	for li := 1; li < len(x.levels); li++ {
		sb.WriteByte('/')
		sb.WriteString(step(x.levels[li-1].children, x.levels[li].index))
	}
	return sb.String()
}

func step(children []NodeInfo, idx int) string {
	n := children[idx]
	pos := 1
	for _, p := range children[:idx] {
		if p.Kind != n.Kind {
			continue
		}
		if n.Kind == xmltree.ElementKind && p.Name != n.Name {
			continue
		}
		pos++
	}
	switch n.Kind {
	case xmltree.ElementKind:
		return fmt.Sprintf("%s[%d]", n.Name.Local, pos)
	case xmltree.TextKind:
		return fmt.Sprintf("text()[%d]", pos)
	case xmltree.CommentKind:
		return fmt.Sprintf("comment()[%d]", pos)
	case xmltree.ProcInstKind:
		return fmt.Sprintf("processing-instruction()[%d]", pos)
	default:
		return fmt.Sprintf("node()[%d]", idx+1)
	}
}

// ChildInfos builds the NodeInfo descriptors for all direct children of e,
// in document order.
func ChildInfos(e *etree.Element) []NodeInfo {
	infos := make([]NodeInfo, len(e.Child))
	for i, t := range e.Child {
		in := NodeInfo{Kind: xmltree.KindOf(t)}
		if el, ok := t.(*etree.Element); ok {
			in.Name = xmltree.QNameOf(el)
		}
		infos[i] = in
	}
	return infos
}

// ElementInfos builds the NodeInfo descriptors for an element sequence, as
// produced by a query engine.
func ElementInfos(els []*etree.Element) []NodeInfo {
	infos := make([]NodeInfo, len(els))
	for i, e := range els {
		infos[i] = NodeInfo{Kind: xmltree.ElementKind, Name: xmltree.QNameOf(e)}
	}
	return infos
}
