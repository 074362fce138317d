package xmlunit

import (
	"fmt"
	"sort"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/debug"
	"github.com/benroe89/xmlunit/selector"
	"github.com/benroe89/xmlunit/xmltree"
)

// DiffKind classifies one reported difference.
type DiffKind int

const (
	DiffName DiffKind = iota
	DiffText
	DiffAttr
	DiffAttrCount
	DiffChildInserted
	DiffChildDeleted
	DiffNodeKind
)

var diffKindNames = map[DiffKind]string{
	DiffName:          "name",
	DiffText:          "text",
	DiffAttr:          "attribute",
	DiffAttrCount:     "attribute-count",
	DiffChildInserted: "child-inserted",
	DiffChildDeleted:  "child-deleted",
	DiffNodeKind:      "node-kind",
}

func (k DiffKind) String() string {
	if s, ok := diffKindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("DiffKind(%d)", int(k))
}

// Difference is one point of disagreement between the two documents.
// Control and Test hold the disagreeing values rendered as text; either
// may be empty when one side has no counterpart.
type Difference struct {
	Kind        DiffKind
	ControlPath string
	TestPath    string
	Control     string
	Test        string
}

func (d Difference) String() string {
	return fmt.Sprintf("%s at %s: %q != %q", d.Kind, d.ControlPath, d.Control, d.Test)
}

// Result collects the differences found by one comparison.
type Result struct {
	Differences []Difference
}

// Identical reports whether no differences were found.
func (r *Result) Identical() bool {
	return len(r.Differences) == 0
}

// Compare walks both documents and reports every difference between them.
// Child elements are paired by the configured matcher and selector;
// unpaired children are reported as insertions or deletions. The input
// documents are never modified.
func Compare(control, test *etree.Document, opts ...Option) (*Result, error) {
	cfg := newConfig(opts)
	if control == nil || control.Root() == nil {
		return nil, fmt.Errorf("xmlunit: control document has no root element")
	}
	if test == nil || test.Root() == nil {
		return nil, fmt.Errorf("xmlunit: test document has no root element")
	}
	if cfg.NormalizeWhitespace {
		control, test = control.Copy(), test.Copy()
		xmltree.NormalizeWhitespace(control)
		xmltree.NormalizeWhitespace(test)
	}

	res := &Result{}
	w := &walker{cfg: cfg, res: res}
	cCtx, tCtx := rootContext(control.Root()), rootContext(test.Root())
	w.compareElements(control.Root(), cCtx, test.Root(), tCtx)
	return res, nil
}

// rootContext positions a context at the document element so its XPath
// renders as /name[1] instead of the bare document path.
func rootContext(root *etree.Element) *selector.XPathContext {
	ctx := selector.NewXPathContext()
	ctx.SetChildren(selector.ElementInfos([]*etree.Element{root}))
	ctx.NavigateToChild(0)
	return ctx
}

type walker struct {
	cfg *Config
	res *Result
}

func (w *walker) record(d Difference) {
	if debug.Diff() {
		debug.Logf("diff: %s\n", d)
	}
	w.res.Differences = append(w.res.Differences, d)
}

func (w *walker) compareElements(c *etree.Element, cCtx *selector.XPathContext, t *etree.Element, tCtx *selector.XPathContext) {
	cName, tName := xmltree.QNameOf(c), xmltree.QNameOf(t)
	if cName != tName {
		w.record(Difference{
			Kind:        DiffName,
			ControlPath: cCtx.XPath(),
			TestPath:    tCtx.XPath(),
			Control:     cName.String(),
			Test:        tName.String(),
		})
		return
	}
	w.compareAttributes(c, cCtx, t, tCtx)
	w.compareText(c, cCtx, t, tCtx)
	w.compareMisc(c, cCtx, t, tCtx)
	w.compareChildren(c, cCtx, t, tCtx)
}

func (w *walker) compareAttributes(c *etree.Element, cCtx *selector.XPathContext, t *etree.Element, tCtx *selector.XPathContext) {
	cAttrs, tAttrs := xmltree.Attributes(c), xmltree.Attributes(t)
	if len(cAttrs) != len(tAttrs) {
		w.record(Difference{
			Kind:        DiffAttrCount,
			ControlPath: cCtx.XPath(),
			TestPath:    tCtx.XPath(),
			Control:     fmt.Sprintf("%d", len(cAttrs)),
			Test:        fmt.Sprintf("%d", len(tAttrs)),
		})
	}
	for _, q := range sortedKeys(cAttrs) {
		tv, ok := tAttrs[q]
		if ok && tv == cAttrs[q] {
			continue
		}
		d := Difference{
			Kind:        DiffAttr,
			ControlPath: cCtx.XPath() + "/@" + q.Local,
			TestPath:    tCtx.XPath() + "/@" + q.Local,
			Control:     cAttrs[q],
		}
		if ok {
			d.Test = tv
		} else {
			d.TestPath = ""
		}
		w.record(d)
	}
	for _, q := range sortedKeys(tAttrs) {
		if _, ok := cAttrs[q]; ok {
			continue
		}
		w.record(Difference{
			Kind:     DiffAttr,
			TestPath: tCtx.XPath() + "/@" + q.Local,
			Test:     tAttrs[q],
		})
	}
}

func sortedKeys(m map[xmltree.QName]string) []xmltree.QName {
	keys := make([]xmltree.QName, 0, len(m))
	for q := range m {
		keys = append(keys, q)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Space != keys[j].Space {
			return keys[i].Space < keys[j].Space
		}
		return keys[i].Local < keys[j].Local
	})
	return keys
}

func (w *walker) compareText(c *etree.Element, cCtx *selector.XPathContext, t *etree.Element, tCtx *selector.XPathContext) {
	cText, tText := xmltree.MergedText(c), xmltree.MergedText(t)
	if cText == tText {
		return
	}
	w.record(Difference{
		Kind:        DiffText,
		ControlPath: cCtx.XPath() + "/text()",
		TestPath:    tCtx.XPath() + "/text()",
		Control:     cText,
		Test:        tText,
	})
}

// compareMisc walks the non-element, non-text children (comments,
// processing instructions, directives) positionally.
func (w *walker) compareMisc(c *etree.Element, cCtx *selector.XPathContext, t *etree.Element, tCtx *selector.XPathContext) {
	cMisc, tMisc := w.miscChildren(c), w.miscChildren(t)
	n := len(cMisc)
	if len(tMisc) > n {
		n = len(tMisc)
	}
	for i := 0; i < n; i++ {
		switch {
		case i >= len(tMisc):
			w.record(Difference{
				Kind:        DiffChildDeleted,
				ControlPath: cCtx.XPath(),
				Control:     miscString(cMisc[i]),
			})
		case i >= len(cMisc):
			w.record(Difference{
				Kind:     DiffChildInserted,
				TestPath: tCtx.XPath(),
				Test:     miscString(tMisc[i]),
			})
		case xmltree.KindOf(cMisc[i]) != xmltree.KindOf(tMisc[i]):
			w.record(Difference{
				Kind:        DiffNodeKind,
				ControlPath: cCtx.XPath(),
				TestPath:    tCtx.XPath(),
				Control:     xmltree.KindOf(cMisc[i]).String(),
				Test:        xmltree.KindOf(tMisc[i]).String(),
			})
		case miscString(cMisc[i]) != miscString(tMisc[i]):
			w.record(Difference{
				Kind:        DiffText,
				ControlPath: cCtx.XPath(),
				TestPath:    tCtx.XPath(),
				Control:     miscString(cMisc[i]),
				Test:        miscString(tMisc[i]),
			})
		}
	}
}

func (w *walker) miscChildren(e *etree.Element) []etree.Token {
	var misc []etree.Token
	for _, tok := range e.Child {
		switch tok.(type) {
		case *etree.Element, *etree.CharData:
			continue
		case *etree.Comment:
			if w.cfg.IgnoreComments {
				continue
			}
			misc = append(misc, tok)
		default:
			misc = append(misc, tok)
		}
	}
	return misc
}

func miscString(tok etree.Token) string {
	switch t := tok.(type) {
	case *etree.Comment:
		return fmt.Sprintf("<!--%s-->", t.Data)
	case *etree.ProcInst:
		return fmt.Sprintf("<?%s %s?>", t.Target, t.Inst)
	case *etree.Directive:
		return fmt.Sprintf("<!%s>", t.Data)
	default:
		return fmt.Sprintf("%T", tok)
	}
}

func (w *walker) compareChildren(c *etree.Element, cCtx *selector.XPathContext, t *etree.Element, tCtx *selector.XPathContext) {
	cKids, tKids := c.ChildElements(), t.ChildElements()
	cCtx.SetChildren(selector.ElementInfos(cKids))
	tCtx.SetChildren(selector.ElementInfos(tKids))
	cProv := selector.ChildContexts(cCtx, cKids)
	tProv := selector.ChildContexts(tCtx, tKids)

	pairs := w.cfg.Matcher.Match(cKids, cProv, tKids, tProv, w.cfg.Selector)
	cPaired := make(map[*etree.Element]*etree.Element, len(pairs))
	tPaired := make(map[*etree.Element]bool, len(pairs))
	for _, p := range pairs {
		cPaired[p.Control] = p.Test
		tPaired[p.Test] = true
	}

	for _, ck := range cKids {
		tk, ok := cPaired[ck]
		if !ok {
			w.record(Difference{
				Kind:        DiffChildDeleted,
				ControlPath: cProv(ck).XPath(),
				Control:     xmltree.QNameOf(ck).String(),
			})
			continue
		}
		w.compareElements(ck, cProv(ck), tk, tProv(tk))
	}
	for _, tk := range tKids {
		if tPaired[tk] {
			continue
		}
		w.record(Difference{
			Kind:     DiffChildInserted,
			TestPath: tProv(tk).XPath(),
			Test:     xmltree.QNameOf(tk).String(),
		})
	}
}
