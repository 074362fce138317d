package matcher

import (
	"testing"

	"github.com/beevik/etree"

	"github.com/benroe89/xmlunit/selector"
)

func children(t *testing.T, src string) []*etree.Element {
	t.Helper()
	doc := etree.NewDocument()
	if err := doc.ReadFromString(src); err != nil {
		t.Fatalf("parse: %v", err)
	}
	return doc.Root().ChildElements()
}

func providers(control, test []*etree.Element) (selector.ContextProvider, selector.ContextProvider) {
	cc := selector.NewXPathContext()
	cc.SetChildren(selector.ElementInfos(control))
	tc := selector.NewXPathContext()
	tc.SetChildren(selector.ElementInfos(test))
	return selector.ChildContexts(cc, control), selector.ChildContexts(tc, test)
}

func ids(pairs []selector.Match) [][2]string {
	var out [][2]string
	for _, p := range pairs {
		out = append(out, [2]string{
			p.Control.SelectAttrValue("id", p.Control.Tag),
			p.Test.SelectAttrValue("id", p.Test.Tag),
		})
	}
	return out
}

func TestGreedyFirstUnmatchedWins(t *testing.T) {
	control := children(t, `<r><a id="c1"/><a id="c2"/></r>`)
	test := children(t, `<r><a id="t1"/><a id="t2"/><a id="t3"/></r>`)
	cc, tc := providers(control, test)

	pairs := Greedy{}.Match(control, cc, test, tc, selector.ByName)
	want := [][2]string{{"c1", "t1"}, {"c2", "t2"}}
	got := ids(pairs)
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestGreedyNeverStealsClaimed(t *testing.T) {
	control := children(t, `<r><a id="c1" k="2"/><a id="c2" k="2"/></r>`)
	test := children(t, `<r><a id="t1" k="2"/></r>`)
	cc, tc := providers(control, test)

	pairs := Greedy{}.Match(control, cc, test, tc, selector.ByNameAndAttrNames("k"))
	got := ids(pairs)
	if len(got) != 1 || got[0] != [2]string{"c1", "t1"} {
		t.Fatalf("got %v, want [[c1 t1]]", got)
	}
}

func TestGreedySkipsRejected(t *testing.T) {
	control := children(t, `<r><a id="c1">x</a></r>`)
	test := children(t, `<r><a id="t1">y</a><a id="t2">x</a></r>`)
	cc, tc := providers(control, test)

	pairs := Greedy{}.Match(control, cc, test, tc, selector.ByNameAndText)
	got := ids(pairs)
	if len(got) != 1 || got[0] != [2]string{"c1", "t2"} {
		t.Fatalf("got %v, want [[c1 t2]]", got)
	}
}

func TestDocOrderAbsorbsInsertion(t *testing.T) {
	// An inserted <b> between the two <a>s must not shift the second
	// <a>'s partner.
	control := children(t, `<r><a id="c1">x</a><a id="c2">y</a></r>`)
	test := children(t, `<r><a id="t1">x</a><b/><a id="t2">y</a></r>`)
	cc, tc := providers(control, test)

	pairs := DocOrder{}.Match(control, cc, test, tc, selector.ByNameAndText)
	got := ids(pairs)
	want := [][2]string{{"c1", "t1"}, {"c2", "t2"}}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("pair %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDocOrderDropsRejectedAlignment(t *testing.T) {
	control := children(t, `<r><a id="c1">x</a></r>`)
	test := children(t, `<r><a id="t1">y</a></r>`)
	cc, tc := providers(control, test)

	pairs := DocOrder{}.Match(control, cc, test, tc, selector.ByNameAndText)
	if len(pairs) != 0 {
		t.Fatalf("got %v, want no pairs", ids(pairs))
	}
}

func TestDocOrderNamespaceAwareIdentity(t *testing.T) {
	control := children(t, `<r xmlns:p="urn:one"><p:a/></r>`)
	test := children(t, `<r><a/></r>`)
	cc, tc := providers(control, test)

	pairs := DocOrder{}.Match(control, cc, test, tc, selector.ByName)
	if len(pairs) != 0 {
		t.Fatalf("got %v, want no pairs for differing namespaces", ids(pairs))
	}
}

func TestMatchersEmptyInputs(t *testing.T) {
	cc, tc := providers(nil, nil)
	if pairs := (Greedy{}).Match(nil, cc, nil, tc, selector.ByName); len(pairs) != 0 {
		t.Fatalf("greedy: got %d pairs, want 0", len(pairs))
	}
	if pairs := (DocOrder{}).Match(nil, cc, nil, tc, selector.ByName); len(pairs) != 0 {
		t.Fatalf("docorder: got %d pairs, want 0", len(pairs))
	}
}
